package sysinfo

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/landscape-sysinfo/pkg/util"
)

// Version 构建时通过 -ldflags "-X github.com/landscape-sysinfo/cmd/sysinfo.Version=..." 注入
var Version = "dev"

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			util.PrintBanner(cmd.ErrOrStderr(), "landscape-sysinfo", "ColorBlue")
			fmt.Fprintln(cmd.OutOrStdout(), Version)
		},
	}
}
