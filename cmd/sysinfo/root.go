// Package sysinfo is the landscape-sysinfo command line.
package sysinfo

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/landscape-sysinfo/internal/deployment"
	"github.com/landscape-sysinfo/pkg/config"
)

// NewRootCommand 构建根命令
func NewRootCommand() *cobra.Command {
	defaults := config.NewDefaultConfig()

	root := &cobra.Command{
		Use:           "landscape-sysinfo",
		Short:         "Print a short summary of the system's status",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfigWithCli(cmd)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			result := deployment.Run(cfg, deployment.WithOutput(cmd.OutOrStdout()))
			return result.Err()
		},
	}

	root.PersistentFlags().StringP("config", "c", "", "配置文件路径（默认 /etc/landscape/client.conf）")
	// 注册分组 flag
	initPluginFlags(root.Flags(), defaults)
	initLogFlags(root.Flags(), defaults)
	initMetricsFlags(root.Flags(), defaults)

	root.AddCommand(newVersionCommand())
	return root
}

// Execute 运行根命令，失败时以状态码 1 退出
func Execute() {
	if err := NewRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "landscape-sysinfo: %v\n", err)
		os.Exit(1)
	}
}
