package main

import (
	"github.com/landscape-sysinfo/cmd/sysinfo"
)

func main() {
	sysinfo.Execute()
}
