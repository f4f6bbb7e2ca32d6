package sysinfo

import (
	"github.com/spf13/pflag"

	"github.com/landscape-sysinfo/pkg/config"
)

func initPluginFlags(f *pflag.FlagSet, defaults *config.Config) {
	f.String(
		"sysinfo-plugins",
		"",
		"-> Comma-delimited list of sysinfo plugins to use, default is all | 启用的插件（逗号分隔）")
	f.String(
		"exclude-sysinfo-plugins",
		"",
		"-> Comma-delimited list of sysinfo plugins to NOT use | 排除的插件（逗号分隔）")
	f.Duration(
		"plugin-timeout",
		defaults.Sysinfo.PluginTimeout,
		"-> Timeout of a single plugin's data collection | 单个插件采集超时")
	f.Int(
		"width",
		defaults.Sysinfo.Width,
		"-> Report width in columns | 报告宽度")
}

func initLogFlags(f *pflag.FlagSet, defaults *config.Config) {
	logPrefix := "log."

	f.String(
		logPrefix+"level",
		defaults.Log.Level,
		"-> Log level [debug,info,warn,error] | 日志级别")
	f.String(
		logPrefix+"format",
		defaults.Log.Format,
		"-> Log format [console,json] | 日志格式")
	f.String(
		logPrefix+"path",
		defaults.Log.Path,
		"-> Log directory, /var/log/landscape for root and ~/.landscape otherwise | 日志目录")
	f.Int(
		logPrefix+"max-size-kb",
		defaults.Log.MaxSizeKB,
		"-> Max size of single log file (KB) | 单文件最大 KB")
	f.Int(
		logPrefix+"max-backup",
		defaults.Log.MaxBackup,
		"-> Number of log backup files | 备份数量")
	f.Bool(
		logPrefix+"console",
		defaults.Log.Console,
		"-> Also print warnings and errors to stderr | 同时输出到 stderr")
}

func initMetricsFlags(f *pflag.FlagSet, defaults *config.Config) {
	f.String(
		"metrics.textfile",
		defaults.Metrics.Textfile,
		"-> Write run metrics to this Prometheus textfile | 指标 textfile 路径")
}
