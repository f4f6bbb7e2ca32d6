// Package deployment wires configuration, logging, the event loop, the
// plugin registry and the orchestrator into one sysinfo run.
package deployment

import (
	"fmt"
	"io"
	"os"

	"github.com/landscape-sysinfo/internal/plugins"
	"github.com/landscape-sysinfo/pkg/config"
	"github.com/landscape-sysinfo/pkg/eventloop"
	"github.com/landscape-sysinfo/pkg/future"
	"github.com/landscape-sysinfo/pkg/logger"
	"github.com/landscape-sysinfo/pkg/metrics"
	"github.com/landscape-sysinfo/pkg/orchestrator"
	"github.com/landscape-sysinfo/pkg/sysinfo"
)

// Loop 部署需要的事件循环能力
type Loop interface {
	eventloop.Loop
	eventloop.Offloader
}

type options struct {
	loop    Loop
	runner  orchestrator.Runner
	out     io.Writer
	logs    orchestrator.LogContext
	table   sysinfo.PluginTable
	metrics metrics.Registers
}

// Option 替换部署中的组件（测试使用）
type Option func(*options)

// WithLoop 使用指定的事件循环
func WithLoop(l Loop) Option {
	return func(o *options) { o.loop = l }
}

// WithRunner skips activation and runs r instead of a registry built from
// the configuration.
func WithRunner(r orchestrator.Runner) Option {
	return func(o *options) { o.runner = r }
}

// WithOutput 报告输出位置
func WithOutput(w io.Writer) Option {
	return func(o *options) { o.out = w }
}

// WithLogContext 替换基于配置的日志上下文
func WithLogContext(lc orchestrator.LogContext) Option {
	return func(o *options) { o.logs = lc }
}

// WithPluginTable 替换内置插件表
func WithPluginTable(t sysinfo.PluginTable) Option {
	return func(o *options) { o.table = t }
}

// WithMetricsRegistry 指标注册器（默认每次运行新建）
func WithMetricsRegistry(r metrics.Registers) Option {
	return func(o *options) { o.metrics = r }
}

// Run performs one sysinfo run for cfg and returns its result future.
//
// Plugin activation happens before the loop starts, so an unknown plugin
// name yields an already rejected future carrying *sysinfo.UnknownPluginError.
func Run(cfg *config.Config, opts ...Option) *future.Future {
	o := &options{out: os.Stdout}
	for _, opt := range opts {
		opt(o)
	}
	if o.logs == nil {
		o.logs = logger.NewContext(cfg.Log)
	}
	if o.table == nil {
		o.table = plugins.Available(cfg.Sysinfo)
	}
	if o.metrics == nil {
		o.metrics = metrics.NewRunRegistry(true)
	}
	pm := metrics.NewPluginMetrics(o.metrics)

	if o.loop == nil {
		o.loop = eventloop.NewReactor()
	}

	if o.runner == nil {
		registry := sysinfo.NewRegistry(
			sysinfo.WithOffloader(o.loop),
			sysinfo.WithMetrics(pm),
		)
		ids := cfg.Sysinfo.ActivePlugins(plugins.Defaults())
		if err := registry.Activate(ids, o.table); err != nil {
			return future.Rejected(err)
		}
		o.runner = registry
	}

	orch := orchestrator.New(o.loop, o.runner,
		orchestrator.WithFormatter(sysinfo.NewTextFormatter(cfg.Sysinfo.Width)),
		orchestrator.WithOutput(o.out),
		orchestrator.WithLogContext(o.logs),
	)

	done := future.New()
	orch.Run().OnSettled(func(err error) {
		pm.ObserveResult(err)
		// 指标只是附带输出，写入失败不影响运行结果
		if werr := pm.WriteTextfile(cfg.Metrics.Textfile); werr != nil {
			fmt.Fprintf(os.Stderr, "landscape-sysinfo: write metrics textfile: %v\n", werr)
		}
		done.Settle(err)
	})
	return done
}
