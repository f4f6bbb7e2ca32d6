package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Namespace 所有指标的前缀
const Namespace = "landscape_sysinfo"

// MetricFactory 指标工厂，用于统一创建指标（counter/gauge/histogram）。
type MetricFactory struct {
	reg Registers
}

// NewMetricFactory 创建指标工厂
func NewMetricFactory(reg Registers) *MetricFactory {
	return &MetricFactory{reg: reg}
}

// Registry 工厂使用的注册器
func (f *MetricFactory) Registry() Registers { return f.reg }

// NewPluginRunDurationSeconds 单个插件从 Run 调用到 future 结束的耗时
// 分桶：0.001s ~ 8.192s，覆盖同步插件和需要采集系统数据的插件
func (f *MetricFactory) NewPluginRunDurationSeconds() *prometheus.HistogramVec {
	return promauto.With(f.reg).NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      "plugin_run_duration_seconds",
			Help:      "Duration of a sysinfo plugin run",
			Buckets:   prometheus.ExponentialBuckets(0.001, 2, 14),
		},
		[]string{"plugin"},
	)
}

// NewPluginFailuresTotal 插件失败次数（同步 panic/error 与 future 被拒绝都计入）
func (f *MetricFactory) NewPluginFailuresTotal() *prometheus.CounterVec {
	return promauto.With(f.reg).NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "plugin_failures_total",
			Help:      "Total number of failed sysinfo plugin runs",
		},
		[]string{"plugin"},
	)
}

// NewPluginContributionsTotal 插件贡献的输出条数，kind 为 header/note/footnote
func (f *MetricFactory) NewPluginContributionsTotal() *prometheus.CounterVec {
	return promauto.With(f.reg).NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "plugin_contributions_total",
			Help:      "Total number of headers, notes and footnotes contributed by plugins",
		},
		[]string{"plugin", "kind"},
	)
}

// NewRunSucceeded 最近一次运行是否成功（1 成功，0 失败）
func (f *MetricFactory) NewRunSucceeded() prometheus.Gauge {
	return promauto.With(f.reg).NewGauge(
		prometheus.GaugeOpts{
			Namespace: Namespace,
			Name:      "run_success",
			Help:      "Whether the last sysinfo run completed successfully",
		},
	)
}
