package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// 贡献类型
const (
	KindHeader   = "header"
	KindNote     = "note"
	KindFootnote = "footnote"
)

// PluginMetrics 插件运行相关的指标集合
// nil 指针上的所有方法都是空操作，调用方无需判断是否启用了指标
type PluginMetrics struct {
	reg           Registers
	duration      *prometheus.HistogramVec
	failures      *prometheus.CounterVec
	contributions *prometheus.CounterVec
	success       prometheus.Gauge
}

// NewPluginMetrics 在 reg 上注册插件指标
func NewPluginMetrics(reg Registers) *PluginMetrics {
	f := NewMetricFactory(reg)
	return &PluginMetrics{
		reg:           reg,
		duration:      f.NewPluginRunDurationSeconds(),
		failures:      f.NewPluginFailuresTotal(),
		contributions: f.NewPluginContributionsTotal(),
		success:       f.NewRunSucceeded(),
	}
}

// ObserveRun 记录一次插件运行
func (m *PluginMetrics) ObserveRun(plugin string, elapsed time.Duration, err error) {
	if m == nil {
		return
	}
	m.duration.WithLabelValues(plugin).Observe(elapsed.Seconds())
	if err != nil {
		m.failures.WithLabelValues(plugin).Inc()
	}
}

// ObserveContribution 记录一条输出
func (m *PluginMetrics) ObserveContribution(plugin, kind string) {
	if m == nil {
		return
	}
	m.contributions.WithLabelValues(plugin, kind).Inc()
}

// ObserveResult 记录整体运行结果
func (m *PluginMetrics) ObserveResult(err error) {
	if m == nil {
		return
	}
	if err != nil {
		m.success.Set(0)
		return
	}
	m.success.Set(1)
}

// WriteTextfile 以 node_exporter textfile collector 格式写出全部指标
func (m *PluginMetrics) WriteTextfile(path string) error {
	if m == nil || path == "" {
		return nil
	}
	return prometheus.WriteToTextfile(path, m.reg)
}
