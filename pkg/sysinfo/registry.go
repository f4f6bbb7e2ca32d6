package sysinfo

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/landscape-sysinfo/pkg/eventloop"
	"github.com/landscape-sysinfo/pkg/future"
	"github.com/landscape-sysinfo/pkg/logger"
	"github.com/landscape-sysinfo/pkg/metrics"
)

// Registry holds the activated plugins and the output they contribute.
//
// A Registry is not safe for concurrent use. All methods are called from the
// event loop goroutine.
type Registry struct {
	offloader eventloop.Offloader
	metrics   *metrics.PluginMetrics

	plugins []Plugin
	slots   []*slot
}

// Option 配置 Registry
type Option func(*Registry)

// WithOffloader sets where Sysinfo.Offload sends blocking work. Without one,
// offloaded work runs inline and the returned future is already settled.
func WithOffloader(o eventloop.Offloader) Option {
	return func(r *Registry) { r.offloader = o }
}

// WithMetrics 记录插件运行指标
func WithMetrics(m *metrics.PluginMetrics) Option {
	return func(r *Registry) { r.metrics = m }
}

// NewRegistry 创建空的插件注册表
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Add registers p at the end of the activation order.
func (r *Registry) Add(p Plugin) {
	s := &slot{registry: r, plugin: p.Name()}
	r.plugins = append(r.plugins, p)
	r.slots = append(r.slots, s)
	p.Register(s)
}

// Activate resolves ids against table and adds the resulting plugins in the
// given order. Every id is checked before anything is added, so an unknown
// name leaves the registry untouched.
func (r *Registry) Activate(ids []string, table PluginTable) error {
	ctors := make([]Constructor, 0, len(ids))
	for _, id := range ids {
		ctor, ok := table[id]
		if !ok || ctor == nil {
			return &UnknownPluginError{Name: id}
		}
		ctors = append(ctors, ctor)
	}
	for _, ctor := range ctors {
		r.Add(ctor())
	}
	return nil
}

// Plugins 返回已激活插件（副本）
func (r *Registry) Plugins() []Plugin {
	out := make([]Plugin, len(r.plugins))
	copy(out, r.plugins)
	return out
}

// Run invokes every plugin once, in activation order, and returns a future
// that resolves when all of them have succeeded. It rejects with the first
// observed *PluginFailure; plugins already started are left to finish.
func (r *Registry) Run(ctx context.Context) *future.Future {
	log := logger.FromContext(ctx)
	log.Debug("running sysinfo plugins", zap.Int("count", len(r.plugins)))

	futs := make([]*future.Future, 0, len(r.plugins))
	for _, p := range r.plugins {
		futs = append(futs, r.runPlugin(ctx, log, p))
	}
	return future.Gather(futs...)
}

func (r *Registry) runPlugin(ctx context.Context, log *zap.Logger, p Plugin) *future.Future {
	name := p.Name()
	start := time.Now()

	var pending *future.Future
	err := future.Call(func() error {
		f, err := p.Run(ctx)
		pending = f
		return err
	})
	switch {
	case err != nil:
		pending = future.Rejected(err)
	case pending == nil:
		pending = future.Resolved()
	}

	done := future.New()
	pending.OnSettled(func(err error) {
		r.metrics.ObserveRun(name, time.Since(start), err)
		if err != nil {
			log.Error("sysinfo plugin failed", zap.String("plugin", name), zap.Error(err))
			done.Reject(&PluginFailure{Plugin: name, Err: err})
			return
		}
		log.Debug("sysinfo plugin finished", zap.String("plugin", name),
			zap.Duration("elapsed", time.Since(start)))
		done.Resolve()
	})
	return done
}

// Headers returns the contributed headers in activation order.
func (r *Registry) Headers() []Header {
	var out []Header
	for _, s := range r.slots {
		out = append(out, s.headers...)
	}
	return out
}

// Notes returns the contributed notes in activation order.
func (r *Registry) Notes() []string {
	var out []string
	for _, s := range r.slots {
		out = append(out, s.notes...)
	}
	return out
}

// Footnotes returns the contributed footnotes in activation order.
func (r *Registry) Footnotes() []string {
	var out []string
	for _, s := range r.slots {
		out = append(out, s.footnotes...)
	}
	return out
}

// slot 单个插件的输出区
type slot struct {
	registry *Registry
	plugin   string

	headers   []Header
	notes     []string
	footnotes []string
}

func (s *slot) AddHeader(name, value string) {
	s.headers = append(s.headers, Header{Name: name, Value: value})
	s.registry.metrics.ObserveContribution(s.plugin, metrics.KindHeader)
}

func (s *slot) AddNote(note string) {
	s.notes = append(s.notes, note)
	s.registry.metrics.ObserveContribution(s.plugin, metrics.KindNote)
}

func (s *slot) AddFootnote(note string) {
	s.footnotes = append(s.footnotes, note)
	s.registry.metrics.ObserveContribution(s.plugin, metrics.KindFootnote)
}

func (s *slot) Offload(fn func() error) *future.Future {
	if s.registry.offloader == nil {
		f := future.New()
		f.Settle(future.Call(fn))
		return f
	}
	return s.registry.offloader.DeferToThread(fn)
}
