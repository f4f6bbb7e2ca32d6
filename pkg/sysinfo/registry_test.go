package sysinfo_test

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/landscape-sysinfo/pkg/future"
	"github.com/landscape-sysinfo/pkg/logger"
	"github.com/landscape-sysinfo/pkg/metrics"
	"github.com/landscape-sysinfo/pkg/sysinfo"
)

// fakePlugin 可编程的测试插件
type fakePlugin struct {
	name       string
	sysinfo    sysinfo.Sysinfo
	registered int
	ran        int
	run        func(s sysinfo.Sysinfo) (*future.Future, error)
}

func (p *fakePlugin) Name() string { return p.name }

func (p *fakePlugin) Register(s sysinfo.Sysinfo) {
	p.registered++
	p.sysinfo = s
}

func (p *fakePlugin) Run(context.Context) (*future.Future, error) {
	p.ran++
	if p.run == nil {
		return nil, nil
	}
	return p.run(p.sysinfo)
}

func headerPlugin(name, header, value string) *fakePlugin {
	return &fakePlugin{name: name, run: func(s sysinfo.Sysinfo) (*future.Future, error) {
		s.AddHeader(header, value)
		return nil, nil
	}}
}

func TestActivateOrder(t *testing.T) {
	var built []string
	table := sysinfo.PluginTable{}
	for _, name := range []string{"A", "B", "C"} {
		table[name] = func() sysinfo.Plugin {
			built = append(built, name)
			return &fakePlugin{name: name}
		}
	}

	r := sysinfo.NewRegistry()
	require.NoError(t, r.Activate([]string{"A", "B"}, table))

	assert.Equal(t, []string{"A", "B"}, built)
	plugins := r.Plugins()
	require.Len(t, plugins, 2)
	assert.Equal(t, "A", plugins[0].Name())
	assert.Equal(t, "B", plugins[1].Name())
	assert.Equal(t, 1, plugins[0].(*fakePlugin).registered)
}

func TestActivateUnknownPlugin(t *testing.T) {
	table := sysinfo.PluginTable{"A": func() sysinfo.Plugin { return &fakePlugin{name: "A"} }}

	r := sysinfo.NewRegistry()
	err := r.Activate([]string{"A", "Nope"}, table)

	var unknown *sysinfo.UnknownPluginError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "Nope", unknown.Name)
	assert.Empty(t, r.Plugins(), "nothing is activated when a name is unknown")
}

func TestPluginTableNames(t *testing.T) {
	table := sysinfo.PluginTable{"b": nil, "a": nil}
	assert.Equal(t, []string{"a", "b"}, table.Names())
}

func TestRunSynchronousPlugins(t *testing.T) {
	r := sysinfo.NewRegistry()
	r.Add(headerPlugin("A", "a", "1"))
	r.Add(headerPlugin("B", "b", "2"))

	done := r.Run(context.Background())
	settled, err := done.Result()
	require.True(t, settled)
	require.NoError(t, err)
	assert.Equal(t, []sysinfo.Header{{Name: "a", Value: "1"}, {Name: "b", Value: "2"}}, r.Headers())
}

func TestRunKeepsActivationOrder(t *testing.T) {
	first := future.New()
	second := future.New()

	a := &fakePlugin{name: "A", run: func(s sysinfo.Sysinfo) (*future.Future, error) {
		return first.Then(func() error {
			s.AddHeader("a", "1")
			s.AddNote("note a")
			s.AddFootnote("foot a")
			return nil
		}), nil
	}}
	b := &fakePlugin{name: "B", run: func(s sysinfo.Sysinfo) (*future.Future, error) {
		return second.Then(func() error {
			s.AddHeader("b", "2")
			s.AddNote("note b")
			s.AddFootnote("foot b")
			return nil
		}), nil
	}}

	r := sysinfo.NewRegistry()
	r.Add(a)
	r.Add(b)
	done := r.Run(context.Background())

	// B 先完成
	second.Resolve()
	assert.False(t, done.Done())
	first.Resolve()

	require.True(t, done.Done())
	require.NoError(t, done.Err())
	assert.Equal(t, []sysinfo.Header{{Name: "a", Value: "1"}, {Name: "b", Value: "2"}}, r.Headers())
	assert.Equal(t, []string{"note a", "note b"}, r.Notes())
	assert.Equal(t, []string{"foot a", "foot b"}, r.Footnotes())
}

func TestRunSynchronousPanicIsPluginFailure(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	ctx := logger.WithContext(context.Background(), zap.New(core))

	zero := 0
	boom := &fakePlugin{name: "Boom", run: func(sysinfo.Sysinfo) (*future.Future, error) {
		return nil, fmt.Errorf("unreachable %d", 1/zero)
	}}
	after := headerPlugin("After", "after", "ok")

	r := sysinfo.NewRegistry()
	r.Add(boom)
	r.Add(after)
	done := r.Run(ctx)

	require.True(t, done.Done())
	err := done.Err()
	var failure *sysinfo.PluginFailure
	require.ErrorAs(t, err, &failure)
	assert.Equal(t, "Boom", failure.Plugin)
	var rtErr runtime.Error
	assert.ErrorAs(t, err, &rtErr)

	assert.Equal(t, 1, after.ran, "later plugins still run")
	require.Equal(t, 1, logs.FilterMessage("sysinfo plugin failed").Len())
}

func TestRunReturnedErrorAndRejection(t *testing.T) {
	sentinel := errors.New("collect failed")
	pending := future.New()

	r := sysinfo.NewRegistry()
	r.Add(&fakePlugin{name: "Pending", run: func(sysinfo.Sysinfo) (*future.Future, error) {
		return pending, nil
	}})
	r.Add(&fakePlugin{name: "Err", run: func(sysinfo.Sysinfo) (*future.Future, error) {
		return nil, sentinel
	}})

	done := r.Run(context.Background())
	require.True(t, done.Done(), "first failure settles the aggregate")
	assert.ErrorIs(t, done.Err(), sentinel)

	// 已经开始的插件仍可完成，不影响结果
	pending.Reject(errors.New("late"))
	assert.ErrorIs(t, done.Err(), sentinel)
}

func TestRunWithoutPlugins(t *testing.T) {
	done := sysinfo.NewRegistry().Run(context.Background())
	require.True(t, done.Done())
	assert.NoError(t, done.Err())
	assert.Empty(t, sysinfo.NewRegistry().Headers())
}

type syncOffloader struct{ calls int }

func (o *syncOffloader) DeferToThread(fn func() error) *future.Future {
	o.calls++
	f := future.New()
	f.Settle(fn())
	return f
}

func TestOffload(t *testing.T) {
	off := &syncOffloader{}
	p := &fakePlugin{name: "Off", run: func(s sysinfo.Sysinfo) (*future.Future, error) {
		value := ""
		return s.Offload(func() error {
			value = "collected"
			return nil
		}).Then(func() error {
			s.AddHeader("off", value)
			return nil
		}), nil
	}}

	r := sysinfo.NewRegistry(sysinfo.WithOffloader(off))
	r.Add(p)
	done := r.Run(context.Background())
	require.NoError(t, done.Err())
	assert.Equal(t, 1, off.calls)
	assert.Equal(t, []sysinfo.Header{{Name: "off", Value: "collected"}}, r.Headers())
}

func TestOffloadInlineWithoutOffloader(t *testing.T) {
	p := &fakePlugin{name: "Inline", run: func(s sysinfo.Sysinfo) (*future.Future, error) {
		return s.Offload(func() error { panic("collector crashed") }), nil
	}}
	r := sysinfo.NewRegistry()
	r.Add(p)
	done := r.Run(context.Background())
	require.True(t, done.Done())
	assert.ErrorContains(t, done.Err(), "collector crashed")
}

func TestRunRecordsMetrics(t *testing.T) {
	reg := metrics.NewPromRegistry(nil)
	r := sysinfo.NewRegistry(sysinfo.WithMetrics(metrics.NewPluginMetrics(reg)))
	r.Add(headerPlugin("A", "a", "1"))
	r.Add(&fakePlugin{name: "B", run: func(sysinfo.Sysinfo) (*future.Future, error) {
		return nil, errors.New("nope")
	}})
	r.Run(context.Background())

	families, err := reg.Gather()
	require.NoError(t, err)
	names := map[string]bool{}
	for _, mf := range families {
		names[mf.GetName()] = true
	}
	assert.True(t, names["landscape_sysinfo_plugin_failures_total"])
	assert.True(t, names["landscape_sysinfo_plugin_contributions_total"])
	assert.True(t, names["landscape_sysinfo_plugin_run_duration_seconds"])
}
