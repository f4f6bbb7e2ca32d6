// Package orchestrator drives one sysinfo run: it starts the event loop, runs
// the registry once the loop is up, prints the report and stops the loop.
//
// The loop is never stopped from the callback that observes completion. Stop
// is always handed to the loop as a separate zero-delay task, and the result
// future settles only after that task has stopped the loop.
package orchestrator

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"

	"go.uber.org/zap"

	"github.com/landscape-sysinfo/pkg/eventloop"
	"github.com/landscape-sysinfo/pkg/future"
	"github.com/landscape-sysinfo/pkg/logger"
	"github.com/landscape-sysinfo/pkg/sysinfo"
)

// Runner is the part of the plugin registry the orchestrator needs.
type Runner interface {
	Run(ctx context.Context) *future.Future
	Headers() []sysinfo.Header
	Notes() []string
	Footnotes() []string
}

// Formatter turns registry output into the report text.
type Formatter interface {
	Format(headers []sysinfo.Header, notes, footnotes []string) string
}

// LogContext is opened when the run starts and closed once the loop stops.
type LogContext interface {
	Open() (*zap.Logger, error)
	Close() error
}

// Orchestrator 单次运行的状态机
type Orchestrator struct {
	loop      eventloop.Loop
	runner    Runner
	formatter Formatter
	out       io.Writer
	logs      LogContext
	log       *zap.Logger

	mu      sync.Mutex
	state   State
	failure error
	result  *future.Future
}

// Option 配置 Orchestrator
type Option func(*Orchestrator)

// WithFormatter 替换默认的 TextFormatter
func WithFormatter(f Formatter) Option {
	return func(o *Orchestrator) { o.formatter = f }
}

// WithOutput 报告输出位置，默认 os.Stdout
func WithOutput(w io.Writer) Option {
	return func(o *Orchestrator) { o.out = w }
}

// WithLogContext 日志上下文，默认不记录日志
func WithLogContext(lc LogContext) Option {
	return func(o *Orchestrator) { o.logs = lc }
}

// New 创建编排器
func New(loop eventloop.Loop, runner Runner, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		loop:      loop,
		runner:    runner,
		formatter: sysinfo.NewTextFormatter(sysinfo.DefaultWidth),
		out:       os.Stdout,
		logs:      logger.Static(nil),
		log:       zap.NewNop(),
		result:    future.New(),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// State 当前状态
func (o *Orchestrator) State() State {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state
}

func (o *Orchestrator) setState(s State) {
	o.mu.Lock()
	prev := o.state
	o.state = s
	o.mu.Unlock()
	o.log.Debug("orchestrator state changed",
		zap.Stringer("from", prev), zap.Stringer("to", s))
}

// Run opens the log context, schedules the registry run and starts the loop.
// It returns the result future, which resolves once the loop has stopped
// after a successful run, or rejects with the original failure.
//
// With a real event loop Run blocks until the loop stops, so the future has
// settled by the time it is returned.
func (o *Orchestrator) Run() *future.Future {
	o.mu.Lock()
	if o.state != Idle {
		o.mu.Unlock()
		return future.Rejected(ErrAlreadyInvoked)
	}
	o.state = LoopStarting
	o.mu.Unlock()

	log, err := o.logs.Open()
	if err != nil {
		o.setState(Stopped)
		o.result.Reject(&OrchestrationFailure{Err: fmt.Errorf("open logs: %w", err)})
		return o.result
	}
	o.log = log

	o.loop.CallWhenRunning(o.runWhenStarted)
	if err := o.loop.Run(); err != nil && o.State() == LoopStarting {
		o.log.Error("event loop failed to start", zap.Error(err))
		o.setState(Stopped)
		o.closeLogs()
		o.result.Reject(&OrchestrationFailure{Err: err})
	}
	return o.result
}

// runWhenStarted 事件循环启动后执行
func (o *Orchestrator) runWhenStarted() {
	defer func() {
		if r := recover(); r != nil {
			o.complete(&OrchestrationFailure{Err: future.PanicError(r)})
		}
	}()

	o.setState(PluginsRunning)
	ctx := logger.WithContext(context.Background(), o.log)
	done := o.runner.Run(ctx)
	done.OnSettled(o.complete)
}

// complete handles the outcome exactly once and schedules the loop stop.
func (o *Orchestrator) complete(err error) {
	o.mu.Lock()
	if o.state != LoopStarting && o.state != PluginsRunning {
		o.mu.Unlock()
		return
	}
	o.mu.Unlock()

	if err == nil {
		err = o.emit()
	}
	if err != nil {
		o.mu.Lock()
		o.failure = err
		o.mu.Unlock()
		o.setState(Failed)
		o.log.Error("sysinfo run failed", zap.Error(err))
	} else {
		o.setState(Completed)
	}

	o.loop.CallLater(0, o.stopLoop)
	o.setState(StopScheduled)
}

// emit 格式化并一次性写出报告
func (o *Orchestrator) emit() error {
	var text string
	if err := future.Call(func() error {
		text = o.formatter.Format(o.runner.Headers(), o.runner.Notes(), o.runner.Footnotes())
		return nil
	}); err != nil {
		return &OrchestrationFailure{Err: fmt.Errorf("format report: %w", err)}
	}
	if _, err := io.WriteString(o.out, text+"\n"); err != nil {
		return &OrchestrationFailure{Err: fmt.Errorf("write report: %w", err)}
	}
	return nil
}

// stopLoop 由 CallLater(0, ...) 调度的独立任务，唯一调用 loop.Stop 的地方
func (o *Orchestrator) stopLoop() {
	if err := o.loop.Stop(); err != nil {
		o.log.Warn("event loop stop failed", zap.Error(err))
	}
	o.setState(Stopped)
	o.closeLogs()

	o.mu.Lock()
	failure := o.failure
	o.mu.Unlock()
	if failure != nil {
		o.result.Reject(failure)
		return
	}
	o.result.Resolve()
}

func (o *Orchestrator) closeLogs() {
	o.log.Debug("closing log context")
	// 日志已关闭，错误只能写到 stderr
	if err := o.logs.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "landscape-sysinfo: close logs: %v\n", err)
	}
	o.log = zap.NewNop()
}
