// Package eventloop provides the single-threaded scheduler that drives a
// sysinfo run.
//
// All callbacks handed to a Loop execute on the goroutine that called Run.
// Work that blocks (syscalls, /proc parsing, spawning processes) goes through
// DeferToThread, whose future settles back on the loop goroutine.
//
// Never invoke Stop from a callback that is already executing on the loop.
// Always hand it to the scheduler as a new, independent, zero-delay task:
//
//	loop.CallLater(0, func() { _ = loop.Stop() })
package eventloop

import (
	"errors"
	"time"

	"github.com/landscape-sysinfo/pkg/future"
)

var (
	// ErrReentrantStop 在启动回调分发期间于循环线程上直接调用 Stop
	ErrReentrantStop = errors.New("eventloop: stop called from a callback running on the loop; schedule it with CallLater(0, ...)")
	// ErrNotRunning Stop 时循环未运行或已停止
	ErrNotRunning = errors.New("eventloop: loop is not running")
	// ErrAlreadyRunning Run 被重复调用
	ErrAlreadyRunning = errors.New("eventloop: loop already running")
)

// Loop is the scheduling surface the orchestrator depends on.
type Loop interface {
	// CallWhenRunning queues fn to run once the loop has started.
	CallWhenRunning(fn func())
	// CallLater schedules fn to run on the loop after delay; a delay <= 0
	// queues it as a new task behind the work already pending.
	CallLater(delay time.Duration, fn func())
	// Run starts the loop and blocks until it is stopped.
	Run() error
	// Stop stops the loop. See the package documentation for the one rule
	// that governs where it may be called from.
	Stop() error
}

// Offloader runs blocking work away from the loop and reports back on it.
type Offloader interface {
	DeferToThread(fn func() error) *future.Future
}
