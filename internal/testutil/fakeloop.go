// Package testutil holds deterministic fakes shared by package tests.
package testutil

import (
	"time"

	"github.com/landscape-sysinfo/pkg/future"
)

// ScheduledCall 记录一次 CallLater
type ScheduledCall struct {
	Delay time.Duration
	Fn    func()
}

// FakeLoop records what is handed to it instead of running anything. Tests
// drive it by calling RunQueued and RunScheduled.
type FakeLoop struct {
	QueuedCalls    []func()
	ScheduledCalls []ScheduledCall

	// RunErr 由 Run 返回
	RunErr error
	// Runs 与 Stops 为调用次数
	Runs  int
	Stops int
	// ReentrantStops counts Stop calls made while RunQueued is dispatching
	// startup callbacks.
	ReentrantStops int

	dispatchingQueued bool
}

// CallWhenRunning 记录启动回调
func (l *FakeLoop) CallWhenRunning(fn func()) {
	l.QueuedCalls = append(l.QueuedCalls, fn)
}

// CallLater 记录延迟调用
func (l *FakeLoop) CallLater(delay time.Duration, fn func()) {
	l.ScheduledCalls = append(l.ScheduledCalls, ScheduledCall{Delay: delay, Fn: fn})
}

// Run 只记录调用，不分发任何回调
func (l *FakeLoop) Run() error {
	l.Runs++
	return l.RunErr
}

// Stop 记录调用
func (l *FakeLoop) Stop() error {
	l.Stops++
	if l.dispatchingQueued {
		l.ReentrantStops++
	}
	return nil
}

// RunQueued dispatches and clears the startup callbacks.
func (l *FakeLoop) RunQueued() {
	calls := l.QueuedCalls
	l.QueuedCalls = nil
	l.dispatchingQueued = true
	defer func() { l.dispatchingQueued = false }()
	for _, fn := range calls {
		fn()
	}
}

// RunScheduled dispatches and clears the delayed calls, ignoring delays.
func (l *FakeLoop) RunScheduled() {
	calls := l.ScheduledCalls
	l.ScheduledCalls = nil
	for _, c := range calls {
		c.Fn()
	}
}

// DeferToThread runs fn inline and returns the settled future.
func (l *FakeLoop) DeferToThread(fn func() error) *future.Future {
	f := future.New()
	f.Settle(future.Call(fn))
	return f
}
