// Package future 提供一次性完成句柄（Completion Future）。
//
// A Future settles at most once, either resolved (no value) or rejected with
// an error. Callbacks registered with OnSettled run synchronously on the
// goroutine that settles the future, or immediately when the future has
// already settled. Everything in this module settles futures on the event
// loop goroutine, so callbacks observe a single-threaded world.
package future

import (
	"errors"
	"fmt"
	"sync"
)

// ErrNilRejection is used when Reject is called with a nil error.
var ErrNilRejection = errors.New("future: rejected with nil error")

type state int

const (
	pending state = iota
	resolved
	rejected
)

// Future 一次性完成句柄
type Future struct {
	mu        sync.Mutex
	state     state
	err       error
	callbacks []func(error)
}

// New 创建一个未完成的 Future
func New() *Future {
	return &Future{}
}

// Resolved 返回已成功完成的 Future
func Resolved() *Future {
	f := New()
	f.Resolve()
	return f
}

// Rejected 返回已失败的 Future
func Rejected(err error) *Future {
	f := New()
	f.Reject(err)
	return f
}

// Resolve settles the future successfully. It reports false if the future
// had already settled.
func (f *Future) Resolve() bool {
	return f.settle(resolved, nil)
}

// Reject settles the future with err. It reports false if the future had
// already settled.
func (f *Future) Reject(err error) bool {
	if err == nil {
		err = ErrNilRejection
	}
	return f.settle(rejected, err)
}

// Settle resolves when err is nil and rejects otherwise.
func (f *Future) Settle(err error) bool {
	if err != nil {
		return f.Reject(err)
	}
	return f.Resolve()
}

func (f *Future) settle(s state, err error) bool {
	f.mu.Lock()
	if f.state != pending {
		f.mu.Unlock()
		return false
	}
	f.state = s
	f.err = err
	callbacks := f.callbacks
	f.callbacks = nil
	f.mu.Unlock()

	// 回调在锁外执行，允许回调内部再次操作其他 Future
	for _, cb := range callbacks {
		cb(err)
	}
	return true
}

// OnSettled registers fn to receive the outcome (nil on success). If the
// future has already settled fn runs before OnSettled returns.
func (f *Future) OnSettled(fn func(err error)) {
	f.mu.Lock()
	if f.state == pending {
		f.callbacks = append(f.callbacks, fn)
		f.mu.Unlock()
		return
	}
	err := f.err
	f.mu.Unlock()
	fn(err)
}

// Then returns a future that settles with fn's error once f resolves, or
// with f's error if f rejects. A panic in fn rejects the returned future.
func (f *Future) Then(fn func() error) *Future {
	next := New()
	f.OnSettled(func(err error) {
		if err != nil {
			next.Reject(err)
			return
		}
		next.Settle(Call(fn))
	})
	return next
}

// Done 是否已完成（成功或失败）
func (f *Future) Done() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state != pending
}

// Err returns the rejection error, or nil while pending or after success.
func (f *Future) Err() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.err
}

// Result 返回 (是否完成, 失败原因)
func (f *Future) Result() (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state != pending, f.err
}

// Gather aggregates futs. The returned future resolves once every input has
// resolved and rejects with the first observed rejection. Inputs that are
// still running when the aggregate rejects are left to finish on their own.
// A nil entry counts as already resolved.
func Gather(futs ...*Future) *Future {
	agg := New()
	remaining := len(futs)
	if remaining == 0 {
		agg.Resolve()
		return agg
	}

	var mu sync.Mutex
	for _, f := range futs {
		if f == nil {
			f = Resolved()
		}
		f.OnSettled(func(err error) {
			if err != nil {
				agg.Reject(err)
				return
			}
			mu.Lock()
			remaining--
			last := remaining == 0
			mu.Unlock()
			if last {
				agg.Resolve()
			}
		})
	}
	return agg
}

// Call runs fn and turns a panic into an error.
func Call(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = PanicError(r)
		}
	}()
	return fn()
}

// PanicError converts a recovered panic value into an error. Values that are
// already errors (runtime.Error included) are returned unchanged so callers
// can still match them with errors.As.
func PanicError(r any) error {
	if err, ok := r.(error); ok {
		return err
	}
	return fmt.Errorf("panic: %v", r)
}
