package eventloop

import (
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/landscape-sysinfo/pkg/future"
	"github.com/landscape-sysinfo/pkg/goid"
)

// Reactor 单线程事件循环（实现 Loop 和 Offloader 接口）
type Reactor struct {
	log *zap.Logger

	mu       sync.Mutex
	startup  []func()
	queue    []func()
	wake     chan struct{}
	running  bool
	stopped  bool
	starting bool   // 正在分发 CallWhenRunning 回调
	loopGID  uint64 // 运行 Run 的 goroutine
}

// Option 配置 Reactor
type Option func(*Reactor)

// WithLogger sets the logger used for panics escaping loop tasks.
func WithLogger(l *zap.Logger) Option {
	return func(r *Reactor) {
		if l != nil {
			r.log = l
		}
	}
}

// NewReactor 创建事件循环
func NewReactor(opts ...Option) *Reactor {
	r := &Reactor{
		log:  zap.NewNop(),
		wake: make(chan struct{}, 1),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// CallWhenRunning queues fn for dispatch right after Run starts. Called
// after the loop is already running it behaves like CallFromThread.
func (r *Reactor) CallWhenRunning(fn func()) {
	r.mu.Lock()
	if r.running {
		r.mu.Unlock()
		r.CallFromThread(fn)
		return
	}
	r.startup = append(r.startup, fn)
	r.mu.Unlock()
}

// CallLater schedules fn on the loop after delay.
func (r *Reactor) CallLater(delay time.Duration, fn func()) {
	if delay <= 0 {
		r.CallFromThread(fn)
		return
	}
	time.AfterFunc(delay, func() { r.CallFromThread(fn) })
}

// CallFromThread queues fn on the loop. Safe from any goroutine.
func (r *Reactor) CallFromThread(fn func()) {
	r.mu.Lock()
	r.queue = append(r.queue, fn)
	r.mu.Unlock()
	r.signal()
}

// DeferToThread runs fn on its own goroutine. The returned future settles on
// the loop goroutine once fn returns; a panic in fn rejects it.
func (r *Reactor) DeferToThread(fn func() error) *future.Future {
	f := future.New()
	go func() {
		err := future.Call(fn)
		r.CallFromThread(func() { f.Settle(err) })
	}()
	return f
}

// InLoop reports whether the caller is running on the loop goroutine.
func (r *Reactor) InLoop() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.running && r.loopGID == goid.Current()
}

// Run dispatches startup callbacks, then queued tasks, until Stop.
func (r *Reactor) Run() error {
	r.mu.Lock()
	if r.running {
		r.mu.Unlock()
		return ErrAlreadyRunning
	}
	r.running = true
	r.stopped = false
	r.loopGID = goid.Current()
	startup := r.startup
	r.startup = nil
	r.starting = true
	r.mu.Unlock()

	r.log.Debug("event loop started", zap.Int("startup_callbacks", len(startup)))
	for _, fn := range startup {
		r.invoke(fn)
	}

	r.mu.Lock()
	r.starting = false
	r.mu.Unlock()

	for {
		r.mu.Lock()
		if r.stopped {
			dropped := len(r.queue)
			r.queue = nil
			r.running = false
			r.mu.Unlock()
			r.log.Debug("event loop stopped", zap.Int("dropped_tasks", dropped))
			return nil
		}
		if len(r.queue) == 0 {
			r.mu.Unlock()
			<-r.wake
			continue
		}
		fn := r.queue[0]
		r.queue[0] = nil
		r.queue = r.queue[1:]
		r.mu.Unlock()

		r.invoke(fn)
	}
}

// Stop ends Run after the current task returns. Calling it directly from a
// startup callback on the loop goroutine is refused with ErrReentrantStop.
func (r *Reactor) Stop() error {
	// starting 只由循环 goroutine 修改，onLoop 为真时下面读取到的值不会变化
	onLoop := r.InLoop()
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.running || r.stopped {
		return ErrNotRunning
	}
	if r.starting && onLoop {
		return ErrReentrantStop
	}
	r.stopped = true
	r.signal()
	return nil
}

func (r *Reactor) signal() {
	select {
	case r.wake <- struct{}{}:
	default:
	}
}

// invoke 执行单个任务，panic 只记录日志，不终止事件循环
func (r *Reactor) invoke(fn func()) {
	defer func() {
		if rec := recover(); rec != nil {
			r.log.Error("unhandled panic in event loop task", zap.Error(future.PanicError(rec)), zap.Stack("stack"))
		}
	}()
	fn()
}
