// Package plugins contains the built-in sysinfo plugins and the table that
// maps their names to constructors.
package plugins

import (
	"context"
	"fmt"
	"time"

	"github.com/landscape-sysinfo/pkg/future"
	"github.com/landscape-sysinfo/pkg/sysinfo"
)

// base 插件公共字段
type base struct {
	name    string
	timeout time.Duration
	sysinfo sysinfo.Sysinfo
}

func newBase(name string, timeout time.Duration) base {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return base{name: name, timeout: timeout}
}

func (b *base) Name() string { return b.name }

func (b *base) Register(s sysinfo.Sysinfo) { b.sysinfo = s }

// fetchResult 采集 goroutine 的返回值
type fetchResult[T any] struct {
	value T
	err   error
}

// collect runs fetch off the loop and hands its result to report back on the
// loop. The plugin timeout bounds the wait even when fetch ignores its
// context; a fetch still blocked at the deadline is abandoned.
func collect[T any](ctx context.Context, b *base, fetch func(ctx context.Context) (T, error), report func(T)) *future.Future {
	var result T
	return b.sysinfo.Offload(func() error {
		cctx, cancel := context.WithTimeout(ctx, b.timeout)
		defer cancel()

		// 缓冲为 1，超时后 fetch 返回时不会阻塞
		done := make(chan fetchResult[T], 1)
		go func() {
			var r fetchResult[T]
			r.err = future.Call(func() error {
				var err error
				r.value, err = fetch(cctx)
				return err
			})
			done <- r
		}()

		select {
		case r := <-done:
			if r.err != nil {
				return fmt.Errorf("collect %s: %w", b.name, r.err)
			}
			if err := cctx.Err(); err != nil {
				return fmt.Errorf("collect %s: %w", b.name, err)
			}
			result = r.value
			return nil
		case <-cctx.Done():
			return fmt.Errorf("collect %s: %w", b.name, cctx.Err())
		}
	}).Then(func() error {
		report(result)
		return nil
	})
}

// formatMegabytes 以 MB/GB/TB 显示容量
func formatMegabytes(mb float64) string {
	switch {
	case mb < 1024:
		return fmt.Sprintf("%dMB", int64(mb))
	case mb < 1024*1024:
		return fmt.Sprintf("%.2fGB", mb/1024)
	default:
		return fmt.Sprintf("%.2fTB", mb/1024/1024)
	}
}

func bytesToMegabytes(b uint64) float64 {
	return float64(b) / (1024 * 1024)
}

// percent 整数百分比（四舍五入）
func percent(v float64) string {
	return fmt.Sprintf("%d%%", int(v+0.5))
}
