package future_test

import (
	"errors"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/landscape-sysinfo/pkg/future"
)

func TestFutureSettlesOnce(t *testing.T) {
	f := future.New()
	assert.False(t, f.Done())

	boom := errors.New("boom")
	require.True(t, f.Reject(boom))
	assert.False(t, f.Resolve())
	assert.False(t, f.Reject(errors.New("second")))

	done, err := f.Result()
	assert.True(t, done)
	assert.Same(t, boom, err)
}

func TestRejectNilError(t *testing.T) {
	f := future.Rejected(nil)
	assert.ErrorIs(t, f.Err(), future.ErrNilRejection)
}

func TestOnSettledOrdering(t *testing.T) {
	f := future.New()
	var calls []string
	f.OnSettled(func(err error) { calls = append(calls, "first") })
	f.OnSettled(func(err error) { calls = append(calls, "second") })
	assert.Empty(t, calls)

	f.Resolve()
	assert.Equal(t, []string{"first", "second"}, calls)

	// 已完成的 Future 立即回调
	f.OnSettled(func(err error) { calls = append(calls, "late") })
	assert.Equal(t, []string{"first", "second", "late"}, calls)
}

func TestThen(t *testing.T) {
	t.Run("runs after success", func(t *testing.T) {
		src := future.New()
		ran := false
		next := src.Then(func() error { ran = true; return nil })
		assert.False(t, ran)
		src.Resolve()
		assert.True(t, ran)
		assert.True(t, next.Done())
		assert.NoError(t, next.Err())
	})

	t.Run("skips on failure", func(t *testing.T) {
		boom := errors.New("boom")
		ran := false
		next := future.Rejected(boom).Then(func() error { ran = true; return nil })
		assert.False(t, ran)
		assert.Same(t, boom, next.Err())
	})

	t.Run("panic rejects", func(t *testing.T) {
		next := future.Resolved().Then(func() error {
			var m map[string]int
			m["x"] = 1
			return nil
		})
		var rerr runtime.Error
		assert.ErrorAs(t, next.Err(), &rerr)
	})
}

func TestGather(t *testing.T) {
	t.Run("empty resolves", func(t *testing.T) {
		agg := future.Gather()
		assert.True(t, agg.Done())
		assert.NoError(t, agg.Err())
	})

	t.Run("waits for every input", func(t *testing.T) {
		a, b := future.New(), future.New()
		agg := future.Gather(a, nil, b)
		b.Resolve()
		assert.False(t, agg.Done())
		a.Resolve()
		assert.True(t, agg.Done())
		assert.NoError(t, agg.Err())
	})

	t.Run("first rejection wins", func(t *testing.T) {
		a, b, c := future.New(), future.New(), future.New()
		agg := future.Gather(a, b, c)
		first, second := errors.New("first"), errors.New("second")

		b.Reject(first)
		assert.True(t, agg.Done())
		assert.Same(t, first, agg.Err())

		// 其余仍可自行完成，不影响聚合结果
		c.Reject(second)
		a.Resolve()
		assert.Same(t, first, agg.Err())
	})
}

func TestCallRecoversNonErrorPanic(t *testing.T) {
	err := future.Call(func() error { panic("nope") })
	assert.EqualError(t, err, "panic: nope")
}
