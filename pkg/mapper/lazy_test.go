package mapper

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func countingLazy(calls *int32, fail *atomic.Bool) *Lazy[int] {
	return NewLazy(func(_ context.Context) (int, error) {
		n := atomic.AddInt32(calls, 1)
		if fail != nil && fail.Load() {
			return 0, errors.New("storage unavailable")
		}
		return int(n), nil
	})
}

func TestLazy_PlainRequeries(t *testing.T) {
	var calls int32
	l := countingLazy(&calls, nil)
	ctx := context.Background()

	assert.Equal(t, int32(0), calls, "nothing runs before Force")

	v1, err := l.Force(ctx)
	require.NoError(t, err)
	v2, err := l.Force(ctx)
	require.NoError(t, err)

	assert.Equal(t, 1, v1)
	assert.Equal(t, 2, v2)
	assert.False(t, l.Memoized())
	assert.False(t, l.Forced())
}

func TestLazy_Memoize(t *testing.T) {
	var calls int32
	l := countingLazy(&calls, nil).Memoize()
	ctx := context.Background()

	assert.True(t, l.Memoized())
	assert.False(t, l.Forced())

	for range 3 {
		v, err := l.Force(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, v)
	}
	assert.Equal(t, int32(1), calls)
	assert.True(t, l.Forced())

	l.Reset()
	assert.False(t, l.Forced())
	v, err := l.Force(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, v)
}

func TestLazy_ErrorsAreNotCached(t *testing.T) {
	var calls int32
	var fail atomic.Bool
	fail.Store(true)

	l := countingLazy(&calls, &fail).Memoize()
	ctx := context.Background()

	_, err := l.Force(ctx)
	require.Error(t, err)
	assert.False(t, l.Forced())

	fail.Store(false)
	v, err := l.Force(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, v)
	assert.Equal(t, int32(2), calls)
}

func TestMap(t *testing.T) {
	var calls int32
	base := countingLazy(&calls, nil).Memoize()
	letter := Map(base, func(v int) (string, error) {
		return string(rune('a' + v)), nil
	})

	assert.Equal(t, int32(0), calls)
	v, err := letter.Force(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "b", v)

	failing := Map(NewLazy(func(context.Context) (int, error) { return 0, errors.New("boom") }),
		func(v int) (int, error) { return v, nil })
	_, err = failing.Force(context.Background())
	assert.EqualError(t, err, "boom")
}

func TestForceAll(t *testing.T) {
	var a, b int32
	la := countingLazy(&a, nil).Memoize()
	lb := countingLazy(&b, nil).Memoize()

	require.NoError(t, ForceAll(context.Background(), la, lb))
	assert.True(t, la.Forced())
	assert.True(t, lb.Forced())

	var fail atomic.Bool
	fail.Store(true)
	var c int32
	err := ForceAll(context.Background(), la, countingLazy(&c, &fail))
	assert.EqualError(t, err, "storage unavailable")
}

func TestForceAll_CancelsOnError(t *testing.T) {
	blocked := NewLazy(func(ctx context.Context) (int, error) {
		<-ctx.Done()
		return 0, ctx.Err()
	})
	failing := NewLazy(func(context.Context) (int, error) {
		return 0, errors.New("first failure")
	})

	err := ForceAll(context.Background(), blocked, failing)
	assert.EqualError(t, err, "first failure")
}
