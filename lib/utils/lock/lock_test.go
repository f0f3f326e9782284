package lock

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func TestWithDelay(t *testing.T) {
	t.Run(`runs code and returns its error check`, func(t *testing.T) {
		expected := errors.New("fail")
		success, err := WithDelay(context.Background(), "k1", time.Second, func() error {
			return expected
		})
		require.True(t, success)
		require.Equal(t, expected, err)

		success, err = WithDelay(context.Background(), "k1", time.Second, func() error {
			return nil
		})
		require.True(t, success)
		require.Nil(t, err)
	})

	t.Run(`timeout while held check`, func(t *testing.T) {
		entered := make(chan struct{})
		leave := make(chan struct{})
		go func() {
			_, _ = WithDelay(context.Background(), "k2", time.Second, func() error {
				close(entered)
				<-leave
				return nil
			})
		}()
		<-entered
		called := false
		success, err := WithDelay(context.Background(), "k2", 50*time.Millisecond, func() error {
			called = true
			return nil
		})
		close(leave)
		require.False(t, success)
		require.Nil(t, err)
		require.False(t, called)
	})

	t.Run(`serializes same key check`, func(t *testing.T) {
		var inside, maxInside, failed int32
		wg := sync.WaitGroup{}
		for n := 0; n < 10; n++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				success, _ := WithDelay(context.Background(), "k3", 5*time.Second, func() error {
					current := atomic.AddInt32(&inside, 1)
					if current > atomic.LoadInt32(&maxInside) {
						atomic.StoreInt32(&maxInside, current)
					}
					time.Sleep(time.Millisecond)
					atomic.AddInt32(&inside, -1)
					return nil
				})
				if !success {
					atomic.AddInt32(&failed, 1)
				}
			}()
		}
		wg.Wait()
		require.Equal(t, int32(0), failed)
		require.Equal(t, int32(1), maxInside)
	})

	t.Run(`cancelled context check`, func(t *testing.T) {
		entered := make(chan struct{})
		leave := make(chan struct{})
		go func() {
			_, _ = WithDelay(context.Background(), "k4", time.Second, func() error {
				close(entered)
				<-leave
				return nil
			})
		}()
		<-entered
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		success, err := WithDelay(ctx, "k4", time.Second, func() error {
			return nil
		})
		close(leave)
		require.False(t, success)
		require.Nil(t, err)
	})
}
