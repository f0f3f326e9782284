package lock

import (
	"context"
	"sync"
	"time"
)

var (
	mu      sync.Mutex
	holders = map[string]chan struct{}{}
)

// WithDelay выполняет safeCode, удерживая блокировку key внутри процесса.
// Если блокировку не удалось получить за wait или ctx завершен, safeCode не выполняется и success == false
func WithDelay(ctx context.Context, key string, wait time.Duration, safeCode func() error) (success bool, err error) {
	timeout := time.NewTimer(wait)
	defer timeout.Stop()
	for {
		released, acquired := tryAcquire(key)
		if acquired {
			break
		}
		select {
		case <-released:
		case <-timeout.C:
			return false, nil
		case <-ctx.Done():
			return false, nil
		}
	}
	defer release(key)
	return true, safeCode()
}

func tryAcquire(key string) (released chan struct{}, acquired bool) {
	mu.Lock()
	defer mu.Unlock()
	if ch, ok := holders[key]; ok {
		return ch, false
	}
	holders[key] = make(chan struct{})
	return nil, true
}

func release(key string) {
	mu.Lock()
	defer mu.Unlock()
	if ch, ok := holders[key]; ok {
		close(ch)
		delete(holders, key)
	}
}
