package concurrency

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyedMutex_SerializesSameKey(t *testing.T) {
	km := NewKeyedMutex()

	var wg sync.WaitGroup
	counter := 0
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			km.WithLock("user-1", func() {
				counter++
			})
		}()
	}
	wg.Wait()

	assert.Equal(t, 100, counter)
	assert.Zero(t, km.Len(), "사용이 끝난 키는 정리되어야 합니다")
}

func TestKeyedMutex_TryLock(t *testing.T) {
	km := NewKeyedMutex()

	require.True(t, km.TryLock("a"))
	assert.False(t, km.TryLock("a"), "이미 잠긴 키는 실패해야 합니다")
	assert.True(t, km.TryLock("b"), "다른 키는 독립적입니다")
	assert.Equal(t, 2, km.Len())

	km.Unlock("a")
	km.Unlock("b")
	assert.Zero(t, km.Len())

	require.True(t, km.TryLock("a"))
	km.Unlock("a")
}

func TestKeyedMutex_UnlockWithoutLockPanics(t *testing.T) {
	km := NewKeyedMutex()
	assert.Panics(t, func() { km.Unlock("missing") })
}
