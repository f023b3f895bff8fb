// Package concurrency 키 단위 동기화 도구를 제공합니다.
package concurrency

import (
	"sync"
)

// KeyedMutex 키별로 독립적인 Mutex를 제공합니다.
// 서로 다른 키에 대한 작업은 병렬로 진행되며, 사용이 끝난 키의 Mutex는 참조 카운트가 0이 되는 즉시 정리됩니다.
type KeyedMutex struct {
	mu    sync.Mutex
	locks map[string]*keyedEntry
}

type keyedEntry struct {
	mu       sync.Mutex
	refCount int
}

// NewKeyedMutex 새로운 KeyedMutex를 생성합니다.
func NewKeyedMutex() *KeyedMutex {
	return &KeyedMutex{
		locks: make(map[string]*keyedEntry),
	}
}

// Len 현재 잠겨 있거나 대기 중인 키의 개수를 반환합니다.
func (km *KeyedMutex) Len() int {
	km.mu.Lock()
	defer km.mu.Unlock()

	return len(km.locks)
}

// Lock 키에 대한 락을 획득할 때까지 대기합니다.
func (km *KeyedMutex) Lock(key string) {
	km.mu.Lock()
	e, ok := km.locks[key]
	if !ok {
		e = &keyedEntry{}
		km.locks[key] = e
	}
	e.refCount++
	km.mu.Unlock()

	e.mu.Lock()
}

// TryLock 대기 없이 락 획득을 시도합니다.
// true를 반환한 경우에만 Unlock을 호출해야 합니다.
func (km *KeyedMutex) TryLock(key string) bool {
	km.mu.Lock()
	defer km.mu.Unlock()

	e, ok := km.locks[key]
	if !ok {
		e = &keyedEntry{refCount: 1}
		km.locks[key] = e
		e.mu.Lock()
		return true
	}

	if !e.mu.TryLock() {
		return false
	}
	e.refCount++

	return true
}

// Unlock 키에 대한 락을 해제합니다. 잠기지 않은 키를 해제하면 패닉이 발생합니다.
func (km *KeyedMutex) Unlock(key string) {
	km.mu.Lock()
	defer km.mu.Unlock()

	e, ok := km.locks[key]
	if !ok {
		panic("잠기지 않은 KeyedMutex의 잠금 해제 시도: " + key)
	}

	e.mu.Unlock()

	e.refCount--
	if e.refCount <= 0 {
		delete(km.locks, key)
	}
}

// WithLock 키에 대한 락을 잡은 상태에서 fn을 실행합니다.
func (km *KeyedMutex) WithLock(key string, fn func()) {
	km.Lock(key)
	defer km.Unlock(key)

	fn()
}
