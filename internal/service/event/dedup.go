package event

import (
	"context"
	"sync"
	"time"

	apperrors "github.com/darkkaiser/voice-notifier/internal/pkg/errors"
	"github.com/redis/go-redis/v9"
)

const (
	// DefaultWindow 같은 이벤트를 중복으로 간주하는 기본 시간 범위입니다.
	DefaultWindow = 5 * time.Second

	// DefaultRedisKeyPrefix RedisDeduplicator가 사용하는 키의 기본 접두사입니다.
	DefaultRedisKeyPrefix = "voice-notifier:event:"
)

// Deduplicator 이벤트 키의 중복 여부를 판정합니다.
//
// Seen은 key가 윈도우 안에서 이미 기록되어 있으면 true를 반환하고,
// 처음 보는 key면 기록한 뒤 false를 반환합니다. 확인과 기록은 원자적으로 수행됩니다.
// Forget은 기록된 key를 지워 윈도우 안에서도 같은 이벤트를 다시 받을 수 있게 합니다.
type Deduplicator interface {
	Seen(ctx context.Context, key string) (bool, error)
	Forget(ctx context.Context, key string) error
}

// MemoryDeduplicator 프로세스 메모리에 키를 보관하는 Deduplicator입니다.
// 만료된 키는 윈도우 주기로 Seen 호출 시점에 함께 정리됩니다.
type MemoryDeduplicator struct {
	window time.Duration
	now    func() time.Time

	mu        sync.Mutex
	entries   map[string]time.Time
	lastPurge time.Time
}

// 컴파일 타임에 인터페이스 구현 여부를 검증합니다.
var _ Deduplicator = (*MemoryDeduplicator)(nil)

// NewMemoryDeduplicator 새로운 MemoryDeduplicator를 생성합니다. window가 0 이하이면 DefaultWindow를 사용합니다.
func NewMemoryDeduplicator(window time.Duration) *MemoryDeduplicator {
	if window <= 0 {
		window = DefaultWindow
	}

	return &MemoryDeduplicator{
		window:  window,
		now:     time.Now,
		entries: make(map[string]time.Time),
	}
}

func (d *MemoryDeduplicator) Seen(_ context.Context, key string) (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	now := d.now()

	if now.Sub(d.lastPurge) >= d.window {
		for k, expiresAt := range d.entries {
			if !now.Before(expiresAt) {
				delete(d.entries, k)
			}
		}
		d.lastPurge = now
	}

	if expiresAt, ok := d.entries[key]; ok && now.Before(expiresAt) {
		return true, nil
	}

	d.entries[key] = now.Add(d.window)

	return false, nil
}

func (d *MemoryDeduplicator) Forget(_ context.Context, key string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	delete(d.entries, key)

	return nil
}

// Len 현재 보관 중인 키의 개수를 반환합니다. 아직 정리되지 않은 만료 키도 포함됩니다.
func (d *MemoryDeduplicator) Len() int {
	d.mu.Lock()
	defer d.mu.Unlock()

	return len(d.entries)
}

// RedisDedupClient RedisDeduplicator가 사용하는 Redis 명령입니다.
// *redis.Client와 *redis.ClusterClient가 이 인터페이스를 만족합니다.
type RedisDedupClient interface {
	SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.BoolCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// RedisDeduplicator SET NX PX로 키를 기록하는 Deduplicator입니다. 여러 인스턴스가 같은 Redis를 공유하면
// 인스턴스 사이의 중복도 걸러집니다.
type RedisDeduplicator struct {
	client RedisDedupClient
	prefix string
	window time.Duration
}

// 컴파일 타임에 인터페이스 구현 여부를 검증합니다.
var _ Deduplicator = (*RedisDeduplicator)(nil)

// NewRedisDeduplicator 새로운 RedisDeduplicator를 생성합니다.
func NewRedisDeduplicator(client RedisDedupClient, prefix string, window time.Duration) *RedisDeduplicator {
	if prefix == "" {
		prefix = DefaultRedisKeyPrefix
	}
	if window <= 0 {
		window = DefaultWindow
	}

	return &RedisDeduplicator{
		client: client,
		prefix: prefix,
		window: window,
	}
}

func (d *RedisDeduplicator) Seen(ctx context.Context, key string) (bool, error) {
	created, err := d.client.SetNX(ctx, d.prefix+key, 1, d.window).Result()
	if err != nil {
		return false, apperrors.Wrap(err, apperrors.Unavailable, "이벤트 중복 여부를 Redis에서 확인하지 못했습니다")
	}

	return !created, nil
}

func (d *RedisDeduplicator) Forget(ctx context.Context, key string) error {
	if err := d.client.Del(ctx, d.prefix+key).Err(); err != nil {
		return apperrors.Wrap(err, apperrors.Unavailable, "이벤트 중복 키를 Redis에서 삭제하지 못했습니다")
	}

	return nil
}
