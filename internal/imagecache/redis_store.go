package imagecache

import (
	"context"
	"encoding/json"
	"errors"
	"sort"

	apperrors "github.com/darkkaiser/voice-notifier/internal/pkg/errors"
	applog "github.com/darkkaiser/voice-notifier/pkg/log"
	"github.com/redis/go-redis/v9"
)

// DefaultRedisHashKey 메타데이터 Record를 보관하는 Redis 해시의 기본 키입니다.
const DefaultRedisHashKey = "voice-notifier:imagecache"

// RedisHashClient RedisMetadataStore가 사용하는 Redis 명령의 최소 집합입니다.
// *redis.Client와 *redis.ClusterClient가 이 인터페이스를 만족합니다.
type RedisHashClient interface {
	HSet(ctx context.Context, key string, values ...interface{}) *redis.IntCmd
	HGet(ctx context.Context, key, field string) *redis.StringCmd
	HDel(ctx context.Context, key string, fields ...string) *redis.IntCmd
	HGetAll(ctx context.Context, key string) *redis.MapStringStringCmd
}

// RedisMetadataStore 하나의 Redis 해시에 Record를 JSON으로 저장하는 MetadataStore 구현체입니다.
// 필드는 CacheKey, 값은 JSON으로 직렬화된 Record입니다.
type RedisMetadataStore struct {
	client  RedisHashClient
	hashKey string
}

// 컴파일 타임에 인터페이스 구현 여부를 검증합니다.
var _ MetadataStore = (*RedisMetadataStore)(nil)

// NewRedisMetadataStore 새로운 RedisMetadataStore를 생성합니다. hashKey가 비어 있으면 DefaultRedisHashKey를 사용합니다.
func NewRedisMetadataStore(client RedisHashClient, hashKey string) *RedisMetadataStore {
	if hashKey == "" {
		hashKey = DefaultRedisHashKey
	}

	return &RedisMetadataStore{
		client:  client,
		hashKey: hashKey,
	}
}

func (s *RedisMetadataStore) Upsert(ctx context.Context, rec Record) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return apperrors.Wrap(err, apperrors.Internal, "캐시 메타데이터를 직렬화하지 못했습니다")
	}

	if err := s.client.HSet(ctx, s.hashKey, rec.CacheKey, string(data)).Err(); err != nil {
		return apperrors.Wrap(err, apperrors.Unavailable, "캐시 메타데이터를 Redis에 저장하지 못했습니다")
	}

	return nil
}

func (s *RedisMetadataStore) Get(ctx context.Context, key string) (Record, bool, error) {
	raw, err := s.client.HGet(ctx, s.hashKey, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return Record{}, false, nil
		}
		return Record{}, false, apperrors.Wrap(err, apperrors.Unavailable, "캐시 메타데이터를 Redis에서 조회하지 못했습니다")
	}

	var rec Record
	if err := json.Unmarshal([]byte(raw), &rec); err != nil {
		return Record{}, false, apperrors.Wrap(err, apperrors.ParsingFailed, "손상된 캐시 메타데이터입니다: "+key)
	}

	return rec, true, nil
}

func (s *RedisMetadataStore) Delete(ctx context.Context, key string) error {
	if err := s.client.HDel(ctx, s.hashKey, key).Err(); err != nil {
		return apperrors.Wrap(err, apperrors.Unavailable, "캐시 메타데이터를 Redis에서 삭제하지 못했습니다")
	}

	return nil
}

// List 모든 Record를 반환합니다. 해석할 수 없는 값은 경고 로그를 남기고 건너뜁니다.
func (s *RedisMetadataStore) List(ctx context.Context) ([]Record, error) {
	all, err := s.client.HGetAll(ctx, s.hashKey).Result()
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.Unavailable, "캐시 메타데이터 목록을 Redis에서 조회하지 못했습니다")
	}

	list := make([]Record, 0, len(all))
	for key, raw := range all {
		var rec Record
		if err := json.Unmarshal([]byte(raw), &rec); err != nil {
			applog.WithComponentAndFields(component, applog.Fields{
				"cache_key": key,
				"error":     err,
			}).Warn("손상된 캐시 메타데이터를 건너뜁니다")

			continue
		}
		list = append(list, rec)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].CacheKey < list[j].CacheKey })

	return list, nil
}
