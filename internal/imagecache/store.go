package imagecache

import (
	"context"
	"sort"
	"sync"
	"time"
)

// Record 캐시 파일 한 개에 대한 메타데이터입니다.
type Record struct {
	CacheKey    string    `json:"cache_key"`
	UserID      string    `json:"user_id"`
	ContentHash string    `json:"content_hash"`
	StoragePath string    `json:"storage_path"`
	CreatedAt   time.Time `json:"created_at"`
	ByteSize    int64     `json:"byte_size"`
}

// MetadataStore 캐시 메타데이터 저장소 인터페이스입니다.
// 캐시 파일이 존재하면 대응하는 Record도 존재해야 하며, 파일이 없는 Record는 Cleanup 시 제거됩니다.
type MetadataStore interface {
	Upsert(ctx context.Context, rec Record) error

	// Get 키에 해당하는 Record를 반환합니다. 없으면 false를 반환합니다.
	Get(ctx context.Context, key string) (Record, bool, error)

	Delete(ctx context.Context, key string) error

	// List 모든 Record를 CacheKey 순으로 반환합니다.
	List(ctx context.Context) ([]Record, error)
}

// MemoryMetadataStore 프로세스 메모리에 메타데이터를 보관하는 MetadataStore 구현체입니다.
// 프로세스가 재시작되면 내용이 사라지며, 그 경우 Cache는 파일 수정 시각을 기준으로 만료를 판단합니다.
type MemoryMetadataStore struct {
	mu      sync.RWMutex
	records map[string]Record
}

// 컴파일 타임에 인터페이스 구현 여부를 검증합니다.
var _ MetadataStore = (*MemoryMetadataStore)(nil)

func NewMemoryMetadataStore() *MemoryMetadataStore {
	return &MemoryMetadataStore{
		records: make(map[string]Record),
	}
}

func (s *MemoryMetadataStore) Upsert(_ context.Context, rec Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records[rec.CacheKey] = rec

	return nil
}

func (s *MemoryMetadataStore) Get(_ context.Context, key string) (Record, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.records[key]

	return rec, ok, nil
}

func (s *MemoryMetadataStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.records, key)

	return nil
}

func (s *MemoryMetadataStore) List(_ context.Context) ([]Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	list := make([]Record, 0, len(s.records))
	for _, rec := range s.records {
		list = append(list, rec)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].CacheKey < list[j].CacheKey })

	return list, nil
}
