package imagecache

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	apperrors "github.com/darkkaiser/voice-notifier/internal/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testTTL = time.Hour

func newTestCache(t *testing.T, store MetadataStore, maxBytes int64) (*Cache, *time.Time) {
	t.Helper()

	c, err := New(Config{Dir: t.TempDir(), TTL: testTTL, MaxBytes: maxBytes}, store)
	require.NoError(t, err)

	now := time.Now()
	c.now = func() time.Time { return now }

	return c, &now
}

// setAge 파일의 수정 시각을 now 기준 age만큼 과거로 설정합니다.
func setAge(t *testing.T, c *Cache, key string, now time.Time, age time.Duration) {
	t.Helper()

	mtime := now.Add(-age)
	require.NoError(t, os.Chtimes(c.Path(key), mtime, mtime))
}

func TestNew(t *testing.T) {
	_, err := New(Config{Dir: " "}, nil)
	assert.ErrorIs(t, err, ErrEmptyCacheDir)

	dir := filepath.Join(t.TempDir(), "nested", "cache")
	c, err := New(Config{Dir: dir}, nil)
	require.NoError(t, err)
	assert.DirExists(t, dir)
	assert.Equal(t, DefaultTTL, c.ttl)
	assert.Equal(t, int64(DefaultMaxBytes), c.maxBytes)
}

func TestCache_Path(t *testing.T) {
	c, _ := newTestCache(t, nil, 0)

	assert.Equal(t, "42_abc", Key("42", "abc"))
	assert.Equal(t, filepath.Join(c.Dir(), "42_abc.jpg"), c.Path(Key("42", "abc")))
}

func TestCache_PutGet(t *testing.T) {
	for _, withStore := range []bool{false, true} {
		t.Run(map[bool]string{false: "메타데이터 없음", true: "메타데이터 저장소 사용"}[withStore], func(t *testing.T) {
			var store MetadataStore
			if withStore {
				store = NewMemoryMetadataStore()
			}
			c, _ := newTestCache(t, store, 0)
			ctx := context.Background()
			data := []byte("thumbnail-bytes")

			require.NoError(t, c.Put(ctx, "42", "abc", data))

			got, ok := c.Get(ctx, "42", "abc")
			require.True(t, ok)
			assert.Equal(t, data, got)

			_, ok = c.Get(ctx, "42", "other")
			assert.False(t, ok)

			if withStore {
				rec, found, err := store.Get(ctx, "42_abc")
				require.NoError(t, err)
				require.True(t, found)
				assert.Equal(t, c.Path("42_abc"), rec.StoragePath)
				assert.Equal(t, int64(len(data)), rec.ByteSize)
				assert.Equal(t, "42", rec.UserID)
			}
		})
	}
}

func TestCache_Put_InvalidKey(t *testing.T) {
	c, _ := newTestCache(t, nil, 0)

	for _, part := range []string{"", "..", "a/b", `a\b`} {
		err := c.Put(context.Background(), part, "hash", []byte("x"))
		require.Error(t, err, part)
		assert.True(t, apperrors.Is(err, apperrors.InvalidInput))
	}

	_, ok := c.Get(context.Background(), "../etc", "passwd")
	assert.False(t, ok)
}

func TestCache_Get_ExpiredByModTime(t *testing.T) {
	c, now := newTestCache(t, nil, 0)
	ctx := context.Background()

	require.NoError(t, c.Put(ctx, "42", "abc", []byte("x")))
	setAge(t, c, "42_abc", *now, testTTL+time.Second)

	_, ok := c.Get(ctx, "42", "abc")
	assert.False(t, ok)
	assert.NoFileExists(t, c.Path("42_abc"), "만료된 파일은 조회 시점에 삭제됩니다")
}

func TestCache_Get_ExpiredByRecord(t *testing.T) {
	store := NewMemoryMetadataStore()
	c, now := newTestCache(t, store, 0)
	ctx := context.Background()

	require.NoError(t, c.Put(ctx, "42", "abc", []byte("x")))

	// 파일 수정 시각은 최신이지만 레코드 생성 시각 기준으로 만료됩니다.
	later := now.Add(testTTL + time.Second)
	c.now = func() time.Time { return later }

	_, ok := c.Get(ctx, "42", "abc")
	assert.False(t, ok)
	assert.NoFileExists(t, c.Path("42_abc"))

	_, found, err := store.Get(ctx, "42_abc")
	require.NoError(t, err)
	assert.False(t, found, "만료 시 메타데이터도 함께 삭제됩니다")
}

func TestCache_Cleanup_Expiry(t *testing.T) {
	store := NewMemoryMetadataStore()
	c, now := newTestCache(t, store, 0)
	ctx := context.Background()

	require.NoError(t, c.Put(ctx, "a", "h", []byte("A")))
	require.NoError(t, c.Put(ctx, "b", "h", []byte("B")))
	setAge(t, c, "a_h", *now, testTTL+time.Minute)
	setAge(t, c, "b_h", *now, testTTL-time.Minute)

	stats, err := c.Cleanup(ctx)
	require.NoError(t, err)

	assert.Equal(t, CleanupStats{ExpiredRemoved: 1}, stats)
	assert.NoFileExists(t, c.Path("a_h"))
	assert.FileExists(t, c.Path("b_h"))

	_, found, _ := store.Get(ctx, "a_h")
	assert.False(t, found)
}

func TestCache_Cleanup_SizeLimitOldestFirst(t *testing.T) {
	c, now := newTestCache(t, nil, 250)
	ctx := context.Background()
	chunk := bytes.Repeat([]byte{1}, 100)

	for i, user := range []string{"oldest", "middle", "newest"} {
		require.NoError(t, c.Put(ctx, user, "h", chunk))
		setAge(t, c, Key(user, "h"), *now, time.Duration(3-i)*time.Minute)
	}

	stats, err := c.Cleanup(ctx)
	require.NoError(t, err)

	assert.Equal(t, 0, stats.ExpiredRemoved)
	assert.Equal(t, 1, stats.SizeLimitRemoved)
	assert.NoFileExists(t, c.Path("oldest_h"))
	assert.FileExists(t, c.Path("middle_h"))
	assert.FileExists(t, c.Path("newest_h"))
}

func TestCache_Cleanup_OrphanedRecords(t *testing.T) {
	store := NewMemoryMetadataStore()
	c, _ := newTestCache(t, store, 0)
	ctx := context.Background()

	require.NoError(t, c.Put(ctx, "42", "abc", []byte("x")))
	require.NoError(t, store.Upsert(ctx, Record{CacheKey: "ghost_h", StoragePath: c.Path("ghost_h")}))

	stats, err := c.Cleanup(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.OrphansRemoved)

	records, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "42_abc", records[0].CacheKey, "파일이 있는 레코드는 유지됩니다")
}

func TestCache_Cleanup_TempAndForeignFiles(t *testing.T) {
	c, now := newTestCache(t, nil, 10)

	files := map[string]time.Duration{
		".tmp-stale": 2 * testTTL,
		".tmp-fresh": time.Minute,
		"readme.txt": 2 * testTTL,
	}
	for name, age := range files {
		p := filepath.Join(c.Dir(), name)
		require.NoError(t, os.WriteFile(p, bytes.Repeat([]byte{1}, 100), 0o644))
		mtime := now.Add(-age)
		require.NoError(t, os.Chtimes(p, mtime, mtime))
	}

	stats, err := c.Cleanup(context.Background())
	require.NoError(t, err)

	assert.Equal(t, CleanupStats{TempFilesRemoved: 1}, stats)
	assert.NoFileExists(t, filepath.Join(c.Dir(), ".tmp-stale"), "중단된 쓰기가 남긴 오래된 임시 파일은 삭제합니다")
	assert.FileExists(t, filepath.Join(c.Dir(), ".tmp-fresh"), "쓰기 중일 수 있는 임시 파일은 크기 상한과 무관하게 유지합니다")
	assert.FileExists(t, filepath.Join(c.Dir(), "readme.txt"))

	second, err := c.Cleanup(context.Background())
	require.NoError(t, err)
	assert.Equal(t, CleanupStats{}, second)
}

func TestCache_Cleanup_Idempotent(t *testing.T) {
	c, now := newTestCache(t, NewMemoryMetadataStore(), 0)
	ctx := context.Background()

	require.NoError(t, c.Put(ctx, "a", "h", []byte("A")))
	setAge(t, c, "a_h", *now, 2*testTTL)

	first, err := c.Cleanup(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, first.ExpiredRemoved)

	second, err := c.Cleanup(ctx)
	require.NoError(t, err)
	assert.Equal(t, CleanupStats{}, second)
}

func TestCache_ConcurrentAccess(t *testing.T) {
	c, _ := newTestCache(t, NewMemoryMetadataStore(), 0)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := range 20 {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()

			data := []byte{byte(i)}
			_ = c.Put(ctx, "42", "abc", data)
			if got, ok := c.Get(ctx, "42", "abc"); ok {
				assert.Len(t, got, 1, "읽기는 완전한 파일만 관찰합니다")
			}
			_, _ = c.Cleanup(ctx)
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 0, c.locks.Len())
}
