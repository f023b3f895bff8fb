// Package imagecache 사용자별 썸네일 이미지를 파일 시스템에 보관하는 내용 주소 기반(content-addressed) 캐시입니다.
//
// 캐시 파일은 <root>/<user_id>_<content_hash>.jpg 경로에 저장되며, 선택적으로 MetadataStore에
// {cache_key, storage_path, created_at, byte_size} 레코드를 함께 기록합니다.
// 항목은 TTL이 지나면 만료되고, 전체 크기가 상한을 넘으면 오래된 순서대로 제거됩니다.
package imagecache

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	apperrors "github.com/darkkaiser/voice-notifier/internal/pkg/errors"
	"github.com/darkkaiser/voice-notifier/pkg/concurrency"
	applog "github.com/darkkaiser/voice-notifier/pkg/log"
)

const (
	component = "imagecache"

	fileExt        = ".jpg"
	tempFilePrefix = ".tmp-"

	// DefaultTTL 캐시 항목의 기본 유효 기간입니다.
	DefaultTTL = 24 * time.Hour

	// DefaultMaxBytes 캐시 디렉터리 전체 크기의 기본 상한입니다 (100MB).
	DefaultMaxBytes = 100 * 1024 * 1024
)

// Config 캐시 설정입니다.
type Config struct {
	// Dir 캐시 파일을 저장할 디렉터리 (없으면 생성합니다)
	Dir string

	// TTL 항목의 유효 기간입니다. 0 이하이면 DefaultTTL을 사용합니다.
	TTL time.Duration

	// MaxBytes 전체 캐시 크기의 상한입니다. 0 이하이면 DefaultMaxBytes를 사용합니다.
	MaxBytes int64
}

// CleanupStats Cleanup 한 번의 실행 결과입니다.
type CleanupStats struct {
	ExpiredRemoved   int
	SizeLimitRemoved int
	OrphansRemoved   int
	TempFilesRemoved int
}

// Cache 파일 시스템 기반 썸네일 캐시입니다.
//
// 같은 키에 대한 읽기/쓰기/삭제는 키 단위 락으로 직렬화되며, 전역 락은 사용하지 않습니다.
// 쓰기는 임시 파일에 기록한 뒤 rename하므로, 동시에 읽는 쪽은 완전한 파일을 보거나 파일이 없는 것으로 봅니다.
type Cache struct {
	dir      string
	ttl      time.Duration
	maxBytes int64

	store MetadataStore
	locks *concurrency.KeyedMutex

	now func() time.Time
}

// New 새로운 Cache를 생성합니다. store가 nil이면 메타데이터 없이 파일 수정 시각만으로 만료를 판단합니다.
func New(cfg Config, store MetadataStore) (*Cache, error) {
	if strings.TrimSpace(cfg.Dir) == "" {
		return nil, ErrEmptyCacheDir
	}
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, apperrors.Wrap(err, apperrors.System, fmt.Sprintf("캐시 디렉터리(%s)를 생성할 수 없습니다", cfg.Dir))
	}

	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	maxBytes := cfg.MaxBytes
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}

	return &Cache{
		dir:      cfg.Dir,
		ttl:      ttl,
		maxBytes: maxBytes,
		store:    store,
		locks:    concurrency.NewKeyedMutex(),
		now:      time.Now,
	}, nil
}

// Key 캐시 키(<user_id>_<content_hash>)를 반환합니다.
func Key(userID, contentHash string) string {
	return userID + "_" + contentHash
}

// Path 캐시 키에 해당하는 파일 경로를 반환합니다.
func (c *Cache) Path(key string) string {
	return filepath.Join(c.dir, key+fileExt)
}

// Dir 캐시 디렉터리를 반환합니다.
func (c *Cache) Dir() string {
	return c.dir
}

// Get 캐시된 썸네일을 반환합니다.
// 파일이 없거나, 만료되었거나, 읽을 수 없으면 false를 반환합니다. 만료된 항목은 이 시점에 삭제됩니다.
func (c *Cache) Get(ctx context.Context, userID, contentHash string) ([]byte, bool) {
	if validateKeyPart(userID) != nil || validateKeyPart(contentHash) != nil {
		return nil, false
	}

	key := Key(userID, contentHash)
	path := c.Path(key)

	c.locks.Lock(key)
	defer c.locks.Unlock(key)

	info, err := os.Stat(path)
	if err != nil {
		return nil, false
	}

	if c.now().Sub(c.createdAt(ctx, key, info)) > c.ttl {
		c.remove(ctx, key)

		applog.WithComponentAndFields(component, applog.Fields{
			"cache_key": key,
		}).Debug("만료된 캐시 항목을 삭제했습니다")

		return nil, false
	}

	data, err := os.ReadFile(path)
	if err != nil {
		applog.WithComponentAndFields(component, applog.Fields{
			"cache_key": key,
			"error":     err,
		}).Warn("캐시 파일을 읽을 수 없습니다")

		return nil, false
	}

	return data, true
}

// Put 썸네일을 캐시에 저장합니다. 메타데이터 저장소가 있으면 레코드도 함께 기록합니다.
// 레코드 기록에 실패하면 파일도 제거하여 파일과 레코드의 대응 관계를 유지합니다.
func (c *Cache) Put(ctx context.Context, userID, contentHash string, data []byte) error {
	if err := validateKeyPart(userID); err != nil {
		return err
	}
	if err := validateKeyPart(contentHash); err != nil {
		return err
	}

	key := Key(userID, contentHash)
	path := c.Path(key)

	c.locks.Lock(key)
	defer c.locks.Unlock(key)

	if err := writeFileAtomic(c.dir, path, data); err != nil {
		return apperrors.Wrap(err, apperrors.System, fmt.Sprintf("캐시 파일(%s)을 저장할 수 없습니다", key))
	}

	if c.store == nil {
		return nil
	}

	rec := Record{
		CacheKey:    key,
		UserID:      userID,
		ContentHash: contentHash,
		StoragePath: path,
		CreatedAt:   c.now(),
		ByteSize:    int64(len(data)),
	}
	if err := c.store.Upsert(ctx, rec); err != nil {
		_ = os.Remove(path)
		return err
	}

	return nil
}

// Cleanup 만료 항목 제거, 크기 상한 초과분 제거, 고아 메타데이터 제거를 순서대로 수행합니다.
//
//  1. 수정 시각이 TTL보다 오래된 파일을 제거합니다.
//  2. 남은 파일의 전체 크기가 상한을 넘으면 수정 시각이 오래된 순서로 상한 이하가 될 때까지 제거합니다.
//  3. 메타데이터 저장소가 있으면 파일이 없는 레코드를 제거합니다.
//
// 다른 고루틴이 사용 중인 키는 건너뛰며, 여러 번 실행해도 안전합니다.
func (c *Cache) Cleanup(ctx context.Context) (CleanupStats, error) {
	var stats CleanupStats

	entries, temps, err := c.scan()
	if err != nil {
		return stats, err
	}

	now := c.now()

	// 1단계: 만료 항목과 중단된 쓰기가 남긴 임시 파일 제거
	for _, e := range temps {
		if now.Sub(e.modTime) <= c.ttl {
			continue
		}
		if err := os.Remove(filepath.Join(c.dir, e.key)); err == nil {
			stats.TempFilesRemoved++
		} else if !errors.Is(err, fs.ErrNotExist) {
			applog.WithComponentAndFields(component, applog.Fields{
				"file": e.key,
			}).WithError(err).Warn("임시 파일을 삭제할 수 없습니다")
		}
	}

	remaining := entries[:0]
	for _, e := range entries {
		if err := ctx.Err(); err != nil {
			return stats, err
		}

		if now.Sub(e.modTime) > c.ttl && c.tryRemove(ctx, e.key) {
			stats.ExpiredRemoved++
			continue
		}
		remaining = append(remaining, e)
	}

	// 2단계: 크기 상한 초과분 제거 (오래된 순)
	var total int64
	for _, e := range remaining {
		total += e.size
	}
	if total > c.maxBytes {
		sort.SliceStable(remaining, func(i, j int) bool { return remaining[i].modTime.Before(remaining[j].modTime) })

		for _, e := range remaining {
			if total <= c.maxBytes {
				break
			}
			if err := ctx.Err(); err != nil {
				return stats, err
			}

			if c.tryRemove(ctx, e.key) {
				total -= e.size
				stats.SizeLimitRemoved++
			}
		}
	}

	// 3단계: 고아 메타데이터 제거
	if c.store != nil {
		removed, err := c.removeOrphans(ctx)
		stats.OrphansRemoved = removed
		if err != nil {
			return stats, err
		}
	}

	return stats, nil
}

type fileEntry struct {
	key     string
	size    int64
	modTime time.Time
}

// scan 캐시 디렉터리를 읽어 캐시 파일과 임시 파일을 나누어 반환합니다.
// 임시 파일 항목의 key에는 파일 이름 전체가 들어갑니다.
func (c *Cache) scan() (entries, temps []fileEntry, err error) {
	dirEntries, err := os.ReadDir(c.dir)
	if err != nil {
		return nil, nil, apperrors.Wrap(err, apperrors.System, fmt.Sprintf("캐시 디렉터리(%s)를 읽을 수 없습니다", c.dir))
	}

	entries = make([]fileEntry, 0, len(dirEntries))
	for _, de := range dirEntries {
		name := de.Name()
		if de.IsDir() {
			continue
		}

		isTemp := strings.HasPrefix(name, tempFilePrefix)
		if !isTemp && !strings.HasSuffix(name, fileExt) {
			continue
		}

		info, err := de.Info()
		if err != nil {
			// 스캔 도중 다른 고루틴이 삭제한 파일
			continue
		}

		if isTemp {
			temps = append(temps, fileEntry{key: name, size: info.Size(), modTime: info.ModTime()})
			continue
		}

		entries = append(entries, fileEntry{
			key:     strings.TrimSuffix(name, fileExt),
			size:    info.Size(),
			modTime: info.ModTime(),
		})
	}

	return entries, temps, nil
}

func (c *Cache) removeOrphans(ctx context.Context) (int, error) {
	records, err := c.store.List(ctx)
	if err != nil {
		return 0, err
	}

	removed := 0
	for _, rec := range records {
		if _, err := os.Stat(c.Path(rec.CacheKey)); !errors.Is(err, fs.ErrNotExist) {
			continue
		}

		if !c.locks.TryLock(rec.CacheKey) {
			continue
		}

		// 락을 잡은 뒤 다시 확인합니다. 그사이 Put이 완료되었을 수 있습니다.
		if _, err := os.Stat(c.Path(rec.CacheKey)); errors.Is(err, fs.ErrNotExist) {
			if err := c.store.Delete(ctx, rec.CacheKey); err == nil {
				removed++
			}
		}
		c.locks.Unlock(rec.CacheKey)
	}

	return removed, nil
}

// createdAt 메타데이터 레코드의 생성 시각을 반환합니다. 레코드가 없으면 파일 수정 시각을 사용합니다.
func (c *Cache) createdAt(ctx context.Context, key string, info fs.FileInfo) time.Time {
	if c.store != nil {
		rec, ok, err := c.store.Get(ctx, key)
		if err != nil {
			applog.WithComponentAndFields(component, applog.Fields{
				"cache_key": key,
				"error":     err,
			}).Warn("캐시 메타데이터 조회에 실패하여 파일 수정 시각으로 만료를 판단합니다")
		}
		if ok && !rec.CreatedAt.IsZero() {
			return rec.CreatedAt
		}
	}

	return info.ModTime()
}

func (c *Cache) tryRemove(ctx context.Context, key string) bool {
	if !c.locks.TryLock(key) {
		return false
	}
	defer c.locks.Unlock(key)

	return c.remove(ctx, key)
}

// remove 파일과 메타데이터를 삭제합니다. 호출자는 키 락을 잡고 있어야 합니다.
func (c *Cache) remove(ctx context.Context, key string) bool {
	if err := os.Remove(c.Path(key)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		applog.WithComponentAndFields(component, applog.Fields{
			"cache_key": key,
			"error":     err,
		}).Warn("캐시 파일을 삭제할 수 없습니다")

		return false
	}

	if c.store != nil {
		if err := c.store.Delete(ctx, key); err != nil {
			applog.WithComponentAndFields(component, applog.Fields{
				"cache_key": key,
				"error":     err,
			}).Warn("캐시 메타데이터를 삭제할 수 없습니다 (다음 Cleanup에서 정리됩니다)")
		}
	}

	return true
}

func writeFileAtomic(dir, path string, data []byte) error {
	tmp, err := os.CreateTemp(dir, tempFilePrefix+"*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return err
	}

	return nil
}

// validateKeyPart 키 구성 요소가 경로 조작에 사용될 수 없는지 검사합니다.
func validateKeyPart(s string) error {
	if s == "" || strings.ContainsAny(s, `/\`) || s == "." || s == ".." {
		return NewErrInvalidKeyPart(s)
	}
	return nil
}
