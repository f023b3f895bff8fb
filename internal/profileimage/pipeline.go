// Package profileimage 메신저 API로 사용자의 프로필 사진을 받아와 썸네일로 변환하고 캐시합니다.
//
// 이 경로의 모든 실패(사진 없음, API 에러, 다운로드 실패, 손상된 이미지)는 "이미지 없음"으로 처리되어
// 호출자는 텍스트 전용 알림으로 자연스럽게 대체할 수 있습니다.
package profileimage

import (
	"context"

	"github.com/darkkaiser/voice-notifier/internal/pkg/fetcher"
	"github.com/darkkaiser/voice-notifier/pkg/concurrency"
	applog "github.com/darkkaiser/voice-notifier/pkg/log"
)

const component = "profileimage"

// PhotoSource 사용자의 현재 프로필 사진 중 가장 큰 해상도의 다운로드 URL을 제공합니다.
// 사진이 없으면 false를 반환합니다.
type PhotoSource interface {
	LargestPhotoURL(ctx context.Context, userID string) (string, bool, error)
}

// ThumbnailCache 썸네일 저장소입니다. imagecache.Cache가 이 인터페이스를 만족합니다.
type ThumbnailCache interface {
	Get(ctx context.Context, userID, contentHash string) ([]byte, bool)
	Put(ctx context.Context, userID, contentHash string, data []byte) error
}

// Config 썸네일 생성 설정입니다. 0 이하의 값은 기본값으로 보정됩니다.
type Config struct {
	Width   int
	Height  int
	Quality int
}

// Pipeline 프로필 사진 조회, 다운로드, 검증, 썸네일 변환, 캐시 저장을 수행합니다.
type Pipeline struct {
	source  PhotoSource
	fetcher fetcher.Fetcher
	cache   ThumbnailCache
	cfg     Config

	// locks 같은 사용자에 대한 동시 요청을 하나로 직렬화합니다.
	locks *concurrency.KeyedMutex
}

// NewPipeline 새로운 Pipeline을 생성합니다. cache가 nil이면 매번 썸네일을 새로 만듭니다.
func NewPipeline(source PhotoSource, f fetcher.Fetcher, cache ThumbnailCache, cfg Config) *Pipeline {
	if cfg.Width <= 0 {
		cfg.Width = DefaultWidth
	}
	if cfg.Height <= 0 {
		cfg.Height = DefaultHeight
	}
	if cfg.Quality <= 0 {
		cfg.Quality = DefaultQuality
	}

	return &Pipeline{
		source:  source,
		fetcher: f,
		cache:   cache,
		cfg:     cfg,
		locks:   concurrency.NewKeyedMutex(),
	}
}

// Fetch 사용자의 프로필 썸네일을 반환합니다. 에러를 반환하지 않으며, 사용할 수 있는 이미지가 없으면 false를 반환합니다.
func (p *Pipeline) Fetch(ctx context.Context, userID string) ([]byte, bool) {
	if userID == "" {
		return nil, false
	}

	p.locks.Lock(userID)
	defer p.locks.Unlock(userID)

	logger := applog.WithComponentAndFields(component, applog.Fields{"user_id": userID})

	url, ok, err := p.source.LargestPhotoURL(ctx, userID)
	if err != nil {
		logger.WithError(err).Warn("프로필 사진 정보를 조회하지 못했습니다")
		return nil, false
	}
	if !ok {
		logger.Debug("프로필 사진이 설정되지 않은 사용자입니다")
		return nil, false
	}

	data, err := fetcher.ReadAll(ctx, p.fetcher, url)
	if err != nil {
		logger.WithError(err).Warn("프로필 사진을 다운로드하지 못했습니다")
		return nil, false
	}

	if !Validate(data) {
		logger.WithField("bytes", len(data)).Warn("다운로드한 프로필 사진이 올바른 이미지가 아닙니다")
		return nil, false
	}

	hash := HashContent(data)

	if p.cache != nil {
		if thumb, hit := p.cache.Get(ctx, userID, hash); hit {
			logger.Debug("캐시된 프로필 썸네일을 사용합니다")
			return thumb, true
		}
	}

	thumb, err := Thumbnail(data, p.cfg.Width, p.cfg.Height, p.cfg.Quality)
	if err != nil {
		logger.WithError(err).Warn("프로필 썸네일을 생성하지 못했습니다")
		return nil, false
	}

	if p.cache != nil {
		if err := p.cache.Put(ctx, userID, hash, thumb); err != nil {
			// 저장에 실패해도 이번 알림에는 생성한 썸네일을 사용합니다.
			logger.WithError(err).Warn("프로필 썸네일을 캐시에 저장하지 못했습니다")
		}
	}

	return thumb, true
}
