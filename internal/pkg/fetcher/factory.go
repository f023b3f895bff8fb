package fetcher

import (
	"time"
)

// Config 이미지 다운로드용 Fetcher 체인 설정입니다.
type Config struct {
	// Timeout HTTP 요청 전체에 대한 타임아웃입니다. 0 이하이면 DefaultTimeout을 사용합니다.
	Timeout time.Duration

	// MaxBytes 응답 본문의 최대 크기입니다. 0 이하이면 DefaultMaxBytes를 사용합니다.
	MaxBytes int64

	UserAgent string

	// BreakerName 서킷 브레이커 이름 (로그 구분용)
	BreakerName string

	// BreakerFailureThreshold 서킷을 여는 연속 실패 횟수입니다.
	BreakerFailureThreshold uint32

	// BreakerOpenTimeout 서킷이 열린 상태를 유지하는 시간입니다.
	BreakerOpenTimeout time.Duration
}

// imageMimePrefixes 이미지 다운로드 시 허용하는 미디어 타입 접두사
var imageMimePrefixes = []string{"image/"}

// NewImageFetcher 이미지 다운로드용 Fetcher 체인을 생성합니다.
//
// 요청은 바깥쪽부터 다음 순서로 처리됩니다:
//
//	MaxBytesFetcher -> MimeTypeFetcher("image/") -> BreakerFetcher -> StatusCodeFetcher(200) -> HTTPFetcher
//
// 서킷 브레이커는 상태 코드 검사 결과까지 포함하여 실패를 집계합니다.
func NewImageFetcher(cfg Config) Fetcher {
	name := cfg.BreakerName
	if name == "" {
		name = "image-download"
	}

	var f Fetcher = NewHTTPFetcher(cfg.Timeout, cfg.UserAgent)
	f = NewStatusCodeFetcher(f)
	f = NewBreakerFetcher(f, name, cfg.BreakerFailureThreshold, cfg.BreakerOpenTimeout)
	f = NewMimeTypeFetcher(f, imageMimePrefixes, false)
	f = NewMaxBytesFetcher(f, cfg.MaxBytes)

	return f
}
