package fetcher

import (
	"net/http"
	"time"
)

const (
	// DefaultTimeout HTTP 요청 전체(응답 본문 수신 포함)에 적용되는 기본 타임아웃입니다.
	DefaultTimeout = 10 * time.Second

	// DefaultUserAgent 요청에 User-Agent가 없을 때 사용하는 기본값입니다.
	DefaultUserAgent = "voice-notifier/1.0 (+https://github.com/darkkaiser/voice-notifier)"
)

// HTTPFetcher 타임아웃과 User-Agent 자동 추가 기능이 내장된 HTTP 클라이언트 구현체입니다.
// 타임아웃은 항상 유한하며, 0 이하의 값은 DefaultTimeout으로 보정됩니다.
type HTTPFetcher struct {
	client    *http.Client
	userAgent string
}

// 컴파일 타임에 인터페이스 구현 여부를 검증합니다.
var _ Fetcher = (*HTTPFetcher)(nil)

// NewHTTPFetcher 새로운 HTTPFetcher 인스턴스를 생성합니다.
func NewHTTPFetcher(timeout time.Duration, userAgent string) *HTTPFetcher {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}

	return &HTTPFetcher{
		client: &http.Client{
			Timeout: timeout,
		},
		userAgent: userAgent,
	}
}

// Timeout 클라이언트에 설정된 타임아웃을 반환합니다.
func (h *HTTPFetcher) Timeout() time.Duration {
	return h.client.Timeout
}

// Do HTTP 요청을 실행합니다.
func (h *HTTPFetcher) Do(req *http.Request) (*http.Response, error) {
	if req.Header.Get("User-Agent") == "" {
		req.Header.Set("User-Agent", h.userAgent)
	}

	resp, err := h.client.Do(req)
	if err != nil {
		return resp, newErrRequestFailed(err, req.URL)
	}

	return resp, nil
}
