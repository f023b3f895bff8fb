package fetcher

import (
	"net/http"
	"slices"
)

// StatusCodeFetcher HTTP 응답의 상태 코드를 검증하는 미들웨어입니다.
// 허용되지 않은 상태 코드를 받으면 응답 Body를 정리하고 HTTPStatusError를 반환합니다.
type StatusCodeFetcher struct {
	delegate Fetcher

	// allowedStatusCodes nil 또는 빈 슬라이스인 경우 200 OK만 허용합니다.
	allowedStatusCodes []int
}

// 컴파일 타임에 인터페이스 구현 여부를 검증합니다.
var _ Fetcher = (*StatusCodeFetcher)(nil)

// NewStatusCodeFetcher 허용할 상태 코드를 지정하여 StatusCodeFetcher 인스턴스를 생성합니다.
func NewStatusCodeFetcher(delegate Fetcher, allowedStatusCodes ...int) *StatusCodeFetcher {
	return &StatusCodeFetcher{
		delegate:           delegate,
		allowedStatusCodes: allowedStatusCodes,
	}
}

// Do HTTP 요청을 수행하고 응답 상태 코드를 검증합니다.
func (f *StatusCodeFetcher) Do(req *http.Request) (*http.Response, error) {
	resp, err := f.delegate.Do(req)
	if err != nil {
		if resp != nil {
			drainAndCloseBody(resp.Body)
		}

		return nil, err
	}

	if !f.isAllowed(resp.StatusCode) {
		drainAndCloseBody(resp.Body)

		return nil, newHTTPStatusError(resp)
	}

	return resp, nil
}

func (f *StatusCodeFetcher) isAllowed(statusCode int) bool {
	if len(f.allowedStatusCodes) == 0 {
		return statusCode == http.StatusOK
	}
	return slices.Contains(f.allowedStatusCodes, statusCode)
}
