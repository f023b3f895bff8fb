package fetcher

import (
	"mime"
	"net/http"
	"strings"

	applog "github.com/darkkaiser/voice-notifier/pkg/log"
)

// MimeTypeFetcher HTTP 응답의 MIME 타입을 접두사로 검증하는 미들웨어입니다.
// 이미지 다운로드 중 HTML 에러 페이지 같은 의도치 않은 응답을 조기에 걸러냅니다.
type MimeTypeFetcher struct {
	delegate Fetcher

	// allowedPrefixes 허용할 미디어 타입 접두사 목록입니다. (예: "image/")
	// 대소문자를 구분하지 않습니다.
	allowedPrefixes []string

	// allowMissingContentType Content-Type 헤더가 없는 응답을 허용할지 여부입니다.
	allowMissingContentType bool
}

// 컴파일 타임에 인터페이스 구현 여부를 검증합니다.
var _ Fetcher = (*MimeTypeFetcher)(nil)

// NewMimeTypeFetcher 새로운 MimeTypeFetcher 인스턴스를 생성합니다.
// 허용 목록이 비어 있으면 검증 없이 delegate를 그대로 반환합니다.
func NewMimeTypeFetcher(delegate Fetcher, allowedPrefixes []string, allowMissingContentType bool) Fetcher {
	if len(allowedPrefixes) == 0 {
		return delegate
	}

	return &MimeTypeFetcher{
		delegate:                delegate,
		allowedPrefixes:         allowedPrefixes,
		allowMissingContentType: allowMissingContentType,
	}
}

// Do HTTP 요청을 수행하고 MIME 타입을 검증합니다.
func (f *MimeTypeFetcher) Do(req *http.Request) (*http.Response, error) {
	resp, err := f.delegate.Do(req)
	if err != nil {
		if resp != nil {
			drainAndCloseBody(resp.Body)
		}

		return nil, err
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		if f.allowMissingContentType {
			return resp, nil
		}

		drainAndCloseBody(resp.Body)

		return nil, ErrMissingResponseContentType
	}

	// 파라미터를 제거하고 순수 미디어 타입만 추출 (예: "image/jpeg; q=1" -> "image/jpeg")
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		applog.WithComponentAndFields(component, applog.Fields{
			"content_type": contentType,
			"url":          redactURL(req.URL),
			"error":        err.Error(),
		}).Warn("Content-Type 파싱 경고: 표준 형식이 아니어서 폴백 처리함")

		mediaType = strings.ToLower(strings.TrimSpace(strings.Split(contentType, ";")[0]))
	}

	for _, prefix := range f.allowedPrefixes {
		if strings.HasPrefix(mediaType, strings.ToLower(prefix)) {
			return resp, nil
		}
	}

	drainAndCloseBody(resp.Body)

	return nil, newErrUnsupportedMediaType(mediaType, f.allowedPrefixes)
}
