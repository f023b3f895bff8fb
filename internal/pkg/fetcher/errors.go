package fetcher

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	apperrors "github.com/darkkaiser/voice-notifier/internal/pkg/errors"
)

var (
	// ErrMissingResponseContentType 응답에 Content-Type 헤더가 없을 때 반환됩니다.
	ErrMissingResponseContentType = apperrors.New(apperrors.ExecutionFailed, "응답에 Content-Type 헤더가 없습니다")

	// ErrCircuitOpen 서킷 브레이커가 열려 있어 요청을 보내지 않았을 때 반환됩니다.
	ErrCircuitOpen = apperrors.New(apperrors.Unavailable, "연속된 다운로드 실패로 요청이 일시적으로 차단되었습니다")
)

// HTTPStatusError 허용되지 않은 HTTP 상태 코드를 받았을 때 반환되는 구조화된 에러입니다.
// Cause에는 상태 코드에 맞게 분류된 apperrors.AppError가 저장됩니다.
type HTTPStatusError struct {
	StatusCode int
	Status     string

	// URL 민감한 정보(토큰 등)가 마스킹된 요청 URL입니다.
	URL string

	Cause error
}

func (e *HTTPStatusError) Error() string {
	msg := fmt.Sprintf("HTTP %d (%s)", e.StatusCode, e.Status)
	if e.URL != "" {
		msg += fmt.Sprintf(" URL: %s", e.URL)
	}
	if e.Cause != nil {
		msg += fmt.Sprintf(": %v", e.Cause)
	}
	return msg
}

func (e *HTTPStatusError) Unwrap() error {
	return e.Cause
}

// newHTTPStatusError 응답 상태 코드를 도메인 에러 타입으로 분류하여 HTTPStatusError를 생성합니다.
func newHTTPStatusError(resp *http.Response) error {
	errType := apperrors.ExecutionFailed

	switch {
	case resp.StatusCode == http.StatusNotFound:
		errType = apperrors.NotFound

	case resp.StatusCode == http.StatusForbidden, resp.StatusCode == http.StatusUnauthorized:
		errType = apperrors.Forbidden

	case resp.StatusCode == http.StatusBadRequest:
		errType = apperrors.InvalidInput

	case resp.StatusCode == http.StatusTooManyRequests, resp.StatusCode == http.StatusRequestTimeout:
		errType = apperrors.Unavailable

	case resp.StatusCode >= 500:
		errType = apperrors.Unavailable
	}

	var u string
	if resp.Request != nil {
		u = redactURL(resp.Request.URL)
	}

	return &HTTPStatusError{
		StatusCode: resp.StatusCode,
		Status:     resp.Status,
		URL:        u,
		Cause:      apperrors.New(errType, fmt.Sprintf("HTTP 요청이 실패했습니다. 상태 코드: %s", resp.Status)),
	}
}

// newErrRequestFailed 네트워크 수준의 요청 실패를 도메인 에러로 변환합니다.
func newErrRequestFailed(err error, u *url.URL) error {
	switch {
	case errors.Is(err, context.Canceled):
		return apperrors.Wrap(err, apperrors.Unavailable, fmt.Sprintf("요청이 취소되었습니다: %s", redactURL(u)))

	case errors.Is(err, context.DeadlineExceeded), isTimeout(err):
		return apperrors.Wrap(err, apperrors.Timeout, fmt.Sprintf("요청 시간이 초과되었습니다: %s", redactURL(u)))
	}

	return apperrors.Wrap(err, apperrors.Unavailable, fmt.Sprintf("요청 전송 중 네트워크 에러가 발생했습니다: %s", redactURL(u)))
}

func isTimeout(err error) bool {
	var te interface{ Timeout() bool }
	return errors.As(err, &te) && te.Timeout()
}

func newErrUnsupportedMediaType(mediaType string, allowedPrefixes []string) error {
	return apperrors.New(apperrors.ExecutionFailed, fmt.Sprintf("허용되지 않은 Content-Type입니다: %q (허용: %s)", mediaType, strings.Join(allowedPrefixes, ", ")))
}

// NewErrResponseBodyTooLarge 응답 본문을 읽는 도중 크기 제한을 초과했을 때의 에러를 생성합니다.
func NewErrResponseBodyTooLarge(limit int64) error {
	return apperrors.New(apperrors.ExecutionFailed, fmt.Sprintf("응답 본문이 허용된 크기(%d 바이트)를 초과했습니다", limit))
}

// NewErrResponseBodyTooLargeByContentLength Content-Length 헤더만으로 크기 제한 초과를 판단했을 때의 에러를 생성합니다.
func NewErrResponseBodyTooLargeByContentLength(contentLength, limit int64) error {
	return apperrors.New(apperrors.ExecutionFailed, fmt.Sprintf("응답 본문 크기(Content-Length: %d 바이트)가 허용된 크기(%d 바이트)를 초과했습니다", contentLength, limit))
}
