package fetcher

import (
	"errors"
	"io"
	"net/http"
)

const (
	// DefaultMaxBytes 응답 본문의 기본 크기 제한값입니다 (10MB).
	DefaultMaxBytes = 10 * 1024 * 1024

	// NoLimit 응답 본문에 대한 크기 제한을 적용하지 않음을 나타내는 특수 상수입니다.
	NoLimit = -1
)

// maxBytesReader http.MaxBytesReader를 래핑하여 apperrors 형식의 에러를 반환합니다.
type maxBytesReader struct {
	rc    io.ReadCloser
	limit int64
}

func (r *maxBytesReader) Read(p []byte) (n int, err error) {
	n, err = r.rc.Read(p)
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			return n, NewErrResponseBodyTooLarge(r.limit)
		}
	}

	return n, err
}

func (r *maxBytesReader) Close() error {
	return r.rc.Close()
}

// MaxBytesFetcher HTTP 응답 본문의 크기를 제한하는 미들웨어입니다.
//
// 주요 기능:
//   - Content-Length 헤더 기반 조기 차단
//   - 실제 읽기 시점의 바이트 수 제한 (Content-Length가 없거나 조작된 응답 방어)
type MaxBytesFetcher struct {
	delegate Fetcher
	limit    int64
}

// NewMaxBytesFetcher 새로운 MaxBytesFetcher 인스턴스를 생성합니다.
// limit이 NoLimit이면 delegate를 그대로 반환하고, 0 이하이면 DefaultMaxBytes를 사용합니다.
func NewMaxBytesFetcher(delegate Fetcher, limit int64) Fetcher {
	if limit == NoLimit {
		return delegate
	}
	if limit <= 0 {
		limit = DefaultMaxBytes
	}

	return &MaxBytesFetcher{
		delegate: delegate,
		limit:    limit,
	}
}

// Do HTTP 요청을 수행하고, 응답 본문에 크기 제한을 적용합니다.
func (f *MaxBytesFetcher) Do(req *http.Request) (*http.Response, error) {
	resp, err := f.delegate.Do(req)
	if err != nil {
		if resp != nil {
			drainAndCloseBody(resp.Body)
		}

		return nil, err
	}

	// 1차 방어: Content-Length 헤더 기반 조기 차단
	if resp.ContentLength > f.limit {
		drainAndCloseBody(resp.Body)

		return nil, NewErrResponseBodyTooLargeByContentLength(resp.ContentLength, f.limit)
	}

	// 2차 방어: 실제 읽기 시점의 바이트 수 제한
	resp.Body = &maxBytesReader{
		rc:    http.MaxBytesReader(nil, resp.Body, f.limit),
		limit: f.limit,
	}

	return resp, nil
}
