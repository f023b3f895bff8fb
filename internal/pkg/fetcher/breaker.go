package fetcher

import (
	"context"
	"errors"
	"net/http"
	"time"

	apperrors "github.com/darkkaiser/voice-notifier/internal/pkg/errors"
	applog "github.com/darkkaiser/voice-notifier/pkg/log"
	"github.com/sony/gobreaker/v2"
)

const (
	// DefaultBreakerFailureThreshold 서킷을 여는 연속 실패 횟수의 기본값입니다.
	DefaultBreakerFailureThreshold = 5

	// DefaultBreakerOpenTimeout 서킷이 열린 뒤 반열림(half-open) 상태로 전환되기까지의 기본 대기 시간입니다.
	DefaultBreakerOpenTimeout = 1 * time.Minute
)

// BreakerFetcher 연속된 다운로드 실패 시 일정 시간 동안 요청을 차단하는 서킷 브레이커 미들웨어입니다.
//
// 실패로 집계되는 경우:
//   - 네트워크 에러, 타임아웃
//   - 5xx, 429 상태 코드 (StatusCodeFetcher가 반환한 Unavailable 에러)
//
// 404 같은 클라이언트 측 상태 코드나 호출자의 Context 취소는 실패로 집계하지 않습니다.
type BreakerFetcher struct {
	delegate Fetcher
	cb       *gobreaker.CircuitBreaker[*http.Response]
}

// 컴파일 타임에 인터페이스 구현 여부를 검증합니다.
var _ Fetcher = (*BreakerFetcher)(nil)

// NewBreakerFetcher 새로운 BreakerFetcher 인스턴스를 생성합니다.
func NewBreakerFetcher(delegate Fetcher, name string, failureThreshold uint32, openTimeout time.Duration) *BreakerFetcher {
	if failureThreshold == 0 {
		failureThreshold = DefaultBreakerFailureThreshold
	}
	if openTimeout <= 0 {
		openTimeout = DefaultBreakerOpenTimeout
	}

	cb := gobreaker.NewCircuitBreaker[*http.Response](gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Timeout:     openTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= failureThreshold
		},
		IsSuccessful: func(err error) bool {
			return !isBreakerFailure(err)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			applog.WithComponentAndFields(component, applog.Fields{
				"breaker": name,
				"from":    from.String(),
				"to":      to.String(),
			}).Warn("다운로드 서킷 브레이커 상태가 변경되었습니다")
		},
	})

	return &BreakerFetcher{
		delegate: delegate,
		cb:       cb,
	}
}

// State 현재 서킷 상태를 반환합니다.
func (f *BreakerFetcher) State() gobreaker.State {
	return f.cb.State()
}

// Do 서킷이 닫혀 있으면 요청을 수행하고, 열려 있으면 즉시 ErrCircuitOpen을 반환합니다.
func (f *BreakerFetcher) Do(req *http.Request) (*http.Response, error) {
	resp, err := f.cb.Execute(func() (*http.Response, error) {
		return f.delegate.Do(req)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, apperrors.Wrap(err, apperrors.Unavailable, ErrCircuitOpen.Error())
		}

		return resp, err
	}

	return resp, nil
}

func isBreakerFailure(err error) bool {
	if err == nil || errors.Is(err, context.Canceled) {
		return false
	}

	switch apperrors.UnderlyingType(err) {
	case apperrors.Unavailable, apperrors.Timeout, apperrors.System:
		return true
	}

	var statusErr *HTTPStatusError
	return !errors.As(err, &statusErr)
}
