package middleware

import (
	"fmt"

	apperrors "github.com/darkkaiser/voice-notifier/internal/pkg/errors"
	"github.com/darkkaiser/voice-notifier/internal/service/api/constants"
	"github.com/darkkaiser/voice-notifier/internal/service/api/httputil"
)

var (
	// ErrAppKeyRequired X-App-Key 헤더가 누락되었을 때 반환하는 에러입니다.
	ErrAppKeyRequired = httputil.NewBadRequestError(constants.ErrMsgAuthAppKeyRequired)

	// ErrApplicationIDRequired X-Application-Id 헤더가 누락되었을 때 반환하는 에러입니다.
	ErrApplicationIDRequired = httputil.NewBadRequestError(constants.ErrMsgAuthApplicationIDRequired)

	ErrRateLimitExceeded = httputil.NewTooManyRequestsError(constants.ErrMsgTooManyRequests)

	ErrUnsupportedMediaType = httputil.NewUnsupportedMediaTypeError(constants.ErrMsgUnsupportedMediaType)
)

// NewErrPanicRecovered 캡처된 패닉 값을 내부 시스템 오류로 래핑합니다.
func NewErrPanicRecovered(r any) error {
	if err, ok := r.(error); ok {
		return apperrors.Wrap(err, apperrors.Internal, "핸들러 실행 중 패닉이 발생했습니다")
	}
	return apperrors.New(apperrors.Internal, fmt.Sprintf("%v", r))
}
