package notification

import (
	"fmt"

	apperrors "github.com/darkkaiser/voice-notifier/internal/pkg/errors"
)

var (
	// ErrProviderNotFound 요청된 채널 이름으로 등록된 Provider가 없을 때 반환하는 에러입니다.
	ErrProviderNotFound = apperrors.New(apperrors.NotFound, "등록되지 않은 알림 채널입니다. 설정 파일을 확인해 주세요")
)

// NewErrProviderInitFailed Provider 초기화 중 에러가 발생했을 때 반환하는 에러를 생성합니다.
func NewErrProviderInitFailed(name string, err error) error {
	errType := apperrors.UnderlyingType(err)
	if errType == apperrors.Unknown {
		errType = apperrors.Internal
	}
	return apperrors.Wrap(err, errType, fmt.Sprintf("Provider('%s') 초기화 중 에러가 발생했습니다", name))
}

// NewErrProviderPanic Provider 초기화 중 패닉이 발생했을 때 반환하는 에러를 생성합니다.
func NewErrProviderPanic(name string, r any) error {
	return apperrors.New(apperrors.Internal, fmt.Sprintf("Provider('%s') 초기화 중 패닉이 발생했습니다: %v", name, r))
}
