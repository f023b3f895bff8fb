package imagecache

import (
	"fmt"

	apperrors "github.com/darkkaiser/voice-notifier/internal/pkg/errors"
)

var (
	// ErrEmptyCacheDir 캐시 디렉터리가 지정되지 않았을 때 반환됩니다.
	ErrEmptyCacheDir = apperrors.New(apperrors.InvalidInput, "캐시 디렉터리가 지정되지 않았습니다")
)

// NewErrInvalidKeyPart 캐시 키 구성 요소(사용자 ID, 해시)가 비어 있거나 경로 구분자를 포함할 때의 에러를 생성합니다.
func NewErrInvalidKeyPart(part string) error {
	return apperrors.New(apperrors.InvalidInput, fmt.Sprintf("캐시 키로 사용할 수 없는 값입니다: %q", part))
}
