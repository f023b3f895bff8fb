package event

import (
	apperrors "github.com/darkkaiser/voice-notifier/internal/pkg/errors"
)

var (
	// ErrMissingUserID 이벤트에 사용자 ID가 없을 때 반환됩니다.
	ErrMissingUserID = apperrors.New(apperrors.InvalidInput, "이벤트에 사용자 ID가 없습니다")

	// ErrEmptyMessage 메시지가 없고 이벤트 종류로도 메시지를 만들 수 없을 때 반환됩니다.
	ErrEmptyMessage = apperrors.New(apperrors.InvalidInput, "알림 메시지를 만들 수 없는 이벤트입니다")

	// ErrNoRecipients 이벤트에 수신자가 없을 때 반환됩니다.
	ErrNoRecipients = apperrors.New(apperrors.InvalidInput, "이벤트에 수신자가 없습니다")
)
