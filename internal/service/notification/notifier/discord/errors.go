package discord

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/bwmarrin/discordgo"
	apperrors "github.com/darkkaiser/voice-notifier/internal/pkg/errors"
)

var (
	// ErrMissingBotToken Discord 봇 토큰이 설정되지 않았을 때 반환하는 에러입니다.
	ErrMissingBotToken = apperrors.New(apperrors.InvalidInput, "Discord 봇 토큰이 설정되지 않았습니다. 설정 파일을 확인해주세요")

	// ErrNotInitialized Initialize 호출 전에 전송을 시도했을 때 반환하는 에러입니다.
	ErrNotInitialized = apperrors.New(apperrors.Unavailable, "Discord Provider가 초기화되지 않았습니다")

	// ErrEmptyMessage 렌더링 결과 보낼 메시지가 하나도 없을 때 반환하는 에러입니다.
	ErrEmptyMessage = apperrors.New(apperrors.InvalidInput, "전송할 메시지 내용이 없습니다")
)

// NewErrInvalidRecipient 수신자 ID가 Discord 사용자 ID 형식이 아닐 때 반환하는 에러를 생성합니다.
func NewErrInvalidRecipient(recipientID string) error {
	return apperrors.New(apperrors.InvalidInput, fmt.Sprintf("올바른 Discord 사용자 ID가 아닙니다: '%s'", recipientID))
}

// NewErrSessionCreateFailed discordgo 세션 생성에 실패했을 때 반환하는 에러를 생성합니다.
func NewErrSessionCreateFailed(err error) error {
	return apperrors.Wrap(err, apperrors.InvalidInput, "Discord 세션 생성에 실패했습니다. 봇 토큰이 올바른지 확인해주세요")
}

// classifyError Discord REST 에러를 ErrorType으로 분류하여 감쌉니다.
func classifyError(err error, message string) error {
	var restErr *discordgo.RESTError
	if !errors.As(err, &restErr) {
		return apperrors.Wrap(err, apperrors.Unavailable, message)
	}

	if restErr.Message != nil {
		switch restErr.Message.Code {
		case discordgo.ErrCodeUnknownUser:
			return apperrors.Wrap(err, apperrors.NotFound, message)
		case discordgo.ErrCodeCannotSendMessagesToThisUser:
			return apperrors.Wrap(err, apperrors.Forbidden, message)
		}
	}

	if restErr.Response != nil {
		switch code := restErr.Response.StatusCode; {
		case code == http.StatusNotFound:
			return apperrors.Wrap(err, apperrors.NotFound, message)
		case code == http.StatusUnauthorized || code == http.StatusForbidden:
			return apperrors.Wrap(err, apperrors.Forbidden, message)
		case code == http.StatusTooManyRequests || code >= 500:
			return apperrors.Wrap(err, apperrors.Unavailable, message)
		}
	}

	return apperrors.Wrap(err, apperrors.ExecutionFailed, message)
}
