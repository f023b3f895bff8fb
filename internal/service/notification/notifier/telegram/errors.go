package telegram

import (
	"fmt"
	"strings"

	apperrors "github.com/darkkaiser/voice-notifier/internal/pkg/errors"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

var (
	// ErrMissingBotToken 텔레그램 봇 토큰이 설정되지 않았을 때 반환하는 에러입니다.
	ErrMissingBotToken = apperrors.New(apperrors.InvalidInput, "텔레그램 봇 토큰이 설정되지 않았습니다. 설정 파일을 확인해주세요")

	// ErrNotInitialized Initialize 호출 전에 API를 사용하려 했을 때 반환하는 에러입니다.
	ErrNotInitialized = apperrors.New(apperrors.Unavailable, "텔레그램 Provider가 초기화되지 않았습니다")

	// ErrEmptyMessage 렌더링 결과 보낼 메시지가 하나도 없을 때 반환하는 에러입니다.
	ErrEmptyMessage = apperrors.New(apperrors.InvalidInput, "전송할 메시지 내용이 없습니다")
)

// NewErrInvalidBotToken 텔레그램 봇 API 클라이언트 초기화 실패(주로 토큰 오류) 시 반환되는 에러를 생성합니다.
func NewErrInvalidBotToken(err error) error {
	return apperrors.Wrap(err, apperrors.InvalidInput, "텔레그램 봇 API 클라이언트 초기화에 실패했습니다. BotToken이 올바른지 확인해주세요.")
}

// NewErrInvalidChatID 수신자 ID가 텔레그램 채팅 ID 형식이 아닐 때 반환하는 에러를 생성합니다.
func NewErrInvalidChatID(id string) error {
	return apperrors.New(apperrors.InvalidInput, fmt.Sprintf("올바른 텔레그램 채팅 ID가 아닙니다: '%s'", id))
}

// extractTelegramErrorCode 텔레그램 API 에러에서 에러 코드, 메시지, Retry-After 값을 추출합니다.
func extractTelegramErrorCode(err error) (code int, message string, retryAfter int) {
	if apiErr, ok := err.(tgbotapi.Error); ok {
		return apiErr.Code, apiErr.Message, apiErr.ResponseParameters.RetryAfter
	}
	if apiErrPtr, ok := err.(*tgbotapi.Error); ok {
		return apiErrPtr.Code, apiErrPtr.Message, apiErrPtr.ResponseParameters.RetryAfter
	}
	return 0, "", 0
}

// shouldRetryError 주어진 에러가 재시도 가능한지 판단합니다.
// 429 (Too Many Requests)는 재시도 가능, 기타 4xx는 재시도 불가능.
func shouldRetryError(errCode int) bool {
	if errCode >= 400 && errCode < 500 {
		return errCode == 429
	}
	return true
}

// isRecipientError 수신자 문제(채팅 없음, 봇 차단)로 인한 에러인지 판단합니다. 형식을 바꿔 재전송해도 소용이 없습니다.
func isRecipientError(code int, message string) bool {
	if code == 403 {
		return true
	}

	msg := strings.ToLower(message)
	return code == 400 && (strings.Contains(msg, "chat not found") || strings.Contains(msg, "user not found"))
}

// classifyError 텔레그램 API 에러를 ErrorType으로 분류하여 감쌉니다.
func classifyError(err error, message string) error {
	code, apiMessage, _ := extractTelegramErrorCode(err)

	switch {
	case code == 0:
		return apperrors.Wrap(err, apperrors.Unavailable, message)
	case isRecipientError(code, apiMessage):
		if code == 403 {
			return apperrors.Wrap(err, apperrors.Forbidden, message)
		}
		return apperrors.Wrap(err, apperrors.NotFound, message)
	case shouldRetryError(code):
		return apperrors.Wrap(err, apperrors.Unavailable, message)
	default:
		return apperrors.Wrap(err, apperrors.ExecutionFailed, message)
	}
}
