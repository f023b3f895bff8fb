package handler

import (
	"github.com/darkkaiser/voice-notifier/internal/service/api/constants"
	"github.com/darkkaiser/voice-notifier/internal/service/api/httputil"
)

// NewErrInvalidBody 요청 본문을 파싱하지 못했을 때의 400 에러를 생성합니다.
func NewErrInvalidBody() error {
	return httputil.NewBadRequestError(constants.ErrMsgBadRequestInvalidBody)
}

// NewErrValidationFailed 요청 값 검증에 실패했을 때의 400 에러를 생성합니다.
func NewErrValidationFailed(msg string) error {
	return httputil.NewBadRequestError(msg)
}

// NewErrAllChannelsFailed 모든 채널 전달에 실패했을 때의 502 에러를 생성합니다.
func NewErrAllChannelsFailed() error {
	return httputil.NewBadGatewayError(constants.ErrMsgAllChannelsFailed)
}
