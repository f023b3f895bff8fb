package httputil

import (
	"errors"
	"net/http"

	apperrors "github.com/darkkaiser/voice-notifier/internal/pkg/errors"
	"github.com/darkkaiser/voice-notifier/internal/service/api/constants"
	"github.com/darkkaiser/voice-notifier/internal/service/api/model/domain"
	"github.com/darkkaiser/voice-notifier/internal/service/api/model/response"
	applog "github.com/darkkaiser/voice-notifier/pkg/log"
	"github.com/labstack/echo/v4"
)

// ErrorHandler Echo 프레임워크의 전역 에러 핸들러입니다.
//
// 모든 에러를 {result_code, message} 형식의 JSON으로 변환합니다.
// 애플리케이션 에러(apperrors)는 에러 타입에 대응하는 HTTP 상태 코드로 변환하고,
// 5xx는 Error, 4xx는 Warn 레벨로 기록합니다.
func ErrorHandler(err error, c echo.Context) {
	code, message := resolve(err)

	fields := applog.Fields{
		"path":        c.Request().URL.Path,
		"method":      c.Request().Method,
		"status_code": code,
		"error":       err,
		"remote_ip":   c.RealIP(),
		"request_id":  c.Response().Header().Get(echo.HeaderXRequestID),
	}
	if app, ok := c.Get(constants.ContextKeyApplication).(*domain.Application); ok && app != nil {
		fields["application_id"] = app.ID
	}

	if code >= http.StatusInternalServerError {
		applog.WithComponentAndFields(constants.ComponentErrorHandler, fields).Error(constants.LogMsgHTTP5xxServerError)
	} else if code >= http.StatusBadRequest {
		applog.WithComponentAndFields(constants.ComponentErrorHandler, fields).Warn(constants.LogMsgHTTP4xxClientError)
	}

	// 이미 응답이 전송된 경우 추가 응답을 시도하지 않습니다.
	if c.Response().Committed {
		return
	}

	if c.Request().Method == http.MethodHead {
		_ = c.NoContent(code)
		return
	}

	_ = c.JSON(code, response.ErrorResponse{
		ResultCode: code,
		Message:    message,
	})
}

// resolve 에러로부터 HTTP 상태 코드와 클라이언트에게 보여줄 메시지를 결정합니다.
func resolve(err error) (int, string) {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		message := constants.ErrMsgInternalServer
		switch m := he.Message.(type) {
		case string:
			message = m
		case response.ErrorResponse:
			message = m.Message
		}

		// echo 라우터가 반환하는 기본 404는 한국어 메시지로 통일합니다.
		if he.Code == http.StatusNotFound && he.Message == http.StatusText(http.StatusNotFound) {
			message = constants.ErrMsgNotFound
		}
		if he.Code == http.StatusRequestEntityTooLarge {
			message = constants.ErrMsgRequestEntityTooLarge
		}

		return he.Code, message
	}

	var appErr *apperrors.AppError
	if apperrors.As(err, &appErr) {
		switch appErr.Type() {
		case apperrors.InvalidInput, apperrors.ParsingFailed:
			return http.StatusBadRequest, appErr.Message()
		case apperrors.Unauthorized:
			return http.StatusUnauthorized, appErr.Message()
		case apperrors.Forbidden:
			return http.StatusForbidden, appErr.Message()
		case apperrors.NotFound:
			return http.StatusNotFound, appErr.Message()
		case apperrors.Conflict:
			return http.StatusConflict, appErr.Message()
		case apperrors.Timeout, apperrors.Unavailable:
			return http.StatusServiceUnavailable, appErr.Message()
		}
	}

	return http.StatusInternalServerError, constants.ErrMsgInternalServer
}
