package middleware

import (
	"strings"

	"github.com/darkkaiser/voice-notifier/internal/service/api/auth"
	"github.com/darkkaiser/voice-notifier/internal/service/api/constants"
	"github.com/labstack/echo/v4"
)

// RequireAuthentication X-Application-Id, X-App-Key 헤더로 애플리케이션을 인증하는 미들웨어를 반환합니다.
//
// 인증에 성공하면 Application을 Context에 저장하고 다음 핸들러로 제어를 넘깁니다.
//   - 400 Bad Request: 헤더 누락
//   - 401 Unauthorized: 미등록 Application ID 또는 잘못된 App Key
//
// Panics:
//   - authenticator가 nil인 경우
func RequireAuthentication(authenticator *auth.Authenticator) echo.MiddlewareFunc {
	if authenticator == nil {
		panic(constants.PanicMsgAuthenticatorRequired)
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header

			appKey := strings.TrimSpace(header.Get(constants.XAppKey))
			if appKey == "" {
				return ErrAppKeyRequired
			}

			applicationID := strings.TrimSpace(header.Get(constants.XApplicationID))
			if applicationID == "" {
				return ErrApplicationIDRequired
			}

			app, err := authenticator.Authenticate(applicationID, appKey)
			if err != nil {
				return err
			}

			auth.SetApplication(c, app)

			return next(c)
		}
	}
}
