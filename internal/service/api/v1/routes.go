// Package v1 /api/v1 경로의 라우트를 정의합니다.
//
//   - POST /api/v1/notifications - 완성된 메시지 전달
//   - POST /api/v1/events        - 원시 이벤트로부터 메시지를 생성하여 전달 (중복 억제)
//
// 모든 엔드포인트는 X-Application-Id, X-App-Key 헤더로 인증합니다.
package v1

import (
	"github.com/darkkaiser/voice-notifier/internal/service/api/auth"
	"github.com/darkkaiser/voice-notifier/internal/service/api/middleware"
	"github.com/darkkaiser/voice-notifier/internal/service/api/v1/handler"
	"github.com/labstack/echo/v4"
)

// RegisterRoutes Echo 인스턴스에 v1 API 라우트를 등록합니다.
func RegisterRoutes(e *echo.Echo, h *handler.Handler, authenticator *auth.Authenticator) {
	g := e.Group("/api/v1",
		middleware.RequireAuthentication(authenticator),
		middleware.ValidateContentType(echo.MIMEApplicationJSON),
	)

	g.POST("/notifications", h.PublishNotificationHandler)
	g.POST("/events", h.PublishEventHandler)
}
