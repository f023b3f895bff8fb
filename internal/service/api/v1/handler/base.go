// Package handler v1 API의 HTTP 요청 핸들러를 제공합니다.
package handler

import (
	"context"

	"github.com/darkkaiser/voice-notifier/internal/service/api/constants"
	"github.com/darkkaiser/voice-notifier/internal/service/event"
	"github.com/darkkaiser/voice-notifier/internal/service/notification"
	applog "github.com/darkkaiser/voice-notifier/pkg/log"
	"github.com/labstack/echo/v4"
)

// NotificationSender 완성된 알림을 여러 채널로 전달합니다. notification.Manager가 이 인터페이스를 만족합니다.
type NotificationSender interface {
	SendAll(ctx context.Context, recipients map[string]string, n notification.Notification) map[string]bool
}

// EventDispatcher 원시 이벤트를 알림으로 변환하여 전달합니다. event.Dispatcher가 이 인터페이스를 만족합니다.
type EventDispatcher interface {
	Dispatch(ctx context.Context, e event.Event) (event.Outcome, error)
}

// Handler v1 API 요청을 검증하고 알림 전송 계층으로 연결합니다.
type Handler struct {
	sender     NotificationSender
	dispatcher EventDispatcher
}

// NewHandler Handler 인스턴스를 생성합니다.
func NewHandler(sender NotificationSender, dispatcher EventDispatcher) *Handler {
	if sender == nil {
		panic(constants.PanicMsgNotificationSenderRequired)
	}
	if dispatcher == nil {
		panic(constants.PanicMsgEventDispatcherRequired)
	}

	return &Handler{
		sender:     sender,
		dispatcher: dispatcher,
	}
}

// log 공통 로깅 필드가 설정된 로거 엔트리를 반환합니다.
func (h *Handler) log(c echo.Context) *applog.Entry {
	return applog.WithComponentAndFields(constants.ComponentHandler, applog.Fields{
		"endpoint":   c.Path(),
		"request_id": c.Response().Header().Get(echo.HeaderXRequestID),
	})
}

// countDelivered 전달에 성공한 채널 수를 반환합니다.
func countDelivered(results map[string]bool) int {
	n := 0
	for _, ok := range results {
		if ok {
			n++
		}
	}
	return n
}
