package handler

import (
	"net/http"

	"github.com/darkkaiser/voice-notifier/internal/service/api/auth"
	"github.com/darkkaiser/voice-notifier/internal/service/api/constants"
	"github.com/darkkaiser/voice-notifier/internal/service/api/model/response"
	"github.com/darkkaiser/voice-notifier/internal/service/api/v1/model/request"
	applog "github.com/darkkaiser/voice-notifier/pkg/log"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// PublishNotificationHandler POST /api/v1/notifications
//
// 완성된 메시지를 요청에 지정된 모든 채널로 전달하고 채널별 결과를 반환합니다.
//   - 200: 한 채널 이상 전달 성공 (일부 실패 시 message로 표시)
//   - 400: 요청 형식 또는 값 오류
//   - 502: 모든 채널 전달 실패
func (h *Handler) PublishNotificationHandler(c echo.Context) error {
	req := new(request.NotificationRequest)
	if err := c.Bind(req); err != nil {
		return NewErrInvalidBody()
	}
	if err := c.Validate(req); err != nil {
		return NewErrValidationFailed(err.Error())
	}

	n, err := req.ToNotification()
	if err != nil {
		return NewErrValidationFailed(err.Error())
	}

	n.ID = uuid.NewString()
	app := auth.MustGetApplication(c)

	results := h.sender.SendAll(c.Request().Context(), req.Recipients, n)
	delivered := countDelivered(results)

	h.log(c).WithFields(applog.Fields{
		"application_id":  app.ID,
		"notification_id": n.ID,
		"channels":        len(req.Recipients),
		"delivered":       delivered,
		"category":        n.ResolvedCategory(),
	}).Info(constants.LogMsgNotificationDispatched)

	if delivered == 0 {
		return NewErrAllChannelsFailed()
	}

	message := constants.MsgSuccess
	if delivered < len(results) {
		message = constants.MsgPartialFailure
	}

	return c.JSON(http.StatusOK, response.NotificationResponse{
		ResultCode:     0,
		Message:        message,
		NotificationID: n.ID,
		Results:        results,
	})
}
