package handler

import (
	"net/http"

	"github.com/darkkaiser/voice-notifier/internal/service/api/auth"
	"github.com/darkkaiser/voice-notifier/internal/service/api/constants"
	"github.com/darkkaiser/voice-notifier/internal/service/api/model/response"
	"github.com/darkkaiser/voice-notifier/internal/service/api/v1/model/request"
	applog "github.com/darkkaiser/voice-notifier/pkg/log"
	"github.com/labstack/echo/v4"
)

// PublishEventHandler POST /api/v1/events
//
// 원시 이벤트(음성 채널 입퇴장, 접속 상태 변경 등)로부터 메시지를 생성하여 전달합니다.
// 중복 판정 윈도우 안에서 반복된 같은 이벤트는 전달하지 않고 duplicate=true로 응답합니다.
func (h *Handler) PublishEventHandler(c echo.Context) error {
	req := new(request.EventRequest)
	if err := c.Bind(req); err != nil {
		return NewErrInvalidBody()
	}
	if err := c.Validate(req); err != nil {
		return NewErrValidationFailed(err.Error())
	}

	e, err := req.ToEvent()
	if err != nil {
		return NewErrValidationFailed(err.Error())
	}

	app := auth.MustGetApplication(c)

	outcome, err := h.dispatcher.Dispatch(c.Request().Context(), e)
	if err != nil {
		// 입력 오류(InvalidInput)는 전역 에러 핸들러가 400으로 변환합니다.
		return err
	}

	logger := h.log(c).WithFields(applog.Fields{
		"application_id": app.ID,
		"user_id":        e.UserID,
		"category":       e.Category(),
	})

	if outcome.Duplicate {
		logger.Debug(constants.LogMsgEventDuplicateSuppressed)

		return c.JSON(http.StatusOK, response.EventResponse{
			NotificationResponse: response.NotificationResponse{
				ResultCode: 0,
				Message:    constants.MsgDuplicateEvent,
			},
			Duplicate: true,
		})
	}

	delivered := countDelivered(outcome.Results)
	logger.WithFields(applog.Fields{
		"notification_id": outcome.NotificationID,
		"delivered":       delivered,
	}).Info(constants.LogMsgEventDispatched)

	if delivered == 0 {
		return NewErrAllChannelsFailed()
	}

	message := constants.MsgSuccess
	if delivered < len(outcome.Results) {
		message = constants.MsgPartialFailure
	}

	return c.JSON(http.StatusOK, response.EventResponse{
		NotificationResponse: response.NotificationResponse{
			ResultCode:     0,
			Message:        message,
			NotificationID: outcome.NotificationID,
			Results:        outcome.Results,
		},
	})
}
