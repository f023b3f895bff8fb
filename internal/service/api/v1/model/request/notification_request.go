// Package request v1 API의 요청 본문 모델을 정의합니다.
package request

import (
	"fmt"
	"strings"

	"github.com/darkkaiser/voice-notifier/internal/notify/action"
	"github.com/darkkaiser/voice-notifier/internal/notify/profile"
	"github.com/darkkaiser/voice-notifier/internal/service/api/constants"
	"github.com/darkkaiser/voice-notifier/internal/service/event"
	"github.com/darkkaiser/voice-notifier/internal/service/notification"
)

// NotificationRequest 완성된 메시지를 그대로 전달하는 요청입니다.
type NotificationRequest struct {
	// Recipients 채널 이름(discord, telegram) → 수신자 ID
	Recipients map[string]string `json:"recipients" validate:"required,min=1,dive,keys,required,endkeys,required"`

	Message string `json:"message" validate:"required"`

	// Category 비어 있으면 메시지로부터 추론합니다.
	Category string `json:"category"`

	Profile   *profile.UserProfile `json:"profile"`
	ChannelID string               `json:"channel_id"`
	ServerID  string               `json:"server_id"`
}

// ToNotification 요청을 Notification으로 변환합니다. 알 수 없는 카테고리면 에러를 반환합니다.
func (r *NotificationRequest) ToNotification() (notification.Notification, error) {
	category, err := parseCategory(r.Category)
	if err != nil {
		return notification.Notification{}, err
	}

	return notification.Notification{
		Message:   r.Message,
		Profile:   r.Profile,
		Category:  category,
		ChannelID: r.ChannelID,
		ServerID:  r.ServerID,
	}, nil
}

// EventRequest 이벤트 소스가 보낸 원시 이벤트입니다. 메시지는 서버에서 생성합니다.
type EventRequest struct {
	// Type 이벤트 카테고리 (voice_join, voice_leave, voice_move, status_online ...)
	Type string `json:"type"`

	UserID   string `json:"user_id" validate:"required"`
	Username string `json:"username"`

	ChannelID           string `json:"channel_id"`
	ChannelName         string `json:"channel_name"`
	PreviousChannelName string `json:"previous_channel_name"`

	ServerID   string `json:"server_id"`
	ServerName string `json:"server_name"`

	Status string   `json:"status"`
	Others []string `json:"others"`

	// Message 지정하면 생성된 메시지 대신 사용합니다.
	Message string `json:"message"`

	Profile    *profile.UserProfile `json:"profile"`
	Recipients map[string]string    `json:"recipients" validate:"required,min=1,dive,keys,required,endkeys,required"`
}

// ToEvent 요청을 event.Event로 변환합니다. 알 수 없는 이벤트 타입이면 에러를 반환합니다.
func (r *EventRequest) ToEvent() (event.Event, error) {
	category, err := parseCategory(r.Type)
	if err != nil {
		return event.Event{}, err
	}

	return event.Event{
		Type:                category,
		UserID:              r.UserID,
		Username:            r.Username,
		ChannelID:           r.ChannelID,
		ChannelName:         r.ChannelName,
		PreviousChannelName: r.PreviousChannelName,
		ServerID:            r.ServerID,
		ServerName:          r.ServerName,
		Status:              r.Status,
		Others:              r.Others,
		Message:             r.Message,
		Profile:             r.Profile,
		Recipients:          r.Recipients,
	}, nil
}

func parseCategory(s string) (action.Category, error) {
	if strings.TrimSpace(s) == "" {
		return "", nil
	}

	category, ok := action.Parse(s)
	if !ok {
		return "", fmt.Errorf(constants.ErrMsgUnknownCategory, s)
	}
	return category, nil
}
