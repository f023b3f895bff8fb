// Package event 외부 이벤트 소스(음성 채널, 접속 상태, 서버 멤버 변경)가 보낸 이벤트를 알림 메시지로 만들고,
// 짧은 시간 안에 반복된 같은 이벤트를 걸러낸 뒤 NotificationManager로 전달합니다.
package event

import (
	"strings"

	"github.com/darkkaiser/voice-notifier/internal/notify/action"
	"github.com/darkkaiser/voice-notifier/internal/notify/profile"
)

// Event 감시 대상 사용자에게 일어난 하나의 변화입니다.
//
// Message가 비어 있으면 Type과 이름 필드로 메시지를 생성합니다.
// Type이 비어 있으면 메시지로부터 카테고리를 추론합니다.
type Event struct {
	Type action.Category

	UserID   string
	Username string

	ChannelID           string
	ChannelName         string
	PreviousChannelName string

	ServerID   string
	ServerName string

	// Status 접속 상태 원문 (online, offline, idle, dnd)
	Status string

	// Others 같은 음성 채널에 이미 있는 감시 대상 사용자 이름
	Others []string

	Message string
	Profile *profile.UserProfile

	// Recipients 채널 이름 → 수신자 ID
	Recipients map[string]string
}

// Text 알림 본문을 반환합니다. 생성할 수 없으면 빈 문자열을 반환합니다.
func (e Event) Text() string {
	if e.Message != "" {
		return e.Message
	}

	kind := e.kind()
	user := e.displayName()

	switch kind {
	case action.VoiceJoin:
		return VoiceJoined(user, e.ChannelName, e.ServerName, e.Others...)
	case action.VoiceLeave:
		return VoiceLeft(user, e.ChannelName, e.ServerName)
	case action.VoiceMove:
		return VoiceMoved(user, e.PreviousChannelName, e.ChannelName, e.ServerName)
	case action.StatusOnline, action.StatusOffline, action.StatusIdle, action.StatusDND:
		status := strings.ToLower(strings.TrimSpace(e.Status))
		if status == "" {
			status = statusText(kind)
		}
		return PresenceChanged(user, status)
	case action.MemberJoin:
		return MemberJoined(user, e.ServerName)
	case action.MemberLeave:
		return MemberLeft(user, e.ServerName)
	}

	return ""
}

// Category 명시된 Type, 없으면 본문에서 추론한 카테고리를 반환합니다.
func (e Event) Category() action.Category {
	return action.Resolve(e.kind(), e.Text())
}

// kind 접속 상태만 주어진 이벤트는 상태 문자열로 종류를 정합니다.
func (e Event) kind() action.Category {
	if e.Type == "" && e.Status != "" {
		return StatusCategory(e.Status)
	}
	return e.Type
}

// Key 중복 판정에 사용하는 키(user:channel:type)입니다.
func (e Event) Key() string {
	return e.UserID + ":" + e.ChannelID + ":" + string(e.Category())
}

func (e Event) displayName() string {
	if e.Username != "" {
		return e.Username
	}
	if e.Profile != nil {
		return e.Profile.PreferredName()
	}
	return e.UserID
}
