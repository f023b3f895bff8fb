package event

import (
	"fmt"
	"strings"

	"github.com/darkkaiser/voice-notifier/internal/notify/action"
)

// VoiceJoined 음성 채널 입장 메시지를 생성합니다.
// others에 같은 채널에 있는 감시 대상 사용자가 있으면 함께 표시합니다.
func VoiceJoined(user, channel, server string, others ...string) string {
	if len(others) > 0 {
		return fmt.Sprintf("👥 User %s joined voice channel %s in server %s. In the same voice channel: %s",
			user, channel, server, strings.Join(others, ", "))
	}
	return fmt.Sprintf("🎙️ User %s joined voice channel %s in server %s", user, channel, server)
}

// VoiceLeft 음성 채널 퇴장 메시지를 생성합니다.
func VoiceLeft(user, channel, server string) string {
	return fmt.Sprintf("🔇 User %s left voice channel %s in server %s", user, channel, server)
}

// VoiceMoved 음성 채널 이동 메시지를 생성합니다.
func VoiceMoved(user, from, to, server string) string {
	return fmt.Sprintf("🔄 User %s moved from voice channel %s to %s in server %s", user, from, to, server)
}

// PresenceChanged 접속 상태 변경 메시지를 생성합니다.
func PresenceChanged(user, status string) string {
	return fmt.Sprintf("👤 User %s is now %s", user, status)
}

func MemberJoined(member, server string) string {
	return fmt.Sprintf("Member %s joined server %s", member, server)
}

func MemberLeft(member, server string) string {
	return fmt.Sprintf("Member %s left server %s", member, server)
}

// StatusCategory 접속 상태 문자열(online, offline, idle, dnd)에 해당하는 카테고리를 반환합니다.
// 알 수 없는 상태는 StatusOnline으로 처리합니다.
func StatusCategory(status string) action.Category {
	switch strings.ToLower(strings.TrimSpace(status)) {
	case "offline", "invisible":
		return action.StatusOffline
	case "idle":
		return action.StatusIdle
	case "dnd":
		return action.StatusDND
	default:
		return action.StatusOnline
	}
}

// statusText 상태 카테고리의 표시 문자열입니다. 예: StatusDND → "dnd"
func statusText(c action.Category) string {
	return strings.TrimPrefix(string(c), "status_")
}
