// Package action 이벤트 메시지의 의미 분류(액션 카테고리)를 정의하고 추론합니다.
package action

import (
	"strings"

	"github.com/iancoleman/strcase"
)

// Category 알림의 표현(색상, 아이콘)을 결정하는 닫힌 분류값입니다.
type Category string

const (
	VoiceJoin     Category = "voice_join"
	VoiceLeave    Category = "voice_leave"
	VoiceMove     Category = "voice_move"
	VoiceMute     Category = "voice_mute"
	VoiceUnmute   Category = "voice_unmute"
	VoiceDeafen   Category = "voice_deafen"
	VoiceUndeafen Category = "voice_undeafen"

	StatusOnline  Category = "status_online"
	StatusOffline Category = "status_offline"
	StatusIdle    Category = "status_idle"
	StatusDND     Category = "status_dnd"

	MemberJoin   Category = "member_join"
	MemberLeave  Category = "member_leave"
	MemberUpdate Category = "member_update"

	Warning Category = "warning"
	Error   Category = "error"
	Admin   Category = "admin"

	Default Category = "default"
)

var all = []Category{
	VoiceJoin, VoiceLeave, VoiceMove, VoiceMute, VoiceUnmute, VoiceDeafen, VoiceUndeafen,
	StatusOnline, StatusOffline, StatusIdle, StatusDND,
	MemberJoin, MemberLeave, MemberUpdate,
	Warning, Error, Admin,
	Default,
}

// All 모든 카테고리를 정의 순서대로 반환합니다.
func All() []Category {
	out := make([]Category, len(all))
	copy(out, all)
	return out
}

// Parse 문자열을 카테고리로 변환합니다. 대소문자와 구분자(-, 공백)는 무시합니다.
// 예: "Voice-Join", "VOICE_JOIN", "voice join" → VoiceJoin
func Parse(s string) (Category, bool) {
	normalized := Category(strcase.ToSnake(strings.TrimSpace(s)))
	for _, c := range all {
		if c == normalized {
			return c, true
		}
	}
	return "", false
}

// OrDefault 빈 카테고리를 Default로 대체합니다.
func (c Category) OrDefault() Category {
	if c == "" {
		return Default
	}
	return c
}

// EnvKey 색상 오버라이드 설정 항목의 키를 반환합니다. 예: VoiceJoin → "COLOR_VOICE_JOIN"
func (c Category) EnvKey() string {
	return "COLOR_" + strcase.ToScreamingSnake(string(c))
}

func (c Category) String() string {
	return string(c)
}
