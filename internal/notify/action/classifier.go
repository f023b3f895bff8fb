package action

import (
	"github.com/darkkaiser/voice-notifier/pkg/strutil"
)

// rule 하나의 카테고리에 대응하는 키워드 규칙입니다.
type rule struct {
	category Category
	matcher  *strutil.KeywordMatcher
}

func newRule(category Category, included ...string) rule {
	return rule{category: category, matcher: strutil.NewKeywordMatcher(included, nil)}
}

func newRuleExcluding(category Category, excluded []string, included ...string) rule {
	return rule{category: category, matcher: strutil.NewKeywordMatcher(included, excluded)}
}

// rules 평가 순서가 곧 우선순위입니다: 음성 > 상태 > 멤버 > 경고/오류 > 관리자.
//
// 음성 입장/퇴장/이동은 "channel"이 함께 있어야 매칭되어, "left server" 같은 멤버 이벤트 문구가
// 음성 퇴장으로 분류되지 않습니다. "unmuted", "undeafened"는 각각 "muted", "deafened"를 포함하므로
// 해제 규칙을 먼저 평가하고, "disconnecting"은 "connecting"을 포함하므로 입장 규칙에서 제외합니다.
var rules = []rule{
	newRuleExcluding(VoiceJoin, []string{"disconnecting"}, "joined|entering|connecting", "channel"),
	newRule(VoiceLeave, "left|leaving|disconnecting|🔇", "channel"),
	newRule(VoiceMove, "moved|switched", "channel"),
	newRule(VoiceUnmute, "unmuted"),
	newRule(VoiceMute, "muted|🔇"),
	newRule(VoiceUndeafen, "undeafened"),
	newRule(VoiceDeafen, "deafened"),

	newRule(StatusOnline, "online"),
	newRule(StatusOffline, "offline"),
	newRule(StatusIdle, "idle|away"),
	newRule(StatusDND, "dnd|disturb"),

	newRule(MemberJoin, "joined server|member joined"),
	newRule(MemberLeave, "left server|member left"),

	newRule(Warning, "warning|caution|alert|⚠️"),
	newRule(Error, "error|failed|problem|issue|❌"),

	newRule(Admin, "admin|administrator|moderator|staff"),
}

// Infer 자유 형식 메시지에서 액션 카테고리를 추론합니다.
//
// 대소문자를 구분하지 않는 부분 문자열 매칭을 정해진 순서로 평가하며, 처음 매칭된 규칙이 결과가 됩니다.
// 어떤 규칙에도 해당하지 않으면 Default를 반환하며, 이 함수는 실패하지 않습니다.
func Infer(message string) Category {
	for _, r := range rules {
		if r.matcher.Match(message) {
			return r.category
		}
	}
	return Default
}

// Resolve 명시된 카테고리가 있으면 그대로, 없으면 메시지로부터 추론한 카테고리를 반환합니다.
func Resolve(category Category, message string) Category {
	if category != "" {
		return category
	}
	return Infer(message)
}
