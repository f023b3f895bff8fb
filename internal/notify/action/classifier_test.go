package action

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInfer(t *testing.T) {
	tests := []struct {
		message string
		want    Category
	}{
		{"🎙️ User Alice joined voice channel General in server Home", VoiceJoin},
		{"User is connecting to channel Lobby", VoiceJoin},
		{"🔇 User Alice left voice channel General in server Home", VoiceLeave},
		{"User disconnecting from CHANNEL", VoiceLeave},
		{"🔄 User Alice moved from voice channel A to B in server Home", VoiceMove},
		{"User switched channel", VoiceMove},
		{"User Alice muted", VoiceMute},
		{"User Alice unmuted", VoiceUnmute},
		{"User Alice deafened", VoiceDeafen},
		{"User Alice undeafened", VoiceUndeafen},
		{"👤 User Alice is now online", StatusOnline},
		{"User Alice went offline", StatusOffline},
		{"User Alice is away", StatusIdle},
		{"User Alice is idle", StatusIdle},
		{"User Alice set Do Not Disturb", StatusDND},
		{"User Alice is dnd", StatusDND},
		{"Alice joined server Home", MemberJoin},
		{"A new member joined", MemberJoin},
		{"Alice left server Home", MemberLeave},
		{"Warning: disk almost full", Warning},
		{"⚠️ rate limited", Warning},
		{"Delivery failed", Error},
		{"❌ something", Error},
		{"Moderator action taken", Admin},
		{"completely unrelated text", Default},
		{"", Default},
	}

	for _, tt := range tests {
		t.Run(tt.message, func(t *testing.T) {
			assert.Equal(t, tt.want, Infer(tt.message))
		})
	}
}

func TestInfer_VoiceKeywordWithChannelWinsRegardlessOfCase(t *testing.T) {
	voice := map[string]Category{
		"joined":        VoiceJoin,
		"entering":      VoiceJoin,
		"connecting":    VoiceJoin,
		"left":          VoiceLeave,
		"leaving":       VoiceLeave,
		"disconnecting": VoiceLeave,
		"moved":         VoiceMove,
		"switched":      VoiceMove,
	}

	// 상태/경고 키워드가 함께 있어도 음성 규칙이 우선합니다.
	noise := []string{"", " online", " offline", " idle", " warning"}

	for keyword, want := range voice {
		for _, n := range noise {
			for _, variant := range []string{strings.ToUpper(keyword), strings.ToLower(keyword)} {
				msg := "User " + variant + " the Channel" + n
				assert.Equal(t, want, Infer(msg), msg)
			}
		}
	}
}

func TestInfer_LeaveWithoutChannelIsNotVoice(t *testing.T) {
	assert.Equal(t, MemberLeave, Infer("Alice left server Home"))
	assert.Equal(t, Default, Infer("Alice left"))
}

func TestResolve(t *testing.T) {
	assert.Equal(t, Admin, Resolve(Admin, "User joined voice channel"))
	assert.Equal(t, VoiceJoin, Resolve("", "User joined voice channel"))
}

func TestParse(t *testing.T) {
	tests := []struct {
		in     string
		want   Category
		wantOK bool
	}{
		{"voice_join", VoiceJoin, true},
		{"VOICE_JOIN", VoiceJoin, true},
		{"voice-join", VoiceJoin, true},
		{" status_dnd ", StatusDND, true},
		{"default", Default, true},
		{"unknown_category", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := Parse(tt.in)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCategory_EnvKey(t *testing.T) {
	assert.Equal(t, "COLOR_VOICE_JOIN", VoiceJoin.EnvKey())
	assert.Equal(t, "COLOR_STATUS_DND", StatusDND.EnvKey())
	assert.Equal(t, "COLOR_DEFAULT", Default.EnvKey())
}

func TestAll(t *testing.T) {
	categories := All()
	assert.Len(t, categories, 18)
	assert.Equal(t, Default, categories[len(categories)-1])

	categories[0] = "mutated"
	assert.Equal(t, VoiceJoin, All()[0], "반환된 슬라이스 변경이 내부 상태에 영향을 주면 안 됩니다")
}

func TestCategory_OrDefault(t *testing.T) {
	assert.Equal(t, Default, Category("").OrDefault())
	assert.Equal(t, Warning, Warning.OrDefault())
}
