package telegram

import (
	"fmt"
	"strings"

	"github.com/darkkaiser/voice-notifier/internal/notify/markup"
	"github.com/darkkaiser/voice-notifier/internal/notify/profile"
	"github.com/darkkaiser/voice-notifier/internal/service/notification"
)

// Render 알림을 텔레그램 HTML 메시지 조각 목록으로 변환합니다.
//
// 처리 순서는 다음과 같으며 순서를 바꾸면 안 됩니다.
//  1. 사용자 메시지를 이스케이프합니다.
//  2. 프로필 머리말을 만들어 빈 줄로 구분하여 앞에 붙입니다.
//  3. 지원하지 않는 태그를 정리합니다. 이후에는 다시 이스케이프하지 않습니다.
//  4. messageMaxLength 단위로 나눕니다.
//
// withImage가 true이면 사진이 프로필 사진 안내를 대신하므로 머리말에서 해당 줄을 뺍니다.
func Render(n notification.Notification, withImage bool) []string {
	text := markup.EscapeHTML(n.Message)

	if n.Profile != nil {
		text = preamble(n.Profile, withImage) + "\n\n" + text
	}

	return markup.SplitHTML(markup.Sanitize(text), messageMaxLength)
}

func preamble(p *profile.UserProfile, withImage bool) string {
	lines := []string{
		fmt.Sprintf("<b>%s</b>", markup.EscapeHTML(p.PreferredName())),
		fmt.Sprintf("ID: <code>%s</code>", markup.EscapeHTML(p.UserID)),
	}

	if joined, ok := p.JoinDate(); ok {
		lines = append(lines, "Member since: "+joined)
	}
	if roles, ok := p.RolesSummary(rolesLimit); ok {
		lines = append(lines, "Roles: "+markup.EscapeHTML(roles))
	}
	if !withImage && p.AvatarURL != "" {
		lines = append(lines, fmt.Sprintf(`📷 <a href="%s">Profile picture</a>`, markup.EscapeAttr(p.AvatarURL)))
	}

	return strings.Join(lines, "\n")
}
