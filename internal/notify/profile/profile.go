// Package profile 알림에 함께 표시되는 사용자 프로필 스냅샷을 정의합니다.
package profile

import (
	"fmt"
	"strings"
	"time"

	"github.com/darkkaiser/voice-notifier/pkg/strutil"
)

// JoinDateLayout 가입일 표시 형식 (예: "March 5, 2024")
const JoinDateLayout = "January 2, 2006"

// UserProfile 이벤트 발생 시점의 사용자 정보입니다.
// AvatarURL은 외부 참조로만 사용하며, 이미지 자체는 profileimage 패키지가 별도로 관리합니다.
type UserProfile struct {
	UserID      string     `json:"user_id" validate:"required"`
	Username    string     `json:"username,omitempty"`
	DisplayName string     `json:"display_name,omitempty"`
	AvatarURL   string     `json:"avatar_url,omitempty"`
	JoinedAt    *time.Time `json:"joined_at,omitempty"`
	Nickname    string     `json:"nickname,omitempty"`
	Roles       []string   `json:"roles,omitempty"`
}

// PreferredName 표시 이름을 닉네임 > 표시 이름 > 사용자명 > "User {id}" 순으로 결정합니다.
func (p *UserProfile) PreferredName() string {
	if name := strutil.FirstNonEmpty(p.Nickname, p.DisplayName, p.Username); name != "" {
		return name
	}
	return fmt.Sprintf("User %s", p.UserID)
}

// JoinDate 가입일을 JoinDateLayout 형식으로 반환합니다. 가입일이 없으면 false를 반환합니다.
func (p *UserProfile) JoinDate() (string, bool) {
	if p.JoinedAt == nil || p.JoinedAt.IsZero() {
		return "", false
	}
	return p.JoinedAt.Format(JoinDateLayout), true
}

// RolesSummary 역할 목록을 최대 limit개까지 ", "로 연결하고, 나머지는 " +N more"로 요약합니다.
// 역할이 없으면 false를 반환합니다.
func (p *UserProfile) RolesSummary(limit int) (string, bool) {
	roles := make([]string, 0, len(p.Roles))
	for _, r := range p.Roles {
		if r = strings.TrimSpace(r); r != "" {
			roles = append(roles, r)
		}
	}
	if len(roles) == 0 {
		return "", false
	}

	if limit <= 0 || len(roles) <= limit {
		return strings.Join(roles, ", "), true
	}

	return fmt.Sprintf("%s +%d more", strings.Join(roles[:limit], ", "), len(roles)-limit), true
}
