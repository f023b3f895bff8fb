package profile

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestUserProfile_PreferredName(t *testing.T) {
	tests := []struct {
		name    string
		profile UserProfile
		want    string
	}{
		{"닉네임 우선", UserProfile{UserID: "1", Username: "u", DisplayName: "d", Nickname: "n"}, "n"},
		{"표시 이름", UserProfile{UserID: "1", Username: "u", DisplayName: "d"}, "d"},
		{"사용자명", UserProfile{UserID: "1", Username: "u"}, "u"},
		{"공백 닉네임은 건너뜀", UserProfile{UserID: "1", Username: "u", Nickname: "  "}, "u"},
		{"모두 비어 있으면 합성", UserProfile{UserID: "42"}, "User 42"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.profile.PreferredName())
		})
	}
}

func TestUserProfile_JoinDate(t *testing.T) {
	joined := time.Date(2024, time.March, 5, 10, 0, 0, 0, time.UTC)

	p := UserProfile{UserID: "1", JoinedAt: &joined}
	got, ok := p.JoinDate()
	assert.True(t, ok)
	assert.Equal(t, "March 5, 2024", got)

	_, ok = (&UserProfile{UserID: "1"}).JoinDate()
	assert.False(t, ok)
}

func TestUserProfile_RolesSummary(t *testing.T) {
	p := UserProfile{Roles: []string{"a", "b", "c", "d", "e", "f", "g"}}

	got, ok := p.RolesSummary(5)
	assert.True(t, ok)
	assert.Equal(t, "a, b, c, d, e +2 more", got)

	got, _ = p.RolesSummary(3)
	assert.Equal(t, "a, b, c +4 more", got)

	got, _ = p.RolesSummary(10)
	assert.Equal(t, "a, b, c, d, e, f, g", got)

	_, ok = (&UserProfile{Roles: []string{" ", ""}}).RolesSummary(5)
	assert.False(t, ok, "빈 역할만 있으면 생략합니다")
}
