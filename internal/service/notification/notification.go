// Package notification 알림 채널(Provider)을 등록하고, 하나의 알림을 여러 채널로 동시에 전달합니다.
//
// Provider의 실패는 호출자에게 에러로 전파되지 않고 채널별 전달 결과(bool)로만 보고됩니다.
// 실패 원인은 각 Provider가 로그로 남깁니다.
package notification

import (
	"context"

	"github.com/darkkaiser/voice-notifier/internal/notify/action"
	"github.com/darkkaiser/voice-notifier/internal/notify/profile"
)

// Notification 채널에 전달할 하나의 알림입니다.
type Notification struct {
	// ID 로그 상관관계 추적용 식별자입니다. 비어 있으면 Manager가 UUID를 할당합니다.
	ID string

	Message string

	// Profile 알림 대상 사용자의 프로필입니다. nil이면 프로필 정보 없이 메시지만 전달됩니다.
	Profile *profile.UserProfile

	// Category 비어 있으면 각 Provider가 Message로부터 추론합니다.
	Category action.Category

	ChannelID string
	ServerID  string
}

// ResolvedCategory 명시된 카테고리 또는 메시지로부터 추론한 카테고리를 반환합니다.
func (n Notification) ResolvedCategory() action.Category {
	return action.Resolve(n.Category, n.Message)
}

// Provider 하나의 전달 채널(Discord DM, Telegram 봇 등)입니다.
type Provider interface {
	// Initialize 자격 증명 확인 및 클라이언트 생성을 수행합니다.
	Initialize(ctx context.Context) error

	// Send 수신자에게 알림을 전달합니다. 실패 원인은 Provider가 직접 로그로 남기고 false를 반환합니다.
	Send(ctx context.Context, recipientID string, n Notification) bool
}
