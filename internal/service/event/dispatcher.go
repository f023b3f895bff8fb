package event

import (
	"context"

	"github.com/darkkaiser/voice-notifier/internal/notify/profile"
	"github.com/darkkaiser/voice-notifier/internal/service/notification"
	applog "github.com/darkkaiser/voice-notifier/pkg/log"
	"github.com/google/uuid"
)

const component = "event.dispatcher"

// Sender 여러 채널로 알림을 전달합니다. notification.Manager가 이 인터페이스를 만족합니다.
type Sender interface {
	SendAll(ctx context.Context, recipients map[string]string, n notification.Notification) map[string]bool
}

// Outcome Dispatch 결과입니다.
type Outcome struct {
	NotificationID string
	Duplicate      bool
	Results        map[string]bool
}

// Dispatcher 이벤트를 알림으로 변환하여 전달합니다.
type Dispatcher struct {
	sender Sender
	dedup  Deduplicator
}

// NewDispatcher 새로운 Dispatcher를 생성합니다. dedup이 nil이면 중복 판정을 하지 않습니다.
func NewDispatcher(sender Sender, dedup Deduplicator) *Dispatcher {
	return &Dispatcher{
		sender: sender,
		dedup:  dedup,
	}
}

// Dispatch 이벤트를 모든 수신 채널로 전달합니다.
//
// 윈도우 안에서 같은 키(user:channel:type)의 이벤트가 이미 전달되었으면 전달하지 않고 Duplicate를 표시합니다.
// 중복 저장소를 사용할 수 없으면 경고 로그를 남기고 전달을 계속합니다.
// 모든 채널 전달이 실패하면 기록한 키를 지워 이벤트 발생원의 재시도가 중복으로 걸러지지 않게 합니다.
func (d *Dispatcher) Dispatch(ctx context.Context, e Event) (Outcome, error) {
	if e.UserID == "" {
		return Outcome{}, ErrMissingUserID
	}
	if len(e.Recipients) == 0 {
		return Outcome{}, ErrNoRecipients
	}

	message := e.Text()
	if message == "" {
		return Outcome{}, ErrEmptyMessage
	}

	category := e.Category()
	key := e.Key()

	logger := applog.WithComponentAndFields(component, applog.Fields{
		"user_id":  e.UserID,
		"category": category,
		"key":      key,
	})

	recorded := false
	if d.dedup != nil {
		seen, err := d.dedup.Seen(ctx, key)
		switch {
		case err != nil:
			logger.WithError(err).Warn("이벤트 중복 여부를 확인할 수 없어 그대로 전달합니다")
		case seen:
			logger.Debug("중복 이벤트를 무시합니다")
			return Outcome{Duplicate: true}, nil
		default:
			recorded = true
		}
	}

	p := e.Profile
	if p == nil {
		p = &profile.UserProfile{UserID: e.UserID, Username: e.Username}
	}

	n := notification.Notification{
		ID:        uuid.NewString(),
		Message:   message,
		Profile:   p,
		Category:  category,
		ChannelID: e.ChannelID,
		ServerID:  e.ServerID,
	}

	results := d.sender.SendAll(ctx, e.Recipients, n)

	if recorded && !anyDelivered(results) {
		// 요청 컨텍스트가 취소되었더라도 키는 지웁니다.
		if err := d.dedup.Forget(context.WithoutCancel(ctx), key); err != nil {
			logger.WithError(err).Warn("전달에 실패한 이벤트의 중복 키를 삭제할 수 없습니다")
		}
	}

	logger.WithFields(applog.Fields{
		"notification_id": n.ID,
		"results":         results,
	}).Info("이벤트 알림 전달을 완료하였습니다")

	return Outcome{
		NotificationID: n.ID,
		Results:        results,
	}, nil
}

func anyDelivered(results map[string]bool) bool {
	for _, ok := range results {
		if ok {
			return true
		}
	}
	return false
}
