package notification

import (
	"context"
	"fmt"
	"runtime/debug"
	"sort"
	"sync"

	"github.com/darkkaiser/voice-notifier/internal/service/notification/constants"
	applog "github.com/darkkaiser/voice-notifier/pkg/log"
	"github.com/google/uuid"
)

// Manager 채널 이름별로 Provider를 보관하고 알림 전달을 중계합니다.
//
// 등록과 전달은 여러 고루틴에서 동시에 호출해도 안전합니다.
type Manager struct {
	providers   map[string]Provider
	providersMu sync.RWMutex

	metrics *deliveryMetrics
}

// NewManager 빈 Manager를 생성합니다.
func NewManager() *Manager {
	return &Manager{
		providers: make(map[string]Provider),
		metrics:   defaultMetrics,
	}
}

// Register name 채널에 Provider를 등록합니다. 같은 이름이 이미 있으면 교체합니다.
func (m *Manager) Register(name string, provider Provider) {
	m.providersMu.Lock()
	_, replaced := m.providers[name]
	m.providers[name] = provider
	m.providersMu.Unlock()

	logger := applog.WithComponentAndFields(constants.ComponentManager, applog.Fields{
		"provider": name,
	})
	if replaced {
		logger.Warn(constants.LogMsgProviderReplaced)
	}
	logger.Info(constants.LogMsgProviderRegistered)
}

// Names 등록된 채널 이름을 정렬하여 반환합니다.
func (m *Manager) Names() []string {
	m.providersMu.RLock()
	defer m.providersMu.RUnlock()

	names := make([]string, 0, len(m.providers))
	for name := range m.providers {
		names = append(names, name)
	}
	sort.Strings(names)

	return names
}

// Lookup name 채널의 Provider를 반환합니다.
func (m *Manager) Lookup(name string) (Provider, error) {
	m.providersMu.RLock()
	defer m.providersMu.RUnlock()

	p, ok := m.providers[name]
	if !ok {
		return nil, ErrProviderNotFound
	}
	return p, nil
}

// InitializeAll 등록된 모든 Provider를 이름 순서대로 초기화합니다.
// 하나가 실패해도 나머지는 계속 초기화하며, 실패한 Provider의 에러만 맵으로 반환합니다.
func (m *Manager) InitializeAll(ctx context.Context) map[string]error {
	failures := make(map[string]error)

	for _, name := range m.Names() {
		p, err := m.Lookup(name)
		if err != nil {
			continue
		}

		logger := applog.WithComponentAndFields(constants.ComponentManager, applog.Fields{
			"provider": name,
		})
		logger.Debug(constants.LogMsgProviderInitializing)

		if err := initializeSafely(ctx, name, p); err != nil {
			logger.WithError(err).Error(constants.LogMsgProviderInitFailed)
			failures[name] = err
			continue
		}

		logger.Info(constants.LogMsgProviderInitialized)
	}

	return failures
}

func initializeSafely(ctx context.Context, name string, p Provider) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = NewErrProviderPanic(name, r)
		}
	}()

	if err := p.Initialize(ctx); err != nil {
		return NewErrProviderInitFailed(name, err)
	}
	return nil
}

// Send name 채널의 Provider로 알림을 전달합니다.
// 등록되지 않은 채널이거나 Provider에서 패닉이 발생하면 false를 반환합니다.
func (m *Manager) Send(ctx context.Context, name, recipientID string, n Notification) bool {
	if n.ID == "" {
		n.ID = uuid.NewString()
	}

	return m.deliver(ctx, name, recipientID, n)
}

// SendAll recipients(채널 이름 → 수신자 ID)의 각 채널로 알림을 동시에 전달하고, 채널별 결과를 반환합니다.
// 모든 채널의 전달이 끝날 때까지 대기합니다. 같은 알림의 모든 채널 전달은 하나의 ID를 공유합니다.
func (m *Manager) SendAll(ctx context.Context, recipients map[string]string, n Notification) map[string]bool {
	results := make(map[string]bool, len(recipients))

	if n.ID == "" {
		n.ID = uuid.NewString()
	}

	logger := applog.WithComponentAndFields(constants.ComponentManager, applog.Fields{
		"notification_id": n.ID,
		"channels":        len(recipients),
	})

	if len(recipients) == 0 {
		logger.Debug(constants.LogMsgDispatchEmptyRecipients)
		return results
	}

	logger.Debug(constants.LogMsgDispatchStarted)

	var (
		mu sync.Mutex
		wg sync.WaitGroup
	)

	for name, recipientID := range recipients {
		wg.Add(1)
		go func() {
			defer wg.Done()

			ok := m.deliver(ctx, name, recipientID, n)

			mu.Lock()
			results[name] = ok
			mu.Unlock()
		}()
	}

	wg.Wait()

	logger.WithField("results", results).Debug(constants.LogMsgDispatchCompleted)

	return results
}

// deliver 단일 채널 전달을 수행합니다. Provider의 패닉은 복구되어 false로 보고됩니다.
func (m *Manager) deliver(ctx context.Context, name, recipientID string, n Notification) (ok bool) {
	logger := applog.WithComponentAndFields(constants.ComponentManager, applog.Fields{
		"provider":        name,
		"recipient_id":    recipientID,
		"notification_id": n.ID,
	})

	p, err := m.Lookup(name)
	if err != nil {
		logger.WithError(err).Warn(constants.LogMsgProviderNotFound)
		m.metrics.observe(name, constants.ResultUnregistered)
		return false
	}

	defer func() {
		if r := recover(); r != nil {
			logger.WithFields(applog.Fields{
				"panic": fmt.Sprint(r),
				"stack": string(debug.Stack()),
			}).Error(constants.LogMsgProviderPanicRecovered)

			m.metrics.observe(name, constants.ResultPanic)
			ok = false
		}
	}()

	ok = p.Send(ctx, recipientID, n)
	if ok {
		m.metrics.observe(name, constants.ResultSuccess)
		logger.Debug(constants.LogMsgDeliveryCompleted)
	} else {
		m.metrics.observe(name, constants.ResultFailure)
		logger.Warn(constants.LogMsgDeliveryFailed)
	}

	return ok
}
