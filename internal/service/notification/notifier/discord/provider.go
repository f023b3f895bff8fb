package discord

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/darkkaiser/voice-notifier/internal/notify/color"
	apperrors "github.com/darkkaiser/voice-notifier/internal/pkg/errors"
	"github.com/darkkaiser/voice-notifier/internal/service/notification"
	"github.com/darkkaiser/voice-notifier/internal/service/notification/constants"
	applog "github.com/darkkaiser/voice-notifier/pkg/log"
	"github.com/darkkaiser/voice-notifier/pkg/strutil"
	"golang.org/x/time/rate"
)

// Config Discord Provider 설정입니다. 0 이하의 값은 기본값으로 보정됩니다.
type Config struct {
	BotToken    string
	HTTPTimeout time.Duration
	RateLimit   float64
	RateBurst   int
}

// clientFactory 봇 토큰으로 client를 생성합니다.
type clientFactory func(token string, timeout time.Duration) (client, error)

// Provider Discord DM 전달 Provider입니다.
type Provider struct {
	cfg      Config
	renderer *Renderer

	newClient clientFactory

	client   client
	clientMu sync.RWMutex

	// limiter Discord API 호출 속도를 제어하여 봇이 차단되는 것을 방지합니다.
	limiter *rate.Limiter
}

// 인터페이스 준수 확인
var _ notification.Provider = (*Provider)(nil)

// New 새로운 Discord Provider를 생성합니다. 실제 연결은 Initialize에서 수행합니다.
func New(cfg Config, policy *color.Policy) *Provider {
	return newProvider(cfg, policy, newSessionClient)
}

func newProvider(cfg Config, policy *color.Policy, factory clientFactory) *Provider {
	if cfg.HTTPTimeout <= 0 {
		cfg.HTTPTimeout = DefaultHTTPTimeout
	}
	if cfg.RateLimit <= 0 {
		cfg.RateLimit = DefaultRateLimit
	}
	if cfg.RateBurst <= 0 {
		cfg.RateBurst = DefaultRateBurst
	}

	return &Provider{
		cfg:       cfg,
		renderer:  NewRenderer(policy),
		newClient: factory,
		limiter:   rate.NewLimiter(rate.Limit(cfg.RateLimit), cfg.RateBurst),
	}
}

func newSessionClient(token string, timeout time.Duration) (client, error) {
	session, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, NewErrSessionCreateFailed(err)
	}

	// 기본 HTTP 클라이언트는 타임아웃이 없으므로 반드시 명시적으로 설정합니다.
	session.Client = &http.Client{Timeout: timeout}

	return &sessionClient{session: session}, nil
}

// Initialize 봇 토큰으로 Discord REST 클라이언트를 생성합니다.
func (p *Provider) Initialize(_ context.Context) error {
	token := strings.TrimSpace(p.cfg.BotToken)
	if token == "" {
		return ErrMissingBotToken
	}

	applog.WithComponentAndFields(constants.ComponentProviderDiscord, applog.Fields{
		"bot_token": strutil.MaskSensitiveData(token),
	}).Debug("Discord REST 클라이언트를 생성합니다")

	c, err := p.newClient(token, p.cfg.HTTPTimeout)
	if err != nil {
		return err
	}

	p.clientMu.Lock()
	p.client = c
	p.clientMu.Unlock()

	return nil
}

// Send 수신자에게 DM 채널을 열고 렌더링된 메시지를 순서대로 전송합니다.
// 중간에 하나라도 실패하면 나머지 메시지는 보내지 않고 false를 반환합니다.
func (p *Provider) Send(ctx context.Context, recipientID string, n notification.Notification) bool {
	logger := applog.WithComponentAndFields(constants.ComponentProviderDiscord, applog.Fields{
		"recipient_id":    recipientID,
		"notification_id": n.ID,
	})

	if err := p.send(ctx, recipientID, n); err != nil {
		switch {
		case apperrors.Is(err, apperrors.NotFound):
			logger.WithError(err).Warn(constants.LogMsgRecipientNotFound)
		case apperrors.Is(err, apperrors.InvalidInput):
			logger.WithError(err).Warn(constants.LogMsgSendFail)
		default:
			logger.WithError(err).Error(constants.LogMsgSendFinalFail)
		}
		return false
	}

	logger.Info(constants.LogMsgSendSuccess)

	return true
}

func (p *Provider) send(ctx context.Context, recipientID string, n notification.Notification) error {
	p.clientMu.RLock()
	c := p.client
	p.clientMu.RUnlock()

	if c == nil {
		return ErrNotInitialized
	}

	if _, err := strconv.ParseUint(recipientID, 10, 64); err != nil {
		return NewErrInvalidRecipient(recipientID)
	}

	messages := p.renderer.Render(n)
	if len(messages) == 0 {
		return ErrEmptyMessage
	}

	if err := p.wait(ctx); err != nil {
		return err
	}
	channel, err := c.UserChannelCreate(recipientID)
	if err != nil {
		return classifyError(err, "DM 채널을 열 수 없습니다")
	}

	for i, m := range messages {
		if err := p.wait(ctx); err != nil {
			return err
		}

		if m.IsEmbed() {
			_, err = c.ChannelMessageSendEmbed(channel.ID, m.Embed)
		} else {
			_, err = c.ChannelMessageSend(channel.ID, m.Content)
		}
		if err != nil {
			return classifyError(err, "Discord 메시지를 전송할 수 없습니다")
		}

		applog.WithComponentAndFields(constants.ComponentProviderDiscord, applog.Fields{
			"notification_id": n.ID,
			"part":            i + 1,
			"parts":           len(messages),
			"embed":           m.IsEmbed(),
		}).Debug("메시지 조각 전송 완료")
	}

	return nil
}

func (p *Provider) wait(ctx context.Context) error {
	if err := p.limiter.Wait(ctx); err != nil {
		applog.WithComponent(constants.ComponentProviderDiscord).WithError(err).Debug(constants.LogMsgRateLimitCancel)
		return apperrors.Wrap(err, apperrors.Unavailable, constants.LogMsgRateLimitCancel)
	}
	return nil
}
