package telegram

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	apperrors "github.com/darkkaiser/voice-notifier/internal/pkg/errors"
	"github.com/darkkaiser/voice-notifier/internal/service/notification"
	"github.com/darkkaiser/voice-notifier/internal/service/notification/constants"
	applog "github.com/darkkaiser/voice-notifier/pkg/log"
	"github.com/darkkaiser/voice-notifier/pkg/strutil"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"golang.org/x/time/rate"
)

// Config 텔레그램 Provider 설정입니다. 0 이하의 값은 기본값으로 보정됩니다.
type Config struct {
	BotToken    string
	Debug       bool
	HTTPTimeout time.Duration
	RetryDelay  time.Duration
	RateLimit   float64
	RateBurst   int
}

// clientFactory 봇 토큰으로 client를 생성합니다.
type clientFactory func(cfg Config) (client, error)

// Provider 텔레그램 봇 알림 전달 Provider입니다.
type Provider struct {
	cfg Config

	newClient clientFactory

	client   client
	clientMu sync.RWMutex

	// thumbnails 프로필 썸네일 제공자입니다. nil이면 항상 텍스트로만 전송합니다.
	thumbnails Thumbnails

	// retryDelay API 호출 실패 시 재시도 전에 대기하는 시간입니다.
	retryDelay time.Duration

	// limiter 텔레그램 API 호출 속도를 제어하는 Rate Limiter입니다.
	limiter *rate.Limiter
}

// 인터페이스 준수 확인
var _ notification.Provider = (*Provider)(nil)

// New 새로운 텔레그램 Provider를 생성합니다. 실제 연결은 Initialize에서 수행합니다.
func New(cfg Config) *Provider {
	return newProvider(cfg, newBotClient)
}

func newProvider(cfg Config, factory clientFactory) *Provider {
	if cfg.HTTPTimeout <= 0 {
		cfg.HTTPTimeout = DefaultHTTPTimeout
	}
	if cfg.RetryDelay <= 0 {
		cfg.RetryDelay = DefaultRetryDelay
	}
	if cfg.RateLimit <= 0 {
		cfg.RateLimit = DefaultRateLimit
	}
	if cfg.RateBurst <= 0 {
		cfg.RateBurst = DefaultRateBurst
	}

	return &Provider{
		cfg:        cfg,
		newClient:  factory,
		retryDelay: cfg.RetryDelay,
		limiter:    rate.NewLimiter(rate.Limit(cfg.RateLimit), cfg.RateBurst),
	}
}

func newBotClient(cfg Config) (client, error) {
	// Go의 기본 http.DefaultClient는 타임아웃이 없어 네트워크 장애 시 요청이 무한히 대기할 수 있습니다.
	httpClient := &http.Client{Timeout: cfg.HTTPTimeout}

	botAPI, err := tgbotapi.NewBotAPIWithClient(cfg.BotToken, tgbotapi.APIEndpoint, httpClient)
	if err != nil {
		return nil, NewErrInvalidBotToken(err)
	}
	botAPI.Debug = cfg.Debug

	return &tgClient{BotAPI: botAPI}, nil
}

// SetThumbnails 프로필 썸네일 제공자를 설정합니다. Send 호출 전에 설정해야 합니다.
func (p *Provider) SetThumbnails(t Thumbnails) {
	p.thumbnails = t
}

// Initialize 봇 토큰으로 텔레그램 봇 API 클라이언트를 생성합니다.
func (p *Provider) Initialize(_ context.Context) error {
	if strings.TrimSpace(p.cfg.BotToken) == "" {
		return ErrMissingBotToken
	}

	applog.WithComponentAndFields(constants.ComponentProviderTelegram, applog.Fields{
		"bot_token": strutil.MaskSensitiveData(p.cfg.BotToken),
	}).Debug("텔레그램 Provider 초기화 및 봇 API 클라이언트 생성 시작")

	c, err := p.newClient(p.cfg)
	if err != nil {
		return err
	}

	p.clientMu.Lock()
	p.client = c
	p.clientMu.Unlock()

	return nil
}

func (p *Provider) currentClient() client {
	p.clientMu.RLock()
	defer p.clientMu.RUnlock()
	return p.client
}

// Send 알림을 렌더링하여 채팅방으로 전송합니다.
//
// 프로필 썸네일이 있으면 첫 조각을 사진 캡션으로 보내고 나머지 조각을 이어서 보냅니다.
// 사진 경로에서 실패하면 프로필 사진 안내가 포함된 텍스트 경로로 처음부터 다시 보냅니다.
func (p *Provider) Send(ctx context.Context, recipientID string, n notification.Notification) bool {
	logger := applog.WithComponentAndFields(constants.ComponentProviderTelegram, applog.Fields{
		"recipient_id":    recipientID,
		"notification_id": n.ID,
	})

	if err := p.send(ctx, recipientID, n); err != nil {
		switch {
		case apperrors.Is(err, apperrors.NotFound), apperrors.Is(err, apperrors.Forbidden):
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
	c := p.currentClient()
	if c == nil {
		return ErrNotInitialized
	}

	chatID, err := strconv.ParseInt(strings.TrimSpace(recipientID), 10, 64)
	if err != nil {
		return NewErrInvalidChatID(recipientID)
	}

	if sent, err := p.sendWithImage(ctx, c, chatID, n); sent || err != nil {
		return err
	}

	chunks := Render(n, false)
	if len(chunks) == 0 {
		return ErrEmptyMessage
	}

	for _, chunk := range chunks {
		if err := p.sendText(ctx, c, chatID, chunk); err != nil {
			return err
		}
	}

	return nil
}

// sendWithImage 사진 경로로 전송을 시도합니다.
// 사진 경로를 사용할 수 없거나 사진 전송이 실패하면 (false, nil)을 반환하여 텍스트 경로로 넘깁니다.
// 사진은 전송되었지만 이어지는 텍스트 조각이 실패한 경우에만 에러를 반환합니다.
func (p *Provider) sendWithImage(ctx context.Context, c client, chatID int64, n notification.Notification) (bool, error) {
	if p.thumbnails == nil || n.Profile == nil || n.Profile.UserID == "" {
		return false, nil
	}

	thumb, ok := p.thumbnails.Fetch(ctx, n.Profile.UserID)
	if !ok {
		return false, nil
	}

	logger := applog.WithComponentAndFields(constants.ComponentProviderTelegram, applog.Fields{
		"chat_id":         chatID,
		"notification_id": n.ID,
	})

	chunks := Render(n, true)
	if len(chunks) == 0 {
		return false, nil
	}
	if utf8.RuneCountInString(chunks[0]) > captionMaxLength {
		logger.WithField("length", utf8.RuneCountInString(chunks[0])).Info(constants.LogMsgCaptionTooLong)
		return false, nil
	}

	if err := p.sendPhoto(ctx, c, chatID, thumb, chunks[0]); err != nil {
		if ctx.Err() != nil {
			return false, err
		}
		logger.WithError(err).Warn(constants.LogMsgPhotoFallback)
		return false, nil
	}

	for _, chunk := range chunks[1:] {
		if err := p.sendText(ctx, c, chatID, chunk); err != nil {
			return true, err
		}
	}

	return true, nil
}
