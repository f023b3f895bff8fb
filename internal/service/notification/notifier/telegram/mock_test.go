package telegram

import (
	"context"
	"testing"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// 컴파일 타임에 client 인터페이스 구현 여부를 검증합니다.
var _ client = (*MockTelegramBot)(nil)

// MockTelegramBot Telegram Bot API(client)의 Mock 구현체입니다.
type MockTelegramBot struct {
	mock.Mock
}

// NewMockTelegramBot 새로운 MockTelegramBot 인스턴스를 생성합니다.
func NewMockTelegramBot(t *testing.T) *MockTelegramBot {
	m := &MockTelegramBot{}
	m.Test(t)
	return m
}

// Send 메시지를 전송합니다.
//
// Mock 설정 예시:
//
//	mockBot.On("Send", mock.MatchedBy(func(c tgbotapi.MessageConfig) bool {
//	    return c.Text == "expected message"
//	})).Return(tgbotapi.Message{MessageID: 1}, nil)
func (m *MockTelegramBot) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	args := m.Called(c)

	var msg tgbotapi.Message
	if args.Get(0) != nil {
		msg = args.Get(0).(tgbotapi.Message)
	}

	return msg, args.Error(1)
}

func (m *MockTelegramBot) GetUserProfilePhotos(config tgbotapi.UserProfilePhotosConfig) (tgbotapi.UserProfilePhotos, error) {
	args := m.Called(config)
	return args.Get(0).(tgbotapi.UserProfilePhotos), args.Error(1)
}

func (m *MockTelegramBot) GetFile(config tgbotapi.FileConfig) (tgbotapi.File, error) {
	args := m.Called(config)
	return args.Get(0).(tgbotapi.File), args.Error(1)
}

// stubThumbnails 고정된 썸네일을 반환하는 Thumbnails 구현체입니다.
type stubThumbnails struct {
	data []byte
	ok   bool
}

func (s *stubThumbnails) Fetch(context.Context, string) ([]byte, bool) {
	return s.data, s.ok
}

// newTestProvider MockTelegramBot을 사용하는 초기화된 Provider를 생성합니다.
func newTestProvider(t *testing.T, bot *MockTelegramBot) *Provider {
	t.Helper()

	p := newProvider(Config{
		BotToken:   "123456:secret",
		RetryDelay: 10 * time.Millisecond,
		RateLimit:  1000,
		RateBurst:  1000,
	}, func(Config) (client, error) {
		return bot, nil
	})
	require.NoError(t, p.Initialize(context.Background()))

	return p
}

func apiError(code int, message string, retryAfter int) *tgbotapi.Error {
	return &tgbotapi.Error{
		Code:               code,
		Message:            message,
		ResponseParameters: tgbotapi.ResponseParameters{RetryAfter: retryAfter},
	}
}

func isText(want string) any {
	return mock.MatchedBy(func(c tgbotapi.MessageConfig) bool {
		return c.Text == want
	})
}

func isHTMLText() any {
	return mock.MatchedBy(func(c tgbotapi.MessageConfig) bool {
		return c.ParseMode == tgbotapi.ModeHTML
	})
}

func isPlainText() any {
	return mock.MatchedBy(func(c tgbotapi.MessageConfig) bool {
		return c.ParseMode == ""
	})
}

func isPhoto() any {
	return mock.MatchedBy(func(c tgbotapi.PhotoConfig) bool {
		return true
	})
}
