package telegram

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/darkkaiser/voice-notifier/internal/notify/profile"
	apperrors "github.com/darkkaiser/voice-notifier/internal/pkg/errors"
	"github.com/darkkaiser/voice-notifier/internal/service/notification"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestProvider_Initialize(t *testing.T) {
	t.Run("토큰 누락", func(t *testing.T) {
		err := New(Config{}).Initialize(context.Background())
		assert.ErrorIs(t, err, ErrMissingBotToken)
		assert.True(t, apperrors.Is(err, apperrors.InvalidInput))
	})

	t.Run("클라이언트 생성 실패", func(t *testing.T) {
		p := newProvider(Config{BotToken: "x"}, func(Config) (client, error) {
			return nil, NewErrInvalidBotToken(errors.New("Unauthorized"))
		})
		assert.True(t, apperrors.Is(p.Initialize(context.Background()), apperrors.InvalidInput))
	})

	t.Run("기본값 보정", func(t *testing.T) {
		p := New(Config{BotToken: "x"})
		assert.Equal(t, DefaultRetryDelay, p.retryDelay)
		assert.Equal(t, DefaultHTTPTimeout, p.cfg.HTTPTimeout)
	})
}

func TestProvider_Send_NotInitialized(t *testing.T) {
	assert.False(t, New(Config{BotToken: "x"}).Send(context.Background(), "1", notification.Notification{Message: "m"}))
}

func TestProvider_Send_InvalidChatID(t *testing.T) {
	bot := NewMockTelegramBot(t)

	assert.False(t, newTestProvider(t, bot).Send(context.Background(), "@channel", notification.Notification{Message: "m"}))
	bot.AssertNotCalled(t, "Send", mock.Anything)
}

func TestProvider_Send_EmptyMessage(t *testing.T) {
	bot := NewMockTelegramBot(t)
	p := newTestProvider(t, bot)

	n := notification.Notification{Message: ""}

	err := p.send(context.Background(), "12345", n)
	assert.ErrorIs(t, err, ErrEmptyMessage)
	assert.True(t, apperrors.Is(err, apperrors.InvalidInput))

	assert.False(t, p.Send(context.Background(), "12345", n))
	bot.AssertNotCalled(t, "Send", mock.Anything)
}

func TestProvider_Send_Text(t *testing.T) {
	bot := NewMockTelegramBot(t)
	bot.On("Send", mock.MatchedBy(func(c tgbotapi.MessageConfig) bool {
		return c.ChatID == 12345 && c.ParseMode == tgbotapi.ModeHTML && c.Text == "a &lt;b&gt;"
	})).Return(tgbotapi.Message{}, nil).Once()

	assert.True(t, newTestProvider(t, bot).Send(context.Background(), "12345", notification.Notification{Message: "a <b>"}))
	bot.AssertExpectations(t)
}

func TestProvider_Send_ChunksInOrder(t *testing.T) {
	bot := NewMockTelegramBot(t)

	var texts []string
	bot.On("Send", isHTMLText()).Run(func(args mock.Arguments) {
		texts = append(texts, args.Get(0).(tgbotapi.MessageConfig).Text)
	}).Return(tgbotapi.Message{}, nil)

	msg := strings.Repeat("x", 3999) + "\n" + strings.Repeat("y", 10)

	require.True(t, newTestProvider(t, bot).Send(context.Background(), "1", notification.Notification{Message: msg}))
	require.Len(t, texts, 2)
	assert.Equal(t, msg, strings.Join(texts, ""))
}

func TestProvider_Send_StopsOnChunkFailure(t *testing.T) {
	bot := NewMockTelegramBot(t)
	bot.On("Send", mock.Anything).Return(tgbotapi.Message{}, apiError(403, "Forbidden: bot was blocked by the user", 0)).Once()

	msg := strings.Repeat("x", 3999) + "\n" + strings.Repeat("y", 10)

	assert.False(t, newTestProvider(t, bot).Send(context.Background(), "1", notification.Notification{Message: msg}))
	bot.AssertNumberOfCalls(t, "Send", 1)
}

func TestProvider_Send_Retry(t *testing.T) {
	t.Run("5xx 후 성공", func(t *testing.T) {
		bot := NewMockTelegramBot(t)
		bot.On("Send", mock.Anything).Return(tgbotapi.Message{}, apiError(502, "Bad Gateway", 0)).Once()
		bot.On("Send", mock.Anything).Return(tgbotapi.Message{}, nil).Once()

		assert.True(t, newTestProvider(t, bot).Send(context.Background(), "1", notification.Notification{Message: "m"}))
		bot.AssertExpectations(t)
	})

	t.Run("Retry-After 준수", func(t *testing.T) {
		bot := NewMockTelegramBot(t)
		bot.On("Send", mock.Anything).Return(tgbotapi.Message{}, apiError(429, "Too Many Requests: retry after 1", 1)).Once()
		bot.On("Send", mock.Anything).Return(tgbotapi.Message{}, nil).Once()

		start := time.Now()
		assert.True(t, newTestProvider(t, bot).Send(context.Background(), "1", notification.Notification{Message: "m"}))
		assert.GreaterOrEqual(t, time.Since(start), time.Second, "Retry-After 시간만큼 대기합니다")
	})

	t.Run("재시도 횟수 초과", func(t *testing.T) {
		bot := NewMockTelegramBot(t)
		bot.On("Send", mock.Anything).Return(tgbotapi.Message{}, errors.New("connection reset"))

		assert.False(t, newTestProvider(t, bot).Send(context.Background(), "1", notification.Notification{Message: "m"}))
		bot.AssertNumberOfCalls(t, "Send", maxRetries)
	})

	t.Run("재시도 대기 중 컨텍스트 취소", func(t *testing.T) {
		bot := NewMockTelegramBot(t)
		bot.On("Send", mock.Anything).Return(tgbotapi.Message{}, apiError(429, "Too Many Requests", 30)).Once()

		ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
		defer cancel()

		start := time.Now()
		assert.False(t, newTestProvider(t, bot).Send(ctx, "1", notification.Notification{Message: "m"}))
		assert.Less(t, time.Since(start), 5*time.Second)
	})
}

func TestProvider_Send_HTMLFallback(t *testing.T) {
	t.Run("일반 텍스트 재전송 성공", func(t *testing.T) {
		bot := NewMockTelegramBot(t)
		bot.On("Send", isHTMLText()).Return(tgbotapi.Message{}, apiError(400, "Bad Request: can't parse entities", 0)).Once()
		bot.On("Send", isText("a <b> & c")).Return(tgbotapi.Message{}, nil).Once()

		assert.True(t, newTestProvider(t, bot).Send(context.Background(), "1", notification.Notification{Message: "a <b> & c"}))
		bot.AssertExpectations(t)
	})

	t.Run("일반 텍스트도 실패하면 중단", func(t *testing.T) {
		bot := NewMockTelegramBot(t)
		bot.On("Send", isHTMLText()).Return(tgbotapi.Message{}, apiError(400, "Bad Request: can't parse entities", 0)).Once()
		bot.On("Send", isPlainText()).Return(tgbotapi.Message{}, apiError(400, "Bad Request: message is too long", 0)).Once()

		assert.False(t, newTestProvider(t, bot).Send(context.Background(), "1", notification.Notification{Message: "m"}))
		bot.AssertNumberOfCalls(t, "Send", 2)
	})

	t.Run("채팅방 없음은 재전송하지 않음", func(t *testing.T) {
		bot := NewMockTelegramBot(t)
		bot.On("Send", mock.Anything).Return(tgbotapi.Message{}, apiError(400, "Bad Request: chat not found", 0)).Once()

		assert.False(t, newTestProvider(t, bot).Send(context.Background(), "1", notification.Notification{Message: "m"}))
		bot.AssertNumberOfCalls(t, "Send", 1)
	})
}

func TestProvider_Send_ImagePath(t *testing.T) {
	n := notification.Notification{
		Message: "hello",
		Profile: &profile.UserProfile{UserID: "42", Username: "alice", AvatarURL: "https://cdn.example/a.png"},
	}

	t.Run("사진 캡션으로 전송", func(t *testing.T) {
		bot := NewMockTelegramBot(t)
		bot.On("Send", mock.MatchedBy(func(c tgbotapi.PhotoConfig) bool {
			return c.ParseMode == tgbotapi.ModeHTML &&
				strings.HasSuffix(c.Caption, "\n\nhello") &&
				!strings.Contains(c.Caption, "Profile picture")
		})).Return(tgbotapi.Message{}, nil).Once()

		p := newTestProvider(t, bot)
		p.SetThumbnails(&stubThumbnails{data: []byte("jpeg"), ok: true})

		assert.True(t, p.Send(context.Background(), "1", n))
		bot.AssertExpectations(t)
	})

	t.Run("남은 조각은 텍스트로 전송", func(t *testing.T) {
		long := n
		long.Message = strings.Repeat("a", 900) + "\n" + strings.Repeat("b", 3500) + "\n" + strings.Repeat("c", 10)

		bot := NewMockTelegramBot(t)
		bot.On("Send", isPhoto()).Return(tgbotapi.Message{}, nil).Once()
		bot.On("Send", isHTMLText()).Return(tgbotapi.Message{}, nil).Once()

		p := newTestProvider(t, bot)
		p.SetThumbnails(&stubThumbnails{data: []byte("jpeg"), ok: true})

		chunks := Render(long, true)
		require.Len(t, chunks, 2)
		require.LessOrEqual(t, len([]rune(chunks[0])), captionMaxLength)

		assert.True(t, p.Send(context.Background(), "1", long))
		bot.AssertExpectations(t)
	})

	t.Run("사진 전송 실패 시 텍스트로 대체", func(t *testing.T) {
		bot := NewMockTelegramBot(t)
		bot.On("Send", isPhoto()).Return(tgbotapi.Message{}, apiError(400, "Bad Request: IMAGE_PROCESS_FAILED", 0)).Twice()
		bot.On("Send", mock.MatchedBy(func(c tgbotapi.MessageConfig) bool {
			return strings.Contains(c.Text, "Profile picture")
		})).Return(tgbotapi.Message{}, nil).Once()

		p := newTestProvider(t, bot)
		p.SetThumbnails(&stubThumbnails{data: []byte("jpeg"), ok: true})

		assert.True(t, p.Send(context.Background(), "1", n))
		bot.AssertExpectations(t)
	})

	t.Run("썸네일 없음", func(t *testing.T) {
		bot := NewMockTelegramBot(t)
		bot.On("Send", isHTMLText()).Return(tgbotapi.Message{}, nil).Once()

		p := newTestProvider(t, bot)
		p.SetThumbnails(&stubThumbnails{ok: false})

		assert.True(t, p.Send(context.Background(), "1", n))
		bot.AssertNotCalled(t, "Send", isPhoto())
	})

	t.Run("캡션 길이 초과", func(t *testing.T) {
		long := n
		long.Message = strings.Repeat("a", 2000)

		bot := NewMockTelegramBot(t)
		bot.On("Send", isHTMLText()).Return(tgbotapi.Message{}, nil).Once()

		p := newTestProvider(t, bot)
		p.SetThumbnails(&stubThumbnails{data: []byte("jpeg"), ok: true})

		assert.True(t, p.Send(context.Background(), "1", long))
		bot.AssertExpectations(t)
	})
}

func TestClassifyError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want apperrors.ErrorType
	}{
		{"봇 차단", apiError(403, "Forbidden: bot was blocked by the user", 0), apperrors.Forbidden},
		{"채팅방 없음", apiError(400, "Bad Request: chat not found", 0), apperrors.NotFound},
		{"429", apiError(429, "Too Many Requests", 3), apperrors.Unavailable},
		{"500", apiError(500, "Internal Server Error", 0), apperrors.Unavailable},
		{"400", apiError(400, "Bad Request: message is too long", 0), apperrors.ExecutionFailed},
		{"값 타입 에러", tgbotapi.Error{Code: 404, Message: "Not Found"}, apperrors.ExecutionFailed},
		{"API 에러 아님", errors.New("dial tcp"), apperrors.Unavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, apperrors.Is(classifyError(tt.err, "m"), tt.want))
		})
	}
}
