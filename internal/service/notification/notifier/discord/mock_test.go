package discord

import (
	"testing"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/mock"
)

// 컴파일 타임에 client 인터페이스 구현 여부를 검증합니다.
var _ client = (*mockClient)(nil)

// mockClient Discord REST 클라이언트의 testify/mock 구현체입니다.
type mockClient struct {
	mock.Mock
}

func newMockClient(t *testing.T) *mockClient {
	m := &mockClient{}
	m.Test(t)
	return m
}

func (m *mockClient) UserChannelCreate(recipientID string) (*discordgo.Channel, error) {
	args := m.Called(recipientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*discordgo.Channel), args.Error(1)
}

func (m *mockClient) ChannelMessageSendEmbed(channelID string, embed *discordgo.MessageEmbed) (*discordgo.Message, error) {
	args := m.Called(channelID, embed)
	return &discordgo.Message{}, args.Error(0)
}

func (m *mockClient) ChannelMessageSend(channelID, content string) (*discordgo.Message, error) {
	args := m.Called(channelID, content)
	return &discordgo.Message{}, args.Error(0)
}

// newTestProvider mockClient를 사용하는 초기화된 Provider를 생성합니다.
func newTestProvider(t *testing.T, c *mockClient) *Provider {
	t.Helper()

	p := newProvider(Config{BotToken: "token", RateLimit: 1000, RateBurst: 1000}, nil, func(string, time.Duration) (client, error) {
		return c, nil
	})
	if err := p.Initialize(t.Context()); err != nil {
		t.Fatalf("Initialize: %v", err)
	}

	return p
}
