// Package discord Discord DM으로 카드(Embed) 형식의 알림을 전달하는 Provider입니다.
package discord

import (
	"time"

	"github.com/bwmarrin/discordgo"
)

const (
	// bodyMaxLength 카드 본문(설명, 제목, 필드)의 최대 문자 수입니다. 넘으면 일반 텍스트로 나누어 보냅니다.
	bodyMaxLength = 4000

	// plainMaxLength 일반 텍스트 메시지 하나의 최대 문자 수입니다.
	plainMaxLength = 2000

	// rolesLimit 카드에 표시할 역할의 최대 개수입니다.
	rolesLimit = 5

	// channelLinkFormat 음성 채널 바로가기 주소 형식 (서버 ID, 채널 ID)
	channelLinkFormat = "https://discord.com/channels/%s/%s"
)

const (
	DefaultHTTPTimeout = 15 * time.Second
	DefaultRateLimit   = 5.0
	DefaultRateBurst   = 5
)

// client Discord REST API 중 알림 전달에 필요한 부분만 추상화한 인터페이스입니다.
type client interface {
	UserChannelCreate(recipientID string) (*discordgo.Channel, error)
	ChannelMessageSendEmbed(channelID string, embed *discordgo.MessageEmbed) (*discordgo.Message, error)
	ChannelMessageSend(channelID, content string) (*discordgo.Message, error)
}

// sessionClient discordgo.Session을 client 인터페이스에 맞게 감싼 구조체입니다.
type sessionClient struct {
	session *discordgo.Session
}

func (c *sessionClient) UserChannelCreate(recipientID string) (*discordgo.Channel, error) {
	return c.session.UserChannelCreate(recipientID)
}

func (c *sessionClient) ChannelMessageSendEmbed(channelID string, embed *discordgo.MessageEmbed) (*discordgo.Message, error) {
	return c.session.ChannelMessageSendEmbed(channelID, embed)
}

func (c *sessionClient) ChannelMessageSend(channelID, content string) (*discordgo.Message, error) {
	return c.session.ChannelMessageSend(channelID, content)
}

// Message 렌더링 결과 하나입니다. Embed와 Content 중 하나만 설정됩니다.
type Message struct {
	Embed   *discordgo.MessageEmbed
	Content string
}

// IsEmbed 카드 형식 메시지인지 여부를 반환합니다.
func (m Message) IsEmbed() bool {
	return m.Embed != nil
}
