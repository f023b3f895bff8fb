package discord

import (
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/bwmarrin/discordgo"
	"github.com/darkkaiser/voice-notifier/internal/notify/color"
	"github.com/darkkaiser/voice-notifier/internal/notify/markup"
	"github.com/darkkaiser/voice-notifier/internal/service/notification"
	"github.com/darkkaiser/voice-notifier/internal/service/notification/constants"
	applog "github.com/darkkaiser/voice-notifier/pkg/log"
)

// Renderer 알림을 Discord 메시지 목록으로 변환합니다. 상태를 갖지 않으며 동시에 사용해도 안전합니다.
type Renderer struct {
	policy *color.Policy
	now    func() time.Time
}

// NewRenderer 새로운 Renderer를 생성합니다. policy가 nil이면 기본 색상표를 사용합니다.
func NewRenderer(policy *color.Policy) *Renderer {
	if policy == nil {
		policy = color.NewPolicy(nil)
	}

	return &Renderer{
		policy: policy,
		now:    time.Now,
	}
}

// Render 알림을 카드 하나로 변환합니다.
// 구성된 카드 본문이 bodyMaxLength를 넘으면 카드를 포기하고 원본 메시지를 plainMaxLength 단위로 나눈 일반 메시지 목록을 반환합니다.
func (r *Renderer) Render(n notification.Notification) []Message {
	embed := &discordgo.MessageEmbed{
		Description: n.Message,
		Color:       int(r.policy.Resolve(n.ResolvedCategory())),
		Timestamp:   r.now().Format(time.RFC3339),
	}

	if p := n.Profile; p != nil {
		title := p.PreferredName()
		if p.Username != "" && p.Username != title {
			title = fmt.Sprintf("%s (%s)", title, p.Username)
		}
		embed.Author = &discordgo.MessageEmbedAuthor{Name: title}

		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:   "ID",
			Value:  fmt.Sprintf("`%s`", p.UserID),
			Inline: true,
		})
		if joined, ok := p.JoinDate(); ok {
			embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
				Name:   "Member since",
				Value:  joined,
				Inline: true,
			})
		}
		if roles, ok := p.RolesSummary(rolesLimit); ok {
			embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
				Name:  "Roles",
				Value: roles,
			})
		}

		if p.AvatarURL != "" {
			embed.Thumbnail = &discordgo.MessageEmbedThumbnail{URL: p.AvatarURL}
		}
	}

	if field := r.channelField(n); field != nil {
		embed.Fields = append(embed.Fields, field)
	}

	if bodyLength(embed) > bodyMaxLength {
		applog.WithComponentAndFields(constants.ComponentProviderDiscord, applog.Fields{
			"notification_id": n.ID,
			"length":          utf8.RuneCountInString(n.Message),
		}).Info(constants.LogMsgOverflowSplit)

		chunks := markup.Split(n.Message, plainMaxLength)
		messages := make([]Message, 0, len(chunks))
		for _, c := range chunks {
			messages = append(messages, Message{Content: c})
		}
		return messages
	}

	return []Message{{Embed: embed}}
}

func (r *Renderer) channelField(n notification.Notification) *discordgo.MessageEmbedField {
	if n.ChannelID == "" {
		return nil
	}

	if n.ServerID == "" {
		applog.WithComponentAndFields(constants.ComponentProviderDiscord, applog.Fields{
			"notification_id": n.ID,
			"channel_id":      n.ChannelID,
		}).Warn(constants.LogMsgMissingServerID)

		return &discordgo.MessageEmbedField{Name: "Voice Channel", Value: n.ChannelID}
	}

	return &discordgo.MessageEmbedField{
		Name:  "Voice Channel",
		Value: fmt.Sprintf("[Open channel](%s)", ChannelLink(n.ServerID, n.ChannelID)),
	}
}

// ChannelLink 음성 채널 바로가기 주소를 반환합니다.
func ChannelLink(serverID, channelID string) string {
	return fmt.Sprintf(channelLinkFormat, serverID, channelID)
}

// bodyLength 카드에 표시되는 텍스트의 총 문자 수입니다.
func bodyLength(e *discordgo.MessageEmbed) int {
	n := utf8.RuneCountInString(e.Description) + utf8.RuneCountInString(e.Title)
	if e.Author != nil {
		n += utf8.RuneCountInString(e.Author.Name)
	}
	for _, f := range e.Fields {
		n += utf8.RuneCountInString(f.Name) + utf8.RuneCountInString(f.Value)
	}
	return n
}
