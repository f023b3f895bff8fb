package telegram

import (
	"context"
	"time"

	"github.com/darkkaiser/voice-notifier/internal/notify/markup"
	"github.com/darkkaiser/voice-notifier/internal/service/notification/constants"
	applog "github.com/darkkaiser/voice-notifier/pkg/log"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// chattableFunc HTML 모드 여부에 따라 전송할 요청을 생성합니다.
type chattableFunc func(useHTML bool) tgbotapi.Chattable

// sendText 텍스트 메시지 하나를 전송합니다.
func (p *Provider) sendText(ctx context.Context, c client, chatID int64, text string) error {
	return p.sendWithRetry(ctx, c, chatID, "text", func(useHTML bool) tgbotapi.Chattable {
		if useHTML {
			msg := tgbotapi.NewMessage(chatID, text)
			msg.ParseMode = tgbotapi.ModeHTML
			return msg
		}
		return tgbotapi.NewMessage(chatID, markup.VisibleText(text))
	})
}

// sendPhoto 썸네일을 캡션과 함께 전송합니다.
func (p *Provider) sendPhoto(ctx context.Context, c client, chatID int64, thumb []byte, caption string) error {
	return p.sendWithRetry(ctx, c, chatID, "photo", func(useHTML bool) tgbotapi.Chattable {
		photo := tgbotapi.NewPhoto(chatID, tgbotapi.FileBytes{Name: thumbnailFileName, Bytes: thumb})
		if useHTML {
			photo.Caption = caption
			photo.ParseMode = tgbotapi.ModeHTML
		} else {
			photo.Caption = markup.VisibleText(caption)
		}
		return photo
	})
}

// sendWithRetry 요청을 전송하고, 일시적인 실패는 재시도합니다.
//
//   - 전송 전 Rate Limiter 토큰을 기다립니다. 컨텍스트가 취소되면 즉시 중단합니다.
//   - 429와 5xx는 Retry-After(없으면 retryDelay)만큼 기다린 뒤 최대 maxRetries회까지 재시도합니다.
//   - HTML 모드의 400 응답은 파싱 오류로 보고 일반 텍스트로 한 번 더 전송합니다.
//   - 수신자 문제(403, chat not found)는 재시도하지 않습니다.
func (p *Provider) sendWithRetry(ctx context.Context, c client, chatID int64, kind string, build chattableFunc) error {
	useHTML := true
	var lastErr error

	for attempt := 1; attempt <= maxRetries; attempt++ {
		if err := p.limiter.Wait(ctx); err != nil {
			applog.WithComponentAndFields(constants.ComponentProviderTelegram, applog.Fields{
				"chat_id": chatID,
				"error":   err,
			}).Debug(constants.LogMsgRateLimitCancel)
			return classifyError(err, constants.LogMsgRateLimitCancel)
		}

		_, err := c.Send(build(useHTML))
		if err == nil {
			applog.WithComponentAndFields(constants.ComponentProviderTelegram, applog.Fields{
				"chat_id": chatID,
				"attempt": attempt,
				"kind":    kind,
				"mode":    parseModeToString(useHTML),
			}).Debug(constants.LogMsgSendSuccess)
			return nil
		}

		lastErr = err
		logger := applog.WithComponentAndFields(constants.ComponentProviderTelegram, applog.Fields{
			"chat_id": chatID,
			"attempt": attempt,
			"kind":    kind,
			"mode":    parseModeToString(useHTML),
			"error":   err,
		})
		logger.Warn(constants.LogMsgSendFail)

		errCode, apiMessage, retryAfter := extractTelegramErrorCode(err)

		if isRecipientError(errCode, apiMessage) {
			return classifyError(err, constants.LogMsgRecipientNotFound)
		}

		// HTML 파싱 에러 시 Plain Text로 Fallback
		if useHTML && errCode == 400 {
			logger.Warn(constants.LogMsgHTMLFallback)
			useHTML = false
			continue
		}

		if !shouldRetryError(errCode) {
			logger.WithField("code", errCode).Error(constants.LogMsgCriticalError)
			return classifyError(err, constants.LogMsgCriticalError)
		}

		if attempt >= maxRetries {
			break
		}

		if errCode == 429 && retryAfter > 0 {
			logger.WithField("retry_after", retryAfter).Warn(constants.LogMsgRateLimitWait)
		}

		select {
		case <-ctx.Done():
			logger.Debug(constants.LogMsgRetryTimeout)
			return classifyError(ctx.Err(), constants.LogMsgRetryTimeout)
		case <-time.After(p.retryWaitDuration(retryAfter)):
		}
	}

	return classifyError(lastErr, constants.LogMsgSendFinalFail)
}

// retryWaitDuration 재시도 대기 시간을 계산합니다.
// Retry-After 값이 있으면 그 값을 사용하고, 없으면 기본 대기 시간을 사용합니다.
func (p *Provider) retryWaitDuration(retryAfter int) time.Duration {
	if retryAfter > 0 {
		return time.Duration(retryAfter) * time.Second
	}
	return p.retryDelay
}

func parseModeToString(useHTML bool) string {
	if useHTML {
		return "HTML"
	}
	return "PlainText"
}
