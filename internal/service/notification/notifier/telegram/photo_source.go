package telegram

import (
	"context"
	"fmt"
	"strconv"

	apperrors "github.com/darkkaiser/voice-notifier/internal/pkg/errors"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// LargestPhotoURL 사용자의 현재 프로필 사진 중 가장 큰 해상도의 다운로드 URL을 반환합니다.
// 프로필 사진이 없으면 false를 반환합니다. 반환된 URL에는 봇 토큰이 포함되므로 로그에 그대로 남기면 안 됩니다.
func (p *Provider) LargestPhotoURL(ctx context.Context, userID string) (string, bool, error) {
	c := p.currentClient()
	if c == nil {
		return "", false, ErrNotInitialized
	}
	if err := ctx.Err(); err != nil {
		return "", false, apperrors.Wrap(err, apperrors.Unavailable, "프로필 사진 조회가 취소되었습니다")
	}

	id, err := strconv.ParseInt(userID, 10, 64)
	if err != nil {
		return "", false, NewErrInvalidChatID(userID)
	}

	cfg := tgbotapi.NewUserProfilePhotos(id)
	cfg.Limit = 1

	photos, err := c.GetUserProfilePhotos(cfg)
	if err != nil {
		return "", false, classifyError(err, "프로필 사진 목록을 조회할 수 없습니다")
	}
	if photos.TotalCount == 0 || len(photos.Photos) == 0 || len(photos.Photos[0]) == 0 {
		return "", false, nil
	}

	largest := photos.Photos[0][0]
	for _, size := range photos.Photos[0][1:] {
		if size.Width*size.Height > largest.Width*largest.Height {
			largest = size
		}
	}

	file, err := c.GetFile(tgbotapi.FileConfig{FileID: largest.FileID})
	if err != nil {
		return "", false, classifyError(err, "프로필 사진 파일 정보를 조회할 수 없습니다")
	}
	if file.FilePath == "" {
		return "", false, nil
	}

	return fmt.Sprintf(tgbotapi.FileEndpoint, p.cfg.BotToken, file.FilePath), true, nil
}
