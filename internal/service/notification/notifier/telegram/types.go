// Package telegram 텔레그램 봇으로 HTML 서식의 알림을 전달하는 Provider입니다.
//
// 사용자 메시지는 항상 이스케이프된 후 프로필 정보와 합쳐지고, 텔레그램이 지원하는 태그만 남도록 정리됩니다.
// 프로필 썸네일을 구할 수 있으면 첫 메시지를 사진 캡션으로 보내며, 사진 경로의 모든 실패는 텍스트 전송으로 대체됩니다.
package telegram

import (
	"context"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const (
	// messageMaxLength 텔레그램 메시지 하나의 최대 문자 수입니다.
	//
	// 텔레그램 Bot API 공식 제한은 4096자이지만, 태그와 엔티티 오버헤드를 고려하여 4000자로 나눕니다.
	messageMaxLength = 4000

	// captionMaxLength 사진 캡션의 최대 문자 수입니다. 이를 넘으면 사진 없이 텍스트로 전송합니다.
	captionMaxLength = 1024

	// rolesLimit 프로필 머리말에 표시할 역할의 최대 개수입니다.
	rolesLimit = 3

	// maxRetries 전송 실패 시 최대 시도 횟수입니다.
	maxRetries = 3

	// thumbnailFileName 사진 업로드 시 사용할 파일 이름입니다.
	thumbnailFileName = "profile.jpg"
)

const (
	DefaultHTTPTimeout = 30 * time.Second
	DefaultRetryDelay  = 1 * time.Second

	// DefaultRateLimit 초당 허용 요청 수 (텔레그램 정책: 봇 전체 초당 30회)
	DefaultRateLimit = 25.0
	DefaultRateBurst = 5
)

// client 텔레그램 봇 API 중 알림 전달과 프로필 사진 조회에 필요한 부분만 추상화한 인터페이스입니다.
type client interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	GetUserProfilePhotos(config tgbotapi.UserProfilePhotosConfig) (tgbotapi.UserProfilePhotos, error)
	GetFile(config tgbotapi.FileConfig) (tgbotapi.File, error)
}

// tgClient tgbotapi.BotAPI를 래핑하여 client 인터페이스를 구현하는 구조체입니다.
type tgClient struct {
	*tgbotapi.BotAPI
}

// Thumbnails 사용자의 프로필 썸네일을 제공합니다. profileimage.Pipeline이 이 인터페이스를 만족합니다.
type Thumbnails interface {
	Fetch(ctx context.Context, userID string) ([]byte, bool)
}
