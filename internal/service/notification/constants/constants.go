package constants

// 로그 발생 위치(컴포넌트) 식별을 위한 상수입니다.
const (
	// ComponentManager Notification Manager 컴포넌트 이름
	ComponentManager = "notification.manager"

	// ComponentProviderDiscord Discord Provider 컴포넌트 이름
	ComponentProviderDiscord = "provider.discord"

	// ComponentProviderTelegram Telegram Provider 컴포넌트 이름
	ComponentProviderTelegram = "provider.telegram"
)

// 기본 채널 이름입니다. 설정 파일의 recipients 키와 API 요청의 recipients 키로 사용됩니다.
const (
	ChannelDiscord  = "discord"
	ChannelTelegram = "telegram"
)

// 전달 결과 메트릭의 result 라벨 값입니다.
const (
	ResultSuccess      = "success"
	ResultFailure      = "failure"
	ResultPanic        = "panic"
	ResultUnregistered = "unregistered"
)
