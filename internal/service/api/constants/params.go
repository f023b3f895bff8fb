package constants

import "time"

// HTTP 헤더 키 상수입니다.
const (
	// XAppKey 애플리케이션 인증용 HTTP 헤더 키
	XAppKey = "X-App-Key"

	// XApplicationID 애플리케이션 식별용 HTTP 헤더 키
	XApplicationID = "X-Application-Id"

	// RetryAfter 429 응답 시 재시도 대기 시간(초)을 알리는 헤더
	RetryAfter = "Retry-After"
)

// 서버 기본값입니다.
const (
	// DefaultMaxBodySize 요청 본문의 최대 크기입니다. 설정(api.body_limit)이 비어 있으면 사용합니다.
	DefaultMaxBodySize = "128K"

	// DefaultRequestTimeout 각 요청의 최대 처리 시간입니다.
	// 알림 전송은 채널별 재시도를 포함하므로 넉넉하게 잡습니다.
	DefaultRequestTimeout = 60 * time.Second

	DefaultReadHeaderTimeout = 10 * time.Second
	DefaultReadTimeout       = 30 * time.Second
	DefaultWriteTimeout      = 90 * time.Second
	DefaultIdleTimeout       = 120 * time.Second

	// DefaultShutdownTimeout Graceful Shutdown 대기 시간
	DefaultShutdownTimeout = 5 * time.Second

	DefaultRateLimitPerSecond = 20
	DefaultRateLimitBurst     = 40
)

// SensitiveQueryParams 로그 기록 시 값을 마스킹해야 할 쿼리 파라미터 목록입니다.
var SensitiveQueryParams = []string{
	"app_key",
	"api_key",
	"password",
	"token",
	"secret",
}

// ContextKeyApplication 인증된 Application 객체 저장용 Context 키
const ContextKeyApplication = "voice-notifier/api/auth/AuthenticatedApplication"
