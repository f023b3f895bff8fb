package config

import (
	"fmt"
	"time"

	apperrors "github.com/darkkaiser/voice-notifier/internal/pkg/errors"
	"github.com/go-playground/validator/v10"
)

const (
	// StoreMemory 프로세스 메모리 저장소
	StoreMemory = "memory"

	// StoreRedis Redis 저장소
	StoreRedis = "redis"
)

// AppConfig 애플리케이션의 모든 설정을 포함하는 최상위 구조체
type AppConfig struct {
	Debug        bool               `json:"debug"`
	Discord      DiscordConfig      `json:"discord"`
	Telegram     TelegramConfig     `json:"telegram"`
	Notification NotificationConfig `json:"notification"`
	Thumbnail    ThumbnailConfig    `json:"thumbnail"`
	Cache        CacheConfig        `json:"cache"`
	Redis        RedisConfig        `json:"redis"`
	Event        EventConfig        `json:"event"`
	Scheduler    SchedulerConfig    `json:"scheduler"`
	API          APIConfig          `json:"api"`
}

// validate 설정 파일 로드 직후, 각 설정 항목의 정합성과 필수 값의 유효성을 검증합니다.
func (c *AppConfig) validate(v *validator.Validate) error {
	if !c.Discord.Enabled && !c.Telegram.Enabled {
		return apperrors.New(apperrors.InvalidInput, "활성화된 알림 채널이 없습니다. discord 또는 telegram 중 하나 이상을 활성화해야 합니다")
	}

	if err := checkStruct(v, c.Discord, "Discord"); err != nil {
		return err
	}
	if err := checkStruct(v, c.Telegram, "Telegram"); err != nil {
		return err
	}
	if err := checkStruct(v, c.Thumbnail, "Thumbnail"); err != nil {
		return err
	}
	if err := checkStruct(v, c.Cache, "Cache"); err != nil {
		return err
	}
	if err := checkStruct(v, c.Event, "Event"); err != nil {
		return err
	}
	if err := checkStruct(v, c.Scheduler, "Scheduler"); err != nil {
		return err
	}

	if c.Cache.Store == StoreRedis || c.Event.DedupStore == StoreRedis {
		if err := checkStruct(v, c.Redis, "Redis"); err != nil {
			return err
		}
	}

	if err := c.API.validate(v); err != nil {
		return err
	}

	return nil
}

// VerifyRecommendations 서비스 운영의 안정성과 보안을 위해 권장되는 설정 준수 여부를 진단합니다.
// 강제적인 에러를 발생시키지는 않으나, 잠재적 위험 요소(예: Well-known Port 사용)에 대한 경고 메시지를 반환합니다.
func (c *AppConfig) VerifyRecommendations() []string {
	var warnings []string

	if c.API.Enabled {
		warnings = append(warnings, c.API.VerifyRecommendations()...)
	}

	if c.Telegram.Enabled && !c.Thumbnail.Enabled {
		warnings = append(warnings, "프로필 썸네일이 비활성화되어 있습니다. 텔레그램 알림은 프로필 사진 없이 텍스트로만 전송됩니다")
	}

	if !c.Scheduler.Enabled {
		warnings = append(warnings, "캐시 정리 스케줄러가 비활성화되어 있습니다. 프로필 이미지 캐시가 정리되지 않고 계속 누적될 수 있습니다")
	}

	if c.Debug {
		warnings = append(warnings, "디버그 모드가 활성화되어 있습니다. 운영 환경에서는 비활성화를 권장합니다")
	}

	return warnings
}

// DiscordConfig 디스코드 DM 알림 채널 설정 구조체
type DiscordConfig struct {
	Enabled     bool          `json:"enabled"`
	BotToken    string        `json:"bot_token" validate:"required_if=Enabled true"`
	HTTPTimeout time.Duration `json:"http_timeout" validate:"gt=0"`
	RateLimit   float64       `json:"rate_limit" validate:"gt=0"`
	RateBurst   int           `json:"rate_burst" validate:"min=1"`
}

// TelegramConfig 텔레그램 봇 알림 채널 설정 구조체
type TelegramConfig struct {
	Enabled     bool          `json:"enabled"`
	BotToken    string        `json:"bot_token" validate:"required_if=Enabled true,omitempty,telegram_bot_token"`
	Debug       bool          `json:"debug"`
	HTTPTimeout time.Duration `json:"http_timeout" validate:"gt=0"`
	RetryDelay  time.Duration `json:"retry_delay" validate:"gt=0"`
	RateLimit   float64       `json:"rate_limit" validate:"gt=0"`
	RateBurst   int           `json:"rate_burst" validate:"min=1"`
}

// NotificationConfig 알림 표현 설정 구조체
type NotificationConfig struct {
	// ColorOverrides 카테고리별 카드 색상 오버라이드 (COLOR_<CATEGORY> → 16진수 색상)
	ColorOverrides map[string]string `json:"colors"`
}

// ThumbnailConfig 프로필 썸네일 생성 및 다운로드 설정 구조체
type ThumbnailConfig struct {
	Enabled                 bool          `json:"enabled"`
	Width                   int           `json:"width" validate:"min=16,max=2048"`
	Height                  int           `json:"height" validate:"min=16,max=2048"`
	Quality                 int           `json:"quality" validate:"min=1,max=100"`
	APITimeout              time.Duration `json:"api_timeout" validate:"gt=0"`
	MaxBytes                int64         `json:"max_bytes" validate:"gt=0"`
	BreakerFailureThreshold uint32        `json:"breaker_failure_threshold" validate:"min=1"`
	BreakerOpenTimeout      time.Duration `json:"breaker_open_timeout" validate:"gt=0"`
	UserAgent               string        `json:"user_agent"`
}

// CacheConfig 프로필 썸네일 캐시 설정 구조체
type CacheConfig struct {
	Dir      string        `json:"dir" validate:"required"`
	TTL      time.Duration `json:"ttl" validate:"gt=0"`
	MaxBytes int64         `json:"max_bytes" validate:"gt=0"`
	Store    string        `json:"store" validate:"oneof=memory redis"`
}

// RedisConfig 캐시 메타데이터와 이벤트 중복 판정에 사용하는 Redis 접속 설정 구조체
type RedisConfig struct {
	Addr      string `json:"addr" validate:"required,hostname_port"`
	Password  string `json:"password"`
	DB        int    `json:"db" validate:"min=0"`
	KeyPrefix string `json:"key_prefix"`
}

// EventConfig 이벤트 중복 판정 설정 구조체
type EventConfig struct {
	DedupWindow time.Duration `json:"dedup_window" validate:"gt=0"`
	DedupStore  string        `json:"dedup_store" validate:"oneof=memory redis"`
}

// SchedulerConfig 캐시 정리 스케줄 설정 구조체
type SchedulerConfig struct {
	Enabled        bool          `json:"enabled"`
	CleanupSpec    string        `json:"cleanup_spec" validate:"required_if=Enabled true,omitempty,cron_spec"`
	CleanupTimeout time.Duration `json:"cleanup_timeout" validate:"gt=0"`
}

// APIConfig 알림 수신 REST API 서버 설정 구조체
type APIConfig struct {
	Enabled        bool                `json:"enabled"`
	ListenPort     int                 `json:"listen_port" validate:"min=1,max=65535"`
	TLSServer      bool                `json:"tls_server"`
	TLSCertFile    string              `json:"tls_cert_file" validate:"required_if=TLSServer true,omitempty,file"`
	TLSKeyFile     string              `json:"tls_key_file" validate:"required_if=TLSServer true,omitempty,file"`
	RateLimit      float64             `json:"rate_limit" validate:"gt=0"`
	RateBurst      int                 `json:"rate_burst" validate:"min=1"`
	BodyLimit      string              `json:"body_limit" validate:"required"`
	MetricsEnabled bool                `json:"metrics_enabled"`
	Applications   []ApplicationConfig `json:"applications" validate:"unique=ID,dive"`
}

func (c *APIConfig) validate(v *validator.Validate) error {
	if !c.Enabled {
		return nil
	}

	if err := checkStruct(v, c, "API"); err != nil {
		return err
	}

	if len(c.Applications) == 0 {
		return apperrors.New(apperrors.InvalidInput, "API 서버 활성화 시 애플리케이션(applications)을 최소 1개 이상 등록해야 합니다")
	}

	return nil
}

func (c *APIConfig) VerifyRecommendations() []string {
	var warnings []string

	// 시스템 예약 포트(1024 미만) 사용 경고
	if c.ListenPort < 1024 {
		warnings = append(warnings, fmt.Sprintf("시스템 예약 포트(1-1023)를 사용하도록 설정되었습니다(port: %d). 이 경우 서버 구동 시 관리자 권한이 필요할 수 있습니다", c.ListenPort))
	}

	if !c.TLSServer {
		warnings = append(warnings, "API 서버가 TLS 없이 실행됩니다. 애플리케이션 키가 평문으로 전송될 수 있습니다")
	}

	return warnings
}

// ApplicationConfig 알림 API를 사용할 수 있는 클라이언트 애플리케이션의 인증 정보를 정의하는 구조체
type ApplicationConfig struct {
	ID          string `json:"id" validate:"required"`
	Title       string `json:"title"`
	Description string `json:"description"`
	AppKey      string `json:"app_key" validate:"required"`
}
