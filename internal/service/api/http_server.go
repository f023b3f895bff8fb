package api

import (
	"time"

	"github.com/darkkaiser/voice-notifier/internal/service/api/constants"
	"github.com/darkkaiser/voice-notifier/internal/service/api/handler"
	"github.com/darkkaiser/voice-notifier/internal/service/api/httputil"
	appmiddleware "github.com/darkkaiser/voice-notifier/internal/service/api/middleware"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// HTTPServerConfig HTTP 서버 생성에 필요한 설정입니다. 0 값 필드에는 기본값이 적용됩니다.
type HTTPServerConfig struct {
	Debug bool

	// RateLimit IP별 초당 허용 요청 수
	RateLimit float64
	RateBurst int

	// BodyLimit 요청 본문 최대 크기 (예: "128K")
	BodyLimit string

	RequestTimeout time.Duration
}

func (c HTTPServerConfig) withDefaults() HTTPServerConfig {
	if c.RateLimit <= 0 {
		c.RateLimit = constants.DefaultRateLimitPerSecond
	}
	if c.RateBurst <= 0 {
		c.RateBurst = constants.DefaultRateLimitBurst
	}
	if c.BodyLimit == "" {
		c.BodyLimit = constants.DefaultMaxBodySize
	}
	if c.RequestTimeout <= 0 {
		c.RequestTimeout = constants.DefaultRequestTimeout
	}
	return c
}

// NewHTTPServer 미들웨어가 적용된 Echo 인스턴스를 생성합니다. 라우트는 별도로 등록해야 합니다.
//
// 미들웨어는 다음 순서로 적용됩니다:
//
//  1. PanicRecovery: 이후 미들웨어와 핸들러의 panic을 복구합니다.
//  2. RequestID: X-Request-ID 헤더를 부여합니다. 로깅보다 먼저 적용해야 로그에 포함됩니다.
//  3. Server 헤더 제거
//  4. HTTPLogger: 이후 단계에서 거부된 429/413 응답도 기록합니다.
//  5. RateLimiting: IP별 요청 제한
//  6. BodyLimit: 본문 크기 제한 (초과 시 413)
//  7. ContextTimeout: 요청 컨텍스트에 처리 시간 제한을 겁니다.
//  8. Secure: 보안 헤더 추가
func NewHTTPServer(cfg HTTPServerConfig) *echo.Echo {
	cfg = cfg.withDefaults()

	e := echo.New()

	e.Debug = cfg.Debug
	e.HideBanner = true
	e.HidePort = true

	e.Server.ReadTimeout = constants.DefaultReadTimeout
	e.Server.ReadHeaderTimeout = constants.DefaultReadHeaderTimeout
	e.Server.WriteTimeout = constants.DefaultWriteTimeout
	e.Server.IdleTimeout = constants.DefaultIdleTimeout

	e.Logger = appmiddleware.NewLogger()
	e.HTTPErrorHandler = httputil.ErrorHandler
	e.Validator = handler.RequestValidator{}

	e.Use(appmiddleware.PanicRecovery())
	e.Use(middleware.RequestID())
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Response().Header().Set(echo.HeaderServer, "")
			return next(c)
		}
	})
	e.Use(appmiddleware.HTTPLogger())
	e.Use(appmiddleware.RateLimiting(cfg.RateLimit, cfg.RateBurst))
	e.Use(middleware.BodyLimit(cfg.BodyLimit))
	e.Use(middleware.ContextTimeoutWithConfig(middleware.ContextTimeoutConfig{
		Timeout: cfg.RequestTimeout,
	}))
	e.Use(middleware.Secure())

	return e
}
