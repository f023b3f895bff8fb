package api

import (
	"net/http"

	"github.com/darkkaiser/voice-notifier/internal/pkg/version"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RegisterRoutes 인증이 필요 없는 전역 라우트를 등록합니다.
//
//   - GET /version: 빌드 정보
//   - GET /metrics: Prometheus 수집 엔드포인트 (metricsEnabled일 때만)
func RegisterRoutes(e *echo.Echo, metricsEnabled bool, buildInfo version.Info) {
	e.GET("/version", func(c echo.Context) error {
		return c.JSON(http.StatusOK, buildInfo)
	})

	if metricsEnabled {
		e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	}
}
