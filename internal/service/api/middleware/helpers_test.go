package middleware

import (
	"bytes"
	"io"
	"net/http/httptest"
	"testing"

	applog "github.com/darkkaiser/voice-notifier/pkg/log"
	"github.com/labstack/echo/v4"
)

// captureLogs 테스트 동안 전역 로거의 출력을 JSON 형식으로 버퍼에 기록합니다.
func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()

	logger := applog.StandardLogger()
	prevOut, prevFormatter, prevLevel := logger.Out, logger.Formatter, logger.Level

	buf := new(bytes.Buffer)
	logger.SetOutput(buf)
	logger.SetFormatter(&applog.JSONFormatter{})
	logger.SetLevel(applog.DebugLevel)

	t.Cleanup(func() {
		logger.SetOutput(prevOut)
		logger.SetFormatter(prevFormatter)
		logger.SetLevel(prevLevel)
	})

	return buf
}

func newTestContext(method, target string, body io.Reader) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	rec := httptest.NewRecorder()
	return e.NewContext(httptest.NewRequest(method, target, body), rec), rec
}

func okHandler(c echo.Context) error {
	return c.String(200, "ok")
}
