package middleware

import (
	"net/http"
	"runtime"

	"github.com/darkkaiser/voice-notifier/internal/service/api/constants"
	applog "github.com/darkkaiser/voice-notifier/pkg/log"
	"github.com/labstack/echo/v4"
)

// stackBufferSize panic 발생 시 스택 트레이스를 저장할 버퍼 크기 (4KB)
const stackBufferSize = 4 << 10

// PanicRecovery 핸들러에서 발생한 panic을 복구하고 스택 트레이스와 함께 로깅하는 미들웨어를 반환합니다.
// 복구된 panic은 500 에러로 Echo 에러 핸들러에 전달됩니다.
func PanicRecovery() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) (err error) {
			defer func() {
				if r := recover(); r != nil {
					// http.ErrAbortHandler는 의도된 연결 중단이므로 다시 panic 시킵니다.
					if r == http.ErrAbortHandler {
						panic(r)
					}

					stack := make([]byte, stackBufferSize)
					length := runtime.Stack(stack, false)

					err = NewErrPanicRecovered(r)

					fields := applog.Fields{
						"error":  err,
						"stack":  string(stack[:length]),
						"method": c.Request().Method,
						"path":   c.Request().URL.Path,
					}
					if requestID := c.Response().Header().Get(echo.HeaderXRequestID); requestID != "" {
						fields["request_id"] = requestID
					}

					applog.WithComponentAndFields(constants.ComponentMiddlewarePanicRecovery, fields).Error(constants.LogMsgPanicRecovered)
				}
			}()

			return next(c)
		}
	}
}
