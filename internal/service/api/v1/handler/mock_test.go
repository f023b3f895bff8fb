package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"

	"github.com/darkkaiser/voice-notifier/internal/service/api/auth"
	apphandler "github.com/darkkaiser/voice-notifier/internal/service/api/handler"
	"github.com/darkkaiser/voice-notifier/internal/service/api/httputil"
	"github.com/darkkaiser/voice-notifier/internal/service/api/model/domain"
	"github.com/darkkaiser/voice-notifier/internal/service/event"
	"github.com/darkkaiser/voice-notifier/internal/service/notification"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/mock"
)

type mockSender struct {
	mock.Mock
}

func (m *mockSender) SendAll(ctx context.Context, recipients map[string]string, n notification.Notification) map[string]bool {
	args := m.Called(ctx, recipients, n)
	return args.Get(0).(map[string]bool)
}

type mockDispatcher struct {
	mock.Mock
}

func (m *mockDispatcher) Dispatch(ctx context.Context, e event.Event) (event.Outcome, error) {
	args := m.Called(ctx, e)
	return args.Get(0).(event.Outcome), args.Error(1)
}

// serve 인증을 통과한 상태로 핸들러를 호출하고, 반환된 에러는 전역 에러 핸들러로 응답을 만듭니다.
func serve(h echo.HandlerFunc, body string) *httptest.ResponseRecorder {
	e := echo.New()
	e.Validator = apphandler.RequestValidator{}
	e.HTTPErrorHandler = httputil.ErrorHandler

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	c := e.NewContext(req, rec)
	auth.SetApplication(c, &domain.Application{ID: "bot"})

	if err := h(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}

	return rec
}
