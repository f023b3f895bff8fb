package httputil

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/darkkaiser/voice-notifier/internal/service/api/model/response"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorConstructors(t *testing.T) {
	tests := []struct {
		name   string
		create func(string) error
		code   int
	}{
		{"BadRequest", NewBadRequestError, http.StatusBadRequest},
		{"Unauthorized", NewUnauthorizedError, http.StatusUnauthorized},
		{"NotFound", NewNotFoundError, http.StatusNotFound},
		{"RequestEntityTooLarge", NewRequestEntityTooLargeError, http.StatusRequestEntityTooLarge},
		{"UnsupportedMediaType", NewUnsupportedMediaTypeError, http.StatusUnsupportedMediaType},
		{"TooManyRequests", NewTooManyRequestsError, http.StatusTooManyRequests},
		{"InternalServer", NewInternalServerError, http.StatusInternalServerError},
		{"BadGateway", NewBadGatewayError, http.StatusBadGateway},
		{"ServiceUnavailable", NewServiceUnavailableError, http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			he, ok := tt.create("메시지").(*echo.HTTPError)
			require.True(t, ok)
			assert.Equal(t, tt.code, he.Code)
			assert.Equal(t, response.ErrorResponse{ResultCode: tt.code, Message: "메시지"}, he.Message)
		})
	}
}

func TestSuccess(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

	require.NoError(t, Success(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"result_code":0,"message":"성공"}`, rec.Body.String())
}
