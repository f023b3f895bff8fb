package middleware

import (
	"net/http"
	"testing"

	"github.com/darkkaiser/voice-notifier/internal/config"
	"github.com/darkkaiser/voice-notifier/internal/service/api/auth"
	"github.com/darkkaiser/voice-notifier/internal/service/api/constants"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequireAuthentication(t *testing.T) {
	captureLogs(t)

	authenticator := auth.NewAuthenticator(config.APIConfig{
		Applications: []config.ApplicationConfig{{ID: "bot", Title: "Voice Bot", AppKey: "secret"}},
	})
	mw := RequireAuthentication(authenticator)

	tests := []struct {
		name     string
		appID    string
		appKey   string
		wantCode int
	}{
		{"성공", "bot", "secret", http.StatusOK},
		{"App Key 누락", "bot", "", http.StatusBadRequest},
		{"Application ID 누락", "", "secret", http.StatusBadRequest},
		{"미등록 애플리케이션", "other", "secret", http.StatusUnauthorized},
		{"App Key 불일치", "bot", "wrong", http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, rec := newTestContext(http.MethodPost, "/api/v1/notifications", nil)
			if tt.appID != "" {
				c.Request().Header.Set(constants.XApplicationID, tt.appID)
			}
			if tt.appKey != "" {
				c.Request().Header.Set(constants.XAppKey, tt.appKey)
			}

			err := mw(okHandler)(c)
			if tt.wantCode == http.StatusOK {
				require.NoError(t, err)
				assert.Equal(t, http.StatusOK, rec.Code)
				assert.Equal(t, "bot", auth.MustGetApplication(c).ID)
				return
			}

			var he *echo.HTTPError
			require.ErrorAs(t, err, &he)
			assert.Equal(t, tt.wantCode, he.Code)
			_, getErr := auth.GetApplication(c)
			assert.Error(t, getErr)
		})
	}
}

func TestRequireAuthentication_NilAuthenticator(t *testing.T) {
	assert.PanicsWithValue(t, constants.PanicMsgAuthenticatorRequired, func() {
		RequireAuthentication(nil)
	})
}
