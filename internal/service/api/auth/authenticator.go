package auth

import (
	"crypto/subtle"
	"sync"

	"github.com/darkkaiser/voice-notifier/internal/config"
	"github.com/darkkaiser/voice-notifier/internal/service/api/constants"
	"github.com/darkkaiser/voice-notifier/internal/service/api/model/domain"
	applog "github.com/darkkaiser/voice-notifier/pkg/log"
	"github.com/darkkaiser/voice-notifier/pkg/strutil"
)

type credential struct {
	app    *domain.Application
	appKey []byte
}

// Authenticator 설정에 등록된 애플리케이션의 ID와 App Key로 요청을 인증합니다.
//
// 여러 고루틴에서 동시에 Authenticate를 호출해도 안전합니다.
type Authenticator struct {
	mu          sync.RWMutex
	credentials map[string]credential
}

// NewAuthenticator 설정에서 애플리케이션을 로드하여 Authenticator를 생성합니다.
func NewAuthenticator(apiConfig config.APIConfig) *Authenticator {
	credentials := make(map[string]credential, len(apiConfig.Applications))
	for _, application := range apiConfig.Applications {
		credentials[application.ID] = credential{
			app: &domain.Application{
				ID:          application.ID,
				Title:       application.Title,
				Description: application.Description,
			},
			appKey: []byte(application.AppKey),
		}
	}

	return &Authenticator{
		credentials: credentials,
	}
}

// Authenticate 애플리케이션을 찾고 App Key를 비교합니다.
// 성공 시 Application을 반환하고, 실패 시 401 에러를 반환합니다.
func (a *Authenticator) Authenticate(applicationID, appKey string) (*domain.Application, error) {
	a.mu.RLock()
	cred, ok := a.credentials[applicationID]
	a.mu.RUnlock()

	if !ok {
		applog.WithComponentAndFields(constants.ComponentMiddlewareAuthentication, applog.Fields{
			"application_id": applicationID,
		}).Warn(constants.LogMsgAuthUnknownApplication)

		return nil, NewErrInvalidApplicationID(applicationID)
	}

	if subtle.ConstantTimeCompare(cred.appKey, []byte(appKey)) != 1 {
		applog.WithComponentAndFields(constants.ComponentMiddlewareAuthentication, applog.Fields{
			"application_id":   applicationID,
			"app_title":        cred.app.Title,
			"received_app_key": strutil.MaskSensitiveData(appKey),
		}).Warn(constants.LogMsgAuthAppKeyMismatch)

		return nil, NewErrInvalidAppKey(applicationID)
	}

	return cred.app, nil
}
