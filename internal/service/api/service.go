package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"

	"github.com/darkkaiser/voice-notifier/internal/config"
	"github.com/darkkaiser/voice-notifier/internal/pkg/version"
	apiauth "github.com/darkkaiser/voice-notifier/internal/service/api/auth"
	"github.com/darkkaiser/voice-notifier/internal/service/api/constants"
	v1 "github.com/darkkaiser/voice-notifier/internal/service/api/v1"
	v1handler "github.com/darkkaiser/voice-notifier/internal/service/api/v1/handler"
	applog "github.com/darkkaiser/voice-notifier/pkg/log"
	"github.com/labstack/echo/v4"
)

// Service 알림 수신 API 서버의 생명주기를 관리합니다.
//
// Start()로 시작하면 별도 고루틴에서 HTTP(S) 서버를 실행하고,
// 전달받은 context가 취소되면 Graceful Shutdown 후 WaitGroup을 해제합니다.
type Service struct {
	appConfig *config.AppConfig

	sender     v1handler.NotificationSender
	dispatcher v1handler.EventDispatcher

	buildInfo version.Info

	running   bool
	runningMu sync.Mutex
}

// NewService Service 인스턴스를 생성합니다.
func NewService(appConfig *config.AppConfig, sender v1handler.NotificationSender, dispatcher v1handler.EventDispatcher, buildInfo version.Info) *Service {
	if appConfig == nil {
		panic(constants.PanicMsgAppConfigRequired)
	}
	if sender == nil {
		panic(constants.PanicMsgNotificationSenderRequired)
	}
	if dispatcher == nil {
		panic(constants.PanicMsgEventDispatcherRequired)
	}

	return &Service{
		appConfig: appConfig,

		sender:     sender,
		dispatcher: dispatcher,

		buildInfo: buildInfo,
	}
}

// Start API 서비스를 시작합니다. 서버는 고루틴에서 실행되며 이 함수는 즉시 반환됩니다.
// 이미 실행 중이면 serviceStopWG를 해제하고 아무 것도 하지 않습니다.
func (s *Service) Start(serviceStopCtx context.Context, serviceStopWG *sync.WaitGroup) error {
	s.runningMu.Lock()
	defer s.runningMu.Unlock()

	applog.WithComponent(constants.ComponentService).Info(constants.LogMsgServiceStarting)

	if s.running {
		defer serviceStopWG.Done()
		applog.WithComponent(constants.ComponentService).Warn(constants.LogMsgServiceAlreadyStarted)
		return nil
	}

	s.running = true

	go s.runServiceLoop(serviceStopCtx, serviceStopWG)

	applog.WithComponent(constants.ComponentService).Info(constants.LogMsgServiceStarted)

	return nil
}

func (s *Service) runServiceLoop(serviceStopCtx context.Context, serviceStopWG *sync.WaitGroup) {
	defer serviceStopWG.Done()

	e := s.setupServer()

	httpServerDone := make(chan struct{})
	go s.startHTTPServer(e, httpServerDone)

	s.waitForShutdown(serviceStopCtx, e, httpServerDone)
}

// setupServer 인증기, 핸들러, 미들웨어, 라우트가 모두 구성된 Echo 인스턴스를 만듭니다.
func (s *Service) setupServer() *echo.Echo {
	authenticator := apiauth.NewAuthenticator(s.appConfig.API)
	h := v1handler.NewHandler(s.sender, s.dispatcher)

	e := NewHTTPServer(HTTPServerConfig{
		Debug:     s.appConfig.Debug,
		RateLimit: s.appConfig.API.RateLimit,
		RateBurst: s.appConfig.API.RateBurst,
		BodyLimit: s.appConfig.API.BodyLimit,
	})

	RegisterRoutes(e, s.appConfig.API.MetricsEnabled, s.buildInfo)
	v1.RegisterRoutes(e, h, authenticator)

	return e
}

// startHTTPServer 서버가 종료될 때까지 블로킹되며, 종료되면 done을 닫습니다.
func (s *Service) startHTTPServer(e *echo.Echo, done chan struct{}) {
	defer close(done)

	apiConfig := s.appConfig.API
	applog.WithComponentAndFields(constants.ComponentService, applog.Fields{
		"port": apiConfig.ListenPort,
		"tls":  apiConfig.TLSServer,
	}).Debug(constants.LogMsgServiceHTTPServerStarting)

	addr := fmt.Sprintf(":%d", apiConfig.ListenPort)

	var err error
	if apiConfig.TLSServer {
		err = e.StartTLS(addr, apiConfig.TLSCertFile, apiConfig.TLSKeyFile)
	} else {
		err = e.Start(addr)
	}

	s.handleServerError(err)
}

func (s *Service) handleServerError(err error) {
	if err == nil {
		return
	}

	if errors.Is(err, http.ErrServerClosed) {
		applog.WithComponent(constants.ComponentService).Info(constants.LogMsgServiceHTTPServerStopped)
		return
	}

	applog.WithComponentAndFields(constants.ComponentService, applog.Fields{
		"port":  s.appConfig.API.ListenPort,
		"error": err,
	}).Error(constants.LogMsgServiceHTTPServerFatalError)
}

// waitForShutdown 종료 신호(또는 서버의 조기 종료)를 기다린 뒤 서버를 정리합니다.
func (s *Service) waitForShutdown(serviceStopCtx context.Context, e *echo.Echo, httpServerDone chan struct{}) {
	select {
	case <-serviceStopCtx.Done():
		applog.WithComponent(constants.ComponentService).Info(constants.LogMsgServiceStopping)

	case <-httpServerDone:
		// 포트 바인딩 실패 등으로 서버가 먼저 끝난 경우입니다.
		applog.WithComponent(constants.ComponentService).Error(constants.LogMsgServiceUnexpectedExit)
		s.cleanup()
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), constants.DefaultShutdownTimeout)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		applog.WithComponentAndFields(constants.ComponentService, applog.Fields{
			"error": err,
		}).Error(constants.LogMsgServiceHTTPServerShutdownError)
	}

	<-httpServerDone

	s.cleanup()
}

func (s *Service) cleanup() {
	s.runningMu.Lock()
	s.running = false
	s.runningMu.Unlock()

	applog.WithComponent(constants.ComponentService).Info(constants.LogMsgServiceStopped)
}
