// Package scheduler 프로필 이미지 캐시 정리 작업을 Cron 스케줄에 맞춰 주기적으로 실행합니다.
package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/darkkaiser/voice-notifier/internal/imagecache"
	"github.com/darkkaiser/voice-notifier/pkg/cronx"
	applog "github.com/darkkaiser/voice-notifier/pkg/log"
	"github.com/robfig/cron/v3"
)

// component Scheduler 서비스의 로깅용 컴포넌트 이름
const component = "scheduler.service"

const (
	// DefaultTimeSpec 캐시 정리 주기의 기본값입니다.
	DefaultTimeSpec = "@every 1h"

	// DefaultCleanupTimeout 한 번의 캐시 정리에 허용되는 최대 시간입니다.
	DefaultCleanupTimeout = 5 * time.Minute
)

// Cleaner 만료되었거나 용량을 초과한 캐시 항목을 정리합니다. imagecache.Cache가 이 인터페이스를 만족합니다.
type Cleaner interface {
	Cleanup(ctx context.Context) (imagecache.CleanupStats, error)
}

// Scheduler 캐시 정리 작업을 주기적으로 실행하는 서비스입니다.
type Scheduler struct {
	timeSpec string
	timeout  time.Duration

	cleaner Cleaner

	cron *cron.Cron

	running   bool
	runningMu sync.Mutex
}

// NewService 새로운 Scheduler 서비스 인스턴스를 생성합니다.
// timeSpec이 비어 있으면 DefaultTimeSpec, timeout이 0 이하이면 DefaultCleanupTimeout을 사용합니다.
func NewService(timeSpec string, timeout time.Duration, cleaner Cleaner) *Scheduler {
	if cleaner == nil {
		panic("Cleaner는 필수입니다")
	}
	if timeSpec == "" {
		timeSpec = DefaultTimeSpec
	}
	if timeout <= 0 {
		timeout = DefaultCleanupTimeout
	}

	return &Scheduler{
		timeSpec: timeSpec,
		timeout:  timeout,
		cleaner:  cleaner,
	}
}

// Start 스케줄러를 시작하고 캐시 정리 작업을 Cron 엔진에 등록합니다.
//
// 매개변수:
//   - serviceStopCtx: 서비스 종료 신호를 받기 위한 Context
//   - serviceStopWG: 서비스 종료 완료를 알리기 위한 WaitGroup
//
// 반환값:
//   - error: Cleaner가 nil이거나 Cron 표현식이 올바르지 않은 경우
func (s *Scheduler) Start(serviceStopCtx context.Context, serviceStopWG *sync.WaitGroup) error {
	s.runningMu.Lock()
	defer s.runningMu.Unlock()

	applog.WithComponent(component).Info("서비스 시작 진입: Scheduler 서비스 초기화 프로세스를 시작합니다")

	if s.cleaner == nil {
		serviceStopWG.Done()
		return ErrCleanerNotInitialized
	}

	if s.running {
		serviceStopWG.Done()
		applog.WithComponent(component).Warn("Scheduler 서비스가 이미 실행 중입니다 (중복 호출)")
		return nil
	}

	// SkipIfStillRunning: 이전 정리가 끝나지 않았으면 이번 실행을 건너뜁니다.
	c := cron.New(
		cron.WithParser(cronx.StandardParser()),
		cron.WithLogger(cron.VerbosePrintfLogger(applog.StandardLogger())),
		cron.WithChain(
			cron.Recover(cron.VerbosePrintfLogger(applog.StandardLogger())),
			cron.SkipIfStillRunning(cron.VerbosePrintfLogger(applog.StandardLogger())),
		),
	)

	if _, err := c.AddFunc(s.timeSpec, s.runCleanup); err != nil {
		serviceStopWG.Done()
		return NewErrInvalidCronSpec(s.timeSpec, err)
	}

	s.cron = c
	s.cron.Start()
	s.running = true

	applog.WithComponentAndFields(component, applog.Fields{
		"time_spec": s.timeSpec,
		"timeout":   s.timeout.String(),
	}).Info("서비스 시작 완료: Scheduler 서비스가 정상적으로 초기화되었습니다")

	go func() {
		defer serviceStopWG.Done()

		<-serviceStopCtx.Done()

		s.stop()
	}()

	return nil
}

// stop 실행 중인 스케줄러를 중지하고 진행 중인 정리 작업이 끝날 때까지 대기합니다.
func (s *Scheduler) stop() {
	s.runningMu.Lock()
	defer s.runningMu.Unlock()

	if !s.running {
		return
	}

	applog.WithComponent(component).Info("종료 절차 진입: Scheduler 서비스 중지 시그널을 수신했습니다")

	if s.cron != nil {
		ctx := s.cron.Stop()
		<-ctx.Done()
	}

	s.cron = nil
	s.running = false

	applog.WithComponent(component).Info("Scheduler 서비스 종료 완료: 모든 리소스가 정리되었습니다")
}

// runCleanup 캐시 정리를 한 번 실행하고 결과를 로깅합니다.
//
// 컨텍스트는 서비스 종료 신호와 분리합니다. 종료 시 cron.Stop()이 실행 중인 작업의 완료를 기다리므로
// 정리 도중 파일 삭제가 중단되지 않으며, 제한 시간으로 무한 대기를 막습니다.
func (s *Scheduler) runCleanup() {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	start := time.Now()
	stats, err := s.cleaner.Cleanup(ctx)

	logger := applog.WithComponentAndFields(component, applog.Fields{
		"expired_removed":    stats.ExpiredRemoved,
		"size_limit_removed": stats.SizeLimitRemoved,
		"orphans_removed":    stats.OrphansRemoved,
		"temp_files_removed": stats.TempFilesRemoved,
		"elapsed":            time.Since(start).String(),
	})
	if err != nil {
		logger.WithError(err).Error("캐시 정리 실패: 정리 작업 중 오류가 발생했습니다")
		return
	}

	logger.Info("캐시 정리 완료")
}
