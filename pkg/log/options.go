package log

import (
	"fmt"
	"os"
)

// Options 로깅 시스템 초기화 설정입니다.
type Options struct {
	Name  string // 로그 파일명에 사용되는 애플리케이션 식별자
	Dir   string // 로그 파일 디렉토리 (빈 값이면 "logs")
	Level Level  // 로그 레벨 (0이면 InfoLevel)

	MaxAge     int // 로테이션된 파일 보관 일수 (0: 삭제 안 함)
	MaxSizeMB  int // 파일 하나의 최대 크기 (0: 100MB)
	MaxBackups int // 보관할 로테이션 파일 수 (0: 20개)

	EnableCriticalLog bool // ERROR 이상을 <name>.critical.log 로 별도 기록
	EnableVerboseLog  bool // DEBUG 이하를 <name>.verbose.log 로 분리 기록
	EnableConsoleLog  bool // 표준 출력에도 기록

	ReportCaller     bool   // 호출 위치(함수명:라인) 기록
	CallerPathPrefix string // 호출 위치 출력 시 잘라낼 패키지 경로 prefix
}

// Validate 설정값의 유효성을 검사합니다.
func (opts *Options) Validate() error {
	if opts.Name == "" {
		return fmt.Errorf("애플리케이션 식별자(Name)가 설정되지 않았습니다")
	}

	if opts.Dir != "" {
		if info, err := os.Stat(opts.Dir); err == nil && !info.IsDir() {
			return fmt.Errorf("로그 디렉토리 경로(%s)가 이미 파일로 존재합니다", opts.Dir)
		}
	}

	if opts.MaxAge < 0 || opts.MaxSizeMB < 0 || opts.MaxBackups < 0 {
		return fmt.Errorf("로그 로테이션 설정값은 0 이상이어야 합니다 (max_age=%d, max_size_mb=%d, max_backups=%d)", opts.MaxAge, opts.MaxSizeMB, opts.MaxBackups)
	}

	return nil
}

// NewProductionOptions 운영 환경용 설정을 반환합니다.
// 콘솔 출력 없이 파일에만 기록하며, 장애 분석을 위해 critical/verbose 파일을 분리합니다.
func NewProductionOptions(appName string) Options {
	return Options{
		Name:  appName,
		Level: InfoLevel,

		MaxAge:     30,
		MaxSizeMB:  100,
		MaxBackups: 20,

		EnableCriticalLog: true,
		EnableVerboseLog:  true,
		EnableConsoleLog:  false,

		ReportCaller:     true,
		CallerPathPrefix: "github.com/darkkaiser",
	}
}

// NewDevelopmentOptions 개발 환경용 설정을 반환합니다.
// 모든 레벨을 하나의 파일과 콘솔에 함께 기록합니다.
func NewDevelopmentOptions(appName string) Options {
	return Options{
		Name:  appName,
		Level: TraceLevel,

		MaxAge:     1,
		MaxSizeMB:  50,
		MaxBackups: 5,

		EnableCriticalLog: false,
		EnableVerboseLog:  false,
		EnableConsoleLog:  true,

		ReportCaller:     true,
		CallerPathPrefix: "github.com/darkkaiser",
	}
}
