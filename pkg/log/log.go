// Package log logrus 기반의 전역 로거와 파일 로테이션 설정을 제공합니다.
//
// 모든 패키지는 logrus를 직접 import하지 않고 이 패키지의 별칭 타입과 헬퍼를 사용합니다.
// 로그 항목에는 항상 component 필드를 포함시켜, 어떤 구성요소(예: notification.manager,
// notifier.telegram, imagecache)에서 기록된 로그인지 추적할 수 있도록 합니다.
package log

import (
	"github.com/sirupsen/logrus"
)

// WithComponent component 필드가 설정된 로그 Entry를 반환합니다.
func WithComponent(component string) *Entry {
	return logrus.WithField("component", component)
}

// WithComponentAndFields component 필드와 추가 필드가 설정된 로그 Entry를 반환합니다.
// 전달된 fields 맵은 변경하지 않습니다.
func WithComponentAndFields(component string, fields Fields) *Entry {
	merged := make(Fields, len(fields)+1)
	for k, v := range fields {
		merged[k] = v
	}
	merged["component"] = component

	return logrus.WithFields(merged)
}

// WithFields component 없이 필드만 설정된 로그 Entry를 반환합니다.
// HTTP 접근 로그처럼 구성요소 구분이 의미 없는 경우에만 사용합니다.
func WithFields(fields Fields) *Entry {
	return logrus.WithFields(fields)
}

// StandardLogger 전역 Logger 인스턴스를 반환합니다.
func StandardLogger() *Logger {
	return logrus.StandardLogger()
}

// SetLevel 전역 로그 레벨을 변경합니다.
func SetLevel(level Level) {
	logrus.SetLevel(level)
}

// ParseLevel 문자열("debug", "info" 등)을 로그 레벨로 변환합니다.
func ParseLevel(level string) (Level, error) {
	return logrus.ParseLevel(level)
}
