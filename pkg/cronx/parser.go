// Package cronx 애플리케이션 전역에서 공유하는 Cron 표현식 파서를 제공합니다.
package cronx

import (
	"fmt"

	"github.com/robfig/cron/v3"
)

// StandardParser 표준 5필드 형식과 Descriptor를 지원하는 파서를 반환합니다.
//
//   - 필드 순서: [분] [시] [일] [월] [요일]
//   - Descriptor: @hourly, @daily, @every 30m 등
//
// 예시:
//   - "*/30 * * * *" : 30분마다 실행
//   - "@every 1h"    : 1시간마다 실행
func StandardParser() cron.Parser {
	return cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)
}

// Validate 표현식이 StandardParser로 해석 가능한지 검사합니다.
func Validate(spec string) error {
	if _, err := StandardParser().Parse(spec); err != nil {
		return fmt.Errorf("유효하지 않은 Cron 표현식입니다('%s'): %w", spec, err)
	}
	return nil
}
