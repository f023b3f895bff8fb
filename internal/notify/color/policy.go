// Package color 액션 카테고리별 카드 색상(24비트 RGB)을 결정합니다.
package color

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/darkkaiser/voice-notifier/internal/notify/action"
	applog "github.com/darkkaiser/voice-notifier/pkg/log"
)

const component = "notify.color"

// MaxColor 허용되는 최대 색상값 (0xFFFFFF)
const MaxColor = 0xFFFFFF

// defaults 모든 카테고리의 기본 색상 테이블입니다. Default 항목은 항상 유효해야 합니다.
var defaults = map[action.Category]uint32{
	action.VoiceJoin:     0x00FF00,
	action.VoiceLeave:    0xFF0000,
	action.VoiceMove:     0x0080FF,
	action.VoiceMute:     0xFFFF00,
	action.VoiceUnmute:   0x00FF00,
	action.VoiceDeafen:   0xFFA500,
	action.VoiceUndeafen: 0x00FF00,

	action.StatusOnline:  0x00FF00,
	action.StatusOffline: 0x808080,
	action.StatusIdle:    0xFFA500,
	action.StatusDND:     0xFF0000,

	action.MemberJoin:   0x32CD32,
	action.MemberLeave:  0xDC143C,
	action.MemberUpdate: 0x1E90FF,

	action.Warning: 0xFFFF00,
	action.Error:   0xFF0000,
	action.Admin:   0x800080,

	action.Default: 0x00FF00,
}

// Default 기본 테이블에 정의된 카테고리의 색상을 반환합니다.
func Default(category action.Category) (uint32, bool) {
	c, ok := defaults[category]
	return c, ok
}

// Policy 오버라이드 테이블과 기본 테이블을 순서대로 조회하여 카테고리 색상을 결정합니다.
//
// 조회 순서:
//  1. 오버라이드 테이블 (COLOR_<CATEGORY> 키, 16진수 값, '#' 또는 '0x' 접두사 허용)
//  2. 기본 테이블
//  3. 기본 테이블의 Default 항목
//
// Policy는 생성 이후 변경되지 않으므로 여러 고루틴에서 동시에 사용해도 안전합니다.
type Policy struct {
	overrides map[string]string
}

// NewPolicy 오버라이드 항목으로 Policy를 생성합니다.
// 키는 대소문자를 구분하지 않으며, nil 맵은 오버라이드가 없는 것으로 취급합니다.
func NewPolicy(overrides map[string]string) *Policy {
	normalized := make(map[string]string, len(overrides))
	for k, v := range overrides {
		normalized[strings.ToUpper(strings.TrimSpace(k))] = v
	}

	return &Policy{overrides: normalized}
}

// Resolve 카테고리의 색상을 반환합니다. 빈 카테고리는 Default로 취급합니다.
// 결과는 항상 [0, 0xFFFFFF] 범위입니다.
func (p *Policy) Resolve(category action.Category) uint32 {
	category = category.OrDefault()

	resolved := p.lookup(category)
	if !Validate(int64(resolved)) {
		applog.WithComponentAndFields(component, applog.Fields{
			"category": category,
			"color":    resolved,
		}).Warn("결정된 색상이 허용 범위를 벗어나 기본 색상으로 대체합니다")

		return defaults[action.Default]
	}

	return resolved
}

func (p *Policy) lookup(category action.Category) uint32 {
	if raw, ok := p.overrides[category.EnvKey()]; ok {
		color, err := ParseHex(raw)
		if err == nil {
			return color
		}

		applog.WithComponentAndFields(component, applog.Fields{
			"key":   category.EnvKey(),
			"value": raw,
			"error": err,
		}).Warn("색상 오버라이드 값이 올바르지 않아 무시합니다")
	}

	if c, ok := defaults[category]; ok {
		return c
	}

	return defaults[action.Default]
}

// Validate 값이 24비트 색상 범위 [0, 0xFFFFFF]에 속하는지 검사합니다.
func Validate(color int64) bool {
	return color >= 0 && color <= MaxColor
}

// ParseHex "#RRGGBB", "0xRRGGBB", "RRGGBB" 형식의 문자열을 색상값으로 변환합니다.
func ParseHex(raw string) (uint32, error) {
	s := strings.TrimSpace(raw)
	switch {
	case strings.HasPrefix(s, "#"):
		s = s[1:]
	case strings.HasPrefix(s, "0x"), strings.HasPrefix(s, "0X"):
		s = s[2:]
	}

	if s == "" {
		return 0, fmt.Errorf("빈 색상값입니다: %q", raw)
	}

	v, err := strconv.ParseUint(s, 16, 64)
	if err != nil {
		return 0, fmt.Errorf("16진수 색상값이 아닙니다: %q", raw)
	}
	if v > MaxColor {
		return 0, fmt.Errorf("색상값이 범위(0x000000~0xFFFFFF)를 벗어났습니다: %q", raw)
	}

	return uint32(v), nil
}
