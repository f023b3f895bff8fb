// Package strutil 문자열 처리 유틸리티를 제공합니다.
package strutil

import (
	"strings"
)

// SplitClean 구분자로 문자열을 나누고, 각 항목의 앞뒤 공백을 제거한 뒤 빈 항목을 버립니다.
func SplitClean(s, sep string) []string {
	if s == "" {
		return nil
	}

	parts := strings.Split(s, sep)
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			result = append(result, p)
		}
	}

	return result
}

// MaskSensitiveData 토큰, 키 등 민감한 값을 로그에 남길 수 있도록 마스킹합니다.
//
//   - 3자 이하: "***"
//   - 12자 이하: 앞 4자 + "***"
//   - 그 외: 앞 4자 + "***" + 뒤 4자
func MaskSensitiveData(data string) string {
	switch {
	case data == "":
		return ""
	case len(data) <= 3:
		return "***"
	case len(data) <= 12:
		return data[:4] + "***"
	default:
		return data[:4] + "***" + data[len(data)-4:]
	}
}

// FirstNonEmpty 공백을 제외하고 비어 있지 않은 첫 번째 값을 반환합니다.
func FirstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
