package markup

import (
	"strings"
	"unicode/utf8"
)

// maxEntityLen HTML 엔티티 한 개의 최대 길이로 간주하는 바이트 수입니다. (예: "&quot;", "&#128512;")
const maxEntityLen = 10

// Split 문자열을 limit 룬 이하의 조각으로 나눕니다.
// 가능하면 줄바꿈 직후에서 자르며, 줄바꿈이 없으면 limit 위치에서 강제로 자릅니다.
// 모든 조각을 순서대로 이어 붙이면 원본 문자열과 같습니다.
func Split(s string, limit int) []string {
	return split(s, limit, false)
}

// SplitHTML Split과 같지만, 줄바꿈이 없어 강제로 잘라야 할 때 태그나 엔티티 중간은 피합니다.
func SplitHTML(s string, limit int) []string {
	return split(s, limit, true)
}

func split(s string, limit int, markupAware bool) []string {
	if s == "" {
		return nil
	}
	if limit <= 0 || utf8.RuneCountInString(s) <= limit {
		return []string{s}
	}

	var chunks []string
	for s != "" {
		if utf8.RuneCountInString(s) <= limit {
			chunks = append(chunks, s)
			break
		}

		cut := byteIndexOfRune(s, limit)
		if nl := strings.LastIndexByte(s[:cut], '\n'); nl > 0 {
			cut = nl + 1
		} else if markupAware {
			cut = avoidMarkupCut(s[:cut])
		}

		chunks = append(chunks, s[:cut])
		s = s[cut:]
	}

	return chunks
}

// byteIndexOfRune n번째 룬이 시작하는 바이트 위치를 반환합니다.
func byteIndexOfRune(s string, n int) int {
	count := 0
	for i := range s {
		if count == n {
			return i
		}
		count++
	}
	return len(s)
}

// avoidMarkupCut 조각의 끝이 열린 태그나 엔티티 중간이라면 그 시작 위치로 자르는 지점을 앞당깁니다.
func avoidMarkupCut(chunk string) int {
	cut := len(chunk)

	if lt := strings.LastIndexByte(chunk, '<'); lt > 0 && lt > strings.LastIndexByte(chunk, '>') {
		cut = lt
	}
	if amp := strings.LastIndexByte(chunk[:cut], '&'); amp > 0 && amp > strings.LastIndexByte(chunk[:cut], ';') && cut-amp <= maxEntityLen {
		cut = amp
	}

	return cut
}
