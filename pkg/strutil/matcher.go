package strutil

import (
	"strings"
)

// KeywordMatcher 대소문자를 구분하지 않는 키워드 매칭 규칙입니다.
//
// 포함 키워드는 그룹 단위의 AND 조건이며, 각 그룹 내부는 파이프(|)로 구분된 OR 조건입니다.
// 제외 키워드는 하나라도 포함되면 매칭에 실패합니다.
//
//	m := NewKeywordMatcher([]string{"joined|entering|connecting", "channel"}, nil)
//	m.Match("User joined voice Channel") // true
//	m.Match("User joined server")        // false
type KeywordMatcher struct {
	includedGroups [][]string
	excluded       []string
}

// NewKeywordMatcher 포함/제외 키워드로 KeywordMatcher를 생성합니다.
// 키워드는 생성 시점에 소문자로 정규화되며, 빈 키워드는 무시됩니다.
func NewKeywordMatcher(included, excluded []string) *KeywordMatcher {
	m := &KeywordMatcher{
		includedGroups: make([][]string, 0, len(included)),
		excluded:       make([]string, 0, len(excluded)),
	}

	for _, k := range excluded {
		if k = strings.TrimSpace(k); k != "" {
			m.excluded = append(m.excluded, strings.ToLower(k))
		}
	}

	for _, k := range included {
		group := SplitClean(k, "|")
		for i, v := range group {
			group[i] = strings.ToLower(v)
		}
		if len(group) > 0 {
			m.includedGroups = append(m.includedGroups, group)
		}
	}

	return m
}

// Match s가 제외 키워드를 하나도 포함하지 않고 모든 포함 그룹을 만족하면 true를 반환합니다.
// 포함 그룹이 하나도 없는 매처는 제외 조건만 검사합니다.
func (m *KeywordMatcher) Match(s string) bool {
	lower := strings.ToLower(s)

	for _, k := range m.excluded {
		if strings.Contains(lower, k) {
			return false
		}
	}

	for _, group := range m.includedGroups {
		matched := false
		for _, k := range group {
			if strings.Contains(lower, k) {
				matched = true
				break
			}
		}
		if !matched {
			return false
		}
	}

	return true
}
