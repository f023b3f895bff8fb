package fetcher

import (
	"net/url"
	"slices"
	"strings"
)

// sensitiveQueryKeys 값이 마스킹되는 쿼리 파라미터 키 목록입니다. 대소문자를 구분하지 않습니다.
var sensitiveQueryKeys = []string{
	"token", "auth", "key", "secret", "password", "signature",
	"access_token", "api_key", "app_key", "client_secret",
}

// redactURL URL에서 민감한 정보를 마스킹한 문자열을 반환합니다.
//
// 마스킹 대상:
//   - 사용자 정보(user:password@)의 비밀번호
//   - 민감한 쿼리 파라미터의 값
//   - 텔레그램 파일 다운로드 경로의 봇 토큰 (/file/bot<token>/...)
func redactURL(u *url.URL) string {
	if u == nil {
		return ""
	}

	c := *u

	if c.User != nil {
		if _, ok := c.User.Password(); ok {
			c.User = url.UserPassword(c.User.Username(), "***")
		}
	}

	if c.RawQuery != "" {
		q := c.Query()
		for k := range q {
			if slices.Contains(sensitiveQueryKeys, strings.ToLower(k)) {
				q.Set(k, "***")
			}
		}
		c.RawQuery = q.Encode()
	}

	segments := strings.Split(c.Path, "/")
	for i, seg := range segments {
		if strings.HasPrefix(seg, "bot") && len(seg) > len("bot") && strings.Contains(seg, ":") {
			segments[i] = "bot***"
		}
	}
	c.Path = strings.Join(segments, "/")
	c.RawPath = ""

	return c.String()
}

func redactURLString(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return "<invalid url>"
	}
	return redactURL(u)
}
