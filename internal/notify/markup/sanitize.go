// Package markup 메신저별 HTML 방언에 맞춘 이스케이프, 정제(sanitize), 분할 기능을 제공합니다.
package markup

import (
	"strings"

	"golang.org/x/net/html"
)

// supportedTags 텔레그램 HTML 파싱 모드가 해석하는 태그 목록입니다.
// 굵게, 기울임, 밑줄, 취소선, 인라인 코드, 코드 블록, 링크만 허용합니다.
var supportedTags = map[string]struct{}{
	"b": {}, "strong": {},
	"i": {}, "em": {},
	"u": {}, "ins": {},
	"s": {}, "strike": {}, "del": {},
	"code": {},
	"pre":  {},
	"a":    {},
}

// IsSupportedTag 태그가 허용 목록에 있는지 확인합니다. 대소문자를 구분하지 않습니다.
func IsSupportedTag(name string) bool {
	_, ok := supportedTags[strings.ToLower(name)]
	return ok
}

var textEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

var attrEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;")

// EscapeHTML 문자열을 태그로 해석되지 않는 리터럴 텍스트로 이스케이프합니다.
func EscapeHTML(s string) string {
	return textEscaper.Replace(s)
}

// EscapeAttr 큰따옴표로 감싼 속성 값에 넣을 수 있도록 문자열을 이스케이프합니다.
func EscapeAttr(s string) string {
	return attrEscaper.Replace(s)
}

// Sanitize 허용되지 않은 태그를 제거합니다.
//
//   - 허용 태그는 그대로 유지합니다. 단, 속성은 a의 href와 code의 language-* class만 남깁니다.
//   - 허용되지 않은 태그 쌍은 태그만 제거하고 내부 텍스트는 유지합니다.
//   - 허용되지 않은 자기 닫힘 태그(<br/>, <img .../> 등)는 통째로 제거합니다.
//   - 주석과 DOCTYPE은 제거합니다.
//   - 텍스트는 다시 이스케이프하여 출력하므로 Sanitize(Sanitize(x)) == Sanitize(x) 입니다.
func Sanitize(s string) string {
	if s == "" {
		return ""
	}

	var sb strings.Builder
	sb.Grow(len(s))

	scan(s, func(z *html.Tokenizer, tt html.TokenType) {
		switch tt {
		case html.TextToken:
			sb.WriteString(EscapeHTML(text(z)))

		case html.StartTagToken, html.SelfClosingTagToken:
			name, hasAttr := z.TagName()
			tag := string(name)
			if !IsSupportedTag(tag) {
				return
			}
			writeStartTag(&sb, z, tag, hasAttr, tt == html.SelfClosingTagToken)

		case html.EndTagToken:
			name, _ := z.TagName()
			if tag := string(name); IsSupportedTag(tag) {
				sb.WriteString("</")
				sb.WriteString(tag)
				sb.WriteString(">")
			}
		}
	})

	return sb.String()
}

// VisibleText 태그를 모두 제거하고 엔티티를 디코딩한, 사람이 읽는 텍스트를 반환합니다.
// HTML 파싱에 실패한 메시지를 일반 텍스트로 재전송할 때 사용합니다.
func VisibleText(s string) string {
	var sb strings.Builder
	sb.Grow(len(s))

	scan(s, func(z *html.Tokenizer, tt html.TokenType) {
		if tt == html.TextToken {
			sb.WriteString(text(z))
		}
	})

	return sb.String()
}

// scan 문자열을 토큰 단위로 순회합니다.
// script, style 등도 일반 요소와 동일하게 취급하여 내부 텍스트를 태그로 해석합니다.
func scan(s string, fn func(z *html.Tokenizer, tt html.TokenType)) {
	z := html.NewTokenizer(strings.NewReader(s))
	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			// io.EOF 이외의 에러는 strings.Reader에서 발생하지 않습니다.
			return
		}

		fn(z, tt)

		if tt == html.StartTagToken {
			z.NextIsNotRawText()
		}
	}
}

// text 텍스트 토큰의 엔티티를 디코딩하여 반환합니다.
// z.Text()는 \r\n과 \r을 \n으로 바꾸므로 원본 바이트(z.Raw())를 직접 디코딩하여 줄바꿈을 보존합니다.
func text(z *html.Tokenizer) string {
	return html.UnescapeString(string(z.Raw()))
}

func writeStartTag(sb *strings.Builder, z *html.Tokenizer, tag string, hasAttr bool, selfClosing bool) {
	sb.WriteString("<")
	sb.WriteString(tag)

	for hasAttr {
		var key, val []byte
		key, val, hasAttr = z.TagAttr()

		switch {
		case tag == "a" && string(key) == "href":
			writeAttr(sb, "href", string(val))
		case tag == "code" && string(key) == "class" && strings.HasPrefix(string(val), "language-"):
			writeAttr(sb, "class", string(val))
		}
	}

	if selfClosing {
		sb.WriteString("/")
	}
	sb.WriteString(">")
}

func writeAttr(sb *strings.Builder, key, val string) {
	sb.WriteString(" ")
	sb.WriteString(key)
	sb.WriteString(`="`)
	sb.WriteString(EscapeAttr(val))
	sb.WriteString(`"`)
}
