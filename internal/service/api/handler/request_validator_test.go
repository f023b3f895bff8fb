package handler

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

type sampleRequest struct {
	Name   string            `json:"name" validate:"required,max=5"`
	Tags   []string          `json:"tags" validate:"omitempty,min=2"`
	Link   string            `json:"link" validate:"omitempty,url"`
	Digits string            `json:"digits" validate:"omitempty,numeric"`
	Owners map[string]string `json:"owners" validate:"omitempty,dive,required"`
	Hidden string            `json:"-" validate:"omitempty,min=3"`
}

func TestRequestValidator(t *testing.T) {
	tests := []struct {
		name string
		req  sampleRequest
		want string
	}{
		{"성공", sampleRequest{Name: "ok"}, ""},
		{"필수 값 누락", sampleRequest{}, "name는 필수입니다"},
		{"문자열 최대 길이", sampleRequest{Name: "여섯글자이름"}, "name는 최대 5자까지 입력 가능합니다"},
		{"목록 최소 개수", sampleRequest{Name: "a", Tags: []string{"x"}}, "tags는 최소 2개 이상이어야 합니다"},
		{"URL 형식", sampleRequest{Name: "a", Link: "not a url"}, "link는 올바른 URL 형식이어야 합니다"},
		{"숫자 형식", sampleRequest{Name: "a", Digits: "12a"}, "digits는 숫자로만 구성되어야 합니다"},
		{"맵 값", sampleRequest{Name: "a", Owners: map[string]string{"k": ""}}, "owners[k]는 필수입니다"},
		{"JSON 태그 없는 필드", sampleRequest{Name: "a", Hidden: "x"}, "Hidden는 최소 3자 이상이어야 합니다"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := RequestValidator{}.Validate(&tt.req)
			if tt.want == "" {
				assert.NoError(t, err)
				return
			}
			assert.EqualError(t, err, tt.want)
		})
	}
}

func TestFormatValidationError_NonValidatorError(t *testing.T) {
	assert.Equal(t, "", FormatValidationError(nil))
	assert.Equal(t, "plain", FormatValidationError(errors.New("plain")))
}
