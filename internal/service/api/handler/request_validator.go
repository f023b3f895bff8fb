// Package handler API 버전과 무관하게 공유되는 요청 처리 도구를 제공합니다.
package handler

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func getValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())

		// 에러 메시지에 JSON 필드 이름이 표시되도록 합니다.
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return fld.Name
			}
			return name
		})
	})

	return validate
}

// RequestValidator echo.Validator 구현체입니다. c.Validate(req)로 호출됩니다.
type RequestValidator struct{}

// Validate 구조체의 validate 태그를 기준으로 검증하고, 실패 시 첫 번째 위반을 한국어 메시지로 반환합니다.
func (RequestValidator) Validate(i interface{}) error {
	if err := getValidator().Struct(i); err != nil {
		return errors.New(FormatValidationError(err))
	}
	return nil
}

// FormatValidationError validator 에러를 사용자 친화적인 한국어 메시지로 변환합니다.
// 여러 검증 에러가 있으면 첫 번째 에러만 사용합니다.
func FormatValidationError(err error) string {
	if err == nil {
		return ""
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) || len(validationErrors) == 0 {
		return err.Error()
	}

	return formatFieldError(validationErrors[0])
}

func formatFieldError(fieldErr validator.FieldError) string {
	field := fieldErr.Namespace()
	if idx := strings.Index(field, "."); idx >= 0 {
		field = field[idx+1:]
	}

	switch fieldErr.Tag() {
	case "required":
		return fmt.Sprintf("%s는 필수입니다", field)
	case "min":
		if fieldErr.Kind() == reflect.String {
			return fmt.Sprintf("%s는 최소 %s자 이상이어야 합니다", field, fieldErr.Param())
		}
		return fmt.Sprintf("%s는 최소 %s개 이상이어야 합니다", field, fieldErr.Param())
	case "max":
		if fieldErr.Kind() == reflect.String {
			return fmt.Sprintf("%s는 최대 %s자까지 입력 가능합니다", field, fieldErr.Param())
		}
		return fmt.Sprintf("%s는 최대 %s개까지 입력 가능합니다", field, fieldErr.Param())
	case "url", "http_url":
		return fmt.Sprintf("%s는 올바른 URL 형식이어야 합니다", field)
	case "numeric":
		return fmt.Sprintf("%s는 숫자로만 구성되어야 합니다", field)
	default:
		return fmt.Sprintf("%s 검증 실패: %s", field, fieldErr.Tag())
	}
}
