package config

import (
	"fmt"
	"reflect"
	"regexp"
	"strings"

	apperrors "github.com/darkkaiser/voice-notifier/internal/pkg/errors"
	"github.com/darkkaiser/voice-notifier/pkg/cronx"
	"github.com/go-playground/validator/v10"
)

var (
	// 텔레그램 봇 토큰 검증을 위한 정규식 (예: 123456:ABC-DEF1234ghIkl-zyx57W2v1u123ew11)
	telegramBotTokenRegex = regexp.MustCompile(`^\d{3,20}:[a-zA-Z0-9_-]{30,50}$`)

	validate = newValidator()
)

// newValidator 새로운 Validator 인스턴스를 생성하고 커스텀 유효성 검사 함수를 등록합니다.
func newValidator() *validator.Validate {
	v := validator.New()

	// 검증 에러가 났을 때, 에러 메시지에 Go 구조체 필드명(예: ListenPort) 대신 JSON 이름(예: listen_port)을 보여주도록 설정합니다.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	// 커스텀 유효성 검사 함수 등록
	if err := v.RegisterValidation("telegram_bot_token", validateTelegramBotToken); err != nil {
		panic(fmt.Sprintf("초기화 치명적 오류: 'telegram_bot_token' 커스텀 유효성 검사 함수 등록에 실패했습니다: %v", err))
	}
	if err := v.RegisterValidation("cron_spec", validateCronSpec); err != nil {
		panic(fmt.Sprintf("초기화 치명적 오류: 'cron_spec' 커스텀 유효성 검사 함수 등록에 실패했습니다: %v", err))
	}

	return v
}

// validateTelegramBotToken 입력된 문자열이 유효한 텔레그램 봇 토큰 형식인지 검증합니다.
//
// 텔레그램 봇 토큰은 식별자(숫자)와 비밀키(문자열)가 콜론(:)으로 구분된 형태여야 합니다.
// 예: "123456789:ABC-DEF1234ghIkl-zyx57W2v1u123ew11"
func validateTelegramBotToken(fl validator.FieldLevel) bool {
	return telegramBotTokenRegex.MatchString(fl.Field().String())
}

// validateCronSpec 스케줄러가 사용하는 파서로 해석 가능한 Cron 표현식인지 검증합니다.
func validateCronSpec(fl validator.FieldLevel) bool {
	return cronx.Validate(fl.Field().String()) == nil
}

// checkStruct 구조체 인스턴스의 유효성을 태그 규칙에 따라 검증하고, 발생한 오류를 사용자 친화적인 도메인 에러로 변환합니다.
func checkStruct(v *validator.Validate, s interface{}, contextName string) error {
	err := v.Struct(s)
	if err == nil {
		return nil
	}

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return apperrors.Wrap(err, apperrors.InvalidInput, fmt.Sprintf("%s 유효성 검증에 실패했습니다", contextName))
	}

	// 첫 번째 에러만 상세히 보고
	firstErr := validationErrors[0]

	// 필드별(Field) 커스텀 에러 처리
	switch firstErr.StructField() {
	case "ListenPort":
		return apperrors.New(apperrors.InvalidInput, "웹 서비스 포트(listen_port)는 1에서 65535 사이의 값이어야 합니다")
	case "TLSCertFile":
		switch firstErr.Tag() {
		case "required_if":
			return apperrors.New(apperrors.InvalidInput, "TLS 서버 활성화 시 TLS 인증서 파일 경로(tls_cert_file)는 필수입니다")
		case "file":
			return apperrors.New(apperrors.InvalidInput, fmt.Sprintf("지정된 TLS 인증서 파일(tls_cert_file)을 찾을 수 없습니다: '%v'", firstErr.Value()))
		}
	case "TLSKeyFile":
		switch firstErr.Tag() {
		case "required_if":
			return apperrors.New(apperrors.InvalidInput, "TLS 서버 활성화 시 TLS 키 파일 경로(tls_key_file)는 필수입니다")
		case "file":
			return apperrors.New(apperrors.InvalidInput, fmt.Sprintf("지정된 TLS 키 파일(tls_key_file)을 찾을 수 없습니다: '%v'", firstErr.Value()))
		}
	case "BotToken":
		if firstErr.Tag() == "required_if" {
			return apperrors.New(apperrors.InvalidInput, fmt.Sprintf("%s 채널 활성화 시 봇 토큰(bot_token)은 필수입니다", contextName))
		}
	}

	// 태그별(Tag) 커스텀 에러 처리 (범용)
	switch firstErr.Tag() {
	case "unique":
		// unique 태그 에러는 "중복된 {Target} ID가 존재합니다" 형태로 통일 (전체 슬라이스 덤프 방지)
		return apperrors.New(apperrors.InvalidInput, fmt.Sprintf("%s 내에 중복된 애플리케이션(Application) ID가 존재합니다 (설정 값을 확인해주세요)", contextName))

	case "telegram_bot_token":
		return apperrors.New(apperrors.InvalidInput, "텔레그램 BotToken 형식이 올바르지 않습니다 (올바른 형식: 123456:ABC-DEF...)")

	case "cron_spec":
		return apperrors.New(apperrors.InvalidInput, fmt.Sprintf("Cron 표현식이 올바르지 않습니다: '%v' (예: */30 * * * *, @every 1h)", firstErr.Value()))

	case "oneof":
		return apperrors.New(apperrors.InvalidInput, fmt.Sprintf("%s의 %s 값이 올바르지 않습니다: '%v' (허용: %s)", contextName, firstErr.Field(), firstErr.Value(), firstErr.Param()))
	}

	return apperrors.New(apperrors.InvalidInput, fmt.Sprintf("%s의 설정이 올바르지 않습니다: %s (조건: %s)", contextName, firstErr.Field(), firstErr.Tag()))
}
