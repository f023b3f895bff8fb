package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/darkkaiser/voice-notifier/internal/notify/action"
	apperrors "github.com/darkkaiser/voice-notifier/internal/pkg/errors"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const (
	// AppName 애플리케이션의 전역 고유 식별자입니다.
	AppName string = "voice-notifier"

	// DefaultFilename 애플리케이션 초기화 시 참조하는 기본 설정 파일명입니다.
	// 실행 인자를 통해 명시적인 경로가 제공되지 않을 경우, 시스템은 이 파일을 탐색하여 구성을 로드합니다.
	DefaultFilename = AppName + ".json"

	// EnvPrefix 설정을 덮어쓰는 환경 변수의 접두사입니다.
	// 예: VOICE_NOTIFIER_API__LISTEN_PORT -> api.listen_port
	EnvPrefix = "VOICE_NOTIFIER_"

	// colorEnvPrefix 카테고리 색상 오버라이드 환경 변수의 접두사입니다. 예: COLOR_VOICE_JOIN=ff8800
	colorEnvPrefix = "COLOR_"
)

// defaults 설정 파일과 환경 변수보다 우선순위가 낮은 기본값입니다.
func defaults() map[string]interface{} {
	return map[string]interface{}{
		"discord.enabled":      false,
		"discord.http_timeout": 15 * time.Second,
		"discord.rate_limit":   5.0,
		"discord.rate_burst":   5,

		"telegram.enabled":      false,
		"telegram.http_timeout": 30 * time.Second,
		"telegram.retry_delay":  time.Second,
		"telegram.rate_limit":   25.0,
		"telegram.rate_burst":   5,

		"thumbnail.enabled":                   true,
		"thumbnail.width":                     200,
		"thumbnail.height":                    200,
		"thumbnail.quality":                   85,
		"thumbnail.api_timeout":               10 * time.Second,
		"thumbnail.max_bytes":                 10 << 20,
		"thumbnail.breaker_failure_threshold": 5,
		"thumbnail.breaker_open_timeout":      time.Minute,

		"cache.dir":       "cache/profile_images",
		"cache.ttl":       24 * time.Hour,
		"cache.max_bytes": 100 << 20,
		"cache.store":     StoreMemory,

		"redis.db": 0,

		"event.dedup_window": 5 * time.Second,
		"event.dedup_store":  StoreMemory,

		"scheduler.enabled":         true,
		"scheduler.cleanup_spec":    "@every 1h",
		"scheduler.cleanup_timeout": 5 * time.Minute,

		"api.enabled":         true,
		"api.listen_port":     2443,
		"api.rate_limit":      20.0,
		"api.rate_burst":      40,
		"api.body_limit":      "128K",
		"api.metrics_enabled": true,
	}
}

// Load 기본 설정 파일을 읽어 애플리케이션 설정을 로드합니다.
func Load() (*AppConfig, error) {
	return LoadWithFile(DefaultFilename)
}

// LoadWithFile 지정된 경로의 설정 파일을 읽어 AppConfig 객체를 생성합니다.
func LoadWithFile(filename string) (*AppConfig, error) {
	k := koanf.New(".")

	// 1. 기본값 로드 (가장 낮은 우선순위)
	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, apperrors.Wrap(err, apperrors.System, "애플리케이션 기본 설정 로드에 실패했습니다")
	}

	// 2. JSON 설정 파일 로드 (기본값 덮어쓰기)
	if err := k.Load(file.Provider(filename), json.Parser()); err != nil {
		if os.IsNotExist(err) {
			return nil, apperrors.Wrap(err, apperrors.System, fmt.Sprintf("설정 파일을 찾을 수 없습니다: '%s'", filename))
		}
		return nil, apperrors.Wrap(err, apperrors.InvalidInput, fmt.Sprintf("설정 파일 로드 중 오류가 발생했습니다: '%s'", filename))
	}

	// 3. 환경 변수 로드 (최우선 순위, JSON 설정 덮어쓰기)
	// 구분자: 이중 언더스코어(__)를 점(.)으로 변환 (계층 구조 표현)
	// 예: VOICE_NOTIFIER_TELEGRAM__BOT_TOKEN -> telegram.bot_token
	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		s = strings.TrimPrefix(s, EnvPrefix)
		s = strings.ToLower(s)
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil, apperrors.Wrap(err, apperrors.System, "환경 변수 로드에 실패했습니다")
	}

	// 4. 구조체 언마샬링 (Strict Validation 적용)
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "json",
		DecoderConfig: &mapstructure.DecoderConfig{
			DecodeHook:       mapstructure.StringToTimeDurationHookFunc(),
			ErrorUnused:      true, // 파일에 존재하지만 구조체에 없는 필드가 있을 경우 에러를 발생시킴
			WeaklyTypedInput: true,
		},
	}
	var appConfig AppConfig
	if err := k.UnmarshalWithConf("", &appConfig, unmarshalConf); err != nil {
		return nil, apperrors.Wrap(err, apperrors.System, "설정 데이터를 애플리케이션 구조체로 변환하는데 실패했습니다")
	}

	// 5. 색상 오버라이드 병합 (COLOR_<CATEGORY> 환경 변수가 설정 파일보다 우선)
	appConfig.Notification.ColorOverrides = mergeColorOverrides(appConfig.Notification.ColorOverrides, os.Environ())

	// 6. 유효성 검사 수행 (정합성 체크)
	if err := appConfig.validate(validate); err != nil {
		return nil, apperrors.Wrap(err, apperrors.InvalidInput, fmt.Sprintf("설정 파일('%s')의 유효성 검증에 실패했습니다", filename))
	}

	return &appConfig, nil
}

// mergeColorOverrides 설정 파일의 colors 항목과 COLOR_<CATEGORY> 환경 변수를 하나의 맵으로 합칩니다.
//
// 설정 파일의 키는 카테고리 이름(voice_join)과 환경 변수 이름(COLOR_VOICE_JOIN)을 모두 허용하며,
// 결과 맵의 키는 항상 COLOR_<CATEGORY> 형식입니다.
func mergeColorOverrides(fromFile map[string]string, environ []string) map[string]string {
	merged := make(map[string]string, len(fromFile))

	for k, v := range fromFile {
		merged[colorKey(k)] = v
	}

	for _, kv := range environ {
		k, v, ok := strings.Cut(kv, "=")
		if !ok || !strings.HasPrefix(strings.ToUpper(k), colorEnvPrefix) {
			continue
		}
		merged[strings.ToUpper(k)] = v
	}

	return merged
}

func colorKey(k string) string {
	if c, ok := action.Parse(k); ok {
		return c.EnvKey()
	}
	return strings.ToUpper(strings.TrimSpace(k))
}
