// Package version 링커 플래그로 주입된 빌드 메타데이터와 실행 환경 정보를 제공합니다.
//
// 빌드 예:
//
//	go build -ldflags "-X github.com/darkkaiser/voice-notifier/internal/pkg/version.appVersion=v1.4.0 \
//	  -X github.com/darkkaiser/voice-notifier/internal/pkg/version.gitCommitHash=$(git rev-parse HEAD)"
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"strings"
	"sync"

	applog "github.com/darkkaiser/voice-notifier/pkg/log"
)

const unknown = "unknown"

// -ldflags "-X"로 주입되는 값입니다. 직접 읽지 말고 Get()을 사용합니다.
var (
	appVersion    = ""
	gitCommitHash = ""
	gitTreeState  = ""
	buildDate     = ""
)

// readBuildInfo 테스트에서 교체할 수 있도록 변수로 둡니다.
var readBuildInfo = debug.ReadBuildInfo

// Info 실행 중인 바이너리의 빌드 정보입니다. /version 응답과 시작 로그에 사용됩니다.
type Info struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	BuildDate string `json:"build_date"`
	GoVersion string `json:"go_version"`
	Platform  string `json:"platform"`
	Modified  bool   `json:"modified"`
}

var current = sync.OnceValue(func() Info {
	return resolve(Info{
		Version:   strings.TrimSpace(appVersion),
		Commit:    strings.TrimSpace(gitCommitHash),
		BuildDate: strings.TrimSpace(buildDate),
		Modified:  strings.EqualFold(strings.TrimSpace(gitTreeState), "dirty"),
	})
})

// Get 현재 바이너리의 빌드 정보를 반환합니다. 최초 호출 시 한 번만 계산됩니다.
func Get() Info {
	return current()
}

// resolve 비어 있는 필드를 실행 환경과 모듈 메타데이터(vcs.*)로 채웁니다.
// ldflags 값이 있으면 그 값을 우선합니다.
func resolve(bi Info) Info {
	if bi.GoVersion == "" {
		bi.GoVersion = runtime.Version()
	}
	if bi.Platform == "" {
		bi.Platform = runtime.GOOS + "/" + runtime.GOARCH
	}

	if mod, ok := readBuildInfo(); ok {
		for _, s := range mod.Settings {
			switch s.Key {
			case "vcs.revision":
				if bi.Commit == "" {
					bi.Commit = s.Value
				}
			case "vcs.time":
				if bi.BuildDate == "" {
					bi.BuildDate = s.Value
				}
			case "vcs.modified":
				bi.Modified = bi.Modified || s.Value == "true"
			}
		}
		if bi.Version == "" && mod.Main.Version != "" && mod.Main.Version != "(devel)" {
			bi.Version = mod.Main.Version
		}
	}

	if bi.Version == "" {
		bi.Version = unknown
	}
	if bi.Commit == "" {
		bi.Commit = unknown
	}
	if bi.BuildDate == "" {
		bi.BuildDate = unknown
	}

	return bi
}

// ShortCommit 커밋 해시의 앞 7자리를 반환합니다.
func (i Info) ShortCommit() string {
	if len(i.Commit) > 7 && i.Commit != unknown {
		return i.Commit[:7]
	}
	return i.Commit
}

// Fields 구조적 로깅용 필드를 반환합니다.
func (i Info) Fields() applog.Fields {
	return applog.Fields{
		"version":    i.Version,
		"commit":     i.ShortCommit(),
		"build_date": i.BuildDate,
		"go_version": i.GoVersion,
		"platform":   i.Platform,
		"modified":   i.Modified,
	}
}

// String "v1.4.0+dirty (abc1234, go1.24.1 linux/amd64)" 형태의 요약 문자열입니다.
func (i Info) String() string {
	v := i.Version
	if v == "" {
		v = unknown
	}
	if i.Modified {
		v += "+dirty"
	}

	return fmt.Sprintf("%s (%s, %s %s)", v, i.ShortCommit(), i.GoVersion, i.Platform)
}
