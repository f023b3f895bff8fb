// Package fetcher 외부 리소스(프로필 이미지 등)를 내려받는 HTTP 요청 체인을 제공합니다.
//
// 각 기능(타임아웃, 서킷 브레이커, 상태 코드 검사, MIME 타입 검사, 크기 제한)은
// Fetcher 인터페이스를 구현하는 데코레이터로 분리되어 있으며, NewImageFetcher가 이를 조합합니다.
package fetcher

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	apperrors "github.com/darkkaiser/voice-notifier/internal/pkg/errors"
)

// component Fetcher 로깅용 컴포넌트 이름
const component = "fetcher"

// Fetcher HTTP 요청을 수행하는 핵심 인터페이스입니다.
//
// 구현 시 주의사항:
//   - 반환된 응답 객체의 Body는 반드시 호출자가 닫아야 합니다.
//   - 에러를 반환하는 경우 응답 객체는 nil이며, Body는 이미 정리된 상태입니다.
//   - Context 취소 시 즉시 요청을 중단하고 적절한 에러를 반환해야 합니다.
type Fetcher interface {
	Do(req *http.Request) (*http.Response, error)
}

// Get 지정된 URL로 HTTP GET 요청을 전송하는 헬퍼 함수입니다.
func Get(ctx context.Context, f Fetcher, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.InvalidInput, fmt.Sprintf("요청을 생성할 수 없는 URL입니다: %s", redactURLString(url)))
	}

	resp, err := f.Do(req)
	if err != nil {
		if resp != nil {
			// 커넥션 재사용을 위해 응답 객체의 Body를 안전하게 비우고 닫음
			drainAndCloseBody(resp.Body)
		}

		return nil, err
	}

	return resp, nil
}

// ReadAll 지정된 URL의 응답 본문 전체를 읽어 반환합니다.
// 본문 크기 제한 초과 등 체인에서 발생한 도메인 에러는 그대로 반환합니다.
func ReadAll(ctx context.Context, f Fetcher, url string) ([]byte, error) {
	resp, err := Get(ctx, f, url)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		var appErr *apperrors.AppError
		if errors.As(err, &appErr) {
			return nil, err
		}

		return nil, apperrors.Wrap(err, apperrors.Unavailable, fmt.Sprintf("응답 본문을 읽는 중 에러가 발생했습니다: %s", redactURLString(url)))
	}

	return data, nil
}
