package errors

//go:generate stringer -type=ErrorType

// ErrorType 에러의 성격을 분류하는 타입입니다.
//
// 알림 전송 계층에서는 다음과 같이 대응됩니다:
//   - 필수 자격증명(봇 토큰 등) 누락: InvalidInput
//   - 수신자를 찾을 수 없음: NotFound
//   - 전송 API/네트워크 장애: Unavailable, ExecutionFailed
//   - 색상 오버라이드 값/이미지 데이터 해석 실패: ParsingFailed
type ErrorType int

const (
	// Unknown 분류할 수 없는 에러 (기본값)
	Unknown ErrorType = iota

	// Internal 애플리케이션 내부 로직 오류 (버그로 간주)
	Internal

	// System 디스크 I/O, 네트워크 연결 등 인프라 수준의 장애
	System

	// Unauthorized 인증 실패
	Unauthorized

	// Forbidden 권한 부족
	Forbidden

	// InvalidInput 입력값 또는 설정값 검증 실패
	InvalidInput

	// Conflict 리소스 충돌 또는 상태 불일치
	Conflict

	// NotFound 요청한 리소스(수신자, 캐시 항목 등)를 찾을 수 없음
	NotFound

	// ExecutionFailed 외부 API 호출 등 실행 실패
	ExecutionFailed

	// ParsingFailed 데이터 파싱, 변환, 디코딩 실패
	ParsingFailed

	// Timeout 작업 시간 초과
	Timeout

	// Unavailable 외부 서비스의 일시적 사용 불가 (재시도 가능)
	Unavailable
)
