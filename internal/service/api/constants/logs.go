package constants

// 내부 로깅을 위한 메시지 상수입니다.
const (
	LogMsgServiceStarting       = "API 서비스 시작중..."
	LogMsgServiceStarted        = "API 서비스 시작됨"
	LogMsgServiceAlreadyStarted = "API 서비스가 이미 시작됨!!!"
	LogMsgServiceStopping       = "API 서비스 중지중..."
	LogMsgServiceStopped        = "API 서비스 중지됨"

	LogMsgServiceHTTPServerStarting      = "API 서비스 > http 서버 시작"
	LogMsgServiceHTTPServerStopped       = "API 서비스 > http 서버 중지됨"
	LogMsgServiceHTTPServerShutdownError = "API 서비스 > http 서버 종료 중 오류 발생"
	LogMsgServiceHTTPServerFatalError    = "API 서비스 > http 서버를 구성하는 중에 치명적인 오류가 발생하였습니다"
	LogMsgServiceUnexpectedExit          = "API 서비스 > http 서버가 예기치 않게 종료되었습니다"

	LogMsgHTTP4xxClientError = "HTTP 4xx: 클라이언트 요청 오류"
	LogMsgHTTP5xxServerError = "HTTP 5xx: 서버 내부 오류"

	LogMsgHTTPRequest              = "HTTP 요청"
	LogMsgPanicRecovered           = "PANIC RECOVERED"
	LogMsgRateLimitExceeded        = "Rate limit 초과"
	LogMsgUnsupportedContentType   = "지원하지 않는 Content-Type 요청"
	LogMsgAuthAppKeyMismatch       = "인증 실패: App Key 불일치"
	LogMsgAuthUnknownApplication   = "인증 실패: 등록되지 않은 애플리케이션"
	LogMsgNotificationDispatched   = "알림 전송 요청 처리 완료"
	LogMsgEventDispatched          = "이벤트 알림 처리 완료"
	LogMsgEventDuplicateSuppressed = "중복 이벤트 요청을 무시했습니다"
)
