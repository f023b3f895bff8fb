package constants

// 로그 메시지 상수 정의
const (
	// --- Manager Logs ---
	LogMsgProviderRegistered       = "Provider가 Notification Manager에 등록됨"
	LogMsgProviderReplaced         = "같은 이름의 Provider가 이미 등록되어 있어 교체합니다"
	LogMsgProviderInitializing     = "Provider 초기화 시작"
	LogMsgProviderInitialized      = "Provider 초기화 완료"
	LogMsgProviderInitFailed       = "Provider 초기화 실패, 다음 Provider를 계속 초기화합니다"
	LogMsgProviderNotFound         = "등록되지 않은 채널로의 전달 요청이 거부되었습니다"
	LogMsgProviderPanicRecovered   = "Provider 전달 중 패닉 복구됨 (PANIC RECOVERED)"
	LogMsgDeliveryCompleted        = "알림 전달 완료"
	LogMsgDeliveryFailed           = "알림 전달 실패"
	LogMsgDispatchStarted          = "알림을 채널별로 동시에 전달합니다"
	LogMsgDispatchEmptyRecipients  = "전달할 수신자가 없습니다"
	LogMsgDispatchCompleted        = "모든 채널의 알림 전달이 끝났습니다"

	// --- Provider Logs ---
	LogMsgProviderNotInitialized  = "Provider가 초기화되지 않아 알림을 전달할 수 없습니다"
	LogMsgRateLimitCancel         = "RateLimiter 대기 중 컨텍스트 취소됨 (전송 중단)"
	LogMsgRecipientNotFound       = "수신자를 찾을 수 없습니다"
	LogMsgSendSuccess             = "알림메시지 발송 성공"
	LogMsgSendFail                = "알림메시지 발송 실패"
	LogMsgSendFinalFail           = "알림메시지 발송 최종 실패"
	LogMsgHTMLFallback            = "HTML 파싱 오류 감지, 일반 텍스트로 전환하여 재시도합니다 (Fallback)"
	LogMsgCriticalError           = "치명적인 API 오류 발생, 재시도 중단"
	LogMsgRateLimitWait           = "Rate Limit 감지: 서버가 요청한 시간만큼 대기합니다."
	LogMsgRetryTimeout            = "알림 메시지 재시도 대기 중 컨텍스트 종료"
	LogMsgPhotoFallback           = "프로필 사진 전송에 실패하여 텍스트로 전송합니다"
	LogMsgCaptionTooLong          = "캡션 길이 제한을 넘어 프로필 사진 없이 전송합니다"
	LogMsgMissingServerID         = "서버 ID 없이 채널 ID만 전달되어 채널 링크를 만들 수 없습니다"
	LogMsgOverflowSplit           = "메시지가 너무 길어 카드 형식 대신 일반 텍스트로 나누어 전송합니다"
)
