package constants

// 클라이언트에게 반환되는 메시지 상수입니다.
const (
	MsgSuccess = "성공"

	// MsgDuplicateEvent 중복 판정 윈도우 안의 같은 이벤트를 무시했을 때의 응답 메시지입니다.
	MsgDuplicateEvent = "중복 이벤트로 판정되어 전송하지 않았습니다"

	// MsgPartialFailure 일부 채널 전달에 실패했을 때의 응답 메시지입니다.
	MsgPartialFailure = "일부 채널로 전달하지 못했습니다"
)

// 클라이언트에게 반환되는 에러 메시지 상수입니다.
const (
	// 400 Bad Request
	ErrMsgBadRequest            = "잘못된 요청입니다"
	ErrMsgBadRequestInvalidBody = "요청 본문을 파싱할 수 없습니다. JSON 형식을 확인해주세요"
	ErrMsgUnknownCategory       = "알 수 없는 카테고리입니다 (category: %s)"

	// 401 Unauthorized
	ErrMsgUnauthorizedInvalidAppKey         = "app_key가 유효하지 않습니다 (application_id: %s)"
	ErrMsgUnauthorizedNotFoundApplicationID = "등록되지 않은 application_id입니다 (ID: %s)"

	// 404 Not Found
	ErrMsgNotFound = "요청한 리소스를 찾을 수 없습니다"

	// 413 Request Entity Too Large
	ErrMsgRequestEntityTooLarge = "요청 본문이 너무 큽니다"

	// 415 Unsupported Media Type
	ErrMsgUnsupportedMediaType = "지원하지 않는 미디어 타입입니다"

	// 429 Too Many Requests
	ErrMsgTooManyRequests = "요청이 너무 많습니다. 잠시 후 다시 시도해주세요"

	// 500 Internal Server Error
	ErrMsgInternalServer = "내부 서버 오류가 발생했습니다"

	// 502 Bad Gateway
	ErrMsgAllChannelsFailed = "모든 채널로의 전달에 실패했습니다"

	// 인증
	ErrMsgAuthAppKeyRequired        = "app_key는 필수입니다 (X-App-Key 헤더)"
	ErrMsgAuthApplicationIDRequired = "application_id는 필수입니다 (X-Application-Id 헤더)"
)
