package response

// SuccessResponse API 성공 응답
type SuccessResponse struct {
	// ResultCode 처리 결과 코드 (0: 성공)
	ResultCode int    `json:"result_code"`
	Message    string `json:"message"`
}

// NotificationResponse 알림 전송 결과 응답입니다.
// Results는 채널 이름별 전달 성공 여부입니다.
type NotificationResponse struct {
	ResultCode     int             `json:"result_code"`
	Message        string          `json:"message"`
	NotificationID string          `json:"notification_id,omitempty"`
	Results        map[string]bool `json:"results,omitempty"`
}

// EventResponse 이벤트 처리 결과 응답입니다.
type EventResponse struct {
	NotificationResponse
	Duplicate bool `json:"duplicate"`
}
