// Package middleware API 서버의 Echo 미들웨어를 제공합니다.
//
//   - PanicRecovery: 패닉 복구 및 에러 로깅
//   - HTTPLogger: HTTP 요청/응답 로깅 (민감 정보 마스킹)
//   - RateLimiting: IP 기반 요청 속도 제한
//   - RequireAuthentication: 애플리케이션 키 기반 인증
//   - ValidateContentType: 요청 본문의 Content-Type 검증
//   - Logger: Echo 로거를 애플리케이션 로거로 연결하는 어댑터
package middleware
