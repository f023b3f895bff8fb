package fetcher

import (
	"io"
	"sync"
)

const (
	// maxDrainBytes 커넥션 재사용을 위해 응답 객체의 Body를 비울 때 읽을 최대 바이트 수 (64KB)
	maxDrainBytes = 64 * 1024
)

var (
	// drainBufPool drainAndCloseBody에서 사용할 바이트 버퍼 풀
	drainBufPool = sync.Pool{
		New: func() any {
			b := make([]byte, 32*1024)
			return &b
		},
	}
)

// drainAndCloseBody HTTP 커넥션 재사용을 위해 응답 객체의 Body를 일정량(maxDrainBytes) 읽어서 버린 후 닫습니다.
// 64KB를 초과하는 응답은 완전히 읽히지 않으므로 해당 커넥션은 재사용되지 않습니다.
func drainAndCloseBody(body io.ReadCloser) {
	if body == nil {
		return
	}
	defer body.Close()

	bufPtr := drainBufPool.Get().(*[]byte)
	defer drainBufPool.Put(bufPtr)

	_, _ = io.CopyBuffer(io.Discard, io.LimitReader(body, maxDrainBytes), *bufPtr)
}
