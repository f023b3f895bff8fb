package log

// silentFormatter 기본 출력(io.Discard)용 포맷터입니다.
// 실제 포맷팅은 hook에서 한 번만 수행하므로 여기서는 아무 작업도 하지 않습니다.
type silentFormatter struct{}

func (f *silentFormatter) Format(_ *Entry) ([]byte, error) {
	return nil, nil
}
