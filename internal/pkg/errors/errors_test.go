package errors

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	err := New(NotFound, "수신자를 찾을 수 없습니다")

	require.Error(t, err)
	assert.Equal(t, "[NotFound] 수신자를 찾을 수 없습니다", err.Error())

	var appErr *AppError
	require.True(t, As(err, &appErr))
	assert.Equal(t, NotFound, appErr.Type())
	assert.Equal(t, "수신자를 찾을 수 없습니다", appErr.Message())
	require.NotEmpty(t, appErr.Stack())
	assert.Equal(t, "errors_test.go", appErr.Stack()[0].File)
}

func TestNewf(t *testing.T) {
	err := Newf(InvalidInput, "잘못된 값: %d", 42)
	assert.Equal(t, "[InvalidInput] 잘못된 값: 42", err.Error())
}

func TestWrap(t *testing.T) {
	t.Run("nil 에러는 nil을 반환", func(t *testing.T) {
		assert.Nil(t, Wrap(nil, Internal, "무시됨"))
		assert.Nil(t, Wrapf(nil, Internal, "무시됨 %d", 1))
	})

	t.Run("원인 에러를 포함한 메시지", func(t *testing.T) {
		err := Wrap(context.DeadlineExceeded, Timeout, "프로필 사진 조회 시간 초과")
		assert.Equal(t, "[Timeout] 프로필 사진 조회 시간 초과: context deadline exceeded", err.Error())
		assert.ErrorIs(t, err, context.DeadlineExceeded)
	})

	t.Run("Wrapf", func(t *testing.T) {
		err := Wrapf(fmt.Errorf("boom"), Unavailable, "provider=%s", "telegram")
		assert.Equal(t, "[Unavailable] provider=telegram: boom", err.Error())
	})
}

func TestIs(t *testing.T) {
	inner := New(NotFound, "not found")
	outer := Wrap(inner, ExecutionFailed, "send failed")

	assert.True(t, Is(outer, ExecutionFailed))
	assert.True(t, Is(outer, NotFound))
	assert.False(t, Is(outer, Timeout))
	assert.False(t, Is(nil, NotFound))
	assert.False(t, Is(fmt.Errorf("plain"), Unknown))
}

func TestRootCause(t *testing.T) {
	root := fmt.Errorf("root")
	err := Wrap(Wrap(root, System, "middle"), Internal, "outer")

	assert.Equal(t, root, RootCause(err))
	assert.Nil(t, RootCause(nil))
}

func TestUnderlyingType(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want ErrorType
	}{
		{"nil", nil, Unknown},
		{"plain error", fmt.Errorf("plain"), Unknown},
		{"single", New(ParsingFailed, "x"), ParsingFailed},
		{"wrapped", Wrap(New(NotFound, "x"), Internal, "y"), NotFound},
		{"external wrapped", Wrap(fmt.Errorf("io"), System, "y"), System},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, UnderlyingType(tt.err))
		})
	}
}

func TestFormat(t *testing.T) {
	err := Wrap(New(NotFound, "inner"), Internal, "outer")

	assert.Equal(t, err.Error(), fmt.Sprintf("%s", err))
	assert.Equal(t, fmt.Sprintf("%q", err.Error()), fmt.Sprintf("%q", err))

	detailed := fmt.Sprintf("%+v", err)
	assert.Contains(t, detailed, "[Internal] outer")
	assert.Contains(t, detailed, "Caused by:")
	assert.Contains(t, detailed, "[NotFound] inner")
	assert.Contains(t, detailed, "Stack trace:")
}

func TestErrorType_String(t *testing.T) {
	assert.Equal(t, "Unknown", Unknown.String())
	assert.Equal(t, "ExecutionFailed", ExecutionFailed.String())
	assert.Equal(t, "Unavailable", Unavailable.String())
	assert.Equal(t, "ErrorType(99)", ErrorType(99).String())
}
