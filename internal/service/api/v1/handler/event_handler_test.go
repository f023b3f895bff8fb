package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/darkkaiser/voice-notifier/internal/notify/action"
	"github.com/darkkaiser/voice-notifier/internal/service/api/constants"
	"github.com/darkkaiser/voice-notifier/internal/service/api/model/response"
	"github.com/darkkaiser/voice-notifier/internal/service/event"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const voiceJoinBody = `{
	"type": "voice_join",
	"user_id": "42",
	"username": "alice",
	"channel_id": "c1",
	"channel_name": "General",
	"server_name": "Home",
	"recipients": {"discord": "99"}
}`

func TestPublishEventHandler(t *testing.T) {
	t.Run("전달 성공", func(t *testing.T) {
		dispatcher := &mockDispatcher{}
		dispatcher.On("Dispatch", mock.Anything, mock.MatchedBy(func(e event.Event) bool {
			return e.Type == action.VoiceJoin && e.UserID == "42" && e.ChannelName == "General" && e.Recipients["discord"] == "99"
		})).Return(event.Outcome{NotificationID: "n-1", Results: map[string]bool{"discord": true}}, nil).Once()

		rec := serve(NewHandler(&mockSender{}, dispatcher).PublishEventHandler, voiceJoinBody)

		require.Equal(t, http.StatusOK, rec.Code)

		var resp response.EventResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "n-1", resp.NotificationID)
		assert.False(t, resp.Duplicate)
		assert.Equal(t, map[string]bool{"discord": true}, resp.Results)
		dispatcher.AssertExpectations(t)
	})

	t.Run("중복 이벤트", func(t *testing.T) {
		dispatcher := &mockDispatcher{}
		dispatcher.On("Dispatch", mock.Anything, mock.Anything).Return(event.Outcome{Duplicate: true}, nil).Once()

		rec := serve(NewHandler(&mockSender{}, dispatcher).PublishEventHandler, voiceJoinBody)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"result_code":0,"message":"`+constants.MsgDuplicateEvent+`","duplicate":true}`, rec.Body.String())
	})

	t.Run("모든 채널 실패", func(t *testing.T) {
		dispatcher := &mockDispatcher{}
		dispatcher.On("Dispatch", mock.Anything, mock.Anything).
			Return(event.Outcome{NotificationID: "n-2", Results: map[string]bool{"discord": false}}, nil).Once()

		rec := serve(NewHandler(&mockSender{}, dispatcher).PublishEventHandler, voiceJoinBody)

		assert.Equal(t, http.StatusBadGateway, rec.Code)
	})

	t.Run("메시지를 만들 수 없는 이벤트", func(t *testing.T) {
		dispatcher := &mockDispatcher{}
		dispatcher.On("Dispatch", mock.Anything, mock.Anything).Return(event.Outcome{}, event.ErrEmptyMessage).Once()

		rec := serve(NewHandler(&mockSender{}, dispatcher).PublishEventHandler,
			`{"type":"member_update","user_id":"42","recipients":{"discord":"99"}}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("디스패처 내부 오류", func(t *testing.T) {
		dispatcher := &mockDispatcher{}
		dispatcher.On("Dispatch", mock.Anything, mock.Anything).Return(event.Outcome{}, errors.New("boom")).Once()

		rec := serve(NewHandler(&mockSender{}, dispatcher).PublishEventHandler, voiceJoinBody)

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})

	t.Run("입력 오류", func(t *testing.T) {
		tests := []struct {
			name string
			body string
		}{
			{"사용자 ID 누락", `{"type":"voice_join","recipients":{"discord":"1"}}`},
			{"수신자 누락", `{"type":"voice_join","user_id":"42"}`},
			{"알 수 없는 타입", `{"type":"teleport","user_id":"42","recipients":{"discord":"1"}}`},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				dispatcher := &mockDispatcher{}

				rec := serve(NewHandler(&mockSender{}, dispatcher).PublishEventHandler, tt.body)

				assert.Equal(t, http.StatusBadRequest, rec.Code)
				dispatcher.AssertNotCalled(t, "Dispatch", mock.Anything, mock.Anything)
			})
		}
	})
}
