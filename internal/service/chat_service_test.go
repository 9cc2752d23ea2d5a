package service_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	app_errors "triage-chat/internal/errors"
	"triage-chat/internal/model"
	"triage-chat/internal/service"
	"triage-chat/internal/triage"
	mock_triage "triage-chat/internal/triage/mocks"
)

var fixedNow = time.Date(2025, 10, 16, 9, 30, 0, 0, time.UTC)

func setupChatPage(t *testing.T) (*service.ChatPage, *mock_triage.MockAnalyzer) {
	api := mock_triage.NewMockAnalyzer(t)
	clock := func() time.Time { return fixedNow }
	page := service.NewChatPage(api, service.NewIDSource(clock), service.WithClock(clock), service.WithLocation(time.UTC))
	return page, api
}

func strPtr(s string) *string { return &s }

func cardRecord() *triage.Record {
	return &triage.Record{
		ID:              7,
		InputText:       "Where is my card?",
		Classification:  strPtr("card_issue"),
		GeneratedAnswer: strPtr("Your card is being delivered."),
		CreatedAt:       "2025-10-16T09:30:01",
	}
}

// gate makes a mocked call block until the test releases it, so the state in
// between can be inspected.
type gate struct {
	started chan struct{}
	release chan struct{}
}

func newGate() *gate {
	return &gate{started: make(chan struct{}, 1), release: make(chan struct{})}
}

func (g *gate) run(mock.Arguments) {
	g.started <- struct{}{}
	<-g.release
}

func TestChatPage_SendMessage_Success(t *testing.T) {
	page, api := setupChatPage(t)
	g := newGate()
	api.On("Analyze", mock.Anything, "Where is my card?").Run(g.run).Return(cardRecord(), nil).Once()

	page.SetInput("  Where is my card?  ")

	done := make(chan model.ChatMessage)
	go func() {
		msg, err := page.SendMessage(context.Background(), "  Where is my card?  ")
		assert.NoError(t, err)
		done <- msg
	}()

	<-g.started
	inFlight := page.Snapshot()
	require.Len(t, inFlight.Messages, 1)
	assert.Equal(t, "Where is my card?", inFlight.Messages[0].UserMessage)
	assert.True(t, inFlight.Messages[0].Reply.IsPending())
	assert.Equal(t, "", inFlight.Input)
	assert.True(t, inFlight.Loading)

	close(g.release)
	msg := <-done

	assert.Equal(t, inFlight.Messages[0].ID, msg.ID)
	assert.Equal(t, model.ReplyResolved, msg.Reply.State)
	require.NotNil(t, msg.Reply.Response)
	assert.Equal(t, "card_issue", msg.Reply.Response.Classification)

	after := page.Snapshot()
	require.Len(t, after.Messages, 1)
	assert.Equal(t, msg, after.Messages[0])
	assert.False(t, after.Loading)
}

func TestChatPage_SendMessage_Failure(t *testing.T) {
	page, api := setupChatPage(t)
	api.On("Analyze", mock.Anything, "Block my card").Return(nil, app_errors.ErrUpstream).Once()

	msg, err := page.SendMessage(context.Background(), "Block my card")
	require.NoError(t, err)

	assert.Equal(t, "Block my card", msg.UserMessage)
	assert.Equal(t, model.ReplyFailed, msg.Reply.State)
	require.NotNil(t, msg.Reply.Failure)
	assert.Equal(t, model.ErrorClassification, msg.Reply.Failure.Classification)
	assert.Equal(t, service.TextFailureMessage, msg.Reply.Failure.Message)

	state := page.Snapshot()
	require.Len(t, state.Messages, 1)
	assert.Equal(t, "Block my card", state.Messages[0].UserMessage)
	assert.False(t, state.Loading)
}

func TestChatPage_SendMessage_BlankNeverCallsAPI(t *testing.T) {
	page, _ := setupChatPage(t)

	for _, text := range []string{"", "   ", "\n\t"} {
		_, err := page.SendMessage(context.Background(), text)
		assert.ErrorIs(t, err, service.ErrBlankText)
		assert.ErrorIs(t, err, app_errors.ErrValidation)
	}
	assert.Empty(t, page.Snapshot().Messages)
}

func TestChatPage_RejectsWhileInFlight(t *testing.T) {
	page, api := setupChatPage(t)
	g := newGate()
	api.On("Analyze", mock.Anything, "first").Run(g.run).Return(cardRecord(), nil).Once()

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_, err := page.SendMessage(context.Background(), "first")
		assert.NoError(t, err)
	}()
	<-g.started

	_, err := page.SendMessage(context.Background(), "second")
	assert.ErrorIs(t, err, service.ErrBusy)
	assert.ErrorIs(t, err, app_errors.ErrConflict)

	assert.ErrorIs(t, page.SelectFile(&model.Upload{Name: "a.txt"}), service.ErrBusy)

	close(g.release)
	wg.Wait()
	assert.Len(t, page.Snapshot().Messages, 1)
}

func TestChatPage_SendFile(t *testing.T) {
	t.Run("Success clears the selection before the call returns", func(t *testing.T) {
		page, api := setupChatPage(t)
		upload := &model.Upload{Name: "letter.pdf", Data: make([]byte, 2048)}
		g := newGate()
		api.On("AnalyzeFile", mock.Anything, upload).Run(g.run).Return(cardRecord(), nil).Once()

		require.NoError(t, page.SelectFile(upload))
		require.NotNil(t, page.Snapshot().SelectedFile)

		done := make(chan model.ChatMessage)
		go func() {
			msg, err := page.SendFile(context.Background())
			assert.NoError(t, err)
			done <- msg
		}()

		<-g.started
		inFlight := page.Snapshot()
		assert.Nil(t, inFlight.SelectedFile)
		require.Len(t, inFlight.Messages, 1)
		assert.Equal(t, "[file] letter.pdf (2.0 kB)", inFlight.Messages[0].UserMessage)
		assert.Equal(t, model.SourceFile, inFlight.Messages[0].Source)
		assert.True(t, inFlight.Messages[0].Reply.IsPending())

		close(g.release)
		msg := <-done
		assert.Equal(t, model.ReplyResolved, msg.Reply.State)
		assert.Equal(t, "[file] letter.pdf (2.0 kB)", msg.UserMessage)
	})

	t.Run("Failure shows the server detail", func(t *testing.T) {
		page, api := setupChatPage(t)
		upload := &model.Upload{Name: "scan.png", Data: []byte("png")}
		apiErr := &triage.APIError{StatusCode: 400, Detail: "Unsupported file type: image/png"}
		api.On("AnalyzeFile", mock.Anything, upload).Return(nil, apiErr).Once()

		require.NoError(t, page.SelectFile(upload))
		msg, err := page.SendFile(context.Background())
		require.NoError(t, err)

		require.NotNil(t, msg.Reply.Failure)
		assert.Equal(t, "Unsupported file type: image/png", msg.Reply.Failure.Message)
		assert.Equal(t, model.ErrorClassification, msg.Reply.Failure.Classification)
	})

	t.Run("Failure without detail uses the generic text", func(t *testing.T) {
		page, api := setupChatPage(t)
		upload := &model.Upload{Name: "a.txt", Data: []byte("x")}
		api.On("AnalyzeFile", mock.Anything, upload).Return(nil, errors.New("connection refused")).Once()

		require.NoError(t, page.SelectFile(upload))
		msg, err := page.SendFile(context.Background())
		require.NoError(t, err)
		assert.Equal(t, service.FileFailureMessage, msg.Reply.Failure.Message)
	})

	t.Run("No file selected", func(t *testing.T) {
		page, _ := setupChatPage(t)
		_, err := page.SendFile(context.Background())
		assert.ErrorIs(t, err, service.ErrNoFile)
		assert.Empty(t, page.Snapshot().Messages)
	})

	t.Run("ClearFile", func(t *testing.T) {
		page, _ := setupChatPage(t)
		require.NoError(t, page.SelectFile(&model.Upload{Name: "a.txt"}))
		page.ClearFile()
		assert.Nil(t, page.Snapshot().SelectedFile)
		assert.ErrorIs(t, page.SelectFile(nil), service.ErrNoFile)
	})
}

func TestChatPage_FetchHistory(t *testing.T) {
	records := []triage.Record{
		{ID: 2, InputText: "newer", Classification: strPtr("Request"), GeneratedAnswer: strPtr("ok"), CreatedAt: "2025-10-15T12:00:00"},
		{ID: 1, InputText: "older", Category: strPtr("Complaint"), OfficialReply: strPtr("sorry"), CreatedAt: "2025-10-14T08:00:00"},
	}

	t.Run("Reverses to oldest first and loads once", func(t *testing.T) {
		page, api := setupChatPage(t)
		api.On("History", mock.Anything).Return(records, nil).Once()

		require.NoError(t, page.FetchHistory(context.Background()))
		require.NoError(t, page.FetchHistory(context.Background()))

		state := page.Snapshot()
		assert.True(t, state.HistoryLoaded)
		require.Len(t, state.Messages, 2)
		assert.Equal(t, "older", state.Messages[0].UserMessage)
		assert.Equal(t, "Complaint", state.Messages[0].Reply.Response.Classification)
		assert.Equal(t, "newer", state.Messages[1].UserMessage)
		assert.Equal(t, model.SourceHistory, state.Messages[1].Source)
		assert.Equal(t, time.Date(2025, 10, 14, 8, 0, 0, 0, time.UTC), state.Messages[0].Timestamp)
		assert.Less(t, state.Messages[0].ID, state.Messages[1].ID)
	})

	t.Run("Concurrent callers share one request", func(t *testing.T) {
		page, api := setupChatPage(t)
		g := newGate()
		api.On("History", mock.Anything).Run(g.run).Return(records, nil).Once()

		var wg sync.WaitGroup
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, page.FetchHistory(context.Background()))
		}()
		<-g.started

		second := make(chan error, 1)
		go func() { second <- page.FetchHistory(context.Background()) }()

		close(g.release)
		wg.Wait()
		assert.NoError(t, <-second)
		assert.Len(t, page.Snapshot().Messages, 2)
	})

	t.Run("Failure marks loaded and is not retried", func(t *testing.T) {
		page, api := setupChatPage(t)
		api.On("History", mock.Anything).Return(nil, app_errors.ErrUpstream).Once()

		err := page.FetchHistory(context.Background())
		assert.ErrorIs(t, err, app_errors.ErrUpstream)
		assert.NoError(t, page.FetchHistory(context.Background()))

		state := page.Snapshot()
		assert.True(t, state.HistoryLoaded)
		assert.Equal(t, service.HistoryFailureMessage, state.HistoryError)
		assert.Empty(t, state.Messages)
	})

	t.Run("Pending placeholders survive the replacement", func(t *testing.T) {
		page, api := setupChatPage(t)
		g := newGate()
		api.On("Analyze", mock.Anything, "hello").Run(g.run).Return(cardRecord(), nil).Once()
		api.On("History", mock.Anything).Return(records, nil).Once()

		done := make(chan model.ChatMessage)
		go func() {
			msg, err := page.SendMessage(context.Background(), "hello")
			assert.NoError(t, err)
			done <- msg
		}()
		<-g.started

		require.NoError(t, page.FetchHistory(context.Background()))
		state := page.Snapshot()
		require.Len(t, state.Messages, 3)
		assert.Equal(t, "hello", state.Messages[2].UserMessage)

		close(g.release)
		msg := <-done
		assert.Equal(t, model.ReplyResolved, msg.Reply.State)
		assert.Equal(t, model.ReplyResolved, page.Snapshot().Messages[2].Reply.State)
	})
}

func TestChatPage_ExtractedEntities(t *testing.T) {
	testCases := []struct {
		name       string
		extracted  string
		wantFields int
		wantError  bool
	}{
		{name: "filtered", extracted: `{"a":"x","b":null,"c":""}`, wantFields: 1},
		{name: "empty object", extracted: `{}`},
		{name: "malformed", extracted: `not json`, wantError: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			page, api := setupChatPage(t)
			record := cardRecord()
			raw, _ := jsonString(tc.extracted)
			record.ExtractedData = raw
			api.On("Analyze", mock.Anything, "text").Return(record, nil).Once()

			msg, err := page.SendMessage(context.Background(), "text")
			require.NoError(t, err)
			resp := msg.Reply.Response
			require.NotNil(t, resp)

			assert.Equal(t, tc.extracted, resp.ExtractedData)
			if tc.wantFields == 0 {
				assert.True(t, resp.Entities.Empty())
			} else {
				assert.Len(t, resp.Entities.Fields, tc.wantFields)
			}
			assert.Equal(t, tc.wantError, resp.EntitiesError != "")
		})
	}
}

func TestChatPage_Subscribe(t *testing.T) {
	page, _ := setupChatPage(t)
	ch, cancel := page.Subscribe()

	page.SetInput("a")
	page.SetInput("b")

	select {
	case <-ch:
	case <-time.After(time.Second):
		t.Fatal("expected a change notification")
	}

	cancel()
	cancel()
	page.SetInput("c")
	select {
	case <-ch:
		t.Fatal("unsubscribed channel must not be notified")
	default:
	}
}

func TestIDSource_StrictlyIncreasing(t *testing.T) {
	ids := service.NewIDSource(func() time.Time { return fixedNow })

	first := ids.Next()
	second := ids.Next()
	third := ids.Next()

	assert.Equal(t, fixedNow.UnixMilli(), first)
	assert.Equal(t, first+1, second)
	assert.Equal(t, second+1, third)
}
