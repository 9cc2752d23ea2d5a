package triage

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	app_errors "triage-chat/internal/errors"
	"triage-chat/internal/model"
)

// TestClient runs the client against a fake triage API built with httptest.
func TestClient(t *testing.T) {
	var capturedMethod, capturedPath, capturedContentType string
	var capturedBody []byte
	var capturedFile struct {
		name, contentType string
		data              []byte
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		capturedMethod = r.Method
		capturedPath = r.URL.Path
		capturedContentType = r.Header.Get("Content-Type")

		switch r.URL.Path {
		case "/history":
			w.Header().Set("Content-Type", "application/json")
			_, err := w.Write([]byte(`[
				{"id": 2, "input_text": "second", "classification": "Request", "generated_answer": "ok", "created_at": "2025-10-02T10:00:00", "extracted_data": "{\"a\":\"x\"}"},
				{"id": 1, "input_text": "first", "category": "Complaint", "official_reply": "sorry", "parameters": null, "created_at": "2025-10-01T09:00:00+03:00"}
			]`))
			assert.NoError(t, err)
		case "/analyze":
			body, err := io.ReadAll(r.Body)
			assert.NoError(t, err)
			capturedBody = body
			w.Header().Set("Content-Type", "application/json")
			_, err = w.Write([]byte(`{"id": 3, "input_text": "Where is my card?", "classification": "card_issue", "generated_answer": "It is on its way.", "created_at": "2025-10-03T11:00:00"}`))
			assert.NoError(t, err)
		case "/analyze_file", "/analyze_email":
			file, header, err := r.FormFile("file")
			if !assert.NoError(t, err) {
				w.WriteHeader(http.StatusBadRequest)
				return
			}
			data, err := io.ReadAll(file)
			assert.NoError(t, err)
			capturedFile.name = header.Filename
			capturedFile.contentType = header.Header.Get("Content-Type")
			capturedFile.data = data

			w.Header().Set("Content-Type", "application/json")
			if r.URL.Path == "/analyze_email" {
				_, err = w.Write([]byte(`{"category": "Complaint", "summary": "Card blocked", "reply_draft": "Dear client"}`))
			} else {
				_, err = w.Write([]byte(`{"id": 4, "input_text": "file text", "classification": "General", "generated_answer": "Thanks", "created_at": "2025-10-03T12:00:00"}`))
			}
			assert.NoError(t, err)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	client := NewClient(server.URL+"/", 0)
	ctx := context.Background()

	t.Run("History", func(t *testing.T) {
		records, err := client.History(ctx)
		require.NoError(t, err)
		require.Len(t, records, 2)

		assert.Equal(t, http.MethodGet, capturedMethod)
		assert.Equal(t, "/history", capturedPath)

		assert.Equal(t, "Request", records[0].ClassificationText())
		assert.Equal(t, `{"a":"x"}`, records[0].ExtractedText())
		assert.Equal(t, "Complaint", records[1].ClassificationText())
		assert.Equal(t, "sorry", records[1].AnswerText())
		assert.Equal(t, "", records[1].ExtractedText())

		created, ok := records[1].Created(time.UTC)
		require.True(t, ok)
		assert.Equal(t, time.Date(2025, 10, 1, 6, 0, 0, 0, time.UTC), created.UTC())
	})

	t.Run("Analyze", func(t *testing.T) {
		record, err := client.Analyze(ctx, "Where is my card?")
		require.NoError(t, err)

		assert.Equal(t, http.MethodPost, capturedMethod)
		assert.Equal(t, "/analyze", capturedPath)
		assert.Equal(t, "application/json", capturedContentType)
		assert.JSONEq(t, `{"text":"Where is my card?"}`, string(capturedBody))
		assert.Equal(t, "card_issue", record.ClassificationText())
		assert.Equal(t, "It is on its way.", record.AnswerText())
	})

	t.Run("AnalyzeFile", func(t *testing.T) {
		upload := &model.Upload{Name: "letter.txt", Data: []byte("Please block my card")}
		record, err := client.AnalyzeFile(ctx, upload)
		require.NoError(t, err)

		assert.Equal(t, "/analyze_file", capturedPath)
		assert.Contains(t, capturedContentType, "multipart/form-data")
		assert.Equal(t, "letter.txt", capturedFile.name)
		assert.Equal(t, "text/plain", capturedFile.contentType)
		assert.Equal(t, upload.Data, capturedFile.data)
		assert.Equal(t, int64(4), record.ID)
	})

	t.Run("AnalyzeEmail", func(t *testing.T) {
		analysis, err := client.AnalyzeEmail(ctx, &model.Upload{Name: "mail.eml", Data: []byte("Subject: hi\r\n\r\nbody")})
		require.NoError(t, err)

		assert.Equal(t, "/analyze_email", capturedPath)
		assert.Equal(t, &model.EmailAnalysis{Category: "Complaint", Summary: "Card blocked", ReplyDraft: "Dear client"}, analysis)
	})

	t.Run("UploadWithoutFile", func(t *testing.T) {
		_, err := client.AnalyzeFile(ctx, nil)
		assert.ErrorIs(t, err, app_errors.ErrValidation)
	})

	t.Run("Ping", func(t *testing.T) {
		assert.NoError(t, client.Ping(ctx))
	})
}

func TestClient_ErrorDetail(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]string{"detail": "Unsupported file type: image/png"})
	}))
	defer server.Close()

	client := NewClient(server.URL, time.Second)
	_, err := client.AnalyzeFile(context.Background(), &model.Upload{Name: "x.png", Data: []byte("\x89PNG\r\n\x1a\n")})
	require.Error(t, err)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.ErrorIs(t, err, app_errors.ErrUpstream)

	detail, ok := DetailOf(err)
	assert.True(t, ok)
	assert.Equal(t, "Unsupported file type: image/png", detail)
}

func TestClient_ErrorWithoutDetail(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"detail":[{"loc":["body","text"],"msg":"field required"}]}`))
	}))
	defer server.Close()

	_, err := NewClient(server.URL, 0).Analyze(context.Background(), "hi")
	require.Error(t, err)

	_, ok := DetailOf(err)
	assert.False(t, ok)
	assert.Contains(t, err.Error(), "422")
}

func TestClient_TransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	_, err := NewClient(url, 0).History(context.Background())
	assert.ErrorIs(t, err, app_errors.ErrUpstream)
	assert.Error(t, NewClient(url, 0).Ping(context.Background()))
}

func TestDetectContentType(t *testing.T) {
	assert.Equal(t, "text/plain", DetectContentType("a.txt", []byte("plain words")))
	assert.Equal(t, "application/pdf", DetectContentType("a.pdf", []byte("%PDF-1.4\n%âãÏÓ\n")))
}
