package triage

import (
	"bytes"
	"encoding/json"
	"strings"
	"time"
)

// AcceptedExtensions is what the upload inputs offer. It is a hint for the
// browser; the server decides what it can read.
var AcceptedExtensions = []string{".txt", ".pdf", ".eml", ".docx"}

// Record is one analysed message as returned by /history, /analyze and
// /analyze_file. Two generations of the backend exist: the first one sends
// classification/generated_answer/extracted_data, the second one
// category/official_reply/parameters plus the reply metadata fields.
type Record struct {
	ID              int64           `json:"id"`
	InputText       string          `json:"input_text"`
	Classification  *string         `json:"classification"`
	GeneratedAnswer *string         `json:"generated_answer"`
	CreatedAt       string          `json:"created_at"`
	ExtractedData   json.RawMessage `json:"extracted_data,omitempty"`

	Category             *string         `json:"category,omitempty"`
	OfficialReply        *string         `json:"official_reply,omitempty"`
	Parameters           json.RawMessage `json:"parameters,omitempty"`
	ReplyStyle           *string         `json:"reply_style,omitempty"`
	TimeToReply          *string         `json:"time_to_reply,omitempty"`
	Summary              *string         `json:"summary,omitempty"`
	InfrastructureSphere *string         `json:"infrastructure_sphere,omitempty"`
	RisksAndFixes        *string         `json:"risks_and_fixes,omitempty"`
}

// ClassificationText prefers classification and falls back to category.
func (r *Record) ClassificationText() string {
	return firstNonEmpty(r.Classification, r.Category)
}

// AnswerText prefers generated_answer and falls back to official_reply.
func (r *Record) AnswerText() string {
	return firstNonEmpty(r.GeneratedAnswer, r.OfficialReply)
}

// ExtractedText returns the entity payload as a JSON document, or "" when the
// server sent none. The payload is usually a JSON-encoded string; an inline
// object is accepted as well.
func (r *Record) ExtractedText() string {
	if s := rawText(r.ExtractedData); s != "" {
		return s
	}
	return rawText(r.Parameters)
}

// Created parses created_at. FastAPI emits ISO-8601 with or without an offset;
// values without one are read in loc.
func (r *Record) Created(loc *time.Location) (time.Time, bool) {
	if r.CreatedAt == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse(time.RFC3339Nano, r.CreatedAt); err == nil {
		return t, true
	}
	for _, layout := range []string{"2006-01-02T15:04:05.999999999", "2006-01-02 15:04:05.999999999", "2006-01-02 15:04:05"} {
		if t, err := time.ParseInLocation(layout, r.CreatedAt, loc); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// Str dereferences an optional string field.
func Str(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

func firstNonEmpty(values ...*string) string {
	for _, v := range values {
		if s := strings.TrimSpace(Str(v)); s != "" {
			return Str(v)
		}
	}
	return ""
}

func rawText(raw json.RawMessage) string {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return ""
	}
	if trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return string(trimmed)
		}
		if strings.TrimSpace(s) == "null" {
			return ""
		}
		return s
	}
	return string(trimmed)
}

type analyzeRequest struct {
	Text string `json:"text"`
}

type errorBody struct {
	Detail json.RawMessage `json:"detail"`
}
