package model

import (
	"time"

	"triage-chat/internal/entities"
)

// MessageSource tells where a ChatMessage came from.
type MessageSource string

const (
	SourceText    MessageSource = "text"
	SourceFile    MessageSource = "file"
	SourceHistory MessageSource = "history"
)

// ChatMessage is one user/assistant exchange on the chat page.
// ID is generated client-side and is only used to find the message again when
// its request settles.
type ChatMessage struct {
	ID          int64         `json:"id"`
	UserMessage string        `json:"user_message"`
	Reply       Reply         `json:"reply"`
	Timestamp   time.Time     `json:"timestamp"`
	Source      MessageSource `json:"source"`
}

// AiResponse is the analysis attached to a message once the API answered.
type AiResponse struct {
	Classification string `json:"classification"`
	Answer         string `json:"answer"`
	// ExtractedData is the raw JSON string as sent by the server.
	ExtractedData        string             `json:"extracted_data,omitempty"`
	Entities             *entities.Entities `json:"entities,omitempty"`
	EntitiesError        string             `json:"entities_error,omitempty"`
	ReplyStyle           string             `json:"reply_style,omitempty"`
	TimeToReply          string             `json:"time_to_reply,omitempty"`
	Summary              string             `json:"summary,omitempty"`
	InfrastructureSphere string             `json:"infrastructure_sphere,omitempty"`
	RisksAndFixes        string             `json:"risks_and_fixes,omitempty"`
}

// FileInfo describes the selected or uploaded file without its content.
type FileInfo struct {
	Name string `json:"name"`
	Size int64  `json:"size"`
}

// Upload is a file picked by the user, read fully into memory.
type Upload struct {
	Name string
	Data []byte
}

func (u *Upload) Info() FileInfo {
	return FileInfo{Name: u.Name, Size: int64(len(u.Data))}
}

// PageState is a point-in-time copy of the chat page.
type PageState struct {
	Messages      []ChatMessage `json:"messages"`
	Input         string        `json:"input"`
	Loading       bool          `json:"loading"`
	SelectedFile  *FileInfo     `json:"selected_file,omitempty"`
	HistoryLoaded bool          `json:"history_loaded"`
	HistoryError  string        `json:"history_error,omitempty"`
}

// DayGroup holds the messages of one calendar day, in list order.
type DayGroup struct {
	Day      string        `json:"day"`
	Messages []ChatMessage `json:"messages"`
}

// EmailAnalysis is the answer of the standalone email endpoint.
type EmailAnalysis struct {
	Category   string `json:"category"`
	Summary    string `json:"summary"`
	ReplyDraft string `json:"reply_draft"`
}

// User is the signed-in operator.
type User struct {
	Name string `json:"name"`
}
