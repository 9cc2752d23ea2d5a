package interfaces

import (
	"context"

	"triage-chat/internal/model"
)

// Handlers depend on these interfaces rather than on the service structs so
// they can be tested with mocks.

// ChatPage is the state of one open chat page.
type ChatPage interface {
	FetchHistory(ctx context.Context) error
	SetInput(text string)
	SendMessage(ctx context.Context, text string) (model.ChatMessage, error)
	SelectFile(upload *model.Upload) error
	ClearFile()
	SendFile(ctx context.Context) (model.ChatMessage, error)
	Snapshot() model.PageState
	Subscribe() (<-chan struct{}, func())
}

// PageStore keeps one ChatPage per browser page session.
type PageStore interface {
	Open(id string) ChatPage
	Close(id string)
}

// EmailService backs the standalone email page.
type EmailService interface {
	Analyze(ctx context.Context, upload *model.Upload) (*model.EmailAnalysis, error)
}
