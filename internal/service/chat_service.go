package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/dustin/go-humanize"
	"golang.org/x/sync/singleflight"

	"triage-chat/internal/entities"
	app_errors "triage-chat/internal/errors"
	"triage-chat/internal/interfaces"
	"triage-chat/internal/model"
	"triage-chat/internal/triage"
)

// Texts of the error stand-ins attached to messages whose request failed.
const (
	TextFailureMessage    = "Could not reach the analysis service. Check that the triage API is running."
	FileFailureMessage    = "Could not send the file for analysis."
	HistoryFailureMessage = "Could not load the conversation history."
)

var (
	// ErrBlankText rejects a text submission with nothing but whitespace.
	ErrBlankText = fmt.Errorf("%w: message text is blank", app_errors.ErrValidation)
	// ErrNoFile rejects a file submission when no file is selected.
	ErrNoFile = fmt.Errorf("%w: no file selected", app_errors.ErrValidation)
	// ErrBusy rejects any submission while another one is in flight.
	ErrBusy = fmt.Errorf("%w: a request is already in flight", app_errors.ErrConflict)
)

var _ interfaces.ChatPage = (*ChatPage)(nil)

// ChatPage holds the state of one open chat page: the message thread, the
// input field, the selected file and a single loading flag shared by text and
// file submissions. Network calls are made without holding the lock; every
// mutation replaces the message slice instead of editing it in place, so
// snapshots never alias live state.
type ChatPage struct {
	api triage.Analyzer
	ids *IDSource
	now func() time.Time
	loc *time.Location

	history singleflight.Group

	mu            sync.Mutex
	messages      []model.ChatMessage
	input         string
	loading       bool
	selected      *model.Upload
	historyLoaded bool
	historyErr    string

	subMu sync.Mutex
	subs  map[chan struct{}]struct{}
}

// PageOption customises a ChatPage.
type PageOption func(*ChatPage)

// WithClock replaces time.Now for message timestamps.
func WithClock(now func() time.Time) PageOption {
	return func(p *ChatPage) { p.now = now }
}

// WithLocation sets the zone used for history timestamps without an offset.
func WithLocation(loc *time.Location) PageOption {
	return func(p *ChatPage) { p.loc = loc }
}

func NewChatPage(api triage.Analyzer, ids *IDSource, opts ...PageOption) *ChatPage {
	p := &ChatPage{
		api:  api,
		ids:  ids,
		now:  time.Now,
		loc:  time.Local,
		subs: make(map[chan struct{}]struct{}),
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.ids == nil {
		p.ids = NewIDSource(p.now)
	}
	return p
}

// FetchHistory loads the stored conversation once per page. Concurrent
// callers share a single request; once it settled, later calls return
// immediately. A failure is recorded on the page and not retried.
func (p *ChatPage) FetchHistory(ctx context.Context) error {
	p.mu.Lock()
	loaded := p.historyLoaded
	p.mu.Unlock()
	if loaded {
		return nil
	}

	_, err, _ := p.history.Do("history", func() (any, error) {
		p.mu.Lock()
		loaded := p.historyLoaded
		p.mu.Unlock()
		if loaded {
			return nil, nil
		}
		return nil, p.loadHistory(context.WithoutCancel(ctx))
	})
	return err
}

func (p *ChatPage) loadHistory(ctx context.Context) error {
	records, err := p.api.History(ctx)
	if err != nil {
		slog.Warn("Failed to load chat history", "error", err)
		p.mu.Lock()
		p.historyLoaded = true
		p.historyErr = HistoryFailureMessage
		p.mu.Unlock()
		p.notify()
		return fmt.Errorf("could not load history: %w", err)
	}

	// The server sends newest first; the thread reads oldest first.
	loaded := make([]model.ChatMessage, 0, len(records))
	for i := len(records) - 1; i >= 0; i-- {
		loaded = append(loaded, p.fromRecord(&records[i]))
	}

	p.mu.Lock()
	// Placeholders created while history was in flight must survive the
	// replacement or their replies would have nothing to land on.
	for _, m := range p.messages {
		if m.Reply.IsPending() {
			loaded = append(loaded, m)
		}
	}
	p.messages = loaded
	p.historyLoaded = true
	p.historyErr = ""
	p.mu.Unlock()
	p.notify()

	slog.Debug("Loaded chat history", "records", len(records))
	return nil
}

// SetInput stores the current content of the input field.
func (p *ChatPage) SetInput(text string) {
	p.mu.Lock()
	p.input = text
	p.mu.Unlock()
	p.notify()
}

// SendMessage submits text for analysis. Blank text and submissions while a
// request is in flight are rejected before any network call. Otherwise a
// pending message is appended and the input cleared; the message is then
// settled with the analysis or with an error stand-in.
func (p *ChatPage) SendMessage(ctx context.Context, text string) (model.ChatMessage, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return model.ChatMessage{}, ErrBlankText
	}

	p.mu.Lock()
	if p.loading {
		p.mu.Unlock()
		return model.ChatMessage{}, ErrBusy
	}
	placeholder := p.appendPlaceholderLocked(trimmed, model.SourceText)
	p.input = ""
	p.mu.Unlock()
	p.notify()

	record, err := p.api.Analyze(context.WithoutCancel(ctx), trimmed)
	if err != nil {
		slog.Warn("Failed to analyze message", "message_id", placeholder.ID, "error", err)
		return p.settle(placeholder.ID, model.Failed(TextFailureMessage)), nil
	}
	return p.settle(placeholder.ID, model.Resolved(toAiResponse(record))), nil
}

// SelectFile remembers the file to send next.
func (p *ChatPage) SelectFile(upload *model.Upload) error {
	if upload == nil || upload.Name == "" {
		return ErrNoFile
	}
	p.mu.Lock()
	if p.loading {
		p.mu.Unlock()
		return ErrBusy
	}
	p.selected = upload
	p.mu.Unlock()
	p.notify()
	return nil
}

// ClearFile forgets the selected file.
func (p *ChatPage) ClearFile() {
	p.mu.Lock()
	p.selected = nil
	p.mu.Unlock()
	p.notify()
}

// SendFile uploads the selected file. The selection is cleared as soon as the
// placeholder is appended so the same file cannot be submitted twice.
func (p *ChatPage) SendFile(ctx context.Context) (model.ChatMessage, error) {
	p.mu.Lock()
	if p.selected == nil {
		p.mu.Unlock()
		return model.ChatMessage{}, ErrNoFile
	}
	if p.loading {
		p.mu.Unlock()
		return model.ChatMessage{}, ErrBusy
	}
	upload := p.selected
	p.selected = nil
	placeholder := p.appendPlaceholderLocked(FileSummary(upload.Info()), model.SourceFile)
	p.mu.Unlock()
	p.notify()

	record, err := p.api.AnalyzeFile(context.WithoutCancel(ctx), upload)
	if err != nil {
		slog.Warn("Failed to analyze file", "message_id", placeholder.ID, "file", upload.Name, "error", err)
		message := FileFailureMessage
		if detail, ok := triage.DetailOf(err); ok {
			message = detail
		}
		return p.settle(placeholder.ID, model.Failed(message)), nil
	}
	return p.settle(placeholder.ID, model.Resolved(toAiResponse(record))), nil
}

// Snapshot returns a copy of the page state.
func (p *ChatPage) Snapshot() model.PageState {
	p.mu.Lock()
	defer p.mu.Unlock()

	state := model.PageState{
		Messages:      append([]model.ChatMessage(nil), p.messages...),
		Input:         p.input,
		Loading:       p.loading,
		HistoryLoaded: p.historyLoaded,
		HistoryError:  p.historyErr,
	}
	if state.Messages == nil {
		state.Messages = []model.ChatMessage{}
	}
	if p.selected != nil {
		info := p.selected.Info()
		state.SelectedFile = &info
	}
	return state
}

// Subscribe returns a channel that receives a value after state changes.
// Notifications coalesce: a slow reader sees at least one signal after the
// latest change. The returned func unsubscribes.
func (p *ChatPage) Subscribe() (<-chan struct{}, func()) {
	ch := make(chan struct{}, 1)
	p.subMu.Lock()
	p.subs[ch] = struct{}{}
	p.subMu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			p.subMu.Lock()
			delete(p.subs, ch)
			p.subMu.Unlock()
		})
	}
}

func (p *ChatPage) notify() {
	p.subMu.Lock()
	defer p.subMu.Unlock()
	for ch := range p.subs {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}

// appendPlaceholderLocked must be called with p.mu held.
func (p *ChatPage) appendPlaceholderLocked(text string, source model.MessageSource) model.ChatMessage {
	placeholder := model.ChatMessage{
		ID:          p.ids.Next(),
		UserMessage: text,
		Reply:       model.Pending(),
		Timestamp:   p.now(),
		Source:      source,
	}
	next := make([]model.ChatMessage, len(p.messages), len(p.messages)+1)
	copy(next, p.messages)
	p.messages = append(next, placeholder)
	p.loading = true
	return placeholder
}

// settle replaces the reply of the message with the given id and clears the
// loading flag.
func (p *ChatPage) settle(id int64, reply model.Reply) model.ChatMessage {
	p.mu.Lock()
	var settled model.ChatMessage
	found := false
	next := make([]model.ChatMessage, len(p.messages))
	copy(next, p.messages)
	for i := range next {
		if next[i].ID == id {
			next[i].Reply = reply
			settled = next[i]
			found = true
			break
		}
	}
	p.messages = next
	p.loading = false
	p.mu.Unlock()
	p.notify()

	if !found {
		slog.Error("Reply arrived for an unknown message", "message_id", id)
		return model.ChatMessage{ID: id, Reply: reply}
	}
	return settled
}

func (p *ChatPage) fromRecord(record *triage.Record) model.ChatMessage {
	ts, ok := record.Created(p.loc)
	if !ok {
		ts = p.now()
	}
	return model.ChatMessage{
		ID:          p.ids.Next(),
		UserMessage: record.InputText,
		Reply:       model.Resolved(toAiResponse(record)),
		Timestamp:   ts,
		Source:      model.SourceHistory,
	}
}

// toAiResponse converts an API record and validates its entity payload.
func toAiResponse(record *triage.Record) model.AiResponse {
	resp := model.AiResponse{
		Classification:       record.ClassificationText(),
		Answer:               record.AnswerText(),
		ExtractedData:        record.ExtractedText(),
		ReplyStyle:           triage.Str(record.ReplyStyle),
		TimeToReply:          triage.Str(record.TimeToReply),
		Summary:              triage.Str(record.Summary),
		InfrastructureSphere: triage.Str(record.InfrastructureSphere),
		RisksAndFixes:        triage.Str(record.RisksAndFixes),
	}
	if resp.ExtractedData == "" {
		return resp
	}

	parsed, err := entities.Parse(resp.ExtractedData)
	switch {
	case err != nil:
		slog.Debug("Rejected extracted entities", "record_id", record.ID, "error", err)
		resp.EntitiesError = err.Error()
	case !parsed.Empty():
		resp.Entities = parsed
	}
	return resp
}

// FileSummary is the text shown in place of the user message for an upload.
func FileSummary(info model.FileInfo) string {
	return fmt.Sprintf("[file] %s (%s)", info.Name, humanize.Bytes(uint64(info.Size)))
}
