// Package view turns page state into HTML. Everything here is a pure function
// of its input; the templates live in the web package.
package view

import (
	"fmt"
	"html/template"
	"io"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/dustin/go-humanize"

	"triage-chat/internal/entities"
	"triage-chat/internal/model"
	"triage-chat/internal/service"
	"triage-chat/web"
)

// maxUserRunes caps user texts in the thread. Long ones are typically the
// extracted text of an uploaded file coming back from history.
const maxUserRunes = 500

// Detail is an optional labelled line of the assistant bubble.
type Detail struct {
	Label string
	Value string
}

// MessageView is what the message template needs for one exchange.
type MessageView struct {
	ID             int64
	UserText       string
	Time           string
	Pending        bool
	Failed         bool
	Classification string
	Answer         string
	Details        []Detail
	Entities       []entities.Field
	EntitiesError  string
}

// DayView is a date separator with its messages.
type DayView struct {
	Day      string
	Messages []MessageView
}

// FileView describes the selected file.
type FileView struct {
	Name string
	Size string
}

// ChatPageData is the input of the chat page template.
type ChatPageData struct {
	User          *model.User
	Days          []DayView
	Input         string
	Loading       bool
	SelectedFile  *FileView
	HistoryLoaded bool
	HistoryError  string
	Notice        string
	Accept        string
}

// EmailPageData is the input of the standalone email page template.
type EmailPageData struct {
	FileName string
	Result   *model.EmailAnalysis
	Error    string
	Accept   string
}

// NewMessageView renders one exchange. Nothing is shown on the assistant side
// while the reply is pending.
func NewMessageView(m model.ChatMessage, loc *time.Location) MessageView {
	if loc == nil {
		loc = time.Local
	}
	v := MessageView{
		ID:       m.ID,
		UserText: truncateRunes(m.UserMessage, maxUserRunes),
		Time:     m.Timestamp.In(loc).Format("15:04:05"),
	}

	switch m.Reply.State {
	case model.ReplyResolved:
		resp := m.Reply.Response
		if resp == nil {
			v.Pending = true
			return v
		}
		v.Classification = resp.Classification
		v.Answer = resp.Answer
		v.Details = details(resp)
		v.EntitiesError = resp.EntitiesError
		if !resp.Entities.Empty() {
			v.Entities = resp.Entities.Fields
		}
	case model.ReplyFailed:
		v.Failed = true
		v.Classification = model.ErrorClassification
		if m.Reply.Failure != nil {
			v.Classification = m.Reply.Failure.Classification
			v.Answer = m.Reply.Failure.Message
		}
	default:
		v.Pending = true
	}
	return v
}

func details(resp *model.AiResponse) []Detail {
	var out []Detail
	add := func(label, value string) {
		if strings.TrimSpace(value) != "" {
			out = append(out, Detail{Label: label, Value: value})
		}
	}
	add("Summary", resp.Summary)
	add("Reply style", resp.ReplyStyle)
	add("Time to reply", resp.TimeToReply)
	add("Infrastructure sphere", resp.InfrastructureSphere)
	add("Risks and fixes", resp.RisksAndFixes)
	return out
}

// NewChatPageData builds the chat template input from a snapshot.
func NewChatPageData(user *model.User, state model.PageState, loc *time.Location, dateLayout string) ChatPageData {
	groups := service.GroupByDay(state.Messages, loc, dateLayout)
	days := make([]DayView, 0, len(groups))
	for _, g := range groups {
		day := DayView{Day: g.Day, Messages: make([]MessageView, 0, len(g.Messages))}
		for _, m := range g.Messages {
			day.Messages = append(day.Messages, NewMessageView(m, loc))
		}
		days = append(days, day)
	}

	data := ChatPageData{
		User:          user,
		Days:          days,
		Input:         state.Input,
		Loading:       state.Loading,
		HistoryLoaded: state.HistoryLoaded,
		HistoryError:  state.HistoryError,
	}
	if state.SelectedFile != nil {
		data.SelectedFile = &FileView{
			Name: state.SelectedFile.Name,
			Size: humanize.Bytes(uint64(state.SelectedFile.Size)),
		}
	}
	return data
}

// Renderer executes the embedded templates.
type Renderer struct {
	tmpl   *template.Template
	accept string
}

// NewRenderer parses the templates. accept is the file input filter.
func NewRenderer(accept []string) (*Renderer, error) {
	tmpl, err := template.ParseFS(web.Templates(), "*.html")
	if err != nil {
		return nil, fmt.Errorf("could not parse templates: %w", err)
	}
	return &Renderer{tmpl: tmpl, accept: strings.Join(accept, ",")}, nil
}

func (r *Renderer) ChatPage(w io.Writer, data ChatPageData) error {
	data.Accept = r.accept
	return r.tmpl.ExecuteTemplate(w, "chat.html", data)
}

func (r *Renderer) EmailPage(w io.Writer, data EmailPageData) error {
	data.Accept = r.accept
	return r.tmpl.ExecuteTemplate(w, "email.html", data)
}

func (r *Renderer) SignedOut(w io.Writer) error {
	return r.tmpl.ExecuteTemplate(w, "signed_out.html", nil)
}

func truncateRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n]) + "…"
}
