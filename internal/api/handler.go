package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"triage-chat/internal/auth"
	app_errors "triage-chat/internal/errors"
	"triage-chat/internal/interfaces"
	"triage-chat/internal/model"
	"triage-chat/internal/service"
	"triage-chat/internal/view"
)

// Notices shown on the chat page after a redirect.
const (
	noticeBusy     = "busy"
	noticeEmpty    = "empty"
	noticeNoFile   = "nofile"
	noticeTooLarge = "toolarge"
	noticeInvalid  = "invalid"
)

var noticeTexts = map[string]string{
	noticeBusy:     "Wait for the current request to finish.",
	noticeEmpty:    "Type a message first.",
	noticeNoFile:   "Choose a file first.",
	noticeTooLarge: "The file is too large.",
	noticeInvalid:  "The form could not be read.",
}

// PageOptions are the display and upload settings of the chat handlers.
type PageOptions struct {
	Location       *time.Location
	DateLayout     string
	MaxUploadBytes int64
}

// ChatHandler serves the chat page and its JSON counterpart.
type ChatHandler struct {
	pages    interfaces.PageStore
	renderer *view.Renderer
	opts     PageOptions
}

func NewChatHandler(pages interfaces.PageStore, renderer *view.Renderer, opts PageOptions) *ChatHandler {
	if opts.Location == nil {
		opts.Location = time.Local
	}
	return &ChatHandler{pages: pages, renderer: renderer, opts: opts}
}

// --- HTML ---

// ShowChat renders the chat page. The first visit of a page loads history.
func (h *ChatHandler) ShowChat(w http.ResponseWriter, r *http.Request) {
	session, err := auth.FromContext(r.Context())
	if err != nil {
		respondWithError(w, err)
		return
	}
	page := h.pages.Open(pageID(w, r))
	// A failed load is recorded on the page and shown as a banner.
	_ = page.FetchHistory(r.Context())

	data := view.NewChatPageData(session.User(), page.Snapshot(), h.opts.Location, h.opts.DateLayout)
	data.Notice = noticeTexts[r.URL.Query().Get("notice")]

	var buf bytes.Buffer
	if err := h.renderer.ChatPage(&buf, data); err != nil {
		slog.Error("Failed to render chat page", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}

// SubmitMessage handles the text form and redirects back to the page.
func (h *ChatHandler) SubmitMessage(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		redirectToChat(w, r, noticeInvalid)
		return
	}
	text := r.PostForm.Get("text")
	page := h.pages.Open(pageID(w, r))
	page.SetInput(text)

	if _, err := page.SendMessage(r.Context(), text); err != nil {
		redirectToChat(w, r, noticeFor(err))
		return
	}
	redirectToChat(w, r, "")
}

// SubmitFile handles the upload form. The file is selected and sent in one
// step.
func (h *ChatHandler) SubmitFile(w http.ResponseWriter, r *http.Request) {
	page := h.pages.Open(pageID(w, r))
	upload, err := readUpload(w, r, h.opts.MaxUploadBytes)
	if err != nil {
		redirectToChat(w, r, noticeFor(err))
		return
	}
	if err := page.SelectFile(upload); err != nil {
		redirectToChat(w, r, noticeFor(err))
		return
	}
	if _, err := page.SendFile(r.Context()); err != nil {
		redirectToChat(w, r, noticeFor(err))
		return
	}
	redirectToChat(w, r, "")
}

// Logout ends the session, drops the page and shows the signed-out page.
func (h *ChatHandler) Logout(w http.ResponseWriter, r *http.Request) {
	session, err := auth.FromContext(r.Context())
	if err != nil {
		respondWithError(w, err)
		return
	}
	session.Logout(r.Context())
	if c, err := r.Cookie(pageCookie); err == nil {
		h.pages.Close(c.Value)
	}
	clearPageID(w)
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

// SignedOut renders the page shown after logout.
func (h *ChatHandler) SignedOut(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	if err := h.renderer.SignedOut(&buf); err != nil {
		slog.Error("Failed to render signed-out page", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}

func redirectToChat(w http.ResponseWriter, r *http.Request, notice string) {
	target := "/"
	if notice != "" {
		target += "?" + url.Values{"notice": {notice}}.Encode()
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

func noticeFor(err error) string {
	switch {
	case errors.Is(err, service.ErrBusy):
		return noticeBusy
	case errors.Is(err, service.ErrBlankText):
		return noticeEmpty
	case errors.Is(err, service.ErrNoFile):
		return noticeNoFile
	case errors.Is(err, errUploadTooLarge):
		return noticeTooLarge
	default:
		slog.Warn("Chat form submission failed", "error", err)
		return noticeInvalid
	}
}

// --- JSON ---

// GetMe godoc
// @Summary      Current user
// @Description  Returns the signed-in operator.
// @Tags         Session
// @Produce      json
// @Success      200  {object}  model.User
// @Failure      404  {object}  ErrorResponse
// @Router       /v1/me [get]
func (h *ChatHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	session, err := auth.FromContext(r.Context())
	if err != nil {
		respondWithError(w, err)
		return
	}
	user := session.User()
	if user == nil {
		respondWithError(w, app_errors.ErrNotFound)
		return
	}
	respondWithJSON(w, http.StatusOK, user)
}

// GetChat godoc
// @Summary      Chat state
// @Description  Returns the current state of this browser's chat page without loading history.
// @Tags         Chat
// @Produce      json
// @Success      200  {object}  model.PageState
// @Router       /v1/chat [get]
func (h *ChatHandler) GetChat(w http.ResponseWriter, r *http.Request) {
	page := h.pages.Open(pageID(w, r))
	respondWithJSON(w, http.StatusOK, page.Snapshot())
}

// LoadHistory godoc
// @Summary      Load history
// @Description  Loads the stored conversation once per page and returns the page state. A failed load is reported in history_error.
// @Tags         Chat
// @Produce      json
// @Success      200  {object}  model.PageState
// @Router       /v1/chat/history [post]
func (h *ChatHandler) LoadHistory(w http.ResponseWriter, r *http.Request) {
	page := h.pages.Open(pageID(w, r))
	if err := page.FetchHistory(r.Context()); err != nil {
		slog.Debug("History load failed", "error", err)
	}
	respondWithJSON(w, http.StatusOK, page.Snapshot())
}

// PostMessage godoc
// @Summary      Send a message
// @Description  Submits text for analysis and returns the settled message. A failed analysis is reported inside the message, not as an HTTP error.
// @Tags         Chat
// @Accept       json
// @Produce      json
// @Param        request  body      SendMessageRequest  true  "Message text"
// @Success      200      {object}  model.ChatMessage
// @Failure      400      {object}  ErrorResponse
// @Failure      409      {object}  ErrorResponse
// @Router       /v1/chat/messages [post]
func (h *ChatHandler) PostMessage(w http.ResponseWriter, r *http.Request) {
	var req SendMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, fmt.Errorf("%w: invalid request payload", app_errors.ErrValidation))
		return
	}
	if err := validateRequest(&req); err != nil {
		respondWithError(w, err)
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		respondWithError(w, service.ErrBlankText)
		return
	}

	page := h.pages.Open(pageID(w, r))
	msg, err := page.SendMessage(r.Context(), req.Text)
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, msg)
}

// PostFile godoc
// @Summary      Send a file
// @Description  Uploads a file for analysis and returns the settled message.
// @Tags         Chat
// @Accept       mpfd
// @Produce      json
// @Param        file  formData  file  true  "Document (.txt, .pdf, .eml, .docx)"
// @Success      200   {object}  model.ChatMessage
// @Failure      400   {object}  ErrorResponse
// @Failure      409   {object}  ErrorResponse
// @Router       /v1/chat/files [post]
func (h *ChatHandler) PostFile(w http.ResponseWriter, r *http.Request) {
	page := h.pages.Open(pageID(w, r))
	upload, err := readUpload(w, r, h.opts.MaxUploadBytes)
	if err != nil {
		respondWithError(w, err)
		return
	}
	if err := page.SelectFile(upload); err != nil {
		respondWithError(w, err)
		return
	}
	msg, err := page.SendFile(r.Context())
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, msg)
}

// GetDays godoc
// @Summary      Messages by day
// @Description  Returns the thread split into runs of messages sharing a calendar day.
// @Tags         Chat
// @Produce      json
// @Success      200  {array}  model.DayGroup
// @Router       /v1/chat/days [get]
func (h *ChatHandler) GetDays(w http.ResponseWriter, r *http.Request) {
	page := h.pages.Open(pageID(w, r))
	groups := service.GroupByDay(page.Snapshot().Messages, h.opts.Location, h.opts.DateLayout)
	if groups == nil {
		groups = []model.DayGroup{}
	}
	respondWithJSON(w, http.StatusOK, groups)
}

// StreamEvents godoc
// @Summary      Page updates
// @Description  Server-sent events: a "state" event with the page state now and after every change.
// @Tags         Chat
// @Produce      text/event-stream
// @Success      200  {object}  model.PageState
// @Router       /v1/chat/events [get]
func (h *ChatHandler) StreamEvents(w http.ResponseWriter, r *http.Request) {
	page := h.pages.Open(pageID(w, r))
	changes, unsubscribe := page.Subscribe()
	defer unsubscribe()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)

	if err := writeStreamEvent(w, "state", page.Snapshot()); err != nil {
		slog.Debug("Client disconnected from event stream", "error", err)
		return
	}
	for {
		select {
		case <-r.Context().Done():
			return
		case <-changes:
			if err := writeStreamEvent(w, "state", page.Snapshot()); err != nil {
				slog.Debug("Client disconnected from event stream", "error", err)
				return
			}
		}
	}
}
