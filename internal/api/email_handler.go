package api

import (
	"bytes"
	"errors"
	"log/slog"
	"net/http"

	app_errors "triage-chat/internal/errors"
	"triage-chat/internal/interfaces"
	"triage-chat/internal/service"
	"triage-chat/internal/triage"
	"triage-chat/internal/view"
)

// EmailHandler serves the standalone email analysis page.
type EmailHandler struct {
	service        interfaces.EmailService
	renderer       *view.Renderer
	maxUploadBytes int64
}

func NewEmailHandler(svc interfaces.EmailService, renderer *view.Renderer, maxUploadBytes int64) *EmailHandler {
	return &EmailHandler{service: svc, renderer: renderer, maxUploadBytes: maxUploadBytes}
}

// ShowEmail renders the empty form.
func (h *EmailHandler) ShowEmail(w http.ResponseWriter, r *http.Request) {
	h.render(w, http.StatusOK, view.EmailPageData{})
}

// SubmitEmail analyzes the uploaded file and renders the result on the same
// page.
func (h *EmailHandler) SubmitEmail(w http.ResponseWriter, r *http.Request) {
	upload, err := readUpload(w, r, h.maxUploadBytes)
	if err != nil {
		h.render(w, http.StatusBadRequest, view.EmailPageData{Error: emailErrorText(err)})
		return
	}
	data := view.EmailPageData{FileName: upload.Name}
	result, err := h.service.Analyze(r.Context(), upload)
	if err != nil {
		slog.Warn("Email analysis failed", "file", upload.Name, "error", err)
		data.Error = emailErrorText(err)
		h.render(w, http.StatusOK, data)
		return
	}
	data.Result = result
	h.render(w, http.StatusOK, data)
}

// AnalyzeEmail godoc
// @Summary      Analyze an email
// @Description  Uploads an email file and returns its category, a summary and a reply draft.
// @Tags         Email
// @Accept       mpfd
// @Produce      json
// @Param        file  formData  file  true  "Email file"
// @Success      200   {object}  model.EmailAnalysis
// @Failure      400   {object}  ErrorResponse
// @Failure      502   {object}  ErrorResponse
// @Router       /v1/email [post]
func (h *EmailHandler) AnalyzeEmail(w http.ResponseWriter, r *http.Request) {
	upload, err := readUpload(w, r, h.maxUploadBytes)
	if err != nil {
		respondWithError(w, err)
		return
	}
	result, err := h.service.Analyze(r.Context(), upload)
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, result)
}

func (h *EmailHandler) render(w http.ResponseWriter, code int, data view.EmailPageData) {
	var buf bytes.Buffer
	if err := h.renderer.EmailPage(&buf, data); err != nil {
		slog.Error("Failed to render email page", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(code)
	_, _ = buf.WriteTo(w)
}

func emailErrorText(err error) string {
	switch {
	case errors.Is(err, service.ErrNoFile):
		return "Choose a file first."
	case errors.Is(err, errUploadTooLarge):
		return "The file is too large."
	case errors.Is(err, app_errors.ErrUpstream):
		if detail, ok := triage.DetailOf(err); ok {
			return detail
		}
		return err.Error()
	case errors.Is(err, app_errors.ErrValidation):
		return "The form could not be read."
	default:
		return "Could not analyze the email."
	}
}
