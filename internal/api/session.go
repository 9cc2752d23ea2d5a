package api

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/google/uuid"

	app_errors "triage-chat/internal/errors"
	"triage-chat/internal/model"
	"triage-chat/internal/service"
)

// pageCookie identifies the chat page a browser tab is looking at.
const pageCookie = "triage_page"

// multipartOverhead is allowed on top of the file size limit for part
// headers and boundaries.
const multipartOverhead = 1 << 20

var errUploadTooLarge = fmt.Errorf("%w: file exceeds the upload limit", app_errors.ErrValidation)

// pageID returns the page id from the cookie, issuing a new one when it is
// missing or malformed.
func pageID(w http.ResponseWriter, r *http.Request) string {
	if c, err := r.Cookie(pageCookie); err == nil {
		if _, err := uuid.Parse(c.Value); err == nil {
			return c.Value
		}
	}
	id := uuid.NewString()
	http.SetCookie(w, &http.Cookie{
		Name:     pageCookie,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return id
}

func clearPageID(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     pageCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// readUpload reads the "file" part of a multipart form into memory.
func readUpload(w http.ResponseWriter, r *http.Request, maxBytes int64) (*model.Upload, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes+multipartOverhead)
	if err := r.ParseMultipartForm(maxBytes); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, errUploadTooLarge
		}
		return nil, fmt.Errorf("%w: invalid multipart form: %s", app_errors.ErrValidation, err.Error())
	}

	file, header, err := r.FormFile("file")
	if errors.Is(err, http.ErrMissingFile) {
		return nil, service.ErrNoFile
	}
	if err != nil {
		return nil, fmt.Errorf("%w: could not read file part: %s", app_errors.ErrValidation, err.Error())
	}
	defer file.Close()

	if header.Size > maxBytes {
		return nil, errUploadTooLarge
	}
	data, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("could not read uploaded file: %w", err)
	}
	return &model.Upload{Name: header.Filename, Data: data}, nil
}
