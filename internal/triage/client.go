package triage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"path/filepath"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"

	app_errors "triage-chat/internal/errors"
	"triage-chat/internal/model"
)

const maxErrorBody = 64 << 10

// Analyzer is the remote triage API as seen by the chat page.
type Analyzer interface {
	History(ctx context.Context) ([]Record, error)
	Analyze(ctx context.Context, text string) (*Record, error)
	AnalyzeFile(ctx context.Context, upload *model.Upload) (*Record, error)
	AnalyzeEmail(ctx context.Context, upload *model.Upload) (*model.EmailAnalysis, error)
	Ping(ctx context.Context) error
}

// Client talks to the triage API over HTTP.
type Client struct {
	client *http.Client
	url    string
}

// NewClient creates a client for baseURL. A zero timeout means requests only
// end when their context does.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		client: &http.Client{Timeout: timeout},
		url:    strings.TrimRight(baseURL, "/"),
	}
}

// History returns the stored records, newest first, as the server sends them.
func (c *Client) History(ctx context.Context) ([]Record, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url+"/history", nil)
	if err != nil {
		return nil, fmt.Errorf("could not create history request: %w", err)
	}
	var records []Record
	if err := c.do(req, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// Analyze sends free text for classification.
func (c *Client) Analyze(ctx context.Context, text string) (*Record, error) {
	body, err := json.Marshal(analyzeRequest{Text: text})
	if err != nil {
		return nil, fmt.Errorf("could not marshal analyze request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url+"/analyze", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("could not create analyze request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	var record Record
	if err := c.do(req, &record); err != nil {
		return nil, err
	}
	return &record, nil
}

// AnalyzeFile uploads a document; the server extracts its text and analyses it.
func (c *Client) AnalyzeFile(ctx context.Context, upload *model.Upload) (*Record, error) {
	req, err := c.newUploadRequest(ctx, "/analyze_file", upload)
	if err != nil {
		return nil, err
	}
	var record Record
	if err := c.do(req, &record); err != nil {
		return nil, err
	}
	return &record, nil
}

// AnalyzeEmail uploads an email for the standalone email page.
func (c *Client) AnalyzeEmail(ctx context.Context, upload *model.Upload) (*model.EmailAnalysis, error) {
	req, err := c.newUploadRequest(ctx, "/analyze_email", upload)
	if err != nil {
		return nil, err
	}
	var analysis model.EmailAnalysis
	if err := c.do(req, &analysis); err != nil {
		return nil, err
	}
	return &analysis, nil
}

// Ping checks that something answers at the base URL. Any HTTP status counts.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url+"/docs", nil)
	if err != nil {
		return fmt.Errorf("could not create ping request: %w", err)
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", app_errors.ErrUpstream, err)
	}
	drainAndClose(resp.Body)
	return nil
}

func (c *Client) newUploadRequest(ctx context.Context, path string, upload *model.Upload) (*http.Request, error) {
	if upload == nil {
		return nil, fmt.Errorf("%w: no file to upload", app_errors.ErrValidation)
	}

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename="%s"`, quoteEscaper.Replace(upload.Name)))
	header.Set("Content-Type", DetectContentType(upload.Name, upload.Data))

	part, err := writer.CreatePart(header)
	if err != nil {
		return nil, fmt.Errorf("could not create multipart part: %w", err)
	}
	if _, err := part.Write(upload.Data); err != nil {
		return nil, fmt.Errorf("could not write multipart part: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("could not close multipart writer: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url+path, &body)
	if err != nil {
		return nil, fmt.Errorf("could not create upload request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req, nil
}

func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s %s: %w", app_errors.ErrUpstream, req.Method, req.URL.Path, err)
	}
	defer drainAndClose(resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		bodyBytes, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return newAPIError(resp.StatusCode, bodyBytes)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: could not decode %s response: %w", app_errors.ErrUpstream, req.URL.Path, err)
	}
	return nil
}

// DetectContentType sniffs data and falls back to the file extension. Only the
// media type is returned; the backend compares it verbatim.
func DetectContentType(name string, data []byte) string {
	detected := mimetype.Detect(data)
	mediaType, _, err := mime.ParseMediaType(detected.String())
	if err != nil {
		mediaType = "application/octet-stream"
	}
	if mediaType == "application/octet-stream" {
		if byExt := mime.TypeByExtension(strings.ToLower(filepath.Ext(name))); byExt != "" {
			if mt, _, err := mime.ParseMediaType(byExt); err == nil {
				return mt
			}
		}
	}
	return mediaType
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func drainAndClose(body io.ReadCloser) {
	_, _ = io.Copy(io.Discard, io.LimitReader(body, maxErrorBody))
	if err := body.Close(); err != nil {
		slog.Warn("Failed to close triage response body", "error", err)
	}
}
