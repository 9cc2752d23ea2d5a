package service

import (
	"context"
	"fmt"
	"log/slog"

	"triage-chat/internal/model"
	"triage-chat/internal/triage"
)

// EmailService sends single emails to the /analyze_email endpoint. It keeps
// no state; the standalone page shows one result at a time.
type EmailService struct {
	api triage.Analyzer
}

func NewEmailService(api triage.Analyzer) *EmailService {
	return &EmailService{api: api}
}

func (s *EmailService) Analyze(ctx context.Context, upload *model.Upload) (*model.EmailAnalysis, error) {
	if upload == nil || upload.Name == "" {
		return nil, ErrNoFile
	}
	analysis, err := s.api.AnalyzeEmail(ctx, upload)
	if err != nil {
		return nil, fmt.Errorf("could not analyze email %q: %w", upload.Name, err)
	}
	slog.Info("Analyzed email", "file", upload.Name, "category", analysis.Category)
	return analysis, nil
}
