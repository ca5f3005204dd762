package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/splitpay/splitpay/internal/models"
	"github.com/splitpay/splitpay/internal/storage"
)

// ReportService stores named manual calculations so users can reload them
// later. The payload is opaque JSON; the service only requires a name.
type ReportService struct {
	store storage.Store
}

// NewReportService creates a ReportService.
func NewReportService(store storage.Store) *ReportService {
	return &ReportService{store: store}
}

// Save persists a manual calculation under the caller's account.
func (s *ReportService) Save(ctx context.Context, userID, name string, data json.RawMessage) (*models.ManualReport, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: report name is required", ErrValidation)
	}
	if len(data) == 0 {
		data = json.RawMessage("{}")
	}

	report := &models.ManualReport{
		UserID: userID,
		Name:   name,
		Data:   data,
	}
	if err := s.store.CreateManualReport(ctx, report); err != nil {
		return nil, err
	}
	return report, nil
}

// List returns the caller's saved reports, newest first.
func (s *ReportService) List(ctx context.Context, userID string) ([]models.ManualReport, error) {
	return s.store.ListManualReports(ctx, userID)
}
