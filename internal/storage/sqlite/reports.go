package sqlite

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/splitpay/splitpay/internal/models"
)

// CreateManualReport persists a saved manual-calculator run. Data is stored
// as opaque JSON text.
func (s *SQLiteStore) CreateManualReport(ctx context.Context, report *models.ManualReport) error {
	if report.ID == "" {
		report.ID = uuid.New().String()
	}
	if report.CreatedAt == 0 {
		report.CreatedAt = time.Now().Unix()
	}
	data := report.Data
	if len(data) == 0 {
		data = json.RawMessage("{}")
	}

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO manual_reports (id, user_id, name, data, created_at) VALUES (?, ?, ?, ?, ?)",
		report.ID, report.UserID, report.Name, string(data), report.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create manual report: %w", err)
	}
	return nil
}

// ListManualReports retrieves the user's saved reports, newest first.
func (s *SQLiteStore) ListManualReports(ctx context.Context, userID string) ([]models.ManualReport, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, user_id, name, data, created_at FROM manual_reports WHERE user_id = ? ORDER BY created_at DESC, id",
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("list manual reports: %w", err)
	}
	defer rows.Close()

	var reports []models.ManualReport
	for rows.Next() {
		var r models.ManualReport
		var data string
		if err := rows.Scan(&r.ID, &r.UserID, &r.Name, &data, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan manual report: %w", err)
		}
		r.Data = json.RawMessage(data)
		reports = append(reports, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate manual reports: %w", err)
	}
	return reports, nil
}
