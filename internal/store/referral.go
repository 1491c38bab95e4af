package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/amiralikarma0098/noortoos/internal/analysis"
	"github.com/amiralikarma0098/noortoos/internal/files"
)

// ReferralRecord is one persisted referral spreadsheet analysis.
type ReferralRecord struct {
	ID             int64     `json:"id"`
	FileName       string    `json:"file_name"`
	FilePath       string    `json:"file_path"`
	FileSize       int64     `json:"file_size"`
	AnalyzedAt     time.Time `json:"analyzed_at"`
	Total          int       `json:"total_referrals"`
	Completed      int       `json:"completed_count"`
	Pending        int       `json:"pending_count"`
	InProgress     int       `json:"in_progress_count"`
	Seen           int       `json:"seen_count"`
	Accepted       int       `json:"accepted_count"`
	CompletionRate float64   `json:"completion_rate"`
	PendingRate    float64   `json:"pending_rate"`
	FullAnalysis   string    `json:"-"`
}

// SaveReferral stores one referral summary row.
func (s *Store) SaveReferral(ctx context.Context, info *files.Info, sum *analysis.ReferralSummary) (int64, error) {
	rawJSON, err := json.Marshal(sum.Raw)
	if err != nil {
		return 0, fmt.Errorf("encode referral blob: %w", err)
	}

	res, err := s.db.ExecContext(ctx, `
		INSERT INTO referral_analyses (
			file_name, file_path, file_size, analyzed_at,
			total_referrals, completed_count, pending_count,
			in_progress_count, seen_count, accepted_count,
			completion_rate, pending_rate, full_analysis
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		info.Name, info.Path, info.Size, time.Now(),
		sum.Total, sum.Completed, sum.Pending,
		sum.InProgress, sum.Seen, sum.Accepted,
		sum.CompletionRate, sum.PendingRate, string(rawJSON))
	if err != nil {
		return 0, fmt.Errorf("insert referral analysis: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("referral id: %w", err)
	}
	return id, nil
}

// ListReferrals returns referral history rows, newest first.
func (s *Store) ListReferrals(ctx context.Context) ([]ReferralRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, file_name, file_path, file_size, analyzed_at,
		       total_referrals, completed_count, pending_count,
		       in_progress_count, seen_count, accepted_count,
		       completion_rate, pending_rate
		FROM referral_analyses ORDER BY analyzed_at DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("list referral analyses: %w", err)
	}
	defer rows.Close()

	records := []ReferralRecord{}
	for rows.Next() {
		var r ReferralRecord
		if err := rows.Scan(&r.ID, &r.FileName, &r.FilePath, &r.FileSize,
			&r.AnalyzedAt, &r.Total, &r.Completed, &r.Pending,
			&r.InProgress, &r.Seen, &r.Accepted,
			&r.CompletionRate, &r.PendingRate); err != nil {
			return nil, fmt.Errorf("scan referral row: %w", err)
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

// GetReferral returns one record or (nil, nil) when absent.
func (s *Store) GetReferral(ctx context.Context, id int64) (*ReferralRecord, error) {
	var r ReferralRecord
	err := s.db.QueryRowContext(ctx, `
		SELECT id, file_name, file_path, file_size, analyzed_at,
		       total_referrals, completed_count, pending_count,
		       in_progress_count, seen_count, accepted_count,
		       completion_rate, pending_rate, full_analysis
		FROM referral_analyses WHERE id = ?`, id).Scan(
		&r.ID, &r.FileName, &r.FilePath, &r.FileSize, &r.AnalyzedAt,
		&r.Total, &r.Completed, &r.Pending,
		&r.InProgress, &r.Seen, &r.Accepted,
		&r.CompletionRate, &r.PendingRate, &r.FullAnalysis)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get referral %d: %w", id, err)
	}
	return &r, nil
}

// LatestReferral returns the most recent record or (nil, nil) when none exist.
func (s *Store) LatestReferral(ctx context.Context) (*ReferralRecord, error) {
	var id int64
	err := s.db.QueryRowContext(ctx,
		"SELECT id FROM referral_analyses ORDER BY analyzed_at DESC, id DESC LIMIT 1").Scan(&id)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("latest referral: %w", err)
	}
	return s.GetReferral(ctx, id)
}

// DeleteReferral removes the row and returns the stored file path.
func (s *Store) DeleteReferral(ctx context.Context, id int64) (string, error) {
	var path string
	err := s.db.QueryRowContext(ctx,
		"SELECT file_path FROM referral_analyses WHERE id = ?", id).Scan(&path)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("lookup referral %d: %w", id, err)
	}

	if _, err := s.db.ExecContext(ctx, "DELETE FROM referral_analyses WHERE id = ?", id); err != nil {
		return "", fmt.Errorf("delete referral %d: %w", id, err)
	}
	return path, nil
}
