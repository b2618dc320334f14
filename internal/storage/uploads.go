package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Veraticus/shawarma-forecast/internal/model"
	"github.com/google/uuid"
)

// DefaultListLimit caps ListUploads when the caller passes 0.
const DefaultListLimit = 20

// RecordUpload appends one finished upload attempt to the journal. A record
// without an ID gets a fresh one.
func (s *SQLiteStorage) RecordUpload(ctx context.Context, record model.UploadRecord) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateUploadRecord(record); err != nil {
		return err
	}

	if record.ID == "" {
		record.ID = uuid.NewString()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO uploads (id, request_id, filename, started_at, finished_at, succeeded, message, inserted)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		record.ID,
		record.RequestID,
		record.Filename,
		record.StartedAt.UTC(),
		record.FinishedAt.UTC(),
		record.Succeeded,
		record.Message,
		record.Inserted,
	)
	if err != nil {
		return fmt.Errorf("failed to record upload: %w", err)
	}
	return nil
}

// ListUploads returns the most recent attempts, newest first.
func (s *SQLiteStorage) ListUploads(ctx context.Context, limit int) ([]model.UploadRecord, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if limit < 0 {
		return nil, ErrInvalidLimit
	}
	if limit == 0 {
		limit = DefaultListLimit
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, request_id, filename, started_at, finished_at, succeeded, message, inserted
		FROM uploads
		ORDER BY finished_at DESC, rowid DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query uploads: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var records []model.UploadRecord
	for rows.Next() {
		var (
			r         model.UploadRecord
			requestID sql.NullString
			message   sql.NullString
		)
		if err := rows.Scan(&r.ID, &requestID, &r.Filename, &r.StartedAt, &r.FinishedAt, &r.Succeeded, &message, &r.Inserted); err != nil {
			return nil, fmt.Errorf("failed to scan upload: %w", err)
		}
		r.RequestID = requestID.String
		r.Message = message.String
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate uploads: %w", err)
	}

	return records, nil
}
