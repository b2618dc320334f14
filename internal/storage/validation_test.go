package storage

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Veraticus/shawarma-forecast/internal/model"
)

func TestValidateContext(t *testing.T) {
	tests := []struct {
		ctx     context.Context
		name    string
		wantErr bool
	}{
		{
			name:    "valid context",
			ctx:     context.Background(),
			wantErr: false,
		},
		{
			name:    "nil context",
			ctx:     nil,
			wantErr: true,
		},
		{
			name: "canceled context still valid",
			ctx: func() context.Context {
				ctx, cancel := context.WithCancel(context.Background())
				cancel()
				return ctx
			}(),
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateContext(tt.ctx)
			if (err != nil) != tt.wantErr {
				t.Errorf("validateContext() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateString(t *testing.T) {
	if err := validateString("journal.db", "dbPath"); err != nil {
		t.Errorf("validateString() unexpected error = %v", err)
	}
	if err := validateString("   ", "dbPath"); !errors.Is(err, ErrEmptyString) {
		t.Errorf("validateString() error = %v, want %v", err, ErrEmptyString)
	}
}

func TestValidateUploadRecord(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name    string
		record  model.UploadRecord
		wantErr bool
	}{
		{
			name: "valid record",
			record: model.UploadRecord{
				Filename:   "sales.csv",
				StartedAt:  now,
				FinishedAt: now.Add(time.Second),
			},
		},
		{
			name: "missing filename",
			record: model.UploadRecord{
				StartedAt:  now,
				FinishedAt: now,
			},
			wantErr: true,
		},
		{
			name: "missing times",
			record: model.UploadRecord{
				Filename: "sales.csv",
			},
			wantErr: true,
		},
		{
			name: "finished before start",
			record: model.UploadRecord{
				Filename:   "sales.csv",
				StartedAt:  now,
				FinishedAt: now.Add(-time.Minute),
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateUploadRecord(tt.record)
			if (err != nil) != tt.wantErr {
				t.Errorf("validateUploadRecord() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidRecord) {
				t.Errorf("validateUploadRecord() error = %v, want %v", err, ErrInvalidRecord)
			}
		})
	}
}
