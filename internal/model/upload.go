package model

import "time"

// ImportResult is the success body of POST /sales/import-csv.
type ImportResult struct {
	Message   string `json:"message"`
	RequestID string `json:"-"`
	Inserted  int    `json:"inserted"`
}

// ModelVersion describes one trained model in the service's registry.
type ModelVersion struct {
	Version   string  `json:"version"`
	Path      string  `json:"path"`
	TrainedAt string  `json:"trained_at"`
	MAE       float64 `json:"mae"`
	ID        int     `json:"id"`
	IsActive  bool    `json:"is_active"`
}

// UploadRecord is one finished upload attempt kept in the local journal.
type UploadRecord struct {
	StartedAt  time.Time
	FinishedAt time.Time
	ID         string
	RequestID  string
	Filename   string
	Message    string
	Inserted   int
	Succeeded  bool
}

// Duration returns how long the attempt took.
func (r UploadRecord) Duration() time.Duration {
	return r.FinishedAt.Sub(r.StartedAt)
}
