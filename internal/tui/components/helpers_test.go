package components

import (
	"context"
	"io"
	"sync"

	"github.com/Veraticus/shawarma-forecast/internal/model"
)

type fakeReader struct {
	err   error
	resp  model.ForecastResponse
	mu    sync.Mutex
	calls int
}

func (f *fakeReader) GetTomorrow(_ context.Context) (model.ForecastResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	return f.resp, f.err
}

func (f *fakeReader) set(resp model.ForecastResponse, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.resp, f.err = resp, err
}

func (f *fakeReader) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

type fakeImporter struct {
	err      error
	panicky  bool
	result   model.ImportResult
	mu       sync.Mutex
	filename string
	body     string
	calls    int
}

func (f *fakeImporter) ImportCSV(_ context.Context, filename string, r io.Reader) (model.ImportResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.panicky {
		panic("importer exploded")
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return model.ImportResult{}, err
	}
	f.filename = filename
	f.body = string(data)
	return f.result, f.err
}

type fakeRecorder struct {
	records []model.UploadRecord
	mu      sync.Mutex
}

func (f *fakeRecorder) RecordUpload(_ context.Context, record model.UploadRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.records = append(f.records, record)
	return nil
}

func (f *fakeRecorder) Records() []model.UploadRecord {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]model.UploadRecord(nil), f.records...)
}

func floatPtr(v float64) *float64 {
	return &v
}
