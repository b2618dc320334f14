package components

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Veraticus/shawarma-forecast/internal/common"
	"github.com/Veraticus/shawarma-forecast/internal/forecastapi"
	"github.com/Veraticus/shawarma-forecast/internal/model"
	"github.com/Veraticus/shawarma-forecast/internal/service"
	"github.com/Veraticus/shawarma-forecast/internal/tui/themes"
	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Upload status texts.
const (
	UploadingMessage   = "Uploading and training..."
	GenericUploadError = "Upload failed"
)

// UploadKeyMap holds the bindings the upload panel reacts to.
type UploadKeyMap struct {
	Pick   key.Binding
	Upload key.Binding
	Cancel key.Binding
}

// DefaultUploadKeyMap returns the default upload bindings.
func DefaultUploadKeyMap() UploadKeyMap {
	return UploadKeyMap{
		Pick: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "choose CSV"),
		),
		Upload: key.NewBinding(
			key.WithKeys("u", "enter"),
			key.WithHelp("u/Enter", "upload"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("Esc", "close picker"),
		),
	}
}

// UploadModel lets the user pick a sales CSV and send it to the service.
//
// It moves Idle -> Uploading -> Done. On success it invokes the callback it
// was built with; it knows nothing about the panels that react to it.
type UploadModel struct {
	ctx          context.Context
	importer     service.SalesImporter
	recorder     service.UploadRecorder
	onSuccess    tea.Cmd
	theme        themes.Theme
	keys         UploadKeyMap
	selectedFile string
	message      string
	picker       filepicker.Model
	latest       uint64
	picking      bool
	uploading    bool
	disposed     bool
}

// NewUploadModel creates the upload panel. onSuccess runs after every
// successful upload; recorder may be nil.
func NewUploadModel(ctx context.Context, importer service.SalesImporter, recorder service.UploadRecorder, onSuccess tea.Cmd, theme themes.Theme) UploadModel {
	fp := filepicker.New()
	fp.AllowedTypes = []string{".csv"}
	if wd, err := os.Getwd(); err == nil {
		fp.CurrentDirectory = wd
	}

	return UploadModel{
		ctx:       ctx,
		importer:  importer,
		recorder:  recorder,
		onSuccess: onSuccess,
		theme:     theme,
		keys:      DefaultUploadKeyMap(),
		picker:    fp,
	}
}

// Init implements tea.Model. Nothing is fetched on mount.
func (m UploadModel) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m UploadModel) Update(msg tea.Msg) (UploadModel, tea.Cmd) {
	if m.disposed {
		return m, nil
	}

	if done, ok := msg.(uploadFinishedMsg); ok {
		if done.token != m.latest {
			slog.Debug("Dropping stale upload result", "token", done.token, "latest", m.latest)
			return m, nil
		}
		return m.finishUpload(done)
	}

	if size, ok := msg.(tea.WindowSizeMsg); ok {
		var cmd tea.Cmd
		m.picker, cmd = m.picker.Update(size)
		return m, cmd
	}

	if m.picking {
		return m.updatePicker(msg)
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(keyMsg, m.keys.Pick):
			m.picking = true
			return m, m.picker.Init()
		case key.Matches(keyMsg, m.keys.Upload):
			return m.Upload()
		}
	}

	return m, nil
}

func (m UploadModel) updatePicker(msg tea.Msg) (UploadModel, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && key.Matches(keyMsg, m.keys.Cancel) {
		m.picking = false
		return m, nil
	}

	var cmd tea.Cmd
	m.picker, cmd = m.picker.Update(msg)

	if ok, path := m.picker.DidSelectFile(msg); ok {
		m = m.SelectFile(path)
		m.picking = false
	}

	return m, cmd
}

// SelectFile overwrites the selected file. The last result message stays
// until the next upload writes its own.
func (m UploadModel) SelectFile(path string) UploadModel {
	m.selectedFile = path
	return m
}

// Upload starts an upload of the selected file. It is a no-op when no file
// is selected or an upload is already running.
func (m UploadModel) Upload() (UploadModel, tea.Cmd) {
	if m.disposed || m.selectedFile == "" || m.uploading {
		return m, nil
	}

	m.uploading = true
	m.message = UploadingMessage
	m.latest++

	return m, m.upload(m.latest, m.selectedFile)
}

func (m UploadModel) upload(token uint64, path string) tea.Cmd {
	ctx, importer, recorder := m.ctx, m.importer, m.recorder

	return func() (msg tea.Msg) {
		started := time.Now()
		done := uploadFinishedMsg{token: token, path: path}

		defer func() {
			if r := recover(); r != nil {
				done.err = fmt.Errorf("%w: %v", common.ErrUploadFailed, r)
			}
			RecordUpload(ctx, recorder, path, started, done.result, done.err)
			msg = done
		}()

		f, err := os.Open(path) //nolint:gosec // the user picked this file
		if err != nil {
			done.err = fmt.Errorf("failed to open %s: %w", path, err)
			return done
		}
		defer func() { _ = f.Close() }()

		done.result, done.err = importer.ImportCSV(ctx, filepath.Base(path), f)
		return done
	}
}

// finishUpload applies an upload outcome. uploading is cleared on every
// path; a panic while applying the outcome is reported as a generic failure.
func (m UploadModel) finishUpload(done uploadFinishedMsg) (out UploadModel, cmd tea.Cmd) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("Applying upload result panicked", "panic", r, "file", done.path)
			out, cmd = m, nil
			out.message = "Error: " + GenericUploadError
		}
		out.uploading = false
	}()

	if done.err != nil {
		slog.Error("Upload failed", "error", done.err, "file", done.path, "request_id", done.result.RequestID)
		m.message = "Error: " + UploadErrorDetail(done.err)
		return m, nil
	}

	m.message = "Success: " + done.result.Message
	m.selectedFile = ""
	return m, m.onSuccess
}

// UploadErrorDetail returns the server-reported detail for err, or the
// generic failure text when the server did not send one.
func UploadErrorDetail(err error) string {
	if detail, ok := forecastapi.DetailOf(err); ok {
		return detail
	}
	return GenericUploadError
}

// RecordUpload journals one finished attempt. A nil recorder disables it;
// journal failures are logged and otherwise ignored.
func RecordUpload(ctx context.Context, recorder service.UploadRecorder, path string, started time.Time, result model.ImportResult, uploadErr error) {
	if recorder == nil {
		return
	}

	record := model.UploadRecord{
		RequestID:  result.RequestID,
		Filename:   filepath.Base(path),
		StartedAt:  started,
		FinishedAt: time.Now(),
		Succeeded:  uploadErr == nil,
		Message:    result.Message,
		Inserted:   result.Inserted,
	}
	if uploadErr != nil {
		record.Message = UploadErrorDetail(uploadErr)
	}

	if err := recorder.RecordUpload(context.WithoutCancel(ctx), record); err != nil {
		slog.Warn("Failed to record upload", "error", err, "file", record.Filename)
	}
}

// Dispose stops the panel from applying any further results.
func (m UploadModel) Dispose() UploadModel {
	m.disposed = true
	return m
}

// SelectedFile returns the chosen path, or "" when none is selected.
func (m UploadModel) SelectedFile() string {
	return m.selectedFile
}

// Uploading reports whether a request is in flight.
func (m UploadModel) Uploading() bool {
	return m.uploading
}

// Message returns the last status text.
func (m UploadModel) Message() string {
	return m.message
}

// Picking reports whether the file picker has focus.
func (m UploadModel) Picking() bool {
	return m.picking
}

// Keys returns the panel's bindings for help rendering.
func (m UploadModel) Keys() UploadKeyMap {
	return m.keys
}

// CanUpload reports whether the upload button is enabled.
func (m UploadModel) CanUpload() bool {
	return m.selectedFile != "" && !m.uploading
}

// View renders the panel.
func (m UploadModel) View() string {
	if m.picking {
		return lipgloss.JoinVertical(
			lipgloss.Left,
			m.theme.Subtitle.Render("Pick a sales CSV (Esc to close)"),
			m.picker.View(),
		)
	}

	file := m.theme.StatusPending.Render("No file selected")
	if m.selectedFile != "" {
		file = m.theme.Normal.Render(filepath.Base(m.selectedFile))
	}

	label := "Upload CSV"
	if m.uploading {
		label = "Processing..."
	}
	button := m.theme.ButtonOff.Render(label)
	if m.CanUpload() {
		button = m.theme.Button.Render(label)
	}

	lines := []string{
		m.theme.Bold.Render("File:") + " " + file,
		"",
		button,
	}
	if m.message != "" {
		lines = append(lines, "", m.messageStyle().Render(m.message))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (m UploadModel) messageStyle() lipgloss.Style {
	switch {
	case m.uploading:
		return m.theme.StatusInfo
	case strings.HasPrefix(m.message, "Error:"):
		return m.theme.StatusError
	default:
		return m.theme.StatusSuccess
	}
}
