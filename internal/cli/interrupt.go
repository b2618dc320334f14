package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"
)

// InterruptHandler cancels a long-running command on Ctrl+C and tells the
// user what state the request was left in.
type InterruptHandler struct {
	writer      io.Writer
	signals     chan os.Signal
	interrupted bool
	mu          sync.Mutex
}

// NewInterruptHandler creates a new interrupt handler.
func NewInterruptHandler(writer io.Writer) *InterruptHandler {
	if writer == nil {
		writer = os.Stdout
	}
	return &InterruptHandler{
		writer:  writer,
		signals: make(chan os.Signal, 1),
	}
}

// HandleInterrupts returns a context that is cancelled on SIGINT or SIGTERM.
// operation names what gets interrupted in the message. Call stop once the
// operation is over to release the signal handler.
func (h *InterruptHandler) HandleInterrupts(ctx context.Context, operation string) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(ctx)
	signal.Notify(h.signals, os.Interrupt, syscall.SIGTERM)

	go func() {
		defer signal.Stop(h.signals)
		select {
		case <-h.signals:
			h.mu.Lock()
			if !h.interrupted {
				h.interrupted = true
				h.showInterruptMessage(operation)
			}
			h.mu.Unlock()
			cancel()
		case <-ctx.Done():
		}
	}()

	return ctx, cancel
}

// showInterruptMessage displays a friendly interrupt message.
func (h *InterruptHandler) showInterruptMessage(operation string) {
	msg := "\n\n" + FormatWarning(operation+" interrupted!") +
		"\n" + FormatInfo("The service may still finish the request. Run 'forecast models' to check.") + "\n"

	if _, err := fmt.Fprint(h.writer, msg); err != nil {
		// Best effort, we're shutting down anyway.
		fmt.Fprintf(os.Stderr, "Failed to write interrupt message: %v\n", err)
	}
}

// WasInterrupted returns true if the process was interrupted.
func (h *InterruptHandler) WasInterrupted() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.interrupted
}
