package cli

import (
	"bytes"
	"context"
	"strings"
	"sync"
	"testing"
	"time"
)

// syncBuffer is a bytes.Buffer safe for the spinner goroutine.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestSpinnerDraws(t *testing.T) {
	var w syncBuffer
	s := newSpinnerWithContext(context.Background(), &w, "Testing...")
	s.Start()
	time.Sleep(200 * time.Millisecond)
	s.Stop()

	if !strings.Contains(w.String(), "Testing...") {
		t.Errorf("spinner output should contain the message, got %q", w.String())
	}
}

func TestSpinnerSetMessage(t *testing.T) {
	var w syncBuffer
	s := newSpinnerWithContext(context.Background(), &w, "Rendering TOP_COPPER[invert,mirror]...")
	s.Start()
	time.Sleep(120 * time.Millisecond)
	s.SetMessage("Placing x...")
	if got := s.Message(); got != "Placing x..." {
		t.Errorf("Message() = %q", got)
	}
	time.Sleep(120 * time.Millisecond)
	s.Stop()

	if !strings.Contains(w.String(), "Placing x...") {
		t.Errorf("spinner should draw the new message, got %q", w.String())
	}
}

func TestSpinnerWithContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	s := newSpinnerWithContext(ctx, &syncBuffer{}, "Testing with context...")
	s.Start()
	cancel()

	// Give goroutine time to notice cancellation
	time.Sleep(100 * time.Millisecond)

	if !s.Cancelled() {
		t.Error("Spinner should be cancelled after context cancellation")
	}
	s.Stop()
}

func TestSpinnerStopIsIdempotent(t *testing.T) {
	s := newSpinnerWithContext(context.Background(), &syncBuffer{}, "Testing idempotent stop...")
	s.Start()

	s.Stop()
	s.Stop()
	s.Stop()
}

func TestSpinnerWriterClearsLine(t *testing.T) {
	var w syncBuffer
	s := newSpinnerWithContext(context.Background(), &w, "Rendering...")
	s.Start()
	time.Sleep(120 * time.Millisecond)

	if _, err := s.Writer().Write([]byte("wrote template\n")); err != nil {
		t.Fatalf("Write() error: %v", err)
	}
	s.Stop()

	out := w.String()
	i := strings.Index(out, "wrote template\n")
	if i < 0 {
		t.Fatalf("output should contain the written line, got %q", out)
	}
	// The spinner frame drawn before the write is blanked out on the
	// same line and the text starts at column zero.
	if before := out[:i]; !strings.HasSuffix(before, strings.Repeat(" ", len("Rendering...")+4)+"\r") {
		t.Errorf("written text should follow a cleared line, got %q", before)
	}
}
