package host

import (
	"bytes"
	"context"
	"sync"
	"testing"
	"time"
)

func TestNoiseSourceRender(t *testing.T) {
	src := NewNoiseSource(16, 8, 30, 1)
	f := src.Render(3)
	if f.Width != 16 || f.Height != 8 {
		t.Errorf("Expected 16x8 frame, got %dx%d", f.Width, f.Height)
	}
	if len(f.Pix) != 16*8*4 {
		t.Fatalf("Expected %d bytes, got %d", 16*8*4, len(f.Pix))
	}
	if f.Sequence != 3 {
		t.Errorf("Expected sequence 3, got %d", f.Sequence)
	}
	for i := 3; i < len(f.Pix); i += 4 {
		if f.Pix[i] != 0xff {
			t.Fatalf("Expected opaque alpha at %d, got %d", i, f.Pix[i])
		}
	}
}

func TestNoiseSourceDeterministic(t *testing.T) {
	a := NewNoiseSource(8, 8, 30, 42).Render(5)
	b := NewNoiseSource(8, 8, 30, 42).Render(5)
	if !bytes.Equal(a.Pix, b.Pix) {
		t.Error("Expected identical frames for the same seed and sequence")
	}
}

func TestChannelClamps(t *testing.T) {
	if channel(-5) != 0 {
		t.Errorf("Expected 0, got %d", channel(-5))
	}
	if channel(5) != 255 {
		t.Errorf("Expected 255, got %d", channel(5))
	}
	if got := channel(0); got != 127 {
		t.Errorf("Expected 127, got %d", got)
	}
}

type countingListener struct {
	mu     sync.Mutex
	frames []uint64
}

func (l *countingListener) OnFrameAvailable(f Frame) {
	l.mu.Lock()
	l.frames = append(l.frames, f.Sequence)
	l.mu.Unlock()
}

func (l *countingListener) count() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.frames)
}

func TestNoiseSourceRun(t *testing.T) {
	src := NewNoiseSource(4, 4, 200, 1)
	l := &countingListener{}
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- src.Run(ctx, l) }()

	deadline := time.Now().Add(2 * time.Second)
	for l.count() < 3 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	cancel()

	select {
	case err := <-done:
		if err != context.Canceled {
			t.Errorf("Expected context.Canceled, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not stop after cancel")
	}

	if l.count() < 3 {
		t.Fatalf("Expected at least 3 frames, got %d", l.count())
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	for i, seq := range l.frames {
		if seq != uint64(i) {
			t.Errorf("Expected sequence %d, got %d", i, seq)
		}
	}
}
