package cli

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/matzehuels/plotgrid/pkg/observability"
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// spinner shows a progress line while a figure is sized. It implements
// observability.SizingHooks so allocation attempts and rescales update the
// message as they happen.
type spinner struct {
	observability.NoopSizingHooks

	w       io.Writer
	mu      sync.Mutex
	message string
	width   int // widest line written, for clearing
	leaves  int

	stop    chan struct{}
	stopped chan struct{}
	once    sync.Once
}

func newSpinner(w io.Writer, message string) *spinner {
	return &spinner{
		w:       w,
		message: message,
		stop:    make(chan struct{}),
		stopped: make(chan struct{}),
	}
}

// Start animates the spinner until Stop is called or ctx is done.
func (s *spinner) Start(ctx context.Context) {
	go func() {
		defer close(s.stopped)
		ticker := time.NewTicker(80 * time.Millisecond)
		defer ticker.Stop()

		for i := 0; ; i++ {
			select {
			case <-ctx.Done():
				return
			case <-s.stop:
				return
			case <-ticker.C:
				s.draw(spinnerFrames[i%len(spinnerFrames)])
			}
		}
	}()
}

func (s *spinner) draw(frame string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	line := s.message
	if s.leaves > 0 {
		line = fmt.Sprintf("%s (%d leaves)", line, s.leaves)
	}
	s.width = max(s.width, len(line)+2)
	fmt.Fprintf(s.w, "\r%s %s", styleIconSpinner.Render(frame), StyleDim.Render(line))
}

func (s *spinner) setMessage(format string, args ...any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.message = fmt.Sprintf(format, args...)
	s.leaves = 0
}

// Stop ends the animation and clears the line. It is safe to call more
// than once.
func (s *spinner) Stop() {
	s.once.Do(func() { close(s.stop) })
	<-s.stopped
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.width > 0 {
		fmt.Fprintf(s.w, "\r%s\r", strings.Repeat(" ", s.width+2))
	}
}

func (s *spinner) OnAttemptStart(_ context.Context, attempt int, width, height float64) {
	s.setMessage("Sizing figure at %.2fx%.2fin (attempt %d)", width, height, attempt)
}

func (s *spinner) OnRescale(_ context.Context, _ int, factor float64) {
	s.setMessage("Rescaling figure by %.3g", factor)
}

func (s *spinner) OnLeafCorrected(context.Context, string, int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.leaves++
}
