package cli

import (
	"fmt"
	"io"
	"os"
	"time"
)

// spinner shows a simple spinning animation on stderr while waiting
type spinner struct {
	writer  io.Writer
	message string
	stop    chan struct{}
	done    chan struct{}
}

func newSpinner(message string) *spinner {
	return &spinner{
		writer:  os.Stderr,
		message: message,
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
	}
}

// Start begins the animation in a goroutine
func (s *spinner) Start() {
	go func() {
		defer close(s.done)
		frames := []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}
		start := time.Now()
		ticker := time.NewTicker(80 * time.Millisecond)
		defer ticker.Stop()

		for i := 0; ; i = (i + 1) % len(frames) {
			fmt.Fprintf(s.writer, "\r%s %s (%ds)", frames[i], s.message, int(time.Since(start).Seconds()))
			select {
			case <-s.stop:
				// Clear the line
				fmt.Fprintf(s.writer, "\r\033[K")
				return
			case <-ticker.C:
			}
		}
	}()
}

// Stop ends the animation and clears the line
func (s *spinner) Stop() {
	close(s.stop)
	<-s.done
}
