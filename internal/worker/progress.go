package worker

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"
)

const progressBarWidth = 24

// Progress tracks and displays render job progress.
type Progress struct {
	startTime time.Time
	output    io.Writer
	total     int
	completed int
	failed    int
	mu        sync.RWMutex
	enabled   bool
}

// NewProgress creates a new progress tracker.
func NewProgress(total int, enabled bool) *Progress {
	return &Progress{
		total:     total,
		startTime: time.Now(),
		output:    os.Stderr,
		enabled:   enabled,
	}
}

// Update records the completion of a job.
func (p *Progress) Update(completed, total, failed int) {
	p.mu.Lock()
	p.completed = completed
	p.total = total
	p.failed = failed
	p.mu.Unlock()

	if p.enabled {
		p.Print()
	}
}

// Callback returns a ProgressFunc suitable for use with Pool.Config.
func (p *Progress) Callback() ProgressFunc {
	return p.Update
}

// Print redraws the progress line.
func (p *Progress) Print() {
	p.mu.RLock()
	completed := p.completed
	total := p.total
	failed := p.failed
	startTime := p.startTime
	p.mu.RUnlock()

	elapsed := time.Since(startTime)
	frac := float64(completed) / float64(total)

	var rate float64
	var eta time.Duration
	if completed > 0 {
		rate = float64(completed) / elapsed.Seconds()
		if remaining := total - completed; remaining > 0 && rate > 0 {
			eta = time.Duration(float64(remaining)/rate) * time.Second
		}
	}

	var line strings.Builder
	fmt.Fprintf(&line, "\r%3.0f%% [%s] %d/%d renders", frac*100, bar(frac), completed, total)
	if failed > 0 {
		fmt.Fprintf(&line, " (%d failed)", failed)
	}
	fmt.Fprintf(&line, " %.1f renders/sec", rate)
	if completed < total {
		if eta > 0 {
			fmt.Fprintf(&line, ", eta %s", formatDuration(eta))
		}
	} else {
		fmt.Fprintf(&line, ", done in %s", formatDuration(elapsed))
	}

	// Pad to clear leftovers from the previous, possibly longer line.
	line.WriteString("          ")

	fmt.Fprint(p.output, line.String())
}

// bar renders an arrow-style progress bar for a fraction in [0,1].
func bar(frac float64) string {
	filled := int(frac * progressBarWidth)
	switch {
	case filled >= progressBarWidth:
		return strings.Repeat("=", progressBarWidth)
	case filled > 0:
		return strings.Repeat("=", filled-1) + ">" + strings.Repeat(" ", progressBarWidth-filled)
	default:
		return strings.Repeat(" ", progressBarWidth)
	}
}

// Done prints the final progress and a newline.
func (p *Progress) Done() {
	if p.enabled {
		p.Print()
		fmt.Fprintln(p.output)
	}
}

// Summary returns a one-line report of the completed work.
func (p *Progress) Summary() string {
	p.mu.RLock()
	completed := p.completed
	total := p.total
	failed := p.failed
	startTime := p.startTime
	p.mu.RUnlock()

	elapsed := time.Since(startTime)
	successful := completed - failed

	var rate float64
	if elapsed.Seconds() > 0 {
		rate = float64(completed) / elapsed.Seconds()
	}

	return fmt.Sprintf("Rendered %d/%d images in %s (%d failed, %.1f renders/sec)",
		successful, total, formatDuration(elapsed), failed, rate)
}

func formatDuration(d time.Duration) string {
	if d < time.Minute {
		return fmt.Sprintf("%.0fs", d.Seconds())
	}
	if d < time.Hour {
		mins := int(d.Minutes())
		secs := int(d.Seconds()) % 60
		return fmt.Sprintf("%dm%ds", mins, secs)
	}
	hours := int(d.Hours())
	mins := int(d.Minutes()) % 60
	return fmt.Sprintf("%dh%dm", hours, mins)
}
