// Package builder implements the opening-book build pipeline.
package builder

import (
	"fmt"
	"time"
)

// Version identifies this build of the tool; stamped into each manifest.
const Version = "0.1.0"

// Progress tracks build progress.
type Progress struct {
	Phase          string
	RecordsRead    int64
	RecordsWritten int64
	StartTime      time.Time
	Error          error
}

// ProgressFunc is called periodically with progress updates.
type ProgressFunc func(Progress)

// FormatBytes formats bytes as human-readable string.
func FormatBytes(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(bytes)/float64(div), "KMGTPE"[exp])
}

// FormatDuration formats duration as human-readable string.
func FormatDuration(d time.Duration) string {
	if d < time.Minute {
		return fmt.Sprintf("%.0fs", d.Seconds())
	}
	if d < time.Hour {
		return fmt.Sprintf("%dm %ds", int(d.Minutes()), int(d.Seconds())%60)
	}
	return fmt.Sprintf("%dh %dm", int(d.Hours()), int(d.Minutes())%60)
}

// DefaultProgressFunc prints progress to stdout.
func DefaultProgressFunc(p Progress) {
	switch p.Phase {
	case "replay":
		fmt.Printf("\r[Replay] %d records extracted", p.RecordsRead)
	case "done":
		elapsed := time.Since(p.StartTime)
		fmt.Printf("\n[Done] %d entries written (%s)\n",
			p.RecordsWritten, FormatDuration(elapsed))
	case "error":
		fmt.Printf("\n[Error] %v\n", p.Error)
	}
}
