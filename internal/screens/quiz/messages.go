package quiz

import (
	"time"

	"github.com/abhisek/mindscope/internal/arbiter"
)

// reportReadyMsg is sent when the arbiter has settled the report.
type reportReadyMsg struct {
	Verdict arbiter.Verdict
}

// spinnerTickMsg animates the analyzing indicator.
type spinnerTickMsg time.Time
