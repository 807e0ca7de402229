package subtitle

import (
	"time"
)

// Cue is one subtitle entry: a 1-based sequence number, a time
// interval, and display text.
type Cue struct {
	Sequence int
	Start    time.Duration
	End      time.Duration
	Text     string
}
