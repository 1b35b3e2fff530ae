package harvest

import (
	"fmt"
	"time"
)

// FormatDuration renders a duration the way the run summary logs it:
// "2 min 13 sec 412 ms", dropping leading units that are zero.
func FormatDuration(d time.Duration) string {
	minutes := int64(d / time.Minute)
	seconds := int64(d/time.Second) % 60
	ms := int64(d/time.Millisecond) % 1000

	switch {
	case minutes > 0:
		return fmt.Sprintf("%d min %d sec %d ms", minutes, seconds, ms)
	case seconds > 0:
		return fmt.Sprintf("%d sec %d ms", seconds, ms)
	default:
		return fmt.Sprintf("%d ms", ms)
	}
}
