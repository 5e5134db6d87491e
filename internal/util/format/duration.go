package format

import (
	"fmt"
	"time"
)

// Duration renders an elapsed time as "2h 15m 30s", dropping leading
// zero components ("3m 5s", "42s").
func Duration(d time.Duration) string {
	secs := int(d.Seconds())
	mins, secs := secs/60, secs%60
	hours, mins := mins/60, mins%60

	switch {
	case hours > 0:
		return fmt.Sprintf("%dh %dm %ds", hours, mins, secs)
	case mins > 0:
		return fmt.Sprintf("%dm %ds", mins, secs)
	default:
		return fmt.Sprintf("%ds", secs)
	}
}
