package cooldown

import "fmt"

// FormatRemaining renders milliseconds as "Dd Hh Mm Ss", dropping leading zero units.
// Non-positive input renders as "0s".
func FormatRemaining(millis int64) string {
	if millis <= 0 {
		return "0s"
	}

	seconds := millis / 1000
	minutes := seconds / 60
	hours := minutes / 60
	days := hours / 24

	switch {
	case days > 0:
		return fmt.Sprintf("%dd %dh %dm %ds", days, hours%24, minutes%60, seconds%60)
	case hours > 0:
		return fmt.Sprintf("%dh %dm %ds", hours, minutes%60, seconds%60)
	case minutes > 0:
		return fmt.Sprintf("%dm %ds", minutes, seconds%60)
	default:
		return fmt.Sprintf("%ds", seconds)
	}
}
