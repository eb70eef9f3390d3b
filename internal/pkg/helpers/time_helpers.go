package helpers

import (
	"time"

	"github.com/rs/zerolog/log"
)

// DateLayout is the ISO date format stored for checkout and verification dates.
const DateLayout = "2006-01-02"

// ParseDuration parses a duration string, returns default duration on error.
func ParseDuration(durationStr string, defaultDuration time.Duration) time.Duration {
	duration, err := time.ParseDuration(durationStr)
	if err != nil {
		log.Warn().Err(err).Str("durationStr", durationStr).Dur("defaultDuration", defaultDuration).Msg("Failed to parse duration string, using default")
		return defaultDuration
	}
	return duration
}

// FormatDate renders t as an ISO date in its own location.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}
