// Package laptime converts between human lap-time strings and integer
// millisecond durations.
package laptime

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/yourusername/trackday/internal/models"
)

// Lap times are written as "m:ss.cc" with an optional minutes part.
// Seconds must stay below 60; centiseconds are always two digits.
var lapTimePattern = regexp.MustCompile(`^(?:(\d+):)?(\d{1,2})\.(\d{2})$`)

// Parse converts a lap-time string to milliseconds. Accepted forms are
// "m:ss.cc", "mm:ss.cc" and a bare "s.cc".
func Parse(text string) (models.Milliseconds, error) {
	m := lapTimePattern.FindStringSubmatch(text)
	if m == nil {
		return 0, fmt.Errorf("%w: %q", models.ErrLapTimeFormat, text)
	}

	minutes := int64(0)
	if m[1] != "" {
		v, err := strconv.ParseInt(m[1], 10, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %q", models.ErrLapTimeFormat, text)
		}
		minutes = v
	}

	seconds, err := strconv.ParseInt(m[2], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", models.ErrLapTimeFormat, text)
	}
	if seconds >= 60 {
		return 0, fmt.Errorf("%w: seconds out of range in %q", models.ErrLapTimeFormat, text)
	}

	centis, err := strconv.ParseInt(m[3], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", models.ErrLapTimeFormat, text)
	}

	return minutes*60000 + seconds*1000 + centis*10, nil
}

// Format converts milliseconds to the "m:ss.cc" form with unpadded
// minutes. Sub-centisecond precision is truncated. Negative input is
// rejected rather than wrapped.
func Format(ms models.Milliseconds) (string, error) {
	if ms < 0 {
		return "", fmt.Errorf("%w: negative duration %d", models.ErrInvalidInput, ms)
	}

	minutes := ms / 60000
	seconds := (ms % 60000) / 1000
	centis := (ms % 1000) / 10

	return fmt.Sprintf("%d:%02d.%02d", minutes, seconds, centis), nil
}
