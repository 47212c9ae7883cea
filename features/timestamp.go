package features

import (
	"fmt"
	"time"
)

// Accepted timestamp layouts, tried in order. All are interpreted as UTC so
// the same corpus row normalizes to the same epoch value on any machine.
var timestampLayouts = []string{
	"2006-01-02 15:04:05",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// ParseTimestamp normalizes a free-form timestamp string to epoch seconds.
func ParseTimestamp(value string) (epochSeconds int64, err error) {
	for _, layout := range timestampLayouts {
		var t time.Time
		if t, err = time.ParseInLocation(layout, value, time.UTC); err == nil {
			epochSeconds = t.Unix()
			return
		}
	}

	err = fmt.Errorf("unparseable timestamp: %q", value)
	return
}
