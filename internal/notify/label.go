package notify

import (
	"fmt"
	"time"
)

// RelativeLabel renders the age of ts as seen at now, in the panel's wording.
// Entries older than a day fall back to a short date in loc (UTC when nil).
func RelativeLabel(now, ts time.Time, loc *time.Location) string {
	diff := now.Sub(ts)
	secs := int(diff / time.Second)
	mins := secs / 60
	hours := mins / 60

	switch {
	case secs < 60:
		return "Ahora"
	case mins < 60:
		return fmt.Sprintf("Hace %d min", mins)
	case hours < 24:
		return fmt.Sprintf("Hace %dh", hours)
	}
	if loc == nil {
		loc = time.UTC
	}
	// es-CL short date.
	return ts.In(loc).Format("02-01-2006")
}
