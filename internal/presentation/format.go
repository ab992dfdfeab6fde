// Package presentation turns dedications into display-ready values: relative
// age labels, escaped text, and a serializable board view model. Markup
// generation lives in html.go and only consumes the view model.
package presentation

import (
	"fmt"
	"html"
	"time"
)

// AbsoluteLayout renders timestamps older than a week, e.g. "Feb 14, 2026, 09:30 AM".
const AbsoluteLayout = "Jan 2, 2006, 03:04 PM"

// FormatRelativeAge labels ts relative to now. Anything under a minute,
// including timestamps in the future, is "just now"; a week or more falls
// back to an absolute date in loc (UTC when loc is nil).
func FormatRelativeAge(ts, now time.Time, loc *time.Location) string {
	diff := now.Sub(ts)

	switch {
	case diff < time.Minute:
		return "just now"
	case diff < time.Hour:
		return ago(int(diff/time.Minute), "minute")
	case diff < 24*time.Hour:
		return ago(int(diff/time.Hour), "hour")
	case diff < 7*24*time.Hour:
		return ago(int(diff/(24*time.Hour)), "day")
	}

	if loc == nil {
		loc = time.UTC
	}

	return ts.In(loc).Format(AbsoluteLayout)
}

func ago(n int, unit string) string {
	if n != 1 {
		unit += "s"
	}

	return fmt.Sprintf("%d %s ago", n, unit)
}

// EscapeForDisplay neutralizes the characters that are significant in markup:
// < > & ' and ".
func EscapeForDisplay(text string) string {
	return html.EscapeString(text)
}
