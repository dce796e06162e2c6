package utils

import "time"

// FormatShortDate renders t like "Jan 2, 2006" for gallery cards.
func FormatShortDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("Jan 2, 2006")
}

// FormatDisplayDate renders t like "Monday, January 2, 2006 at 03:04 PM".
func FormatDisplayDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("Monday, January 2, 2006 at 03:04 PM")
}
