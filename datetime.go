package iobject

import (
	"errors"
	"time"
)

// parseDateTimeLiteral parses the body of a dt'...'/d'...'/t'...' literal
// per §4.1's accepted ISO-8601 subsets. Partial forms are zero-filled:
// year only -> Jan 1 00:00 UTC; year-month -> day 1; date without time ->
// midnight UTC; time without seconds -> seconds=0 (§4.1, §9).
func parseDateTimeLiteral(raw string, kind TokenKind) (time.Time, error) {
	switch kind {
	case TIME:
		return parseTimeOfDay(raw)
	case DATE:
		return parseCalendarDate(raw)
	default:
		return parseFullDateTime(raw)
	}
}

var dateTimeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
}

func parseFullDateTime(raw string) (time.Time, error) {
	for _, layout := range dateTimeLayouts {
		if v, err := time.ParseInLocation(layout, raw, time.UTC); err == nil {
			return v, nil
		}
	}
	// Fall back to progressively shorter calendar-date forms, zero-filled.
	if v, err := parseCalendarDate(raw); err == nil {
		return v, nil
	}
	return time.Time{}, errors.New("invalid datetime literal " + raw)
}

var dateLayouts = []string{
	"2006-01-02",
	"2006-01",
	"2006",
}

func parseCalendarDate(raw string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if v, err := time.ParseInLocation(layout, raw, time.UTC); err == nil {
			return v, nil
		}
	}
	return time.Time{}, errors.New("invalid date literal " + raw)
}

var timeLayouts = []string{
	"15:04:05.999999999",
	"15:04:05",
	"15:04",
}

func parseTimeOfDay(raw string) (time.Time, error) {
	for _, layout := range timeLayouts {
		if v, err := time.ParseInLocation(layout, raw, time.UTC); err == nil {
			return time.Date(0, 1, 1, v.Hour(), v.Minute(), v.Second(), v.Nanosecond(), time.UTC), nil
		}
	}
	return time.Time{}, errors.New("invalid time literal " + raw)
}
