package iobject

import "time"

// defaultNowFunc backs the builtin "now" default function: §4.1/§4.5
// "String default now yields a fresh current instant" for the
// datetime/date/time family. It is invoked fresh on every call, never
// memoized, so two members defaulting to "now" in the same document get
// distinct instants if processed at different moments.
func defaultNowFunc(args ...string) (any, error) {
	now := time.Now().UTC()
	if len(args) > 0 {
		switch args[0] {
		case "date":
			return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC), nil
		case "time":
			return now, nil
		}
	}
	return now, nil
}
