package main

import (
	"fmt"
	"strconv"
	"time"
)

const rfc2822 = time.RFC1123Z

// Day of week and a leading zero on the day are both optional in RFC 2822.
var rfc2822Layouts = []string{
	"Mon, 2 Jan 2006 15:04:05 -0700",
	"2 Jan 2006 15:04:05 -0700",
}

func validateStandard(standard string) error {
	switch standard {
	case standardRFC2822, standardRFC3339, standardTimestamp:
		return nil
	}
	return fmt.Errorf("unknown standard %q", standard)
}

func formatTime(t time.Time, standard string) string {
	t = t.Local()
	switch standard {
	case standardRFC2822:
		return t.Format(rfc2822)
	case standardTimestamp:
		return strconv.FormatInt(t.Unix(), 10)
	default:
		return t.Format(time.RFC3339)
	}
}

func parseTime(value, standard string) (time.Time, error) {
	switch standard {
	case standardRFC2822:
		return parseRFC2822(value)
	case standardTimestamp:
		sec, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return time.Time{}, fmt.Errorf("invalid timestamp %q", value)
		}
		return time.Unix(sec, 0), nil
	default:
		return time.Parse(time.RFC3339, value)
	}
}

func parseRFC2822(value string) (t time.Time, err error) {
	for _, layout := range rfc2822Layouts {
		if t, err = time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid RFC 2822 time %q", value)
}
