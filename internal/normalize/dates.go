package normalize

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Spreadsheet serial dates count days from 1899-12-30 (the convention the
// export files use). Serials outside (0, 100000) are treated as plain
// numbers, not dates.
var serialEpoch = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)

const maxSerial = 100000

var (
	serialPattern = regexp.MustCompile(`^\d+(\.\d+)?$`)
	dmyPattern    = regexp.MustCompile(`^(\d{1,2})[/-](\d{1,2})[/-](\d{4})$`)
	ymdPattern    = regexp.MustCompile(`^(\d{4})-(\d{1,2})-(\d{1,2})$`)
)

// ParseDate interprets a spreadsheet cell as a date. It accepts numeric
// serials (as digit strings), DD/MM/YYYY, DD-MM-YYYY and YYYY-MM-DD, plus
// the timestamp layouts the exports occasionally emit. The second return
// value is false when the cell cannot be read as a date.
func ParseDate(value string) (time.Time, bool) {
	s := strings.TrimSpace(value)
	if s == "" {
		return time.Time{}, false
	}
	if serialPattern.MatchString(s) {
		serial, err := strconv.ParseFloat(s, 64)
		if err == nil && serial > 0 && serial < maxSerial {
			return FromSerial(serial), true
		}
		return time.Time{}, false
	}
	if m := dmyPattern.FindStringSubmatch(s); m != nil {
		return buildDate(m[3], m[2], m[1])
	}
	if m := ymdPattern.FindStringSubmatch(s); m != nil {
		return buildDate(m[1], m[2], m[3])
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02 15:04:05", "02/01/2006 15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func buildDate(year, month, day string) (time.Time, bool) {
	y, _ := strconv.Atoi(year)
	m, _ := strconv.Atoi(month)
	d, _ := strconv.Atoi(day)
	if m < 1 || m > 12 || d < 1 || d > 31 {
		return time.Time{}, false
	}
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC), true
}

// FromSerial converts a spreadsheet day serial (fractions are time of day)
// to a time.
func FromSerial(serial float64) time.Time {
	return serialEpoch.Add(time.Duration(serial * 24 * float64(time.Hour)))
}

// FormatDate renders any parseable date value as DD/MM/YYYY. Values that
// cannot be parsed pass through unchanged so the operator still sees the
// original cell content.
func FormatDate(value string) string {
	if strings.TrimSpace(value) == "" {
		return ""
	}
	t, ok := ParseDate(value)
	if !ok {
		return value
	}
	return Format(t)
}

// Format renders a time as DD/MM/YYYY.
func Format(t time.Time) string {
	return t.Format("02/01/2006")
}

// DefaultDispatchDate is the placeholder used when an order has no
// estimated dispatch date: December 31st of next year.
func DefaultDispatchDate(now time.Time) string {
	return fmt.Sprintf("31/12/%d", now.Year()+1)
}

// AddMonths shifts a date by whole months using time.AddDate semantics:
// day-of-month overflow normalizes forward, so Jan 31 + 1 month lands on
// Mar 2 or Mar 3 depending on leap year. Delivery estimates accept that
// drift on end-of-month dispatch dates.
func AddMonths(t time.Time, months int) time.Time {
	return t.AddDate(0, months, 0)
}

// DeliveryEstimate derives the estimated delivery date: one month after
// the dispatch date. Empty when the dispatch date cannot be parsed.
func DeliveryEstimate(dispatch string) string {
	t, ok := ParseDate(dispatch)
	if !ok {
		return ""
	}
	return Format(AddMonths(t, 1))
}
