package calendar

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
)

var NowFunc = time.Now // mockable

// Date is a normalized calendar date (no time-of-day component).
// Record dates are parsed into this type exactly once at the boundary;
// all comparisons happen on the normalized value.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// ParseLocalDate parses a date in day/month/year order ("05/03/2025" or
// "5/3/2025"). Stored record dates use this order, never ISO.
func ParseLocalDate(s string) (Date, error) {
	parts := strings.Split(strings.TrimSpace(s), "/")
	if len(parts) != 3 {
		return Date{}, errors.Errorf("malformed date %q", s)
	}
	nums := make([]int, 3)
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return Date{}, errors.Errorf("malformed date %q", s)
		}
		nums[i] = n
	}
	return normalize(nums[2], time.Month(nums[1]), nums[0]), nil
}

// ParseISODate parses a date in ISO order ("2025-03-05"); this is the
// format of the custom-date picker input only.
func ParseISODate(s string) (Date, error) {
	parts := strings.Split(strings.TrimSpace(s), "-")
	if len(parts) != 3 {
		return Date{}, errors.Errorf("malformed ISO date %q", s)
	}
	nums := make([]int, 3)
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return Date{}, errors.Errorf("malformed ISO date %q", s)
		}
		nums[i] = n
	}
	return normalize(nums[0], time.Month(nums[1]), nums[2]), nil
}

// DateOf truncates t to its calendar date.
func DateOf(t time.Time) Date {
	return Date{Year: t.Year(), Month: t.Month(), Day: t.Day()}
}

// Today returns the current calendar date.
func Today() Date {
	return DateOf(NowFunc())
}

// normalize routes out-of-range components through time.Date so that
// overflowing values roll over instead of producing an invalid Date.
func normalize(year int, month time.Month, day int) Date {
	return DateOf(time.Date(year, month, day, 0, 0, 0, 0, time.UTC))
}

func (d Date) IsZero() bool {
	return d == Date{}
}

func (d Date) Equal(o Date) bool {
	return d == o
}

// Time returns the date at midnight UTC.
func (d Date) Time() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

// DaysSince returns the number of whole days from o to d.
// Positive when d is after o.
func (d Date) DaysSince(o Date) int {
	return int(d.Time().Sub(o.Time()).Hours() / 24)
}

// Weekday returns the day of the week (Sunday = 0).
func (d Date) Weekday() time.Weekday {
	return d.Time().Weekday()
}

// String renders the date in the stored day/month/year order.
func (d Date) String() string {
	return fmt.Sprintf("%02d/%02d/%04d", d.Day, int(d.Month), d.Year)
}
