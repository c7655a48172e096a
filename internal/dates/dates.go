// Package dates implements the date grammar used across the travel datasets
// and the calendar arithmetic the queries derive from it.
//
// The grammar is strict and positional: "YYYY/MM/DD" or
// "YYYY/MM/DD HH:MM:SS", every token exactly as wide as shown and made of
// ASCII digits. The year must not be 0000, the month is 1-12, the day 1-31
// (deliberately no per-month day-count check), and when the time part is
// present the hour is 0-23 with minute/second 0-59. time.Parse is not usable
// here: its layouts reject calendar-impossible days like 2023/02/31, which
// this grammar must accept.
package dates

import (
	"fmt"
	"time"
)

// Date is a parsed timestamp under the dataset grammar. HasTime reports
// whether the HH:MM:SS part was present in the source string.
type Date struct {
	Year, Month, Day int
	Hour, Min, Sec   int
	HasTime          bool
}

const (
	dayWidth  = len("2006/01/02")
	fullWidth = len("2006/01/02 15:04:05")
)

// digits parses s as a fixed-width run of ASCII digits. The bool is false if
// any byte is not a digit.
func digits(s string) (int, bool) {
	n := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c < '0' || c > '9' {
			return 0, false
		}
		n = n*10 + int(c-'0')
	}
	return n, true
}

// Parse parses s under the grammar. The bool reports whether s is valid.
func Parse(s string) (Date, bool) {
	var d Date
	switch len(s) {
	case dayWidth:
	case fullWidth:
		d.HasTime = true
	default:
		return Date{}, false
	}
	if s[4] != '/' || s[7] != '/' {
		return Date{}, false
	}
	var ok bool
	if d.Year, ok = digits(s[0:4]); !ok {
		return Date{}, false
	}
	if d.Month, ok = digits(s[5:7]); !ok {
		return Date{}, false
	}
	if d.Day, ok = digits(s[8:10]); !ok {
		return Date{}, false
	}
	if d.Year == 0 || d.Month < 1 || d.Month > 12 || d.Day < 1 || d.Day > 31 {
		return Date{}, false
	}
	if !d.HasTime {
		return d, true
	}
	if s[10] != ' ' || s[13] != ':' || s[16] != ':' {
		return Date{}, false
	}
	if d.Hour, ok = digits(s[11:13]); !ok {
		return Date{}, false
	}
	if d.Min, ok = digits(s[14:16]); !ok {
		return Date{}, false
	}
	if d.Sec, ok = digits(s[17:19]); !ok {
		return Date{}, false
	}
	if d.Hour > 23 || d.Min > 59 || d.Sec > 59 {
		return Date{}, false
	}
	return d, true
}

// Valid reports whether s satisfies the grammar.
func Valid(s string) bool {
	_, ok := Parse(s)
	return ok
}

// Compare orders two parsed dates chronologically, returning -1, 0 or 1.
// The time components take part only when both dates carry them.
func Compare(a, b Date) int {
	if c := cmp(a.Year, b.Year); c != 0 {
		return c
	}
	if c := cmp(a.Month, b.Month); c != 0 {
		return c
	}
	if c := cmp(a.Day, b.Day); c != 0 {
		return c
	}
	if !a.HasTime || !b.HasTime {
		return 0
	}
	if c := cmp(a.Hour, b.Hour); c != 0 {
		return c
	}
	if c := cmp(a.Min, b.Min); c != 0 {
		return c
	}
	return cmp(a.Sec, b.Sec)
}

// CompareDay orders two dates by their calendar day only.
func CompareDay(a, b Date) int {
	if c := cmp(a.Year, b.Year); c != 0 {
		return c
	}
	if c := cmp(a.Month, b.Month); c != 0 {
		return c
	}
	return cmp(a.Day, b.Day)
}

func cmp(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// Earlier compares two raw date strings: 1 if s1 is strictly earlier than s2,
// -1 if s2 is strictly earlier, 0 if equal. It fails closed: if either string
// violates the grammar the result is -1.
func Earlier(s1, s2 string) int {
	d1, ok1 := Parse(s1)
	d2, ok2 := Parse(s2)
	if !ok1 || !ok2 {
		return -1
	}
	return -Compare(d1, d2)
}

// DayString renders the calendar-day part, dropping any time component.
func (d Date) DayString() string {
	return fmt.Sprintf("%04d/%02d/%02d", d.Year, d.Month, d.Day)
}

// String renders the date back in its source form.
func (d Date) String() string {
	if !d.HasTime {
		return d.DayString()
	}
	return fmt.Sprintf("%04d/%02d/%02d %02d:%02d:%02d", d.Year, d.Month, d.Day, d.Hour, d.Min, d.Sec)
}

// clock converts d to a time.Time for calendar arithmetic. Out-of-calendar
// days allowed by the grammar (e.g. 02/31) normalize the way time.Date does.
func (d Date) clock() time.Time {
	return time.Date(d.Year, time.Month(d.Month), d.Day, d.Hour, d.Min, d.Sec, 0, time.UTC)
}

// DaysBetween returns the number of calendar days from a to b (negative when
// b precedes a). Time components are ignored.
func DaysBetween(a, b Date) int {
	ta := time.Date(a.Year, time.Month(a.Month), a.Day, 0, 0, 0, 0, time.UTC)
	tb := time.Date(b.Year, time.Month(b.Month), b.Day, 0, 0, 0, 0, time.UTC)
	return int(tb.Sub(ta) / (24 * time.Hour))
}

// Nights returns the number of nights a stay from begin to end covers.
func Nights(begin, end Date) int {
	return DaysBetween(begin, end)
}

// AddDays returns d shifted by n calendar days, as a day-only date.
func (d Date) AddDays(n int) Date {
	t := time.Date(d.Year, time.Month(d.Month), d.Day, 0, 0, 0, 0, time.UTC).AddDate(0, 0, n)
	return Date{Year: t.Year(), Month: int(t.Month()), Day: t.Day()}
}

// DelaySeconds returns actual minus scheduled as whole seconds, a full
// timestamp subtraction: departures that slip past midnight count the day
// boundary, and early departures come out negative.
func DelaySeconds(scheduled, actual Date) int64 {
	return int64(actual.clock().Sub(scheduled.clock()) / time.Second)
}
