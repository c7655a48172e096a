package dates

import "testing"

// TestParse exercises the grammar edge cases: exact token widths, the
// forbidden year 0000, month/day bounds, the day 31 allowance regardless of
// month, and the time-part bounds.
func TestParse(t *testing.T) {
	tests := []struct {
		in string
		ok bool
	}{
		{"2023/01/01", true},
		{"2023/02/31", true}, // no per-month day check
		{"2023/12/31 23:59:59", true},
		{"2023/01/01 00:00:00", true},
		{"0000/01/01", false},
		{"2023/00/01", false},
		{"2023/13/01", false},
		{"2023/01/00", false},
		{"2023/01/32", false},
		{"2023/1/01", false},   // month not two digits
		{"2023-01-01", false},  // wrong separators
		{"2023/01/01 ", false}, // stray trailing space
		{"2023/01/01 24:00:00", false},
		{"2023/01/01 12:60:00", false},
		{"2023/01/01 12:00:60", false},
		{"2023/01/01T12:00:00", false},
		{"2023/01/01 12-00-00", false},
		{"202a/01/01", false},
		{"", false},
	}
	for _, tt := range tests {
		if _, ok := Parse(tt.in); ok != tt.ok {
			t.Errorf("Parse(%q) ok = %v, want %v", tt.in, ok, tt.ok)
		}
	}
}

func TestCompare(t *testing.T) {
	mk := func(s string) Date {
		d, ok := Parse(s)
		if !ok {
			t.Fatalf("bad fixture %q", s)
		}
		return d
	}
	tests := []struct {
		a, b string
		want int
	}{
		{"2023/01/01", "2023/01/02", -1},
		{"2023/02/01", "2023/01/02", 1},
		{"2023/01/01", "2023/01/01", 0},
		// mixed precision compares by day only
		{"2023/01/01 23:59:59", "2023/01/01", 0},
		{"2023/01/01 10:00:00", "2023/01/01 10:00:01", -1},
		{"2023/01/01 10:01:00", "2023/01/01 10:00:59", 1},
	}
	for _, tt := range tests {
		if got := Compare(mk(tt.a), mk(tt.b)); got != tt.want {
			t.Errorf("Compare(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}

// TestEarlier checks the fail-closed contract: malformed input on either side
// reports the second date as earlier.
func TestEarlier(t *testing.T) {
	tests := []struct {
		s1, s2 string
		want   int
	}{
		{"2023/01/01", "2023/01/02", 1},
		{"2023/01/02", "2023/01/01", -1},
		{"2023/01/01", "2023/01/01", 0},
		{"garbage", "2023/01/01", -1},
		{"2023/01/01", "garbage", -1},
		{"", "", -1},
	}
	for _, tt := range tests {
		if got := Earlier(tt.s1, tt.s2); got != tt.want {
			t.Errorf("Earlier(%q, %q) = %d, want %d", tt.s1, tt.s2, got, tt.want)
		}
	}
}

func TestNights(t *testing.T) {
	mk := func(s string) Date {
		d, ok := Parse(s)
		if !ok {
			t.Fatalf("bad fixture %q", s)
		}
		return d
	}
	tests := []struct {
		begin, end string
		want       int
	}{
		{"2023/06/01", "2023/06/05", 4},
		{"2023/06/01", "2023/06/02", 1},
		{"2023/02/27", "2023/03/02", 3},  // non-leap February boundary
		{"2024/02/27", "2024/03/02", 4},  // leap year
		{"2023/12/30", "2024/01/02", 3},  // year boundary
	}
	for _, tt := range tests {
		if got := Nights(mk(tt.begin), mk(tt.end)); got != tt.want {
			t.Errorf("Nights(%q, %q) = %d, want %d", tt.begin, tt.end, got, tt.want)
		}
	}
}

// TestDelaySeconds pins the full-timestamp subtraction: delays crossing a day
// boundary include the whole elapsed time, and early departures are negative.
func TestDelaySeconds(t *testing.T) {
	mk := func(s string) Date {
		d, ok := Parse(s)
		if !ok {
			t.Fatalf("bad fixture %q", s)
		}
		return d
	}
	tests := []struct {
		sched, actual string
		want          int64
	}{
		{"2023/01/01 10:00:00", "2023/01/01 10:30:00", 1800},
		{"2023/01/01 10:00:00", "2023/01/01 10:00:00", 0},
		{"2023/01/01 23:50:00", "2023/01/02 00:10:00", 1200},
		{"2023/01/01 10:00:00", "2023/01/01 09:59:00", -60},
	}
	for _, tt := range tests {
		if got := DelaySeconds(mk(tt.sched), mk(tt.actual)); got != tt.want {
			t.Errorf("DelaySeconds(%q, %q) = %d, want %d", tt.sched, tt.actual, got, tt.want)
		}
	}
}

func TestDayStringAndAddDays(t *testing.T) {
	d, ok := Parse("2023/01/31 08:15:00")
	if !ok {
		t.Fatal("bad fixture")
	}
	if got := d.DayString(); got != "2023/01/31" {
		t.Errorf("DayString() = %q, want %q", got, "2023/01/31")
	}
	if got := d.AddDays(1).DayString(); got != "2023/02/01" {
		t.Errorf("AddDays(1) = %q, want %q", got, "2023/02/01")
	}
	if got := d.AddDays(-31).DayString(); got != "2022/12/31" {
		t.Errorf("AddDays(-31) = %q, want %q", got, "2022/12/31")
	}
}
