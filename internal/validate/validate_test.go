package validate

import "testing"

func TestEmail(t *testing.T) {
	tests := []struct {
		in string
		ok bool
	}{
		{"a@b.pt", true},
		{"first.last@example.com", true},
		{"a@sub.example.co", true},
		{"@b.pt", false},     // empty local part
		{"a@.pt", false},     // empty domain label
		{"a@bpt", false},     // no dot in domain
		{"a@b.p", false},     // short final label
		{"a@@b.pt", false},   // two at signs
		{"a.b.pt", false},    // no at sign
		{"", false},
	}
	for _, tt := range tests {
		if got := Email(tt.in); got != tt.ok {
			t.Errorf("Email(%q) = %v, want %v", tt.in, got, tt.ok)
		}
	}
}

func TestCodes(t *testing.T) {
	if !CountryCode("PT") || CountryCode("PRT") || CountryCode("") {
		t.Error("CountryCode length rule broken")
	}
	if !AirportCode("OPO") || AirportCode("OPOR") || AirportCode("PT") {
		t.Error("AirportCode length rule broken")
	}
}

// TestTrip pins the case-insensitive same-airport rejection: OPO to opo is
// the same airport and must fail.
func TestTrip(t *testing.T) {
	tests := []struct {
		origin, dest string
		ok           bool
	}{
		{"OPO", "LIS", true},
		{"opo", "LIS", true},
		{"OPO", "OPO", false},
		{"OPO", "opo", false},
		{"OP", "LIS", false},
		{"OPO", "LISB", false},
	}
	for _, tt := range tests {
		if got := Trip(tt.origin, tt.dest); got != tt.ok {
			t.Errorf("Trip(%q, %q) = %v, want %v", tt.origin, tt.dest, got, tt.ok)
		}
	}
}

func TestStatus(t *testing.T) {
	tests := []struct {
		in         string
		ok, active bool
	}{
		{"active", true, true},
		{"Active", true, true},
		{"INACTIVE", true, false},
		{"inactive", true, false},
		{"enabled", false, false},
		{"", false, false},
	}
	for _, tt := range tests {
		if got := Status(tt.in); got != tt.ok {
			t.Errorf("Status(%q) = %v, want %v", tt.in, got, tt.ok)
		}
		if tt.ok {
			if got := Active(tt.in); got != tt.active {
				t.Errorf("Active(%q) = %v, want %v", tt.in, got, tt.active)
			}
		}
	}
}

func TestBreakfast(t *testing.T) {
	tests := []struct {
		in        string
		ok, value bool
	}{
		{"t", true, true},
		{"T", true, true},
		{"true", true, true},
		{"TRUE", true, true},
		{"1", true, true},
		{"f", true, false},
		{"false", true, false},
		{"0", true, false},
		{"", true, false},
		{"yes", false, false},
		{"2", false, false},
	}
	for _, tt := range tests {
		if got := Breakfast(tt.in); got != tt.ok {
			t.Errorf("Breakfast(%q) = %v, want %v", tt.in, got, tt.ok)
		}
		if tt.ok {
			if got := BreakfastValue(tt.in); got != tt.value {
				t.Errorf("BreakfastValue(%q) = %v, want %v", tt.in, got, tt.value)
			}
		}
	}
}

// TestNumericValidators checks the shared whole-number rule: a fractional
// remainder fails, a trailing ".0" does not, and each validator applies its
// own range.
func TestNumericValidators(t *testing.T) {
	tests := []struct {
		name string
		fn   func(string) bool
		in   string
		ok   bool
	}{
		{"stars", Stars, "1", true},
		{"stars", Stars, "5", true},
		{"stars", Stars, "3.0", true},
		{"stars", Stars, "0", false},
		{"stars", Stars, "6", false},
		{"stars", Stars, "3.5", false},
		{"stars", Stars, "", false},
		{"tax", Tax, "0", true},
		{"tax", Tax, "25", true},
		{"tax", Tax, "-1", false},
		{"price", Price, "100", true},
		{"price", Price, "0", false},
		{"price", Price, "-5", false},
		{"rating", Rating, "", true},
		{"rating", Rating, "4", true},
		{"rating", Rating, "0", false},
		{"rating", Rating, "6", false},
		{"seats", PositiveInt, "180", true},
		{"seats", PositiveInt, "0", false},
		{"seats", PositiveInt, "12.5", false},
	}
	for _, tt := range tests {
		if got := tt.fn(tt.in); got != tt.ok {
			t.Errorf("%s(%q) = %v, want %v", tt.name, tt.in, got, tt.ok)
		}
	}
}

func TestStrictlyBefore(t *testing.T) {
	tests := []struct {
		first, second string
		ok            bool
	}{
		{"1990/01/01", "2020/01/01", true},
		{"2020/01/01", "1990/01/01", false},
		{"2020/01/01", "2020/01/01", false},
		{"2023/01/01 10:00:00", "2023/01/01 10:00:01", true},
		{"bad", "2020/01/01", false},
		{"2020/01/01", "bad", false},
	}
	for _, tt := range tests {
		if got := StrictlyBefore(tt.first, tt.second); got != tt.ok {
			t.Errorf("StrictlyBefore(%q, %q) = %v, want %v", tt.first, tt.second, got, tt.ok)
		}
	}
}
