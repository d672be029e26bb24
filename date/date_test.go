package date

import (
	"testing"
	"time"
)

func TestParse(t *testing.T) {
	tests := []struct {
		in   string
		want Date
	}{
		{"2025-01-02", New(2025, time.January, 2)},
		{"2025-1-2", New(2025, time.January, 2)},
		{"2024-12-31", New(2024, time.December, 31)},
	}
	for _, tt := range tests {
		got, err := Parse(tt.in)
		if err != nil {
			t.Fatalf("Parse(%q) unexpected error: %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("Parse(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestParse_invalid(t *testing.T) {
	for _, in := range []string{"", "2025/01/02", "02-01-2025", "not a date"} {
		if _, err := Parse(in); err == nil {
			t.Errorf("Parse(%q) expected an error, got none", in)
		}
	}
}

func TestNew_normalizes(t *testing.T) {
	// Out-of-range day carries over to the next month.
	got := New(2025, time.January, 32)
	want := New(2025, time.February, 1)
	if got != want {
		t.Errorf("New(2025, January, 32) = %v, want %v", got, want)
	}
}

func TestAdd(t *testing.T) {
	d := MustParse("2025-02-28")
	if got, want := d.Add(1), MustParse("2025-03-01"); got != want {
		t.Errorf("Add(1) = %v, want %v", got, want)
	}
	if got, want := d.Add(-28), MustParse("2025-01-31"); got != want {
		t.Errorf("Add(-28) = %v, want %v", got, want)
	}
}

func TestSub(t *testing.T) {
	a := MustParse("2025-01-01")
	b := MustParse("2026-01-01")
	if got := b.Sub(a); got != 365 {
		t.Errorf("Sub = %d days, want 365", got)
	}
	if got := a.Sub(b); got != -365 {
		t.Errorf("Sub reversed = %d days, want -365", got)
	}
}

func TestOrdering(t *testing.T) {
	a := MustParse("2025-06-01")
	b := MustParse("2025-06-02")
	if !a.Before(b) {
		t.Errorf("%v.Before(%v) = false, want true", a, b)
	}
	if !b.After(a) {
		t.Errorf("%v.After(%v) = false, want true", b, a)
	}
	if a.Before(a) || a.After(a) {
		t.Errorf("%v should be neither before nor after itself", a)
	}
}

func TestString(t *testing.T) {
	d := New(2025, time.July, 4)
	if got, want := d.String(), "2025-07-04"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestJSONRoundTrip(t *testing.T) {
	d := MustParse("2025-03-15")
	b, err := d.MarshalJSON()
	if err != nil {
		t.Fatalf("MarshalJSON: %v", err)
	}
	if got, want := string(b), `"2025-03-15"`; got != want {
		t.Errorf("MarshalJSON = %s, want %s", got, want)
	}
	var back Date
	if err := back.UnmarshalJSON(b); err != nil {
		t.Fatalf("UnmarshalJSON: %v", err)
	}
	if back != d {
		t.Errorf("round trip = %v, want %v", back, d)
	}
}

func TestRangeContains(t *testing.T) {
	r := NewRange(MustParse("2025-01-01"), MustParse("2025-12-31"))
	tests := []struct {
		day  string
		want bool
	}{
		{"2025-01-01", true},
		{"2025-12-31", true},
		{"2025-06-15", true},
		{"2024-12-31", false},
		{"2026-01-01", false},
	}
	for _, tt := range tests {
		if got := r.Contains(MustParse(tt.day)); got != tt.want {
			t.Errorf("Contains(%s) = %v, want %v", tt.day, got, tt.want)
		}
	}
}
