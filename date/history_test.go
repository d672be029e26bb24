package date

import (
	"slices"
	"testing"
)

func TestHistoryAppend_keepsSorted(t *testing.T) {
	var h History[float64]
	h.Append(MustParse("2025-01-03"), 3)
	h.Append(MustParse("2025-01-01"), 1)
	h.Append(MustParse("2025-01-02"), 2)

	var days []string
	var values []float64
	for on, v := range h.Values() {
		days = append(days, on.String())
		values = append(values, v)
	}
	wantDays := []string{"2025-01-01", "2025-01-02", "2025-01-03"}
	wantValues := []float64{1, 2, 3}
	if !slices.Equal(days, wantDays) {
		t.Errorf("days = %v, want %v", days, wantDays)
	}
	if !slices.Equal(values, wantValues) {
		t.Errorf("values = %v, want %v", values, wantValues)
	}
}

func TestHistoryAppend_overwritesDuplicate(t *testing.T) {
	var h History[float64]
	on := MustParse("2025-01-01")
	h.Append(on, 1).Append(on, 2)
	if h.Len() != 1 {
		t.Fatalf("Len = %d, want 1", h.Len())
	}
	if got, _ := h.Get(on); got != 2 {
		t.Errorf("Get = %v, want 2 (last write wins)", got)
	}
}

func TestHistoryValueAsOf(t *testing.T) {
	var h History[float64]
	h.Append(MustParse("2025-01-02"), 10)
	h.Append(MustParse("2025-01-05"), 20)

	tests := []struct {
		day   string
		want  float64
		found bool
	}{
		{"2025-01-01", 0, false}, // before any entry: never look forward
		{"2025-01-02", 10, true}, // exact hit
		{"2025-01-03", 10, true}, // carried forward
		{"2025-01-04", 10, true},
		{"2025-01-05", 20, true},
		{"2025-01-09", 20, true}, // after the last entry
	}
	for _, tt := range tests {
		got, ok := h.ValueAsOf(MustParse(tt.day))
		if ok != tt.found || got != tt.want {
			t.Errorf("ValueAsOf(%s) = %v, %v, want %v, %v", tt.day, got, ok, tt.want, tt.found)
		}
	}
}

func TestHistoryFirstLatest(t *testing.T) {
	var h History[float64]
	if day, _ := h.First(); !day.IsZero() {
		t.Errorf("First on empty history = %v, want zero date", day)
	}
	if day, _ := h.Latest(); !day.IsZero() {
		t.Errorf("Latest on empty history = %v, want zero date", day)
	}

	h.Append(MustParse("2025-01-05"), 20)
	h.Append(MustParse("2025-01-02"), 10)

	if day, v := h.First(); day != MustParse("2025-01-02") || v != 10 {
		t.Errorf("First = %v, %v, want 2025-01-02, 10", day, v)
	}
	if day, v := h.Latest(); day != MustParse("2025-01-05") || v != 20 {
		t.Errorf("Latest = %v, %v, want 2025-01-05, 20", day, v)
	}
}

func TestMerge(t *testing.T) {
	a := []Date{MustParse("2025-01-01"), MustParse("2025-01-03")}
	b := []Date{MustParse("2025-01-02"), MustParse("2025-01-03"), MustParse("2025-01-04")}

	var got []string
	for on := range Merge(a, b) {
		got = append(got, on.String())
	}
	want := []string{"2025-01-01", "2025-01-02", "2025-01-03", "2025-01-04"}
	if !slices.Equal(got, want) {
		t.Errorf("Merge = %v, want %v", got, want)
	}
}

func TestMerge_empty(t *testing.T) {
	for on := range Merge(nil, []Date{}) {
		t.Fatalf("Merge of empty series yielded %v", on)
	}
}

func TestIterate(t *testing.T) {
	var a, b History[float64]
	a.Append(MustParse("2025-01-01"), 1)
	a.Append(MustParse("2025-01-02"), 2)
	b.Append(MustParse("2025-01-02"), 20)
	b.Append(MustParse("2025-01-03"), 30)

	var got []string
	for on := range Iterate(&a, &b) {
		got = append(got, on.String())
	}
	want := []string{"2025-01-01", "2025-01-02", "2025-01-03"}
	if !slices.Equal(got, want) {
		t.Errorf("Iterate = %v, want %v", got, want)
	}
}
