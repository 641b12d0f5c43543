package timeutil

import (
	"testing"
	"time"
)

func TestDatesBetween_Inclusive(t *testing.T) {
	dates := DatesBetween("2025-03-29", "2025-04-02")

	if len(dates) != 5 {
		t.Fatalf("expected 5 dates, got %d: %v", len(dates), dates)
	}
	if dates[0] != "2025-03-29" {
		t.Fatalf("expected first date 2025-03-29, got %s", dates[0])
	}
	if dates[4] != "2025-04-02" {
		t.Fatalf("expected last date 2025-04-02, got %s", dates[4])
	}

	// strictly increasing by one calendar day
	for i := 1; i < len(dates); i++ {
		prev, _ := time.Parse("2006-01-02", dates[i-1])
		cur, _ := time.Parse("2006-01-02", dates[i])
		if cur.Sub(prev) != 24*time.Hour {
			t.Fatalf("dates not consecutive: %s -> %s", dates[i-1], dates[i])
		}
	}
}

func TestDatesBetween_SingleDay(t *testing.T) {
	dates := DatesBetween("2025-06-15", "2025-06-15")
	if len(dates) != 1 || dates[0] != "2025-06-15" {
		t.Fatalf("expected single element, got %v", dates)
	}
}

func TestDatesBetween_Reversed(t *testing.T) {
	if dates := DatesBetween("2025-06-16", "2025-06-15"); len(dates) != 0 {
		t.Fatalf("expected empty for reversed range, got %v", dates)
	}
}

func TestDatesBetween_Malformed(t *testing.T) {
	if dates := DatesBetween("not-a-date", "2025-06-15"); len(dates) != 0 {
		t.Fatalf("expected empty for malformed input, got %v", dates)
	}
}

func TestDuration(t *testing.T) {
	cases := []struct {
		start, end, want string
	}{
		{"10:00", "12:00", "2h"},
		{"10:00", "10:45", "45m"},
		{"10:00", "11:30", "1h 30m"},
		{"12:00", "12:00", ""},
		{"14:00", "12:00", ""},
		{"", "12:00", ""},
		{"10:00", "", ""},
		{"banana", "12:00", ""},
	}

	for _, tc := range cases {
		if got := Duration(tc.start, tc.end); got != tc.want {
			t.Fatalf("Duration(%q,%q) = %q, want %q", tc.start, tc.end, got, tc.want)
		}
	}
}

func TestTo12Hour(t *testing.T) {
	cases := []struct{ in, want string }{
		{"00:30", "12:30 AM"},
		{"10:00", "10:00 AM"},
		{"12:00", "12:00 PM"},
		{"13:05", "1:05 PM"},
		{"23:59", "11:59 PM"},
		{"24:00", ""},
		{"oops", ""},
	}

	for _, tc := range cases {
		if got := To12Hour(tc.in); got != tc.want {
			t.Fatalf("To12Hour(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestTo24Hour_RoundTrip(t *testing.T) {
	for _, hm := range []string{"00:00", "00:30", "09:15", "12:00", "13:05", "23:59"} {
		if got := To24Hour(To12Hour(hm)); got != hm {
			t.Fatalf("round trip of %q gave %q", hm, got)
		}
	}

	if got := To24Hour("25:00 PM"); got != "" {
		t.Fatalf("expected sentinel for bad input, got %q", got)
	}
}

func TestLongDuration(t *testing.T) {
	cases := []struct {
		start, end, want string
	}{
		{"10:00", "12:00", "2 hours"},
		{"10:00", "11:00", "1 hour"},
		{"10:00", "11:30", "1 hour 30 minutes"},
		{"10:00", "10:01", "1 minute"},
		{"10:00", "10:45", "45 minutes"},
		{"12:00", "11:00", ""},
	}

	for _, tc := range cases {
		if got := LongDuration(tc.start, tc.end); got != tc.want {
			t.Fatalf("LongDuration(%q,%q) = %q, want %q", tc.start, tc.end, got, tc.want)
		}
	}
}

func TestParseLongDuration(t *testing.T) {
	cases := []struct {
		in   string
		want int
	}{
		{"2 hours", 120},
		{"1 hour 30 minutes", 90},
		{"45 minutes", 45},
		{"1 hour", 60},
		{"", 0},
		{"garbage", 0},
	}

	for _, tc := range cases {
		if got := ParseLongDuration(tc.in); got != tc.want {
			t.Fatalf("ParseLongDuration(%q) = %d, want %d", tc.in, got, tc.want)
		}
	}
}

func TestAddMinutes(t *testing.T) {
	if got := AddMinutes("10:00", 90); got != "11:30" {
		t.Fatalf("expected 11:30, got %s", got)
	}
	if got := AddMinutes("23:30", 90); got != "23:59" {
		t.Fatalf("expected clamp to 23:59, got %s", got)
	}
	if got := AddMinutes("bad", 10); got != "" {
		t.Fatalf("expected sentinel, got %q", got)
	}
}
