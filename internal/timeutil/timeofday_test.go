package timeutil

import (
	"testing"
	"time"
)

func TestParse(t *testing.T) {
	tests := []struct {
		input   string
		want    TimeOfDay
		wantErr bool
	}{
		{"06:30", New(6, 30), false},
		{"00:00", New(0, 0), false},
		{"23:59", New(23, 59), false},
		{"  14:05  ", New(14, 5), false},
		{"6:30 am", New(6, 30), false},
		{"6:30 pm", New(18, 30), false},
		{"06:30PM", New(18, 30), false},
		{"12:00 am", New(0, 0), false},
		{"12:00 pm", New(12, 0), false},
		{"12:30am", New(0, 30), false},
		{"24:00", 0, true},
		{"13:00 pm", 0, true},
		{"0:15 am", 0, true},
		{"12:60", 0, true},
		{"-1:00", 0, true},
		{"noon", 0, true},
		{"", 0, true},
		{"06", 0, true},
	}

	for _, tt := range tests {
		got, err := Parse(tt.input)
		if tt.wantErr {
			if err == nil {
				t.Errorf("Parse(%q) = %v, expected error", tt.input, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("Parse(%q) unexpected error: %v", tt.input, err)
			continue
		}
		if got != tt.want {
			t.Errorf("Parse(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestAddWrapsMidnight(t *testing.T) {
	tests := []struct {
		start TimeOfDay
		add   float64
		want  TimeOfDay
	}{
		{New(23, 30), 45, New(0, 15)},
		{New(0, 0), 1440, New(0, 0)},
		{New(10, 0), -30, New(9, 30)},
		{New(0, 10), -30, New(23, 40)},
	}
	for _, tt := range tests {
		if got := tt.start.Add(tt.add); got != tt.want {
			t.Errorf("%v.Add(%v) = %v, want %v", tt.start, tt.add, got, tt.want)
		}
	}
}

func TestMinutesUntil(t *testing.T) {
	tests := []struct {
		from, to TimeOfDay
		want     int
	}{
		{New(6, 0), New(6, 30), 30},
		{New(6, 30), New(6, 0), 1410},
		{New(23, 50), New(0, 10), 20},
		{New(12, 0), New(12, 0), 0},
	}
	for _, tt := range tests {
		if got := tt.from.MinutesUntil(tt.to); got != tt.want {
			t.Errorf("%v.MinutesUntil(%v) = %d, want %d", tt.from, tt.to, got, tt.want)
		}
	}
}

func TestWrapDistance(t *testing.T) {
	tests := []struct {
		a, b TimeOfDay
		want int
	}{
		{New(23, 50), New(0, 10), 20},
		{New(0, 10), New(23, 50), 20},
		{New(6, 0), New(18, 0), 720},
		{New(10, 0), New(10, 0), 0},
	}
	for _, tt := range tests {
		if got := WrapDistance(tt.a, tt.b); got != tt.want {
			t.Errorf("WrapDistance(%v, %v) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestNextAfter(t *testing.T) {
	loc := time.UTC
	now := time.Date(2026, 3, 10, 8, 30, 0, 0, loc)

	ahead := New(9, 0).NextAfter(now)
	if ahead.Day() != 10 || ahead.Hour() != 9 {
		t.Errorf("expected today 09:00, got %v", ahead)
	}

	behind := New(8, 0).NextAfter(now)
	if behind.Day() != 11 || behind.Hour() != 8 {
		t.Errorf("expected tomorrow 08:00, got %v", behind)
	}

	same := New(8, 30).NextAfter(now)
	if same.Day() != 11 {
		t.Errorf("an on-time equal to now should roll to tomorrow, got %v", same)
	}
}

func TestStringRoundTrip(t *testing.T) {
	for _, s := range []string{"00:00", "06:05", "23:59"} {
		parsed, err := Parse(s)
		if err != nil {
			t.Fatalf("Parse(%q): %v", s, err)
		}
		if parsed.String() != s {
			t.Errorf("round trip %q -> %q", s, parsed.String())
		}
	}
}
