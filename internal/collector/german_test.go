package collector

import (
	"testing"
	"time"
)

func TestParseGermanDate(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Montag, 1. Januar 2024", "2024-01-01"},
		{"Dienstag, 02. Januar 2024", "2024-01-02"},
		{"montag, 4. märz 2024", "2024-03-04"},
		{"Montag, 4. Maerz 2024", "2024-03-04"},
		{"Freitag, 3. Januar 2025", "2025-01-03"},
		{"  Sonntag, 29. Dezember 2024 ", "2024-12-29"},
	}
	for _, tt := range tests {
		got, err := ParseGermanDate(tt.in)
		if err != nil {
			t.Errorf("%q: unexpected error: %v", tt.in, err)
			continue
		}
		if got.Format("2006-01-02") != tt.want {
			t.Errorf("%q: expected %s, got %s", tt.in, tt.want, got.Format("2006-01-02"))
		}
		if got.Location() != time.UTC {
			t.Errorf("%q: expected UTC date", tt.in)
		}
	}
}

func TestParseGermanDate_Invalid(t *testing.T) {
	for _, in := range []string{
		"",
		"2024-01-01",
		"Montag 1. Januar 2024",
		"Dienstag, 1. Januar 2024", // 2024-01-01 is a Monday
		"Montag, 1. Janvier 2024",
		"Funtag, 1. Januar 2024",
		"Donnerstag, 31. Februar 2024",
		"Montag, x. Januar 2024",
	} {
		if _, err := ParseGermanDate(in); err == nil {
			t.Errorf("%q: expected error", in)
		}
	}
}

func TestParseNumber(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"1,0850", 1.085},
		{"1.234,5", 1234.5},
		{"1234.5", 1234.5},
		{" 42 ", 42},
	}
	for _, tt := range tests {
		got, err := ParseNumber(tt.in)
		if err != nil {
			t.Errorf("%q: unexpected error: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("%q: expected %v, got %v", tt.in, tt.want, got)
		}
	}
	if _, err := ParseNumber("n/a"); err == nil {
		t.Error("expected error for non-numeric input")
	}
}
