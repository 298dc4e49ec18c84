package domain

import "testing"

func TestFormatRuntime(t *testing.T) {
	tests := []struct {
		minutes  int
		expected string
	}{
		{0, "N/A"},
		{-10, "N/A"},
		{45, "45m"},
		{60, "1h 0m"},
		{125, "2h 5m"},
		{180, "3h 0m"},
	}

	for _, tt := range tests {
		if got := FormatRuntime(tt.minutes); got != tt.expected {
			t.Errorf("FormatRuntime(%d) = %q, want %q", tt.minutes, got, tt.expected)
		}
	}
}

func TestFormatCurrency(t *testing.T) {
	tests := []struct {
		amount   int64
		expected string
	}{
		{0, "N/A"},
		{-500, "N/A"},
		{999, "$999"},
		{1_500, "$2K"},
		{250_000, "$250K"},
		{5_000_000, "$5M"},
		{2_500_000, "$3M"},
		{1_000_000_000, "$1B"},
		{1_200_000_000, "$1.2B"},
	}

	for _, tt := range tests {
		if got := FormatCurrency(tt.amount); got != tt.expected {
			t.Errorf("FormatCurrency(%d) = %q, want %q", tt.amount, got, tt.expected)
		}
	}
}

func TestFirstNonEmpty(t *testing.T) {
	if got := FirstNonEmpty("", "", "third"); got != "third" {
		t.Errorf("expected %q, got %q", "third", got)
	}
	if got := FirstNonEmpty("first", "second"); got != "first" {
		t.Errorf("expected %q, got %q", "first", got)
	}
	if got := FirstNonEmpty("", ""); got != "" {
		t.Errorf("expected empty string, got %q", got)
	}
	if got := FirstNonEmpty("", "poster.jpg", PlaceholderPoster); got != "poster.jpg" {
		t.Errorf("expected %q, got %q", "poster.jpg", got)
	}
}
