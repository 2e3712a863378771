package model

import (
	"math"
	"testing"
	"time"
)

func TestImageDescriptor_TitleAndCredit(t *testing.T) {
	tests := []struct {
		name      string
		copyright string
		title     string
		credit    string
	}{
		{
			name:      "standard",
			copyright: "Lighthouse at Peggy's Cove, Nova Scotia (© Jane Doe/Getty Images)",
			title:     "Lighthouse at Peggy's Cove, Nova Scotia",
			credit:    "© Jane Doe/Getty Images",
		},
		{
			name:      "no credit",
			copyright: "Just a title",
			title:     "Just a title",
			credit:    "",
		},
		{
			name:      "nested brackets",
			copyright: "Fjord (Norway) at dawn (© Someone)",
			title:     "Fjord",
			credit:    "© Someone",
		},
		{
			name:      "empty",
			copyright: "",
			title:     "",
			credit:    "",
		},
	}

	for _, test := range tests {
		d := ImageDescriptor{Copyright: test.copyright}
		if got := d.Title(); got != test.title {
			t.Errorf("%s: Title() = %q, expected %q", test.name, got, test.title)
		}
		if got := d.Credit(); got != test.credit {
			t.Errorf("%s: Credit() = %q, expected %q", test.name, got, test.credit)
		}
	}
}

func TestNewImageDescriptor(t *testing.T) {
	entry := ImageEntry{
		StartDate:     "20250102",
		URL:           "/th?id=OHR.Example_1920x1080.jpg",
		Copyright:     "Example (© Author)",
		CopyrightLink: "https://www.bing.com/search?q=example",
	}

	d := NewImageDescriptor(entry)
	if d.StartDate != entry.StartDate || d.URL != entry.URL || d.Copyright != entry.Copyright || d.CopyrightLink != entry.CopyrightLink {
		t.Errorf("Descriptor does not match entry: %+v", d)
	}

	date, err := d.Date()
	if err != nil {
		t.Fatalf("Date() returned error: %v", err)
	}
	if date.Year() != 2025 || date.Month() != time.January || date.Day() != 2 {
		t.Errorf("Unexpected date: %v", date)
	}
}

func TestIsValidStartDate(t *testing.T) {
	tests := []struct {
		key      string
		expected bool
	}{
		{"20250101", true},
		{"20241231", true},
		{"2025011", false},
		{"202501011", false},
		{"20251301", false},
		{"abcdefgh", false},
		{"", false},
	}

	for _, test := range tests {
		if got := IsValidStartDate(test.key); got != test.expected {
			t.Errorf("IsValidStartDate(%q) = %v, expected %v", test.key, got, test.expected)
		}
	}
}

func TestScheduleConfig_Interval(t *testing.T) {
	tests := []struct {
		hours    float64
		expected time.Duration
	}{
		{1.5, 90 * time.Minute},
		{0, 0},
		{-3, 0},
		{math.NaN(), 0},
		{math.Inf(1), time.Duration(math.MaxInt64)},
		{3e6, time.Duration(math.MaxInt64)},
	}

	for _, test := range tests {
		cfg := ScheduleConfig{IntervalHours: test.hours}
		if got := cfg.Interval(); got != test.expected {
			t.Errorf("Interval(%v) = %v, expected %v", test.hours, got, test.expected)
		}
	}
}
