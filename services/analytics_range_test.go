package services

import (
	"testing"
	"time"

	"drivefund/models"
)

func TestResolveRange(t *testing.T) {
	tests := []struct {
		name   string
		values []string
		want   models.RangeTag
	}{
		{"absent", nil, models.Range30Days},
		{"empty", []string{""}, models.Range30Days},
		{"7d", []string{"7d"}, models.Range7Days},
		{"30d", []string{"30d"}, models.Range30Days},
		{"90d", []string{"90d"}, models.Range90Days},
		{"all", []string{"all"}, models.RangeAllTime},
		{"mixed case with spaces", []string{" 90D "}, models.Range30Days},
		{"upper case all", []string{"ALL"}, models.Range30Days},
		{"upper case 7d", []string{"7D"}, models.Range30Days},
		{"padded 7d", []string{"7d "}, models.Range30Days},
		{"unknown", []string{"1y"}, models.Range30Days},
		{"numeric only", []string{"7"}, models.Range30Days},
		{"repeated", []string{"7d", "90d"}, models.Range30Days},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ResolveRange(tt.values); got != tt.want {
				t.Errorf("ResolveRange(%q) = %q, want %q", tt.values, got, tt.want)
			}
		})
	}
}

func TestBuildWindow(t *testing.T) {
	now := time.Date(2025, 3, 31, 8, 30, 0, 0, time.FixedZone("WAT", 3600))

	tests := []struct {
		tag       models.RangeTag
		wantRange models.RangeTag
		wantStart time.Time
	}{
		{models.Range7Days, models.Range7Days, time.Date(2025, 3, 24, 7, 30, 0, 0, time.UTC)},
		{models.Range30Days, models.Range30Days, time.Date(2025, 3, 1, 7, 30, 0, 0, time.UTC)},
		{models.Range90Days, models.Range90Days, time.Date(2024, 12, 31, 7, 30, 0, 0, time.UTC)},
		{"bogus", models.Range30Days, time.Date(2025, 3, 1, 7, 30, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(string(tt.tag), func(t *testing.T) {
			window := BuildWindow(tt.tag, now)
			if window.Range != tt.wantRange {
				t.Fatalf("range = %q, want %q", window.Range, tt.wantRange)
			}
			if window.StartDate == nil || !window.StartDate.Equal(tt.wantStart) {
				t.Fatalf("start = %v, want %v", window.StartDate, tt.wantStart)
			}
		})
	}
}

func TestBuildWindowAllTimeIsUnbounded(t *testing.T) {
	window := BuildWindow(models.RangeAllTime, time.Now())
	if window.Range != models.RangeAllTime || window.StartDate != nil {
		t.Fatalf("window = %+v, want unbounded all", window)
	}
}
