package dateutil

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestParseDateFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		format  string
		want    string
		wantErr error
	}{
		// Tokens
		{"YYYY", "YYYY", "2006", nil},
		{"YY", "YY", "06", nil},
		{"MMMM", "MMMM", "January", nil},
		{"MMM", "MMM", "Jan", nil},
		{"MM", "MM", "01", nil},
		{"M", "M", "1", nil},
		{"DD", "DD", "02", nil},
		{"D", "D", "2", nil},
		// Combined formats
		{"iso", "YYYY-MM-DD", "2006-01-02", nil},
		{"european", "DD/MM/YYYY", "02/01/2006", nil},
		{"long", "MMMM D, YYYY", "January 2, 2006", nil},
		{"greedy match", "MMMMYYYY", "January2006", nil},
		// Literals
		{"bracket escape", "[Week of] D MMM", "Week of 2 Jan", nil},
		{"literal characters kept", "YYYY.MM.DD", "2006.01.02", nil},
		// Errors
		{"empty", "", "", ErrInvalidDateFormat},
		{"unclosed bracket", "[Date YYYY", "", ErrInvalidDateFormat},
		{"too long", strings.Repeat("Y", MaxDateFormatLength+1), "", ErrInvalidDateFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := ParseDateFormat(tt.format)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("ParseDateFormat(%q) error = %v, want %v", tt.format, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseDateFormat(%q) = %q, want %q", tt.format, got, tt.want)
			}
		})
	}
}

func TestResolveCreated(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 3, 15, 10, 30, 45, 123, time.FixedZone("CET", 3600))
	day := func(y int, m time.Month, d int) time.Time { return time.Date(y, m, d, 0, 0, 0, 0, time.UTC) }

	tests := []struct {
		name    string
		value   string
		format  string
		want    time.Time
		wantErr error
	}{
		{"empty is zero", "", "", time.Time{}, nil},
		{"blank is zero", "   ", "", time.Time{}, nil},
		{"auto is now in UTC", "auto", "", time.Date(2024, 3, 15, 9, 30, 45, 0, time.UTC), nil},
		{"AUTO is case insensitive", "AUTO", "us", time.Date(2024, 3, 15, 9, 30, 45, 0, time.UTC), nil},
		{"default format", "2024-01-31", "", day(2024, 1, 31), nil},
		{"preset european", "31/01/2024", "european", day(2024, 1, 31), nil},
		{"preset is case insensitive", "01/31/2024", "US", day(2024, 1, 31), nil},
		{"preset long", "January 5, 2024", "long", day(2024, 1, 5), nil},
		{"custom tokens", "2024.01.05", "YYYY.MM.DD", day(2024, 1, 5), nil},
		{"value does not match", "31/01/2024", "", time.Time{}, ErrInvalidDate},
		{"impossible day", "2024-02-30", "", time.Time{}, ErrInvalidDate},
		{"bad format", "2024", "[YYYY", time.Time{}, ErrInvalidDateFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := ResolveCreated(tt.value, tt.format, now)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("ResolveCreated(%q, %q) error = %v, want %v", tt.value, tt.format, err, tt.wantErr)
			}
			if !got.Equal(tt.want) {
				t.Errorf("ResolveCreated(%q, %q) = %v, want %v", tt.value, tt.format, got, tt.want)
			}
		})
	}
}
