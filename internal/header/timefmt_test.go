package header

import (
	"testing"
	"time"
)

func TestFormatTime(t *testing.T) {
	ts := time.Date(2024, time.March, 5, 7, 8, 9, 0, time.UTC)

	tests := []struct {
		name    string
		pattern string
		want    string
	}{
		{"default pattern", DefaultDateFormat, "2024-03-05 07:08:09"},
		{"compact", "YYYYMMDD", "20240305"},
		{"slashes", "DD/MM/YYYY HH:mm", "05/03/2024 07:08"},
		{"literal text passes through", "at HH:mm:ss!", "at 07:08:09!"},
		{"lowercase year is not a token", "yyyy", "yyyy"},
		{"leftover character", "YYYYY", "2024Y"},
		{"single letters untouched", "Y-M-D", "Y-M-D"},
		{"empty pattern", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatTime(ts, tt.pattern); got != tt.want {
				t.Fatalf("FormatTime(%q) = %q, want %q", tt.pattern, got, tt.want)
			}
		})
	}
}

func TestFormatTime_TwoDigitFields(t *testing.T) {
	ts := time.Date(2023, time.December, 31, 23, 59, 58, 0, time.UTC)
	if got := FormatTime(ts, DefaultDateFormat); got != "2023-12-31 23:59:58" {
		t.Fatalf("FormatTime = %q", got)
	}
}
