package players

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseTimestamp(t *testing.T) {
	loc := time.FixedZone("ICT", 7*60*60)

	tests := []struct {
		in   string
		want time.Time
		ok   bool
	}{
		{"2025-03-14T09:15:00Z", time.Date(2025, 3, 14, 9, 15, 0, 0, time.UTC), true},
		{"2025-03-14T09:15:00.123Z", time.Date(2025, 3, 14, 9, 15, 0, 123000000, time.UTC), true},
		{"2025-03-14T16:15:00+07:00", time.Date(2025, 3, 14, 9, 15, 0, 0, time.UTC), true},
		{"2025-03-14T16:15:00", time.Date(2025, 3, 14, 16, 15, 0, 0, loc), true},
		{"2025-03-14 16:15:00", time.Date(2025, 3, 14, 16, 15, 0, 0, loc), true},
		{"3/14/2025 16:15:00", time.Date(2025, 3, 14, 16, 15, 0, 0, loc), true},
		{"2025-03-14", time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC), true},
		{"  2025-03-14T09:15:00Z ", time.Date(2025, 3, 14, 9, 15, 0, 0, time.UTC), true},
		{"", time.Time{}, false},
		{"yesterday", time.Time{}, false},
		{"2025-13-40", time.Time{}, false},
	}

	for _, tt := range tests {
		got, ok := ParseTimestamp(tt.in, loc)
		assert.Equal(t, tt.ok, ok, tt.in)
		if tt.ok {
			assert.True(t, tt.want.Equal(got), "%q: got %v want %v", tt.in, got, tt.want)
		}
	}
}
