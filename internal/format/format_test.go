package format

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestInitials(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"two words", "ada lovelace", "AL"},
		{"three words", "Grace Brewster Hopper", "GB"},
		{"one word", "linus", "L"},
		{"blank", "   ", "U"},
		{"unicode", "élodie ünal", "ÉÜ"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Initials(tt.in))
		})
	}
}

func TestRelativeTo(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, "", RelativeTo(time.Time{}, now))
	assert.Equal(t, "just now", RelativeTo(now, now))
	assert.Equal(t, "3 minutes ago", RelativeTo(now.Add(-3*time.Minute), now))
	assert.Equal(t, "2 hours ago", RelativeTo(now.Add(-2*time.Hour), now))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "hello", Truncate("hello", 10))
	assert.Equal(t, "hel…", Truncate("hello", 4))
	assert.Equal(t, "hello", Truncate("hello", 0))
}

func TestCharCount(t *testing.T) {
	assert.Equal(t, "5/1,000", CharCount("hello", 1000))
}
