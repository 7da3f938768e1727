package bot

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMatch(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		text    string
		want    bool
	}{
		{"exact", "paris", "paris", true},
		{"case insensitive", "paris", "PARIS", true},
		{"substring", "paris", "I think it is Paris!", true},
		{"multi line", "paris", "hmm\nmaybe paris?", true},
		{"alternation", "7|seven", "seven", true},
		{"no match", "paris", "london", false},
		{"empty pattern", "", "paris", false},
		{"empty text", "paris", "", false},
		{"broken pattern", "[", "anything", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, Match(tt.pattern, tt.text))
		})
	}
}
