package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPromptConfirmer(t *testing.T) {
	tests := []struct {
		input     string
		value     bool
		cancelled bool
	}{
		{"y\n", true, false},
		{"YES\n", true, false},
		{"yes", true, false},
		{"n\n", false, false},
		{"\n", false, false},
		{"maybe\n", false, false},
		{"", false, true},
	}

	for _, tt := range tests {
		t.Run(strings.TrimSpace(tt.input), func(t *testing.T) {
			var out bytes.Buffer
			answer, err := newPromptConfirmer(strings.NewReader(tt.input), &out).Confirm("Delete it?")

			require.NoError(t, err)
			assert.Equal(t, tt.value, answer.Value)
			assert.Equal(t, tt.cancelled, answer.Cancelled)
			assert.True(t, strings.HasPrefix(out.String(), "Delete it? [y/N]: "))
		})
	}
}
