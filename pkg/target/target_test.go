package target_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/macropower/rulekit/pkg/target"
)

func TestParse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		want    target.Target
		wantErr bool
	}{
		{
			name:  "claude",
			input: "claude",
			want:  target.Claude,
		},
		{
			name:  "cursor",
			input: "cursor",
			want:  target.Cursor,
		},
		{
			name:  "factory",
			input: "factory",
			want:  target.Factory,
		},
		{
			name:  "mixed case",
			input: "Claude",
			want:  target.Claude,
		},
		{
			name:  "surrounding whitespace",
			input: "  cursor ",
			want:  target.Cursor,
		},
		{
			name:    "unknown",
			input:   "copilot",
			wantErr: true,
		},
		{
			name:    "empty",
			input:   "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := target.Parse(tt.input)

			if tt.wantErr {
				require.Error(t, err)
				require.ErrorIs(t, err, target.ErrUnknownTarget)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestParseAll(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   []string
		want    []target.Target
		wantErr bool
	}{
		{
			name:  "empty selects all",
			input: nil,
			want:  target.All,
		},
		{
			name:  "subset",
			input: []string{"cursor", "claude"},
			want:  []target.Target{target.Cursor, target.Claude},
		},
		{
			name:    "one invalid fails the whole parse",
			input:   []string{"claude", "zed"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := target.ParseAll(tt.input)

			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestIsValid(t *testing.T) {
	t.Parallel()

	assert.True(t, target.IsValid("claude"))
	assert.True(t, target.IsValid("factory"))
	assert.False(t, target.IsValid("Claude"))
	assert.False(t, target.IsValid(""))
	assert.False(t, target.IsValid("windsurf"))
}

func TestNames(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []string{"claude", "cursor", "factory"}, target.Names())
}
