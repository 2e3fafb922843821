package frontmatter_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/macropower/rulekit/pkg/frontmatter"
)

func TestSplit(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name            string
		content         string
		wantDescription string
		wantWhen        string
		wantBody        string
		wantErr         bool
	}{
		{
			name:            "description and when",
			content:         "---\ndescription: React rules\nwhen: npm:react\n---\n# Rules\n",
			wantDescription: "React rules",
			wantWhen:        "npm:react",
			wantBody:        "# Rules\n",
		},
		{
			name:     "no frontmatter",
			content:  "# Just a document\n",
			wantBody: "# Just a document\n",
		},
		{
			name:     "empty frontmatter",
			content:  "---\n---\nbody",
			wantBody: "body",
		},
		{
			name:     "opening delimiter without closing is body",
			content:  "---\ndescription: dangling\n",
			wantBody: "---\ndescription: dangling\n",
		},
		{
			name:     "delimiter not on first line is body",
			content:  "intro\n---\nkey: value\n---\n",
			wantBody: "intro\n---\nkey: value\n---\n",
		},
		{
			name:    "invalid yaml",
			content: "---\n\t{not yaml\n---\nbody",
			wantErr: true,
		},
		{
			name:     "non-string when is ignored",
			content:  "---\nwhen: true\n---\nbody",
			wantBody: "body",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			fm, body, err := frontmatter.Split(tt.content)

			if tt.wantErr {
				require.Error(t, err)

				return
			}

			require.NoError(t, err)
			require.NotNil(t, fm)
			assert.Equal(t, tt.wantDescription, fm.Description)
			assert.Equal(t, tt.wantWhen, fm.When)
			assert.Equal(t, tt.wantBody, body)
		})
	}
}

func TestSplitRaw(t *testing.T) {
	t.Parallel()

	fm, _, err := frontmatter.Split("---\ndescription: d\ncustom: 42\n---\nbody")
	require.NoError(t, err)

	assert.Equal(t, "d", fm.Raw["description"])
	assert.EqualValues(t, 42, fm.Raw["custom"])
}

func TestStrip(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		want    string
	}{
		{
			name:    "removes prologue",
			content: "---\nwhen: npm:react\n---\nbody\n",
			want:    "body\n",
		},
		{
			name:    "no frontmatter unchanged",
			content: "body\n",
			want:    "body\n",
		},
		{
			name:    "malformed yaml still stripped",
			content: "---\n\t{not yaml\n---\nbody",
			want:    "body",
		},
		{
			name:    "unterminated prologue unchanged",
			content: "---\nkey: value\n",
			want:    "---\nkey: value\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, frontmatter.Strip(tt.content))
		})
	}
}

func TestHas(t *testing.T) {
	t.Parallel()

	assert.True(t, frontmatter.Has("---\na: 1\n---\n"))
	assert.False(t, frontmatter.Has("body"))
	assert.False(t, frontmatter.Has("---\nunterminated"))
}
