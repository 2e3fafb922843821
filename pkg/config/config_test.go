package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/macropower/rulekit/pkg/config"
	"github.com/macropower/rulekit/pkg/include"
)

func TestNewConfig(t *testing.T) {
	t.Parallel()

	c := config.NewConfig()

	assert.Equal(t, "rulekit.jacobcolvin.com/v1beta1", c.APIVersion)
	assert.Equal(t, "Configuration", c.Kind)
	assert.Equal(t, config.DefaultRulePatterns, c.Rules.Patterns)
	assert.Equal(t, include.DefaultMaxDepth, c.MaxDepth())
	assert.Equal(t, []string{"claude", "cursor", "factory"}, c.Targets)
}

func TestEnsureDefaults(t *testing.T) {
	t.Parallel()

	depth := 3
	c := &config.Config{
		Rules:   &config.RulesConfig{Patterns: []string{"docs/**/*.md"}},
		Include: &config.IncludeConfig{MaxDepth: &depth},
		Targets: []string{"claude"},
	}
	c.EnsureDefaults()

	assert.Equal(t, []string{"docs/**/*.md"}, c.Rules.Patterns, "configured patterns are kept")
	assert.Equal(t, 3, c.MaxDepth(), "configured depth is kept")
	assert.Equal(t, []string{"claude"}, c.Targets, "configured targets are kept")
}

func TestMaxDepthZero(t *testing.T) {
	t.Parallel()

	// maxDepth: 0 is a valid configuration that disables includes; it must
	// not be replaced by the default.
	depth := 0
	c := &config.Config{Include: &config.IncludeConfig{MaxDepth: &depth}}
	c.EnsureDefaults()

	assert.Equal(t, 0, c.MaxDepth())
}

func TestLoaderLoad(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		data    string
		check   func(t *testing.T, c *config.Config)
		wantErr bool
	}{
		{
			name: "full config",
			data: `apiVersion: rulekit.jacobcolvin.com/v1beta1
kind: Configuration
rules:
  patterns:
    - docs/**/*.md
include:
  maxDepth: 2
targets:
  - cursor
vars:
  env: prod
`,
			check: func(t *testing.T, c *config.Config) {
				t.Helper()
				assert.Equal(t, []string{"docs/**/*.md"}, c.Rules.Patterns)
				assert.Equal(t, 2, c.MaxDepth())
				assert.Equal(t, []string{"cursor"}, c.Targets)
				assert.Equal(t, map[string]string{"env": "prod"}, c.Vars)
			},
		},
		{
			name: "minimal config gets defaults",
			data: "apiVersion: rulekit.jacobcolvin.com/v1beta1\nkind: Configuration\n",
			check: func(t *testing.T, c *config.Config) {
				t.Helper()
				assert.Equal(t, config.DefaultRulePatterns, c.Rules.Patterns)
				assert.Equal(t, include.DefaultMaxDepth, c.MaxDepth())
			},
		},
		{
			name:    "malformed yaml",
			data:    "apiVersion: [unclosed",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cl := config.NewLoaderFromBytes([]byte(tt.data), config.NewConfig, config.DefaultValidator)

			c, err := cl.Load()

			if tt.wantErr {
				require.Error(t, err)

				return
			}

			require.NoError(t, err)
			tt.check(t, c)
		})
	}
}

func TestLoaderValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		data    string
		wantErr bool
	}{
		{
			name:    "default config is valid",
			data:    "apiVersion: rulekit.jacobcolvin.com/v1beta1\nkind: Configuration\n",
			wantErr: false,
		},
		{
			name:    "wrong apiVersion",
			data:    "apiVersion: example.com/v1\nkind: Configuration\n",
			wantErr: true,
		},
		{
			name:    "wrong kind",
			data:    "apiVersion: rulekit.jacobcolvin.com/v1beta1\nkind: Cluster\n",
			wantErr: true,
		},
		{
			name:    "unknown target",
			data:    "apiVersion: rulekit.jacobcolvin.com/v1beta1\nkind: Configuration\ntargets: [windsurf]\n",
			wantErr: true,
		},
		{
			name:    "negative maxDepth",
			data:    "apiVersion: rulekit.jacobcolvin.com/v1beta1\nkind: Configuration\ninclude: {maxDepth: -1}\n",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cl := config.NewLoaderFromBytes([]byte(tt.data), config.NewConfig, config.DefaultValidator)

			err := cl.Validate()

			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestFindFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	nested := filepath.Join(dir, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	configPath := filepath.Join(dir, "rulekit.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("kind: Configuration\n"), 0o600))

	// Walks up from a nested directory to the project root.
	found, err := config.FindFile(nested)
	require.NoError(t, err)
	assert.Equal(t, configPath, found)
}

func TestFindFilePrecedence(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "rulekit.yaml"), []byte("a\n"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".rulekit.yaml"), []byte("b\n"), 0o600))

	found, err := config.FindFile(dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "rulekit.yaml"), found, "rulekit.yaml wins over .rulekit.yaml")
}

func TestWriteDefault(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "rulekit.yaml")

	require.NoError(t, config.WriteDefault(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "apiVersion: rulekit.jacobcolvin.com/v1beta1")

	// The written default must itself load and validate.
	cl, err := config.NewConfigLoaderFromFile(path)
	require.NoError(t, err)
	require.NoError(t, cl.Validate())

	c, err := cl.Load()
	require.NoError(t, err)
	assert.Equal(t, config.DefaultRulePatterns, c.Rules.Patterns)

	// An existing file is left untouched.
	require.NoError(t, os.WriteFile(path, []byte("custom: true\n"), 0o600))
	require.NoError(t, config.WriteDefault(path))

	data, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "custom: true\n", string(data))
}

func TestLoadOrDefault(t *testing.T) {
	t.Parallel()

	t.Run("with config file", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "rulekit.yaml"),
			[]byte("apiVersion: rulekit.jacobcolvin.com/v1beta1\nkind: Configuration\ntargets: [claude]\n"), 0o600))

		c, err := config.LoadOrDefault(dir)
		require.NoError(t, err)
		assert.Equal(t, []string{"claude"}, c.Targets)
	})

	t.Run("invalid config file", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "rulekit.yaml"),
			[]byte("apiVersion: bogus\nkind: Configuration\n"), 0o600))

		_, err := config.LoadOrDefault(dir)
		require.Error(t, err)
	})
}
