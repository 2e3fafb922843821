// Package config loads and validates the rulekit configuration file.
package config

import (
	_ "embed"

	"github.com/macropower/rulekit/pkg/include"
	"github.com/macropower/rulekit/pkg/schema"
	"github.com/macropower/rulekit/pkg/target"
)

//go:generate go run ../../internal/schemagen -o config.v1beta1.json

var (
	//go:embed config.yaml
	defaultConfigYAML []byte

	//go:embed config.v1beta1.json
	schemaJSON []byte

	// ValidAPIVersions contains the accepted apiVersion values.
	ValidAPIVersions = []string{
		"rulekit.jacobcolvin.com/v1beta1",
	}

	// ValidKinds contains the accepted kind values.
	ValidKinds = []string{
		"Configuration",
	}

	// DefaultValidator validates configuration against the JSON schema.
	DefaultValidator = schema.MustNewValidator("/config.v1beta1.json", schemaJSON)

	// DefaultRulePatterns locate rule documents when none are configured.
	DefaultRulePatterns = []string{"rules/**/*.md"}
)

// Config is the root configuration object.
type Config struct {
	// Rules configures rule document discovery.
	Rules *RulesConfig `json:"rules,omitempty" jsonschema:"title=Rules"`
	// Include configures `@include` directive resolution.
	Include *IncludeConfig `json:"include,omitempty" jsonschema:"title=Include"`
	// Vars defines project-level variables for `var:` condition terms.
	Vars map[string]string `json:"vars,omitempty" jsonschema:"title=Variables"`
	// APIVersion specifies the API version for this configuration.
	APIVersion string `json:"apiVersion" jsonschema:"title=API Version"`
	// Kind defines the type of configuration.
	Kind string `json:"kind" jsonschema:"title=Kind"`
	// Targets lists the platforms to generate for. Empty means all.
	Targets []string `json:"targets,omitempty" jsonschema:"title=Targets"`
}

// RulesConfig configures rule document discovery.
type RulesConfig struct {
	// Patterns are doublestar globs, relative to the project root.
	Patterns []string `json:"patterns,omitempty" jsonschema:"title=Patterns"`
}

// IncludeConfig configures include resolution.
type IncludeConfig struct {
	// MaxDepth caps include nesting; 0 disables includes entirely.
	MaxDepth *int `json:"maxDepth,omitempty" jsonschema:"title=Max Depth,minimum=0"`
}

// NewConfig creates a [Config] with default values.
func NewConfig() *Config {
	c := &Config{
		APIVersion: ValidAPIVersions[0],
		Kind:       ValidKinds[0],
	}
	c.EnsureDefaults()

	return c
}

// EnsureDefaults initializes nil fields to their default values.
func (c *Config) EnsureDefaults() {
	if c.Rules == nil {
		c.Rules = &RulesConfig{}
	}
	if len(c.Rules.Patterns) == 0 {
		c.Rules.Patterns = DefaultRulePatterns
	}

	if c.Include == nil {
		c.Include = &IncludeConfig{}
	}
	if c.Include.MaxDepth == nil {
		depth := include.DefaultMaxDepth
		c.Include.MaxDepth = &depth
	}

	if len(c.Targets) == 0 {
		c.Targets = target.Names()
	}
}

// MaxDepth returns the configured include depth limit.
func (c *Config) MaxDepth() int {
	if c.Include == nil || c.Include.MaxDepth == nil {
		return include.DefaultMaxDepth
	}

	return *c.Include.MaxDepth
}
