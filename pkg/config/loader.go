package config

import (
	"bytes"
	"fmt"

	"github.com/goccy/go-yaml"
)

// Object is a configuration object that can populate its own defaults.
type Object interface {
	EnsureDefaults()
}

// Validator validates configuration data against a schema.
type Validator interface {
	Validate(data any) error
}

// Loader is a generic configuration loader that handles YAML parsing and
// schema validation for any config type T.
type Loader[T Object] struct {
	validator Validator
	newFunc   func() T
	data      []byte
}

// NewLoaderFromBytes creates a [Loader] from byte data. The newFunc
// parameter is the constructor for type T (e.g. [NewConfig]).
func NewLoaderFromBytes[T Object](data []byte, newFunc func() T, validator Validator) *Loader[T] {
	return &Loader[T]{
		data:      data,
		newFunc:   newFunc,
		validator: validator,
	}
}

// NewLoaderFromFile creates a [Loader] from a file path.
func NewLoaderFromFile[T Object](path string, newFunc func() T, validator Validator) (*Loader[T], error) {
	data, err := ReadFile(path)
	if err != nil {
		return nil, err //nolint:wrapcheck // Return the original error.
	}

	return NewLoaderFromBytes(data, newFunc, validator), nil
}

// Validate validates the configuration data against the schema.
func (l *Loader[T]) Validate() error {
	var anyConfig any

	dec := yaml.NewDecoder(bytes.NewReader(l.data), yaml.AllowDuplicateMapKey())

	err := dec.Decode(&anyConfig)
	if err != nil {
		return fmt.Errorf("decode config: %w", err)
	}

	if l.validator != nil {
		err = l.validator.Validate(anyConfig)
		if err != nil {
			return err //nolint:wrapcheck // Return the original error.
		}
	}

	return nil
}

// Load parses and returns the configuration.
//
//nolint:ireturn // Generic type parameter return is intentional.
func (l *Loader[T]) Load() (T, error) {
	cfg := l.newFunc()

	dec := yaml.NewDecoder(bytes.NewReader(l.data), yaml.AllowDuplicateMapKey())

	err := dec.Decode(cfg)
	if err != nil {
		var zero T

		return zero, fmt.Errorf("decode config: %w", err)
	}

	cfg.EnsureDefaults()

	return cfg, nil
}

// NewConfigLoaderFromFile creates a loader for the root [Config].
func NewConfigLoaderFromFile(path string) (*Loader[*Config], error) {
	return NewLoaderFromFile(path, NewConfig, DefaultValidator)
}
