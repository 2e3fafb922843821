// Package schema_test contains tests for the schema package's public interface.
// Tests are in a separate package to ensure we only test exported functionality.
package schema_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/macropower/rulekit/pkg/schema"
)

var testSchema = []byte(`{
	"type": "object",
	"properties": {
		"name": {"type": "string"},
		"age": {"type": "number", "minimum": 0}
	},
	"required": ["name"],
	"additionalProperties": false
}`)

func TestValidationError_Error(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		err  schema.ValidationError
		want string
	}{
		"with field": {
			err: schema.ValidationError{
				Field: "spec.rules",
				Err:   errors.New("value is required"),
			},
			want: "error at spec.rules: value is required",
		},
		"without field": {
			err: schema.ValidationError{
				Err: errors.New("value is required"),
			},
			want: "validation error: value is required",
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			got := tc.err.Error()
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestNewValidator(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		errMsg     string
		schemaData []byte
		wantErr    bool
	}{
		"valid schema": {
			schemaData: testSchema,
			wantErr:    false,
		},
		"invalid json": {
			schemaData: []byte(`{"invalid": json}`),
			wantErr:    true,
			errMsg:     "unmarshal schema",
		},
		"invalid schema": {
			schemaData: []byte(`{"type": "invalid_type"}`),
			wantErr:    true,
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			v, err := schema.NewValidator("/test.json", tc.schemaData)

			if tc.wantErr {
				require.Error(t, err)
				if tc.errMsg != "" {
					assert.Contains(t, err.Error(), tc.errMsg)
				}
				assert.Nil(t, v)
			} else {
				require.NoError(t, err)
				require.NotNil(t, v)
			}
		})
	}
}

func TestValidatorValidate(t *testing.T) {
	t.Parallel()

	v := schema.MustNewValidator("/test.json", testSchema)

	tcs := map[string]struct {
		data      any
		wantField string
		wantErr   bool
	}{
		"valid data": {
			data: map[string]any{"name": "alice", "age": 30.0},
		},
		"missing required field": {
			data:    map[string]any{"age": 30.0},
			wantErr: true,
		},
		"wrong type with field path": {
			data:      map[string]any{"name": "alice", "age": "thirty"},
			wantErr:   true,
			wantField: "age",
		},
		"unknown property": {
			data:    map[string]any{"name": "alice", "extra": true},
			wantErr: true,
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			err := v.Validate(tc.data)

			if !tc.wantErr {
				require.NoError(t, err)

				return
			}

			require.Error(t, err)

			var vErr *schema.ValidationError

			require.ErrorAs(t, err, &vErr)

			if tc.wantField != "" {
				assert.Equal(t, tc.wantField, vErr.Field)
			}
		})
	}
}

func TestMustNewValidatorPanics(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() {
		schema.MustNewValidator("/bad.json", []byte(`not json`))
	})
}
