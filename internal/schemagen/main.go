// Command schemagen generates the JSON schema for the rulekit configuration.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/invopop/jsonschema"

	"github.com/macropower/rulekit/pkg/config"
)

func main() {
	out := flag.String("o", "config.v1beta1.json", "output path for the generated schema")
	flag.Parse()

	err := run(*out)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(out string) error {
	r := &jsonschema.Reflector{
		ExpandedStruct: false,
		DoNotReference: false,
	}

	schema := r.Reflect(&config.Config{})
	schema.ID = "https://rulekit.jacobcolvin.com/config.v1beta1.json"
	schema.Title = "Configuration"

	data, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal schema: %w", err)
	}

	err = os.WriteFile(out, append(data, '\n'), 0o600)
	if err != nil {
		return fmt.Errorf("write schema: %w", err)
	}

	return nil
}
