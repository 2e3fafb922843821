package cli

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/macropower/rulekit/pkg/sync"
)

const validateExamples = `  # Validate rule documents in the current directory:
  rulekit validate

  # Validate a specific project:
  rulekit validate ./my-project`

type ValidateArgs struct {
	*RootArgs

	ConfigPath string
}

func NewValidateArgs(rootArgs *RootArgs) *ValidateArgs {
	return &ValidateArgs{
		RootArgs: rootArgs,
	}
}

func (va *ValidateArgs) AddFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&va.ConfigPath, "config", "", "Path to the rulekit configuration file")

	err := cmd.MarkFlagFilename("config", "yaml", "yml")
	if err != nil {
		panic(fmt.Errorf("mark config flag: %w", err))
	}
}

// NewValidateCmd runs the full pipeline without writing any outputs, so that
// include cycles, bad conditions, and broken frontmatter surface as errors.
func NewValidateCmd(rootArgs *RootArgs) *cobra.Command {
	va := NewValidateArgs(rootArgs)

	cmd := &cobra.Command{
		Use:     "validate [path]",
		Short:   "Validate rule documents without writing outputs",
		Example: validateExamples,
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			baseDir := "."
			if len(args) > 0 {
				baseDir = args[0]
			}

			runner, err := newRunner(va.ConfigPath, baseDir, nil, sync.WithDryRun())
			if err != nil {
				return err
			}

			result, err := runner.Run(cmd.Context())
			if err != nil {
				return err
			}

			for _, doc := range result.Documents {
				slog.Info("validated document",
					slog.String("path", doc.Path),
					slog.Bool("included", doc.Included),
				)
			}

			return nil
		},
	}
	va.AddFlags(cmd)

	bindEnvVars(cmd)

	return cmd
}
