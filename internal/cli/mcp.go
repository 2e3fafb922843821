package cli

import (
	"github.com/spf13/cobra"

	"github.com/macropower/rulekit/pkg/mcp"
)

const mcpExamples = `  # Serve over stdio:
  rulekit mcp

  # Serve over HTTP:
  rulekit mcp --address localhost:8080

  # Serve rules from a specific project:
  rulekit mcp ./my-project`

type MCPArgs struct {
	*RootArgs

	Address string
}

func NewMCPArgs(rootArgs *RootArgs) *MCPArgs {
	return &MCPArgs{
		RootArgs: rootArgs,
	}
}

func (ma *MCPArgs) AddFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&ma.Address, "address", "", "Serve over HTTP at the specified address instead of stdio")
}

func NewMCPCmd(rootArgs *RootArgs) *cobra.Command {
	ma := NewMCPArgs(rootArgs)

	cmd := &cobra.Command{
		Use:     "mcp [path]",
		Short:   "Serve rule documents over the Model Context Protocol",
		Example: mcpExamples,
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			baseDir := "."
			if len(args) > 0 {
				baseDir = args[0]
			}

			return mcp.NewServer(ma.Address, baseDir).Serve(cmd.Context())
		},
	}
	ma.AddFlags(cmd)

	bindEnvVars(cmd)

	return cmd
}
