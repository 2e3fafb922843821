package cli

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/macropower/rulekit/pkg/config"
	"github.com/macropower/rulekit/pkg/sync"
	"github.com/macropower/rulekit/pkg/target"
)

const generateExamples = `  # Generate outputs for the current directory:
  rulekit generate

  # Generate outputs for a specific project:
  rulekit generate ./my-project

  # Generate for a single tool:
  rulekit generate --target cursor

  # Watch for changes and regenerate:
  rulekit generate --watch

  # Write the default configuration file and exit:
  rulekit generate --write-config`

type GenerateArgs struct {
	*RootArgs

	ConfigPath  string
	Targets     []string
	Watch       bool
	WriteConfig bool
}

func NewGenerateArgs(rootArgs *RootArgs) *GenerateArgs {
	return &GenerateArgs{
		RootArgs: rootArgs,
	}
}

func (ga *GenerateArgs) AddFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&ga.ConfigPath, "config", "", "Path to the rulekit configuration file")
	cmd.Flags().StringSliceVarP(&ga.Targets, "target", "t", nil,
		fmt.Sprintf("Targets to generate, any of: %s", target.Names()))
	cmd.Flags().BoolVarP(&ga.Watch, "watch", "w", false, "Watch for changes and regenerate")
	cmd.Flags().BoolVar(&ga.WriteConfig, "write-config", false, "Write the default configuration file and exit")

	err := cmd.MarkFlagFilename("config", "yaml", "yml")
	if err != nil {
		panic(fmt.Errorf("mark config flag: %w", err))
	}

	err = cmd.RegisterFlagCompletionFunc("target",
		cobra.FixedCompletions(target.Names(), cobra.ShellCompDirectiveNoFileComp),
	)
	if err != nil {
		panic(err)
	}
}

func NewGenerateCmd(rootArgs *RootArgs) *cobra.Command {
	ga := NewGenerateArgs(rootArgs)

	cmd := &cobra.Command{
		Use:     "generate [path]",
		Short:   "Generate tool-specific outputs from rule documents",
		Example: generateExamples,
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			baseDir := "."
			if len(args) > 0 {
				baseDir = args[0]
			}

			return generate(cmd, ga, baseDir)
		},
	}
	ga.AddFlags(cmd)

	bindEnvVars(cmd)

	return cmd
}

func generate(cmd *cobra.Command, ga *GenerateArgs, baseDir string) error {
	if ga.WriteConfig {
		path := ga.ConfigPath
		if path == "" {
			path = filepath.Join(baseDir, config.FileNames[0])
		}

		err := config.WriteDefault(path)
		if err != nil {
			return fmt.Errorf("write config: %w", err)
		}

		slog.Info("wrote configuration", slog.String("path", path))

		return nil
	}

	runner, err := newRunner(ga.ConfigPath, baseDir, ga.Targets)
	if err != nil {
		return err
	}

	ctx := cmd.Context()

	if ga.Watch {
		watcher, err := sync.NewWatcher(runner)
		if err != nil {
			return fmt.Errorf("create watcher: %w", err)
		}
		defer watcher.Close() //nolint:errcheck // Best effort.

		return watcher.Watch(ctx)
	}

	result, err := runner.Run(ctx)
	if err != nil {
		return err
	}

	for _, path := range result.Written() {
		slog.Info("wrote output", slog.String("path", path))
	}

	return nil
}

// newRunner loads configuration and constructs a [sync.Runner] for baseDir.
// Targets given on the command line override the configured targets.
func newRunner(configPath, baseDir string, targets []string, opts ...sync.RunnerOpt) (*sync.Runner, error) {
	cfg, err := loadConfig(configPath, baseDir)
	if err != nil {
		return nil, err
	}

	if len(targets) > 0 {
		ts, err := target.ParseAll(targets)
		if err != nil {
			return nil, err
		}

		opts = append(opts, sync.WithTargets(ts))
	}

	runner, err := sync.NewRunner(baseDir, cfg, opts...)
	if err != nil {
		return nil, fmt.Errorf("create runner: %w", err)
	}

	return runner, nil
}

func loadConfig(configPath, baseDir string) (*config.Config, error) {
	if configPath == "" {
		cfg, err := config.LoadOrDefault(baseDir)
		if err != nil {
			return nil, fmt.Errorf("load config: %w", err)
		}

		return cfg, nil
	}

	loader, err := config.NewConfigLoaderFromFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	cfg, err := loader.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	return cfg, nil
}
