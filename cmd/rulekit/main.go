// Command rulekit syncs rule, persona, and command markdown documents into
// the formats expected by AI coding tools.
package main

import (
	"context"
	"os"

	"github.com/charmbracelet/fang"

	"github.com/macropower/rulekit/internal/cli"
	"github.com/macropower/rulekit/pkg/version"
)

func main() {
	err := fang.Execute(
		context.Background(),
		cli.NewRootCmd(),
		fang.WithVersion(version.GetVersion()),
		fang.WithErrorHandler(cli.ErrorHandler),
		fang.WithNotifySignal(os.Interrupt),
	)
	if err != nil {
		os.Exit(1)
	}
}
