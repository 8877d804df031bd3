package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/de-tools/ai-foundry/pkg/runtime/terminal"
	"github.com/de-tools/ai-foundry/pkg/runtime/terminal/commands"
)

func main() {
	cli := terminal.NewCLI(terminal.Options{Output: os.Stdout})

	if err := cli.Execute(); err != nil {
		// the report already explains an invalid configuration
		if !errors.Is(err, commands.ErrInvalidConfiguration) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}
