package main

import (
	"os"

	"github.com/prepdeck/prepdeck-web/cmd/prepdeck-cli/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1) //nolint:forbidigo // CLI must signal failure to shell scripts
	}
}
