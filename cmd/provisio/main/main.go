package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/arthur-debert/provisio/cmd/provisio"
	"github.com/arthur-debert/provisio/pkg/ui"
)

func main() {
	rootCmd := provisio.NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		// Failed runs have already been rendered
		var exitErr *provisio.ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.Code)
		}

		fmt.Fprintln(os.Stderr, ui.ErrorStyle.Render(fmt.Sprintf("Error: %v", err)))
		os.Exit(1)
	}
}
