package main

import (
	"os"

	"github.com/seabox-dev/seabox/cmd"
	"github.com/seabox-dev/seabox/internal/errors"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(errors.GetExitCode(err))
	}
}
