package main

import (
	"log/slog"
	"os"

	"github.com/bjaus/gwrite/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		slog.Error("gwrite failed", "error", err)
		os.Exit(cli.ExitCode(err))
	}
}
