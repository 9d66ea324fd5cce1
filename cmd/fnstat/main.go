package main

import (
	"context"
	"fmt"
	"os"

	"github.com/kbukum/fnkit/internal/fnstat"
)

// SIGINT and SIGTERM are handled by bootstrap.App.RunTask.
func main() {
	if err := fnstat.Execute(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "fnstat:", err)
		os.Exit(fnstat.ExitCode(err))
	}
}
