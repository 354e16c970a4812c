package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/jhaage/swagger-test-generator/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := cli.Execute(ctx); err != nil {
		// Cobra is configured to not print errors. Ensure users still get a message.
		if msg := err.Error(); msg != "" {
			_, _ = fmt.Fprintln(os.Stderr, msg)
		}
		stop()
		os.Exit(1)
	}
}
