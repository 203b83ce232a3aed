package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"weather-widget/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := cli.Execute(ctx); err != nil {
		code, shown := cli.IsExitError(err)
		if !shown {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			code = 1
		}
		stop()
		os.Exit(code)
	}
}
