package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"codehunt/internal/validator/cch24"
	"codehunt/internal/validator/cli"
)

var version = "0.1.0"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := cli.Execute(ctx, "cch24-validator", version, cch24.Suite(), os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}
