// Package main provides the entry point for the autocomplete CLI tool.
package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/reeflective/autocomplete/cmd/autocomplete/app"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if err := app.New().Execute(ctx, os.Args[1:]); err != nil {
		app.ExitOnError(err)
	}
}
