package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/fatih/color"

	"communityClient/cmd/app"
	"communityClient/internal/config"
)

func main() {
	// setting up config
	cfg := config.LoadConfig()

	db, h, err := app.App(cfg)
	if err != nil {
		color.New(color.FgHiRed, color.Bold).Fprintf(os.Stderr, "community: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err = h.RootCmd().ExecuteContext(ctx)
	stop()

	if closeErr := db.CloseDB(); closeErr != nil {
		fmt.Fprintf(os.Stderr, "community: closing session database: %v\n", closeErr)
	}

	if err != nil {
		os.Exit(1)
	}
}
