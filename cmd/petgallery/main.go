package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/five82/petgallery/internal/app"
)

func main() {
	os.Exit(run())
}

func run() int {
	configPath := flag.String("config", "", "config file path (optional, defaults to ~/.config/petgallery/config.toml)")
	apiURL := flag.String("api", "", "pet store base URL (optional, overrides api_url)")
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	opts := app.Options{ConfigPath: *configPath, APIURL: *apiURL}

	if err := app.Run(ctx, opts); err != nil {
		fmt.Fprintf(os.Stderr, "petgallery: %v\n", err)
		return 1
	}
	return 0
}
