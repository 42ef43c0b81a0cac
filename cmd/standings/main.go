package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/lk16/desdemona/internal/client"
	"github.com/lk16/desdemona/internal/config"
	"github.com/lk16/desdemona/internal/ui"
)

func main() {
	config.SetLogLevel()

	recent := flag.Int("recent", 5, "number of recent matches to show")
	flag.Parse()

	c := client.NewClient(config.LoadClientConfig())
	ctx := context.Background()

	standings, err := c.Standings(ctx)
	if err != nil {
		slog.Error("Failed to load standings", "error", err)
		os.Exit(1)
	}

	if len(standings) == 0 {
		fmt.Println("No matches played yet")
		return
	}

	ui.PrintCentered(ui.Standings(standings))

	if *recent <= 0 {
		return
	}

	results, err := c.Matches(ctx, *recent, flag.Args()...)
	if err != nil {
		slog.Error("Failed to load matches", "error", err)
		os.Exit(1)
	}

	for i := range results {
		ui.PrintCentered(ui.Result(&results[i]))
	}
}
