package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/lk16/desdemona/internal/arena"
	"github.com/lk16/desdemona/internal/config"
	"github.com/lk16/desdemona/internal/othello"
	"github.com/lk16/desdemona/internal/repository"
	"github.com/lk16/desdemona/internal/services"
	"github.com/lk16/desdemona/internal/ui"
)

var titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FFD700"))

func main() {
	config.SetLogLevel()

	black := flag.String("black", "alphabeta", "configuration of the first player, black in the first match")
	white := flag.String("white", "greedy", "configuration of the second player, white in the first match")
	matches := flag.Int("n", 10, "number of matches, colors alternate")
	parallelism := flag.Int("parallelism", 0, "number of matches played at the same time, zero means one per CPU")
	moveTimeout := flag.Duration("timeout", arena.DefaultMoveTimeout, "maximum time per move")
	printBoards := flag.Bool("print", false, "print the board after every move, forces parallelism to 1")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, *black, *white, *matches, *parallelism, *moveTimeout, *printBoards); err != nil {
		if errors.Is(err, context.Canceled) {
			slog.Warn("Tournament interrupted")
			return
		}
		slog.Error("Tournament failed", "error", err)
		os.Exit(1)
	}
}

func run(
	ctx context.Context,
	black, white string,
	matches, parallelism int,
	moveTimeout time.Duration,
	printBoards bool,
) error {
	tournament := &arena.Tournament{
		Configs:     [2]string{black, white},
		Matches:     matches,
		Parallelism: parallelism,
		Options:     arena.Options{MoveTimeout: moveTimeout},
		OnResult: func(result *arena.Result, _ []arena.Standing) {
			ui.PrintCentered(ui.Result(result))
		},
	}

	if printBoards {
		var mu sync.Mutex
		tournament.Parallelism = 1
		tournament.Options.OnMove = func(game *othello.Game) {
			mu.Lock()
			defer mu.Unlock()
			ui.PrintCentered(ui.Board(game.Board(), game.Turn()))
		}
	}

	sink, closeSink, err := resultSink(ctx)
	if err != nil {
		return err
	}
	defer closeSink()
	tournament.Sink = sink

	ui.PrintCentered(titleStyle.Render(fmt.Sprintf("%s vs %s, %d matches", black, white, matches)))

	standings, err := tournament.Run(ctx)

	if len(standings) > 0 {
		ui.PrintCentered(ui.Standings(standings))
	}

	return err
}

// resultSink returns a Postgres backed sink if DESDEMONA_POSTGRES_URL is set, nil otherwise.
func resultSink(ctx context.Context) (arena.ResultSink, func(), error) {
	cfg := config.LoadArenaConfig()
	if cfg.PostgresURL == "" {
		slog.Debug("Postgres is not configured, results are not stored")
		return nil, func() {}, nil
	}

	postgres, err := services.InitPostgres(cfg.PostgresURL)
	if err != nil {
		return nil, nil, err
	}

	svc := &services.Services{Postgres: postgres}

	repo := repository.NewMatchRepositoryFromServices(svc)
	if err := repo.EnsureSchema(ctx); err != nil {
		svc.Close()
		return nil, nil, err
	}

	slog.Info("Storing results in Postgres")
	return repo, svc.Close, nil
}
