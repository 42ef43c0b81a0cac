package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/lk16/desdemona/internal/config"
	"github.com/lk16/desdemona/internal/othello"
	"github.com/lk16/desdemona/internal/players"
	"golang.org/x/sync/errgroup"
)

// agreement counts how often a player in the PGN files played the same move as the engine.
type agreement struct {
	name      string
	positions int
	matching  int
}

func main() {
	config.SetLogLevel()

	folder := flag.String("dir", os.Getenv("DESDEMONA_PGN_FOLDER"), "folder containing PGN files")
	playerConfig := flag.String("player", "alphabeta:depth=4", "player configuration used to analyze positions")
	moveTimeout := flag.Duration("timeout", 10*time.Second, "maximum search time per position")
	parallelism := flag.Int("parallelism", 0, "number of files analyzed at the same time, zero means one per CPU")
	flag.Parse()

	if *folder == "" {
		slog.Error("No PGN folder, set -dir or DESDEMONA_PGN_FOLDER")
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := analyzePgnFiles(ctx, *folder, *playerConfig, *moveTimeout, *parallelism); err != nil {
		slog.Error("Failed to analyze PGN files", "error", err)
		os.Exit(1)
	}
}

func analyzePgnFiles(ctx context.Context, folder, playerConfig string, moveTimeout time.Duration, parallelism int) error {
	// Fail early on invalid configurations.
	player, err := players.New(playerConfig, othello.BLACK)
	if err != nil {
		return err
	}
	player.Close()

	pgnFiles, err := getPgnFiles(folder)
	if err != nil {
		return fmt.Errorf("failed to get PGN files: %w", err)
	}

	slog.Info("Analyzing PGN files", "count", len(pgnFiles), "player", playerConfig)

	var (
		mu       sync.Mutex
		results  = map[string]*agreement{}
		done     int
		lastTime = time.Now()
	)

	group, groupCtx := errgroup.WithContext(ctx)
	if parallelism > 0 {
		group.SetLimit(parallelism)
	} else {
		group.SetLimit(-1)
	}

	for _, file := range pgnFiles {
		group.Go(func() error {
			fileResults, err := analyzePgnFile(groupCtx, file, playerConfig, moveTimeout)
			if err != nil {
				if groupCtx.Err() != nil {
					return groupCtx.Err()
				}
				slog.Warn("Skipping PGN file", "file", file, "error", err)
				return nil
			}

			mu.Lock()
			defer mu.Unlock()

			for _, result := range fileResults {
				total, ok := results[result.name]
				if !ok {
					total = &agreement{name: result.name}
					results[result.name] = total
				}
				total.positions += result.positions
				total.matching += result.matching
			}

			done++
			if time.Since(lastTime) > time.Second {
				percentage := float64(done) / float64(len(pgnFiles)) * 100
				slog.Info("Analyzing PGN files", "done", done, "total", len(pgnFiles), "percentage", fmt.Sprintf("%.2f%%", percentage))
				lastTime = time.Now()
			}
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return err
	}

	printAgreement(results)
	return nil
}

// analyzePgnFile replays one game and asks the engine for a move in every position with legal moves.
func analyzePgnFile(ctx context.Context, file, playerConfig string, moveTimeout time.Duration) ([2]agreement, error) {
	var results [2]agreement

	bytes, err := os.ReadFile(file)
	if err != nil {
		return results, fmt.Errorf("failed to read file: %w", err)
	}

	game, err := othello.NewGameFromPGN(string(bytes))
	if err != nil {
		return results, fmt.Errorf("failed to parse PGN: %w", err)
	}

	metadata := game.MetaData()
	for _, color := range []othello.Color{othello.BLACK, othello.WHITE} {
		results[color].name = metadata.Players[color]
		if results[color].name == "" {
			results[color].name = "unknown"
		}
	}

	var engines [2]players.Player
	for _, color := range []othello.Color{othello.BLACK, othello.WHITE} {
		engines[color], err = players.New(playerConfig, color)
		if err != nil {
			return results, err
		}
		defer engines[color].Close()
	}

	replay := othello.NewGame()
	for _, played := range game.Moves() {
		if err := ctx.Err(); err != nil {
			return results, err
		}

		turn := replay.Turn()
		board := replay.Board()

		if played.OnBoard() {
			moveCtx, cancel := context.WithTimeout(ctx, moveTimeout)
			suggested := engines[turn].Play(moveCtx, board)
			cancel()

			results[turn].positions++
			if suggested == played {
				results[turn].matching++
			}
		}

		if err := replay.PushMove(played); err != nil {
			return results, fmt.Errorf("failed to replay game: %w", err)
		}
	}

	return results, nil
}

func getPgnFiles(folder string) ([]string, error) {
	var files []string

	err := filepath.Walk(folder, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		if !info.IsDir() && strings.HasSuffix(path, ".pgn") {
			files = append(files, path)
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	sort.Strings(files)
	return files, nil
}

func printAgreement(results map[string]*agreement) {
	list := make([]*agreement, 0, len(results))
	for _, result := range results {
		list = append(list, result)
	}

	sort.Slice(list, func(i, j int) bool {
		if list[i].positions != list[j].positions {
			return list[i].positions > list[j].positions
		}
		return list[i].name < list[j].name
	})

	for _, result := range list {
		percentage := 0.0
		if result.positions > 0 {
			percentage = float64(result.matching) / float64(result.positions) * 100
		}
		fmt.Printf("%-30s %6d / %6d  %6.2f%%\n", result.name, result.matching, result.positions, percentage)
	}
}
