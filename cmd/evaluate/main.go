package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/lk16/desdemona/internal/bot"
	"github.com/lk16/desdemona/internal/config"
	"github.com/lk16/desdemona/internal/othello"
	"github.com/lk16/desdemona/internal/parameters"
	"github.com/lk16/desdemona/internal/players"
)

func main() {
	config.SetLogLevel()

	boardString := flag.String("board", "", "the board, as printed by othello.Board.Format")
	params := flag.String("params", "", "alphabeta parameters, e.g. stability")
	flag.Parse()

	board, turn, err := othello.ParseBoard(*boardString)
	if err != nil {
		slog.Error("Invalid board", "error", err)
		os.Exit(1)
	}

	cfg, err := players.BotConfig(parameters.NewFromConfigString(*params))
	if err != nil {
		slog.Error("Invalid parameters", "error", err)
		os.Exit(1)
	}

	evaluator := bot.NewEvaluator(cfg)
	terms := evaluator.Terms(board, turn)

	output, err := json.MarshalIndent(map[string]any{
		"color":   turn,
		"score":   evaluator.Evaluate(board, turn),
		"terms":   terms,
		"weights": cfg.Weights[terms.Phase],
	}, "", "  ")
	if err != nil {
		slog.Error("Failed to encode evaluation", "error", err)
		os.Exit(1)
	}

	fmt.Println(string(output))
}
