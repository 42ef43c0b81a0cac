package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/lk16/desdemona/internal/client"
	"github.com/lk16/desdemona/internal/config"
	"github.com/lk16/desdemona/internal/models"
	"github.com/lk16/desdemona/internal/othello"
	"github.com/lk16/desdemona/internal/players"
	"github.com/lk16/desdemona/internal/ui"
)

func main() {
	config.SetLogLevel()

	boardString := flag.String("board", "", "the board, as printed by othello.Board.Format")
	playerConfig := flag.String("player", players.DefaultConfig, "player configuration, e.g. alphabeta:depth=6")
	timeout := flag.Duration("timeout", time.Minute, "maximum search time")
	show := flag.Bool("show", false, "print the board before and after the move")
	remote := flag.Bool("remote", false, "ask the server at DESDEMONA_SERVER_URL instead of searching locally")
	flag.Parse()

	board, turn, err := othello.ParseBoard(*boardString)
	if err != nil {
		slog.Error("Invalid board", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	if *show {
		fmt.Println(ui.Board(board, turn))
	}

	if *remote {
		askServer(ctx, board, turn, *playerConfig, *show)
		return
	}

	player, err := players.New(*playerConfig, turn)
	if err != nil {
		slog.Error("Invalid player", "error", err)
		os.Exit(1)
	}
	defer player.Close()

	start := time.Now()

	if decider, ok := player.(players.Decider); ok {
		decision := decider.Decide(ctx, board)
		fmt.Printf("%s score=%d searched=%d/%d nodes=%d time=%s\n",
			decision.Move, decision.Score, decision.Searched, decision.Candidates, decision.Stats.Nodes,
			time.Since(start).Round(time.Millisecond))

		if *show && decision.Move != othello.NoMove {
			fmt.Println(ui.Board(board.ApplyMove(turn, decision.Move), turn.Opponent()))
		}
		return
	}

	move := player.Play(ctx, board)
	fmt.Printf("%s time=%s\n", move, time.Since(start).Round(time.Millisecond))

	if *show && move != othello.NoMove {
		fmt.Println(ui.Board(board.ApplyMove(turn, move), turn.Opponent()))
	}
}

func askServer(ctx context.Context, board othello.Board, turn othello.Color, playerConfig string, show bool) {
	c := client.NewClient(config.LoadClientConfig())

	response, err := c.Move(ctx, models.MoveRequest{
		Board:  board.Format(turn),
		Player: playerConfig,
	})
	if err != nil {
		slog.Error("Server request failed", "error", err)
		os.Exit(1)
	}

	fmt.Printf("%s player=%s cached=%t\n", response.Move, response.Player, response.Cached)

	if show && response.Field >= 0 {
		move := othello.MoveFromIndex(response.Field)
		fmt.Println(ui.Board(board.ApplyMove(turn, move), turn.Opponent()))
	}
}
