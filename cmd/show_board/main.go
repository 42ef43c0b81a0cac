package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/lk16/desdemona/internal/othello"
	"github.com/lk16/desdemona/internal/ui"
)

func main() {
	boardString := flag.String("board", "", "the board to show, as printed by othello.Board.Format")
	transcript := flag.String("moves", "", "alternatively, a space separated list of moves from the start position")
	flag.Parse()

	var board othello.Board
	var turn othello.Color

	if *transcript != "" {
		game, err := othello.NewGameFromTranscript(*transcript)
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		board, turn = game.Board(), game.Turn()
	} else {
		var err error
		board, turn, err = othello.ParseBoard(*boardString)
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	}

	fmt.Println(ui.Board(board, turn))

	moves := board.ValidMoves(turn)
	fields := make([]string, len(moves))
	for i, move := range moves {
		fields[i] = move.String()
	}

	fmt.Printf("Board: %s\n", board.Format(turn))
	fmt.Printf("Legal moves: %s\n", strings.Join(fields, " "))
}
