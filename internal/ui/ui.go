// Package ui renders boards, match results and standings for the terminal.
package ui

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/lk16/desdemona/internal/arena"
	"github.com/lk16/desdemona/internal/othello"
	"golang.org/x/term"
)

const (
	blackDisc = "●"
	whiteDisc = "○"
	legalMove = "·"
	emptyCell = " "
)

var (
	boardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("2")).
			Padding(0, 1)

	cellStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("22")).
			Foreground(lipgloss.Color("15"))

	blackStyle = cellStyle.Foreground(lipgloss.Color("0"))

	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))

	winStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("10")).
			Foreground(lipgloss.Color("0")).
			Padding(1, 2)

	drawStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("13")).
			Foreground(lipgloss.Color("0")).
			Padding(1, 2)

	forfeitStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("9")).
			Foreground(lipgloss.Color("0")).
			Padding(1, 2)

	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	rowStyle    = lipgloss.NewStyle().Padding(0, 1)
)

// Board renders board with column and row labels. Legal moves for turn are marked.
func Board(board othello.Board, turn othello.Color) string {
	var sb strings.Builder

	sb.WriteString(labelStyle.Render("  a b c d e f g h"))
	sb.WriteString("\n")

	for row := range othello.Size {
		sb.WriteString(labelStyle.Render(fmt.Sprintf("%d ", row+1)))

		for col := range othello.Size {
			var cell string
			switch board.Get(row, col) {
			case othello.BlackCell:
				cell = blackStyle.Render(blackDisc)
			case othello.WhiteCell:
				cell = cellStyle.Render(whiteDisc)
			default:
				if board.IsValidMove(turn, othello.Move{Row: row, Col: col}) {
					cell = cellStyle.Render(legalMove)
				} else {
					cell = cellStyle.Render(emptyCell)
				}
			}

			sb.WriteString(cell)
			if col < othello.Size-1 {
				sb.WriteString(cellStyle.Render(" "))
			}
		}

		sb.WriteString("\n")
	}

	fmt.Fprintf(&sb, "%s %d  %s %d  %s to move",
		blackDisc, board.Count(othello.BLACK), whiteDisc, board.Count(othello.WHITE), turn)

	return boardStyle.Render(sb.String())
}

// Result renders a banner announcing the outcome of a match.
func Result(result *arena.Result) string {
	score := fmt.Sprintf("%d-%d", result.BlackDiscs, result.WhiteDiscs)

	switch {
	case result.Forfeit != "":
		return forfeitStyle.Render(fmt.Sprintf("*** %s WINS BY FORFEIT: %s ***",
			winnerName(result), result.Forfeit))
	case result.Outcome == arena.Draw:
		return drawStyle.Render(fmt.Sprintf("*** DRAW %s ***", score))
	default:
		return winStyle.Render(fmt.Sprintf("*** %s WINS %s ***", winnerName(result), score))
	}
}

func winnerName(result *arena.Result) string {
	if result.Outcome == arena.BlackWins {
		return fmt.Sprintf("%s (%s)", strings.ToUpper(string(arena.BlackWins)), result.Black)
	}
	return fmt.Sprintf("%s (%s)", strings.ToUpper(string(arena.WhiteWins)), result.White)
}

// Standings renders standings as a table.
func Standings(standings []arena.Standing) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(labelStyle).
		Headers("#", "PLAYER", "PLAYED", "WINS", "DRAWS", "LOSSES", "FORFEITS", "POINTS", "DISCS").
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return rowStyle
		})

	for i, standing := range standings {
		t.Row(
			fmt.Sprint(i+1),
			standing.Player,
			fmt.Sprint(standing.Played),
			fmt.Sprint(standing.Wins),
			fmt.Sprint(standing.Draws),
			fmt.Sprint(standing.Losses),
			fmt.Sprint(standing.Forfeits),
			fmt.Sprintf("%.1f", standing.Points()),
			fmt.Sprintf("%d-%d", standing.DiscsFor, standing.DiscsAgainst),
		)
	}

	return t.Render()
}

// PrintCentered prints a block of text centered in the terminal, or left aligned if stdout is not a terminal.
func PrintCentered(block string) {
	terminalWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil {
		terminalWidth = 0
	}

	indent := max((terminalWidth-lipgloss.Width(block))/2, 0)

	for _, line := range strings.Split(block, "\n") {
		if line == "" {
			fmt.Println()
			continue
		}
		fmt.Printf("%s%s\n", strings.Repeat(" ", indent), line)
	}
}
