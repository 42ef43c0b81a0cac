package bot

import (
	"github.com/lk16/desdemona/internal/othello"
)

// cornerBonus is added for a corner on a fully occupied edge.
const cornerBonus = 8

// Terms holds the unweighted heuristic values of a board.
type Terms struct {
	Phase     Phase `json:"phase"`
	Corner    int   `json:"corner"`
	Mobility  int   `json:"mobility"`
	Coins     int   `json:"coins"`
	Parity    int   `json:"parity"`
	Stability int   `json:"stability"`
}

// Evaluator scores boards from the perspective of one color.
type Evaluator struct {
	cfg Config
}

// NewEvaluator creates a new Evaluator.
func NewEvaluator(cfg Config) *Evaluator {
	return &Evaluator{cfg: cfg}
}

// Evaluate returns the weighted sum of all heuristic terms. Higher is better for c.
func (e *Evaluator) Evaluate(board othello.Board, c othello.Color) int {
	terms := e.Terms(board, c)
	w := e.cfg.Weights[terms.Phase]

	return w.Corner*terms.Corner +
		w.Mobility*terms.Mobility +
		w.Coins*terms.Coins +
		w.Parity*terms.Parity +
		w.Stability*terms.Stability
}

// Terms computes every heuristic term for board from the perspective of c.
// Stability is left at 0 unless enabled in the config.
func (e *Evaluator) Terms(board othello.Board, c othello.Color) Terms {
	terms := Terms{
		Phase:    e.cfg.Phase(board.CountDiscs()),
		Corner:   Corners(board, c),
		Mobility: Mobility(board, c),
		Coins:    CoinDifferential(board, c),
		Parity:   Parity(board),
	}

	if e.cfg.Stability {
		terms.Stability = Stability(board, c)
	}

	return terms
}

// normalize maps a count pair to roughly [-100, 100]. The +1 keeps the denominator positive.
func normalize(mine, theirs int) int {
	return 100 * (mine - theirs) / (mine + theirs + 1)
}

// Corners compares corner occupancy.
func Corners(board othello.Board, c othello.Color) int {
	mine := 0
	theirs := 0

	for _, row := range []int{0, othello.Size - 1} {
		for _, col := range []int{0, othello.Size - 1} {
			switch board.Get(row, col) {
			case c.Cell():
				mine++
			case c.Opponent().Cell():
				theirs++
			}
		}
	}

	return normalize(mine, theirs)
}

// Mobility compares the number of legal moves.
func Mobility(board othello.Board, c othello.Color) int {
	mine := len(board.ValidMoves(c))
	theirs := len(board.ValidMoves(c.Opponent()))

	return normalize(mine, theirs)
}

// CoinDifferential compares disc counts.
func CoinDifferential(board othello.Board, c othello.Color) int {
	return normalize(board.Count(c), board.Count(c.Opponent()))
}

// Parity is 1 if an odd number of squares is empty, -1 otherwise.
func Parity(board othello.Board) int {
	if board.Empties()%2 == 1 {
		return 1
	}
	return -1
}

// Stability approximates the difference in discs that cannot be flipped anymore.
// A disc counts as stable when its row, its column and all four diagonal rays through it are full.
// Corners get a fixed bonus when an adjacent edge is full: a1 with row 1, a8 with row 8,
// h1 with column a and h8 with column h.
func Stability(board othello.Board, c othello.Color) int {
	var rowFull, colFull [othello.Size]bool

	for i := range othello.Size {
		rowFull[i] = true
		colFull[i] = true
	}

	for i := range othello.Size {
		for j := range othello.Size {
			if board.Get(i, j) == othello.Empty {
				rowFull[i] = false
				colFull[j] = false
			}
		}
	}

	mine := c.Cell()
	theirs := c.Opponent().Cell()

	stability := 0
	for i := range othello.Size {
		for j := range othello.Size {
			if !rowFull[i] || !colFull[j] || !diagonalsFull(board, i, j) {
				continue
			}

			switch board.Get(i, j) {
			case mine:
				stability++
			case theirs:
				stability--
			}
		}
	}

	last := othello.Size - 1
	corners := []struct {
		full     bool
		row, col int
	}{
		{rowFull[0], 0, 0},
		{rowFull[last], last, 0},
		{colFull[0], 0, last},
		{colFull[last], last, last},
	}

	for _, corner := range corners {
		if !corner.full {
			continue
		}

		switch board.Get(corner.row, corner.col) {
		case mine:
			stability += cornerBonus
		case theirs:
			stability -= cornerBonus
		}
	}

	return stability
}

// diagonalsFull checks that all four diagonal rays from (row, col) to the edges are occupied.
func diagonalsFull(board othello.Board, row, col int) bool {
	for _, dir := range [4][2]int{{1, 1}, {1, -1}, {-1, 1}, {-1, -1}} {
		for r, c := row, col; r >= 0 && r < othello.Size && c >= 0 && c < othello.Size; r, c = r+dir[0], c+dir[1] {
			if board.Get(r, c) == othello.Empty {
				return false
			}
		}
	}
	return true
}
