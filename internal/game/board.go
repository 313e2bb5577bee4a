package game

import (
	"fmt"

	"github.com/punithkrishnakeepudi/tictactoe-backend/internal/apperror"
)

const (
	MarkX     = "X"
	MarkO     = "O"
	EmptyCell = ""
)

const (
	StateInProgress = "in_progress"
	StateWon        = "won"
	StateDraw       = "draw"
)

// WinLines - the 8 winning lines of the board: 3 rows, 3 columns, 2 diagonals.
var WinLines = [8][3]int{
	{0, 1, 2},
	{3, 4, 5},
	{6, 7, 8},
	{0, 3, 6},
	{1, 4, 7},
	{2, 5, 8},
	{0, 4, 8},
	{2, 4, 6},
}

// Move - a 0-indexed (row, column) pair on the 3x3 board.
type Move struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func (that Move) cell() int {
	return that.Row*3 + that.Col
}

func (that Move) isValid() bool {
	return that.Row >= 0 && that.Row <= 2 && that.Col >= 0 && that.Col <= 2
}

// Status - derived game status, recomputed from the cells after every move.
type Status struct {
	State  string `json:"state"`
	Winner string `json:"winner,omitempty"`
}

func (that Status) IsTerminal() bool {
	return that.State != StateInProgress
}

// Board - owns the 3x3 cell state and the mark to move. X always moves first.
// All mutation goes through Place; cells are exported only for serialization.
type Board struct {
	Cells [9]string `json:"cells"`
	Turn  string    `json:"turn"`
}

func NewBoard() *Board {
	return &Board{
		Cells: [9]string{},
		Turn:  MarkX,
	}
}

// Place - puts the given mark on the targeted cell. It fails if the cell is
// occupied, if it is not the mark's turn, or if the game is already over.
// On success it flips the turn and returns the recomputed status.
func (that *Board) Place(move Move, mark string) (Status, error) {
	if !move.isValid() {
		return Status{}, fmt.Errorf("%w: row %d col %d", apperror.ErrInvalidCell, move.Row, move.Col)
	}

	if that.Status().IsTerminal() {
		return Status{}, apperror.ErrGameFinished
	}

	if that.Turn != mark {
		return Status{}, apperror.ErrNotYourTurn
	}

	if that.Cells[move.cell()] != EmptyCell {
		return Status{}, apperror.ErrCellOccupied
	}

	that.Cells[move.cell()] = mark

	status := that.Status()
	if !status.IsTerminal() {
		that.Turn = OpponentMark(mark)
	}

	return status, nil
}

// LegalMoves - every empty cell in row-major order.
func (that *Board) LegalMoves() []Move {
	moves := make([]Move, 0, len(that.Cells))
	for i, cell := range that.Cells {
		if cell == EmptyCell {
			moves = append(moves, Move{Row: i / 3, Col: i % 3})
		}
	}

	return moves
}

// Status - recomputes the game status from the cells. All 8 lines are
// checked; a legally reached position has at most one completed line.
func (that *Board) Status() Status {
	winner := EmptyCell
	for _, line := range WinLines {
		a, b, c := that.Cells[line[0]], that.Cells[line[1]], that.Cells[line[2]]
		if a != EmptyCell && a == b && b == c {
			winner = a
		}
	}

	if winner != EmptyCell {
		return Status{State: StateWon, Winner: winner}
	}

	for _, cell := range that.Cells {
		if cell == EmptyCell {
			return Status{State: StateInProgress}
		}
	}

	return Status{State: StateDraw}
}

// Clone - deep value copy for look-ahead; mutating the clone never touches
// the original.
func (that *Board) Clone() *Board {
	clone := *that
	return &clone
}

// Reset - returns the board to all-empty with X to move.
func (that *Board) Reset() {
	that.Cells = [9]string{}
	that.Turn = MarkX
}

func OpponentMark(mark string) string {
	if mark == MarkX {
		return MarkO
	}
	return MarkX
}
