package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/punithkrishnakeepudi/tictactoe-backend/internal/apperror"
)

func TestNewBoard(t *testing.T) {
	// When: creating a new board
	board := NewBoard()

	// Then: it should be empty with X to move
	require.NotNil(t, board)
	assert.Equal(t, [9]string{}, board.Cells)
	assert.Equal(t, MarkX, board.Turn)
	assert.Equal(t, Status{State: StateInProgress}, board.Status())
}

func TestBoard_Place(t *testing.T) {
	t.Run("Accepts alternating moves and flips the turn", func(t *testing.T) {
		// Given: an empty board
		board := NewBoard()

		// When: X and O alternate
		status, err := board.Place(Move{Row: 0, Col: 0}, MarkX)
		require.NoError(t, err)
		assert.Equal(t, StateInProgress, status.State)
		assert.Equal(t, MarkO, board.Turn)

		status, err = board.Place(Move{Row: 1, Col: 1}, MarkO)
		require.NoError(t, err)

		// Then: the game continues and it is X's turn again
		assert.Equal(t, StateInProgress, status.State)
		assert.Equal(t, MarkX, board.Turn)
	})

	t.Run("Rejects a move out of turn", func(t *testing.T) {
		// Given: a board where X has just moved
		board := NewBoard()
		_, err := board.Place(Move{Row: 0, Col: 0}, MarkX)
		require.NoError(t, err)

		// When: X tries to move again
		_, err = board.Place(Move{Row: 0, Col: 1}, MarkX)

		// Then: the move is rejected
		assert.ErrorIs(t, err, apperror.ErrNotYourTurn)
	})

	t.Run("Rejects a move on an occupied cell", func(t *testing.T) {
		// Given: a board with the center taken
		board := NewBoard()
		_, err := board.Place(Move{Row: 1, Col: 1}, MarkX)
		require.NoError(t, err)

		// When: O targets the same cell
		_, err = board.Place(Move{Row: 1, Col: 1}, MarkO)

		// Then: the move is rejected
		assert.ErrorIs(t, err, apperror.ErrCellOccupied)
	})

	t.Run("Rejects out-of-range coordinates", func(t *testing.T) {
		board := NewBoard()

		for _, move := range []Move{{Row: -1, Col: 0}, {Row: 0, Col: 3}, {Row: 3, Col: 3}} {
			_, err := board.Place(move, MarkX)
			assert.ErrorIs(t, err, apperror.ErrInvalidCell)
		}
	})

	t.Run("Rejects any move on a finished game", func(t *testing.T) {
		// Given: a board where X has completed the top row
		board := &Board{
			Cells: [9]string{
				MarkX, MarkX, MarkX,
				MarkO, MarkO, EmptyCell,
				EmptyCell, EmptyCell, EmptyCell,
			},
			Turn: MarkO,
		}

		// When: O tries to keep playing
		_, err := board.Place(Move{Row: 2, Col: 2}, MarkO)

		// Then: the move is rejected
		assert.ErrorIs(t, err, apperror.ErrGameFinished)
	})

	t.Run("Reports the win on the winning move", func(t *testing.T) {
		// Given: X about to complete the left column
		board := &Board{
			Cells: [9]string{
				MarkX, MarkO, EmptyCell,
				MarkX, MarkO, EmptyCell,
				EmptyCell, EmptyCell, EmptyCell,
			},
			Turn: MarkX,
		}

		// When: X completes the column
		status, err := board.Place(Move{Row: 2, Col: 0}, MarkX)

		// Then: the status reports the win
		require.NoError(t, err)
		assert.Equal(t, Status{State: StateWon, Winner: MarkX}, status)
	})
}

func TestBoard_Status(t *testing.T) {
	t.Run("Detects each of the 8 winning lines", func(t *testing.T) {
		for _, line := range WinLines {
			// Given: a board with one line completed by X
			board := NewBoard()
			for _, cell := range line {
				board.Cells[cell] = MarkX
			}

			// Then: the status reports X as the winner
			assert.Equal(t, Status{State: StateWon, Winner: MarkX}, board.Status(), "line %v", line)
		}
	})

	t.Run("Reports a draw on a full board without a line", func(t *testing.T) {
		// Given: the full-board draw position
		board := &Board{
			Cells: [9]string{
				MarkX, MarkO, MarkX,
				MarkX, MarkO, MarkO,
				MarkO, MarkX, MarkX,
			},
		}

		// Then: the game is drawn and no move is left
		assert.Equal(t, Status{State: StateDraw}, board.Status())
		assert.Empty(t, board.LegalMoves())
	})

	t.Run("Stays consistent with the lines over a full game", func(t *testing.T) {
		// Given: a scripted game ending in an X win
		board := NewBoard()
		moves := []struct {
			move Move
			mark string
		}{
			{Move{Row: 0, Col: 0}, MarkX},
			{Move{Row: 1, Col: 1}, MarkO},
			{Move{Row: 0, Col: 1}, MarkX},
			{Move{Row: 2, Col: 2}, MarkO},
			{Move{Row: 0, Col: 2}, MarkX},
		}

		// When: playing it out move by move
		for i, step := range moves {
			status, err := board.Place(step.move, step.mark)
			require.NoError(t, err)

			// Then: every intermediate status matches a direct recompute
			assert.Equal(t, board.Status(), status, "move %d", i)
		}

		assert.Equal(t, Status{State: StateWon, Winner: MarkX}, board.Status())
	})
}

func TestBoard_LegalMoves(t *testing.T) {
	t.Run("Enumerates empty cells in row-major order", func(t *testing.T) {
		// Given: a board with two cells taken
		board := NewBoard()
		_, err := board.Place(Move{Row: 0, Col: 1}, MarkX)
		require.NoError(t, err)
		_, err = board.Place(Move{Row: 2, Col: 0}, MarkO)
		require.NoError(t, err)

		// When: enumerating legal moves
		moves := board.LegalMoves()

		// Then: the remaining cells come back in row-major order
		expected := []Move{
			{Row: 0, Col: 0}, {Row: 0, Col: 2},
			{Row: 1, Col: 0}, {Row: 1, Col: 1}, {Row: 1, Col: 2},
			{Row: 2, Col: 1}, {Row: 2, Col: 2},
		}
		assert.Equal(t, expected, moves)
	})
}

func TestBoard_Clone(t *testing.T) {
	// Given: a board with a move played
	board := NewBoard()
	_, err := board.Place(Move{Row: 0, Col: 0}, MarkX)
	require.NoError(t, err)

	// When: mutating a clone
	clone := board.Clone()
	_, err = clone.Place(Move{Row: 1, Col: 1}, MarkO)
	require.NoError(t, err)

	// Then: the original is untouched
	assert.Equal(t, EmptyCell, board.Cells[4])
	assert.Equal(t, MarkO, board.Turn)
	assert.Equal(t, Status{State: StateInProgress}, board.Status())
}

func TestBoard_Reset(t *testing.T) {
	// Given: a board mid-game
	board := NewBoard()
	_, err := board.Place(Move{Row: 0, Col: 0}, MarkX)
	require.NoError(t, err)

	// When: resetting it
	board.Reset()

	// Then: the board is empty and X moves first again
	assert.Equal(t, [9]string{}, board.Cells)
	assert.Equal(t, MarkX, board.Turn)
}
