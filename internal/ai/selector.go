package ai

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/punithkrishnakeepudi/tictactoe-backend/internal/apperror"
	"github.com/punithkrishnakeepudi/tictactoe-backend/internal/game"
)

const winScore = 10

// Selector - picks one legal move for the given mark using the configured
// difficulty. The random source is injected so callers can seed it.
type Selector struct {
	rng *rand.Rand
}

func NewSelector(rng *rand.Rand) *Selector {
	return &Selector{
		rng: rng,
	}
}

// ChooseMove - returns one legal move for aiMark. The board is only read;
// all look-ahead happens on clones. Fails with ErrNoLegalMoves when the
// caller invokes it on a terminal or full board.
func (that *Selector) ChooseMove(board *game.Board, difficulty Difficulty, aiMark string) (game.Move, error) {
	moves := board.LegalMoves()
	if len(moves) == 0 {
		return game.Move{}, apperror.ErrNoLegalMoves
	}

	switch difficulty {
	case DifficultyEasy:
		return that.randomMove(moves), nil
	case DifficultyMedium:
		return that.mediumMove(board, moves, aiMark), nil
	case DifficultyHard:
		return minimaxMove(board, moves, aiMark)
	default:
		return game.Move{}, fmt.Errorf("%w: %q", ErrUnknownDifficulty, difficulty)
	}
}

// randomMove - uniform pick over the legal moves, no look-ahead.
func (that *Selector) randomMove(moves []game.Move) game.Move {
	return moves[that.rng.Intn(len(moves))]
}

// mediumMove - single-ply scan in row-major order: take an immediate win if
// one exists, otherwise block an immediate opponent win, otherwise play at
// random. Winning takes priority over blocking.
func (that *Selector) mediumMove(board *game.Board, moves []game.Move, aiMark string) game.Move {
	for _, move := range moves {
		if completesLine(board, move, aiMark) {
			return move
		}
	}

	opponent := game.OpponentMark(aiMark)
	for _, move := range moves {
		if completesLine(board, move, opponent) {
			return move
		}
	}

	return that.randomMove(moves)
}

// completesLine - reports whether placing mark on the cell would win the
// game for it, regardless of whose turn it actually is.
func completesLine(board *game.Board, move game.Move, mark string) bool {
	clone := board.Clone()
	clone.Cells[move.Row*3+move.Col] = mark

	status := clone.Status()

	return status.State == game.StateWon && status.Winner == mark
}

// minimaxMove - exhaustive search over the full game tree. Moves are tried
// in row-major order and ties go to the first best move found, so the
// choice is deterministic for a given board. The search only makes sense
// with aiMark to move, so a mismatch is rejected instead of searched.
func minimaxMove(board *game.Board, moves []game.Move, aiMark string) (game.Move, error) {
	if board.Turn != aiMark {
		return game.Move{}, fmt.Errorf("%w: %s to move, not %s", apperror.ErrNotYourTurn, board.Turn, aiMark)
	}

	bestScore := math.MinInt
	bestMove := moves[0]

	for _, move := range moves {
		clone := board.Clone()
		if _, err := clone.Place(move, aiMark); err != nil {
			continue
		}

		score := minimax(clone, aiMark, 0)
		if score > bestScore {
			bestScore = score
			bestMove = move
		}
	}

	return bestMove, nil
}

// minimax - score of the position from aiMark's perspective, assuming both
// sides play optimally. Depth is the number of plies already played below
// the root move: a win scores winScore-depth and a loss depth-winScore, so
// the search prefers the fastest win and the slowest loss.
func minimax(board *game.Board, aiMark string, depth int) int {
	switch status := board.Status(); {
	case status.State == game.StateWon && status.Winner == aiMark:
		return winScore - depth
	case status.State == game.StateWon:
		return depth - winScore
	case status.State == game.StateDraw:
		return 0
	}

	maximizing := board.Turn == aiMark

	bestScore := math.MaxInt
	if maximizing {
		bestScore = math.MinInt
	}

	for _, move := range board.LegalMoves() {
		clone := board.Clone()
		if _, err := clone.Place(move, clone.Turn); err != nil {
			continue
		}

		score := minimax(clone, aiMark, depth+1)
		if maximizing && score > bestScore {
			bestScore = score
		}
		if !maximizing && score < bestScore {
			bestScore = score
		}
	}

	return bestScore
}
