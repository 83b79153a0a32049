// Package evaluation scores a position by material alone. Scores are
// board-relative: positive favors white, negative favors black, whoever is
// currently searching.
package evaluation

import (
	"github.com/cyberchai/ChessBot/internal/oracle"
)

// ReferenceSide is the side that positive scores favor.
const ReferenceSide = oracle.White

var _pieceValues = [6]float64{
	oracle.Pawn:   1,
	oracle.Knight: 3,
	oracle.Bishop: 3,
	oracle.Rook:   5,
	oracle.Queen:  9,
	oracle.King:   0,
}

func Weight(piece oracle.PieceClass) float64 {
	return _pieceValues[piece]
}

// Material sums the piece values one side has on the board.
func Material(counter oracle.PieceCounter, side oracle.Side) float64 {
	result := 0.0
	for _, piece := range oracle.AllPieceClasses {
		result += _pieceValues[piece] * float64(counter.Count(piece, side))
	}
	return result
}

// Evaluate does not special-case checkmate or stalemate.
func Evaluate(counter oracle.PieceCounter) float64 {
	result := 0.0
	for _, piece := range oracle.AllPieceClasses {
		diff := counter.Count(piece, ReferenceSide) - counter.Count(piece, ReferenceSide.Other())
		result += _pieceValues[piece] * float64(diff)
	}
	return result
}
