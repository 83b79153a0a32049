// Package oracle describes the game state the search engine drives. The
// search never looks inside a position: it enumerates, applies and undoes
// moves, asks whether the game is over and counts material.
package oracle

const StartFen = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

type Side int

const (
	White Side = iota
	Black
)

var AllSides = [2]Side{White, Black}

func (s Side) Other() Side {
	return 1 - s
}

func (s Side) String() string {
	if s == White {
		return "white"
	}
	return "black"
}

type PieceClass int

const (
	Pawn PieceClass = iota
	Knight
	Bishop
	Rook
	Queen
	King
)

var AllPieceClasses = [6]PieceClass{Pawn, Knight, Bishop, Rook, Queen, King}

var _pieceClassStrings = [6]string{"pawn", "knight", "bishop", "rook", "queen", "king"}

func (p PieceClass) String() string {
	if p < Pawn || p > King {
		return "unknown"
	}
	return _pieceClassStrings[p]
}

type PieceCounter interface {
	Count(piece PieceClass, side Side) int
}

// Oracle is a mutable, reversible game state. Apply and Undo must be paired in
// strict LIFO order; after N applies and N undos the position is unchanged.
type Oracle[M comparable] interface {
	PieceCounter

	// LegalMoves is empty only when the position is terminal.
	LegalMoves() []M
	Apply(move M)
	// Undo reverses the most recent unpaired Apply.
	Undo()
	// IsTerminal reports no legal continuation or a forced draw.
	IsTerminal() bool
	IsLegal(move M) bool
	SideToMove() Side
}

// MateReporter is implemented by oracles that can tell a checkmate apart from
// the other terminal states.
type MateReporter interface {
	IsCheckmate() bool
}

// MoveFormatter is implemented by oracles whose moves have a readable form.
type MoveFormatter[M comparable] interface {
	MoveString(move M) string
}
