// Package dragon adapts a dragontoothmg board to the search oracle. Moves are
// applied in place; the unapply closures dragontoothmg hands back are kept on
// a stack so Undo restores positions in LIFO order.
package dragon

import (
	"math/bits"
	"strings"

	"github.com/dylhunn/dragontoothmg"

	. "github.com/cyberchai/ChessBot/internal/helpers"
	"github.com/cyberchai/ChessBot/internal/oracle"
)

type Move = dragontoothmg.Move

type Position struct {
	board   dragontoothmg.Board
	unapply []func()
	history oracle.History[string]
}

var _ oracle.Oracle[Move] = (*Position)(nil)
var _ oracle.MateReporter = (*Position)(nil)
var _ oracle.MoveFormatter[Move] = (*Position)(nil)

func FromFen(fen string) (pos *Position, err Error) {
	fen = strings.TrimSpace(fen)
	if len(strings.Fields(fen)) < 4 {
		return nil, Errorf("invalid fen %q: expected at least 4 fields", fen)
	}

	defer func() {
		if r := recover(); r != nil {
			pos = nil
			err = Errorf("invalid fen %q: %v", fen, r)
		}
	}()

	board := dragontoothmg.ParseFen(fen)
	if bits.OnesCount64(board.White.Kings) != 1 || bits.OnesCount64(board.Black.Kings) != 1 {
		return nil, Errorf("invalid fen %q: each side needs exactly one king", fen)
	}

	pos = &Position{board: board}
	pos.history.Push(pos.repetitionKey())
	return pos, NilError
}

func StartingPosition() *Position {
	pos, err := FromFen(oracle.StartFen)
	if err.HasError() {
		panic(err)
	}
	return pos
}

func (p *Position) LegalMoves() []Move {
	return p.board.GenerateLegalMoves()
}

func (p *Position) Apply(move Move) {
	p.unapply = append(p.unapply, p.board.Apply(move))
	p.history.Push(p.repetitionKey())
}

func (p *Position) Undo() {
	if len(p.unapply) == 0 {
		panic("dragon: undo without a matching apply")
	}
	last := len(p.unapply) - 1
	p.unapply[last]()
	p.unapply = p.unapply[:last]
	p.history.Pop()
}

// Ply is the number of moves currently applied on top of the setup position.
func (p *Position) Ply() int {
	return len(p.unapply)
}

func (p *Position) IsTerminal() bool {
	if len(p.board.GenerateLegalMoves()) == 0 {
		return true
	}
	material := p.Material()
	return oracle.IsAutomaticDraw(&material, int(p.board.Halfmoveclock), p.history.Repetitions())
}

func (p *Position) IsCheckmate() bool {
	return p.board.OurKingInCheck() && len(p.board.GenerateLegalMoves()) == 0
}

func (p *Position) IsLegal(move Move) bool {
	for _, m := range p.board.GenerateLegalMoves() {
		if m == move {
			return true
		}
	}
	return false
}

func (p *Position) SideToMove() oracle.Side {
	if p.board.Wtomove {
		return oracle.White
	}
	return oracle.Black
}

func (p *Position) Count(piece oracle.PieceClass, side oracle.Side) int {
	return bits.OnesCount64(p.bitboard(piece, side))
}

func (p *Position) bitboard(piece oracle.PieceClass, side oracle.Side) uint64 {
	b := &p.board.White
	if side == oracle.Black {
		b = &p.board.Black
	}
	switch piece {
	case oracle.Pawn:
		return b.Pawns
	case oracle.Knight:
		return b.Knights
	case oracle.Bishop:
		return b.Bishops
	case oracle.Rook:
		return b.Rooks
	case oracle.Queen:
		return b.Queens
	case oracle.King:
		return b.Kings
	}
	return 0
}

func (p *Position) Material() oracle.Material {
	m := oracle.Material{}
	for _, side := range oracle.AllSides {
		for _, piece := range oracle.AllPieceClasses {
			m[side][piece] = p.bitboard(piece, side)
		}
	}
	return m
}

func (p *Position) Fen() string {
	return p.board.ToFen()
}

func (p *Position) repetitionKey() string {
	return oracle.RepetitionKey(p.board.ToFen(), p.canCaptureEnPassant)
}

func (p *Position) canCaptureEnPassant(square string) bool {
	if len(square) != 2 {
		return false
	}
	target := uint8(square[0]-'a') + 8*uint8(square[1]-'1')
	pawns := p.board.Black.Pawns
	if p.board.Wtomove {
		pawns = p.board.White.Pawns
	}
	for _, move := range p.board.GenerateLegalMoves() {
		if move.To() == target && pawns&(uint64(1)<<move.From()) != 0 {
			return true
		}
	}
	return false
}

func (p *Position) Hash() uint64 {
	return p.board.Hash()
}

func (p *Position) ParseMove(s string) (Move, Error) {
	parsed, err := dragontoothmg.ParseMove(s)
	if err != nil {
		return 0, Wrap(err)
	}
	if !p.IsLegal(parsed) {
		return 0, Errorf("illegal move %v in %v", s, p.Fen())
	}
	return parsed, NilError
}

func (p *Position) MoveString(move Move) string {
	return move.String()
}
