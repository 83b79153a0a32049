// Package notnil adapts notnil/chess positions to the search oracle. Its
// positions are immutable, so Apply pushes the successor onto a stack and
// Undo pops it. Moves are exchanged as UCI strings.
package notnil

import (
	"strconv"
	"strings"

	"github.com/notnil/chess"

	. "github.com/cyberchai/ChessBot/internal/helpers"
	"github.com/cyberchai/ChessBot/internal/oracle"
)

type Position struct {
	stack   []*chess.Position
	history oracle.History[string]
}

var _ oracle.Oracle[string] = (*Position)(nil)
var _ oracle.MateReporter = (*Position)(nil)
var _ oracle.MoveFormatter[string] = (*Position)(nil)

func FromFen(fen string) (*Position, Error) {
	opt, err := chess.FEN(strings.TrimSpace(fen))
	if err != nil {
		return nil, Wrap(err)
	}
	game := chess.NewGame(opt)

	p := &Position{stack: []*chess.Position{game.Position()}}
	if p.Count(oracle.King, oracle.White) != 1 || p.Count(oracle.King, oracle.Black) != 1 {
		return nil, Errorf("invalid fen %q: each side needs exactly one king", fen)
	}
	p.history.Push(repetitionKey(p.current()))
	return p, NilError
}

func StartingPosition() *Position {
	p := &Position{}
	p.push(chess.StartingPosition())
	return p
}

func (p *Position) current() *chess.Position {
	return p.stack[len(p.stack)-1]
}

func (p *Position) push(pos *chess.Position) {
	p.stack = append(p.stack, pos)
	p.history.Push(repetitionKey(pos))
}

func repetitionKey(pos *chess.Position) string {
	return oracle.RepetitionKey(pos.String(), func(string) bool {
		for _, m := range pos.ValidMoves() {
			if m.HasTag(chess.EnPassant) {
				return true
			}
		}
		return false
	})
}

func (p *Position) LegalMoves() []string {
	return MapSlice(p.current().ValidMoves(), func(m *chess.Move) string {
		return m.String()
	})
}

func (p *Position) find(uci string) *chess.Move {
	for _, m := range p.current().ValidMoves() {
		if m.String() == uci {
			return m
		}
	}
	return nil
}

func (p *Position) Apply(move string) {
	m := p.find(move)
	if m == nil {
		panic("notnil: apply of illegal move " + move + " in " + p.Fen())
	}
	p.push(p.current().Update(m))
}

func (p *Position) Undo() {
	if len(p.stack) <= 1 {
		panic("notnil: undo without a matching apply")
	}
	p.stack = p.stack[:len(p.stack)-1]
	p.history.Pop()
}

func (p *Position) Ply() int {
	return len(p.stack) - 1
}

func (p *Position) IsTerminal() bool {
	if p.current().Status() != chess.NoMethod {
		return true
	}
	material := p.Material()
	return oracle.IsAutomaticDraw(&material, p.halfmoveClock(), p.history.Repetitions())
}

func (p *Position) IsCheckmate() bool {
	return p.current().Status() == chess.Checkmate
}

func (p *Position) halfmoveClock() int {
	fields := strings.Fields(p.current().String())
	if len(fields) < 5 {
		return 0
	}
	clock, err := strconv.Atoi(fields[4])
	if err != nil {
		return 0
	}
	return clock
}

func (p *Position) IsLegal(move string) bool {
	return p.find(move) != nil
}

func (p *Position) SideToMove() oracle.Side {
	if p.current().Turn() == chess.White {
		return oracle.White
	}
	return oracle.Black
}

func (p *Position) Count(piece oracle.PieceClass, side oracle.Side) int {
	count := 0
	for _, pc := range p.current().Board().SquareMap() {
		if pieceClass(pc.Type()) == piece && sideOf(pc.Color()) == side {
			count++
		}
	}
	return count
}

func (p *Position) Material() oracle.Material {
	m := oracle.Material{}
	for sq, pc := range p.current().Board().SquareMap() {
		class := pieceClass(pc.Type())
		if class < 0 {
			continue
		}
		m[sideOf(pc.Color())][class] |= uint64(1) << uint(sq)
	}
	return m
}

func pieceClass(t chess.PieceType) oracle.PieceClass {
	switch t {
	case chess.Pawn:
		return oracle.Pawn
	case chess.Knight:
		return oracle.Knight
	case chess.Bishop:
		return oracle.Bishop
	case chess.Rook:
		return oracle.Rook
	case chess.Queen:
		return oracle.Queen
	case chess.King:
		return oracle.King
	}
	return -1
}

func sideOf(c chess.Color) oracle.Side {
	if c == chess.Black {
		return oracle.Black
	}
	return oracle.White
}

func (p *Position) Fen() string {
	return p.current().String()
}

func (p *Position) ParseMove(s string) (string, Error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if !p.IsLegal(s) {
		return "", Errorf("illegal move %v in %v", s, p.Fen())
	}
	return s, NilError
}

func (p *Position) MoveString(move string) string {
	return move
}
