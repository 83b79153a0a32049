package oracle

import "math/bits"

// Material holds one occupancy set per side and piece class, square 0 = a1.
type Material [2][6]uint64

var _ PieceCounter = (*Material)(nil)

const (
	darkSquares  uint64 = 0xAA55AA55AA55AA55
	lightSquares uint64 = ^darkSquares
)

func (m *Material) Count(piece PieceClass, side Side) int {
	return bits.OnesCount64(m[side][piece])
}

func (m *Material) Occupied(side Side) uint64 {
	result := uint64(0)
	for _, b := range m[side] {
		result |= b
	}
	return result
}

func (m *Material) Pieces(piece PieceClass) uint64 {
	return m[White][piece] | m[Black][piece]
}

// HasInsufficientMaterial reports whether side cannot deliver mate by any
// sequence of legal moves.
func (m *Material) HasInsufficientMaterial(side Side) bool {
	ours := m.Occupied(side)
	if ours&(m.Pieces(Pawn)|m.Pieces(Rook)|m.Pieces(Queen)) != 0 {
		return false
	}

	if ours&m.Pieces(Knight) != 0 {
		// a lone knight can still mate when the enemy has blockers other than queens
		theirs := m.Occupied(side.Other()) &^ m.Pieces(King) &^ m.Pieces(Queen)
		return bits.OnesCount64(ours) <= 2 && theirs == 0
	}

	if ours&m.Pieces(Bishop) != 0 {
		bishops := m.Pieces(Bishop)
		sameColor := bishops&darkSquares == 0 || bishops&lightSquares == 0
		return sameColor && m.Pieces(Pawn) == 0 && m.Pieces(Knight) == 0
	}

	return true
}

func (m *Material) IsInsufficient() bool {
	return m.HasInsufficientMaterial(White) && m.HasInsufficientMaterial(Black)
}
