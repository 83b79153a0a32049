package oracle

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func square(name string) uint64 {
	file := int(name[0] - 'a')
	rank := int(name[1] - '1')
	return uint64(1) << (rank*8 + file)
}

func kings() Material {
	m := Material{}
	m[White][King] = square("e1")
	m[Black][King] = square("e8")
	return m
}

func TestMaterialCount(t *testing.T) {
	m := kings()
	m[White][Pawn] = square("a2") | square("b2") | square("c2")
	m[Black][Queen] = square("d8")

	assert.Equal(t, 3, m.Count(Pawn, White))
	assert.Equal(t, 0, m.Count(Pawn, Black))
	assert.Equal(t, 1, m.Count(Queen, Black))
	assert.Equal(t, 1, m.Count(King, White))
	assert.Equal(t, square("e8")|square("d8"), m.Occupied(Black))
}

func TestInsufficientMaterial(t *testing.T) {
	bare := kings()
	assert.True(t, bare.IsInsufficient())

	knight := kings()
	knight[White][Knight] = square("g1")
	assert.True(t, knight.IsInsufficient())

	twoKnights := kings()
	twoKnights[White][Knight] = square("g1") | square("b1")
	assert.False(t, twoKnights.HasInsufficientMaterial(White))

	knightVsRook := kings()
	knightVsRook[White][Knight] = square("g1")
	knightVsRook[Black][Rook] = square("a8")
	assert.False(t, knightVsRook.HasInsufficientMaterial(White))
	assert.False(t, knightVsRook.IsInsufficient())

	sameColorBishops := kings()
	sameColorBishops[White][Bishop] = square("c1")
	sameColorBishops[Black][Bishop] = square("f8")
	assert.True(t, sameColorBishops.IsInsufficient())

	oppositeBishops := kings()
	oppositeBishops[White][Bishop] = square("c1")
	oppositeBishops[Black][Bishop] = square("c8")
	assert.False(t, oppositeBishops.IsInsufficient())

	pawn := kings()
	pawn[Black][Pawn] = square("a7")
	assert.False(t, pawn.IsInsufficient())
}

func TestHistory(t *testing.T) {
	h := History[string]{}
	assert.Equal(t, 0, h.Repetitions())

	for i := 0; i < 4; i++ {
		h.Push("a")
		h.Push("b")
	}
	h.Push("a")
	assert.Equal(t, 5, h.Repetitions())
	assert.True(t, IsAutomaticDraw(&Material{{King: 1}, {Rook: 2}}, 0, h.Repetitions()))

	h.Pop()
	assert.Equal(t, 4, h.Repetitions())
	assert.Equal(t, 8, h.Len())
}

func TestSeventyFiveMoveRule(t *testing.T) {
	m := kings()
	m[White][Queen] = square("d1")
	assert.False(t, IsAutomaticDraw(&m, 149, 1))
	assert.True(t, IsAutomaticDraw(&m, 150, 1))
}

func TestStrings(t *testing.T) {
	assert.Equal(t, "black", White.Other().String())
	assert.Equal(t, "knight", Knight.String())
	assert.Equal(t, "unknown", PieceClass(9).String())
}
