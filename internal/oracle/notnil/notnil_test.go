package notnil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	. "github.com/cyberchai/ChessBot/internal/helpers"
	"github.com/cyberchai/ChessBot/internal/oracle"
)

func TestStartingPosition(t *testing.T) {
	assert.Equal(t, oracle.StartFen, StartingPosition().Fen())

	pos := StartingPosition()

	assert.Len(t, pos.LegalMoves(), 20)
	assert.False(t, pos.IsTerminal())
	assert.False(t, pos.IsCheckmate())
	assert.Equal(t, oracle.White, pos.SideToMove())
	assert.Equal(t, 8, pos.Count(oracle.Pawn, oracle.White))
	assert.Equal(t, 2, pos.Count(oracle.Knight, oracle.Black))
	assert.Equal(t, 1, pos.Count(oracle.King, oracle.Black))
}

func TestInvalidFen(t *testing.T) {
	_, err := FromFen("not a fen")
	assert.True(t, err.HasError())
}

func TestApplyUndoRestoresPosition(t *testing.T) {
	pos := StartingPosition()
	before := pos.Fen()

	for _, uci := range []string{"e2e4", "e7e5", "g1f3", "b8c6"} {
		move, err := pos.ParseMove(uci)
		require.True(t, IsNil(err), err)
		pos.Apply(move)
	}
	assert.Equal(t, 4, pos.Ply())
	assert.Equal(t, oracle.White, pos.SideToMove())

	for i := 0; i < 4; i++ {
		pos.Undo()
	}
	assert.Equal(t, before, pos.Fen())
	assert.Equal(t, 0, pos.Ply())
}

func TestUndoWithoutApplyPanics(t *testing.T) {
	pos := StartingPosition()
	assert.Panics(t, func() { pos.Undo() })
}

func TestParseMove(t *testing.T) {
	pos := StartingPosition()

	move, err := pos.ParseMove("g1f3")
	assert.True(t, IsNil(err), err)
	assert.Equal(t, "g1f3", pos.MoveString(move))
	assert.True(t, pos.IsLegal(move))

	_, err = pos.ParseMove("e2e5")
	assert.True(t, err.HasError())

	move, err = pos.ParseMove(" E2E4 ")
	assert.True(t, IsNil(err), err)
	assert.Equal(t, "e2e4", move)
}

func TestCheckmate(t *testing.T) {
	// fool's mate, white to move and mated
	pos, err := FromFen("rnb1kbnr/pppp1ppp/8/4p3/6Pq/5P2/PPPPP2P/RNBQKBNR w KQkq - 1 3")
	require.True(t, IsNil(err), err)

	assert.Empty(t, pos.LegalMoves())
	assert.True(t, pos.IsTerminal())
	assert.True(t, pos.IsCheckmate())
}

func TestStalemate(t *testing.T) {
	pos, err := FromFen("7k/5Q2/6K1/8/8/8/8/8 b - - 0 1")
	require.True(t, IsNil(err), err)

	assert.True(t, pos.IsTerminal())
	assert.False(t, pos.IsCheckmate())
}

func TestInsufficientMaterialIsTerminal(t *testing.T) {
	pos, err := FromFen("8/8/4k3/8/8/3NK3/8/8 w - - 0 1")
	require.True(t, IsNil(err), err)

	assert.NotEmpty(t, pos.LegalMoves())
	assert.True(t, pos.IsTerminal())
	assert.False(t, pos.IsCheckmate())
}

func TestSeventyFiveMoveRule(t *testing.T) {
	pos, err := FromFen("8/8/4k3/8/8/3RK3/8/8 w - - 150 100")
	require.True(t, IsNil(err), err)
	assert.True(t, pos.IsTerminal())

	pos, err = FromFen("8/8/4k3/8/8/3RK3/8/8 w - - 20 100")
	require.True(t, IsNil(err), err)
	assert.False(t, pos.IsTerminal())
}

func TestFivefoldRepetition(t *testing.T) {
	pos := StartingPosition()
	shuffle := []string{"g1f3", "g8f6", "f3g1", "f6g8"}

	for i := 0; i < 4; i++ {
		assert.False(t, pos.IsTerminal())
		for _, uci := range shuffle {
			move, err := pos.ParseMove(uci)
			require.True(t, IsNil(err), err)
			pos.Apply(move)
		}
	}
	assert.True(t, pos.IsTerminal())

	pos.Undo()
	assert.False(t, pos.IsTerminal())
}

func TestFivefoldRepetitionIgnoresUnusableEnPassant(t *testing.T) {
	pos := StartingPosition()
	move, err := pos.ParseMove("e2e4")
	require.True(t, IsNil(err), err)
	pos.Apply(move)

	shuffle := []string{"g8f6", "g1f3", "f6g8", "f3g1"}
	for i := 0; i < 4; i++ {
		assert.False(t, pos.IsTerminal())
		for _, uci := range shuffle {
			move, err := pos.ParseMove(uci)
			require.True(t, IsNil(err), err)
			pos.Apply(move)
		}
	}
	assert.True(t, pos.IsTerminal())
}

func TestRepetitionKeepsUsableEnPassant(t *testing.T) {
	pos, err := FromFen("4k3/8/8/3Pp3/8/8/8/4K3 w - e6 0 1")
	require.True(t, IsNil(err), err)
	assert.Equal(t, "4k3/8/8/3Pp3/8/8/8/4K3 w - e6", repetitionKeyOf(pos))

	pos, err = FromFen("4k3/8/8/4p3/8/8/8/4K3 w - e6 0 1")
	require.True(t, IsNil(err), err)
	assert.Equal(t, "4k3/8/8/4p3/8/8/8/4K3 w - -", repetitionKeyOf(pos))
}

func repetitionKeyOf(pos *Position) string {
	return repetitionKey(pos.current())
}

func TestKinglessFenIsRejected(t *testing.T) {
	for _, fen := range []string{
		"8/8/8/8/8/8/8/8 w - - 0 1",
		"4k3/8/8/8/8/8/8/8 w - - 0 1",
	} {
		_, err := FromFen(fen)
		assert.True(t, err.HasError(), fen)
	}
}
