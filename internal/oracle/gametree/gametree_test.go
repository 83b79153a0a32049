package gametree

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cyberchai/ChessBot/internal/oracle"
)

func TestTreeWalk(t *testing.T) {
	tree := New(Branch("root", 0,
		Branch("a", 1, Leaf("a1", 2), Leaf("a2", -3)),
		Mated("b", -4),
	), oracle.White)

	assert.Equal(t, []string{"a", "b"}, tree.LegalMoves())
	assert.False(t, tree.IsTerminal())
	assert.Equal(t, oracle.White, tree.SideToMove())
	assert.True(t, tree.IsLegal("a"))
	assert.False(t, tree.IsLegal("a1"))

	tree.Apply("a")
	assert.Equal(t, oracle.Black, tree.SideToMove())
	assert.Equal(t, 1, tree.Count(oracle.Pawn, oracle.White))

	tree.Apply("a2")
	assert.True(t, tree.IsTerminal())
	assert.False(t, tree.IsCheckmate())
	assert.Equal(t, 3, tree.Count(oracle.Pawn, oracle.Black))
	assert.Equal(t, 0, tree.Count(oracle.Pawn, oracle.White))
	assert.Equal(t, 1, tree.Count(oracle.King, oracle.White))
	assert.Equal(t, "root/a/a2", tree.Path())

	tree.Undo()
	tree.Undo()
	tree.Apply("b")
	assert.True(t, tree.IsCheckmate())
	tree.Undo()

	assert.Equal(t, "root", tree.Path())
	assert.Equal(t, 3, tree.Applies)
	assert.Equal(t, 3, tree.Undos)
}

func TestTreeContractViolations(t *testing.T) {
	tree := New(Branch("root", 0, Leaf("a", 0)), oracle.Black)
	assert.Panics(t, func() { tree.Undo() })
	assert.Panics(t, func() { tree.Apply("missing") })
}

func TestRandomTree(t *testing.T) {
	root := Random(rand.New(rand.NewSource(1)), 3, 4, 5)

	var walk func(n *Node, depth int)
	walk = func(n *Node, depth int) {
		assert.True(t, n.Balance >= -5 && n.Balance <= 5)
		if depth == 0 {
			assert.Empty(t, n.Children)
			return
		}
		assert.True(t, len(n.Children) >= 1 && len(n.Children) <= 4)
		for _, c := range n.Children {
			walk(c, depth-1)
		}
	}
	walk(root, 3)
}
