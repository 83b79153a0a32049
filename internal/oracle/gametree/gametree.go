// Package gametree is an oracle over an explicit tree of positions. Each node
// carries the material balance (in pawns, from white's point of view) that
// the evaluator should see there, which makes it easy to build trees with a
// known minimax value.
package gametree

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/cyberchai/ChessBot/internal/oracle"
)

type Node struct {
	Name     string
	Balance  int
	Mate     bool
	Children []*Node
}

func Leaf(name string, balance int) *Node {
	return &Node{Name: name, Balance: balance}
}

func Branch(name string, balance int, children ...*Node) *Node {
	return &Node{Name: name, Balance: balance, Children: children}
}

// Mated is a terminal node where the side to move has been checkmated.
func Mated(name string, balance int) *Node {
	return &Node{Name: name, Balance: balance, Mate: true}
}

// Random builds a tree of the given depth where every interior node has
// between 1 and maxBranching children and balances lie in [-spread, spread].
func Random(rng *rand.Rand, depth int, maxBranching int, spread int) *Node {
	var build func(name string, depth int) *Node
	build = func(name string, depth int) *Node {
		n := &Node{Name: name, Balance: rng.Intn(2*spread+1) - spread}
		if depth == 0 {
			return n
		}
		branching := 1 + rng.Intn(maxBranching)
		for i := 0; i < branching; i++ {
			n.Children = append(n.Children, build(fmt.Sprintf("%s.%d", name, i), depth-1))
		}
		return n
	}
	return build("root", depth)
}

// Tree walks a Node graph. Moves are child names.
type Tree struct {
	root   *Node
	toMove oracle.Side
	path   []*Node

	Applies int
	Undos   int
}

var _ oracle.Oracle[string] = (*Tree)(nil)
var _ oracle.MateReporter = (*Tree)(nil)

func New(root *Node, toMove oracle.Side) *Tree {
	return &Tree{root: root, toMove: toMove, path: []*Node{root}}
}

func (t *Tree) current() *Node {
	return t.path[len(t.path)-1]
}

func (t *Tree) Path() string {
	return strings.Join(t.names(), "/")
}

func (t *Tree) names() []string {
	names := make([]string, len(t.path))
	for i, n := range t.path {
		names[i] = n.Name
	}
	return names
}

func (t *Tree) LegalMoves() []string {
	moves := make([]string, len(t.current().Children))
	for i, c := range t.current().Children {
		moves[i] = c.Name
	}
	return moves
}

func (t *Tree) child(move string) *Node {
	for _, c := range t.current().Children {
		if c.Name == move {
			return c
		}
	}
	return nil
}

func (t *Tree) Apply(move string) {
	c := t.child(move)
	if c == nil {
		panic(fmt.Sprintf("gametree: %v is not a child of %v", move, t.Path()))
	}
	t.Applies++
	t.path = append(t.path, c)
}

func (t *Tree) Undo() {
	if len(t.path) <= 1 {
		panic("gametree: undo without a matching apply")
	}
	t.Undos++
	t.path = t.path[:len(t.path)-1]
}

func (t *Tree) IsTerminal() bool {
	return len(t.current().Children) == 0
}

func (t *Tree) IsCheckmate() bool {
	return t.current().Mate
}

func (t *Tree) IsLegal(move string) bool {
	return t.child(move) != nil
}

func (t *Tree) SideToMove() oracle.Side {
	if (len(t.path)-1)%2 == 0 {
		return t.toMove
	}
	return t.toMove.Other()
}

// Count reports the node balance as surplus pawns for one side.
func (t *Tree) Count(piece oracle.PieceClass, side oracle.Side) int {
	balance := t.current().Balance
	switch {
	case piece == oracle.King:
		return 1
	case piece != oracle.Pawn:
		return 0
	case side == oracle.White && balance > 0:
		return balance
	case side == oracle.Black && balance < 0:
		return -balance
	}
	return 0
}

func (t *Tree) MoveString(move string) string {
	return move
}
