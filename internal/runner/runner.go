package runner

import (
	"context"
	"time"

	. "github.com/cyberchai/ChessBot/internal/helpers"
)

type Position struct {
	Fen   string
	Moves []string
}

type SearchParams struct {
	Depth    Optional[int]
	Duration Optional[time.Duration]
}

// SearchResult is what a runner reports back to a front end.
type SearchResult struct {
	Move     Optional[string]
	Score    float64
	Fallback bool
	Nodes    int
}

type Runner interface {
	SetupPosition(position Position) Error
	PerformMoves(startFen string, moves []string) Error
	PerformMoveFromString(s string) Error
	Rewind(num int) Error
	Reset()
	IsNew() bool
	IsTerminal() bool
	Fen() string
	LegalMoves() []string
	MoveHistory() []string
	Search(ctx context.Context, params SearchParams) (SearchResult, Error)
}

const (
	DragonOracle = "dragon"
	NotnilOracle = "notnil"
)

var AllOracles = []string{DragonOracle, NotnilOracle}

// New builds a runner over the named oracle. An empty name picks dragon.
func New(oracleName string, opts ...RunnerOption) (Runner, Error) {
	switch oracleName {
	case "", DragonOracle:
		return NewDragonRunner(opts...), NilError
	case NotnilOracle:
		return NewNotnilRunner(opts...), NilError
	}
	return nil, Errorf("unknown oracle %q, expected one of %v", oracleName, AllOracles)
}
