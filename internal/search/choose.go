package search

import (
	"context"
	"math/rand"
	"strings"
	"time"

	. "github.com/cyberchai/ChessBot/internal/helpers"
	"github.com/cyberchai/ChessBot/internal/oracle"
)

// Choice is the decision for the side to move. Score is from that side's
// point of view. Fallback is set when the search did not produce a usable
// move and a random legal move was picked instead.
type Choice[M comparable] struct {
	Move        Optional[M]
	Score       float64
	Fallback    bool
	Provisional bool
	Stats       Stats
}

type rootSearchFunc[M comparable] func(ctx context.Context, s *Searcher[M]) Result[M]

func rootSearch[M comparable](ctx context.Context, s *Searcher[M]) Result[M] {
	return s.Search(ctx, s.options.Depth, -Inf, Inf, true)
}

// ChooseMove searches for the side to move, which always maximizes its own
// advantage. It returns an empty choice only when there are no legal moves.
func ChooseMove[M comparable](ctx context.Context, logger Logger, o oracle.Oracle[M], options Options, rng *rand.Rand) Choice[M] {
	return chooseMove(ctx, logger, o, options, rng, rootSearch[M])
}

func chooseMove[M comparable](
	ctx context.Context,
	logger Logger,
	o oracle.Oracle[M],
	options Options,
	rng *rand.Rand,
	search rootSearchFunc[M],
) Choice[M] {
	legalMoves := o.LegalMoves()
	if len(legalMoves) == 0 {
		return Choice[M]{}
	}

	s := NewSearcher(logger, o, options)
	s.Perspective = o.SideToMove()

	result := search(ctx, s)
	choice := Choice[M]{
		Move:        result.Move,
		Score:       result.Score,
		Provisional: result.Provisional,
		Stats:       s.Stats,
	}

	if result.Move.HasValue() && o.IsLegal(result.Move.Value()) {
		logger.Println("evaluated",
			"to depth", options.Depth,
			"-", s.Stats,
			"- best move", s.moveString(result.Move.Value()),
			"- score", ScoreString(result.Score))
		return choice
	}

	// the position may have changed under the search, so ask again
	legalMoves = o.LegalMoves()

	if result.Move.HasValue() {
		logger.Println("search returned an illegal move", s.moveString(result.Move.Value()),
			"- legal moves:", strings.Join(MapSlice(legalMoves, s.moveString), " "))
	} else {
		logger.Println("search returned no move at depth", options.Depth)
	}

	if len(legalMoves) == 0 {
		choice.Move = Empty[M]()
		return choice
	}

	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	choice.Move = Some(legalMoves[rng.Intn(len(legalMoves))])
	choice.Fallback = true
	logger.Println("falling back to random move", s.moveString(choice.Move.Value()))
	return choice
}
