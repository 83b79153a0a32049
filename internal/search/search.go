// Package search picks moves by depth-limited minimax with alpha-beta
// pruning. The position is mutated in place through its oracle and every
// applied move is undone before the frame that applied it returns.
package search

import (
	"context"
	"fmt"
	"math"

	"github.com/dustin/go-humanize"

	"github.com/cyberchai/ChessBot/internal/evaluation"
	. "github.com/cyberchai/ChessBot/internal/helpers"
	"github.com/cyberchai/ChessBot/internal/oracle"
)

// Result is the backed-up score of a node and the move that achieves it. Move
// is empty at terminal and depth-zero nodes. Provisional is set when the
// context was cancelled before the subtree was fully searched.
type Result[M comparable] struct {
	Score       float64
	Move        Optional[M]
	Provisional bool
}

type Stats struct {
	Nodes       int
	Evaluations int
	Cutoffs     int
}

func (s Stats) String() string {
	return fmt.Sprint(
		"nodes ", humanize.Comma(int64(s.Nodes)),
		", evals ", humanize.Comma(int64(s.Evaluations)),
		", cutoffs ", humanize.Comma(int64(s.Cutoffs)))
}

type Searcher[M comparable] struct {
	Logger Logger
	Oracle oracle.Oracle[M]

	// Perspective is the side whose advantage is maximized. With the
	// evaluator's reference side, scores equal the static evaluation.
	Perspective oracle.Side

	Stats Stats

	options Options
}

func NewSearcher[M comparable](logger Logger, o oracle.Oracle[M], options Options) *Searcher[M] {
	return &Searcher[M]{
		Logger:      logger,
		Oracle:      o,
		Perspective: evaluation.ReferenceSide,
		options:     options,
	}
}

func (s *Searcher[M]) scoreDirection() float64 {
	if s.Perspective == evaluation.ReferenceSide {
		return 1
	}
	return -1
}

func (s *Searcher[M]) moveString(move M) string {
	if formatter, ok := s.Oracle.(oracle.MoveFormatter[M]); ok {
		return formatter.MoveString(move)
	}
	return fmt.Sprint(move)
}

func (s *Searcher[M]) evaluateLeaf(depth int, terminal bool) float64 {
	s.Stats.Evaluations++
	if terminal && s.options.scoreTerminals {
		return s.scoreDirection() * s.terminalScore(depth)
	}
	return s.scoreDirection() * evaluation.Evaluate(s.Oracle)
}

// terminalScore is board-relative, like the evaluator.
func (s *Searcher[M]) terminalScore(depth int) float64 {
	reporter, ok := s.Oracle.(oracle.MateReporter)
	if !ok {
		return evaluation.Evaluate(s.Oracle)
	}
	if !reporter.IsCheckmate() {
		return 0
	}
	score := MateScore + float64(depth)
	if s.Oracle.SideToMove() == evaluation.ReferenceSide {
		return -score
	}
	return score
}

func (s *Searcher[M]) Search(ctx context.Context, depth int, alpha float64, beta float64, maximizing bool) Result[M] {
	s.Stats.Nodes++

	terminal := false
	if depth > 0 || s.options.scoreTerminals {
		terminal = s.Oracle.IsTerminal()
	}
	if depth <= 0 || terminal {
		return Result[M]{Score: s.evaluateLeaf(depth, terminal)}
	}

	result := Result[M]{Score: -Inf}
	if !maximizing {
		result.Score = Inf
	}

	for _, move := range s.Oracle.LegalMoves() {
		if ctx.Err() != nil {
			result.Provisional = true
			break
		}

		child := s.searchMove(ctx, move, depth, alpha, beta, maximizing)

		if child.Provisional {
			result.Provisional = true
			if result.Move.IsEmpty() {
				result.Score, result.Move = child.Score, Some(move)
			}
			break
		}

		// strictly better only: ties keep the first move found
		if maximizing {
			if child.Score > result.Score {
				result.Score, result.Move = child.Score, Some(move)
			}
			if !s.options.withoutPruning {
				alpha = math.Max(alpha, child.Score)
			}
		} else {
			if child.Score < result.Score {
				result.Score, result.Move = child.Score, Some(move)
			}
			if !s.options.withoutPruning {
				beta = math.Min(beta, child.Score)
			}
		}

		if !s.options.withoutPruning && beta <= alpha {
			s.Stats.Cutoffs++
			if s.options.logPruning {
				s.Logger.Printf("pruning at depth %d with alpha=%v, beta=%v\n",
					depth, ScoreString(alpha), ScoreString(beta))
			}
			break
		}
	}

	return result
}

func (s *Searcher[M]) searchMove(ctx context.Context, move M, depth int, alpha float64, beta float64, maximizing bool) (result Result[M]) {
	if tree := s.options.debugSearchTree; tree != nil {
		label := s.moveString(move)
		tree.MovePush(label, maximizing, alpha, beta)
		defer func() {
			tree.MovePop(label, maximizing, alpha, beta, result.Score)
		}()
	}

	s.Oracle.Apply(move)
	defer s.Oracle.Undo()

	return s.Search(ctx, depth-1, alpha, beta, !maximizing)
}
