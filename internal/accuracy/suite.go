package accuracy

import (
	"context"
	"time"

	. "github.com/cyberchai/ChessBot/internal/helpers"
	"github.com/cyberchai/ChessBot/internal/runner"
	"github.com/cyberchai/ChessBot/internal/search"
)

// DefaultSuite is used by the bench when no EPD file is given. Only the
// hanging pieces are expected to be found by a shallow material search.
var DefaultSuite = []string{
	`r3k3/8/8/8/8/8/8/Q6K b - - bm Rxa1; id "hanging queen";`,
	`6k1/5ppp/8/8/8/8/8/R5K1 w - - bm Ra8#; id "back rank";`,
	`4k3/8/8/3q4/8/8/3R4/3RK3 w - - bm Rxd5; id "defended rook takes queen";`,
	`r1bqk1r1/1p1p1n2/p1n2pN1/2p1b2Q/2P1Pp2/1PN5/PB4PP/R4RK1 w q - bm Rxf4; id "ERET 001 - Relief";`,
	`2rq1rk1/pb1n1ppN/4p3/1pb5/3P1Pn1/P1N5/1PQ1B1PP/R1B2RK1 b - - bm Nde5; id "ERET 007 - Bishop Pair";`,
	`r1b2r1k/ppp2ppp/8/4p3/2BPQ3/P3P1K1/1B3PPP/n3q1NR w - - bm dxe5; id "ERET 011 - Attacking Castle";`,
}

type EpdResult struct {
	Epd      string
	Id       string
	Move     string
	Success  bool
	Fallback bool
	Score    string
	Nodes    int
	Duration time.Duration
}

func calculateSuccess(move string, bestMoves []string, avoidMoves []string) bool {
	if len(bestMoves) > 0 && !Contains(bestMoves, move) {
		return false
	}
	if len(avoidMoves) > 0 && Contains(avoidMoves, move) {
		return false
	}
	return true
}

func SearchEpd(ctx context.Context, r runner.Runner, epd string, params runner.SearchParams) (EpdResult, Error) {
	parsed, err := ParseEpd(epd)
	if err.HasError() {
		return EpdResult{}, err
	}

	err = r.SetupPosition(runner.Position{Fen: parsed.Fen})
	if err.HasError() {
		return EpdResult{}, err
	}

	start := time.Now()
	found, err := r.Search(ctx, params)
	if err.HasError() {
		return EpdResult{}, err
	}
	if found.Move.IsEmpty() {
		return EpdResult{}, Errorf("no moves found for %v", parsed.Id)
	}

	return EpdResult{
		Epd:      epd,
		Id:       parsed.Id,
		Move:     found.Move.Value(),
		Success:  calculateSuccess(found.Move.Value(), parsed.BestMoves, parsed.AvoidMoves),
		Fallback: found.Fallback,
		Score:    search.ScoreString(found.Score),
		Nodes:    found.Nodes,
		Duration: time.Since(start),
	}, NilError
}
