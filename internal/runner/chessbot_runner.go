package runner

import (
	"context"
	"math/rand"
	"time"

	"github.com/dylhunn/dragontoothmg"

	. "github.com/cyberchai/ChessBot/internal/helpers"
	"github.com/cyberchai/ChessBot/internal/oracle"
	"github.com/cyberchai/ChessBot/internal/oracle/dragon"
	"github.com/cyberchai/ChessBot/internal/oracle/notnil"
	"github.com/cyberchai/ChessBot/internal/search"
)

// game is the oracle plus what a front end needs to talk in UCI strings.
type game[M comparable] interface {
	oracle.Oracle[M]
	Fen() string
	ParseMove(s string) (M, Error)
	MoveString(move M) string
}

type ChessBotRunner[M comparable] struct {
	Logger Logger

	options search.Options
	rng     *rand.Rand
	fromFen func(fen string) (game[M], Error)

	g        game[M]
	StartFen string
	history  []string
}

var _ Runner = (*ChessBotRunner[dragontoothmg.Move])(nil)
var _ Runner = (*ChessBotRunner[string])(nil)

type runnerConfig struct {
	logger  Logger
	options search.Options
	rng     *rand.Rand
}

type RunnerOption func(*runnerConfig)

func WithLogger(logger Logger) RunnerOption {
	return func(c *runnerConfig) {
		c.logger = logger
	}
}

func WithSearchOptions(options search.Options) RunnerOption {
	return func(c *runnerConfig) {
		c.options = options
	}
}

func WithRand(rng *rand.Rand) RunnerOption {
	return func(c *runnerConfig) {
		c.rng = rng
	}
}

func newChessBotRunner[M comparable](fromFen func(string) (game[M], Error), opts ...RunnerOption) *ChessBotRunner[M] {
	config := runnerConfig{
		logger:  &SilentLogger,
		options: search.DefaultSearchOptions,
	}
	for _, opt := range opts {
		opt(&config)
	}
	if config.rng == nil {
		config.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	return &ChessBotRunner[M]{
		Logger:  config.logger,
		options: config.options.Fresh(),
		rng:     config.rng,
		fromFen: fromFen,
	}
}

func NewDragonRunner(opts ...RunnerOption) *ChessBotRunner[dragontoothmg.Move] {
	return newChessBotRunner(func(fen string) (game[dragontoothmg.Move], Error) {
		pos, err := dragon.FromFen(fen)
		if err.HasError() {
			return nil, err
		}
		return pos, NilError
	}, opts...)
}

func NewNotnilRunner(opts ...RunnerOption) *ChessBotRunner[string] {
	return newChessBotRunner(func(fen string) (game[string], Error) {
		pos, err := notnil.FromFen(fen)
		if err.HasError() {
			return nil, err
		}
		return pos, NilError
	}, opts...)
}

func (r *ChessBotRunner[M]) Reset() {
	r.g = nil
	r.StartFen = ""
	r.history = []string{}
}

func (r *ChessBotRunner[M]) IsNew() bool {
	return r.g == nil
}

func (r *ChessBotRunner[M]) SetupPosition(position Position) Error {
	g, err := r.fromFen(position.Fen)
	if err.HasError() {
		return Errorf("SetupPosition: %w", err)
	}

	r.g = g
	r.StartFen = position.Fen
	r.history = []string{}

	for _, move := range position.Moves {
		err := r.PerformMoveFromString(move)
		if err.HasError() {
			return err
		}
	}
	return NilError
}

func (r *ChessBotRunner[M]) PerformMoveFromString(s string) Error {
	if r.IsNew() {
		return Errorf("PerformMoveFromString: no position set up")
	}
	move, err := r.g.ParseMove(s)
	if err.HasError() {
		return Errorf("PerformMoveFromString: %w", err)
	}
	r.g.Apply(move)
	r.history = append(r.history, r.g.MoveString(move))
	return NilError
}

func (r *ChessBotRunner[M]) Rewind(num int) Error {
	if num > len(r.history) {
		return Errorf("Rewind: only %v moves to rewind, asked for %v", len(r.history), num)
	}
	for i := 0; i < num; i++ {
		r.g.Undo()
		r.history = r.history[:len(r.history)-1]
	}
	return NilError
}

func firstIndexNotMatching(a []string, b []string) int {
	for i := 0; i < MinInt(len(a), len(b)); i++ {
		if a[i] != b[i] {
			return i
		}
	}
	return MinInt(len(a), len(b))
}

// PerformMoves brings the game to startFen followed by moves, replaying only
// what differs from the current history.
func (r *ChessBotRunner[M]) PerformMoves(startFen string, moves []string) Error {
	if r.IsNew() || r.StartFen != startFen {
		return r.SetupPosition(Position{Fen: startFen, Moves: moves})
	}

	common := firstIndexNotMatching(r.history, moves)
	err := r.Rewind(len(r.history) - common)
	if err.HasError() {
		return err
	}

	for _, move := range moves[common:] {
		err := r.PerformMoveFromString(move)
		if err.HasError() {
			return err
		}
	}
	return NilError
}

func (r *ChessBotRunner[M]) IsTerminal() bool {
	return r.g != nil && r.g.IsTerminal()
}

func (r *ChessBotRunner[M]) Fen() string {
	if r.g == nil {
		return ""
	}
	return r.g.Fen()
}

func (r *ChessBotRunner[M]) LegalMoves() []string {
	if r.g == nil {
		return []string{}
	}
	return MapSlice(r.g.LegalMoves(), r.g.MoveString)
}

func (r *ChessBotRunner[M]) MoveHistory() []string {
	return append([]string{}, r.history...)
}

func (r *ChessBotRunner[M]) Search(ctx context.Context, params SearchParams) (SearchResult, Error) {
	if r.IsNew() {
		return SearchResult{}, Errorf("Search: no position set up")
	}

	options := r.options
	if params.Depth.HasValue() {
		options = options.WithDepth(params.Depth.Value())
	}
	if params.Duration.HasValue() {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, params.Duration.Value())
		defer cancel()
	}

	choice := search.ChooseMove[M](ctx, r.Logger, r.g, options, r.rng)

	result := SearchResult{
		Score:    choice.Score,
		Fallback: choice.Fallback,
		Nodes:    choice.Stats.Nodes,
	}
	if choice.Move.HasValue() {
		result.Move = Some(r.g.MoveString(choice.Move.Value()))
	}
	return result, NilError
}
