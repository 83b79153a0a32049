package search

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	. "github.com/cyberchai/ChessBot/internal/helpers"
)

func TestOptionsFromArgs(t *testing.T) {
	options, err := OptionsFromArgs()
	assert.True(t, IsNil(err), err)
	assert.Equal(t, DefaultDepth, options.Depth)
	assert.False(t, options.withoutPruning)

	options, err = OptionsFromArgs("depth=4", "withoutPruning", "scoreTerminals", "logPruning", "debugSearchTree")
	assert.True(t, IsNil(err), err)
	assert.Equal(t, 4, options.Depth)
	assert.True(t, options.withoutPruning)
	assert.True(t, options.scoreTerminals)
	assert.True(t, options.logPruning)
	assert.NotNil(t, options.debugSearchTree)

	for _, bad := range []string{"depth", "depth=x", "depth=-1", "quiescence"} {
		_, err = OptionsFromArgs(bad)
		assert.True(t, err.HasError(), bad)
	}
}

func TestOptionsString(t *testing.T) {
	assert.Equal(t, "depth=2", DefaultSearchOptions.String())

	args := []string{"depth=3", "withoutPruning", "scoreTerminals", "logPruning", "debugSearchTree"}
	options, err := OptionsFromArgs(args...)
	assert.True(t, IsNil(err), err)
	assert.Equal(t, strings.Join(args, " "), options.String())
}

func TestWithDepth(t *testing.T) {
	options := DefaultSearchOptions.WithDepth(5)
	assert.Equal(t, 5, options.Depth)
	assert.Equal(t, DefaultDepth, DefaultSearchOptions.Depth)
}

func TestScoreString(t *testing.T) {
	assert.Equal(t, "3", ScoreString(3))
	assert.Equal(t, "-1.5", ScoreString(-1.5))
	assert.Equal(t, "+inf", ScoreString(Inf))
	assert.Equal(t, "-inf", ScoreString(math.Inf(-1)))
	assert.Equal(t, "mate+2", ScoreString(MateScore+2))
	assert.Equal(t, "mate-0", ScoreString(-MateScore))
	assert.False(t, IsMate(Inf))
	assert.True(t, IsMate(-MateScore-1))
}

func TestStatsString(t *testing.T) {
	assert.Equal(t, "nodes 12,345, evals 1,000, cutoffs 7", Stats{12345, 1000, 7}.String())
}

func TestFreshOptionsDoNotShareTheTrace(t *testing.T) {
	options, err := OptionsFromArgs("debugSearchTree")
	assert.True(t, IsNil(err), err)

	fresh := options.Fresh()
	assert.NotNil(t, fresh.debugSearchTree)
	assert.NotSame(t, options.debugSearchTree, fresh.debugSearchTree)

	fresh.debugSearchTree.MovePush("e2e4", true, -Inf, Inf)
	assert.Empty(t, options.debugSearchTree.Result)

	assert.Nil(t, DefaultSearchOptions.Fresh().debugSearchTree)
}
