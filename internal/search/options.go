package search

import (
	"fmt"
	"strconv"
	"strings"

	. "github.com/cyberchai/ChessBot/internal/helpers"
)

const DefaultDepth = 2

type Options struct {
	Depth int

	// exhaustive minimax, used to check that pruning never changes a result
	withoutPruning bool
	// score checkmates as +/-(MateScore + depth left) instead of by material
	scoreTerminals  bool
	logPruning      bool
	debugSearchTree *debugSearchTree
}

var DefaultSearchOptions = Options{
	Depth: DefaultDepth,
}

var AllSearchOptions = []string{
	"depth",
	"withoutPruning",
	"scoreTerminals",
	"logPruning",
	"debugSearchTree",
}

func OptionsFromArgs(args ...string) (Options, Error) {
	options := DefaultSearchOptions

	for _, arg := range args {
		if strings.HasPrefix(arg, "depth") {
			if !strings.Contains(arg, "=") {
				return options, Errorf("depth needs a value: %s", arg)
			}
			n, err := strconv.ParseInt(strings.SplitN(arg, "=", 2)[1], 10, 64)
			if err != nil {
				return options, Wrap(err)
			}
			if n < 0 {
				return options, Errorf("depth must not be negative: %s", arg)
			}
			options.Depth = int(n)
		} else if arg == "withoutPruning" {
			options.withoutPruning = true
		} else if arg == "scoreTerminals" {
			options.scoreTerminals = true
		} else if arg == "logPruning" {
			options.logPruning = true
		} else if arg == "debugSearchTree" {
			options.debugSearchTree = &debugSearchTree{}
		} else {
			return options, Errorf("unknown option: %s", arg)
		}
	}

	return options, NilError
}

func (o Options) WithDepth(depth int) Options {
	o.Depth = depth
	return o
}

// Fresh returns a copy with its own search trace.
func (o Options) Fresh() Options {
	if o.debugSearchTree != nil {
		o.debugSearchTree = &debugSearchTree{}
	}
	return o
}

// DebugTree returns the recorded search trace, or an empty string when the
// debugSearchTree option is off.
func (o Options) DebugTree(depth int) string {
	if o.debugSearchTree == nil {
		return ""
	}
	return o.debugSearchTree.DebugString(depth)
}

// String lists the options in the form OptionsFromArgs reads them.
func (o Options) String() string {
	args := []string{fmt.Sprint("depth=", o.Depth)}
	if o.withoutPruning {
		args = append(args, "withoutPruning")
	}
	if o.scoreTerminals {
		args = append(args, "scoreTerminals")
	}
	if o.logPruning {
		args = append(args, "logPruning")
	}
	if o.debugSearchTree != nil {
		args = append(args, "debugSearchTree")
	}
	return strings.Join(args, " ")
}
