package uci

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	. "github.com/cyberchai/ChessBot/internal/helpers"
	"github.com/cyberchai/ChessBot/internal/oracle"
	. "github.com/cyberchai/ChessBot/internal/runner"
)

// NullMove is what UCI expects for bestmove when the game is over.
const NullMove = "0000"

type UciRunner struct {
	Runner Runner
}

func NewUciRunner(r Runner) *UciRunner {
	return &UciRunner{Runner: r}
}

func parseFen(input string) (string, Error) {
	s := strings.TrimSpace(strings.TrimPrefix(input, "position"))

	if strings.HasPrefix(s, "fen ") {
		s = strings.TrimPrefix(s, "fen ")
		return strings.TrimSpace(strings.Split(s, " moves")[0]), NilError
	} else if strings.HasPrefix(s, "startpos") {
		return oracle.StartFen, NilError
	}

	return "", Errorf("couldn't parse '%v'", input)
}

func parseMoves(input string) []string {
	result := []string{}
	if strings.Contains(input, " moves ") {
		fields := strings.Fields(strings.SplitN(input, " moves ", 2)[1])
		result = append(result, fields...)
	}
	return result
}

func parsePosition(input string) (Position, Error) {
	fen, err := parseFen(input)
	if err.HasError() {
		return Position{}, err
	}
	return Position{Fen: fen, Moves: parseMoves(input)}, NilError
}

// parseGo reads the "depth N" and "movetime ms" arguments and ignores the
// clock arguments, which the engine has no use for.
func parseGo(input string) (SearchParams, Error) {
	params := SearchParams{}
	fields := strings.Fields(input)
	for i := 1; i < len(fields); i++ {
		switch fields[i] {
		case "depth", "movetime":
			if i+1 >= len(fields) {
				return params, Errorf("missing value for %v in '%v'", fields[i], input)
			}
			n, err := strconv.Atoi(fields[i+1])
			if err != nil {
				return params, Wrap(err)
			}
			if n < 0 {
				return params, Errorf("negative %v in '%v'", fields[i], input)
			}
			if fields[i] == "depth" {
				params.Depth = Some(n)
			} else {
				params.Duration = Some(time.Duration(n) * time.Millisecond)
			}
			i++
		}
	}
	return params, NilError
}

func (u *UciRunner) HandleInput(input string) ([]string, Error) {
	input = strings.TrimSpace(input)
	result := []string{}
	if input == "uci" {
		result = append(result, "id name ChessBot")
		result = append(result, "id author cyberchai")
		result = append(result, "uciok")
	} else if input == "ucinewgame" {
		u.Runner.Reset()
	} else if input == "isready" {
		result = append(result, "readyok")
	} else if strings.HasPrefix(input, "position ") {
		position, err := parsePosition(input)
		if err.HasError() {
			return result, err
		}
		if u.Runner.IsNew() {
			err = u.Runner.SetupPosition(position)
		} else {
			err = u.Runner.PerformMoves(position.Fen, position.Moves)
		}
		if err.HasError() {
			return result, err
		}
	} else if input == "go" || strings.HasPrefix(input, "go ") {
		params, err := parseGo(input)
		if err.HasError() {
			return result, err
		}
		if u.Runner.IsNew() {
			err = u.Runner.SetupPosition(Position{Fen: oracle.StartFen})
			if err.HasError() {
				return result, err
			}
		}

		searchResult, err := u.Runner.Search(context.Background(), params)
		if err.HasError() {
			return result, err
		}

		result = append(result, fmt.Sprintf("bestmove %v", searchResult.Move.ValueOr(NullMove)))
	}
	return result, NilError
}
