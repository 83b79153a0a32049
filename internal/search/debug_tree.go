package search

import (
	"fmt"
	"strings"

	. "github.com/cyberchai/ChessBot/internal/helpers"
)

type debugSearchLine struct {
	DebugString string
	Depth       int
	Alpha       float64
	Beta        float64
	Score       Optional[float64]
}

type debugSearchTree struct {
	CurrentDepth int
	Result       []debugSearchLine
}

// DebugString prints the finished lines above the given depth, most recent
// first.
func (s *debugSearchTree) DebugString(depth int) string {
	result := ""
	for i := range s.Result {
		line := s.Result[len(s.Result)-i-1]
		if line.Depth >= depth || line.Score.IsEmpty() {
			continue
		}
		result += fmt.Sprintf("%v%v (%v %v) %v\n",
			strings.Repeat(" ", line.Depth),
			line.DebugString,
			ScoreString(line.Alpha),
			ScoreString(line.Beta),
			ScoreString(line.Score.Value()))
	}
	return result
}

func playerString(isMaximizing bool) string {
	if isMaximizing {
		return "player"
	}
	return "enemy"
}

func (s *debugSearchTree) MovePush(move string, isMaximizing bool, alpha float64, beta float64) {
	s.Result = append(s.Result, debugSearchLine{
		DebugString: fmt.Sprintf("> %v (%v)", playerString(isMaximizing), move),
		Depth:       s.CurrentDepth,
		Alpha:       alpha,
		Beta:        beta,
	})
	s.CurrentDepth += 1
}

func (s *debugSearchTree) MovePop(move string, isMaximizing bool, alpha float64, beta float64, result float64) {
	s.CurrentDepth -= 1
	s.Result = append(s.Result, debugSearchLine{
		DebugString: fmt.Sprintf("$ %v (%v)", playerString(isMaximizing), move),
		Depth:       s.CurrentDepth,
		Alpha:       alpha,
		Beta:        beta,
		Score:       Some(result),
	})
}
