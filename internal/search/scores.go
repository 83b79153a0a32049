package search

import (
	"fmt"
	"math"
	"strconv"
)

var Inf = math.Inf(1)

// MateScore is larger than any material balance. A checkmate found with d
// plies of depth left scores MateScore+d so that faster mates rank higher.
const MateScore = 1000.0

func IsMate(score float64) bool {
	return !math.IsInf(score, 0) && math.Abs(score) >= MateScore
}

func ScoreString(score float64) string {
	switch {
	case math.IsInf(score, 1):
		return "+inf"
	case math.IsInf(score, -1):
		return "-inf"
	case IsMate(score) && score > 0:
		return fmt.Sprint("mate+", score-MateScore)
	case IsMate(score):
		return fmt.Sprint("mate-", -score-MateScore)
	}
	return strconv.FormatFloat(score, 'f', -1, 64)
}
