package oracle

import "strings"

const (
	// SeventyFiveMoveHalfmoves ends the game without a claim.
	SeventyFiveMoveHalfmoves = 150
	// FivefoldRepetition ends the game without a claim.
	FivefoldRepetition = 5
)

// History is a stack of position keys used to spot repetitions. It is pushed
// and popped alongside the oracle's own apply/undo stack.
type History[K comparable] struct {
	keys []K
}

func (h *History[K]) Push(key K) {
	h.keys = append(h.keys, key)
}

func (h *History[K]) Pop() {
	if len(h.keys) > 0 {
		h.keys = h.keys[:len(h.keys)-1]
	}
}

func (h *History[K]) Len() int {
	return len(h.keys)
}

// Repetitions counts how often the most recent key occurs.
func (h *History[K]) Repetitions() int {
	if len(h.keys) == 0 {
		return 0
	}
	last := h.keys[len(h.keys)-1]
	count := 0
	for _, k := range h.keys {
		if k == last {
			count++
		}
	}
	return count
}

// IsAutomaticDraw applies the draw rules that end a game without either side
// claiming them.
func IsAutomaticDraw(material *Material, halfmoveClock int, repetitions int) bool {
	return halfmoveClock >= SeventyFiveMoveHalfmoves ||
		repetitions >= FivefoldRepetition ||
		material.IsInsufficient()
}

// RepetitionKey reduces a FEN to what makes two positions the same for the
// repetition rule: placement, side to move, castling rights, and the en
// passant square only when some legal move actually captures there.
func RepetitionKey(fen string, enPassantCapturable func(square string) bool) string {
	fields := strings.Fields(fen)
	if len(fields) > 4 {
		fields = fields[:4]
	}
	if len(fields) == 4 && fields[3] != "-" && !enPassantCapturable(fields[3]) {
		fields[3] = "-"
	}
	return strings.Join(fields, " ")
}
