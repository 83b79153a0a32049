package accuracy

import (
	"bufio"
	"os"
	"strings"

	"github.com/notnil/chess"

	. "github.com/cyberchai/ChessBot/internal/helpers"
)

// Epd is one test position: a board, the moves a solver should play (bm)
// and the moves it must avoid (am).
type Epd struct {
	Epd string
	Fen string
	Id  string

	BestMoves  []string
	AvoidMoves []string
}

// EpdToFen keeps the four board fields of an EPD line and fills in the
// move counters, which EPD leaves out.
func EpdToFen(epd string) string {
	parts := strings.Fields(epd)
	parts = parts[0:MinInt(4, len(parts))]
	return strings.Join(parts, " ") + " 0 1"
}

func epdOperations(epd string) map[string][]string {
	result := map[string][]string{}

	fields := strings.Fields(epd)
	if len(fields) <= 4 {
		return result
	}
	rest := strings.Join(fields[4:], " ")

	for _, op := range strings.Split(rest, ";") {
		parts := strings.Fields(op)
		if len(parts) == 0 {
			continue
		}
		result[parts[0]] = append(result[parts[0]], parts[1:]...)
	}
	return result
}

func positionFromFen(fen string) (*chess.Position, Error) {
	opt, err := chess.FEN(fen)
	if err != nil {
		return nil, Wrap(err)
	}
	return chess.NewGame(opt).Position(), NilError
}

// MoveFromShorthand converts a SAN move like "Nde5" or "bxc5" to UCI.
func MoveFromShorthand(san string, fen string) (string, Error) {
	pos, err := positionFromFen(fen)
	if err.HasError() {
		return "", err
	}

	move, decodeErr := chess.AlgebraicNotation{}.Decode(pos, san)
	if decodeErr != nil {
		return "", Wrap(decodeErr)
	}
	return chess.UCINotation{}.Encode(pos, move), NilError
}

// MovesFromEpd returns the UCI moves listed for an opcode, eg "bm" or "am".
func MovesFromEpd(op string, epd string) ([]string, Error) {
	fen := EpdToFen(epd)
	result := []string{}
	for _, san := range epdOperations(epd)[op] {
		move, err := MoveFromShorthand(san, fen)
		if err.HasError() {
			return result, Errorf("%v %v in '%v': %w", op, san, epd, err)
		}
		result = append(result, move)
	}
	return result, NilError
}

func ParseEpd(epd string) (*Epd, Error) {
	fen := EpdToFen(epd)
	_, err := positionFromFen(fen)
	if err.HasError() {
		return nil, err
	}

	bestMoves, bestErr := MovesFromEpd("bm", epd)
	avoidMoves, avoidErr := MovesFromEpd("am", epd)
	if err := Join(bestErr, avoidErr); err.HasError() {
		return nil, err
	}

	if len(bestMoves) == 0 && len(avoidMoves) == 0 {
		return nil, Errorf("no bm or am in epd: %v", epd)
	}

	id := strings.Trim(strings.Join(epdOperations(epd)["id"], " "), "\"")

	return &Epd{
		Epd:        epd,
		Fen:        fen,
		Id:         id,
		BestMoves:  bestMoves,
		AvoidMoves: avoidMoves,
	}, NilError
}

func LoadEpd(path string) ([]string, Error) {
	file, err := WrapReturn(os.Open(path))
	if err.HasError() {
		return []string{}, err
	}
	defer file.Close()

	results := []string{}

	fscanner := bufio.NewScanner(file)
	for fscanner.Scan() {
		line := strings.TrimSpace(fscanner.Text())
		if len(line) == 0 || strings.HasPrefix(line, "#") {
			continue
		}

		results = append(results, line)
	}

	return results, Wrap(fscanner.Err())
}
