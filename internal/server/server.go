package server

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"

	. "github.com/cyberchai/ChessBot/internal/helpers"
	"github.com/cyberchai/ChessBot/internal/oracle"
	"github.com/cyberchai/ChessBot/internal/runner"
	"github.com/cyberchai/ChessBot/internal/search"
)

// MaxDepth bounds what a remote caller may ask for.
const MaxDepth = 6

type BestMoveRequest struct {
	Fen      string   `json:"fen"`
	Moves    []string `json:"moves"`
	Depth    *int     `json:"depth"`
	MoveTime *int     `json:"moveTime"`
	Oracle   string   `json:"oracle"`
}

func (r BestMoveRequest) String() string {
	return fmt.Sprint("BestMoveRequest: ", r.Fen, ", ", r.Moves, ", oracle=", r.Oracle)
}

type BestMoveResponse struct {
	BestMove string `json:"bestMove"`
	Score    string `json:"score"`
	Fallback bool   `json:"fallback"`
	Fen      string `json:"fen"`
	Nodes    int    `json:"nodes"`
}

type MovesResponse struct {
	Fen      string   `json:"fen"`
	Moves    []string `json:"moves"`
	Terminal bool     `json:"terminal"`
}

// MessageToWeb is one websocket frame: a log line, a result or an error.
type MessageToWeb struct {
	Log    *string           `json:"log,omitempty"`
	Result *BestMoveResponse `json:"result,omitempty"`
	Error  *string           `json:"error,omitempty"`
}

type Server struct {
	Logger        Logger
	SearchOptions search.Options

	// seeds the per-request random fallback; fixed in tests
	Seed func() int64

	upgrader websocket.Upgrader
}

func NewServer(logger Logger, options search.Options) *Server {
	return &Server{
		Logger:        logger,
		SearchOptions: options,
		Seed:          func() int64 { return time.Now().UnixNano() },
		upgrader:      websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }},
	}
}

func (s *Server) Router() *mux.Router {
	router := mux.NewRouter()
	router.HandleFunc("/healthz", s.healthz).Methods(http.MethodGet)
	router.HandleFunc("/api/moves", s.moves).Methods(http.MethodGet)
	router.HandleFunc("/api/bestmove", s.bestMove).Methods(http.MethodPost)
	router.HandleFunc("/ws", s.ws)
	return router
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func (s *Server) healthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) newRunner(oracleName string, logger Logger) (runner.Runner, Error) {
	return runner.New(oracleName,
		runner.WithLogger(logger),
		runner.WithSearchOptions(s.SearchOptions),
		runner.WithRand(rand.New(rand.NewSource(s.Seed()))))
}

func (s *Server) moves(w http.ResponseWriter, r *http.Request) {
	fen := r.URL.Query().Get("fen")
	if fen == "" {
		fen = oracle.StartFen
	}

	rr, err := s.newRunner(r.URL.Query().Get("oracle"), s.Logger)
	if err.HasError() {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	err = rr.SetupPosition(runner.Position{Fen: fen})
	if err.HasError() {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	writeJSON(w, http.StatusOK, MovesResponse{
		Fen:      rr.Fen(),
		Moves:    rr.LegalMoves(),
		Terminal: rr.IsTerminal(),
	})
}

// handleBestMove sets up a fresh runner for the request and searches it.
func (s *Server) handleBestMove(ctx context.Context, request BestMoveRequest, logger Logger) (BestMoveResponse, Error) {
	logger.Println("received", request)

	params := runner.SearchParams{}
	if request.Depth != nil {
		if *request.Depth < 0 || *request.Depth > MaxDepth {
			return BestMoveResponse{}, Errorf("depth %v out of range [0, %v]", *request.Depth, MaxDepth)
		}
		params.Depth = Some(*request.Depth)
	}
	if request.MoveTime != nil {
		if *request.MoveTime < 0 {
			return BestMoveResponse{}, Errorf("negative moveTime %v", *request.MoveTime)
		}
		params.Duration = Some(time.Duration(*request.MoveTime) * time.Millisecond)
	}

	fen := request.Fen
	if fen == "" {
		fen = oracle.StartFen
	}

	rr, err := s.newRunner(request.Oracle, logger)
	if err.HasError() {
		return BestMoveResponse{}, err
	}
	err = rr.SetupPosition(runner.Position{Fen: fen, Moves: request.Moves})
	if err.HasError() {
		return BestMoveResponse{}, err
	}

	result, err := rr.Search(ctx, params)
	if err.HasError() {
		return BestMoveResponse{}, err
	}

	return BestMoveResponse{
		BestMove: result.Move.ValueOr(""),
		Score:    search.ScoreString(result.Score),
		Fallback: result.Fallback,
		Fen:      rr.Fen(),
		Nodes:    result.Nodes,
	}, NilError
}

func (s *Server) bestMove(w http.ResponseWriter, r *http.Request) {
	var request BestMoveRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		writeError(w, http.StatusBadRequest, Wrap(err))
		return
	}

	response, err := s.handleBestMove(r.Context(), request, s.Logger)
	if err.HasError() {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	writeJSON(w, http.StatusOK, response)
}

func (s *Server) ws(w http.ResponseWriter, r *http.Request) {
	c, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.Logger.Println("websocket upgrade:", err)
		return
	}
	defer c.Close()

	// the search logs and the final result share one connection
	var writeLock sync.Mutex
	send := func(message MessageToWeb) {
		writeLock.Lock()
		defer writeLock.Unlock()
		if err := c.WriteJSON(message); err != nil {
			s.Logger.Println("websocket write:", err)
		}
	}

	serverLog := PrefixLogger(s.Logger, "ws: ")
	logger := FuncLogger(func(message string) {
		serverLog.Print(message)
		send(MessageToWeb{Log: &message})
	})

	for {
		var request BestMoveRequest
		if err := c.ReadJSON(&request); err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				s.Logger.Println("websocket read:", err)
			}
			return
		}

		response, err := s.handleBestMove(r.Context(), request, logger)
		if err.HasError() {
			message := err.Error()
			send(MessageToWeb{Error: &message})
			continue
		}
		send(MessageToWeb{Result: &response})
	}
}
