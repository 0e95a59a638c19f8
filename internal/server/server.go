package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"dota-analysis/internal/domain"
	"dota-analysis/internal/repository"
	"dota-analysis/internal/service"
)

type Server struct {
	players  *service.PlayerService
	matches  *service.MatchService
	analysis *service.AnalysisService
	logger   zerolog.Logger
}

func New(players *service.PlayerService, matches *service.MatchService, analysis *service.AnalysisService, logger zerolog.Logger) *Server {
	return &Server{players: players, matches: matches, analysis: analysis, logger: logger}
}

// Handler builds the API route table.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/v1/players", s.handleAddPlayer)
	mux.HandleFunc("GET /api/v1/players", s.handleListPlayers)
	mux.HandleFunc("POST /api/v1/players/{account}/matches", s.handleImportMatches)
	mux.HandleFunc("GET /api/v1/players/{account}/imports", s.handleListImports)
	mux.HandleFunc("GET /api/v1/players/{account}/calendar", s.handleCalendar)
	mux.HandleFunc("GET /api/v1/players/{account}/rankings", s.handleRankings)
	mux.HandleFunc("GET /api/v1/players/{account}/recommendations", s.handleRecommendations)
	mux.HandleFunc("GET /api/v1/players/{account}/summary", s.handleSummary)
	return mux
}

type addPlayerRequest struct {
	AccountID string `json:"account_id"`
	Label     string `json:"label"`
	Note      string `json:"note"`
}

type playerResponse struct {
	AccountID string `json:"account_id"`
	Label     string `json:"label"`
	Note      string `json:"note"`
	CreatedAt string `json:"created_at"`
}

func toPlayerResponse(p domain.Player) playerResponse {
	return playerResponse{
		AccountID: p.AccountID,
		Label:     p.Label,
		Note:      p.Note,
		CreatedAt: p.CreatedAt.Format(time.RFC3339),
	}
}

func (s *Server) handleAddPlayer(w http.ResponseWriter, r *http.Request) {
	var req addPlayerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	player, err := s.players.Add(r.Context(), req.AccountID, req.Label, req.Note)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, toPlayerResponse(*player))
}

func (s *Server) handleListPlayers(w http.ResponseWriter, r *http.Request) {
	players, err := s.players.List(r.Context())
	if err != nil {
		s.writeServiceError(w, err)
		return
	}

	resp := make([]playerResponse, 0, len(players))
	for _, p := range players {
		resp = append(resp, toPlayerResponse(p))
	}
	s.writeJSON(w, http.StatusOK, resp)
}

type rawMatchRequest struct {
	MatchID    int64 `json:"match_id"`
	StartTime  int64 `json:"start_time"`
	PlayerSlot int   `json:"player_slot"`
	RadiantWin bool  `json:"radiant_win"`
	Duration   int   `json:"duration"`
	Kills      int   `json:"kills"`
	Deaths     int   `json:"deaths"`
	Assists    int   `json:"assists"`
}

type importResponse struct {
	BatchID    string `json:"batch_id"`
	AccountID  string `json:"account_id"`
	MatchCount int    `json:"match_count"`
	ImportedAt string `json:"imported_at"`
}

func (s *Server) handleImportMatches(w http.ResponseWriter, r *http.Request) {
	account := r.PathValue("account")

	var payload []rawMatchRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	matches := make([]domain.RawMatch, 0, len(payload))
	for _, m := range payload {
		matches = append(matches, domain.RawMatch{
			MatchID:    m.MatchID,
			StartTime:  m.StartTime,
			PlayerSlot: m.PlayerSlot,
			RadiantWin: m.RadiantWin,
			Duration:   m.Duration,
			Kills:      m.Kills,
			Deaths:     m.Deaths,
			Assists:    m.Assists,
		})
	}

	batch, err := s.matches.Import(r.Context(), account, matches)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}

	s.writeJSON(w, http.StatusCreated, importResponse{
		BatchID:    batch.ID,
		AccountID:  batch.AccountID,
		MatchCount: batch.MatchCount,
		ImportedAt: batch.ImportedAt.Format(time.RFC3339),
	})
}

func (s *Server) handleListImports(w http.ResponseWriter, r *http.Request) {
	account := r.PathValue("account")
	limit := queryInt(r, "limit", 0)

	batches, err := s.matches.Imports(r.Context(), account, limit)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}

	resp := make([]importResponse, 0, len(batches))
	for _, b := range batches {
		resp = append(resp, importResponse{
			BatchID:    b.ID,
			AccountID:  b.AccountID,
			MatchCount: b.MatchCount,
			ImportedAt: b.ImportedAt.Format(time.RFC3339),
		})
	}
	s.writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCalendar(w http.ResponseWriter, r *http.Request) {
	account := r.PathValue("account")
	from := queryInt64(r, "from", 0)
	to := queryInt64(r, "to", 0)

	days, err := s.analysis.Calendar(r.Context(), account, from, to)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, days)
}

func (s *Server) handleRankings(w http.ResponseWriter, r *http.Request) {
	account := r.PathValue("account")
	from := queryInt64(r, "from", 0)
	to := queryInt64(r, "to", 0)
	n := queryInt(r, "n", 0)
	minGames := queryInt(r, "min_games", 0)

	rankings, err := s.analysis.Rankings(r.Context(), account, from, to, n, minGames)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, rankings)
}

func (s *Server) handleRecommendations(w http.ResponseWriter, r *http.Request) {
	account := r.PathValue("account")

	now := time.Now().UTC()
	year := queryInt(r, "year", now.Year())
	month := queryInt(r, "month", int(now.Month()))
	if month < 1 || month > 12 {
		s.writeError(w, http.StatusBadRequest, "month must be 1-12")
		return
	}

	recs, err := s.analysis.Recommendations(r.Context(), account, year, time.Month(month))
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, recs)
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	account := r.PathValue("account")

	summary, err := s.analysis.Summary(r.Context(), account)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, summary)
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error().Err(err).Msg("failed to encode response")
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, map[string]string{"error": msg})
}

func (s *Server) writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		s.writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrInvalidRecord):
		s.writeError(w, http.StatusBadRequest, err.Error())
	default:
		s.logger.Error().Err(err).Msg("request failed")
		s.writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func queryInt(r *http.Request, key string, fallback int) int {
	if v := r.URL.Query().Get(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func queryInt64(r *http.Request, key string, fallback int64) int64 {
	if v := r.URL.Query().Get(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}
