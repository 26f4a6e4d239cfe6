package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/vovakirdan/tui-plinko/internal/core"
	"github.com/vovakirdan/tui-plinko/internal/plinko"
	"github.com/vovakirdan/tui-plinko/internal/storage"
)

const (
	defaultRecentLimit = 10
	maxRecentLimit     = 100
)

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) getBoard(w http.ResponseWriter, r *http.Request) {
	screen := core.NewScreen(plinko.BoardWidth, plinko.BoardHeight)

	s.mu.Lock()
	s.board.Render(screen, plinko.Layout{})
	busy := s.board.Busy()
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, BoardResponse{
		Board: screen.String(),
		Slots: toSlots(plinko.Slots()),
		Busy:  busy,
	})
}

func (s *Server) getStats(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	stats := s.stats()
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, stats)
}

func (s *Server) postDrop(w http.ResponseWriter, r *http.Request) {
	var req DropRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	start, err := plinko.ParseColumn(req.ColumnText())
	if err != nil {
		writeError(w, http.StatusBadRequest, plinko.ColumnHint)
		return
	}

	var frames []FrameResponse
	s.mu.Lock()
	res, err := s.board.Run(start, func(f plinko.Frame) {
		frames = append(frames, toFrame(f))
	})
	if err != nil {
		s.mu.Unlock()
		if errors.Is(err, plinko.ErrDropInProgress) {
			writeError(w, http.StatusConflict, "a drop is already in progress")
			return
		}
		writeError(w, http.StatusBadRequest, plinko.ColumnHint)
		return
	}
	sess := s.session
	stats := s.stats()
	s.mu.Unlock()

	path := plinko.PathString(res.Path)
	if sess != nil {
		_, err := s.store.RecordDrop(r.Context(), storage.Drop{
			SessionID:    sess.ID,
			GameID:       GameID,
			StartColumn:  res.Start,
			LandedColumn: res.Landed,
			Payout:       res.Payout,
			Path:         path,
		})
		if err != nil {
			s.logger.Warn("could not record drop", "session", sess.ID, "error", err)
		}
	}

	writeJSON(w, http.StatusOK, DropResponse{
		Start:   res.Start,
		Landed:  res.Landed,
		Slot:    slotOf(res.Landed),
		Payout:  res.Payout,
		Path:    path,
		Message: fmt.Sprintf("You won $%d!", res.Payout),
		Frames:  frames,
		Stats:   stats,
	})
}

func (s *Server) postReset(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	if s.board.Busy() {
		s.mu.Unlock()
		writeError(w, http.StatusConflict, "a drop is already in progress")
		return
	}
	s.board.ResetStats()
	s.startSession()
	stats := s.stats()
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, ResetResponse{Message: "Total score reset!", Stats: stats})
}

func (s *Server) recentDrops(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		writeError(w, http.StatusServiceUnavailable, "history is disabled")
		return
	}

	limit := defaultRecentLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			writeError(w, http.StatusBadRequest, "limit must be a positive number")
			return
		}
		limit = min(n, maxRecentLimit)
	}

	drops, err := s.store.RecentDrops(GameID, limit)
	if err != nil {
		s.logger.Error("could not load recent drops", "error", err)
		writeError(w, http.StatusInternalServerError, "could not load history")
		return
	}
	writeJSON(w, http.StatusOK, toHistory(drops))
}

// stats snapshots the board. Callers hold mu.
func (s *Server) stats() StatsResponse {
	resp := StatsResponse{
		Plays:    s.board.Plays(),
		Winnings: s.board.TotalWinnings(),
		Average:  s.board.AverageWinnings(),
		Summary:  s.board.Describe(),
	}
	if s.session != nil {
		resp.SessionID = s.session.ID
	}
	return resp
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, ErrorResponse{Error: msg})
}
