package web

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/vovakirdan/tui-plinko/internal/plinko"
	"github.com/vovakirdan/tui-plinko/internal/storage"
)

// DropRequest is the body of POST /api/drops. Column may be a JSON number
// or a string, the way a text field would submit it.
type DropRequest struct {
	Column json.RawMessage `json:"column"`
}

// ColumnText returns the column as the player would have typed it.
func (r DropRequest) ColumnText() string {
	raw := strings.TrimSpace(string(r.Column))
	var s string
	if err := json.Unmarshal(r.Column, &s); err == nil {
		return s
	}
	return raw
}

// StatsResponse is the running score of the shared board.
type StatsResponse struct {
	Plays     int    `json:"plays"`
	Winnings  int    `json:"winnings"`
	Average   int    `json:"average"`
	Summary   string `json:"summary"`
	SessionID string `json:"session_id,omitempty"`
}

// FrameResponse is one row-descent of a drop.
type FrameResponse struct {
	Descent   int    `json:"descent"`
	Column    int    `json:"column"`
	Direction string `json:"direction"`
	Forced    bool   `json:"forced,omitempty"`
}

// DropResponse reports a completed drop.
type DropResponse struct {
	Start   int             `json:"start"`
	Landed  int             `json:"landed"`
	Slot    int             `json:"slot"`
	Payout  int             `json:"payout"`
	Path    string          `json:"path"`
	Message string          `json:"message"`
	Frames  []FrameResponse `json:"frames"`
	Stats   StatsResponse   `json:"stats"`
}

// SlotResponse is one landing slot.
type SlotResponse struct {
	Slot   int `json:"slot"`
	Column int `json:"column"`
	Payout int `json:"payout"`
}

// BoardResponse is the text rendering of the board with its payouts.
type BoardResponse struct {
	Board string         `json:"board"`
	Slots []SlotResponse `json:"slots"`
	Busy  bool           `json:"busy"`
}

// ResetResponse is returned after the score is zeroed.
type ResetResponse struct {
	Message string        `json:"message"`
	Stats   StatsResponse `json:"stats"`
}

// HistoryDrop is one stored drop.
type HistoryDrop struct {
	ID        int64     `json:"id"`
	SessionID string    `json:"session_id"`
	Start     int       `json:"start"`
	Landed    int       `json:"landed"`
	Payout    int       `json:"payout"`
	Path      string    `json:"path"`
	CreatedAt time.Time `json:"created_at"`
}

// ErrorResponse carries a message for the client.
type ErrorResponse struct {
	Error string `json:"error"`
}

// slotOf maps an odd grid column to its 1-9 slot.
func slotOf(column int) int {
	return (column + 1) / 2
}

func toSlots(slots []plinko.Slot) []SlotResponse {
	out := make([]SlotResponse, 0, len(slots))
	for _, s := range slots {
		out = append(out, SlotResponse{Slot: slotOf(s.Column), Column: s.Column, Payout: s.Payout})
	}
	return out
}

func toFrame(f plinko.Frame) FrameResponse {
	return FrameResponse{
		Descent:   f.Descent,
		Column:    f.Column,
		Direction: f.Direction.String(),
		Forced:    f.Forced,
	}
}

func toHistory(drops []storage.Drop) []HistoryDrop {
	out := make([]HistoryDrop, 0, len(drops))
	for _, d := range drops {
		out = append(out, HistoryDrop{
			ID:        d.ID,
			SessionID: d.SessionID,
			Start:     d.StartColumn,
			Landed:    d.LandedColumn,
			Payout:    d.Payout,
			Path:      d.Path,
			CreatedAt: d.CreatedAt,
		})
	}
	return out
}
