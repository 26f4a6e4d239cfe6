package web

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vovakirdan/tui-plinko/internal/plinko"
	"github.com/vovakirdan/tui-plinko/internal/storage"
)

func newTestServer(t *testing.T, withStore bool) (*Server, *storage.Store) {
	t.Helper()
	var store *storage.Store
	if withStore {
		var err error
		store, err = storage.Open(filepath.Join(t.TempDir(), "plinko.db"))
		if err != nil {
			t.Fatal(err)
		}
		t.Cleanup(func() { store.Close() })
	}
	return NewServer(Config{Player: "tester", Seed: 7}, store, nil), store
}

func do(t *testing.T, s *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.NewDecoder(rec.Body).Decode(&v); err != nil {
		t.Fatalf("decode %T: %v", v, err)
	}
	return v
}

func TestHealth(t *testing.T) {
	s, _ := newTestServer(t, false)
	rec := do(t, s, http.MethodGet, "/healthz", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if got := decode[map[string]string](t, rec)["status"]; got != "ok" {
		t.Errorf("status field = %q", got)
	}
}

func TestGetBoard(t *testing.T) {
	s, _ := newTestServer(t, false)
	rec := do(t, s, http.MethodGet, "/api/board", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	resp := decode[BoardResponse](t, rec)

	if len(resp.Slots) != plinko.StartColumns {
		t.Fatalf("slots = %d", len(resp.Slots))
	}
	if resp.Slots[4].Payout != plinko.JackpotPayout || resp.Slots[0].Payout != 100 {
		t.Errorf("slots = %+v", resp.Slots)
	}
	if lines := strings.Split(resp.Board, "\n"); len(lines) != plinko.BoardHeight {
		t.Errorf("board has %d lines, want %d", len(lines), plinko.BoardHeight)
	}
	if resp.Busy {
		t.Error("board should be idle")
	}
}

func TestPostDrop(t *testing.T) {
	tests := []struct {
		name  string
		body  string
		start int
	}{
		{"number", `{"column": 5}`, 5},
		{"string", `{"column": "3"}`, 3},
		{"padded string", `{"column": " 9 "}`, 9},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s, _ := newTestServer(t, false)
			rec := do(t, s, http.MethodPost, "/api/drops", tc.body)
			if rec.Code != http.StatusOK {
				t.Fatalf("status = %d, body %s", rec.Code, rec.Body)
			}
			resp := decode[DropResponse](t, rec)

			if resp.Start != tc.start {
				t.Errorf("start = %d, want %d", resp.Start, tc.start)
			}
			if resp.Landed%2 != 1 || resp.Slot != (resp.Landed+1)/2 {
				t.Errorf("landed = %d, slot = %d", resp.Landed, resp.Slot)
			}
			if resp.Payout != plinko.PayoutFor(resp.Landed) {
				t.Errorf("payout = %d for column %d", resp.Payout, resp.Landed)
			}
			if len(resp.Path) != plinko.Descents || len(resp.Frames) != plinko.Descents {
				t.Errorf("path %q with %d frames", resp.Path, len(resp.Frames))
			}
			if last := resp.Frames[len(resp.Frames)-1]; last.Column != resp.Landed {
				t.Errorf("last frame column = %d, want %d", last.Column, resp.Landed)
			}
			if resp.Stats.Plays != 1 || resp.Stats.Winnings != resp.Payout {
				t.Errorf("stats = %+v", resp.Stats)
			}
			if !strings.HasPrefix(resp.Message, "You won $") {
				t.Errorf("message = %q", resp.Message)
			}
		})
	}
}

func TestPostDropRejectsColumns(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"zero", `{"column": 0}`, plinko.ColumnHint},
		{"ten", `{"column": 10}`, plinko.ColumnHint},
		{"text", `{"column": "abc"}`, plinko.ColumnHint},
		{"fraction", `{"column": 4.5}`, plinko.ColumnHint},
		{"missing", `{}`, plinko.ColumnHint},
		{"null", `{"column": null}`, plinko.ColumnHint},
		{"malformed", `{"column":`, "invalid request body"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s, _ := newTestServer(t, false)
			rec := do(t, s, http.MethodPost, "/api/drops", tc.body)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d", rec.Code)
			}
			if got := decode[ErrorResponse](t, rec).Error; got != tc.want {
				t.Errorf("error = %q, want %q", got, tc.want)
			}

			stats := decode[StatsResponse](t, do(t, s, http.MethodGet, "/api/stats", ""))
			if stats.Plays != 0 {
				t.Errorf("rejected drop counted: %+v", stats)
			}
		})
	}
}

func TestStatsAndReset(t *testing.T) {
	s, _ := newTestServer(t, false)

	total := 0
	for _, col := range []string{"1", "5", "9"} {
		resp := decode[DropResponse](t, do(t, s, http.MethodPost, "/api/drops", `{"column": `+col+`}`))
		total += resp.Payout
	}

	stats := decode[StatsResponse](t, do(t, s, http.MethodGet, "/api/stats", ""))
	if stats.Plays != 3 || stats.Winnings != total || stats.Average != total/3 {
		t.Errorf("stats = %+v, want 3 plays and %d", stats, total)
	}
	if !strings.HasPrefix(stats.Summary, "Total Plays: 3  |") {
		t.Errorf("summary = %q", stats.Summary)
	}

	rec := do(t, s, http.MethodPost, "/api/reset", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("reset status = %d", rec.Code)
	}
	reset := decode[ResetResponse](t, rec)
	if reset.Message != "Total score reset!" || reset.Stats.Plays != 0 || reset.Stats.Winnings != 0 {
		t.Errorf("reset = %+v", reset)
	}
}

func TestDropsAreRecorded(t *testing.T) {
	s, store := newTestServer(t, true)

	first := decode[StatsResponse](t, do(t, s, http.MethodGet, "/api/stats", "")).SessionID
	if first == "" {
		t.Fatal("session id missing with a store")
	}

	for range 3 {
		do(t, s, http.MethodPost, "/api/drops", `{"column": 2}`)
	}

	rec := do(t, s, http.MethodGet, "/api/drops/recent?limit=2", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	recent := decode[[]HistoryDrop](t, rec)
	if len(recent) != 2 {
		t.Fatalf("recent = %d drops, want 2", len(recent))
	}
	if recent[0].ID <= recent[1].ID || recent[0].Start != 2 || recent[0].SessionID != first {
		t.Errorf("recent = %+v", recent)
	}

	sess, err := store.SessionByID(first)
	if err != nil || sess == nil {
		t.Fatalf("SessionByID: %v, %v", sess, err)
	}
	if sess.Plays != 3 || sess.Player != "tester" || sess.GameID != GameID {
		t.Errorf("session = %+v", sess)
	}

	reset := decode[ResetResponse](t, do(t, s, http.MethodPost, "/api/reset", ""))
	if reset.Stats.SessionID == "" || reset.Stats.SessionID == first {
		t.Error("reset should start a new session")
	}
}

func TestRecentDropsErrors(t *testing.T) {
	s, _ := newTestServer(t, false)
	if rec := do(t, s, http.MethodGet, "/api/drops/recent", ""); rec.Code != http.StatusServiceUnavailable {
		t.Errorf("without a store status = %d", rec.Code)
	}

	s, _ = newTestServer(t, true)
	for _, q := range []string{"0", "-1", "many"} {
		if rec := do(t, s, http.MethodGet, "/api/drops/recent?limit="+q, ""); rec.Code != http.StatusBadRequest {
			t.Errorf("limit=%s status = %d", q, rec.Code)
		}
	}
}

func TestSameSeedSameDrops(t *testing.T) {
	a, _ := newTestServer(t, false)
	b, _ := newTestServer(t, false)

	for _, col := range []string{"1", "4", "7", "9"} {
		body := `{"column": ` + col + `}`
		ra := decode[DropResponse](t, do(t, a, http.MethodPost, "/api/drops", body))
		rb := decode[DropResponse](t, do(t, b, http.MethodPost, "/api/drops", body))
		if ra.Path != rb.Path || ra.Landed != rb.Landed {
			t.Fatalf("column %s: %s/%d vs %s/%d", col, ra.Path, ra.Landed, rb.Path, rb.Landed)
		}
	}
}
