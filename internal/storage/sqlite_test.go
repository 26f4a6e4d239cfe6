package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func recordDrops(t *testing.T, store *Store, sess Session, payouts ...int) {
	t.Helper()
	for i, p := range payouts {
		_, err := store.RecordDrop(context.Background(), Drop{
			SessionID:    sess.ID,
			GameID:       sess.GameID,
			StartColumn:  i%9 + 1,
			LandedColumn: landedFor(p),
			Payout:       p,
			Path:         "RLRLRLRLRLRL",
		})
		if err != nil {
			t.Fatalf("RecordDrop() failed: %v", err)
		}
	}
}

// landedFor picks a grid column paying p.
func landedFor(p int) int {
	switch p {
	case 100:
		return 1
	case 500:
		return 3
	case 1000:
		return 5
	case 0:
		return 7
	default:
		return 9
	}
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Check that the file was created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreNestedPath(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}

func TestRecordDropUpdatesSession(t *testing.T) {
	store := openTestStore(t)

	sess, err := store.StartSession("alice", "plinko")
	if err != nil {
		t.Fatalf("StartSession() failed: %v", err)
	}
	if sess.ID == "" {
		t.Fatal("session ID should be set")
	}

	recordDrops(t, store, sess, 1000, 500, 100)

	got, err := store.SessionByID(sess.ID)
	if err != nil {
		t.Fatalf("SessionByID() failed: %v", err)
	}
	if got == nil {
		t.Fatal("session not found")
	}
	if got.Plays != 3 || got.Winnings != 1600 || got.Average() != 533 {
		t.Errorf("session totals = %d plays / $%d, want 3 / $1600", got.Plays, got.Winnings)
	}
	if got.Player != "alice" || got.GameID != "plinko" {
		t.Errorf("unexpected session: %+v", got)
	}
}

func TestRecordDropUnknownSession(t *testing.T) {
	store := openTestStore(t)

	_, err := store.RecordDrop(context.Background(), Drop{SessionID: "nope", GameID: "plinko", Path: "L"})
	if !errors.Is(err, ErrUnknownSession) {
		t.Fatalf("error = %v, want ErrUnknownSession", err)
	}

	drops, err := store.RecentDrops("", 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(drops) != 0 {
		t.Errorf("rejected drop was stored: %+v", drops)
	}
}

func TestSessionByIDMissing(t *testing.T) {
	store := openTestStore(t)

	got, err := store.SessionByID("missing")
	if err != nil || got != nil {
		t.Errorf("SessionByID(missing) = %v, %v; want nil, nil", got, err)
	}
}

func TestTopSessions(t *testing.T) {
	store := openTestStore(t)

	players := []struct {
		name    string
		payouts []int
	}{
		{"low", []int{100, 0}},
		{"high", []int{10000}},
		{"mid", []int{1000, 500}},
		{"idle", nil},
	}
	for _, p := range players {
		sess, err := store.StartSession(p.name, "plinko")
		if err != nil {
			t.Fatal(err)
		}
		recordDrops(t, store, sess, p.payouts...)
	}

	other, err := store.StartSession("elsewhere", "plinko_turbo")
	if err != nil {
		t.Fatal(err)
	}
	recordDrops(t, store, other, 10000, 10000)

	top, err := store.TopSessions("plinko", 10)
	if err != nil {
		t.Fatalf("TopSessions() failed: %v", err)
	}

	want := []string{"high", "mid", "low"}
	if len(top) != len(want) {
		t.Fatalf("got %d sessions, want %d", len(top), len(want))
	}
	for i, name := range want {
		if top[i].Player != name {
			t.Errorf("rank %d = %s, want %s", i+1, top[i].Player, name)
		}
	}

	limited, err := store.TopSessions("plinko", 1)
	if err != nil {
		t.Fatal(err)
	}
	if len(limited) != 1 || limited[0].Player != "high" {
		t.Errorf("limit not applied: %+v", limited)
	}
}

func TestRecentDrops(t *testing.T) {
	store := openTestStore(t)

	sess, err := store.StartSession("bob", "plinko")
	if err != nil {
		t.Fatal(err)
	}
	recordDrops(t, store, sess, 100, 500, 1000)

	turbo, err := store.StartSession("bob", "plinko_turbo")
	if err != nil {
		t.Fatal(err)
	}
	recordDrops(t, store, turbo, 0)

	drops, err := store.RecentDrops("plinko", 2)
	if err != nil {
		t.Fatalf("RecentDrops() failed: %v", err)
	}
	if len(drops) != 2 {
		t.Fatalf("got %d drops, want 2", len(drops))
	}
	if drops[0].Payout != 1000 || drops[1].Payout != 500 {
		t.Errorf("drops should be newest first, got %d then %d", drops[0].Payout, drops[1].Payout)
	}
	if drops[0].Path != "RLRLRLRLRLRL" || drops[0].SessionID != sess.ID {
		t.Errorf("unexpected drop: %+v", drops[0])
	}

	all, err := store.RecentDrops("", 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 4 || all[0].GameID != "plinko_turbo" {
		t.Errorf("all-games query returned %d drops", len(all))
	}
}

func TestGameStatsAndSlots(t *testing.T) {
	store := openTestStore(t)

	empty, err := store.GetGameStats("plinko")
	if err != nil {
		t.Fatalf("GetGameStats() on empty db failed: %v", err)
	}
	if empty.Drops != 0 || !empty.LastPlayed.IsZero() {
		t.Errorf("empty stats = %+v", empty)
	}

	a, _ := store.StartSession("a", "plinko")
	b, _ := store.StartSession("b", "plinko")
	recordDrops(t, store, a, 100, 100, 10000)
	recordDrops(t, store, b, 0)

	stats, err := store.GetGameStats("plinko")
	if err != nil {
		t.Fatalf("GetGameStats() failed: %v", err)
	}
	if stats.Drops != 4 || stats.Sessions != 2 || stats.TotalPayout != 10200 || stats.BestPayout != 10000 {
		t.Errorf("stats = %+v", stats)
	}
	if stats.AvgPayout != 2550 {
		t.Errorf("AvgPayout = %v, want 2550", stats.AvgPayout)
	}

	slots, err := store.SlotCounts("plinko")
	if err != nil {
		t.Fatalf("SlotCounts() failed: %v", err)
	}
	if slots[1] != 2 || slots[9] != 1 || slots[7] != 1 || len(slots) != 3 {
		t.Errorf("slot counts = %v", slots)
	}
}

func TestClearHistory(t *testing.T) {
	store := openTestStore(t)

	sess, _ := store.StartSession("c", "plinko")
	recordDrops(t, store, sess, 500)
	keep, _ := store.StartSession("d", "plinko_turbo")
	recordDrops(t, store, keep, 500)

	if err := store.ClearHistory("plinko"); err != nil {
		t.Fatalf("ClearHistory() failed: %v", err)
	}

	if drops, _ := store.RecentDrops("plinko", 10); len(drops) != 0 {
		t.Errorf("drops left after clear: %d", len(drops))
	}
	if got, _ := store.SessionByID(sess.ID); got != nil {
		t.Error("session left after clear")
	}
	if drops, _ := store.RecentDrops("plinko_turbo", 10); len(drops) != 1 {
		t.Error("other games must be kept")
	}
}
