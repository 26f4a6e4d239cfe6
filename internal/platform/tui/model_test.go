package tui

import (
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-plinko/internal/config"
	"github.com/vovakirdan/tui-plinko/internal/core"
	plinkogame "github.com/vovakirdan/tui-plinko/internal/games/plinko"
	"github.com/vovakirdan/tui-plinko/internal/storage"
)

func keyMsg(t tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: t}
}

func runeMsg(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func newTestModel(t *testing.T, store *storage.Store) Model {
	t.Helper()
	game := plinkogame.NewTurbo().WithConfig(config.DefaultPlinkoConfig())
	cfg := core.RuntimeConfig{ScreenW: 80, ScreenH: 26, TickRate: 60, Seed: 42}
	m := NewModel(game, store, cfg, Options{Player: "tester", Record: true})
	m.Init()
	return m
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	nm, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return nm
}

func tick(t *testing.T, m Model) Model {
	t.Helper()
	return update(t, m, TickMsg{Loop: m.loop})
}

func TestMapKey(t *testing.T) {
	km := NewKeyMapper()

	tests := []struct {
		name   string
		msg    tea.KeyMsg
		action core.Action
		quit   bool
	}{
		{"enter drops", keyMsg(tea.KeyEnter), core.ActionConfirm, false},
		{"ctrl+r resets", keyMsg(tea.KeyCtrlR), core.ActionReset, false},
		{"ctrl+p pauses", keyMsg(tea.KeyCtrlP), core.ActionPause, false},
		{"esc goes back", keyMsg(tea.KeyEsc), core.ActionBack, false},
		{"ctrl+c quits", keyMsg(tea.KeyCtrlC), core.ActionQuit, true},
		{"digits belong to the field", runeMsg("5"), core.ActionNone, false},
		{"q belongs to the field", runeMsg("q"), core.ActionNone, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			action, quit := km.MapKey(tc.msg)
			if action != tc.action || quit != tc.quit {
				t.Errorf("MapKey(%s) = %v, %v; want %v, %v", tc.msg, action, quit, tc.action, tc.quit)
			}
		})
	}

	if km.Nudge(keyMsg(tea.KeyLeft)) != -1 || km.Nudge(keyMsg(tea.KeyRight)) != 1 || km.Nudge(runeMsg("x")) != 0 {
		t.Error("Nudge maps the wrong keys")
	}
}

func TestMapKeyToFrame(t *testing.T) {
	km := NewKeyMapper()
	frame := core.NewInputFrame()

	if !km.MapKeyToFrame(keyMsg(tea.KeyEnter), &frame) || !frame.Has(core.ActionConfirm) {
		t.Error("enter should set Confirm on the frame")
	}
	if km.MapKeyToFrame(runeMsg("4"), &frame) {
		t.Error("a digit is not a game action")
	}
}

func TestMapKeyToMenuAction(t *testing.T) {
	km := NewKeyMapper()

	tests := []struct {
		msg  tea.KeyMsg
		want MenuAction
	}{
		{keyMsg(tea.KeyUp), MenuActionUp},
		{runeMsg("j"), MenuActionDown},
		{keyMsg(tea.KeyEnter), MenuActionSelect},
		{keyMsg(tea.KeyTab), MenuActionScoreboard},
		{runeMsg("q"), MenuActionQuit},
		{runeMsg("x"), MenuActionNone},
	}

	for _, tc := range tests {
		if got := km.MapKeyToMenuAction(tc.msg); got != tc.want {
			t.Errorf("MapKeyToMenuAction(%s) = %v, want %v", tc.msg, got, tc.want)
		}
	}
}

func TestModelNudgesColumn(t *testing.T) {
	m := newTestModel(t, nil)

	if m.field.Value() != "1" {
		t.Fatalf("field starts at %q, want 1", m.field.Value())
	}

	m = update(t, m, keyMsg(tea.KeyLeft))
	if m.field.Value() != "1" {
		t.Errorf("left at column 1 gave %q", m.field.Value())
	}

	m = update(t, m, keyMsg(tea.KeyRight))
	m = update(t, m, keyMsg(tea.KeyRight))
	if m.field.Value() != "3" {
		t.Errorf("two rights gave %q, want 3", m.field.Value())
	}

	m.field.SetValue("zz")
	m = update(t, m, keyMsg(tea.KeyRight))
	if m.field.Value() != "1" {
		t.Errorf("nudging junk gave %q, want the default column", m.field.Value())
	}
}

func TestModelTypesIntoField(t *testing.T) {
	m := newTestModel(t, nil)
	m.field.SetValue("")

	m = update(t, m, runeMsg("7"))
	if m.field.Value() != "7" {
		t.Errorf("field = %q, want 7", m.field.Value())
	}
}

func TestModelRecordsDrops(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "plinko.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	m := newTestModel(t, store)
	first := m.Session()
	if first == nil {
		t.Fatal("session should be started with a store")
	}

	m = update(t, m, keyMsg(tea.KeyEnter))
	m = tick(t, m)
	if !m.gameState.Busy || m.field.Focused() {
		t.Fatal("field should be locked while the puck falls")
	}

	for i := 0; i < 20 && m.gameState.Plays == 0; i++ {
		m = tick(t, m)
	}
	if m.gameState.Plays != 1 {
		t.Fatalf("drop did not land, plays = %d", m.gameState.Plays)
	}

	m = tick(t, m)
	if !m.field.Focused() {
		t.Error("field should be unlocked after landing")
	}

	drops, err := store.RecentDrops("plinko_turbo", 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(drops) != 1 || drops[0].SessionID != first.ID || drops[0].StartColumn != 1 {
		t.Fatalf("recorded drops = %+v", drops)
	}

	sess, err := store.SessionByID(first.ID)
	if err != nil || sess == nil {
		t.Fatalf("SessionByID: %v, %v", sess, err)
	}
	if sess.Plays != 1 || sess.Winnings != drops[0].Payout || sess.Player != "tester" {
		t.Errorf("session = %+v", sess)
	}

	m = update(t, m, keyMsg(tea.KeyCtrlR))
	m = tick(t, m)
	if m.Session() == nil || m.Session().ID == first.ID {
		t.Error("a stats reset should start a new session")
	}
}

func TestModelIgnoresStaleTicks(t *testing.T) {
	m := newTestModel(t, nil)
	m = update(t, m, keyMsg(tea.KeyEnter))
	m = update(t, m, TickMsg{Loop: m.loop + 1000})

	if m.gameState.Busy {
		t.Error("a tick from another loop must not step the game")
	}
}

func TestModelEscape(t *testing.T) {
	m := newTestModel(t, nil)
	m = update(t, m, keyMsg(tea.KeyEsc))
	if !m.IsQuitting() {
		t.Error("esc should quit a standalone board")
	}

	m = newTestModel(t, nil)
	m.embedded = true
	m = update(t, m, keyMsg(tea.KeyEsc))
	if m.IsQuitting() || !m.BackToMenu() {
		t.Error("esc should return to the menu inside a session")
	}
}

func TestModelView(t *testing.T) {
	m := newTestModel(t, nil)
	m = tick(t, m)

	view := m.View()
	for _, want := range []string{"Total Plays: 0", "Column (1-9):", "reset score"} {
		if !strings.Contains(view, want) {
			t.Errorf("view is missing %q", want)
		}
	}
}

func TestRenderScreenPlain(t *testing.T) {
	s := core.NewScreen(6, 2)
	s.DrawText(0, 0, "plinko")
	s.SetCell(0, 1, 'P', core.ColorPuck)

	out := RenderScreen(s)
	if !strings.Contains(out, "plinko") || !strings.Contains(out, "P") {
		t.Errorf("rendered screen lost its text: %q", out)
	}
	if strings.Count(out, "\n") != 1 {
		t.Errorf("want 2 lines, got %q", out)
	}
}
