package plinko

import (
	"strings"

	"github.com/vovakirdan/tui-plinko/internal/core"
	board "github.com/vovakirdan/tui-plinko/internal/plinko"
)

// Render draws the HUD, the board and the puck.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.tooSmall {
		g.renderOverlay(dst, "Window too small", "Resize to continue")
		return
	}

	dst.DrawTextCentered(0, strings.ToUpper(g.Title()), core.ColorBrightYellow)
	dst.DrawTextCentered(1, g.board.Describe(), core.ColorWhite)

	g.board.Render(dst, g.layout)
	g.renderAim(dst)

	noticeY := g.layout.PayoutY() + 2
	if g.notice != "" {
		dst.DrawTextCentered(noticeY, g.notice, core.ColorNotice)
	}

	if g.paused {
		g.renderOverlay(dst, MsgPaused, "Press Ctrl+P to continue")
	}
}

// renderAim marks the typed start column above its label. Nothing is drawn
// for text that would be rejected.
func (g *Game) renderAim(dst *core.Screen) {
	if g.phase != PhaseAim {
		return
	}
	start, err := board.ParseColumn(g.aim)
	if err != nil {
		return
	}
	x := g.layout.ColumnX(board.GridColumn(start))
	dst.SetCell(x, g.layout.LabelY()-1, '▼', core.ColorBrightGreen)
}

// renderOverlay draws a two-line message box in the middle of the screen.
func (g *Game) renderOverlay(dst *core.Screen, line1, line2 string) {
	w := max(len(line1), len(line2)) + 4
	h := 4
	box := core.NewRect((dst.Width()-w)/2, (dst.Height()-h)/2, w, h)
	if box.X < 0 || box.Y < 0 {
		dst.DrawText(0, 0, line1)
		return
	}

	for y := box.Y; y < box.Bottom(); y++ {
		for x := box.X; x < box.Right(); x++ {
			dst.Set(x, y, ' ')
		}
	}
	dst.DrawBox(box, core.ColorWhite)
	dst.DrawTextCentered(box.Y+1, line1, core.ColorBrightWhite)
	dst.DrawTextCentered(box.Y+2, line2, core.ColorGray)
}
