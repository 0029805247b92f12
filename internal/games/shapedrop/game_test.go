package shapedrop

import (
	"strings"
	"testing"

	"github.com/vovakirdan/shapedrop/internal/config"
	"github.com/vovakirdan/shapedrop/internal/core"
	"github.com/vovakirdan/shapedrop/internal/games/shapedrop/engine"
)

// 50 ticks per second gives an exact 20ms frame.
func testConfig(seed int64) core.RuntimeConfig {
	return core.RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 50,
		Seed:     seed,
	}
}

type recordingCues struct {
	events []engine.LockEvent
}

func (r *recordingCues) PlayLock(ev engine.LockEvent) {
	r.events = append(r.events, ev)
}

func newTestGame(t *testing.T, seed int64, opts ...Option) *Game {
	t.Helper()
	base := []Option{
		WithConfig(config.DefaultShapeDropConfig()),
		WithDifficulty(engine.Normal),
		WithCuePlayer(nil),
	}
	g := New(append(base, opts...)...)
	g.Reset(testConfig(seed))
	return g
}

func press(actions ...core.Action) core.InputFrame {
	in := core.NewInputFrame()
	for _, a := range actions {
		in.Set(a)
	}
	return in
}

func stepN(g *Game, n int, in core.InputFrame) {
	for i := 0; i < n; i++ {
		g.Step(in)
	}
}

func TestDeterminism(t *testing.T) {
	g1 := newTestGame(t, 12345)
	g2 := newTestGame(t, 12345)

	input := core.NewInputFrame()
	for i := 0; i < 900; i++ {
		input.Clear()
		switch {
		case i%45 == 0:
			input.Set(core.ActionHardDrop)
		case i%7 == 0:
			input.Set(core.ActionLeft)
		case i%11 == 0:
			input.Set(core.ActionRotateCW)
		case i%13 == 0:
			input.Set(core.ActionRight)
		case i%17 == 0:
			input.Set(core.ActionSoftDrop)
		}
		g1.Step(input)
		g2.Step(input)
	}

	snap1, snap2 := g1.Snapshot(), g2.Snapshot()
	if snap1 != snap2 {
		t.Errorf("Snapshot mismatch:\n%+v\n%+v", snap1, snap2)
	}
	if g1.Engine().Board != g2.Engine().Board {
		t.Error("Board mismatch after identical input")
	}
	if snap1.Filled == 0 {
		t.Error("Expected locked cells after hard drops")
	}
}

func TestDifferentSeedsDiverge(t *testing.T) {
	var shapes1, shapes2 []engine.ShapeID
	g1 := newTestGame(t, 1)
	g2 := newTestGame(t, 2)
	drop := press(core.ActionHardDrop)
	for i := 0; i < 10; i++ {
		shapes1 = append(shapes1, g1.Engine().Current.Shape)
		shapes2 = append(shapes2, g2.Engine().Current.Shape)
		g1.Step(drop)
		g2.Step(drop)
	}
	same := true
	for i := range shapes1 {
		if shapes1[i] != shapes2[i] {
			same = false
		}
	}
	if same {
		t.Errorf("Expected different piece sequences, got %v for both seeds", shapes1)
	}
}

func TestGravityInterval(t *testing.T) {
	g := newTestGame(t, 42)
	idle := core.NewInputFrame()

	if got := g.DropIntervalMs(); got != 700 {
		t.Fatalf("Expected 700ms interval on normal, got %d", got)
	}

	startY := g.Engine().Current.Y
	stepN(g, 34, idle) // 680ms
	if y := g.Engine().Current.Y; y != startY {
		t.Fatalf("Piece fell early: Y=%d, want %d", y, startY)
	}

	g.Step(idle) // 700ms
	if y := g.Engine().Current.Y; y != startY+1 {
		t.Fatalf("Expected one row of gravity at 700ms, Y=%d want %d", y, startY+1)
	}

	stepN(g, 35, idle)
	if y := g.Engine().Current.Y; y != startY+2 {
		t.Errorf("Expected the timer to restart after a drop, Y=%d want %d", y, startY+2)
	}
}

func TestDifficultyChangesInterval(t *testing.T) {
	tests := []struct {
		d    engine.Difficulty
		want int
	}{
		{engine.Easy, 1000},
		{engine.Normal, 700},
		{engine.Hard, 500},
	}
	for _, tt := range tests {
		t.Run(tt.d.String(), func(t *testing.T) {
			g := newTestGame(t, 1, WithDifficulty(tt.d))
			if g.Difficulty() != tt.d {
				t.Errorf("Difficulty = %v, want %v", g.Difficulty(), tt.d)
			}
			if got := g.DropIntervalMs(); got != tt.want {
				t.Errorf("DropIntervalMs = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestPauseFreezesGame(t *testing.T) {
	g := newTestGame(t, 42)
	idle := core.NewInputFrame()

	g.Step(press(core.ActionPause))
	if !g.State().Paused {
		t.Fatal("Expected game to be paused")
	}
	y := g.Engine().Current.Y
	stepN(g, 200, press(core.ActionHardDrop))
	if g.Engine().Current.Y != y || g.Engine().Board.Filled() != 0 {
		t.Fatal("Paused game should ignore gravity and input")
	}
	if got := g.Snapshot().State; got != StatePaused {
		t.Errorf("Snapshot state = %s, want %s", got, StatePaused)
	}

	g.Step(press(core.ActionPause))
	if g.State().Paused {
		t.Fatal("Expected game to resume")
	}
	stepN(g, 40, idle)
	if g.Engine().Current.Y == y {
		t.Error("Resumed game should fall again")
	}
}

func TestMoveSnapsVisualColumn(t *testing.T) {
	g := newTestGame(t, 42)
	x := g.Engine().Current.X

	g.Step(press(core.ActionLeft))
	cur := g.Engine().Current
	if cur.X != x-1 {
		t.Fatalf("Expected X=%d after left, got %d", x-1, cur.X)
	}
	if cur.FX != float64(cur.X) {
		t.Errorf("Expected FX to snap to %d, got %v", cur.X, cur.FX)
	}
}

func TestSoftDropSnapsVisualRow(t *testing.T) {
	g := newTestGame(t, 42)
	y := g.Engine().Current.Y

	g.Step(press(core.ActionSoftDrop))
	cur := g.Engine().Current
	if cur.Y != y+1 {
		t.Fatalf("Expected Y=%d after soft drop, got %d", y+1, cur.Y)
	}
	if cur.FY != float64(cur.Y) {
		t.Errorf("Expected FY to snap to %d, got %v", cur.Y, cur.FY)
	}
}

func TestHardDropLocksAndCues(t *testing.T) {
	cues := &recordingCues{}
	g := newTestGame(t, 42, WithCuePlayer(cues))
	first := g.Engine().Current.Shape
	next := g.Engine().Next.Shape

	g.Step(press(core.ActionHardDrop))

	if got := g.Engine().Board.Filled(); got != 4 {
		t.Errorf("Expected 4 locked cells, got %d", got)
	}
	if got := g.Engine().Current.Shape; got != next {
		t.Errorf("Expected next piece %v to spawn, got %v", next, got)
	}
	if len(cues.events) != 1 {
		t.Fatalf("Expected 1 lock cue, got %d", len(cues.events))
	}
	ev := cues.events[0]
	if ev.Shape != first {
		t.Errorf("Cue shape = %v, want %v", ev.Shape, first)
	}
	if ev.DropRows <= 0 {
		t.Errorf("Expected a positive hard drop distance, got %d", ev.DropRows)
	}
	if ev.At != 20 {
		t.Errorf("Expected lock at 20ms, got %d", ev.At)
	}
}

func TestGameOverAndResult(t *testing.T) {
	cues := &recordingCues{}
	g := newTestGame(t, 7, WithCuePlayer(cues))

	drop := press(core.ActionHardDrop)
	for i := 0; i < 400 && !g.State().GameOver; i++ {
		g.Step(drop)
	}
	if !g.State().GameOver {
		t.Fatal("Expected stacking hard drops to end the game")
	}
	if last := cues.events[len(cues.events)-1]; !last.GameOver {
		t.Error("Expected the final lock cue to report game over")
	}

	snap := g.Snapshot()
	if snap.State != StateGameOver {
		t.Errorf("Snapshot state = %s, want %s", snap.State, StateGameOver)
	}

	filled := g.Engine().Board.Filled()
	stepN(g, 10, drop)
	if g.Engine().Board.Filled() != filled {
		t.Error("Game over should be terminal")
	}

	r := g.Result("ann")
	if r.Player != "ann" || r.Score != g.State().Score || r.Lines != g.State().Lines {
		t.Errorf("Unexpected result %+v for state %+v", r, g.State())
	}
	if r.Difficulty != engine.Normal {
		t.Errorf("Result difficulty = %v, want normal", r.Difficulty)
	}

	screen := core.NewScreen(80, 24)
	g.Render(screen)
	if !strings.Contains(screen.String(), "GAME OVER") {
		t.Error("Expected GAME OVER overlay")
	}
}

func TestResetStartsFreshRound(t *testing.T) {
	g := newTestGame(t, 42)
	stepN(g, 5, press(core.ActionHardDrop))
	if g.Engine().Board.Filled() == 0 {
		t.Fatal("Expected locked cells before reset")
	}

	g.Reset(testConfig(43))
	snap := g.Snapshot()
	if snap.Tick != 0 || snap.Score != 0 || snap.Filled != 0 {
		t.Errorf("Expected a fresh round, got %+v", snap)
	}
}

func TestResizeKeepsRound(t *testing.T) {
	g := newTestGame(t, 42)
	g.Step(press(core.ActionHardDrop))

	g.Resize(120, 40)
	if g.Engine().Board.Filled() != 4 {
		t.Error("Resize should not restart the round")
	}
}

func TestTooSmallWindowPauses(t *testing.T) {
	g := New(WithConfig(config.DefaultShapeDropConfig()), WithCuePlayer(nil))
	cfg := testConfig(42)
	cfg.ScreenW, cfg.ScreenH = 30, 12
	g.Reset(cfg)

	if got := g.Snapshot().State; got != StatePausedSmall {
		t.Fatalf("Snapshot state = %s, want %s", got, StatePausedSmall)
	}
	y := g.Engine().Current.Y
	stepN(g, 100, core.NewInputFrame())
	if g.Engine().Current.Y != y {
		t.Error("Game should not advance in a small window")
	}

	screen := core.NewScreen(30, 12)
	g.Render(screen)
	if !strings.Contains(screen.String(), "too small") {
		t.Error("Expected a too small message")
	}

	g.Resize(minScreenW, minScreenH)
	if got := g.Snapshot().State; got != StatePlaying {
		t.Errorf("Snapshot state = %s after resize, want %s", got, StatePlaying)
	}
}

func TestRenderPanel(t *testing.T) {
	g := newTestGame(t, 42)
	screen := core.NewScreen(80, 24)
	g.Render(screen)

	out := screen.String()
	for _, want := range []string{"SHAPEDROP", "normal", "NEXT", "SCORE", "LINES", "COMBO", "700ms"} {
		if !strings.Contains(out, want) {
			t.Errorf("Render output missing %q", want)
		}
	}

	g.Step(press(core.ActionPause))
	g.Render(screen)
	if !strings.Contains(screen.String(), "PAUSED") {
		t.Error("Expected PAUSED overlay")
	}
}

func TestRegistered(t *testing.T) {
	g := New()
	if g.ID() != ID || g.Title() != "ShapeDrop" {
		t.Errorf("Unexpected identity %q %q", g.ID(), g.Title())
	}
}

func TestStatusShownOnGameOver(t *testing.T) {
	g := newTestGame(t, 7)
	drop := press(core.ActionHardDrop)
	for i := 0; i < 400 && !g.State().GameOver; i++ {
		g.Step(drop)
	}
	g.SetStatus("New best!")

	screen := core.NewScreen(80, 24)
	g.Render(screen)
	if !strings.Contains(screen.String(), "New best!") {
		t.Error("Expected status line on the game over overlay")
	}

	g.Reset(testConfig(8))
	g.Render(screen)
	if strings.Contains(screen.String(), "New best!") {
		t.Error("Reset should clear the status line")
	}
}
