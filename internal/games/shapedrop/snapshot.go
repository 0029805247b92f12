package shapedrop

import "github.com/vovakirdan/shapedrop/internal/games/shapedrop/engine"

// GameStateType represents the current game state.
type GameStateType string

const (
	StatePlaying     GameStateType = "playing"
	StatePaused      GameStateType = "paused"
	StateGameOver    GameStateType = "game_over"
	StatePausedSmall GameStateType = "paused_small_window"
)

// Snapshot captures the game state for determinism testing.
type Snapshot struct {
	Tick       uint64
	ClockMs    float64
	Difficulty engine.Difficulty
	Score      int
	Lines      int
	Combo      int
	Filled     int
	Shape      engine.ShapeID
	NextShape  engine.ShapeID
	X, Y       int
	IntervalMs int
	State      GameStateType
}

// Snapshot returns the current game snapshot.
func (g *Game) Snapshot() Snapshot {
	state := StatePlaying
	switch {
	case g.tooSmall:
		state = StatePausedSmall
	case g.state.Over:
		state = StateGameOver
	case g.paused:
		state = StatePaused
	}

	return Snapshot{
		Tick:       g.tick,
		ClockMs:    g.clockMs,
		Difficulty: g.difficulty,
		Score:      g.state.Score,
		Lines:      g.state.Lines,
		Combo:      g.state.Combo,
		Filled:     g.state.Board.Filled(),
		Shape:      g.state.Current.Shape,
		NextShape:  g.state.Next.Shape,
		X:          g.state.Current.X,
		Y:          g.state.Current.Y,
		IntervalMs: g.DropIntervalMs(),
		State:      state,
	}
}
