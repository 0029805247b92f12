package engine

// Rules holds the scoring constants applied when a piece locks.
type Rules struct {
	LinePoints int // points per cleared row
	ComboBonus int // points per combo level carried into a clearing lock
}

// DefaultRules returns the standard scoring constants.
func DefaultRules() Rules {
	return Rules{LinePoints: 100, ComboBonus: 20}
}

// Phase is the externally observable game phase.
type Phase int

const (
	PhaseFalling Phase = iota
	PhaseGameOver
)

// String returns a human-readable phase name.
func (p Phase) String() string {
	switch p {
	case PhaseFalling:
		return "Falling"
	case PhaseGameOver:
		return "GameOver"
	default:
		return "Unknown"
	}
}

// LockEvent describes what happened when a piece locked.
type LockEvent struct {
	At          int64 // host time passed to the operation that locked
	Shape       ShapeID
	Rows        []int // cleared row indices, bottom to top, before shifting
	Cleared     int
	Points      int // score gained by this lock
	ComboBefore int
	Combo       int
	DropRows    int // rows travelled by a hard drop, 0 otherwise
	GameOver    bool
}

// State is one game. It exclusively owns its board and both pieces.
type State struct {
	Board   Board
	Current *Piece
	Next    *Piece

	Score int
	Lines int
	Combo int
	Over  bool

	rules Rules
	rng   RandomSource
}

// New starts a game with default scoring, drawing pieces from rng.
func New(rng RandomSource) *State {
	return NewWithRules(rng, DefaultRules())
}

// NewWithRules starts a game with custom scoring constants.
func NewWithRules(rng RandomSource, rules Rules) *State {
	s := &State{rules: rules, rng: rng}
	s.Current = RandomPiece(rng)
	s.Next = RandomPiece(rng)
	return s
}

// Rules returns the scoring constants in effect.
func (s *State) Rules() Rules { return s.rules }

// Phase returns the current phase.
func (s *State) Phase() Phase {
	if s.Over {
		return PhaseGameOver
	}
	return PhaseFalling
}

// Move shifts the current piece dx columns. The shift is undone if it would
// collide. It reports whether the piece moved.
func (s *State) Move(dx int) bool {
	if s.Over || dx == 0 {
		return false
	}
	s.Current.X += dx
	if Collide(&s.Board, s.Current) {
		s.Current.X -= dx
		return false
	}
	return true
}

// rotationKick is the visual rotation offset applied on every rotate.
const rotationKick = 0.3

// RotateCurrent rotates the current piece a quarter turn in dir. On collision
// it tries one column right, then one column left; if both fail the rotation
// is reverted. It reports whether the rotation stuck.
func (s *State) RotateCurrent(dir Direction) bool {
	if s.Over {
		return false
	}
	p := s.Current
	prev := p.Matrix
	p.Matrix = Rotate(prev, dir)
	p.Rotation = float64(dir) * rotationKick
	if !Collide(&s.Board, p) {
		return true
	}
	p.X++
	if !Collide(&s.Board, p) {
		return true
	}
	p.X -= 2
	if !Collide(&s.Board, p) {
		return true
	}
	p.X++
	p.Matrix = prev
	p.Rotation = 0
	return false
}

// Step advances the current piece one row. If it cannot move it locks;
// locked reports whether that happened and ev describes the lock.
func (s *State) Step(nowMs int64) (ev LockEvent, locked bool) {
	if s.Over {
		return LockEvent{}, false
	}
	s.Current.Y++
	if !Collide(&s.Board, s.Current) {
		return LockEvent{}, false
	}
	s.Current.Y--
	return s.lock(nowMs, 0), true
}

// HardDrop moves the current piece straight down to rest and locks it.
// locked is false only when the game is already over.
func (s *State) HardDrop(nowMs int64) (ev LockEvent, locked bool) {
	if s.Over {
		return LockEvent{}, false
	}
	p := s.Current
	start := p.Y
	for {
		p.Y++
		if Collide(&s.Board, p) {
			p.Y--
			break
		}
	}
	p.FY = float64(p.Y)
	return s.lock(nowMs, p.Y-start), true
}

// lock merges the current piece, clears full rows, scores them and spawns
// the next piece.
func (s *State) lock(nowMs int64, dropRows int) LockEvent {
	ev := LockEvent{
		At:          nowMs,
		Shape:       s.Current.Shape,
		ComboBefore: s.Combo,
		DropRows:    dropRows,
	}

	Merge(&s.Board, s.Current)
	ev.Rows = FindLinesToClear(&s.Board)
	ev.Cleared = ClearLines(&s.Board)

	if ev.Cleared > 0 {
		ev.Points = ev.Cleared*s.rules.LinePoints + s.Combo*s.rules.ComboBonus
		s.Lines += ev.Cleared
		s.Score += ev.Points
		s.Combo++
	} else {
		s.Combo = 0
	}
	ev.Combo = s.Combo

	s.spawn()
	ev.GameOver = s.Over
	return ev
}

// spawn promotes Next to Current at the spawn position and draws a fresh
// Next. The game ends if the promoted piece does not fit.
func (s *State) spawn() {
	s.Current = s.Next
	s.Current.placeAtSpawn()
	s.Next = RandomPiece(s.rng)
	if Collide(&s.Board, s.Current) {
		s.Over = true
	}
}
