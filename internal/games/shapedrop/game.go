// Package shapedrop adapts the falling-block engine to the platform's Game
// interface: fixed-rate ticks drive gravity, input and animation, and the
// final score is exposed for the ledger.
package shapedrop

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/shapedrop/internal/config"
	"github.com/vovakirdan/shapedrop/internal/core"
	"github.com/vovakirdan/shapedrop/internal/games/shapedrop/engine"
	"github.com/vovakirdan/shapedrop/internal/ledger"
	"github.com/vovakirdan/shapedrop/internal/registry"
)

// ID is the registry identifier of the game.
const ID = "shapedrop"

// CuePlayer reacts to piece locks, typically with sound.
type CuePlayer interface {
	PlayLock(ev engine.LockEvent)
}

// Game implements registry.Game for ShapeDrop.
type Game struct {
	cfg        config.ShapeDropConfig
	preset     config.DifficultyPreset
	difficulty engine.Difficulty
	curve      engine.SpeedCurve

	state *engine.State
	seed  int64
	tick  uint64

	frameMs   float64
	clockMs   float64
	dropTimer float64

	lastLock   engine.LockEvent
	flashTicks int
	flashLen   int

	screenW, screenH int
	paused           bool
	tooSmall         bool
	status           string

	logger *log.Logger
	cues   CuePlayer
}

// Package-level defaults, set by the CLI before games are created.
var (
	configPath       string
	difficultyPreset config.DifficultyPreset
	defaultLogger    = log.New(io.Discard)
	defaultCues      CuePlayer
)

// SetConfigPath sets the config file used by new games.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty used by games created without an
// explicit WithDifficulty option. An empty preset uses the config default.
func SetDifficultyPreset(preset string) {
	difficultyPreset = config.DifficultyPreset(preset)
}

// SetLogger sets the logger used by new games.
func SetLogger(l *log.Logger) {
	if l == nil {
		l = log.New(io.Discard)
	}
	defaultLogger = l
}

// SetCuePlayer sets the cue player used by new games. nil disables cues.
func SetCuePlayer(p CuePlayer) {
	defaultCues = p
}

// Option customizes a Game.
type Option func(*Game)

// WithDifficulty fixes the difficulty regardless of package defaults.
func WithDifficulty(d engine.Difficulty) Option {
	return func(g *Game) { g.preset = config.PresetFor(d) }
}

// WithLogger overrides the package logger.
func WithLogger(l *log.Logger) Option {
	return func(g *Game) {
		if l != nil {
			g.logger = l
		}
	}
}

// WithCuePlayer overrides the package cue player. nil disables cues.
func WithCuePlayer(p CuePlayer) Option {
	return func(g *Game) { g.cues = p }
}

// WithConfig uses cfg instead of loading the config file.
func WithConfig(cfg config.ShapeDropConfig) Option {
	return func(g *Game) { g.cfg = cfg }
}

// New creates a game. Reset must be called before the first Step.
func New(opts ...Option) *Game {
	g := &Game{
		preset: difficultyPreset,
		logger: defaultLogger,
		cues:   defaultCues,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

func init() {
	registry.Register(ID, func() registry.Game {
		return New()
	})
}

// ID returns the game identifier.
func (g *Game) ID() string { return ID }

// Title returns the display name.
func (g *Game) Title() string { return "ShapeDrop" }

// Reset starts a new round.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	if g.cfg == (config.ShapeDropConfig{}) {
		loaded, err := config.LoadShapeDrop(configPath)
		if err != nil {
			g.logger.Warn("using default config", "path", configPath, "err", err)
			loaded = config.DefaultShapeDropConfig()
		}
		g.cfg = loaded
	}
	if g.preset == "" {
		g.preset = g.cfg.DefaultPreset()
	}

	g.difficulty = g.preset.Engine()
	g.curve = g.cfg.SpeedCurve()
	g.seed = cfg.Seed
	g.state = engine.NewWithRules(engine.NewRandomSource(cfg.Seed), g.cfg.Rules())

	g.tick = 0
	g.frameMs = cfg.FrameMs()
	g.clockMs = 0
	g.dropTimer = 0
	g.lastLock = engine.LockEvent{}
	g.flashTicks = 0
	g.flashLen = cfg.TickRate
	if g.flashLen <= 0 {
		g.flashLen = 60
	}
	g.paused = false
	g.status = ""
	g.Resize(cfg.ScreenW, cfg.ScreenH)

	g.logger.Debug("game reset", "difficulty", g.difficulty, "seed", cfg.Seed)
}

// Resize updates the screen size without restarting the round.
func (g *Game) Resize(w, h int) {
	g.screenW, g.screenH = w, h
	g.tooSmall = w < minScreenW || h < minScreenH
}

// SetStatus sets a line shown under the game over overlay, such as the
// outcome of a score submission. It is cleared by Reset.
func (g *Game) SetStatus(msg string) {
	g.status = msg
}

// Difficulty returns the difficulty of the current round.
func (g *Game) Difficulty() engine.Difficulty { return g.difficulty }

// Engine exposes the engine state for read-only inspection.
func (g *Game) Engine() *engine.State { return g.state }

// DropIntervalMs returns the gravity interval for the current line count.
func (g *Game) DropIntervalMs() int {
	return g.curve.DropIntervalMs(g.difficulty, g.state.Lines)
}

// Step advances the game by one tick: input, gravity, then animation.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.tick++

	if g.tooSmall || g.state.Over {
		return core.StepResult{State: g.State()}
	}
	if in.Has(core.ActionPause) {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	g.clockMs += g.frameMs
	now := int64(g.clockMs)

	g.processInput(in, now)

	if !g.state.Over {
		g.dropTimer += g.frameMs
		if g.dropTimer >= float64(g.DropIntervalMs()) {
			g.dropTimer = 0
			if ev, locked := g.state.Step(now); locked {
				g.onLock(ev)
			}
		}
	}

	engine.UpdateAnimation(g.state, g.frameMs, float64(g.DropIntervalMs()), now)

	if g.flashTicks > 0 {
		g.flashTicks--
	}
	return core.StepResult{State: g.State()}
}

// processInput applies this tick's actions. Direct moves snap the visual
// position so the piece tracks the keyboard without easing lag on that axis.
func (g *Game) processInput(in core.InputFrame, now int64) {
	s := g.state

	if in.Has(core.ActionLeft) && s.Move(-1) {
		s.Current.FX = float64(s.Current.X)
	}
	if in.Has(core.ActionRight) && s.Move(1) {
		s.Current.FX = float64(s.Current.X)
	}
	if in.Has(core.ActionRotateCW) {
		s.RotateCurrent(engine.CW)
	}
	if in.Has(core.ActionRotateCCW) {
		s.RotateCurrent(engine.CCW)
	}
	if in.Has(core.ActionSoftDrop) && !s.Over {
		ev, locked := s.Step(now)
		if locked {
			g.onLock(ev)
		} else {
			s.Current.FY = float64(s.Current.Y)
		}
	}
	if in.Has(core.ActionHardDrop) && !s.Over {
		if ev, locked := s.HardDrop(now); locked {
			g.onLock(ev)
		}
	}
}

// onLock logs the lock, starts the HUD flash and forwards it to the cue
// player.
func (g *Game) onLock(ev engine.LockEvent) {
	g.lastLock = ev
	if ev.Cleared > 0 {
		g.flashTicks = g.flashLen
		g.logger.Debug("lines cleared",
			"rows", ev.Rows,
			"points", ev.Points,
			"combo", ev.Combo,
			"score", g.state.Score,
			"lines", g.state.Lines,
		)
	}
	if ev.GameOver {
		g.logger.Info("game over",
			"difficulty", g.difficulty,
			"score", g.state.Score,
			"lines", g.state.Lines,
			"seed", g.seed,
		)
	}
	if g.cues != nil {
		g.cues.PlayLock(ev)
	}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	if g.state == nil {
		return core.GameState{}
	}
	return core.GameState{
		Score:    g.state.Score,
		Lines:    g.state.Lines,
		GameOver: g.state.Over,
		Paused:   g.paused,
	}
}

// Result returns the ledger submission for the current round.
func (g *Game) Result(player string) ledger.Result {
	r := ledger.Result{Player: player, Difficulty: g.difficulty}
	if g.state != nil {
		r.Score = g.state.Score
		r.Lines = g.state.Lines
	}
	return r
}

var (
	_ registry.Game   = (*Game)(nil)
	_ registry.Scored = (*Game)(nil)
)
