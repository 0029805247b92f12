package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/shapedrop/internal/core"
	"github.com/vovakirdan/shapedrop/internal/ledger"
	"github.com/vovakirdan/shapedrop/internal/registry"
)

// Resizer is implemented by games that can adapt to a new terminal size
// without restarting the round.
type Resizer interface {
	Resize(w, h int)
}

// StatusSetter is implemented by games that can show a one-line status,
// such as the outcome of a score submission.
type StatusSetter interface {
	SetStatus(msg string)
}

// submittedMsg carries the outcome of an asynchronous score submission.
type submittedMsg struct {
	result   ledger.Result
	improved bool
	best     *ledger.Record
	err      error
}

// Model is the Bubble Tea model for running a game.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	ledger     ledger.Ledger
	config     core.RuntimeConfig
	player     string
	logger     *log.Logger
	inputFrame core.InputFrame
	gameState  core.GameState
	keyMapper  *KeyMapper
	quitting   bool
	backToMenu bool
	quitOnBack bool
	submitted  bool // score submitted for the current game over
}

// NewModel creates a model for game. A nil ledger disables score submission.
func NewModel(game registry.Game, l ledger.Ledger, cfg core.RuntimeConfig, player string, logger *log.Logger) Model {
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}

	return Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		ledger:     l,
		config:     cfg,
		player:     player,
		logger:     logger,
		inputFrame: core.NewInputFrame(),
		keyMapper:  NewKeyMapper(),
	}
}

// Init starts the game and the tick loop.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()

	case submittedMsg:
		return m.handleSubmitted(msg)
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	if m.keyMapper.MapKeyToFrame(msg, &m.inputFrame) {
		m.quitting = true
		return m, tea.Quit
	}

	if m.inputFrame.Has(core.ActionBack) && (m.gameState.GameOver || m.gameState.Paused) {
		m.backToMenu = true
		if m.quitOnBack {
			return m, tea.Quit
		}
	}

	return m, nil
}

// handleResize resizes the screen buffer. Games that implement Resizer keep
// their round; others restart unless the round is already over.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)

	if r, ok := m.game.(Resizer); ok {
		r.Resize(msg.Width, msg.Height)
		return m, nil
	}
	if !m.gameState.GameOver {
		m.game.Reset(m.config)
	}
	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.inputFrame.Has(core.ActionRestart) && m.gameState.GameOver {
		m.config.Seed = time.Now().UnixNano()
		m.game.Reset(m.config)
		m.gameState = m.game.State()
		m.submitted = false
		m.inputFrame.Clear()
		return m, tickCmd(m.config.TickRate)
	}

	result := m.game.Step(m.inputFrame)
	m.gameState = result.State
	m.inputFrame.Clear()

	cmds := []tea.Cmd{tickCmd(m.config.TickRate)}
	if m.gameState.GameOver && !m.submitted {
		m.submitted = true
		if cmd := m.submitCmd(); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return m, tea.Batch(cmds...)
}

// submitCmd submits the finished round to the ledger. It returns nil when
// there is nothing to submit.
func (m Model) submitCmd() tea.Cmd {
	scored, ok := m.game.(registry.Scored)
	if !ok || m.ledger == nil || m.gameState.Score <= 0 {
		return nil
	}
	result := scored.Result(m.player)
	l := m.ledger

	return func() tea.Msg {
		improved, err := l.Submit(result)
		if err != nil {
			return submittedMsg{result: result, err: err}
		}
		best, err := l.UserRecord(result.Player, result.Difficulty)
		return submittedMsg{result: result, improved: improved, best: best, err: err}
	}
}

// handleSubmitted logs the submission and reports it to the game.
func (m Model) handleSubmitted(msg submittedMsg) (tea.Model, tea.Cmd) {
	status := submissionStatus(msg)
	if msg.err != nil {
		m.logger.Error("score submission failed",
			"player", msg.result.Player,
			"score", msg.result.Score,
			"err", msg.err,
		)
	} else {
		m.logger.Info("score submitted",
			"player", msg.result.Player,
			"difficulty", msg.result.Difficulty,
			"score", msg.result.Score,
			"lines", msg.result.Lines,
			"improved", msg.improved,
		)
	}

	if s, ok := m.game.(StatusSetter); ok && m.gameState.GameOver {
		s.SetStatus(status)
	}
	return m, nil
}

func submissionStatus(msg submittedMsg) string {
	switch {
	case msg.err != nil:
		return "Score not saved"
	case msg.improved:
		return "New best!"
	case msg.best != nil:
		return fmt.Sprintf("Best %d", msg.best.Score)
	default:
		return "Score saved"
	}
}

// saveScreenshot writes the current screen as text to
// ~/.shapedrop/screenshots.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		m.logger.Warn("screenshot skipped", "err", err)
		return
	}
	dir := filepath.Join(home, ".shapedrop", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("screenshot skipped", "err", err)
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("screenshot failed", "path", path, "err", err)
		return
	}
	m.logger.Info("screenshot saved", "path", path)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	m.game.Render(m.screen)
	return RenderScreen(m.screen)
}

// IsQuitting returns true if the user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if the user asked to return to the menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// Run plays game in the terminal until the user quits or goes back. It
// reports whether the user asked to return to the menu.
func Run(game registry.Game, l ledger.Ledger, cfg core.RuntimeConfig, player string, logger *log.Logger) (backToMenu bool, err error) {
	model := NewModel(game, l, cfg, player, logger)
	model.quitOnBack = true

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	final, err := p.Run()
	if err != nil {
		return false, err
	}
	m, ok := final.(Model)
	if !ok {
		return false, nil
	}
	return m.BackToMenu(), nil
}
