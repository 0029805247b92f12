// shapedrop is a falling-block puzzle game for the terminal.
//
// Usage:
//
//	shapedrop play               - Play a round
//	shapedrop menu               - Pick a difficulty, play, view scores
//	shapedrop scores [level]     - Show the leaderboard
//	shapedrop list               - Show the speed curve of each difficulty
//	shapedrop serve              - Start SSH server for remote play
//	shapedrop config init|show   - Write or print the configuration
//
// Global flags:
//
//	--fps <rate>         - Set tick rate (default: 60)
//	--seed <value>       - Set RNG seed for reproducible gameplay
//	--db <path>          - Set database path (default: ~/.shapedrop/scores.db)
//	--config <path>      - Use a custom config YAML
//	--difficulty <name>  - easy, normal or hard
//	--log-file <path>    - Write logs to a file
//	--sound              - Enable sound cues
package main

import (
	"fmt"
	"io"
	"os"
	"os/user"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/shapedrop/internal/config"
	"github.com/vovakirdan/shapedrop/internal/core"
	"github.com/vovakirdan/shapedrop/internal/games/shapedrop"
	"github.com/vovakirdan/shapedrop/internal/games/shapedrop/engine"
	"github.com/vovakirdan/shapedrop/internal/ledger"
	"github.com/vovakirdan/shapedrop/internal/platform/audio"
	"github.com/vovakirdan/shapedrop/internal/storage"
)

var (
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagLogFile    string
	flagLogLevel   string
	flagSound      bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "shapedrop",
	Short: "ShapeDrop - a falling-block puzzle for your terminal",
	Long: `ShapeDrop drops one of seven shapes at a time onto a 10x20 board.
Fill rows to clear them; clearing on consecutive pieces builds a combo.
The game ends when a new piece has no room to spawn.

Available commands:
  play     - Play a round directly
  menu     - Difficulty picker with leaderboard
  scores   - View high scores
  list     - Show difficulty speed curves
  serve    - Start SSH server for remote play
  config   - Write or print the configuration

Examples:
  shapedrop play --difficulty hard
  shapedrop menu --sound
  shapedrop scores normal
  shapedrop serve --ssh :2222`,
	SilenceUsage: true,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	pf.Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	pf.StringVar(&flagDBPath, "db", "~/.shapedrop/scores.db", "Path to scores database")
	pf.StringVar(&flagConfig, "config", "", "Path to custom config YAML")
	pf.StringVar(&flagDifficulty, "difficulty", "", "Difficulty: easy, normal, hard (default from config)")
	pf.StringVar(&flagLogFile, "log-file", "", "Write logs to this file")
	pf.StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	pf.BoolVar(&flagSound, "sound", false, "Play sound cues (overrides config)")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(configCmd)
}

// fail prints an error and exits.
func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}

// newLogger returns the file logger for interactive modes. The alt screen
// owns the terminal, so without --log-file logs are discarded.
func newLogger() (*log.Logger, func()) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		fail("invalid --log-level: %v", err)
	}

	if flagLogFile == "" {
		return log.New(io.Discard), func() {}
	}
	f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		fail("cannot open log file: %v", err)
	}
	logger := log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		Prefix:          "shapedrop",
		Level:           level,
	})
	return logger, func() { f.Close() }
}

// loadConfig loads the game config, applying --difficulty as the default.
func loadConfig() config.ShapeDropConfig {
	cfg, err := config.LoadShapeDrop(flagConfig)
	if err != nil {
		fail("%v", err)
	}
	if flagDifficulty != "" {
		preset, err := config.ParsePreset(flagDifficulty)
		if err != nil {
			fail("%v", err)
		}
		config.ApplyShapeDropPreset(&cfg, preset)
	}
	return cfg
}

// openLedger opens the scores database, falling back to an in-memory ledger
// so the game stays playable.
func openLedger(logger *log.Logger) (ledger.Ledger, func()) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		logger.Warn("scores will not persist", "db", flagDBPath, "err", err)
		return ledger.NewMemory(), func() {}
	}
	return store, func() { store.Close() }
}

// setupSound installs the audio cue player when sound is enabled.
func setupSound(cfg config.ShapeDropConfig, logger *log.Logger) func() {
	if !flagSound && !cfg.Sound.Enabled {
		return func() {}
	}
	player, err := audio.New(cfg.Sound.Volume)
	if err != nil {
		logger.Warn("sound disabled", "err", err)
		return func() {}
	}
	shapedrop.SetCuePlayer(player)
	return player.Close
}

// configureGames sets the package defaults used by every new game.
func configureGames(cfg config.ShapeDropConfig, logger *log.Logger) {
	shapedrop.SetConfigPath(flagConfig)
	shapedrop.SetDifficultyPreset(string(cfg.DefaultPreset()))
	shapedrop.SetLogger(logger)
}

// runtimeConfig builds the runtime config from the terminal size and flags.
func runtimeConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	cfg.TickRate = flagFPS
	cfg.Seed = flagSeed
	return cfg
}

// defaultPlayer is the local account name.
func defaultPlayer() string {
	if u, err := user.Current(); err == nil && u.Username != "" {
		return u.Username
	}
	if name := os.Getenv("USER"); name != "" {
		return name
	}
	return "player"
}

// parseDifficultyArg parses a difficulty name or index.
func parseDifficultyArg(s string) engine.Difficulty {
	d, err := engine.ParseDifficulty(s)
	if err != nil {
		fail("%v", err)
	}
	return d
}
