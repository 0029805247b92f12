package main

import (
	"github.com/spf13/cobra"

	"github.com/vovakirdan/shapedrop/internal/games/shapedrop"
	"github.com/vovakirdan/shapedrop/internal/platform/tui"
	"github.com/vovakirdan/shapedrop/internal/registry"
)

var flagPlayer string

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a round",
	Long: `Start a round at the chosen difficulty.

Controls:
  Left/Right, h/l, a/d  - Move
  Down, j, s            - Soft drop
  Space, Up             - Hard drop
  x, k, w               - Rotate clockwise
  z                     - Rotate counter-clockwise
  P                     - Pause
  R                     - Restart (after game over)
  Ctrl+S                - Save a text screenshot
  Q/Ctrl+C              - Quit

Difficulty options:
  easy   - 1000ms gravity, shrinking 50ms every 10 lines
  normal - 700ms gravity, shrinking 40ms every 10 lines
  hard   - 500ms gravity, shrinking 30ms every 10 lines

The final score is submitted to the leaderboard when the round ends.

Examples:
  shapedrop play
  shapedrop play --difficulty hard --player ann
  shapedrop play --seed 42 --config ./my-shapedrop.yaml`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagPlayer, "player", defaultPlayer(), "Name used on the leaderboard")
}

func runPlay(_ *cobra.Command, _ []string) {
	logger, closeLog := newLogger()
	defer closeLog()

	cfg := loadConfig()
	configureGames(cfg, logger)
	stopSound := setupSound(cfg, logger)
	defer stopSound()

	game, err := registry.Create(shapedrop.ID)
	if err != nil {
		fail("creating game: %v", err)
	}

	l, closeLedger := openLedger(logger)
	defer closeLedger()

	logger.Info("starting round", "player", flagPlayer, "difficulty", cfg.DefaultPreset(), "seed", flagSeed)
	if _, err := tui.Run(game, l, runtimeConfig(), flagPlayer, logger); err != nil {
		closeLedger()
		fail("running game: %v", err)
	}
}
