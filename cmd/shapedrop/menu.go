package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/shapedrop/internal/games/shapedrop"
	"github.com/vovakirdan/shapedrop/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Pick a difficulty, play and browse the leaderboard",
	Long: `Start ShapeDrop in interactive menu mode.

Each difficulty shows its starting gravity interval, your best score and
the top score. After a round, press B to return to the menu.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Play
  Tab          - Leaderboard
  Q            - Quit

Examples:
  shapedrop menu
  shapedrop menu --fps 30 --sound
  shapedrop menu --db ./scores.db`,
	Args: cobra.NoArgs,
	Run:  runMenu,
}

func init() {
	menuCmd.Flags().StringVar(&flagPlayer, "player", defaultPlayer(), "Name used on the leaderboard")
}

func runMenu(_ *cobra.Command, _ []string) {
	logger, closeLog := newLogger()
	defer closeLog()

	cfg := loadConfig()
	configureGames(cfg, logger)
	stopSound := setupSound(cfg, logger)
	defer stopSound()

	l, closeLedger := openLedger(logger)
	defer closeLedger()

	rt := runtimeConfig()
	difficulty := cfg.DefaultPreset().Engine()
	curve := cfg.SpeedCurve()

	for {
		menuResult, err := tui.RunMenu(l, curve, rt, flagPlayer, difficulty)
		if err != nil {
			logger.Error("menu failed", "err", err)
			return
		}
		rt = menuResult.Config
		difficulty = menuResult.Difficulty

		if menuResult.Quit {
			return
		}

		if menuResult.WantsScoreboard {
			goBack, err := tui.RunScoreboard(l, flagPlayer, difficulty, rt.ScreenW, rt.ScreenH)
			if err != nil {
				logger.Error("scoreboard failed", "err", err)
				return
			}
			if !goBack {
				return
			}
			continue
		}

		if flagSeed == 0 {
			rt.Seed = time.Now().UnixNano()
		}
		game := shapedrop.New(shapedrop.WithDifficulty(difficulty))
		backToMenu, err := tui.Run(game, l, rt, flagPlayer, logger)
		if err != nil {
			logger.Error("game failed", "err", err)
			return
		}
		if !backToMenu {
			return
		}
	}
}
