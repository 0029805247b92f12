package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/shapedrop/internal/games/shapedrop/engine"
	"github.com/vovakirdan/shapedrop/internal/ledger"
	"github.com/vovakirdan/shapedrop/internal/storage"
)

var (
	flagScoresPlayer string
	flagScoresLimit  int
	flagScoresReset  bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [difficulty]",
	Short: "Show high scores",
	Long: `Display the leaderboard of a difficulty (default: every difficulty).

Each player keeps one record per difficulty: their best score.

Examples:
  shapedrop scores
  shapedrop scores hard --limit 20
  shapedrop scores --player ann
  shapedrop scores easy --reset`,
	Args: cobra.MaximumNArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().StringVar(&flagScoresPlayer, "player", "", "Show one player's records instead")
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of entries to show")
	scoresCmd.Flags().BoolVar(&flagScoresReset, "reset", false, "Delete the records of the given difficulty")
}

func runScores(_ *cobra.Command, args []string) {
	difficulties := engine.Difficulties
	if len(args) == 1 {
		difficulties = []engine.Difficulty{parseDifficultyArg(args[0])}
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fail("opening scores database: %v", err)
	}
	defer store.Close()

	if flagScoresReset {
		if len(args) != 1 {
			store.Close()
			fail("--reset needs a difficulty")
		}
		if err := store.ClearRecords(difficulties[0]); err != nil {
			store.Close()
			fail("%v", err)
		}
		fmt.Printf("Cleared %s records.\n", difficulties[0])
		return
	}

	if flagScoresPlayer != "" {
		records, err := store.PlayerRecords(flagScoresPlayer)
		if err != nil {
			store.Close()
			fail("retrieving records: %v", err)
		}
		printPlayerRecords(flagScoresPlayer, records)
		return
	}

	for i, d := range difficulties {
		if i > 0 {
			fmt.Println()
		}
		records, err := store.Leaderboard(d, flagScoresLimit)
		if err != nil {
			store.Close()
			fail("retrieving scores: %v", err)
		}
		stats, err := store.Stats(d)
		if err != nil {
			store.Close()
			fail("%v", err)
		}
		printLeaderboard(d, records, stats)
	}
}

func printLeaderboard(d engine.Difficulty, records []ledger.Record, stats *storage.DifficultyStats) {
	fmt.Printf("High Scores - %s\n", d)
	fmt.Println()

	if len(records) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Printf("Play 'shapedrop play --difficulty %s' to set the first high score!\n", d)
		return
	}

	fmt.Printf("  %-4s  %-16s  %-8s  %-6s  %s\n", "Rank", "Player", "Score", "Lines", "Date")
	fmt.Printf("  %-4s  %-16s  %-8s  %-6s  %s\n", "----", "------", "-----", "-----", "----")
	for i, r := range records {
		fmt.Printf("  %-4d  %-16s  %-8d  %-6d  %s\n",
			i+1, r.Player, r.Score, r.Lines, r.SubmittedAt.Local().Format("2006-01-02 15:04"))
	}

	fmt.Println()
	fmt.Printf("Players: %d  Games: %d  Best: %d  Average: %.0f\n",
		stats.Players, stats.Attempts, stats.HighScore, stats.AvgScore)
}

func printPlayerRecords(player string, records []ledger.Record) {
	fmt.Printf("Records - %s\n", player)
	fmt.Println()

	if len(records) == 0 {
		fmt.Println("No scores recorded yet.")
		return
	}

	fmt.Printf("  %-10s  %-8s  %-6s  %s\n", "Difficulty", "Score", "Lines", "Date")
	fmt.Printf("  %-10s  %-8s  %-6s  %s\n", "----------", "-----", "-----", "----")
	for _, r := range records {
		fmt.Printf("  %-10s  %-8d  %-6d  %s\n",
			r.Difficulty, r.Score, r.Lines, r.SubmittedAt.Local().Format("2006-01-02 15:04"))
	}
}
