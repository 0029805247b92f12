package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/shapedrop/internal/games/shapedrop/engine"
	"github.com/vovakirdan/shapedrop/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Show the speed curve of each difficulty",
	Long: `Shows the gravity interval of each difficulty at a few line counts,
using the active configuration.`,
	Args: cobra.NoArgs,
	Run:  runList,
}

var listLineCounts = []int{0, 10, 20, 50, 100}

func runList(_ *cobra.Command, _ []string) {
	cfg := loadConfig()
	curve := cfg.SpeedCurve()

	fmt.Println("Gravity interval by cleared lines:")
	fmt.Println()

	fmt.Printf("  %-8s", "Level")
	for _, n := range listLineCounts {
		fmt.Printf("  %6s", fmt.Sprintf("%dL", n))
	}
	fmt.Printf("  %6s\n", "Floor")

	for _, d := range engine.Difficulties {
		marker := " "
		if d == cfg.DefaultPreset().Engine() {
			marker = "*"
		}
		p := curve.Profile(d)
		fmt.Printf("%s %-8s", marker, d)
		for _, n := range listLineCounts {
			fmt.Printf("  %4dms", p.IntervalMs(n))
		}
		fmt.Printf("  %4dms\n", p.MinMs)
	}

	fmt.Println()
	for _, g := range registry.List() {
		fmt.Printf("Run 'shapedrop play --difficulty <level>' to play %s.\n", g.Title)
	}
}
