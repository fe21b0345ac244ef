package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/cyberjump/internal/match"
	"github.com/vovakirdan/cyberjump/internal/progress"
	"github.com/vovakirdan/cyberjump/internal/registry"
)

var modesCmd = &cobra.Command{
	Use:   "modes",
	Short: "List game modes and round activities",
	Long:  `Shows the game modes, the activity played after each race and the registered round providers.`,
	Run:   runModes,
}

func runModes(_ *cobra.Command, _ []string) {
	fmt.Println("Game modes:")
	fmt.Println()
	fmt.Printf("  %-6s  %-20s  %s\n", "ID", "Title", "Saved")
	fmt.Printf("  %-6s  %-20s  %s\n", "--", "-----", "-----")
	for _, m := range match.Modes {
		saved := "no"
		if progress.Persisted(m) {
			saved = "yes"
		}
		fmt.Printf("  %-6s  %-20s  %s\n", m, m.Title(), saved)
	}

	fmt.Println()
	fmt.Println("Rounds of a 10-round match (a 5-round match ends with the boss race in round 5):")
	fmt.Println()
	for round := 1; round <= match.LongMatch; round++ {
		activity := match.ActivityFor(round, match.LongMatch)
		fmt.Printf("  %2d  race -> %s\n", round, activityName(activity))
	}

	providers := registry.List()
	fmt.Println()
	fmt.Println("Providers:")
	fmt.Println()

	// Calculate column widths
	maxKindLen := 4 // "Kind" header
	for _, p := range providers {
		if len(p.Kind) > maxKindLen {
			maxKindLen = len(p.Kind)
		}
	}
	fmt.Printf("  %-*s  %s\n", maxKindLen, "Kind", "Title")
	fmt.Printf("  %-*s  %s\n", maxKindLen, "----", "-----")
	for _, p := range providers {
		fmt.Printf("  %-*s  %s\n", maxKindLen, p.Kind, p.Title)
	}

	fmt.Println()
	fmt.Println("Run 'cyberjump play <id>' to play a mode.")
}

func activityName(a match.Activity) string {
	switch a {
	case match.ActivityNone:
		return "next round"
	case match.ActivityFinal:
		return "boss race, final results"
	}
	return registry.Title(a.String())
}
