package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-breakout/internal/breakout"
	"github.com/vovakirdan/tui-breakout/internal/platform/tui"
	"github.com/vovakirdan/tui-breakout/internal/storage"
)

var (
	flagTable bool
	flagClear bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [pack]",
	Short: "Show high scores for a level pack",
	Long: `Display the top 10 high scores for a level pack. Without an argument,
shows the pack selected by --pack or --levels.

Examples:
  breakout scores
  breakout scores classic
  breakout scores --table
  breakout scores custom --clear`,
	Args: cobra.MaximumNArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagTable, "table", false, "Browse scores of every pack interactively")
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete every recorded score of the pack")
}

func runScores(_ *cobra.Command, args []string) {
	pack, err := packID(args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagClear {
		if err := store.ClearScores(pack); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Cleared scores for %s\n", pack)
		return
	}

	if flagTable {
		width, height := terminalSize()
		if err := tui.RunScoreboard(store, pack, width, height); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		return
	}

	scores, err := store.TopScores(pack, 10)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving scores: %v\n", err)
		return
	}

	fmt.Printf("High Scores - %s\n", pack)
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'breakout play --pack %s' to set the first high score!\n", pack)
		return
	}

	fmt.Printf("  %-4s  %-10s  %-5s  %-7s  %s\n", "Rank", "Score", "Level", "Result", "Date")
	fmt.Printf("  %-4s  %-10s  %-5s  %-7s  %s\n", "----", "-----", "-----", "------", "----")
	for i, entry := range scores {
		result := "lost"
		if entry.Outcome == breakout.OutcomeWin {
			result = "cleared"
		}
		fmt.Printf("  %-4d  %-10d  %-5d  %-7s  %s\n",
			i+1, entry.Score, entry.Level, result, entry.CreatedAt.Format("2006-01-02 15:04"))
	}

	if stats, err := store.GetPackStats(pack); err == nil {
		fmt.Println()
		fmt.Printf("Best: %d  Games: %d  Cleared: %d\n", stats.HighScore, stats.GamesCount, stats.Wins)
	}
}
