package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-breakout/internal/registry"
)

var levelsCmd = &cobra.Command{
	Use:   "levels",
	Short: "List level packs and their levels",
	Long: `Shows every registered level pack. With --levels, validates and shows
the pack in that file instead.

Examples:
  breakout levels
  breakout levels --levels ./my-pack.yaml`,
	Args: cobra.NoArgs,
	Run:  runLevels,
}

func runLevels(_ *cobra.Command, _ []string) {
	if flagLevels != "" {
		p, err := registry.LoadFile(flagLevels)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		printPack(p)
		return
	}

	packs := registry.List()
	if len(packs) == 0 {
		fmt.Println("No level packs available.")
		return
	}

	fmt.Println("Available level packs:")
	fmt.Println()

	maxIDLen := 2 // "ID" header
	for _, p := range packs {
		maxIDLen = max(maxIDLen, len(p.ID))
	}

	fmt.Printf("  %-*s  %-6s  %s\n", maxIDLen, "ID", "Levels", "Name")
	fmt.Printf("  %-*s  %-6s  %s\n", maxIDLen, "--", "------", "----")
	for _, p := range packs {
		fmt.Printf("  %-*s  %-6d  %s\n", maxIDLen, p.ID, p.Levels, p.Name)
	}

	fmt.Println()
	fmt.Println("Run 'breakout play --pack <id>' to play a pack.")
}

func printPack(p registry.Pack) {
	fmt.Printf("%s (%s): %d levels\n", p.Name, p.ID, len(p.Levels))
	fmt.Println()
	for i, l := range p.Levels {
		fmt.Printf("  %2d. %-20s  %3d bricks\n", i+1, l.Name, l.Bricks())
	}
}
