// breakout is a brick-breaker game for the terminal.
//
// Usage:
//
//	breakout play            - Play the selected level pack
//	breakout levels          - List level packs and their levels
//	breakout scores [pack]   - Show high scores for a pack
//	breakout serve           - Start SSH server for remote play
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--seed <value>        - Set RNG seed for reproducible gameplay
//	--db <path>           - Set database path (default: ~/.arcade/scores.db)
//	--config <path>       - Load gameplay settings from a YAML file
//	--difficulty <preset> - Apply easy, normal, hard or fixed
//	--pack <id>           - Play a registered level pack (default: classic)
//	--levels <path>       - Play a level pack from a YAML file
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-breakout/internal/registry"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagPack       string
	flagLevels     string
	flagLogPath    string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "breakout",
	Short: "Breakout - Break bricks in your terminal",
	Long: `Breakout is a terminal brick-breaker. Bounce the ball off the paddle,
clear every brick of a level and work through the level pack.

Available commands:
  play     - Play the selected level pack
  levels   - Show the available level packs
  scores   - View high scores
  serve    - Start SSH server for remote play

Examples:
  breakout play
  breakout play --difficulty hard
  breakout play --levels ./my-pack.yaml
  breakout scores classic --table
  breakout serve --ssh :2222`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.arcade/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom gameplay config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	rootCmd.PersistentFlags().StringVar(&flagPack, "pack", registry.DefaultPack, "Level pack id")
	rootCmd.PersistentFlags().StringVar(&flagLevels, "levels", "", "Path to a level pack YAML (overrides --pack)")
	rootCmd.PersistentFlags().StringVar(&flagLogPath, "log", "~/.arcade/breakout.log", "Path to the log file")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(levelsCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(serveCmd)
}
