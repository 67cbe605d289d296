package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-breakout/internal/audio"
	"github.com/vovakirdan/tui-breakout/internal/audio/synth"
	"github.com/vovakirdan/tui-breakout/internal/core"
	"github.com/vovakirdan/tui-breakout/internal/platform/tui"
	"github.com/vovakirdan/tui-breakout/internal/storage"
)

var flagMute bool

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play breakout",
	Long: `Start a game with the selected level pack.

Controls:
  Left/A, Right/D  - Move the paddle
  Mouse            - Move the paddle
  Any key/Click    - Start, or continue after the game ends
  ?                - Toggle help
  Ctrl+S           - Save a screenshot to ~/.arcade/screenshots
  Q/Ctrl+C         - Quit

Difficulty options:
  easy   - More lives, wider paddle, slower ball
  normal - Start at 30% difficulty, progresses to max
  hard   - Fewer lives, narrower paddle, faster ball
  fixed  - No progression, stays at config's initial level

Examples:
  breakout play
  breakout play --difficulty easy
  breakout play --pack classic --seed 42
  breakout play --levels ./my-pack.yaml --mute
  breakout play --config ./my-breakout.yaml`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().BoolVar(&flagMute, "mute", false, "Disable sound")
}

func runPlay(_ *cobra.Command, _ []string) {
	cfg, source, err := gameConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	pack, err := selectedPack()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		fmt.Fprintln(os.Stderr, "Run 'breakout levels' to see available packs.")
		os.Exit(1)
	}

	logger, logFile, err := openLogger(flagLogPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer logFile.Close()
	logger.Info("starting", "pack", pack.ID, "config", source, "difficulty", flagDifficulty)

	var player audio.Player = audio.Nop{}
	if !flagMute {
		s := synth.New(logger)
		if err := s.Init(); err != nil {
			logger.Warn("sound disabled", "error", err)
		} else {
			defer s.Close()
			player = s
		}
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		// Continue without storage - game still works
		store = nil
	}
	if store != nil {
		defer store.Close()
	}

	width, height := terminalSize()
	runErr := tui.Run(tui.Options{
		Runtime: core.RuntimeConfig{
			ScreenW:  width,
			ScreenH:  height,
			TickRate: flagFPS,
			Seed:     flagSeed,
		},
		Config: cfg,
		Pack:   pack,
		Store:  store,
		Audio:  player,
		Logger: logger,
	})
	if runErr != nil {
		logger.Error("game failed", "error", runErr)
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1) //nolint:gocritic // deferred closes are best-effort
	}
}
