// owl is an interactive viewer for levels with owls in them.
//
// Usage:
//
//	owl play --level owl_demo.json
//	owl play --level levels/my.json --editor --debug
//
// Controls: A/D or arrows move, space jumps, F freezes, U thaws and I ignites
// the nearest badguy.
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/owl/prefabs"
	"github.com/spf13/cobra"
)

var (
	flagLevel    string
	flagEditor   bool
	flagDebug    bool
	flagLogLevel string
	flagPrefabs  string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:          "owl",
	Short:        "Owl level viewer",
	SilenceUsage: true,
}

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Open a level in a window and play it",
	Args:  cobra.NoArgs,
	RunE:  runPlay,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagPrefabs, "prefabs", "prefabs", "Directory checked for prefab overrides (empty for embedded only)")

	playCmd.Flags().StringVar(&flagLevel, "level", "owl_demo.json", "Level file on disk or embedded level name")
	playCmd.Flags().BoolVar(&flagEditor, "editor", false, "Edit mode: owls do not spawn their payload")
	playCmd.Flags().BoolVar(&flagDebug, "debug", false, "Draw physics shapes and owl state")

	rootCmd.AddCommand(playCmd)
}

func newLogger() (*log.Logger, error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid --log-level: %w", err)
	}
	return log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "owl",
		Level:           level,
	}), nil
}

func runPlay(cmd *cobra.Command, args []string) error {
	logger, err := newLogger()
	if err != nil {
		return err
	}
	prefabs.DiskRoot = flagPrefabs

	game, err := NewGame(flagLevel, flagEditor, flagDebug, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := game.Close(); err != nil {
			logger.Warn("shutdown", "err", err)
		}
	}()

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(baseWidth*2, baseHeight*2)
	ebiten.SetWindowTitle("owl")

	logger.Info("starting", "level", flagLevel, "editor", flagEditor)
	return ebiten.RunGame(game)
}
