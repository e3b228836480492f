package main

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"path/filepath"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/spf13/cobra"

	"github.com/milk9111/stargrab/config"
	"github.com/milk9111/stargrab/levels"
	"github.com/milk9111/stargrab/prefabs"
	"github.com/milk9111/stargrab/scene"
	"github.com/milk9111/stargrab/storage"
)

var (
	flagSeed  uint64
	flagDebug bool
	flagWatch bool
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a level",
	Long: `Start playing. The session ends when a bomb hits the player; the
score is saved and the best score for the level is shown.

Examples:
  stargrab play
  stargrab play --level ledges
  stargrab play --seed 42 --debug
  stargrab play --watch`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	addPlayFlags(playCmd)
}

func addPlayFlags(cmd *cobra.Command) {
	cmd.Flags().Uint64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	cmd.Flags().BoolVar(&flagDebug, "debug", false, "Draw physics shapes and player state")
	cmd.Flags().BoolVar(&flagWatch, "watch", false, "Reload prefabs and scripts from ./prefabs when they change")
}

func runPlay(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger := newLogger(cfg.LogLevel)

	lvl, err := levels.LoadLevelFromFS(cfg.Level)
	if err != nil {
		return fmt.Errorf("unknown level %q (run 'stargrab levels'): %w", cfg.Level, err)
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	logger.Info("starting", "level", lvl.Name, "seed", seed)

	var recorder scene.ScoreRecorder
	if dbPath, err := config.ExpandPath(cfg.DBPath); err != nil {
		logger.Warn("could not resolve scores database path", "error", err)
	} else if store, err := storage.Open(dbPath); err != nil {
		logger.Warn("could not open scores database", "path", dbPath, "error", err)
	} else {
		defer store.Close()
		recorder = store
	}

	var watcher *prefabs.Watcher
	if cfg.Watch {
		watcher, err = prefabs.NewWatcher(prefabs.Dir, filepath.Join(prefabs.Dir, "scripts"))
		if err != nil {
			logger.Warn("prefab watch disabled", "dir", prefabs.Dir, "error", err)
			watcher = nil
		} else {
			defer watcher.Close()
			logger.Info("watching prefabs", "dir", prefabs.Dir)
		}
	}

	game, err := NewGame(GameOptions{
		Level:    lvl,
		Rand:     rng,
		Recorder: recorder,
		Watcher:  watcher,
		Debug:    cfg.Debug,
		Logger:   logger,
	})
	if err != nil {
		return err
	}

	ebiten.SetWindowSize(int(screenWidth*cfg.WindowScale), int(screenHeight*cfg.WindowScale))
	ebiten.SetWindowTitle("stargrab")

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}
