package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"scythe/internal/engine"
	"scythe/internal/engine/modules"
	"scythe/internal/render"
	"scythe/internal/settings"
)

var (
	players    int
	invaders   bool
	windGambit bool
	proximity  bool
	seed       uint64
	profile    string
	noColor    bool
	noSave     bool
	listCounts bool
)

func init() {
	pickCmd := &cobra.Command{
		Use:   "pick",
		Short: "Deal factions and player boards",
		Long: `Deal a faction and a player board to every player. A single player
also gets an automa faction.

Flags that are not given fall back to the choices remembered for the
profile from the last run.

Examples:
  scythe pick -p 4 --invaders
  scythe pick -p 1 --wind-gambit
  scythe pick --list`,
		RunE: runPick,
	}

	pickCmd.Flags().IntVarP(&players, "players", "p", 0, "Number of players (1 adds the automa)")
	pickCmd.Flags().BoolVar(&invaders, "invaders", false, "Include Invaders from Afar factions and boards")
	pickCmd.Flags().BoolVar(&windGambit, "wind-gambit", false, "Draw a resolution tile and airship abilities")
	pickCmd.Flags().BoolVar(&proximity, "proximity", false, "Show proximity scores")
	pickCmd.Flags().Uint64Var(&seed, "seed", 0, "Seed for a reproducible deal (0 = random)")
	pickCmd.Flags().StringVar(&profile, "profile", settings.DefaultProfile, "Settings profile")
	pickCmd.Flags().BoolVar(&noColor, "no-color", false, "Disable coloured output")
	pickCmd.Flags().BoolVar(&noSave, "no-save", false, "Do not remember these choices")
	pickCmd.Flags().BoolVar(&listCounts, "list", false, "List the selectable player counts and exit")

	rootCmd.AddCommand(pickCmd)
}

func runPick(cmd *cobra.Command, args []string) error {
	catalog, err := engine.DefaultCatalog()
	if err != nil {
		return err
	}
	store, err := settings.OpenSQLite(cfg.DBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	stored, err := store.Load(cmd.Context(), profile)
	if err != nil {
		return err
	}
	opts := stored.Options(catalog, engine.DefaultOptions())
	flags := cmd.Flags()
	if flags.Changed("players") {
		opts.PlayerCount = players
	}
	if flags.Changed("invaders") {
		opts.IncludeInvaders = invaders
	}
	if flags.Changed("wind-gambit") {
		opts.IncludeWindGambit = windGambit
	}
	if flags.Changed("proximity") {
		opts.WithProximity = proximity
	}

	out := render.New(cmd.OutOrStdout(), !noColor && isTerminal(cmd))
	if listCounts {
		return out.PlayerCounts(catalog.PlayerCountOptions(opts.IncludeInvaders))
	}

	var src engine.IntSource
	if seed != 0 {
		src = engine.NewSeededSource(seed)
	}
	setup, err := engine.NewGenerator(catalog, modules.Default(), src).Generate(opts)
	if err != nil {
		if errors.Is(err, engine.ErrConfiguration) {
			return fmt.Errorf("%w (choose 1-%d players)", err, len(catalog.PlayerCountOptions(opts.IncludeInvaders)))
		}
		return err
	}
	logger.Debug("setup generated", zap.Int("players", opts.PlayerCount), zap.Uint64("seed", seed))

	if err := out.Setup(setup); err != nil {
		return err
	}

	if noSave {
		return nil
	}
	if err := store.Save(cmd.Context(), profile, settings.FromOptions(opts)); err != nil {
		logger.Warn("save settings", zap.String("profile", profile), zap.Error(err))
	}
	return nil
}

func isTerminal(cmd *cobra.Command) bool {
	f, ok := cmd.OutOrStdout().(*os.File)
	if !ok {
		return false
	}
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}
