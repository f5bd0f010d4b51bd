package main

import (
	"image/color"
	"image/png"
	"io"
	"math"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/borkshop/corridor/internal/bitmap"
	"github.com/borkshop/corridor/internal/config"
	"github.com/borkshop/corridor/internal/game"
	"github.com/borkshop/corridor/internal/minimap"
	"github.com/borkshop/corridor/internal/moremath"
)

var (
	cfg     = config.Default()
	cfgFile string

	flags struct {
		level     string
		fov       float64
		method    string
		tick      float64
		workers   int
		seed      int64
		watch     bool
		noEnemy   bool
		logLevel  string
		logFormat string
		logFile   string
	}

	snap struct {
		out    string
		mapOut string
		width  int
		height int
	}
)

var rootCmd = &cobra.Command{
	Use:   "corridor",
	Short: "Walk a maze in your terminal, chased by something that learns",
	Long: `corridor renders a first person view of a 2D level by casting a ray
per terminal column. Walk with WASD, turn with the arrows or a captured
mouse, and keep away from the hunter, whose tiny brain mutates as it plays.`,
	SilenceUsage:       true,
	PersistentPostRunE: finish,
	RunE:               runPlay,
}

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play interactively (the default)",
	RunE:  runPlay,
}

var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Render one frame from the level spawn to a PNG file",
	RunE:  runSnapshot,
}

var levelsCmd = &cobra.Command{
	Use:   "levels",
	Short: "List the built-in levels",
	RunE:  runLevels,
}

func init() {
	// Assigned here rather than in the literal to avoid an initialization
	// cycle, since prepare refers to rootCmd.
	rootCmd.PersistentPreRunE = prepare

	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&cfgFile, "config", "c", "", "YAML config file")
	pf.StringVarP(&flags.level, "level", "l", cfg.Level, "built-in level name or level file")
	pf.Float64Var(&flags.fov, "fov", cfg.Render.FOVDegrees, "field of view in degrees")
	pf.StringVar(&flags.method, "method", cfg.Render.Method, "ray casting method: march or exact")
	pf.Float64Var(&flags.tick, "tick", cfg.TickRate, "simulation rate in Hz")
	pf.IntVar(&flags.workers, "workers", cfg.Render.Workers, "ray casting workers, 0 for one per CPU")
	pf.Int64Var(&flags.seed, "seed", cfg.Seed, "enemy brain seed, 0 for the clock")
	pf.BoolVar(&flags.watch, "watch", cfg.Watch, "reload the level file when it changes")
	pf.BoolVar(&flags.noEnemy, "no-enemy", !cfg.Enemy.Enabled, "leave the hunter out")
	pf.StringVar(&flags.logLevel, "log-level", cfg.Log.Level, "log level")
	pf.StringVar(&flags.logFormat, "log-format", cfg.Log.Format, "log format: text or json")
	pf.StringVar(&flags.logFile, "log-file", cfg.Log.File, `log file, "-" for stderr`)

	sf := snapshotCmd.Flags()
	sf.StringVarP(&snap.out, "output", "o", "frame.png", "PNG file to write")
	sf.StringVar(&snap.mapOut, "minimap", "", "also write the minimap to this PNG file")
	sf.IntVar(&snap.width, "width", 160, "frame width in cells")
	sf.IntVar(&snap.height, "height", 50, "frame height in cells (two pixels each)")
	viewerFlags(sf)

	rootCmd.AddCommand(playCmd, snapshotCmd, levelsCmd)
}

// prepare loads the config file, applies any flags given explicitly, and
// sets up logging. Only play logs to a file by default, since it owns the
// terminal.
func prepare(cmd *cobra.Command, args []string) error {
	if cfgFile != "" {
		loaded, err := config.Load(cfgFile)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	applyFlags(cmd.Flags(), &cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	file := cfg.Log.File
	if cmd != rootCmd && cmd != playCmd && !cmd.Flags().Changed("log-file") {
		file = "-"
	}
	return setupLogging(file)
}

func applyFlags(fs *pflag.FlagSet, cfg *config.Config) {
	set := func(name string, apply func()) {
		if fs.Changed(name) {
			apply()
		}
	}
	set("level", func() { cfg.Level = flags.level })
	set("fov", func() { cfg.Render.FOVDegrees = flags.fov })
	set("method", func() { cfg.Render.Method = flags.method })
	set("tick", func() { cfg.TickRate = flags.tick })
	set("workers", func() { cfg.Render.Workers = flags.workers })
	set("seed", func() { cfg.Seed = flags.seed })
	set("watch", func() { cfg.Watch = flags.watch })
	set("no-enemy", func() { cfg.Enemy.Enabled = !flags.noEnemy })
	set("log-level", func() { cfg.Log.Level = flags.logLevel })
	set("log-format", func() { cfg.Log.Format = flags.logFormat })
	set("log-file", func() { cfg.Log.File = flags.logFile })
}

func finish(cmd *cobra.Command, args []string) error {
	if logCloser == nil {
		return nil
	}
	err := logCloser()
	logCloser = nil
	return err
}

func runSnapshot(cmd *cobra.Command, args []string) error {
	lvl, err := loadLevel(cfg.Level)
	if err != nil {
		return err
	}
	sess, err := newSession(cmd.Context(), cfg, lvl)
	if err != nil {
		return err
	}
	if err := placeViewer(cmd.Flags(), &sess.world.Player); err != nil {
		return err
	}

	sess.frame.Resize(snap.width, snap.height)
	if err := sess.renderFrame(); err != nil {
		return err
	}
	if err := writeFile(snap.out, sess.frame.EncodePNG); err != nil {
		return err
	}
	sess.log.WithField("file", snap.out).Info("wrote snapshot")

	if snap.mapOut != "" {
		mini := minimap.New(4*snap.width/10, lvl.Bounds)
		mini.Draw(sess.scene())
		img := bitmap.ToImage(mini.Bitmap(), color.White, color.Black)
		if err := writeFile(snap.mapOut, func(w io.Writer) error {
			return errors.Wrap(png.Encode(w, img), "encoding minimap")
		}); err != nil {
			return err
		}
	}
	return nil
}

// viewerFlags adds the flags that move the snapshot viewer off the spawn.
func viewerFlags(fs *pflag.FlagSet) {
	fs.Float64("x", 0, "viewer x, instead of the spawn's")
	fs.Float64("y", 0, "viewer y, instead of the spawn's")
	fs.Float64("angle", 0, "viewer heading in degrees, instead of the spawn's")
}

// placeViewer overrides each part of the viewer's placement whose flag was
// given, leaving the rest as spawned.
func placeViewer(fs *pflag.FlagSet, a *game.Actor) error {
	for _, f := range []struct {
		name string
		set  func(float64)
	}{
		{"x", func(v float64) { a.Pos.X = v }},
		{"y", func(v float64) { a.Pos.Y = v }},
		{"angle", func(v float64) { a.Angle = moremath.WrapAngle(v * math.Pi / 180) }},
	} {
		if !fs.Changed(f.name) {
			continue
		}
		v, err := fs.GetFloat64(f.name)
		if err != nil {
			return errors.Wrapf(err, "reading --%s", f.name)
		}
		f.set(v)
	}
	return nil
}

func writeFile(name string, write func(io.Writer) error) (rerr error) {
	f, err := os.Create(name)
	if err != nil {
		return errors.Wrap(err, "creating output")
	}
	defer func() {
		if cerr := f.Close(); rerr == nil {
			rerr = cerr
		}
	}()
	return write(f)
}
