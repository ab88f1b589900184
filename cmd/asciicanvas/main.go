package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/asciicanvas/internal/canvas"
	"github.com/san-kum/asciicanvas/internal/config"
	"github.com/san-kum/asciicanvas/internal/console"
	"github.com/san-kum/asciicanvas/internal/export"
	"github.com/san-kum/asciicanvas/internal/frame"
	"github.com/san-kum/asciicanvas/internal/scenes"
	"github.com/san-kum/asciicanvas/internal/store"
	"github.com/san-kum/asciicanvas/internal/tileset"
	"github.com/san-kum/asciicanvas/internal/tui"
)

var (
	dataDir string
	verbose bool

	configFile  string
	preset      string
	width       int
	height      int
	tilesetName string
	fps         float64
	timing      bool
	frames      int
	fit         bool

	screen  bool
	plain   bool
	quiet   bool
	frameAt int
	speed   float64

	format      string
	output      string
	scale       int
	exportFrame int
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "asciicanvas",
		Short: "vector drawing on a text terminal",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose {
				frame.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return tui.Run(scenes.NewRegistry(), config.DefaultConfig())
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".asciicanvas", "data directory")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log render loop events to stderr")

	onceCmd := &cobra.Command{
		Use:   "once [scene]",
		Short: "draw a single frame and print it",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runOnce,
	}
	gridFlags(onceCmd)
	onceCmd.Flags().IntVar(&frameAt, "frame", 0, "frame number to draw")

	drawCmd := &cobra.Command{
		Use:   "draw [scene]",
		Short: "animate a scene in the terminal",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runDraw,
	}
	gridFlags(drawCmd)
	drawCmd.Flags().BoolVar(&screen, "screen", false, "full-screen mode (q or esc to quit)")
	drawCmd.Flags().BoolVar(&plain, "plain", false, "append frames instead of repainting")

	tuiCmd := &cobra.Command{
		Use:   "tui",
		Short: "interactive scene viewer",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd, "")
			if err != nil {
				return err
			}
			return tui.Run(scenes.NewRegistry(), cfg)
		},
	}
	gridFlags(tuiCmd)

	tilesetsCmd := &cobra.Command{
		Use:   "tilesets",
		Short: "list tilesets",
		Args:  cobra.NoArgs,
		RunE:  listTilesets,
	}

	scenesCmd := &cobra.Command{
		Use:   "scenes",
		Short: "list scenes and their presets",
		Args:  cobra.NoArgs,
		RunE:  listScenes,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets [scene]",
		Short: "list available presets for a scene",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			presets := config.ListPresets(args[0])
			if len(presets) == 0 {
				fmt.Printf("no presets for scene: %s\n", args[0])
				return nil
			}
			fmt.Printf("presets for %s:\n", args[0])
			for _, p := range presets {
				fmt.Printf("  %s\n", p)
			}
			return nil
		},
	}

	recordCmd := &cobra.Command{
		Use:   "record [scene]",
		Short: "animate a scene and save every frame",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runRecord,
	}
	gridFlags(recordCmd)
	recordCmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "record without drawing to the terminal")

	runsCmd := &cobra.Command{
		Use:   "runs",
		Short: "list recorded runs",
		Args:  cobra.NoArgs,
		RunE:  listRuns,
	}

	replayCmd := &cobra.Command{
		Use:   "replay [run_id]",
		Short: "play back a recorded run",
		Args:  cobra.ExactArgs(1),
		RunE:  replayRun,
	}
	replayCmd.Flags().Float64Var(&speed, "speed", 1, "playback speed, 0 for as fast as possible")

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export a recorded run as gif, png, svg or json",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}
	exportCmd.Flags().StringVarP(&format, "format", "f", "gif", "gif, png, svg or json")
	exportCmd.Flags().StringVarP(&output, "out", "o", "", "output file (default <run_id>.<format>)")
	exportCmd.Flags().IntVar(&scale, "scale", 4, "pixels per sub-cell")
	exportCmd.Flags().IntVar(&exportFrame, "frame", -1, "frame for png and svg (default last)")

	benchCmd := &cobra.Command{
		Use:   "bench [scene]",
		Short: "measure paint time for every tileset",
		Args:  cobra.MaximumNArgs(1),
		RunE:  benchScene,
	}
	gridFlags(benchCmd)

	rootCmd.AddCommand(onceCmd, drawCmd, tuiCmd, tilesetsCmd, scenesCmd, presetsCmd, recordCmd, runsCmd, replayCmd, exportCmd, benchCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func gridFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	cmd.Flags().IntVar(&width, "width", config.DefaultWidth, "grid width in cells")
	cmd.Flags().IntVar(&height, "height", config.DefaultHeight, "grid height in cells")
	cmd.Flags().StringVar(&tilesetName, "tileset", config.DefaultTileset, "tileset: "+strings.Join(tileset.Names(), ", "))
	cmd.Flags().Float64Var(&fps, "fps", config.DefaultFramerate, "max frame rate, 0 for unthrottled")
	cmd.Flags().BoolVar(&timing, "timing", false, "print the average paint time")
	cmd.Flags().IntVar(&frames, "frames", 0, "stop after this many frames, 0 for no limit")
	cmd.Flags().BoolVar(&fit, "fit", false, "size the grid to the terminal")
}

// resolveConfig layers the scene's default preset, --preset, --config and
// explicit flags, in that order.
func resolveConfig(cmd *cobra.Command, scene string) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if scene != "" {
		if p := config.GetPreset(scene, "default"); p != nil {
			cfg = p
		}
		cfg.Scene = scene
	}

	if preset != "" {
		p := config.GetPreset(cfg.Scene, preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets(cfg.Scene))
		}
		cfg = p
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, err
		}
		if scene != "" {
			loaded.Scene = scene
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("width") {
		cfg.Width = width
	}
	if flags.Changed("height") {
		cfg.Height = height
	}
	if flags.Changed("tileset") {
		cfg.Tileset = tilesetName
	}
	if flags.Changed("fps") {
		cfg.MaxFramerate = fps
	}
	if flags.Changed("timing") {
		cfg.PrintTiming = timing
	}
	if flags.Changed("frames") {
		cfg.Frames = frames
	}

	if fit {
		reserve := 1
		if cfg.PrintTiming {
			reserve++
		}
		if w, h, ok := console.FitCells(os.Stdout, reserve); ok {
			cfg.Width, cfg.Height = w, h
		}
	}
	return cfg, nil
}

func sceneArg(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return ""
}

// setup resolves the configuration and scene for a drawing command.
func setup(cmd *cobra.Command, args []string) (*config.Config, canvas.GridConfig, scenes.Scene, error) {
	cfg, err := resolveConfig(cmd, sceneArg(args))
	if err != nil {
		return nil, canvas.GridConfig{}, scenes.Scene{}, err
	}
	grid, err := cfg.GridConfig()
	if err != nil {
		return nil, canvas.GridConfig{}, scenes.Scene{}, err
	}
	scene, err := scenes.NewRegistry().Get(cfg.Scene)
	if err != nil {
		return nil, canvas.GridConfig{}, scenes.Scene{}, err
	}
	return cfg, grid, scene, nil
}

func interruptible() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt)
}

// finished treats the user stopping the loop as success.
func finished(err error) error {
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func runOnce(cmd *cobra.Command, args []string) error {
	_, grid, scene, err := setup(cmd, args)
	if err != nil {
		return err
	}
	return frame.Once(grid, console.NewWriter(os.Stdout, false), func(c *canvas.Canvas) error {
		return scene.Draw(c, frameAt)
	})
}

func runDraw(cmd *cobra.Command, args []string) error {
	cfg, grid, scene, err := setup(cmd, args)
	if err != nil {
		return err
	}

	ctx, cancel := interruptible()
	defer cancel()

	var sink frame.Sink
	if screen {
		scr, err := console.OpenScreen()
		if err != nil {
			return err
		}
		defer scr.Close()
		scr.Watch(cancel)
		sink = scr
	} else {
		w := console.NewWriter(os.Stdout, !plain && console.IsTerminal(os.Stdout))
		defer w.Close()
		sink = w
	}

	return finished(frame.Draw(ctx, grid, sink, scene.Draw, frame.WithMaxFrames(cfg.Frames)))
}

// defaultRecordFrames bounds a recording when neither the config nor the
// flags do.
const defaultRecordFrames = 120

func runRecord(cmd *cobra.Command, args []string) error {
	cfg, grid, scene, err := setup(cmd, args)
	if err != nil {
		return err
	}
	if cfg.Frames <= 0 {
		cfg.Frames = defaultRecordFrames
	}

	var next frame.Sink
	if !quiet {
		w := console.NewWriter(os.Stdout, console.IsTerminal(os.Stdout))
		defer w.Close()
		next = w
	}

	st := store.New(dataDir)
	rec, err := st.Record(store.RunMetadata{
		Scene:        cfg.Scene,
		Tileset:      cfg.Tileset,
		Width:        cfg.Width,
		Height:       cfg.Height,
		MaxFramerate: cfg.MaxFramerate,
	}, next)
	if err != nil {
		return err
	}

	ctx, cancel := interruptible()
	defer cancel()

	drawErr := finished(frame.Draw(ctx, grid, rec, scene.Draw, frame.WithMaxFrames(cfg.Frames)))
	if err := rec.Close(); err != nil {
		return err
	}
	if drawErr != nil {
		return drawErr
	}

	fmt.Fprintf(os.Stderr, "saved: %s\n", rec.ID())
	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := store.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSCENE\tTIME\tGRID\tTILESET\tFRAMES\tFPS")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%dx%d\t%s\t%d\t%.1f\n",
			run.ID,
			run.Scene,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Width, run.Height,
			run.Tileset,
			run.Frames,
			run.Stats["fps"],
		)
	}

	return w.Flush()
}

func replayRun(cmd *cobra.Command, args []string) error {
	runID := args[0]
	st := store.New(dataDir)

	recorded, err := st.LoadFrames(runID)
	if err != nil {
		return err
	}
	times, err := st.LoadTimings(runID)
	if err != nil {
		return err
	}

	ctx, cancel := interruptible()
	defer cancel()

	w := console.NewWriter(os.Stdout, console.IsTerminal(os.Stdout))
	defer w.Close()

	return finished(store.Replay(ctx, recorded, store.Offsets(times), speed, w, frame.SystemClock{}))
}

func exportRun(cmd *cobra.Command, args []string) error {
	runID := args[0]
	if output == "" {
		output = runID + "." + format
	}

	f, err := os.Create(output)
	if err != nil {
		return err
	}
	err = writeExport(f, store.New(dataDir), runID)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(output)
		return err
	}

	fmt.Printf("exported to %s\n", output)
	return nil
}

func writeExport(f *os.File, st *store.Store, runID string) error {
	if format == "json" {
		return st.ExportJSON(f, runID)
	}

	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	ts, err := tileset.ByName(meta.Tileset)
	if err != nil {
		return err
	}
	recorded, err := st.LoadFrames(runID)
	if err != nil {
		return err
	}
	if len(recorded) == 0 {
		return export.ErrNoFrames
	}

	images, err := export.Bitmaps(recorded, ts)
	if err != nil {
		return err
	}

	pick := images[len(images)-1]
	if exportFrame >= 0 {
		if exportFrame >= len(images) {
			return fmt.Errorf("frame %d out of range (run has %d)", exportFrame, len(images))
		}
		pick = images[exportFrame]
	}

	switch format {
	case "gif":
		return export.GIF(f, images, scale, export.Delay(meta.Stats["fps"]))
	case "png":
		return export.PNG(f, pick, scale)
	case "svg":
		_, err := f.WriteString(export.SVG(pick, float64(scale), ts.SubdivY > ts.SubdivX))
		return err
	}
	return fmt.Errorf("unknown format: %s", format)
}

func listTilesets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tSUBDIV\tPATTERNS\tGLYPHS")

	for _, name := range tileset.Names() {
		ts, _ := tileset.ByName(name)
		sample := string(ts.Glyphs)
		if ts.Patterns() > 16 {
			sample = string(ts.Glyphs[:16]) + "..."
		}
		fmt.Fprintf(w, "%s\t%dx%d\t%d\t%s\n", ts.Name, ts.SubdivX, ts.SubdivY, ts.Patterns(), sample)
	}
	return w.Flush()
}

func listScenes(cmd *cobra.Command, args []string) error {
	reg := scenes.NewRegistry()

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SCENE\tPRESETS\tDESCRIPTION")

	for _, name := range reg.List() {
		s, _ := reg.Get(name)
		fmt.Fprintf(w, "%s\t%s\t%s\n", name, strings.Join(config.ListPresets(name), ","), s.Description)
	}
	return w.Flush()
}

// benchFrames is how many frames each tileset paints during a bench.
const benchFrames = 200

func benchScene(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, sceneArg(args))
	if err != nil {
		return err
	}
	scene, err := scenes.NewRegistry().Get(cfg.Scene)
	if err != nil {
		return err
	}

	fmt.Printf("benchmarking %s on %dx%d\n\n", scene.Name, cfg.Width, cfg.Height)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "TILESET\tFRAMES\tTIME\tAVG\tFRAMES/SEC")

	var plotted []float64
	for _, name := range tileset.Names() {
		run := cfg.Clone()
		run.Tileset = name
		grid, err := run.GridConfig()
		if err != nil {
			return err
		}
		c, err := canvas.New(grid)
		if err != nil {
			return err
		}

		samples := frame.NewTiming(benchFrames)
		painted := 0
		start := time.Now()
		for n := 0; n < benchFrames; n++ {
			t0 := time.Now()
			if _, err := frame.Step(c, scene.Draw, n); err != nil {
				if errors.Is(err, frame.ErrStop) {
					break
				}
				return err
			}
			samples.Add(time.Since(t0))
			painted++
		}
		elapsed := time.Since(start)
		if painted == 0 {
			continue
		}

		avg := elapsed / time.Duration(painted)
		fmt.Fprintf(w, "%s\t%d\t%v\t%v\t%.0f\n",
			name, painted, elapsed.Round(time.Microsecond), avg.Round(time.Microsecond),
			float64(painted)/elapsed.Seconds())

		if name == cfg.Tileset {
			plotted = samples.Values()
		}
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if len(plotted) > 1 {
		fmt.Println()
		fmt.Println(asciigraph.Plot(plotted,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(fmt.Sprintf("%s paint time per frame (ms)", cfg.Tileset)),
		))
	}
	return nil
}
