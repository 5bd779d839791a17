package main

import (
	"fmt"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/mmkrusniak/yale22-uav-diversity/internal/area"
	"github.com/mmkrusniak/yale22-uav-diversity/internal/config"
	"github.com/mmkrusniak/yale22-uav-diversity/internal/drone"
	"github.com/mmkrusniak/yale22-uav-diversity/internal/export"
	"github.com/mmkrusniak/yale22-uav-diversity/internal/geom"
	"github.com/mmkrusniak/yale22-uav-diversity/internal/phys"
	"github.com/mmkrusniak/yale22-uav-diversity/internal/planner"
	"github.com/mmkrusniak/yale22-uav-diversity/internal/watch"
)

var (
	drones     int
	seed       int64
	dt         float64
	simSpeed   int
	drag       float64
	kp         float64
	size       int
	vertices   int
	jaggedness float64
	objects    int
	dist       string
	areaFile   string
	threshold  float64
	plot       bool
	configFile string
	preset     string
	outDir     string
	addr       string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "uavsim",
		Short: "multi-drone area coverage simulator",
	}

	runCmd := &cobra.Command{
		Use:   "run [strategy]",
		Short: "run one traversal",
		Args:  cobra.ExactArgs(1),
		RunE:  runTraversal,
	}
	addRunFlags(runCmd)
	runCmd.Flags().BoolVar(&plot, "plot", false, "plot energy over time")

	compareCmd := &cobra.Command{
		Use:   "compare [strategy1] [strategy2] ...",
		Short: "compare strategies on the same area",
		Args:  cobra.MinimumNArgs(2),
		RunE:  compareStrategies,
	}
	addRunFlags(compareCmd)

	exportCmd := &cobra.Command{
		Use:   "export [strategy]",
		Short: "run one traversal and write kml/csv/json/svg artifacts",
		Args:  cobra.ExactArgs(1),
		RunE:  exportTraversal,
	}
	addRunFlags(exportCmd)
	exportCmd.Flags().StringVar(&outDir, "out", ".", "output directory")

	serveCmd := &cobra.Command{
		Use:   "serve [strategy]",
		Short: "run one traversal with live websocket progress",
		Args:  cobra.ExactArgs(1),
		RunE:  serveTraversal,
	}
	addRunFlags(serveCmd)
	serveCmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")

	strategiesCmd := &cobra.Command{
		Use:   "strategies",
		Short: "list route strategies",
		Run: func(cmd *cobra.Command, args []string) {
			for _, name := range planner.Strategies() {
				fmt.Println(name)
			}
		},
	}

	presetsCmd := &cobra.Command{
		Use:   "presets [strategy]",
		Short: "list presets for a strategy",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			presets := config.ListPresets(args[0])
			if len(presets) == 0 {
				fmt.Printf("no presets for strategy: %s\n", args[0])
				return nil
			}
			for _, p := range presets {
				fmt.Println(p)
			}
			return nil
		},
	}

	rootCmd.AddCommand(runCmd, compareCmd, exportCmd, serveCmd, strategiesCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addRunFlags(cmd *cobra.Command) {
	cmd.Flags().IntVar(&drones, "drones", config.DefaultDrones, "team size")
	cmd.Flags().Int64Var(&seed, "seed", time.Now().UnixNano(), "random seed")
	cmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "physics timestep (sim seconds)")
	cmd.Flags().IntVar(&simSpeed, "speed", config.DefaultSimSpeed, "simulation speed factor")
	cmd.Flags().Float64Var(&drag, "drag", config.DefaultDrag, "drag coefficient")
	cmd.Flags().Float64Var(&kp, "kp", config.DefaultKP, "route controller gain")
	cmd.Flags().IntVar(&size, "size", config.DefaultAreaSize, "area width (meters)")
	cmd.Flags().IntVar(&vertices, "vertices", config.DefaultVertices, "area vertex count")
	cmd.Flags().Float64Var(&jaggedness, "jaggedness", config.DefaultJaggedness, "area jaggedness [0,1]")
	cmd.Flags().IntVar(&objects, "objects", config.DefaultObjects, "detectable object count")
	cmd.Flags().StringVar(&dist, "distribution", "pseudorandom", "object distribution")
	cmd.Flags().StringVar(&areaFile, "area", "", "boundary file (kml or geojson)")
	cmd.Flags().Float64Var(&threshold, "threshold", config.DefaultThreshold, "detection confidence threshold")
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
}

// resolveConfig folds preset, config file, and flags into one Config.
// Precedence follows the flags: an explicitly set flag wins over the
// file, which wins over the preset.
func resolveConfig(cmd *cobra.Command, strategy string) (*config.Config, error) {
	cfg := config.DefaultConfig()
	cfg.Strategy = strategy

	if preset != "" {
		p := config.GetPreset(strategy, preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets(strategy))
		}
		*cfg = *p
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		loaded.Strategy = strategy
		*cfg = *loaded
	}

	if cmd.Flags().Changed("drones") {
		cfg.Drones = drones
	}
	if cmd.Flags().Changed("dt") {
		cfg.Physics.Dt = dt
	}
	if cmd.Flags().Changed("speed") {
		cfg.Physics.SimSpeed = simSpeed
	}
	if cmd.Flags().Changed("drag") {
		cfg.Physics.Drag = drag
	}
	if cmd.Flags().Changed("kp") {
		cfg.Physics.Kp = kp
	}
	if cmd.Flags().Changed("size") {
		cfg.Area.Size = size
	}
	if cmd.Flags().Changed("vertices") {
		cfg.Area.Vertices = vertices
	}
	if cmd.Flags().Changed("jaggedness") {
		cfg.Area.Jaggedness = jaggedness
	}
	if cmd.Flags().Changed("objects") {
		cfg.Area.Objects = objects
	}
	if cmd.Flags().Changed("distribution") {
		cfg.Area.Distribution = dist
	}
	if cmd.Flags().Changed("area") {
		cfg.Area.File = areaFile
	}
	if cmd.Flags().Changed("threshold") {
		cfg.Detection.Threshold = threshold
	}
	if cfg.Seed == 0 || cmd.Flags().Changed("seed") {
		cfg.Seed = seed
	}

	return cfg, cfg.Validate()
}

func buildArea(cfg *config.Config, rng *rand.Rand) (*area.Area, error) {
	opts := area.Options{Objects: cfg.Area.Objects, Rand: rng}

	var a *area.Area
	var err error
	switch {
	case cfg.Area.File == "":
		a = area.Random(cfg.Area.Vertices, float64(cfg.Area.Size), cfg.Area.Jaggedness, opts)
	case strings.HasSuffix(cfg.Area.File, ".kml"):
		a, err = area.FromKML(cfg.Area.File, opts)
	default:
		a, err = area.FromGeoJSON(cfg.Area.File, opts)
	}
	if err != nil {
		return nil, err
	}

	d, err := distributionFor(cfg.Area.Distribution, rng, a)
	if err != nil {
		return nil, err
	}
	if d != nil {
		a.SetDistribution(d)
	}
	return a, nil
}

func distributionFor(name string, rng *rand.Rand, a *area.Area) (*area.SpatialDistribution, error) {
	hull := a.Hull()
	switch name {
	case "", "pseudorandom":
		return nil, nil // the area default
	case "gaussian":
		return area.GaussianCentered(rng, hull, hull.CartesianWidth()/6), nil
	case "multimodal":
		modes := []geom.Point{
			hull.RandomPoint(rng), hull.RandomPoint(rng), hull.RandomPoint(rng),
		}
		spread := hull.CartesianWidth() / 8
		return area.Multimodal(rng, hull, modes, []float64{spread, spread, spread}), nil
	case "edge":
		return area.EdgeDistance(rng, hull), nil
	case "periodic":
		return area.Periodic(rng, hull, hull.CartesianWidth()/5), nil
	default:
		return nil, fmt.Errorf("unknown distribution: %s", name)
	}
}

// buildTeam constructs a fresh fleet for one run; strategies hold plan
// state, so teams are never reused across runs.
func buildTeam(cfg *config.Config, a *area.Area) (*drone.Team, error) {
	params := drone.Params{
		Drag:  cfg.Physics.Drag,
		Gains: phys.Gains{KP: cfg.Physics.Kp, KI: cfg.Physics.Ki, KD: cfg.Physics.Kd},
	}
	fleet := make([]*drone.Drone, cfg.Drones)
	for i := range fleet {
		s, err := planner.New(cfg.Strategy)
		if err != nil {
			return nil, err
		}
		if ts, ok := s.(interface{ SetThreshold(float64) }); ok {
			ts.SetThreshold(cfg.Detection.Threshold)
		}
		fleet[i] = drone.New(a, i, s, params)
	}
	return drone.NewTeam(fleet...), nil
}

func runTraversal(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args[0])
	if err != nil {
		return err
	}

	rng := rand.New(rand.NewSource(cfg.Seed))
	a, err := buildArea(cfg, rng)
	if err != nil {
		return err
	}
	team, err := buildTeam(cfg, a)
	if err != nil {
		return err
	}

	fmt.Printf("traversing %s with %d drone(s), strategy %s, seed %d\n",
		a.Name(), cfg.Drones, cfg.Strategy, cfg.Seed)
	start := time.Now()

	var energy []float64
	team.Traverse(a, cfg.Physics.SimSpeed, cfg.Physics.Dt, func(fleet []*drone.Drone) {
		energy = append(energy, fleet[0].EnergyRemaining())
	})
	team.Wait()
	if err := team.Err(); err != nil {
		return err
	}

	fmt.Printf("completed in %v\n\n", time.Since(start).Round(time.Millisecond))
	printSummary(team)

	if plot && len(energy) > 1 {
		fmt.Println()
		fmt.Println(asciigraph.Plot(downsample(energy, 120),
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption("drone 0 energy remaining (J)"),
		))
	}
	return nil
}

func compareStrategies(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args[0])
	if err != nil {
		return err
	}

	// Same seed for every strategy so the area and objects match.
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "STRATEGY\tTIME\tENERGY\tCAPTURES\tSCORE\tPRECISION\tRECALL\tF1")

	for _, name := range args {
		cfg.Strategy = name
		rng := rand.New(rand.NewSource(cfg.Seed))
		a, err := buildArea(cfg, rng)
		if err != nil {
			return err
		}
		team, err := buildTeam(cfg, a)
		if err != nil {
			return err
		}

		team.Traverse(a, cfg.Physics.SimSpeed, cfg.Physics.Dt, nil)
		team.Wait()
		if err := team.Err(); err != nil {
			return err
		}

		var flightTime, consumed, score float64
		captures := 0
		for _, d := range team.Drones() {
			if d.Time() > flightTime {
				flightTime = d.Time()
			}
			consumed += d.EnergyBudget() - d.EnergyRemaining()
			score += d.PathScore()
			captures += len(d.CaptureHistory())
		}
		lead := team.Drone(0)
		fmt.Fprintf(w, "%s\t%.1fs\t%.0fJ\t%d\t%.0f\t%.2f\t%.2f\t%.2f\n",
			name, flightTime, consumed, captures, score,
			lead.Precision(), lead.Recall(), lead.F1())
	}

	return w.Flush()
}

func exportTraversal(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args[0])
	if err != nil {
		return err
	}

	rng := rand.New(rand.NewSource(cfg.Seed))
	a, err := buildArea(cfg, rng)
	if err != nil {
		return err
	}
	team, err := buildTeam(cfg, a)
	if err != nil {
		return err
	}

	team.Traverse(a, cfg.Physics.SimSpeed, cfg.Physics.Dt, nil)
	team.Wait()
	if err := team.Err(); err != nil {
		return err
	}
	printSummary(team)

	if err := os.MkdirAll(outDir, 0755); err != nil {
		return err
	}
	for _, d := range team.Drones() {
		name := fmt.Sprintf("drone%d.kml", d.ID())
		if err := export.WriteKML(filepath.Join(outDir, name), fmt.Sprintf("Drone %d path", d.ID()), d.Trace()); err != nil {
			return err
		}
	}
	if err := export.WriteTraceCSV(filepath.Join(outDir, "traces.csv"), team.Drones(), cfg.Physics.Dt); err != nil {
		return err
	}
	if err := export.WriteSummary(filepath.Join(outDir, "run.json"), export.Summarize(team)); err != nil {
		return err
	}
	svg := export.TraceSVG(a, team.Drones(), 800, 600)
	if err := os.WriteFile(filepath.Join(outDir, "run.svg"), []byte(svg), 0644); err != nil {
		return err
	}

	fmt.Printf("\nwrote kml, csv, json, svg to %s\n", outDir)
	return nil
}

func serveTraversal(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args[0])
	if err != nil {
		return err
	}

	rng := rand.New(rand.NewSource(cfg.Seed))
	a, err := buildArea(cfg, rng)
	if err != nil {
		return err
	}
	team, err := buildTeam(cfg, a)
	if err != nil {
		return err
	}

	hub := watch.NewHub(team)
	go hub.Run()
	defer hub.Close()

	mux := http.NewServeMux()
	mux.Handle("/watch", hub)
	srv := &http.Server{Addr: addr, Handler: mux}
	go func() {
		if err := srv.ListenAndServe(); err != http.ErrServerClosed {
			fmt.Fprintf(os.Stderr, "serve: %v\n", err)
		}
	}()
	defer srv.Close()

	fmt.Printf("streaming progress on ws://%s/watch\n", addr)
	team.Traverse(a, cfg.Physics.SimSpeed, cfg.Physics.Dt, nil)
	team.Wait()
	if err := team.Err(); err != nil {
		return err
	}
	printSummary(team)

	fmt.Println("traversal finished; ctrl-c to stop serving")
	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt)
	<-interrupt
	return nil
}

func printSummary(team *drone.Team) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "DRONE\tSTRATEGY\tTIME\tENERGY USED\tCAPTURES\tSCORE\tDONE")
	for _, d := range team.Drones() {
		fmt.Fprintf(w, "%d\t%v\t%.1fs\t%.0fJ\t%d\t%.0f\t%v\n",
			d.ID(), d.Strategy(), d.Time(),
			d.EnergyBudget()-d.EnergyRemaining(),
			len(d.CaptureHistory()), d.PathScore(), d.Done())
	}
	w.Flush()

	lead := team.Drone(0)
	fmt.Printf("\ndetections: %d  precision: %.2f  recall: %.2f  f1: %.2f\n",
		len(team.Detections()), lead.Precision(), lead.Recall(), lead.F1())
}

// downsample thins a series to at most n evenly spaced samples.
func downsample(data []float64, n int) []float64 {
	if len(data) <= n {
		return data
	}
	out := make([]float64, n)
	for i := range out {
		out[i] = data[i*len(data)/n]
	}
	return out
}
