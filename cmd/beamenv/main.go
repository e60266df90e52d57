package main

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/beamenv/internal/analysis"
	"github.com/san-kum/beamenv/internal/beam"
	"github.com/san-kum/beamenv/internal/config"
	"github.com/san-kum/beamenv/internal/diagnostics"
	"github.com/san-kum/beamenv/internal/envelope"
	"github.com/san-kum/beamenv/internal/metrics"
	"github.com/san-kum/beamenv/internal/plotting"
	"github.com/san-kum/beamenv/internal/steppers"
	"github.com/san-kum/beamenv/internal/storage"
	"github.com/san-kum/beamenv/internal/viz"
)

var (
	dataDir        string
	current        float64
	beta           float64
	gamma          float64
	r0             float64
	rp0            float64
	emittance      float64
	steps          int
	finalZ         float64
	neutralization float64
	stepperName    string
	configFile     string
	preset         string
	simFile        string
	outFile        string
	sweepFrom      float64
	sweepTo        float64
	sweepPoints    int
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "beamenv",
		Short: "beam envelope expansion lab",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".beamenv", "data directory")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "integrate the drift envelope and store the run",
		RunE:  runEnvelope,
	}
	addBeamFlags(runCmd)
	runCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	runCmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	runCmd.Flags().StringVar(&simFile, "sim", "", "simulator rms dump to seed rp0 from")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a stored trajectory",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().StringVar(&outFile, "out", "", "write trajectory plot png")

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export trajectory to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run data to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	compareCmd := &cobra.Command{
		Use:   "compare [stepper1] [stepper2] ...",
		Short: "compare steppers on the same beam",
		Args:  cobra.MinimumNArgs(1),
		RunE:  compareSteppers,
	}
	addBeamFlags(compareCmd)
	compareCmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "sweep beam current and tabulate envelope growth",
		RunE:  sweepCurrent,
	}
	addBeamFlags(sweepCmd)
	sweepCmd.Flags().Float64Var(&sweepFrom, "from", 0.0, "first current (A)")
	sweepCmd.Flags().Float64Var(&sweepTo, "to", 0.014, "last current (A)")
	sweepCmd.Flags().IntVar(&sweepPoints, "points", 8, "number of currents")

	overlayCmd := &cobra.Command{
		Use:   "overlay [run_id]",
		Short: "compare a stored run against a simulator rms dump",
		Args:  cobra.ExactArgs(1),
		RunE:  overlayRun,
	}
	overlayCmd.Flags().StringVar(&simFile, "sim", "", "simulator rms dump (csv)")
	overlayCmd.Flags().StringVar(&outFile, "out", "", "write overlay plot png")
	overlayCmd.MarkFlagRequired("sim")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		RunE:  listPresets,
	}

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "watch the expansion live in the terminal",
		RunE:  runLive,
	}
	addBeamFlags(liveCmd)
	liveCmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")

	rootCmd.AddCommand(runCmd, listCmd, plotCmd, exportCSVCmd, exportJSONCmd,
		compareCmd, sweepCmd, overlayCmd, presetsCmd, liveCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addBeamFlags(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&current, "current", config.DefaultCurrent, "beam current (A)")
	cmd.Flags().Float64Var(&beta, "beta", config.DefaultBeta, "reference beta (v/c)")
	cmd.Flags().Float64Var(&gamma, "gamma", config.DefaultGamma, "reference gamma")
	cmd.Flags().Float64Var(&r0, "r0", config.DefaultR0, "initial radius (m)")
	cmd.Flags().Float64Var(&rp0, "rp0", config.DefaultRP0, "initial slope (rad)")
	cmd.Flags().Float64Var(&emittance, "emittance", beam.DefaultEmittance, "geometric emittance (m rad)")
	cmd.Flags().IntVar(&steps, "steps", beam.DefaultSteps, "integration steps")
	cmd.Flags().Float64Var(&finalZ, "zf", beam.DefaultFinalZ, "drift length (m)")
	cmd.Flags().Float64Var(&neutralization, "cn", 0, "charge-neutralization fraction")
	cmd.Flags().StringVar(&stepperName, "stepper", config.DefaultStepper, "stepper (euler, ralston, rk4)")
}

// resolveConfig layers flags over config file over preset over defaults.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		*cfg = *p
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	if cmd.Flags().Changed("current") {
		cfg.Current = current
	}
	if cmd.Flags().Changed("beta") {
		cfg.Beta = beta
	}
	if cmd.Flags().Changed("gamma") {
		cfg.Gamma = gamma
	}
	if cmd.Flags().Changed("r0") {
		cfg.R0 = r0
	}
	if cmd.Flags().Changed("rp0") {
		cfg.RP0 = rp0
	}
	if cmd.Flags().Changed("emittance") {
		cfg.Emittance = emittance
	}
	if cmd.Flags().Changed("steps") {
		cfg.Steps = steps
	}
	if cmd.Flags().Changed("zf") {
		cfg.FinalZ = finalZ
	}
	if cmd.Flags().Changed("cn") {
		cfg.Neutralization = neutralization
	}
	if cmd.Flags().Changed("stepper") {
		cfg.Stepper = stepperName
	}

	return cfg, nil
}

func runEnvelope(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	if simFile != "" {
		dump, err := diagnostics.Load(simFile)
		if err != nil {
			return err
		}
		seeded, err := dump.SeedSlope()
		if err != nil {
			return err
		}
		cfg.RP0 = seeded
		fmt.Printf("seeded rp0=%.6g rad from %s\n", seeded, simFile)
	}

	st, err := steppers.New(cfg.Stepper)
	if err != nil {
		return err
	}

	fmt.Printf("integrating %.1f mA beam over %.2f m drift...\n", cfg.Current*1e3, cfg.FinalZ)
	start := time.Now()

	traj, err := envelope.Expand(cfg.Params(), st)
	if err != nil {
		return err
	}

	elapsed := time.Since(start)
	vals := metrics.Apply(traj, metrics.Defaults()...)

	store, err := storage.Open(dataDir)
	if err != nil {
		return err
	}
	defer store.Close()

	runID, err := store.SaveRun(context.Background(), cfg.Stepper, cfg.Params().Normalized(), vals, traj)
	if err != nil {
		return err
	}

	zf, rf := traj.Final()
	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("samples: %d\n", traj.Len())
	fmt.Printf("final radius: %.4f mm at z=%.3f m\n", rf*1e3, zf)
	fmt.Println("\nmetrics:")
	for name, val := range vals {
		fmt.Printf("  %s: %.6f\n", name, val)
	}

	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	store, err := storage.Open(dataDir)
	if err != nil {
		return err
	}
	defer store.Close()

	runs, err := store.ListRuns(context.Background())
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTIME\tCURRENT\tR0\tRP0\tSTEPPER\tGROWTH")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%.1fmA\t%.2fmm\t%.2fmrad\t%s\t%.4f\n",
			run.ID,
			run.CreatedAt.Local().Format("2006-01-02 15:04:05"),
			run.Params.Current*1e3,
			run.Params.R0*1e3,
			run.Params.RP0*1e3,
			run.Stepper,
			run.Metrics["growth"],
		)
	}

	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	store, err := storage.Open(dataDir)
	if err != nil {
		return err
	}
	defer store.Close()

	ctx := context.Background()
	meta, err := store.LoadRun(ctx, runID)
	if err != nil {
		return err
	}
	traj, err := store.LoadTrajectory(ctx, runID)
	if err != nil {
		return err
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("current: %.1f mA, r0: %.2f mm, rp0: %.3f mrad\n", meta.Params.Current*1e3, meta.Params.R0*1e3, meta.Params.RP0*1e3)
	fmt.Printf("samples: %d\n\n", traj.Len())

	data := make([]float64, traj.Len())
	for i := range traj.R {
		data[i] = traj.R[i] * 1e3
	}

	graph := asciigraph.Plot(data,
		asciigraph.Height(12),
		asciigraph.Width(80),
		asciigraph.Caption("envelope radius (mm) vs z"),
	)
	fmt.Println(graph)

	if outFile != "" {
		title := fmt.Sprintf("envelope expansion (%.1f mA)", meta.Params.Current*1e3)
		if err := plotting.SaveTrajectoryPNG(outFile, title, traj); err != nil {
			return err
		}
		fmt.Printf("\nwrote %s\n", outFile)
	}

	return nil
}

func exportCSV(cmd *cobra.Command, args []string) error {
	store, err := storage.Open(dataDir)
	if err != nil {
		return err
	}
	defer store.Close()

	traj, err := store.LoadTrajectory(context.Background(), args[0])
	if err != nil {
		return err
	}

	w := csv.NewWriter(os.Stdout)
	defer w.Flush()

	if err := w.Write([]string{"z", "r"}); err != nil {
		return err
	}
	for i := range traj.Z {
		row := []string{
			strconv.FormatFloat(traj.Z[i], 'f', 6, 64),
			strconv.FormatFloat(traj.R[i], 'g', -1, 64),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return nil
}

type exportData struct {
	ID        string             `json:"id"`
	CreatedAt time.Time          `json:"created_at"`
	Stepper   string             `json:"stepper"`
	Params    beam.Params        `json:"params"`
	Metrics   map[string]float64 `json:"metrics"`
	Z         []float64          `json:"z"`
	R         []float64          `json:"r"`
}

func exportJSON(cmd *cobra.Command, args []string) error {
	store, err := storage.Open(dataDir)
	if err != nil {
		return err
	}
	defer store.Close()

	ctx := context.Background()
	meta, err := store.LoadRun(ctx, args[0])
	if err != nil {
		return err
	}
	traj, err := store.LoadTrajectory(ctx, args[0])
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(exportData{
		ID:        meta.ID,
		CreatedAt: meta.CreatedAt,
		Stepper:   meta.Stepper,
		Params:    meta.Params,
		Metrics:   meta.Metrics,
		Z:         traj.Z,
		R:         traj.R,
	})
}

func compareSteppers(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	p := cfg.Params()

	// RK4 at the same step size serves as the reference curve.
	ref, err := envelope.Expand(p, steppers.NewRK4())
	if err != nil {
		return err
	}
	_, refR := ref.Final()

	fmt.Printf("comparing steppers (%.1f mA, %d steps over %.2f m)\n\n", cfg.Current*1e3, p.Normalized().Steps, p.Normalized().FinalZ)
	fmt.Printf("%-10s  %-14s  %-14s  %-10s\n", "stepper", "final_r_mm", "dev_vs_rk4", "time_ms")
	fmt.Println(strings.Repeat("-", 54))

	for _, name := range args {
		st, err := steppers.New(name)
		if err != nil {
			fmt.Printf("%-10s  error: %v\n", name, err)
			continue
		}

		start := time.Now()
		traj, err := envelope.Expand(p, st)
		elapsed := time.Since(start)
		if err != nil {
			fmt.Printf("%-10s  error: %v\n", name, err)
			continue
		}

		_, rf := traj.Final()
		dev := rf - refR
		if dev < 0 {
			dev = -dev
		}
		fmt.Printf("%-10s  %14.8f  %14.3e  %10.3f\n", name, rf*1e3, dev, float64(elapsed.Microseconds())/1000)
	}

	return nil
}

func sweepCurrent(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	if sweepPoints < 2 {
		return fmt.Errorf("need at least 2 sweep points, got %d", sweepPoints)
	}
	if sweepTo < sweepFrom {
		return fmt.Errorf("sweep range inverted: %g > %g", sweepFrom, sweepTo)
	}

	st, err := steppers.New(cfg.Stepper)
	if err != nil {
		return err
	}

	fmt.Printf("current sweep, %s stepper\n\n", cfg.Stepper)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "CURRENT\tPERVEANCE\tFINAL_R\tGROWTH")

	for i := 0; i < sweepPoints; i++ {
		frac := float64(i) / float64(sweepPoints-1)
		p := cfg.Params()
		p.Current = sweepFrom + frac*(sweepTo-sweepFrom)

		k, err := envelope.Perveance(p.Current, p.Beta, p.Gamma)
		if err != nil {
			return err
		}

		traj, err := envelope.Expand(p, st)
		if err != nil {
			return fmt.Errorf("current %.3f mA: %w", p.Current*1e3, err)
		}

		_, rf := traj.Final()
		fmt.Fprintf(w, "%.2fmA\t%.3e\t%.4fmm\t%.4f\n", p.Current*1e3, k, rf*1e3, rf/p.R0)
	}

	return w.Flush()
}

func overlayRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	store, err := storage.Open(dataDir)
	if err != nil {
		return err
	}
	defer store.Close()

	ctx := context.Background()
	meta, err := store.LoadRun(ctx, runID)
	if err != nil {
		return err
	}
	traj, err := store.LoadTrajectory(ctx, runID)
	if err != nil {
		return err
	}

	dump, err := diagnostics.Load(simFile)
	if err != nil {
		return err
	}

	simZ := dump.Z
	simR := make([]float64, dump.Len())
	for i := range simR {
		simR[i] = dump.MeanRadius(i)
	}

	dev, err := analysis.Compare(traj, simZ, simR)
	if err != nil {
		return err
	}

	fmt.Printf("run: %s (%.1f mA)\n", meta.ID, meta.Params.Current*1e3)
	fmt.Printf("simulated samples: %d\n\n", dev.Samples)
	fmt.Printf("max deviation:   %.4f mm\n", dev.Max*1e3)
	fmt.Printf("rms deviation:   %.4f mm\n", dev.RMS*1e3)
	fmt.Printf("final rel error: %.3e\n", dev.FinalRel)

	if outFile != "" {
		title := fmt.Sprintf("analytic vs simulated envelope (%.1f mA)", meta.Params.Current*1e3)
		if err := plotting.SaveOverlayPNG(outFile, title, traj, simZ, simR); err != nil {
			return err
		}
		fmt.Printf("\nwrote %s\n", outFile)
	}

	return nil
}

func listPresets(cmd *cobra.Command, args []string) error {
	names := config.ListPresets()
	if len(names) == 0 {
		fmt.Println("no presets")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tCURRENT\tR0\tEMITTANCE\tZF")
	for _, name := range names {
		p := config.GetPreset(name)
		fmt.Fprintf(w, "%s\t%.1fmA\t%.1fmm\t%.2e\t%.1fm\n",
			name, p.Current*1e3, p.R0*1e3, p.Emittance, p.FinalZ)
	}
	return w.Flush()
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	st, err := steppers.New(cfg.Stepper)
	if err != nil {
		return err
	}

	m, err := viz.NewModel(cfg.Params(), st, cfg.Stepper)
	if err != nil {
		return err
	}

	p := tea.NewProgram(m)
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}
