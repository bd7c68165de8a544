package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/orbitforge/astrosim/pkg/analysis"
	"github.com/orbitforge/astrosim/pkg/astromath"
	"github.com/orbitforge/astrosim/pkg/body"
	"github.com/orbitforge/astrosim/pkg/culling"
	"github.com/orbitforge/astrosim/pkg/data"
	"github.com/orbitforge/astrosim/pkg/orbital"
	"github.com/orbitforge/astrosim/pkg/physics"
	"github.com/orbitforge/astrosim/pkg/timekeeping"
	"github.com/orbitforge/astrosim/pkg/utils"
)

const (
	appName = "astrosim"
	version = "1.0.0"
)

var (
	cfg     *utils.Config
	cfgFile string
	homeDir string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   appName,
	Short: "Solar system simulation and orbital analysis",
	Long: `Astrosim is a command-line tool for Keplerian orbit propagation,
N-body integration and orbital statistics of solar system bodies.

Positions are reported in kilometers and velocities in kilometers per
second, in the heliocentric ecliptic frame. Dates are Julian dates.`,
	Version: version,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "version" || cmd.Name() == "help" {
			return nil
		}
		loaded, err := utils.LoadConfigFrom(cfgFile)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
		if homeDir != "" {
			cfg.Data.DataDir = homeDir
		}
		return nil
	},
}

// loadSystem builds a solar system from the configured bodies file, a
// --bodies override, or the built-in catalog.
func loadSystem(bodiesFile string, calc *orbital.Calculator) (*body.SolarSystem, error) {
	if bodiesFile == "" && cfg != nil {
		bodiesFile = cfg.Data.BodiesFile
	}
	if bodiesFile == "" {
		return data.BuildDefaultSolarSystem(calc)
	}

	records, err := data.LoadBodies(bodiesFile)
	if err != nil {
		return nil, err
	}
	return data.BuildSolarSystem(records, calc)
}

// simulateCmd runs the Keplerian propagation loop and streams snapshots.
var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run a Keplerian simulation and record snapshots",
	RunE: func(cmd *cobra.Command, args []string) error {
		days, _ := cmd.Flags().GetFloat64("days")
		stepDays, _ := cmd.Flags().GetFloat64("step-days")
		startJD, _ := cmd.Flags().GetFloat64("start-jd")
		bodiesFile, _ := cmd.Flags().GetString("bodies")
		outputFile, _ := cmd.Flags().GetString("output")

		if days <= 0 || stepDays <= 0 {
			return fmt.Errorf("days and step-days must be > 0")
		}
		if startJD == 0 {
			startJD = cfg.Time.StartJulianDate
		}

		calc := orbital.NewCalculator()
		system, err := loadSystem(bodiesFile, calc)
		if err != nil {
			return err
		}

		var sink data.SnapshotSink = data.DiscardSink()
		if outputFile != "" {
			writer, err := data.NewJSONLSnapshotWriter(outputFile)
			if err != nil {
				return err
			}
			defer writer.Close()
			sink = writer
		}

		clock := timekeeping.NewManager(startJD)
		clock.AddTimeChangeCallback(func(jd float64) {
			if err := system.UpdateAllPositions(jd); err != nil {
				log.Printf("position update failed at JD %.2f: %v", jd, err)
			}
		})

		log.Printf("Simulating %d planets for %.1f days from JD %.2f (step %.3f days)",
			system.PlanetCount(), days, startJD, stepDays)
		start := time.Now()

		if err := system.UpdateAllPositions(startJD); err != nil {
			return err
		}
		if err := sink.WriteSnapshot(data.TakeSnapshot(system)); err != nil {
			return err
		}

		steps := int(days / stepDays)
		for i := 0; i < steps; i++ {
			clock.AdvanceByDays(stepDays)
			if err := sink.WriteSnapshot(data.TakeSnapshot(system)); err != nil {
				return err
			}
		}

		stats := calc.CacheStats()
		log.Printf("Simulation finished in %v (cache hit rate %.1f%%)",
			time.Since(start), stats.HitRate)
		fmt.Printf("Recorded %d snapshots ending at JD %.2f\n", steps+1, clock.JulianDate())
		return nil
	},
}

// propagateCmd prints the heliocentric state of catalog planets at a date.
var propagateCmd = &cobra.Command{
	Use:   "propagate [planet]",
	Short: "Print the position and velocity of a planet at a Julian date",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		jd, _ := cmd.Flags().GetFloat64("jd")
		if jd == 0 {
			jd = timekeeping.JulianDateFromTime(time.Now())
		}

		calc := orbital.NewCalculator()
		records := data.PlanetCatalog()
		if len(args) == 1 {
			record, err := data.PlanetRecord(args[0])
			if err != nil {
				return err
			}
			records = append(records[:0], record)
		}

		fmt.Printf("Heliocentric states at JD %.4f\n\n", jd)
		for _, rec := range records {
			el, err := orbital.ElementsFromRecord(rec.OrbitalElements)
			if err != nil {
				return err
			}
			pos, vel, err := calc.PositionVelocity(el, jd, 0)
			if err != nil {
				return err
			}
			fmt.Printf("%-8s  r = %14.4e km  (%.3f AU)  v = %7.3f km/s\n",
				rec.Name, pos.Magnitude(), pos.Magnitude()/orbital.AUToKm, vel.Magnitude())
		}
		return nil
	},
}

// nbodyCmd integrates the full system with the RK4 engine and reports
// energy conservation.
var nbodyCmd = &cobra.Command{
	Use:   "nbody",
	Short: "Run an N-body integration and report energy drift",
	RunE: func(cmd *cobra.Command, args []string) error {
		days, _ := cmd.Flags().GetFloat64("days")
		stepSeconds, _ := cmd.Flags().GetFloat64("step-seconds")
		bodiesFile, _ := cmd.Flags().GetString("bodies")
		method, _ := cmd.Flags().GetString("method")

		if days <= 0 {
			return fmt.Errorf("days must be > 0")
		}
		if stepSeconds == 0 {
			stepSeconds = cfg.Physics.StepSeconds
		}
		if method == "" {
			method = cfg.Physics.IntegrationMethod
		}

		calc := orbital.NewCalculator()
		system, err := loadSystem(bodiesFile, calc)
		if err != nil {
			return err
		}
		if err := system.UpdateAllPositions(system.CurrentDate()); err != nil {
			return err
		}

		engine := physics.NewEngine()
		if err := engine.SetIntegrationMethod(method); err != nil {
			return err
		}

		bodies := system.Bodies()
		initialEnergy := engine.SystemTotalEnergy(bodies)

		steps := int(days * 86400 / stepSeconds)
		log.Printf("Integrating %d bodies for %.1f days (%d steps of %.0f s, method %s)",
			len(bodies), days, steps, stepSeconds, method)
		start := time.Now()

		for i := 0; i < steps; i++ {
			if err := engine.IntegrateMotion(bodies, stepSeconds); err != nil {
				return err
			}
		}

		finalEnergy := engine.SystemTotalEnergy(bodies)
		drift := 0.0
		if initialEnergy != 0 {
			drift = (finalEnergy - initialEnergy) / initialEnergy
		}

		log.Printf("Integration finished in %v", time.Since(start))
		fmt.Printf("Total energy: %.6e J -> %.6e J (relative drift %.3e)\n",
			initialEnergy, finalEnergy, drift)
		return nil
	},
}

// analyzeCmd produces the statistical system report.
var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Compute orbit statistics and perihelion clustering",
	RunE: func(cmd *cobra.Command, args []string) error {
		bodiesFile, _ := cmd.Flags().GetString("bodies")
		outputFile, _ := cmd.Flags().GetString("output")
		jd, _ := cmd.Flags().GetFloat64("jd")

		calc := orbital.NewCalculator()
		system, err := loadSystem(bodiesFile, calc)
		if err != nil {
			return err
		}
		if jd == 0 {
			jd = system.CurrentDate()
		}
		if err := system.UpdateAllPositions(jd); err != nil {
			return err
		}

		report, err := analysis.NewAnalyzer().AnalyzeSystem(system)
		if err != nil {
			return err
		}

		raw, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return err
		}

		if outputFile != "" {
			if err := os.WriteFile(outputFile, raw, 0o644); err != nil {
				return err
			}
			fmt.Printf("Report written to %s\n", outputFile)
			return nil
		}
		fmt.Println(string(raw))
		return nil
	},
}

// infoCmd prints the built-in catalog and effective configuration.
var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show the built-in planet catalog and active configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Printf("%s v%s\n\n", appName, version)

		fmt.Println("Built-in catalog (J2000 elements):")
		fmt.Printf("%-8s %12s %10s %10s %12s\n", "Name", "a (AU)", "e", "i (deg)", "Period (d)")
		for _, rec := range data.PlanetCatalog() {
			el, err := orbital.ElementsFromRecord(rec.OrbitalElements)
			if err != nil {
				return err
			}
			fmt.Printf("%-8s %12.5f %10.5f %10.3f %12.1f\n",
				rec.Name, el.SemiMajorAxis, el.Eccentricity, el.Inclination, el.OrbitalPeriod())
		}

		fmt.Printf("\nTime scale presets: %v\n", timekeeping.TimeScalePresets())
		fmt.Printf("Integration method: %s (step %.0f s)\n",
			cfg.Physics.IntegrationMethod, cfg.Physics.StepSeconds)
		fmt.Printf("Culling: enabled=%v fov=%.0f near=%g far=%g\n",
			cfg.Culling.Enabled, cfg.Culling.FOVDegrees,
			cfg.Culling.NearDistance, cfg.Culling.FarDistance)

		if path, err := utils.GetConfigPath(); err == nil {
			fmt.Printf("Config file: %s\n", path)
		}
		return nil
	},
}

// versionCmd prints the application version.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("%s v%s\n", appName, version)
	},
}

// cullCmd tests which catalog planets a camera can see.
var cullCmd = &cobra.Command{
	Use:   "cull",
	Short: "Report which planets fall inside a camera frustum",
	RunE: func(cmd *cobra.Command, args []string) error {
		jd, _ := cmd.Flags().GetFloat64("jd")
		far, _ := cmd.Flags().GetFloat64("far")

		calc := orbital.NewCalculator()
		system, err := data.BuildDefaultSolarSystem(calc)
		if err != nil {
			return err
		}
		if jd == 0 {
			jd = system.CurrentDate()
		}
		if err := system.UpdateAllPositions(jd); err != nil {
			return err
		}

		if far == 0 {
			far = cfg.Culling.FarDistance
		}

		// Camera sits just behind the Sun on the -x axis and looks along
		// +x. Distances are AU so planet states are converted from km.
		culler := culling.NewFrustumCuller()
		err = culler.UpdateFrustum(culling.CameraParams{
			Position:     astromath.Vector3{X: -1},
			Target:       astromath.Vector3{X: 1},
			Up:           astromath.Vector3{Z: 1},
			FOVDegrees:   cfg.Culling.FOVDegrees,
			AspectRatio:  cfg.Culling.AspectRatio,
			NearDistance: cfg.Culling.NearDistance,
			FarDistance:  far,
		})
		if err != nil {
			return err
		}

		positions := make(map[string]astromath.Vector3, system.PlanetCount())
		for _, planet := range system.Planets() {
			culler.RegisterObject(planet.Name(), culling.BoundingSphere{
				Radius: planet.Radius() / orbital.AUToKm,
			})
			positions[planet.Name()] = planet.Position().Scale(1 / orbital.AUToKm)
		}

		visible := culler.CullObjects(positions)
		stats := culler.Stats()
		fmt.Printf("Visible at JD %.2f (far plane %.1f AU): %v\n", jd, far, visible)
		fmt.Printf("Tested %d, culled %d (%.0f%%)\n",
			stats.Tested, stats.Culled, stats.CullRate()*100)
		return nil
	},
}

func init() {
	simulateCmd.Flags().Float64("days", 365.25, "simulated duration in days")
	simulateCmd.Flags().Float64("step-days", 1, "snapshot interval in days")
	simulateCmd.Flags().Float64("start-jd", 0, "starting Julian date (default from config)")
	simulateCmd.Flags().String("bodies", "", "body catalog file (JSON or CSV)")
	simulateCmd.Flags().String("output", "", "JSONL snapshot output file")

	propagateCmd.Flags().Float64("jd", 0, "Julian date (default now)")

	nbodyCmd.Flags().Float64("days", 365.25, "integration duration in days")
	nbodyCmd.Flags().Float64("step-seconds", 0, "integration step in seconds (default from config)")
	nbodyCmd.Flags().String("bodies", "", "body catalog file (JSON or CSV)")
	nbodyCmd.Flags().String("method", "", "integration method (default from config)")

	analyzeCmd.Flags().String("bodies", "", "body catalog file (JSON or CSV)")
	analyzeCmd.Flags().String("output", "", "write the JSON report to a file")
	analyzeCmd.Flags().Float64("jd", 0, "Julian date to analyze at")

	cullCmd.Flags().Float64("jd", 0, "Julian date to place planets at")
	cullCmd.Flags().Float64("far", 0, "far plane distance in AU (default from config)")

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default ~/.astrosim/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&homeDir, "home", "", "data directory (overrides the configured data_dir)")

	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(propagateCmd)
	rootCmd.AddCommand(nbodyCmd)
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(infoCmd)
	rootCmd.AddCommand(cullCmd)
	rootCmd.AddCommand(versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
