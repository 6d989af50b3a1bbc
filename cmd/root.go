package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	sim "github.com/elevator-sim/elevator-sim/sim"
)

var (
	configPath string // optional YAML engine config file
	logLevel   string // log verbosity level

	nElevators   int
	nFloors      int
	timePerFloor int64
	doorDwell    int64
	lobbyFloor   int
	capacity     int
	seed         int64
	requestFreq  float64
	tickRateMs   int64
	horizonMs    int64

	port string
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "elevator-sim",
	Short: "Discrete-time elevator-group dispatch simulator",
}

// loadConfig implements the two-tier precedence described in SPEC_FULL.md
// §6: an optional YAML file overlaid with DefaultConfig(), then flags
// overlaid on top of whatever was explicitly set on the command line.
func loadConfig(cmd *cobra.Command) sim.Config {
	cfg := sim.DefaultConfig()

	if configPath != "" {
		cf, err := sim.LoadConfigFile(configPath)
		if err != nil {
			logrus.Fatalf("loading engine config: %v", err)
		}
		if err := cf.Validate(); err != nil {
			logrus.Fatalf("invalid engine config: %v", err)
		}
		cfg = cf.Merge(cfg)
	}

	if cmd.Flags().Changed("n-elevators") {
		cfg.Building.NElevators = nElevators
	}
	if cmd.Flags().Changed("n-floors") {
		cfg.Building.NFloors = nFloors
	}
	if cmd.Flags().Changed("time-per-floor") {
		cfg.Building.TimePerFloor = timePerFloor
	}
	if cmd.Flags().Changed("door-dwell") {
		cfg.Building.DoorDwell = doorDwell
	}
	if cmd.Flags().Changed("lobby-floor") {
		cfg.Building.LobbyFloor = lobbyFloor
	}
	if cmd.Flags().Changed("capacity") {
		cfg.Building.Capacity = capacity
	}
	if cmd.Flags().Changed("seed") {
		cfg.Seed = seed
	}
	if cmd.Flags().Changed("request-freq") {
		cfg.Spawner.RequestFreqPerMinute = requestFreq
	}
	if cmd.Flags().Changed("tick-rate") {
		cfg.Tick.TickRateMs = tickRateMs
	}

	return cfg
}

func addEngineFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&configPath, "config", "", "path to a YAML engine config file")
	cmd.Flags().IntVar(&nElevators, "n-elevators", 3, "number of elevators in the fleet")
	cmd.Flags().IntVar(&nFloors, "n-floors", 12, "number of floors, numbered 1..n")
	cmd.Flags().Int64Var(&timePerFloor, "time-per-floor", 1000, "sim-ms to travel one floor")
	cmd.Flags().Int64Var(&doorDwell, "door-dwell", 2000, "sim-ms a door stays open for boarding")
	cmd.Flags().IntVar(&lobbyFloor, "lobby-floor", 1, "the lobby/ground floor")
	cmd.Flags().IntVar(&capacity, "capacity", 6, "passenger capacity per elevator")
	cmd.Flags().Int64Var(&seed, "seed", 42, "seed for the partitioned RNG")
	cmd.Flags().Float64Var(&requestFreq, "request-freq", 0, "periodic spawner requests per minute (0 disables)")
	cmd.Flags().Int64Var(&tickRateMs, "tick-rate", 200, "real-time ms between ticks (1000 in production mode)")
}

// runCmd drives the engine to a fixed horizon in one batch and prints a
// final metrics report.
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the simulation to a fixed horizon and print final metrics",
	Run: func(cmd *cobra.Command, args []string) {
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)

		cfg := loadConfig(cmd)
		engine := sim.NewEngine(cfg)

		ticks := horizonMs / cfg.Tick.TickRateMs
		logrus.Infof("starting simulation: %d elevators, %d floors, horizon=%dms, ticks=%d",
			cfg.Building.NElevators, cfg.Building.NFloors, horizonMs, ticks)

		startTime := time.Now()
		for i := int64(0); i < ticks; i++ {
			engine.TickOnce()
		}

		metrics := engine.MetricsSnapshot()
		fmt.Printf("Simulation complete in %s (sim horizon %dms, %d ticks)\n", time.Since(startTime), horizonMs, ticks)
		fmt.Printf("  served=%d pending=%d\n", metrics.ServedCount, metrics.PendingCount)
		fmt.Printf("  avgWait=%.1fms p95Wait=%.1fms maxWait=%dms\n", metrics.AvgWait, metrics.P95Wait, metrics.MaxWait)
		fmt.Printf("  avgTravel=%.1fms p95Travel=%.1fms maxTravel=%dms\n", metrics.AvgTravel, metrics.P95Travel, metrics.MaxTravel)
		fmt.Printf("  utilization=%.3f throughputPerMin=%.2f\n", metrics.Utilization, metrics.ThroughputPerMin)
	},
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log", "info", "log level (trace, debug, info, warn, error, fatal, panic)")

	addEngineFlags(runCmd)
	runCmd.Flags().Int64Var(&horizonMs, "horizon", 600_000, "simulation horizon in sim-ms")
	rootCmd.AddCommand(runCmd)

	addEngineFlags(serveCmd)
	serveCmd.Flags().StringVar(&port, "port", "8080", "bind port for the HTTP/WebSocket surface")
	rootCmd.AddCommand(serveCmd)
}
