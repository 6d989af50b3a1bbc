package sim

// BuildingConfig groups the building/fleet geometry that is immutable while
// the engine is running. Reconfiguration is only permitted when stopped
// (see Engine.Reconfig).
type BuildingConfig struct {
	NElevators   int   `yaml:"n_elevators"`   // number of elevators in the fleet (default 3)
	NFloors      int   `yaml:"n_floors"`      // floors, numbered 1..NFloors (default 12)
	TimePerFloor int64 `yaml:"time_per_floor"` // sim-ms to travel one floor (default 1000)
	DoorDwell    int64 `yaml:"door_dwell"`    // sim-ms a door stays open for boarding (default 2000)
	LobbyFloor   int   `yaml:"lobby_floor"`   // the lobby/ground floor (default 1)
	Capacity     int   `yaml:"capacity"`      // passenger capacity per elevator (default 6)
}

// ScoringConfig groups the tunable constants for the greedy scheduler's cost
// function (spec §4.5). Absolute values are tunable; their relative ordering
// (full ≫ same-floor ≫ escalated ≫ near ≫ direction ≫ targets ≫ fairness) is
// the invariant the defaults below preserve.
type ScoringConfig struct {
	SameFloorBoost       float64 `yaml:"same_floor_boost"`       // awarded when the car is already at the pickup floor
	NearbyBoost          float64 `yaml:"nearby_boost"`           // awarded when the car is one floor away
	DirectionBoost       float64 `yaml:"direction_boost"`        // awarded when the car's direction matches the request's
	EscalatedBonus       float64 `yaml:"escalated_bonus"`        // flat bonus once a request has escalated
	ETAWeight            float64 `yaml:"eta_weight"`             // penalty per sim-ms of estimated ETA
	TargetPenalty        float64 `yaml:"target_penalty"`         // penalty per scheduled stop already on the route
	OccupancyPenaltyNear float64 `yaml:"occupancy_penalty_near"` // penalty once load crosses the "near full" threshold
	OccupancyPenaltyFull float64 `yaml:"occupancy_penalty_full"` // penalty once load reaches capacity
	NearFullFraction     float64 `yaml:"near_full_fraction"`     // fraction of capacity that triggers OccupancyPenaltyNear
	FairnessWeight       float64 `yaml:"fairness_weight"`        // penalty per sim-ms of cumulative utilTime (fairness)
}

// DefaultScoringConfig returns the design-default constants from spec §4.5.
func DefaultScoringConfig() ScoringConfig {
	return ScoringConfig{
		SameFloorBoost:       10000,
		NearbyBoost:          75,
		DirectionBoost:       20,
		EscalatedBonus:       5000,
		ETAWeight:            0.0015,
		TargetPenalty:        12,
		OccupancyPenaltyNear: 200,
		OccupancyPenaltyFull: 20000,
		NearFullFraction:     0.8,
		FairnessWeight:       0.00008,
	}
}

// PriorityConfig groups the tunable constants for priority refresh and
// escalation (spec §4.4 step 1).
type PriorityConfig struct {
	BasePriority      float64 `yaml:"base_priority"`       // default base priority assigned to new requests
	WaitWeight        float64 `yaml:"wait_weight"`         // priority added per sim-ms waited
	EscalationWaitMs  int64   `yaml:"escalation_wait_ms"`  // sim-ms waited before a request escalates, once
	EscalationBonus   float64 `yaml:"escalation_bonus"`    // flat priority bonus applied on escalation
	MorningRushStart  int64   `yaml:"morning_rush_start"`  // minutes-of-day the morning rush window opens (540 = 09:00)
	MorningRushEnd    int64   `yaml:"morning_rush_end"`    // minutes-of-day the morning rush window closes (570 = 09:30)
	MorningRushFactor float64 `yaml:"morning_rush_factor"` // multiplier applied to lobby-origin priority during the rush window
}

// DefaultPriorityConfig returns the design-default constants from spec §4.4.
func DefaultPriorityConfig() PriorityConfig {
	return PriorityConfig{
		BasePriority:      1,
		WaitWeight:        0.001,
		EscalationWaitMs:  30_000,
		EscalationBonus:   2000,
		MorningRushStart:  9 * 60,
		MorningRushEnd:    9*60 + 30,
		MorningRushFactor: 1.5,
	}
}

// SpawnerConfig groups the periodic-spawner and sliding-window tunables.
type SpawnerConfig struct {
	RequestFreqPerMinute float64 `yaml:"request_freq_per_minute"` // 0 disables the periodic spawner
	WindowMs             int64   `yaml:"window_ms"`               // sliding metrics window width (default 60_000)
}

// DefaultSpawnerConfig returns the design defaults from spec §4.6–4.7.
func DefaultSpawnerConfig() SpawnerConfig {
	return SpawnerConfig{RequestFreqPerMinute: 0, WindowMs: 60_000}
}

// TickConfig groups the real-time tick driver parameters (spec §4.6, §6).
type TickConfig struct {
	TickRateMs int64 `yaml:"tick_rate_ms"` // real-time ms between ticks; 200 in development, 1000 in production
}

// DefaultTickConfig returns the development-mode tick rate.
func DefaultTickConfig() TickConfig {
	return TickConfig{TickRateMs: 200}
}

// Config is the single configuration block for a running Engine, grouping
// geometry, scoring weights, priority/escalation tunables, spawner
// parameters, and the tick rate. All fields except
// Spawner.RequestFreqPerMinute (changed at any time by
// Engine.SetRequestFrequency) are immutable while the engine is running
// (spec §3); Engine.Reconfig is rejected unless stopped.
type Config struct {
	Building  BuildingConfig `yaml:"building"`
	Scoring   ScoringConfig  `yaml:"scoring"`
	Priority  PriorityConfig `yaml:"priority"`
	Spawner   SpawnerConfig  `yaml:"spawner"`
	Tick      TickConfig     `yaml:"tick"`
	Seed      int64          `yaml:"seed"`
	Scheduler string         `yaml:"scheduler"` // policy name for NewScheduler; "" is the greedy default
	Validator string         `yaml:"validator"` // policy name for NewRequestValidator; "" is the strict default
}

// DefaultConfig returns the spec's default configuration (spec §3).
func DefaultConfig() Config {
	return Config{
		Building: BuildingConfig{
			NElevators:   3,
			NFloors:      12,
			TimePerFloor: 1000,
			DoorDwell:    2000,
			LobbyFloor:   1,
			Capacity:     6,
		},
		Scoring:  DefaultScoringConfig(),
		Priority: DefaultPriorityConfig(),
		Spawner:  DefaultSpawnerConfig(),
		Tick:     DefaultTickConfig(),
		Seed:     42,
	}
}
