// Package sim provides the core discrete-time elevator-group dispatch
// simulation engine: the virtual clock, per-elevator motion/door state
// machine, request book, greedy multi-criteria scheduler, metrics
// aggregator, and request spawner.
//
// # Reading Guide
//
// Start with these files to understand the simulation kernel:
//   - clock.go: the virtual clock advanced by the tick driver
//   - elevator.go: per-car motion and door state machine
//   - requestbook.go: the pending set and served archive, arrival handling
//   - scheduler.go: the greedy multi-criteria assignment algorithm
//   - engine.go: the tick driver and command surface wrapping all of the above
//
// # Architecture
//
// The kernel is a single owned Engine value (clock + elevators + request
// book + RNG + config) driven by a fixed-step ticker. Command handlers
// (start/stop/reset/addManualRequest/...) and the tick body are serialized
// by the Engine's mutex so that a tick is atomic with respect to commands.
// The server package is a thin HTTP/WebSocket layer around the Engine's
// command surface; it holds no simulation state of its own.
//
// # Key Types
//
//   - Clock: sim-ms counter, speed-scalable
//   - Elevator: per-car motion/door/occupancy state
//   - Request: a passenger's queued→assigned→picked-up→dropped-off lifecycle
//   - RequestBook: the pending set and served archive
//   - Scheduler: the pluggable-by-name dispatch policy (only "greedy" exists)
//   - MetricsAggregator: cumulative and sliding-window statistics
//   - Spawner: the periodic and scenario-batch request generators
package sim
