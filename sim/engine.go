// Engine is the command surface and tick driver wrapping the simulation
// kernel (clock, fleet, request book, scheduler, metrics, spawner) behind a
// single mutex. A real-time fixed-step ticker advances the clock and steps
// every elevator, the spawner, and the scheduler in turn; logrus is used only
// for recovered stage panics and dropped push messages. All engine state is touched only
// while e.mu is held, whether from the tick goroutine or a command call.
package sim

import (
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// ManualRequestInput is the addManualRequest command's payload (spec §6).
type ManualRequestInput struct {
	Type          RequestType
	Origin        int
	Destination   int
	ElevatorID    string // required when Type == TypeInternal
	IsMorningRush bool
}

// AddRequestResult is addManualRequest's reply shape (spec §6 "{ok, message, request?}").
type AddRequestResult struct {
	OK      bool     `json:"ok"`
	Message string   `json:"message"`
	Request *Request `json:"request,omitempty"`
}

// ElevatorSnapshot is the defensive-copy view of an Elevator exposed by
// snapshot() (spec §5 "pure snapshot() ... defensive deep copy").
type ElevatorSnapshot struct {
	ID             string    `json:"id"`
	CurrentFloor   int       `json:"currentFloor"`
	Route          []int     `json:"route"`
	Direction      Direction `json:"direction"`
	Door           DoorState `json:"door"`
	PassengerCount int       `json:"passengerCount"`
	Capacity       int       `json:"capacity"`
}

// RequestSnapshot is the defensive-copy view of a pending Request.
type RequestSnapshot struct {
	ID          string      `json:"id"`
	Type        RequestType `json:"type"`
	Origin      int         `json:"origin"`
	HasOrigin   bool        `json:"hasOrigin"`
	Destination int         `json:"destination"`
	Priority    float64     `json:"priority"`
	Escalated   bool        `json:"escalated"`
	AssignedTo  string      `json:"assignedTo"`
	CreatedAt   int64       `json:"createdAt"`
}

// Snapshot is the command surface's snapshot() payload (spec §6).
type Snapshot struct {
	Time            int64              `json:"time"`
	Elevators       []ElevatorSnapshot `json:"elevators"`
	PendingRequests []RequestSnapshot  `json:"pendingRequests"`
	Running         bool               `json:"running"`
}

// PushMessage is a single frame on the subscriber push channel (spec §6).
type PushMessage struct {
	Type    string `json:"type"` // "snapshot" | "info" | "error"
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
}

// Engine owns the whole of the simulation's mutable state and serializes
// every access to it through mu (spec §5: "single logical thread of
// progression"; "a tick step is atomic w.r.t. commands").
type Engine struct {
	mu sync.Mutex

	cfg         Config
	initialized bool
	running     bool
	stopCh      chan struct{}
	wg          sync.WaitGroup

	clock     *Clock
	rng       *PartitionedRNG
	elevators []*Elevator
	book      *RequestBook
	scheduler Scheduler
	validator RequestValidator
	metrics   *MetricsAggregator
	spawner   *Spawner

	subMu       sync.Mutex
	subscribers map[chan PushMessage]bool
}

// NewEngine constructs an Engine initialized with cfg but not yet running.
func NewEngine(cfg Config) *Engine {
	e := &Engine{subscribers: make(map[chan PushMessage]bool)}
	e.mu.Lock()
	e.initLocked(cfg)
	e.mu.Unlock()
	return e
}

// initLocked (re)builds the entire simulation kernel from cfg. Callers must
// hold mu.
func (e *Engine) initLocked(cfg Config) {
	e.cfg = cfg
	e.clock = NewClock()
	e.rng = NewPartitionedRNG(NewSimulationKey(cfg.Seed))

	e.elevators = make([]*Elevator, cfg.Building.NElevators)
	for i := 0; i < cfg.Building.NElevators; i++ {
		id := fmt.Sprintf("elevator-%d", i+1)
		e.elevators[i] = NewElevator(id, cfg.Building.LobbyFloor, cfg.Building.Capacity, 0)
	}

	e.book = NewRequestBook()
	e.scheduler = NewScheduler(cfg.Scheduler)
	e.validator = NewRequestValidator(cfg.Validator)
	e.metrics = NewMetricsAggregator(cfg.Spawner.WindowMs)
	e.spawner = NewSpawner(e.rng.ForSubsystem(SubsystemSpawner))
	e.initialized = true
}

// Start begins ticking. Idempotent; auto-initializes on first start (spec §6).
func (e *Engine) Start() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.running {
		return nil
	}
	if !e.initialized {
		e.initLocked(e.cfg)
	}
	e.running = true
	e.stopCh = make(chan struct{})
	e.wg.Add(1)
	go e.runLoop(e.stopCh, time.Duration(e.cfg.Tick.TickRateMs)*time.Millisecond)
	return nil
}

func (e *Engine) runLoop(stop chan struct{}, tickRate time.Duration) {
	defer e.wg.Done()
	ticker := time.NewTicker(tickRate)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			e.tick()
		}
	}
}

// Stop halts the tick timer and spawner; idempotent. The in-flight tick, if
// any, completes before Stop returns (spec §5).
func (e *Engine) Stop() error {
	e.mu.Lock()
	if !e.running {
		e.mu.Unlock()
		return nil
	}
	e.running = false
	close(e.stopCh)
	e.mu.Unlock()
	e.wg.Wait()
	return nil
}

// Reset stops, reinitializes, and broadcasts a snapshot (spec §5, §6).
func (e *Engine) Reset() error {
	if err := e.Stop(); err != nil {
		return err
	}
	e.mu.Lock()
	e.initLocked(e.cfg)
	snap := e.snapshotLocked()
	e.mu.Unlock()
	e.broadcast(PushMessage{Type: "snapshot", Data: snap})
	return nil
}

// TickOnce runs a single tick synchronously, for batch-mode callers (the
// `run` CLI command) that want a fixed-step simulation driven to a horizon
// without the real-time ticker Start() spins up for interactive `serve` use.
func (e *Engine) TickOnce() {
	e.tick()
}

// SetSpeed updates the clock speed, effective next tick (spec §6).
func (e *Engine) SetSpeed(s float64) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.clock.SetSpeed(s)
}

// Reconfig re-initializes with a merged config. Rejected unless stopped
// (spec §6, §7 KindState).
func (e *Engine) Reconfig(cf *ConfigFile) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.running {
		return NewError(KindState, "reconfig rejected: engine is running")
	}
	if err := cf.Validate(); err != nil {
		return NewError(KindInvalidInput, "%v", err)
	}
	e.initLocked(cf.Merge(e.cfg))
	return nil
}

// AddManualRequest implements spec §6's addManualRequest command.
func (e *Engine) AddManualRequest(in ManualRequestInput) AddRequestResult {
	e.mu.Lock()
	defer e.mu.Unlock()
	now := e.clock.Now()

	switch in.Type {
	case TypeInternal:
		el := e.findElevator(in.ElevatorID)
		if el == nil {
			return AddRequestResult{OK: false, Message: NewError(KindNotFound, "elevator %q not found", in.ElevatorID).Error()}
		}
		if err := e.validator.ValidateInternal(e.cfg.Building, el, in.Destination); err != nil {
			return AddRequestResult{OK: false, Message: err.Error()}
		}
		req, err := e.book.AddInternal(el, now, in.Destination)
		if err != nil {
			return AddRequestResult{OK: false, Message: err.Error()}
		}
		return AddRequestResult{OK: true, Message: "accepted", Request: req}

	case TypeExternal, "":
		if err := e.validator.ValidateExternal(e.cfg.Building, in.Origin, in.Destination); err != nil {
			return AddRequestResult{OK: false, Message: err.Error()}
		}
		req := NewExternalRequest(now, in.Origin, in.Destination, in.IsMorningRush)
		e.book.Add(req)
		return AddRequestResult{OK: true, Message: "accepted", Request: req}

	default:
		return AddRequestResult{OK: false, Message: NewError(KindInvalidInput, "unknown request type %q", in.Type).Error()}
	}
}

// SpawnScenario implements spec §6/§4.7's one-shot batch insertion.
func (e *Engine) SpawnScenario(name string, count int) ([]*Request, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	now := e.clock.Now()
	reqs, err := e.spawner.Scenario(name, count, now, e.cfg.Building.NFloors, e.cfg.Building.LobbyFloor)
	if err != nil {
		return nil, err
	}
	for _, r := range reqs {
		e.book.Add(r)
	}
	return reqs, nil
}

// SetRequestFrequency configures the periodic spawner (spec §6).
func (e *Engine) SetRequestFrequency(freqPerMinute float64) error {
	if freqPerMinute < 0 {
		return NewError(KindInvalidInput, "request frequency must be >= 0, got %v", freqPerMinute)
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.cfg.Spawner.RequestFreqPerMinute = freqPerMinute
	return nil
}

// Snapshot returns a defensive deep copy of visible state (spec §5, §6).
func (e *Engine) Snapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.snapshotLocked()
}

func (e *Engine) snapshotLocked() Snapshot {
	elevs := make([]ElevatorSnapshot, len(e.elevators))
	for i, el := range e.elevators {
		elevs[i] = ElevatorSnapshot{
			ID:             el.ID,
			CurrentFloor:   el.CurrentFloor,
			Route:          append([]int(nil), el.Route...),
			Direction:      el.Direction,
			Door:           el.Door,
			PassengerCount: el.PassengerCount,
			Capacity:       el.Capacity,
		}
	}

	pending := e.book.Pending()
	reqs := make([]RequestSnapshot, len(pending))
	for i, r := range pending {
		reqs[i] = RequestSnapshot{
			ID:          r.ID.String(),
			Type:        r.Type,
			Origin:      r.Origin,
			HasOrigin:   r.HasOrigin,
			Destination: r.Destination,
			Priority:    r.Priority,
			Escalated:   r.Escalated,
			AssignedTo:  r.AssignedTo,
			CreatedAt:   r.CreatedAt,
		}
	}

	return Snapshot{
		Time:            e.clock.Now(),
		Elevators:       elevs,
		PendingRequests: reqs,
		Running:         e.running,
	}
}

// MetricsSnapshot implements spec §6's metricsSnapshot() command.
func (e *Engine) MetricsSnapshot() MetricsSnapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.metrics.Snapshot(e.book, e.elevators, e.clock.Now())
}

func (e *Engine) findElevator(id string) *Elevator {
	for _, el := range e.elevators {
		if el.ID == id {
			return el
		}
	}
	return nil
}

// tick implements spec §4.6's fixed-step body, in order: advance the clock,
// step every elevator's motion in id order, run the spawner and scheduler
// (errors caught and logged, never fatal — spec §4.6, §7 KindTransient),
// update per-elevator utilTime, push a sliding-window sample, and broadcast
// a snapshot.
func (e *Engine) tick() {
	e.mu.Lock()
	var snap Snapshot
	func() {
		defer e.mu.Unlock()

		realDt := e.cfg.Tick.TickRateMs
		simDt := e.clock.Advance(realDt)
		now := e.clock.Now()
		inRush := InMorningRushWindow(e.clock.TimeOfDayMinutes(), e.cfg.Priority)

		for _, el := range e.elevators {
			el.Step(now, simDt, e.cfg.Building.DoorDwell, e.cfg.Building.TimePerFloor, e.book)
		}

		e.safely("spawner", func() {
			if e.cfg.Spawner.RequestFreqPerMinute > 0 {
				if r := e.spawner.Tick(realDt, e.cfg.Spawner.RequestFreqPerMinute, now, e.cfg.Building.NFloors, e.cfg.Building.LobbyFloor, inRush); r != nil {
					e.book.Add(r)
				}
			}
		})

		e.safely("scheduler", func() {
			e.scheduler.Tick(e.elevators, e.book, e.cfg, now, inRush, e.rng.ForSubsystem(SubsystemScheduler))
		})

		var totalUtil int64
		for _, el := range e.elevators {
			if el.PassengerCount > 0 {
				el.UtilTime += simDt
			}
			totalUtil += el.UtilTime
		}

		e.safely("metrics sample", func() {
			e.metrics.PushSample(now, totalUtil, len(e.book.Served()))
		})

		snap = e.snapshotLocked()
	}()

	e.broadcast(PushMessage{Type: "snapshot", Data: snap})
}

// safely runs fn, catching and logging a panic as a TRANSIENT failure
// rather than letting it terminate the tick loop (spec §4.6, §7).
func (e *Engine) safely(stage string, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			logrus.Errorf("tick %s: %s panicked: %v", stage, stage, r)
		}
	}()
	fn()
}

// Subscribe registers a new push-channel consumer and immediately sends the
// current snapshot (spec §6 "Initial snapshot is sent on subscription").
func (e *Engine) Subscribe() chan PushMessage {
	ch := make(chan PushMessage, 16)
	e.subMu.Lock()
	e.subscribers[ch] = true
	e.subMu.Unlock()

	ch <- PushMessage{Type: "snapshot", Data: e.Snapshot()}
	return ch
}

// Unsubscribe removes and closes a subscriber channel.
func (e *Engine) Unsubscribe(ch chan PushMessage) {
	e.subMu.Lock()
	defer e.subMu.Unlock()
	if e.subscribers[ch] {
		delete(e.subscribers, ch)
		close(ch)
	}
}

// broadcast fans msg out to every subscriber without blocking. A full
// channel is logged and dropped (spec §7 KindTransport: "subscriber send
// failure; logged, swallowed, other subscribers unaffected").
func (e *Engine) broadcast(msg PushMessage) {
	e.subMu.Lock()
	defer e.subMu.Unlock()
	for ch := range e.subscribers {
		select {
		case ch <- msg:
		default:
			logrus.Warnf("%s: dropping %s message for slow subscriber", KindTransport, msg.Type)
		}
	}
}
