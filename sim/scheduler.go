package sim

import (
	"math/rand"
	"sort"
)

// Scheduler is the stateless-per-tick policy that assigns pending requests
// to elevators and extends routes. Kept as a pluggable-by-name interface so
// alternate dispatch policies can be added later without touching the
// engine's tick loop, even though only one policy exists today. rng draws
// from SubsystemScheduler and is used only to break ties that survive every
// scoring criterion, never to influence the score itself.
type Scheduler interface {
	Tick(elevators []*Elevator, book *RequestBook, cfg Config, now int64, inMorningRush bool, rng *rand.Rand)
}

// GreedyScheduler implements the greedy multi-criteria dispatch algorithm:
// priority refresh, idle-set global assignment, busy-set intra-trip
// batching.
type GreedyScheduler struct{}

// NewScheduler creates a Scheduler by name. Only "greedy" (also the default
// for "") exists today; panics on unrecognized names.
func NewScheduler(name string) Scheduler {
	switch name {
	case "", "greedy":
		return &GreedyScheduler{}
	default:
		panic("unknown scheduler " + name)
	}
}

type candidatePair struct {
	elevator *Elevator
	request  *Request
	score    float64
	eta      int64
	jitter   float64
}

func (g *GreedyScheduler) Tick(elevators []*Elevator, book *RequestBook, cfg Config, now int64, inMorningRush bool, rng *rand.Rand) {
	RefreshPriorities(book.Pending(), cfg.Priority, now, cfg.Building.LobbyFloor, inMorningRush)

	var idle, busy []*Elevator
	for _, e := range elevators {
		if e.Idle() {
			idle = append(idle, e)
		} else {
			busy = append(busy, e)
		}
	}

	assignIdleSet(idle, book, cfg, rng)
	batchBusySet(busy, book, cfg)
}

// assignIdleSet implements the idle-set global assignment step: every idle
// elevator is paired against every unassigned request, scored, and the
// resulting pairs consumed greedily best-first.
func assignIdleSet(idle []*Elevator, book *RequestBook, cfg Config, rng *rand.Rand) {
	unassigned := unassignedRequests(book)
	if len(idle) == 0 || len(unassigned) == 0 {
		return
	}

	pairs := make([]candidatePair, 0, len(idle)*len(unassigned))
	for _, e := range idle {
		for _, r := range unassigned {
			score, eta := Score(e, r, cfg.Scoring, cfg.Building.TimePerFloor, cfg.Building.DoorDwell)
			pairs = append(pairs, candidatePair{elevator: e, request: r, score: score, eta: eta, jitter: rng.Float64()})
		}
	}

	sort.SliceStable(pairs, func(i, j int) bool {
		a, b := pairs[i], pairs[j]
		if a.request.Escalated != b.request.Escalated {
			return a.request.Escalated
		}
		if a.score != b.score {
			return a.score > b.score
		}
		if a.eta != b.eta {
			return a.eta < b.eta
		}
		if a.elevator.UtilTime != b.elevator.UtilTime {
			return a.elevator.UtilTime < b.elevator.UtilTime
		}
		// Every scoring criterion tied: break the tie with a seeded draw
		// instead of leaving it to candidate construction order, so which
		// elevator wins isn't an accident of iteration order.
		return a.jitter < b.jitter
	})

	usedElevator := make(map[string]bool)
	usedRequest := make(map[*Request]bool)
	pending := book.Pending()

	for _, p := range pairs {
		if usedElevator[p.elevator.ID] || usedRequest[p.request] {
			continue
		}
		if ProjectedLoad(p.elevator, pending) >= p.elevator.Capacity {
			continue
		}
		assign(p.elevator, p.request)
		usedElevator[p.elevator.ID] = true
		usedRequest[p.request] = true
	}
}

// batchBusySet implements spec §4.4 step 4.
func batchBusySet(busy []*Elevator, book *RequestBook, cfg Config) {
	unassigned := unassignedRequests(book)
	pending := book.Pending()

	for _, e := range busy {
		if e.Direction != DirUp && e.Direction != DirDown {
			continue
		}
		lo, hi := routeBounds(e)
		for _, r := range unassigned {
			if r.AssignedTo != "" {
				continue
			}
			pickup := r.Pickup()
			inRange := false
			if e.Direction == DirUp {
				inRange = pickup > e.CurrentFloor && pickup < hi
			} else {
				inRange = pickup < e.CurrentFloor && pickup > lo
			}
			if !inRange {
				continue
			}
			if ProjectedLoad(e, pending) >= e.Capacity {
				continue
			}
			r.AssignedTo = e.ID
			e.AppendRoute(pickup)
			e.Route = DedupRoute(e.Route)
		}
	}
}

func routeBounds(e *Elevator) (lo, hi int) {
	lo, hi = e.Route[0], e.Route[0]
	for _, f := range e.Route {
		if f < lo {
			lo = f
		}
		if f > hi {
			hi = f
		}
	}
	return lo, hi
}

func assign(e *Elevator, r *Request) {
	r.AssignedTo = e.ID
	if r.HasOrigin {
		e.AppendRoute(r.Origin)
	}
	e.AppendRoute(r.Destination)
	e.Route = DedupRoute(e.Route)
}

func unassignedRequests(book *RequestBook) []*Request {
	var out []*Request
	for _, r := range book.Pending() {
		if r.AssignedTo == "" {
			out = append(out, r)
		}
	}
	return out
}
