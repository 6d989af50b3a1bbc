// Spawner injects synthetic requests: a periodic real-time generator firing
// on a fixed minimum-interval rule, plus one-shot scenario batches.
package sim

import (
	"math"
	"math/rand"
)

const maxScenarioCount = 250

// Spawner generates requests from a single isolated RNG stream (spec §9
// "all random choices must route through a single seedable generator").
type Spawner struct {
	rng           *rand.Rand
	accumulatedMs int64
}

// NewSpawner wraps the subsystem RNG the Engine hands it.
func NewSpawner(rng *rand.Rand) *Spawner {
	return &Spawner{rng: rng}
}

// interval implements spec §4.7's "max(200ms, floor(60_000/freqPerMinute))".
func (s *Spawner) interval(freqPerMinute float64) int64 {
	iv := int64(math.Floor(60_000 / freqPerMinute))
	if iv < 200 {
		iv = 200
	}
	return iv
}

// Tick advances the periodic spawner by realDtMs of real time and returns a
// newly spawned request, or nil if no fire occurred this tick. Only active
// while freqPerMinute > 0 (spec §4.7 "only active while engine is running
// and freq > 0" — the running gate is the Engine's responsibility; Tick is
// simply not called while stopped).
func (s *Spawner) Tick(realDtMs int64, freqPerMinute float64, now int64, nFloors, lobbyFloor int, inMorningRush bool) *Request {
	if freqPerMinute <= 0 {
		s.accumulatedMs = 0
		return nil
	}
	s.accumulatedMs += realDtMs
	iv := s.interval(freqPerMinute)
	if s.accumulatedMs < iv {
		return nil
	}
	s.accumulatedMs -= iv
	return s.spawnOne(now, nFloors, lobbyFloor, inMorningRush)
}

func (s *Spawner) spawnOne(now int64, nFloors, lobbyFloor int, inMorningRush bool) *Request {
	if inMorningRush && s.rng.Float64() < 0.7 {
		dest := s.randomUpperFloor(nFloors, lobbyFloor)
		return NewExternalRequest(now, lobbyFloor, dest, true)
	}
	origin, destination := s.randomPair(nFloors)
	return NewExternalRequest(now, origin, destination, false)
}

func (s *Spawner) randomUpperFloor(nFloors, lobbyFloor int) int {
	if nFloors <= 1 {
		return lobbyFloor
	}
	for {
		f := 1 + s.rng.Intn(nFloors)
		if f != lobbyFloor {
			return f
		}
	}
}

func (s *Spawner) randomPair(nFloors int) (origin, destination int) {
	for {
		origin = 1 + s.rng.Intn(nFloors)
		destination = 1 + s.rng.Intn(nFloors)
		if origin != destination {
			return origin, destination
		}
	}
}

// Scenario inserts a one-shot batch per spec §4.7. count<=0 uses the
// scenario's default count; count>250 is rejected at the boundary
// regardless of scenario name.
func (s *Spawner) Scenario(name string, count int, now int64, nFloors, lobbyFloor int) ([]*Request, error) {
	if count > maxScenarioCount {
		return nil, NewError(KindInvalidInput, "scenario count %d exceeds max %d", count, maxScenarioCount)
	}

	switch name {
	case "morningRush":
		n := count
		if n <= 0 {
			n = 50
		}
		biased := int(math.Ceil(0.7 * float64(n)))
		reqs := make([]*Request, 0, n)
		for i := 0; i < biased; i++ {
			dest := s.randomUpperFloor(nFloors, lobbyFloor)
			reqs = append(reqs, NewExternalRequest(now, lobbyFloor, dest, true))
		}
		for i := biased; i < n; i++ {
			origin, destination := s.randomPair(nFloors)
			reqs = append(reqs, NewExternalRequest(now, origin, destination, false))
		}
		return reqs, nil

	case "randomBurst":
		n := count
		if n <= 0 {
			n = 100
		}
		return s.uniformBatch(n, now, nFloors), nil

	default:
		return s.uniformBatch(10, now, nFloors), nil
	}
}

func (s *Spawner) uniformBatch(n int, now int64, nFloors int) []*Request {
	reqs := make([]*Request, 0, n)
	for i := 0; i < n; i++ {
		origin, destination := s.randomPair(nFloors)
		reqs = append(reqs, NewExternalRequest(now, origin, destination, false))
	}
	return reqs
}
