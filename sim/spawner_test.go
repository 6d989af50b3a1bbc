package sim

import "testing"

func newTestSpawner(seed int64) *Spawner {
	rng := NewPartitionedRNG(NewSimulationKey(seed))
	return NewSpawner(rng.ForSubsystem(SubsystemSpawner))
}

func TestSpawner_Interval_FloorsAndFloorsAtMinimum(t *testing.T) {
	s := newTestSpawner(1)
	if got := s.interval(30); got != 2000 {
		t.Errorf("interval(30) = %d, want 2000", got)
	}
	if got := s.interval(1000); got != 200 {
		t.Errorf("interval(1000) = %d, want 200 (floor clamp)", got)
	}
}

func TestSpawner_Tick_DoesNotFireBeforeInterval(t *testing.T) {
	s := newTestSpawner(1)
	if r := s.Tick(100, 30, 0, 12, 1, false); r != nil {
		t.Fatalf("expected no spawn before interval elapses, got %v", r)
	}
}

func TestSpawner_Tick_FiresOnceIntervalElapses(t *testing.T) {
	s := newTestSpawner(1)
	s.Tick(1999, 30, 0, 12, 1, false)
	r := s.Tick(1, 30, 2000, 12, 1, false)
	if r == nil {
		t.Fatal("expected a spawned request once accumulated >= interval")
	}
	if r.Origin == r.Destination {
		t.Errorf("origin and destination must differ, got both %d", r.Origin)
	}
}

func TestSpawner_Tick_AccumulatesAcrossMultipleTicks(t *testing.T) {
	s := newTestSpawner(1)
	var last *Request
	for i := 0; i < 20; i++ {
		last = s.Tick(100, 30, int64(i)*100, 12, 1, false)
		if last != nil {
			break
		}
	}
	if last == nil {
		t.Fatal("expected a spawn within 2000ms at 100ms/tick")
	}
}

func TestSpawner_Tick_ZeroFrequencyNeverFires(t *testing.T) {
	s := newTestSpawner(1)
	for i := 0; i < 100; i++ {
		if r := s.Tick(1000, 0, int64(i)*1000, 12, 1, false); r != nil {
			t.Fatalf("expected no spawn when frequency is 0, got %v", r)
		}
	}
}

func TestSpawner_SpawnOne_MorningRushBiasesTowardLobbyOrigin(t *testing.T) {
	s := newTestSpawner(7)
	lobbyOriginCount := 0
	const trials = 500
	for i := 0; i < trials; i++ {
		r := s.spawnOne(0, 12, 1, true)
		if r.HasOrigin && r.Origin == 1 {
			lobbyOriginCount++
		}
	}
	// Expect roughly 70% lobby-origin; assert it is clearly biased, not exact.
	if lobbyOriginCount < trials/2 {
		t.Errorf("expected majority lobby-origin under morning rush, got %d/%d", lobbyOriginCount, trials)
	}
}

func TestSpawner_SpawnOne_MorningRushDestinationNeverLobby(t *testing.T) {
	s := newTestSpawner(3)
	for i := 0; i < 200; i++ {
		r := s.spawnOne(0, 12, 1, true)
		if r.HasOrigin && r.Origin == 1 && r.Destination == 1 {
			t.Fatalf("morning-rush request destined for the lobby itself: %v", r)
		}
	}
}

func TestSpawner_Scenario_RejectsCountOverMax(t *testing.T) {
	s := newTestSpawner(1)
	_, err := s.Scenario("randomBurst", 251, 0, 12, 1)
	if err == nil {
		t.Fatal("expected error for scenario count > 250")
	}
}

func TestSpawner_Scenario_MorningRushDefaultCountAndBias(t *testing.T) {
	s := newTestSpawner(1)
	reqs, err := s.Scenario("morningRush", 0, 0, 12, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(reqs) != 50 {
		t.Fatalf("expected default count 50, got %d", len(reqs))
	}
	lobbyOrigin := 0
	for _, r := range reqs {
		if r.HasOrigin && r.Origin == 1 {
			lobbyOrigin++
		}
	}
	if lobbyOrigin != 35 {
		t.Errorf("expected ceil(0.7*50)=35 lobby-origin requests, got %d", lobbyOrigin)
	}
}

func TestSpawner_Scenario_RandomBurstDefaultCount(t *testing.T) {
	s := newTestSpawner(1)
	reqs, err := s.Scenario("randomBurst", 0, 0, 12, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(reqs) != 100 {
		t.Fatalf("expected default count 100, got %d", len(reqs))
	}
}

func TestSpawner_Scenario_UnknownNameDefaultsToTenUniform(t *testing.T) {
	s := newTestSpawner(1)
	reqs, err := s.Scenario("does-not-exist", 0, 0, 12, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(reqs) != 10 {
		t.Fatalf("expected 10 requests for unknown scenario, got %d", len(reqs))
	}
	for _, r := range reqs {
		if r.IsMorningRush {
			t.Error("unknown scenario should generate uniform, non-rush requests")
		}
	}
}

func TestSpawner_Scenario_ExplicitCountOverridesDefault(t *testing.T) {
	s := newTestSpawner(1)
	reqs, err := s.Scenario("randomBurst", 5, 0, 12, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(reqs) != 5 {
		t.Fatalf("expected 5 requests, got %d", len(reqs))
	}
}
