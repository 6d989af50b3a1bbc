package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultConfig_MatchesSpecDefaults(t *testing.T) {
	got := DefaultConfig()
	assert.Equal(t, 3, got.Building.NElevators)
	assert.Equal(t, 12, got.Building.NFloors)
	assert.Equal(t, int64(1000), got.Building.TimePerFloor)
	assert.Equal(t, int64(2000), got.Building.DoorDwell)
	assert.Equal(t, 1, got.Building.LobbyFloor)
	assert.Equal(t, 6, got.Building.Capacity)
	assert.Equal(t, int64(200), got.Tick.TickRateMs)
}

func TestDefaultScoringConfig_OrderingInvariant(t *testing.T) {
	// BC: full ≫ same-floor ≫ escalated ≫ near ≫ direction ≫ targets ≫ fairness
	s := DefaultScoringConfig()
	if !(s.OccupancyPenaltyFull > s.SameFloorBoost) {
		t.Errorf("full penalty must dominate same-floor boost")
	}
	if !(s.SameFloorBoost > s.NearbyBoost) {
		t.Errorf("same-floor boost must dominate nearby boost")
	}
	if !(s.NearbyBoost > s.DirectionBoost) {
		t.Errorf("nearby boost must dominate direction boost")
	}
	if !(s.DirectionBoost > s.TargetPenalty) {
		t.Errorf("direction boost must dominate target penalty")
	}
}

func TestDefaultPriorityConfig_MorningRushWindow(t *testing.T) {
	p := DefaultPriorityConfig()
	if p.MorningRushStart != 9*60 || p.MorningRushEnd != 9*60+30 {
		t.Errorf("morning rush window: got [%d,%d], want [540,570]", p.MorningRushStart, p.MorningRushEnd)
	}
}
