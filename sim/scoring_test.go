package sim

import "testing"

func TestEstimateETA_EmptyRoute(t *testing.T) {
	e := NewElevator("e0", 3, 6, 0)
	eta := EstimateETA(e, 7, 1000, 2000)
	if eta != 4000 {
		t.Errorf("EstimateETA = %d, want 4000", eta)
	}
}

func TestEstimateETA_WalksRouteWithDwell(t *testing.T) {
	e := NewElevator("e0", 1, 6, 0)
	e.Route = []int{3, 8}
	eta := EstimateETA(e, 8, 1000, 2000)
	// 1->3 = 2000, +dwell 2000, 3->8 = 5000 = 9000
	if eta != 9000 {
		t.Errorf("EstimateETA = %d, want 9000", eta)
	}
}

func TestEstimateETA_StopsAtFirstMatchingRouteEntry(t *testing.T) {
	e := NewElevator("e0", 1, 6, 0)
	e.Route = []int{3, 8}
	eta := EstimateETA(e, 3, 1000, 2000)
	if eta != 2000 {
		t.Errorf("EstimateETA = %d, want 2000 (no dwell added for target stop itself)", eta)
	}
}

func TestScore_SameFloorBoostWhenIdleAtPickup(t *testing.T) {
	cfg := DefaultScoringConfig()
	e := NewElevator("e0", 1, 6, 0)
	r := NewExternalRequest(0, 1, 5, false)
	score, _ := Score(e, r, cfg, 1000, 2000)
	if score < cfg.SameFloorBoost {
		t.Errorf("score %v should include same-floor boost %v", score, cfg.SameFloorBoost)
	}
}

func TestScore_OccupancyPenaltyFullDominates(t *testing.T) {
	cfg := DefaultScoringConfig()
	full := NewElevator("full", 1, 6, 0)
	full.PassengerCount = 6
	empty := NewElevator("empty", 1, 6, 0)
	r := NewExternalRequest(0, 1, 5, false)

	fullScore, _ := Score(full, r, cfg, 1000, 2000)
	emptyScore, _ := Score(empty, r, cfg, 1000, 2000)
	if fullScore >= emptyScore {
		t.Errorf("full elevator score %v should be well below empty elevator score %v", fullScore, emptyScore)
	}
}

func TestScore_EscalatedBonusApplied(t *testing.T) {
	cfg := DefaultScoringConfig()
	e := NewElevator("e0", 10, 6, 0)
	r := NewExternalRequest(0, 1, 5, false)
	base, _ := Score(e, r, cfg, 1000, 2000)
	r.Escalated = true
	escalated, _ := Score(e, r, cfg, 1000, 2000)
	if escalated-base != cfg.EscalatedBonus {
		t.Errorf("escalated bonus delta = %v, want %v", escalated-base, cfg.EscalatedBonus)
	}
}
