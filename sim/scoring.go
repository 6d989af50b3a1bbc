package sim

// Candidate scoring for the greedy multi-criteria scheduler: one fixed cost
// function over tunable weighted constants, not a pluggable scorer.

// Score computes {score, eta} for the candidate pair (e, r) per spec §4.5.
func Score(e *Elevator, r *Request, cfg ScoringConfig, timePerFloor, doorDwell int64) (score float64, eta int64) {
	pickup := r.Pickup()
	eta = EstimateETA(e, pickup, timePerFloor, doorDwell)

	score = r.Priority

	if e.CurrentFloor == pickup && (e.Direction == DirIdle || (len(e.Route) > 0 && e.Route[0] == pickup)) {
		score += cfg.SameFloorBoost
	}
	if abs(e.CurrentFloor-pickup) == 1 {
		score += cfg.NearbyBoost
	}
	if e.Direction == r.Direction() {
		score += cfg.DirectionBoost
	}

	score -= float64(eta) * cfg.ETAWeight
	score -= float64(len(e.Route)) * cfg.TargetPenalty
	score -= occupancyPenalty(e, cfg)
	score -= float64(e.UtilTime) * cfg.FairnessWeight

	if r.Escalated {
		score += cfg.EscalatedBonus
	}

	return score, eta
}

func occupancyPenalty(e *Elevator, cfg ScoringConfig) float64 {
	if e.PassengerCount >= e.Capacity {
		return cfg.OccupancyPenaltyFull
	}
	nearFull := int(cfg.NearFullFraction * float64(e.Capacity))
	if e.PassengerCount >= nearFull {
		return cfg.OccupancyPenaltyNear
	}
	return 0
}

// EstimateETA walks e's route in order from currentFloor, accumulating
// travel time and doorDwell at every intermediate scheduled stop, and
// returns the running total at the moment pickup is reached (spec §4.5).
func EstimateETA(e *Elevator, pickup int, timePerFloor, doorDwell int64) int64 {
	if len(e.Route) == 0 {
		return int64(abs(e.CurrentFloor-pickup)) * timePerFloor
	}

	var total int64
	cur := e.CurrentFloor
	for _, t := range e.Route {
		total += int64(abs(t-cur)) * timePerFloor
		if t == pickup {
			return total
		}
		total += doorDwell
		cur = t
	}
	total += int64(abs(pickup-cur)) * timePerFloor
	return total
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
