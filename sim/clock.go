package sim

// Clock is the engine's single monotonic virtual-time counter (spec §4.1).
// All timestamps in the system — request timestamps, statusSince, utilization
// samples — are expressed in sim-ms from this clock, never wall-clock.
type Clock struct {
	simTime int64
	speed   float64
}

// NewClock returns a clock starting at simTime=0 with speed multiplier 1.
func NewClock() *Clock {
	return &Clock{simTime: 0, speed: 1}
}

// Advance increments simTime by realDt × speed and returns the simulated
// delta that elapsed (simDt), which callers feed to elevator motion steps.
func (c *Clock) Advance(realDtMs int64) int64 {
	simDt := int64(float64(realDtMs) * c.speed)
	c.simTime += simDt
	return simDt
}

// Now returns the current simTime in sim-ms.
func (c *Clock) Now() int64 {
	return c.simTime
}

// SetSpeed replaces the speed multiplier. Per spec §9 Open Questions, speed
// must be strictly positive; zero and negative speeds are rejected.
func (c *Clock) SetSpeed(s float64) error {
	if s <= 0 {
		return NewError(KindInvalidInput, "speed must be positive, got %v", s)
	}
	c.speed = s
	return nil
}

// Speed returns the current speed multiplier.
func (c *Clock) Speed() float64 {
	return c.speed
}

// Reset sets simTime back to 0, preserving the configured speed.
func (c *Clock) Reset() {
	c.simTime = 0
}

// TimeOfDayMinutes returns the sim-time-of-day in minutes, wrapping every 24h
// of sim-ms. Used by priority refresh to detect the morning-rush window.
func (c *Clock) TimeOfDayMinutes() int64 {
	const dayMs = 24 * 60 * 60 * 1000
	return (c.simTime % dayMs) / 60000
}
