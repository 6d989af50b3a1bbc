// Tracks simulation-wide statistics derived from the request book and fleet
// state: cumulative served/wait/travel metrics, and a sliding-window
// utilization/throughput buffer (spec §4.6 step 5, §6 metricsSnapshot).

package sim

import "sort"

// UtilSample is a single sliding-window observation pushed once per tick
// (spec §4.6 step 5).
type UtilSample struct {
	Ts            int64
	TotalUtilTime int64
	ServedCount   int
}

// MetricsAggregator holds the sliding-window buffer of utilization samples
// alongside the served-archive statistics it's snapshotted against.
type MetricsAggregator struct {
	samples  []UtilSample
	windowMs int64
}

// NewMetricsAggregator returns an aggregator with the given sliding-window
// width (spec default 60_000 sim-ms).
func NewMetricsAggregator(windowMs int64) *MetricsAggregator {
	return &MetricsAggregator{windowMs: windowMs}
}

// PushSample appends a sample and prunes samples older than 2×windowMs
// (spec §4.6 step 5, §9 Sliding window).
func (m *MetricsAggregator) PushSample(now, totalUtilTime int64, servedCount int) {
	m.samples = append(m.samples, UtilSample{Ts: now, TotalUtilTime: totalUtilTime, ServedCount: servedCount})
	cutoff := now - 2*m.windowMs
	i := 0
	for i < len(m.samples) && m.samples[i].Ts < cutoff {
		i++
	}
	m.samples = m.samples[i:]
}

// Reset clears the sliding window (spec §6 `reset`).
func (m *MetricsAggregator) Reset() {
	m.samples = nil
}

// recentUtil and throughputPerMin use the oldest sample within
// [now-windowMs, now] and the latest sample, flooring deltaTime at 1 to
// guard against division by zero (spec §9 Sliding window).
func (m *MetricsAggregator) oldestInWindow(now int64) *UtilSample {
	for i := range m.samples {
		if m.samples[i].Ts >= now-m.windowMs {
			return &m.samples[i]
		}
	}
	if len(m.samples) > 0 {
		return &m.samples[len(m.samples)-1]
	}
	return nil
}

func (m *MetricsAggregator) recentUtil(now int64, nElevators int) float64 {
	if len(m.samples) == 0 || nElevators == 0 {
		return 0
	}
	oldest := m.oldestInWindow(now)
	latest := &m.samples[len(m.samples)-1]
	deltaTime := latest.Ts - oldest.Ts
	if deltaTime < 1 {
		deltaTime = 1
	}
	deltaUtil := latest.TotalUtilTime - oldest.TotalUtilTime
	return float64(deltaUtil) / float64(deltaTime*int64(nElevators))
}

func (m *MetricsAggregator) throughputPerMin(now int64) float64 {
	if len(m.samples) == 0 {
		return 0
	}
	oldest := m.oldestInWindow(now)
	latest := &m.samples[len(m.samples)-1]
	deltaTime := latest.Ts - oldest.Ts
	if deltaTime < 1 {
		deltaTime = 1
	}
	deltaServed := latest.ServedCount - oldest.ServedCount
	return float64(deltaServed) / (float64(deltaTime) / 60000.0)
}

// MetricsSnapshot is the payload returned by the command surface's
// metricsSnapshot() operation (spec §6).
type MetricsSnapshot struct {
	ServedCount      int     `json:"servedCount"`
	AvgWait          float64 `json:"avgWait"`
	MaxWait          int64   `json:"maxWait"`
	P95Wait          float64 `json:"p95Wait"`
	AvgTravel        float64 `json:"avgTravel"`
	MaxTravel        int64   `json:"maxTravel"`
	P95Travel        float64 `json:"p95Travel"`
	Utilization      float64 `json:"utilization"`
	RecentUtil       float64 `json:"recentUtil"`
	ThroughputPerMin float64 `json:"throughputPerMin"`
	PendingCount     int     `json:"pendingCount"`
	MaxPendingWait   int64   `json:"maxPendingWait"`
}

// Snapshot computes the metrics snapshot from the request book's served
// archive and pending set plus the fleet's cumulative utilization (spec §6).
func (m *MetricsAggregator) Snapshot(book *RequestBook, elevators []*Elevator, now int64) MetricsSnapshot {
	served := book.Served()
	waits := make([]int64, 0, len(served))
	travels := make([]int64, 0, len(served))
	for _, r := range served {
		waits = append(waits, r.PickupTime-r.CreatedAt)
		travels = append(travels, r.DropoffTime-r.PickupTime)
	}
	sort.Slice(waits, func(i, j int) bool { return waits[i] < waits[j] })
	sort.Slice(travels, func(i, j int) bool { return travels[i] < travels[j] })

	var totalUtil int64
	for _, e := range elevators {
		totalUtil += e.UtilTime
	}
	utilization := 0.0
	if now > 0 && len(elevators) > 0 {
		utilization = float64(totalUtil) / float64(now*int64(len(elevators)))
	}

	pending := book.Pending()
	var maxPendingWait int64
	for _, r := range pending {
		waited := now - r.CreatedAt
		if waited > maxPendingWait {
			maxPendingWait = waited
		}
	}

	return MetricsSnapshot{
		ServedCount:      len(served),
		AvgWait:          CalculateMean(waits),
		MaxWait:          CalculateMax(waits),
		P95Wait:          CalculatePercentile(waits, 95),
		AvgTravel:        CalculateMean(travels),
		MaxTravel:        CalculateMax(travels),
		P95Travel:        CalculatePercentile(travels, 95),
		Utilization:      utilization,
		RecentUtil:       m.recentUtil(now, len(elevators)),
		ThroughputPerMin: m.throughputPerMin(now),
		PendingCount:     len(pending),
		MaxPendingWait:   maxPendingWait,
	}
}
