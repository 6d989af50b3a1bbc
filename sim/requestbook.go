// RequestBook is the authoritative request ledger: the pending set and the
// served archive. The pending set is unordered — the scheduler, not
// insertion order, decides who gets served next.

package sim

// RequestBook holds the pending set (unordered, live requests) and the
// served archive (append-only, retained for metrics).
type RequestBook struct {
	pending []*Request
	served  []*Request
}

// NewRequestBook returns an empty book.
func NewRequestBook() *RequestBook {
	return &RequestBook{}
}

// Add inserts a new request into the pending set.
func (b *RequestBook) Add(r *Request) {
	b.pending = append(b.pending, r)
}

// Pending returns the live pending requests. Callers must not mutate the
// returned slice's backing array across a sweep; HandleArrival takes its own
// snapshot internally.
func (b *RequestBook) Pending() []*Request {
	return b.pending
}

// Served returns the served archive.
func (b *RequestBook) Served() []*Request {
	return b.served
}

// Reset clears both pending and served, returning the book to its initial
// empty state (spec §6 `reset`).
func (b *RequestBook) Reset() {
	b.pending = nil
	b.served = nil
}

// HandleArrival runs the pickup and dropoff sweeps for elevator e arriving at
// its current floor (spec §4.3). It operates on a snapshot of pending so
// requests may be safely moved to the served archive during iteration.
func (b *RequestBook) HandleArrival(e *Elevator, now int64) {
	floor := e.CurrentFloor
	snapshot := make([]*Request, len(b.pending))
	copy(snapshot, b.pending)

	// Pickup sweep.
	for _, r := range snapshot {
		if r.AssignedTo != e.ID || r.Pickup() != floor || r.HasPickup {
			continue
		}
		if e.PassengerCount < e.Capacity {
			r.HasPickup = true
			r.PickupTime = now
			e.PassengerCount++
			e.AppendRoute(r.Destination)
		} else {
			r.AssignedTo = ""
		}
	}

	// Dropoff sweep.
	for _, r := range snapshot {
		if r.AssignedTo != e.ID || r.Destination != floor || !r.HasPickup || r.HasDropoff {
			continue
		}
		r.HasDropoff = true
		r.DropoffTime = now
		if e.PassengerCount > 0 {
			e.PassengerCount--
		}
		b.moveToServed(r)
	}
}

// moveToServed removes r from pending and appends it to served.
func (b *RequestBook) moveToServed(r *Request) {
	for i, p := range b.pending {
		if p.ID == r.ID {
			b.pending = append(b.pending[:i], b.pending[i+1:]...)
			break
		}
	}
	b.served = append(b.served, r)
}

// AddInternal implements the internal-request fast path (spec §4.3): the
// passenger is already onboard elevator e. Returns a *Error of KindFull if
// the car has no capacity.
func (b *RequestBook) AddInternal(e *Elevator, now int64, destination int) (*Request, error) {
	if e.PassengerCount >= e.Capacity {
		return nil, NewError(KindFull, "elevator %s is at capacity (%d/%d)", e.ID, e.PassengerCount, e.Capacity)
	}
	r := NewInternalRequest(now, e.ID, destination)
	e.PassengerCount++
	e.AppendRoute(destination)
	b.pending = append(b.pending, r)
	return r, nil
}
