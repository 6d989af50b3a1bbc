// Defines the Request struct that models a single passenger request's
// lifecycle in the simulation: queued -> assigned -> picked up -> dropped off.

package sim

import (
	"fmt"

	"github.com/google/uuid"
)

// RequestType distinguishes external calls (a passenger pressing a hall
// button) from internal requests (a passenger already onboard pressing a
// destination button) per spec §4.3.
type RequestType string

const (
	TypeExternal RequestType = "external"
	TypeInternal RequestType = "internal"
)

// Request models a single passenger request's lifecycle (spec §3).
type Request struct {
	ID uuid.UUID `json:"id"`

	CreatedAt int64 `json:"createdAt"` // sim-ms creation timestamp

	Type RequestType `json:"type"`

	Origin      int  `json:"origin"`    // pickup floor; meaningless for an internal request already onboard
	HasOrigin   bool `json:"hasOrigin"` // false only for an internal request with no origin floor
	Destination int  `json:"destination"`

	BasePriority float64 `json:"basePriority"`
	Priority     float64 `json:"priority"` // recomputed every tick by the priority refresh step

	Escalated     bool `json:"escalated"`
	IsMorningRush bool `json:"isMorningRush"`

	AssignedTo  string `json:"assignedTo"` // elevator id, "" if unassigned
	PickupTime  int64  `json:"pickupTime"`
	HasPickup   bool   `json:"hasPickup"`
	DropoffTime int64  `json:"dropoffTime"`
	HasDropoff  bool   `json:"hasDropoff"`
}

// NewExternalRequest builds a pending external (hall-call) request.
func NewExternalRequest(now int64, origin, destination int, isMorningRush bool) *Request {
	return &Request{
		ID:            uuid.New(),
		CreatedAt:     now,
		Type:          TypeExternal,
		Origin:        origin,
		HasOrigin:     true,
		Destination:   destination,
		BasePriority:  1,
		Priority:      1,
		IsMorningRush: isMorningRush,
	}
}

// NewInternalRequest builds an internal (onboard destination-call) request,
// already assigned and picked up at creation (spec §4.3 internal fast path).
func NewInternalRequest(now int64, elevatorID string, destination int) *Request {
	return &Request{
		ID:           uuid.New(),
		CreatedAt:    now,
		Type:         TypeInternal,
		HasOrigin:    false,
		Destination:  destination,
		BasePriority: 1,
		Priority:     1,
		AssignedTo:   elevatorID,
		PickupTime:   now,
		HasPickup:    true,
	}
}

// Pickup returns the floor at which this request boards: origin for an
// external request, destination for an internal one (§4.5's
// "pickup = r.origin ?? r.destination").
func (r *Request) Pickup() int {
	if r.HasOrigin {
		return r.Origin
	}
	return r.Destination
}

// Served reports whether both pickup and dropoff have occurred.
func (r *Request) Served() bool {
	return r.HasPickup && r.HasDropoff
}

// Direction returns the travel direction implied by pickup->destination.
func (r *Request) Direction() Direction {
	if r.Destination > r.Pickup() {
		return DirUp
	}
	if r.Destination < r.Pickup() {
		return DirDown
	}
	return DirIdle
}

func (r *Request) String() string {
	return fmt.Sprintf("Request: (ID: %s, Type: %s, Origin: %d, Destination: %d, AssignedTo: %q, Priority: %.2f)",
		r.ID, r.Type, r.Origin, r.Destination, r.AssignedTo, r.Priority)
}
