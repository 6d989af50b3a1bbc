package sim

// RequestValidator gates a candidate request against building geometry and
// fleet state before the Engine commits it to the request book. Kept as a
// pluggable-by-name interface for the same reason as Scheduler: room for
// alternate validation policies without touching call sites.
type RequestValidator interface {
	ValidateExternal(cfg BuildingConfig, origin, destination int) error
	ValidateInternal(cfg BuildingConfig, e *Elevator, destination int) error
}

// StrictValidator implements the boundary checks the command surface
// requires: INVALID_INPUT for bad floors or origin==destination, FULL for
// an internal request against a full car. NOT_FOUND is raised by the caller
// (Engine) since only it knows whether the named elevator id exists at all.
type StrictValidator struct{}

// NewRequestValidator returns the default validator by name. Only "strict"
// (also the default for "") exists today; panics on unrecognized names.
func NewRequestValidator(name string) RequestValidator {
	switch name {
	case "", "strict":
		return &StrictValidator{}
	default:
		panic("unknown request validator " + name)
	}
}

func inBounds(cfg BuildingConfig, floor int) bool {
	return floor >= 1 && floor <= cfg.NFloors
}

func (v *StrictValidator) ValidateExternal(cfg BuildingConfig, origin, destination int) error {
	if !inBounds(cfg, origin) {
		return NewError(KindInvalidInput, "origin floor %d out of [1,%d]", origin, cfg.NFloors)
	}
	if !inBounds(cfg, destination) {
		return NewError(KindInvalidInput, "destination floor %d out of [1,%d]", destination, cfg.NFloors)
	}
	if origin == destination {
		return NewError(KindInvalidInput, "origin and destination both %d", origin)
	}
	return nil
}

func (v *StrictValidator) ValidateInternal(cfg BuildingConfig, e *Elevator, destination int) error {
	if !inBounds(cfg, destination) {
		return NewError(KindInvalidInput, "destination floor %d out of [1,%d]", destination, cfg.NFloors)
	}
	if e.PassengerCount >= e.Capacity {
		return NewError(KindFull, "elevator %s is at capacity (%d/%d)", e.ID, e.PassengerCount, e.Capacity)
	}
	return nil
}
