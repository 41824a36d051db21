package ordsched

import "github.com/google/uuid"

// Identity names a component of a scheduler (the scheduler itself, its
// feeder, its worker pool) for logging, tracing, and schema visualization.
// Every construction of an Identity gets a fresh stable id so two
// schedulers built with the same name/description are still
// distinguishable in traces and hook events.
type Identity struct {
	id          uuid.UUID
	name        string
	description string
}

// NewIdentity creates an Identity with a fresh id.
func NewIdentity(name, description string) Identity {
	return Identity{
		id:          uuid.New(),
		name:        name,
		description: description,
	}
}

// ID returns the stable identifier assigned at construction.
func (i Identity) ID() uuid.UUID { return i.id }

// Name returns the human-readable name.
func (i Identity) Name() string { return i.name }

// Description returns the human-readable description, possibly empty.
func (i Identity) Description() string { return i.description }
