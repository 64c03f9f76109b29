package ecs

import "fmt"

// Sentinel errors returned by pool, entity-handle, and filter operations.
// Callers should use errors.Is against these rather than comparing messages.
var (
	// ErrAlreadyPresent is returned when adding a Single-category kind to an
	// entity that already holds an instance of it.
	ErrAlreadyPresent = fmt.Errorf("ecs: component already present")

	// ErrMissing is returned by get/update/overwrite when the entity does not
	// hold the requested kind.
	ErrMissing = fmt.Errorf("ecs: component missing")

	// ErrIllegalFilter is returned when a Filter include clause (AllOf/AnyOf)
	// is configured with a Singleton kind, or when more than one Multiple kind
	// is named across a filter's include clauses.
	ErrIllegalFilter = fmt.Errorf("ecs: illegal filter configuration")

	// ErrMutationDuringIteration is returned when the driver pool of an
	// in-progress Filter iteration is mutated before the iteration completes.
	ErrMutationDuringIteration = fmt.Errorf("ecs: driver pool mutated during iteration")

	// ErrMissingCleanup is returned by Add when a SingleFrame kind with its
	// check flag set has no bulk-remove system registered to clear it.
	ErrMissingCleanup = fmt.Errorf("ecs: single-frame kind has no bulk-remove system")

	// ErrMultipleNotRemovable is returned when a caller attempts to remove a
	// single instance of a Multiple kind; only full removal is supported.
	ErrMultipleNotRemovable = fmt.Errorf("ecs: a single instance of a Multiple kind cannot be removed in isolation")
)

// ECSError carries the sentinel error plus the component kind and entity
// involved, so host code gets useful context without the core ever logging.
type ECSError struct {
	Kind   string
	Entity EntityID
	err    error
}

func (e *ECSError) Error() string {
	return fmt.Sprintf("ecs: %s (kind=%s entity=%d)", e.err, e.Kind, e.Entity)
}

func (e *ECSError) Unwrap() error { return e.err }

func wrapErr(base error, kind string, entity EntityID) error {
	return &ECSError{Kind: kind, Entity: entity, err: base}
}
