package ecs

// EntityID is a strictly monotonic, never-reused identifier within a world.
// Zero is a valid id: the first entity a world creates gets id 0.
type EntityID uint64

// Entity is a cheap-to-copy value pair of (world reference, id). It carries
// no ownership of component data; every operation dispatches to the owning
// World's pools.
//
// Handles to destroyed entities remain structurally valid: Add succeeds
// again under the same id and "revives" it. Ids are never recycled, so
// reviving a handle is always safe.
type Entity struct {
	world *World
	id    EntityID
}

// ID returns the entity's identifier.
func (e Entity) ID() EntityID { return e.id }

// World returns the world that owns this handle.
func (e Entity) World() *World { return e.world }

// Destroy removes every component instance the entity holds, across every
// pool. The identifier is not reused; a later Add on the same handle revives
// it under the same id.
func (e Entity) Destroy() {
	for _, p := range e.world.pools {
		p.RemoveEntity(e.id)
	}
}

func poolFor[T any](w *World, k Kind[T]) *Pool[T] {
	return w.pools[k.index].(*Pool[T])
}

// Add inserts component value v of kind k onto entity e. It fails
// AlreadyPresent if k is a Single kind already held, and MissingCleanup if k
// is a SingleFrame kind with its check flag set and no bulk-remove system yet
// clears it.
func Add[T any](e Entity, k Kind[T], v T) error {
	w := e.world
	meta := w.registry.meta(k.index)
	if meta.category.Has(CategorySingleFrame) && meta.check && !w.clearedSingleFrame[k.index] {
		return wrapErr(ErrMissingCleanup, meta.name, e.id)
	}
	return poolFor(w, k).Insert(e.id, v)
}

// Get returns the entity's value for kind k, failing Missing if absent.
func Get[T any](e Entity, k Kind[T]) (T, error) {
	v, ok := poolFor(e.world, k).Get(e.id)
	if !ok {
		var zero T
		return zero, wrapErr(ErrMissing, e.world.registry.meta(k.index).name, e.id)
	}
	return v, nil
}

// GetOpt returns the value and whether it was present, never failing.
func GetOpt[T any](e Entity, k Kind[T]) (T, bool) {
	return poolFor(e.world, k).Get(e.id)
}

// Set upserts: inserts if absent, overwrites if present.
func Set[T any](e Entity, k Kind[T], v T) {
	poolFor(e.world, k).Upsert(e.id, v)
}

// Update overwrites in place, failing Missing if the entity does not hold k.
func Update[T any](e Entity, k Kind[T], v T) error {
	if err := poolFor(e.world, k).Overwrite(e.id, v); err != nil {
		return err
	}
	return nil
}

// Replace removes oldK (which must be present) and adds newK with v,
// equivalent in observable state to Remove(oldK); Add(newK, v).
func Replace[Old any, New any](e Entity, oldK Kind[Old], newK Kind[New], v New) error {
	if !poolFor(e.world, oldK).Remove(e.id) {
		return wrapErr(ErrMissing, e.world.registry.meta(oldK.index).name, e.id)
	}
	return Add(e, newK, v)
}

// Remove releases every instance of kind k the entity holds. Idempotent.
func Remove[T any](e Entity, k Kind[T]) {
	poolFor(e.world, k).Remove(e.id)
}

// GetPtr returns a direct pointer into storage; its validity ends at the next
// mutation that could reuse the slot.
func GetPtr[T any](e Entity, k Kind[T]) *T {
	return poolFor(e.world, k).GetPtr(e.id)
}

// Has reports whether the entity currently holds kind k.
func Has[T any](e Entity, k Kind[T]) bool {
	return poolFor(e.world, k).Contains(e.id)
}
