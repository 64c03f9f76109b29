package ecs

// iPool is the type-erased surface World, Entity, and Filter operate through
// when the concrete component type isn't known at the call site. Typed
// operations (Insert/Get/Overwrite/...) live on the generic *Pool[T] and are
// reached by a type assertion keyed on the registry index.
type iPool interface {
	Category() Category
	Contains(entity EntityID) bool
	// Size returns the number of distinct entities currently holding the kind.
	// It is always 0 for a Singleton kind, whose one value is not stored per
	// entity.
	Size() int
	// Entities returns each entity currently holding the kind exactly once,
	// in a deterministic (insertion-derived) order.
	Entities() []EntityID
	// Instances returns one entry per live slot in dense order: identical to
	// Entities for Single/Singleton/SingleFrame-without-Multiple kinds, but
	// repeats an entity once per stored instance for Multiple kinds.
	Instances() []EntityID
	// RemoveEntity releases every instance the entity holds of this kind and
	// reports whether anything was removed.
	RemoveEntity(entity EntityID) bool
	// ClearAll bulk-clears the pool: the SingleFrame fast path, also used by
	// World.DeleteAll.
	ClearAll()
	// Generation increases every time the pool's membership changes, used by
	// Filter to detect mutation of its driver pool mid-iteration.
	Generation() int
}

// Pool is the per-kind storage: a dense array of T plus the sparse
// bookkeeping needed to map entities to slots and back. Values live in the
// dense array itself rather than behind a parallel map, so iteration walks
// contiguous memory.
type Pool[T any] struct {
	category Category
	name     string

	dense    []T
	entityOf []EntityID
	live     []bool

	slotOf map[EntityID]int // Single/SingleFrame: entity -> slot. Multiple: entity -> head slot.
	free   []int            // Single only: free-slot stack.
	next   []int            // Multiple only: next[slot] = older slot of the same entity, or -1.

	entityOrder []EntityID // Multiple only: first-seen order of distinct entities.

	singletonVal T
	singletonSet bool

	liveEntities int
	generation   int
}

func newPool[T any](name string, category Category, capacity int) *Pool[T] {
	return &Pool[T]{
		category: category,
		name:     name,
		dense:    make([]T, 0, capacity),
		entityOf: make([]EntityID, 0, capacity),
		live:     make([]bool, 0, capacity),
		slotOf:   make(map[EntityID]int, capacity),
	}
}

func (p *Pool[T]) Category() Category { return p.category }
func (p *Pool[T]) Generation() int    { return p.generation }

func (p *Pool[T]) appendSlot(v T, e EntityID) int {
	slot := len(p.dense)
	p.dense = append(p.dense, v)
	p.entityOf = append(p.entityOf, e)
	p.live = append(p.live, true)
	if p.category.Has(CategoryMultiple) {
		p.next = append(p.next, -1)
	}
	return slot
}

func (p *Pool[T]) popFree() int {
	n := len(p.free) - 1
	slot := p.free[n]
	p.free = p.free[:n]
	return slot
}

// insertMultiple always appends a new instance; there is no "already
// present" check for Multiple kinds.
func (p *Pool[T]) insertMultiple(e EntityID, v T) {
	slot := p.appendSlot(v, e)
	if prevHead, ok := p.slotOf[e]; ok {
		p.next[slot] = prevHead
	} else {
		p.next[slot] = -1
		p.liveEntities++
		p.entityOrder = append(p.entityOrder, e)
	}
	p.slotOf[e] = slot
	p.generation++
}

// insertSingleLike handles Single, SingleFrame(non-Multiple), and honors the
// free-list for plain Single; SingleFrame never reuses a slot except via
// ClearAll.
func (p *Pool[T]) insertSingleLike(e EntityID, v T) error {
	if _, exists := p.slotOf[e]; exists {
		return wrapErr(ErrAlreadyPresent, p.name, e)
	}
	var slot int
	if !p.category.Has(CategorySingleFrame) && len(p.free) > 0 {
		slot = p.popFree()
		p.dense[slot] = v
		p.entityOf[slot] = e
		p.live[slot] = true
	} else {
		slot = p.appendSlot(v, e)
	}
	p.slotOf[e] = slot
	p.liveEntities++
	p.generation++
	return nil
}

// Insert allocates storage for entity e, failing AlreadyPresent for Single
// kinds already holding one. Singleton ignores the entity argument; Multiple
// always appends a new instance.
func (p *Pool[T]) Insert(e EntityID, v T) error {
	if p.category.Has(CategorySingleton) {
		p.singletonVal = v
		p.singletonSet = true
		p.generation++
		return nil
	}
	if p.category.Has(CategoryMultiple) {
		p.insertMultiple(e, v)
		return nil
	}
	return p.insertSingleLike(e, v)
}

// Overwrite requires presence and is undefined for Multiple kinds (there is
// no single slot to target); callers must not invoke it on a Multiple pool.
func (p *Pool[T]) Overwrite(e EntityID, v T) error {
	if p.category.Has(CategoryMultiple) {
		panic("ecs: Overwrite is not defined for a Multiple component kind")
	}
	if p.category.Has(CategorySingleton) {
		if !p.singletonSet {
			return wrapErr(ErrMissing, p.name, e)
		}
		p.singletonVal = v
		return nil
	}
	slot, ok := p.slotOf[e]
	if !ok {
		return wrapErr(ErrMissing, p.name, e)
	}
	p.dense[slot] = v
	return nil
}

// Upsert inserts if absent, overwrites if present. For Multiple it always
// appends a new instance, since there is no single "the" slot to overwrite.
func (p *Pool[T]) Upsert(e EntityID, v T) {
	if p.category.Has(CategoryMultiple) {
		p.insertMultiple(e, v)
		return
	}
	if p.category.Has(CategorySingleton) {
		p.singletonVal = v
		p.singletonSet = true
		p.generation++
		return
	}
	if slot, ok := p.slotOf[e]; ok {
		p.dense[slot] = v
		return
	}
	_ = p.insertSingleLike(e, v)
}

// Get returns the value and true if present. For Multiple it returns the
// most recently added instance; per-instance access goes through Filter
// iteration instead.
func (p *Pool[T]) Get(e EntityID) (T, bool) {
	var zero T
	if p.category.Has(CategorySingleton) {
		if !p.singletonSet {
			return zero, false
		}
		return p.singletonVal, true
	}
	slot, ok := p.slotOf[e]
	if !ok || !p.live[slot] {
		return zero, false
	}
	return p.dense[slot], true
}

// GetPtr returns a pointer to storage whose validity is bounded by the next
// mutation that could reuse the slot.
func (p *Pool[T]) GetPtr(e EntityID) *T {
	if p.category.Has(CategoryMultiple) {
		panic("ecs: GetPtr is not defined for a Multiple component kind")
	}
	if p.category.Has(CategorySingleton) {
		if !p.singletonSet {
			return nil
		}
		return &p.singletonVal
	}
	slot, ok := p.slotOf[e]
	if !ok {
		return nil
	}
	return &p.dense[slot]
}

// Remove releases every instance entity e holds of this kind. Idempotent:
// removing from an entity with none is a no-op and returns false.
func (p *Pool[T]) Remove(e EntityID) bool {
	var zero T
	if p.category.Has(CategorySingleton) {
		if !p.singletonSet {
			return false
		}
		p.singletonSet = false
		p.singletonVal = zero
		p.generation++
		return true
	}
	if p.category.Has(CategoryMultiple) {
		head, ok := p.slotOf[e]
		if !ok {
			return false
		}
		for slot := head; slot != -1; {
			p.live[slot] = false
			p.dense[slot] = zero
			nextSlot := p.next[slot]
			p.next[slot] = -1
			slot = nextSlot
		}
		delete(p.slotOf, e)
		p.liveEntities--
		p.generation++
		return true
	}
	slot, ok := p.slotOf[e]
	if !ok {
		return false
	}
	p.dense[slot] = zero
	p.live[slot] = false
	delete(p.slotOf, e)
	if !p.category.Has(CategorySingleFrame) {
		p.free = append(p.free, slot)
	}
	p.liveEntities--
	p.generation++
	return true
}

// RemoveInstance is the explicit single-instance-removal entry point: it
// behaves like Remove for non-Multiple kinds, and always fails with
// ErrMultipleNotRemovable for Multiple kinds, since a single instance among
// several cannot be targeted without an addressing scheme the core does not
// expose.
func (p *Pool[T]) RemoveInstance(e EntityID) error {
	if p.category.Has(CategoryMultiple) {
		return wrapErr(ErrMultipleNotRemovable, p.name, e)
	}
	if !p.Remove(e) {
		return wrapErr(ErrMissing, p.name, e)
	}
	return nil
}

func (p *Pool[T]) Contains(e EntityID) bool {
	if p.category.Has(CategorySingleton) {
		return p.singletonSet
	}
	_, ok := p.slotOf[e]
	return ok
}

func (p *Pool[T]) Size() int { return p.liveEntities }

// forEachLiveSlot visits live slots in dense order.
func (p *Pool[T]) forEachLiveSlot(fn func(slot int, e EntityID)) {
	for slot, alive := range p.live {
		if alive {
			fn(slot, p.entityOf[slot])
		}
	}
}

func (p *Pool[T]) Entities() []EntityID {
	if p.category.Has(CategorySingleton) {
		return nil
	}
	if p.category.Has(CategoryMultiple) {
		out := make([]EntityID, 0, p.liveEntities)
		seen := make(map[EntityID]bool, p.liveEntities)
		for _, e := range p.entityOrder {
			if _, ok := p.slotOf[e]; ok && !seen[e] {
				seen[e] = true
				out = append(out, e)
			}
		}
		return out
	}
	out := make([]EntityID, 0, p.liveEntities)
	p.forEachLiveSlot(func(_ int, e EntityID) { out = append(out, e) })
	return out
}

func (p *Pool[T]) Instances() []EntityID {
	if p.category.Has(CategorySingleton) {
		return nil
	}
	out := make([]EntityID, 0, len(p.dense))
	p.forEachLiveSlot(func(_ int, e EntityID) { out = append(out, e) })
	return out
}

func (p *Pool[T]) RemoveEntity(e EntityID) bool { return p.Remove(e) }

// ClearAll truncates the pool entirely: the SingleFrame fast path, and also
// used by World.DeleteAll for every category.
func (p *Pool[T]) ClearAll() {
	p.dense = p.dense[:0]
	p.entityOf = p.entityOf[:0]
	p.live = p.live[:0]
	p.next = p.next[:0]
	p.free = p.free[:0]
	p.entityOrder = p.entityOrder[:0]
	p.slotOf = make(map[EntityID]int)
	var zero T
	p.singletonVal = zero
	p.singletonSet = false
	p.liveEntities = 0
	p.generation++
}
