package ecs

// World owns the entity-id counter, the vector of pools indexed by registry
// kind index, and the bookkeeping the single-frame checker consults. It is
// constructed once from a closed Registry; registering a new kind after
// NewWorld is not supported.
type World struct {
	registry *Registry
	config   WorldConfig

	pools  []iPool
	nextID EntityID

	// clearedSingleFrame maps a registry kind index to true once a
	// bulk-remove system is known to clear it, populated by the top-level
	// SystemsGroup's Init. It starts empty: a SingleFrame+check kind is
	// unclearable until some group's Init says otherwise.
	clearedSingleFrame map[int]bool
}

// NewWorld allocates one pool per registered kind and returns a ready world.
func NewWorld(registry *Registry, config WorldConfig) *World {
	pools := make([]iPool, registry.Len())
	for i, m := range registry.metas {
		pools[i] = m.newPool(config.InitialPoolCapacity)
	}
	return &World{
		registry:           registry,
		config:             config,
		pools:              pools,
		clearedSingleFrame: make(map[int]bool),
	}
}

// Registry returns the registry this world was built from.
func (w *World) Registry() *Registry { return w.registry }

// Config returns the WorldConfig this world was built with.
func (w *World) Config() WorldConfig { return w.config }

// NewEntity allocates the next strictly increasing id and returns a handle.
func (w *World) NewEntity() Entity {
	id := w.nextID
	w.nextID++
	return Entity{world: w, id: id}
}

// EachEntity visits every id the world has ever allocated, in allocation
// order, stopping early if visitor returns false. Entities are never marked
// dead, so every allocated id is visited regardless of whether it currently
// holds any component.
func (w *World) EachEntity(visitor func(Entity) bool) {
	for i := EntityID(0); i < w.nextID; i++ {
		if !visitor(Entity{world: w, id: i}) {
			return
		}
	}
}

// DeleteAll removes every component from every entity in every pool.
// Identifiers continue to advance: the entity counter is not reset, so
// DeleteAll stays monotonic.
func (w *World) DeleteAll() {
	for _, p := range w.pools {
		p.ClearAll()
	}
}

// ComponentExists reports whether any entity currently holds kind k, reading
// the pool's live-entity count in O(1) rather than keeping a separate
// refcounted presence index, since the pool already maintains that count. A
// Singleton kind has no per-entity count: it exists once its value is set.
func ComponentExists[T any](w *World, k Kind[T]) bool {
	p := w.pools[k.index]
	if p.Category().Has(CategorySingleton) {
		return p.Contains(0)
	}
	return p.Size() > 0
}

// ClearSingleFrame bulk-clears every registered SingleFrame kind's pool,
// the direct alternative to scheduling bulk-remove systems in a group.
func (w *World) ClearSingleFrame() {
	for i, m := range w.registry.metas {
		if m.category.Has(CategorySingleFrame) {
			w.pools[i].ClearAll()
		}
	}
}

// NewFilter returns an empty Filter bound to this world, ready for chaining.
func (w *World) NewFilter() Filter {
	return Filter{world: w, multipleKind: -1}
}
