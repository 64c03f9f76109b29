package ecs

// System is the minimal lifecycle every system implements: Init runs once,
// Execute runs once per frame, Teardown runs once at shutdown. Filtering and
// per-entity processing are optional capabilities expressed as separate
// interfaces below, so a system implements only what it needs rather than
// one bloated interface in full.
type System interface {
	Init(w *World) error
	Execute(w *World) error
	Teardown() error
}

// Filterer is implemented by systems that bind a Filter at Init time. The
// filter is cached once and reused by every subsequent Execute.
type Filterer interface {
	Filter(w *World) Filter
}

// Processor is implemented by systems that want per-entity callbacks over
// their cached filter, run before Execute each frame.
type Processor interface {
	Process(e Entity) error
}

// Activatable is implemented by systems that support runtime gating; a
// system without this capability is always considered active.
type Activatable interface {
	Active() bool
}

type clearsSingleFrame interface {
	singleFrameKindIndex() int
}

// groupMember is the internal seam a SystemsGroup's member list is built
// from: both a wrapped System and a nested *SystemsGroup satisfy it, which
// is how Init/Execute/Teardown recurse without a type switch at every level.
type groupMember interface {
	groupInit(w *World) error
	groupExecute(w *World) error
	groupTeardown() error
	collectClearedKinds(out map[int]bool)
}

type systemEntry struct {
	sys        System
	hasFilter  bool
	cachedFilt Filter
}

func (se *systemEntry) groupInit(w *World) error {
	if err := se.sys.Init(w); err != nil {
		return err
	}
	if f, ok := se.sys.(Filterer); ok {
		se.cachedFilt = f.Filter(w)
		se.hasFilter = true
	}
	return nil
}

func (se *systemEntry) groupExecute(w *World) error {
	if a, ok := se.sys.(Activatable); ok && !a.Active() {
		return nil
	}
	if se.hasFilter {
		if proc, ok := se.sys.(Processor); ok {
			var procErr error
			err := se.cachedFilt.Each(func(e Entity) bool {
				if procErr = proc.Process(e); procErr != nil {
					return false
				}
				return true
			})
			if procErr != nil {
				return procErr
			}
			if err != nil {
				return err
			}
		}
	}
	return se.sys.Execute(w)
}

func (se *systemEntry) groupTeardown() error { return se.sys.Teardown() }

func (se *systemEntry) collectClearedKinds(out map[int]bool) {
	if c, ok := se.sys.(clearsSingleFrame); ok {
		out[c.singleFrameKindIndex()] = true
	}
}

// SystemsGroup owns an ordered list of member units, each a System or
// another SystemsGroup, executed strictly in declaration order with no
// parallelism.
type SystemsGroup struct {
	members []groupMember
}

// NewSystemsGroup returns an empty group ready for Add/AddGroup.
func NewSystemsGroup() *SystemsGroup {
	return &SystemsGroup{}
}

// Add appends a System to the group, in declaration order.
func (g *SystemsGroup) Add(s System) *SystemsGroup {
	g.members = append(g.members, &systemEntry{sys: s})
	return g
}

// AddGroup appends a nested SystemsGroup as a member.
func (g *SystemsGroup) AddGroup(sub *SystemsGroup) *SystemsGroup {
	g.members = append(g.members, sub)
	return g
}

func (g *SystemsGroup) initMembers(w *World) error {
	for _, m := range g.members {
		if err := m.groupInit(w); err != nil {
			return err
		}
	}
	return nil
}

func (g *SystemsGroup) executeMembers(w *World) error {
	for _, m := range g.members {
		if err := m.groupExecute(w); err != nil {
			return err
		}
	}
	return nil
}

func (g *SystemsGroup) teardownMembers() error {
	for i := len(g.members) - 1; i >= 0; i-- {
		if err := g.members[i].groupTeardown(); err != nil {
			return err
		}
	}
	return nil
}

func (g *SystemsGroup) collectClearedKinds(out map[int]bool) {
	for _, m := range g.members {
		m.collectClearedKinds(out)
	}
}

// groupInit/groupExecute/groupTeardown let a nested SystemsGroup satisfy
// groupMember without re-running the single-frame checker (only Init, called
// on the top-level group, does that).
func (g *SystemsGroup) groupInit(w *World) error    { return g.initMembers(w) }
func (g *SystemsGroup) groupExecute(w *World) error { return g.executeMembers(w) }
func (g *SystemsGroup) groupTeardown() error        { return g.teardownMembers() }

// Init runs every member's Init in declaration order, caching each member's
// filter, then, since this is the top-level call, runs the single-frame
// checker: it collects every bulk-remove system's cleared kind across the
// whole transitive member list and records it on the world, so subsequent
// Add calls for checked SingleFrame kinds succeed.
func (g *SystemsGroup) Init(w *World) error {
	if err := g.initMembers(w); err != nil {
		return err
	}
	cleared := make(map[int]bool)
	g.collectClearedKinds(cleared)
	w.clearedSingleFrame = cleared
	return nil
}

// Execute runs every member's cached-filter process pass then its Execute,
// in declaration order, skipping inactive members.
func (g *SystemsGroup) Execute(w *World) error { return g.executeMembers(w) }

// Teardown runs every member's Teardown in reverse declaration order.
func (g *SystemsGroup) Teardown() error { return g.teardownMembers() }

// bulkRemoveSystem is the built-in system RemoveSingleFrame expands to: its
// Execute clears the named kind's pool every frame.
type bulkRemoveSystem struct {
	kindIndex int
	clear     func()
}

func (b *bulkRemoveSystem) Init(*World) error         { return nil }
func (b *bulkRemoveSystem) Execute(*World) error      { b.clear(); return nil }
func (b *bulkRemoveSystem) Teardown() error           { return nil }
func (b *bulkRemoveSystem) singleFrameKindIndex() int { return b.kindIndex }

// RemoveSingleFrame is sugar that appends a built-in bulk-remove system for
// kind k to the group: each Execute clears every stored instance of k.
func RemoveSingleFrame[T any](g *SystemsGroup, w *World, k Kind[T]) *SystemsGroup {
	pool := poolFor(w, k)
	return g.Add(&bulkRemoveSystem{kindIndex: k.index, clear: pool.ClearAll})
}
