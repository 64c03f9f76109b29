package ecs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingSystem records the order in which its hooks run, across a shared
// trace slice with sibling systems, to assert group ordering contracts.
type recordingSystem struct {
	name   string
	trace  *[]string
	active bool
}

func (s *recordingSystem) Init(*World) error {
	*s.trace = append(*s.trace, s.name+":init")
	return nil
}
func (s *recordingSystem) Execute(*World) error {
	*s.trace = append(*s.trace, s.name+":execute")
	return nil
}
func (s *recordingSystem) Teardown() error {
	*s.trace = append(*s.trace, s.name+":teardown")
	return nil
}
func (s *recordingSystem) Active() bool { return s.active }

func Test_SystemsGroup_LifecycleOrder(t *testing.T) {
	// Arrange
	w := NewWorld(NewRegistry(), DefaultWorldConfig())
	var trace []string
	a := &recordingSystem{name: "a", trace: &trace, active: true}
	b := &recordingSystem{name: "b", trace: &trace, active: true}
	g := NewSystemsGroup()
	g.Add(a)
	g.Add(b)

	// Act
	require.NoError(t, g.Init(w))
	require.NoError(t, g.Execute(w))
	require.NoError(t, g.Teardown())

	// Assert: declaration order for init/execute, reverse for teardown.
	assert.Equal(t, []string{
		"a:init", "b:init",
		"a:execute", "b:execute",
		"b:teardown", "a:teardown",
	}, trace)
}

func Test_SystemsGroup_InactiveSystemSkipsExecute(t *testing.T) {
	// Arrange
	w := NewWorld(NewRegistry(), DefaultWorldConfig())
	var trace []string
	a := &recordingSystem{name: "a", trace: &trace, active: false}
	g := NewSystemsGroup()
	g.Add(a)
	require.NoError(t, g.Init(w))

	// Act
	require.NoError(t, g.Execute(w))

	// Assert
	assert.Equal(t, []string{"a:init"}, trace)
}

// filterSystem caches a Filter via Filterer and records which entities
// Process saw, asserting process-precedes-execute ordering.
type filterSystem struct {
	kind  Kind[comp1]
	trace *[]string
	seen  []EntityID
}

func (s *filterSystem) Init(*World) error     { return nil }
func (s *filterSystem) Execute(*World) error  { *s.trace = append(*s.trace, "execute"); return nil }
func (s *filterSystem) Teardown() error       { return nil }
func (s *filterSystem) Filter(w *World) Filter { return w.NewFilter().Of(s.kind.Index()) }
func (s *filterSystem) Process(e Entity) error {
	*s.trace = append(*s.trace, "process")
	s.seen = append(s.seen, e.ID())
	return nil
}

func Test_SystemsGroup_ProcessPrecedesExecute(t *testing.T) {
	// Arrange
	r := NewRegistry()
	k, err := Register[comp1](r, CategorySingle, true)
	require.NoError(t, err)
	w := NewWorld(r, DefaultWorldConfig())
	e := w.NewEntity()
	require.NoError(t, Add(e, k, comp1{}))

	var trace []string
	sys := &filterSystem{kind: k, trace: &trace}
	g := NewSystemsGroup()
	g.Add(sys)
	require.NoError(t, g.Init(w))

	// Act
	require.NoError(t, g.Execute(w))

	// Assert
	assert.Equal(t, []string{"process", "execute"}, trace)
	assert.Equal(t, []EntityID{e.ID()}, sys.seen)
}

func Test_SystemsGroup_NestedGroupsRecurse(t *testing.T) {
	// Arrange
	w := NewWorld(NewRegistry(), DefaultWorldConfig())
	var trace []string
	inner := NewSystemsGroup()
	inner.Add(&recordingSystem{name: "inner", trace: &trace, active: true})
	outer := NewSystemsGroup()
	outer.Add(&recordingSystem{name: "outer", trace: &trace, active: true})
	outer.AddGroup(inner)

	// Act
	require.NoError(t, outer.Init(w))
	require.NoError(t, outer.Execute(w))

	// Assert
	assert.Equal(t, []string{
		"outer:init", "inner:init",
		"outer:execute", "inner:execute",
	}, trace)
}

// noopSystem is a minimal System used where only Add-time checker behavior
// matters, not lifecycle tracing.
type noopSystem struct{}

func (noopSystem) Init(*World) error    { return nil }
func (noopSystem) Execute(*World) error { return nil }
func (noopSystem) Teardown() error      { return nil }

func Test_SingleFrameChecker_MissingCleanupFailsAdd(t *testing.T) {
	// Arrange
	r := NewRegistry()
	k, err := Register[int](r, CategorySingleFrame, true)
	require.NoError(t, err)
	w := NewWorld(r, DefaultWorldConfig())
	g := NewSystemsGroup()
	g.Add(noopSystem{})
	require.NoError(t, g.Init(w))

	// Act
	e := w.NewEntity()
	err = Add(e, k, 1)

	// Assert
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMissingCleanup)
}

func Test_SingleFrameChecker_RemoveSingleFrameSatisfiesCheck(t *testing.T) {
	// Arrange
	r := NewRegistry()
	k, err := Register[int](r, CategorySingleFrame, true)
	require.NoError(t, err)
	w := NewWorld(r, DefaultWorldConfig())
	g := NewSystemsGroup()
	RemoveSingleFrame(g, w, k)
	require.NoError(t, g.Init(w))

	e := w.NewEntity()

	// Act
	err = Add(e, k, 1)
	require.NoError(t, err)
	require.NoError(t, g.Execute(w))

	// Assert: after one Execute, the bulk-remove system has cleared it.
	assert.False(t, ComponentExists(w, k))
}

func Test_SingleFrameChecker_CheckFalseSkipsEnforcement(t *testing.T) {
	// Arrange
	r := NewRegistry()
	k, err := Register[int](r, CategorySingleFrame, false)
	require.NoError(t, err)
	w := NewWorld(r, DefaultWorldConfig())
	g := NewSystemsGroup()
	g.Add(noopSystem{})
	require.NoError(t, g.Init(w))

	// Act
	e := w.NewEntity()
	err = Add(e, k, 1)

	// Assert: no bulk-remove system exists, but check=false so no failure.
	require.NoError(t, err)
}
