package ecs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_World_ComponentExists(t *testing.T) {
	// Arrange
	r, k := newTestRegistry(t)
	w := NewWorld(r, DefaultWorldConfig())
	e := w.NewEntity()

	// Assert: nothing added yet.
	assert.False(t, ComponentExists(w, k))

	// Act
	require.NoError(t, Add(e, k, position{1, 1}))

	// Assert
	assert.True(t, ComponentExists(w, k))

	// Act: removing the only holder should flip it back.
	Remove(e, k)

	// Assert
	assert.False(t, ComponentExists(w, k))
}

func Test_World_DeleteAllKeepsCounterMonotonic(t *testing.T) {
	// Arrange
	r, k := newTestRegistry(t)
	w := NewWorld(r, DefaultWorldConfig())
	e1 := w.NewEntity()
	require.NoError(t, Add(e1, k, position{1, 1}))

	// Act
	w.DeleteAll()
	e2 := w.NewEntity()

	// Assert: DeleteAll does not reset the entity counter.
	assert.False(t, Has(e1, k))
	assert.Equal(t, EntityID(1), e2.ID())
}

func Test_World_EachEntityVisitsAllocationOrder(t *testing.T) {
	// Arrange
	w := NewWorld(NewRegistry(), DefaultWorldConfig())
	w.NewEntity()
	w.NewEntity()
	w.NewEntity()

	// Act
	var seen []EntityID
	w.EachEntity(func(e Entity) bool {
		seen = append(seen, e.ID())
		return true
	})

	// Assert
	assert.Equal(t, []EntityID{0, 1, 2}, seen)
}

func Test_World_EachEntityStopsEarly(t *testing.T) {
	// Arrange
	w := NewWorld(NewRegistry(), DefaultWorldConfig())
	w.NewEntity()
	w.NewEntity()
	w.NewEntity()

	// Act
	count := 0
	w.EachEntity(func(e Entity) bool {
		count++
		return e.ID() < 1
	})

	// Assert
	assert.Equal(t, 2, count)
}

func Test_World_ClearSingleFrameOnlyClearsSingleFrameKinds(t *testing.T) {
	// Arrange
	r := NewRegistry()
	sfK, err := Register[int](r, CategorySingleFrame, false)
	require.NoError(t, err)
	normalK, err := Register[position](r, CategorySingle, true)
	require.NoError(t, err)
	w := NewWorld(r, DefaultWorldConfig())
	e := w.NewEntity()
	require.NoError(t, Add(e, sfK, 1))
	require.NoError(t, Add(e, normalK, position{1, 1}))

	// Act
	w.ClearSingleFrame()

	// Assert
	assert.False(t, Has(e, sfK))
	assert.True(t, Has(e, normalK))
}
