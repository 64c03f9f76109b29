package ecs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Registry_RegisterAssignsDenseIndices(t *testing.T) {
	// Arrange
	r := NewRegistry()

	// Act
	k1, err := Register[comp1](r, CategorySingle, true)
	require.NoError(t, err)
	k2, err := Register[comp2](r, CategorySingle, true)
	require.NoError(t, err)

	// Assert
	assert.Equal(t, 0, k1.Index())
	assert.Equal(t, 1, k2.Index())
	assert.Equal(t, 2, r.Len())
}

func Test_Registry_RegisterSameTypeTwiceIsIdempotent(t *testing.T) {
	// Arrange
	r := NewRegistry()
	k1, err := Register[comp1](r, CategorySingle, true)
	require.NoError(t, err)

	// Act
	k2, err := Register[comp1](r, CategorySingle, true)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, k1.Index(), k2.Index())
	assert.Equal(t, 1, r.Len())
}

func Test_Registry_RegisterSameTypeDifferentCategoryFails(t *testing.T) {
	// Arrange
	r := NewRegistry()
	_, err := Register[comp1](r, CategorySingle, true)
	require.NoError(t, err)

	// Act
	_, err = Register[comp1](r, CategoryMultiple, true)

	// Assert
	assert.Error(t, err)
}

func Test_Registry_SingletonCannotCombineWithSingleFrame(t *testing.T) {
	// Arrange
	r := NewRegistry()

	// Act
	_, err := Register[comp1](r, CategorySingleton|CategorySingleFrame, true)

	// Assert
	assert.Error(t, err)
}

func Test_Registry_DefaultShapeIsSingle(t *testing.T) {
	// Arrange
	r := NewRegistry()

	// Act
	_, err := Register[comp1](r, 0, true)
	require.NoError(t, err)
	w := NewWorld(r, DefaultWorldConfig())

	// Assert: behaves like a Single kind, AlreadyPresent on double add.
	k, _ := Register[comp1](r, 0, true)
	e := w.NewEntity()
	require.NoError(t, Add(e, k, comp1{}))
	assert.ErrorIs(t, Add(e, k, comp1{}), ErrAlreadyPresent)
}
