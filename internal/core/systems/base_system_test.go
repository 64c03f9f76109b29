package systems

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"emberecs/internal/core/ecs"
)

func Test_BaseSystem_StartsActiveAndCountsExecutions(t *testing.T) {
	// Arrange
	b := NewBaseSystem("test")

	// Assert initial state
	assert.True(t, b.Active())
	assert.Equal(t, int64(0), b.ExecutionCount())

	// Act
	require := func(err error) {
		if err != nil {
			t.Fatal(err)
		}
	}
	require(b.Execute(nil))
	require(b.Execute(nil))

	// Assert
	assert.Equal(t, int64(2), b.ExecutionCount())
}

func Test_BaseSystem_SetActiveTogglesGating(t *testing.T) {
	// Arrange
	b := NewBaseSystem("test")

	// Act
	b.SetActive(false)

	// Assert
	assert.False(t, b.Active())
}

func Test_Rectangle_Contains(t *testing.T) {
	// Arrange
	r := Rectangle{X: 0, Y: 0, Width: 10, Height: 10}

	// Act & Assert
	assert.True(t, r.Contains(ecs.Vector2{X: 5, Y: 5}))
	assert.False(t, r.Contains(ecs.Vector2{X: 15, Y: 5}))
}
