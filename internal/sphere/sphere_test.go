package sphere

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProjectReturnsCountNodes(t *testing.T) {
	nodes := Project(15, 0, 0, 390)
	require.Len(t, nodes, 15)

	seen := make(map[int]bool)
	for _, n := range nodes {
		seen[n.Index] = true
	}
	assert.Len(t, seen, 15, "every avatar index appears exactly once")
}

func TestProjectPainterOrder(t *testing.T) {
	nodes := Project(20, 0.3, -0.7, 390)
	for i := 1; i < len(nodes); i++ {
		assert.LessOrEqual(t, nodes[i-1].Z, nodes[i].Z, "nodes must be ordered back to front")
	}
}

func TestProjectDepthBounds(t *testing.T) {
	nodes := Project(30, 1.2, 2.4, 390)
	for _, n := range nodes {
		assert.GreaterOrEqual(t, n.Scale, 0.6-1e-9)
		assert.LessOrEqual(t, n.Scale, 1.2+1e-9)
		assert.GreaterOrEqual(t, n.Opacity, 0.4-1e-9)
		assert.LessOrEqual(t, n.Opacity, 1.0+1e-9)
	}
}

func TestProjectSingleNode(t *testing.T) {
	// One avatar lands at the sphere's south pole: acos(-1) puts it on
	// the rotation axis, so it projects to the horizontal center at
	// middle depth.
	nodes := Project(1, 0, 0, 400)
	require.Len(t, nodes, 1)

	n := nodes[0]
	radius := 400 * 0.35
	assert.InDelta(t, 0, n.X, 1e-9)
	assert.InDelta(t, -radius, n.Y, 1e-9)
	assert.InDelta(t, 0, n.Z, 1e-9)
	assert.InDelta(t, 0.9, n.Scale, 1e-9)
	assert.InDelta(t, 0.7, n.Opacity, 1e-9)
	assert.InDelta(t, 200-24, n.Left, 1e-9)
}

func TestProjectIsDeterministic(t *testing.T) {
	a := Project(12, 0.5, 1.1, 390)
	b := Project(12, 0.5, 1.1, 390)
	assert.Equal(t, a, b)
}

func TestProjectRotationMovesNodes(t *testing.T) {
	a := Project(12, 0, 0, 390)
	b := Project(12, 0, math.Pi/3, 390)
	assert.NotEqual(t, a, b)
}

func TestProjectInvalidInput(t *testing.T) {
	assert.Nil(t, Project(0, 0, 0, 390))
	assert.Nil(t, Project(10, 0, 0, 0))
}

func TestFocusRotationCentersNode(t *testing.T) {
	n := Node{X: 100, Y: 0, Z: 50}

	rotX, rotY := FocusRotation(n, 0, 0)
	assert.InDelta(t, math.Atan2(100, 50), rotY, 1e-9)
	assert.InDelta(t, 0, rotX, 1e-9)

	// A node already at the front needs no rotation.
	front := Node{X: 0, Y: 0, Z: 120}
	rotX, rotY = FocusRotation(front, 0.4, -0.2)
	assert.InDelta(t, 0.4, rotX, 1e-9)
	assert.InDelta(t, -0.2, rotY, 1e-9)
}
