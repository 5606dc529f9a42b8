// Package sphere computes the layout of the decorative avatar sphere:
// avatars distributed on a sphere surface, rotated by the user's drag and
// projected to screen space with depth-based scale and opacity.
package sphere

import (
	"math"
	"sort"
)

// avatarHalf is half the rendered avatar size; placement is centered.
const avatarHalf = 24

// Node is one projected avatar position.
type Node struct {
	Index   int     `json:"index"`
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	Z       float64 `json:"z"`
	Left    float64 `json:"left"`
	Top     float64 `json:"top"`
	Scale   float64 `json:"scale"`
	Opacity float64 `json:"opacity"`
}

// Project distributes count points over a sphere sized to the given
// square viewport, applies the Y-then-X rotation and projects to screen
// coordinates. Nodes come back painter-ordered, deepest first, so they
// can be drawn back to front.
func Project(count int, rotX, rotY, size float64) []Node {
	if count <= 0 || size <= 0 {
		return nil
	}

	radius := size * 0.35
	center := size / 2

	nodes := make([]Node, count)
	for i := 0; i < count; i++ {
		// Offset spherical spiral: even coverage without clustering at
		// the poles.
		theta := math.Acos(1 - (2*float64(i+1))/float64(count))
		phi := math.Sqrt(float64(count)*math.Pi) * theta

		x := radius * math.Sin(theta) * math.Cos(phi)
		y := radius * math.Cos(theta)
		z := radius * math.Sin(theta) * math.Sin(phi)

		cosY, sinY := math.Cos(rotY), math.Sin(rotY)
		x1 := x*cosY - z*sinY
		z1 := x*sinY + z*cosY

		cosX, sinX := math.Cos(rotX), math.Sin(rotX)
		y2 := y*cosX - z1*sinX
		z2 := y*sinX + z1*cosX

		depth := (z2 + radius) / (2 * radius)

		nodes[i] = Node{
			Index:   i,
			X:       x1,
			Y:       y2,
			Z:       z2,
			Left:    center + x1 - avatarHalf,
			Top:     center + y2 - avatarHalf,
			Scale:   0.6 + depth*0.6,
			Opacity: 0.4 + depth*0.6,
		}
	}

	sort.SliceStable(nodes, func(i, j int) bool { return nodes[i].Z < nodes[j].Z })
	return nodes
}

// FocusRotation returns the rotation that brings the given node to the
// front of the sphere.
func FocusRotation(n Node, rotX, rotY float64) (newRotX, newRotY float64) {
	newRotY = rotY + math.Atan2(n.X, n.Z)
	newRotX = rotX - math.Atan2(n.Y, n.Z)
	return newRotX, newRotY
}
