// Package worldbuild provides small scenario-construction helpers used
// by tests and cmd/simulate — never by the core packages. Grounded on
// original_source/PhysicsOld/src/worlds/world1.py and world2.py, which
// assemble worlds by hand out of a gravity vector, one or more
// CollisionPlanes and (for the ledge/cliff scenario) boundary-bounded
// segments.
package worldbuild

import (
	"github.com/kieda/ForcePhysicsSimulator/internal/config"
	"github.com/kieda/ForcePhysicsSimulator/internal/geometry"
	"github.com/kieda/ForcePhysicsSimulator/internal/vector"
	"github.com/kieda/ForcePhysicsSimulator/internal/world"
)

// ConstantForce is a world.ForceProvider returning the same force for
// every particle and every phase: gravity plus a fixed applied force,
// the shape frictionTest.py's scenarios and spec.md §8's table both
// use.
type ConstantForce struct {
	Gravity vector.Vector
	Applied vector.Vector
}

// GetForce implements world.ForceProvider.
func (c ConstantForce) GetForce(forceInfo any, phase, particleIndex int) vector.Vector {
	return c.Gravity.Add(c.Applied)
}

// NewFlatWorld builds a world1.py-style scenario: a single unbounded
// horizontal collision plane at height offset. No particle is added;
// callers add their own with World.AddParticle.
func NewFlatWorld(cfg *config.Config, offset, mu float64) *world.World {
	w := world.NewWorld(cfg)
	plane := geometry.NewPlane(vector.New(0, 1, 0), offset, mu)
	w.AddCollisionPlane(plane)
	return w
}

// MakeSegment2D adds a boundary to plane restricting it to the
// half-space û·(p-anchor) <= offset, where û is u normalized, the
// building block world2.py uses to carve a plane into a bounded ledge.
// u need not be pre-normalized.
func MakeSegment2D(plane *geometry.Plane, anchor, u vector.Vector, offset float64) {
	direction := u.Normalize()
	plane.AddBoundary(geometry.NewBoundary(anchor, direction, offset))
}

// AddLedgeWithCliff reproduces world2.py's three-plane ledge-and-cliff
// arrangement: a horizontal plane bounded to x <= cliffX, a vertical
// "cliff face" plane bounded to y <= ledgeY closing the gap underneath
// it, and an unbounded far wall. All planes share mu and are appended to
// w in that order.
func AddLedgeWithCliff(w *world.World, ledgeY, cliffX, farWallX, mu float64) {
	ledge := geometry.NewPlane(vector.New(0, 1, 0), ledgeY, mu)
	MakeSegment2D(ledge, vector.New(cliffX, ledgeY, 0), vector.New(1, 0, 0), 0)
	w.AddCollisionPlane(ledge)

	cliffFace := geometry.NewPlane(vector.New(1, 0, 0), cliffX, mu)
	MakeSegment2D(cliffFace, vector.New(cliffX, ledgeY, 0), vector.New(0, 1, 0), 0)
	w.AddCollisionPlane(cliffFace)

	farWall := geometry.NewPlane(vector.New(-1, 0, 0), -farWallX, mu)
	w.AddCollisionPlane(farWall)
}
