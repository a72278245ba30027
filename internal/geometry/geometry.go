// Package geometry implements component A of the physics core: signed
// distance, projection, unit normal and bounded-half-space membership for
// collision planes. Grounded on the CollisionPlane/CollisionPlaneBoundary
// contract described by spec.md §3–§4.A and exercised by
// original_source/PhysicsOld/src/worlds/world1.py and world2.py.
package geometry

import "github.com/kieda/ForcePhysicsSimulator/internal/vector"

// Boundary is a half-space on a plane: a point p is inside the boundary
// iff u·(p-q) - b <= 0. A particle sliding on the plane leaves through
// this boundary when equality is reached from below (spec.md §3).
type Boundary struct {
	Anchor    vector.Vector // q
	Direction vector.Vector // u, unit, in-plane
	Offset    float64       // b
}

// NewBoundary constructs a Boundary. Direction is expected to already be
// a unit vector lying in the owning plane; callers (worldbuild) are
// responsible for that normalization.
func NewBoundary(anchor, direction vector.Vector, offset float64) Boundary {
	return Boundary{Anchor: anchor, Direction: direction, Offset: offset}
}

// signedValue returns u·(p-q) - b; the boundary is satisfied when this is
// <= 0.
func (b Boundary) signedValue(p vector.Vector) float64 {
	return b.Direction.Dot(p.Sub(b.Anchor)) - b.Offset
}

// Inside reports whether p satisfies this boundary.
func (b Boundary) Inside(p vector.Vector) bool {
	return b.signedValue(p) <= 0
}

// Plane is an oriented collision surface: unit normal, scalar offset,
// coefficient of friction, and an ordered list of boundary half-spaces
// that bound its extent (spec.md §3). Planes are owned by the World's
// plane pool; particles hold borrowed *Plane references to them (spec.md
// §9, "Manifold set as owning reference-collection").
type Plane struct {
	Normal     vector.Vector
	Offset     float64
	Friction   float64
	Boundaries []Boundary
}

// NewPlane constructs a Plane. Normal is expected to already be a unit
// vector; its length is not checked here or by World.AddCollisionPlane.
func NewPlane(normal vector.Vector, offset, friction float64) *Plane {
	return &Plane{Normal: normal, Offset: offset, Friction: friction}
}

// AddBoundary appends a boundary half-space constraining this plane's
// extent, in the order boundary-crossing detection should consider them.
func (p *Plane) AddBoundary(b Boundary) {
	p.Boundaries = append(p.Boundaries, b)
}

// Distance returns the signed distance n·p - d from point p to the
// plane.
func (p *Plane) Distance(point vector.Vector) float64 {
	return p.Normal.Dot(point) - p.Offset
}

// ProjectOnto returns the orthogonal projection of point onto the plane:
// p - distance(p)*n.
func (p *Plane) ProjectOnto(point vector.Vector) vector.Vector {
	return point.Sub(p.Normal.Scale(p.Distance(point)))
}

// OnPlane reports whether point is within collisionEpsilon of the plane
// and satisfies every one of its boundaries — the definition of a valid
// contact surface at that point (spec.md §3, §4.A).
func (p *Plane) OnPlane(point vector.Vector, collisionEpsilon float64) bool {
	if abs(p.Distance(point)) >= collisionEpsilon {
		return false
	}
	for _, b := range p.Boundaries {
		if !b.Inside(point) {
			return false
		}
	}
	return true
}

// CoefficientOfFriction returns this plane's coefficient of friction μ.
func (p *Plane) CoefficientOfFriction() float64 {
	return p.Friction
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
