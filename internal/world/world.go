// Package world holds the data model of spec.md §3 and the external
// surface of §6: World (dimension, gravity, plane pool, particles,
// tolerances), Particle (position/velocity/start/goal state and its
// manifold set) and the ForceProvider contract the core treats as an
// opaque external collaborator. Grounded on
// original_source/PhysicsOld/src/worlds/world1.py (world assembly) and
// PhysicsNew/src/world/worldObject.py (the object/collision-set shape).
package world

import (
	"github.com/kieda/ForcePhysicsSimulator/internal/config"
	"github.com/kieda/ForcePhysicsSimulator/internal/geometry"
	"github.com/kieda/ForcePhysicsSimulator/internal/vector"
)

// ManifoldSet is an insertion-ordered collection of the collision planes
// a particle currently rests or slides on. Planes are borrowed
// references into the World's plane pool (spec.md §9, "Manifold set as
// owning reference-collection" — planes outlive the particles that
// reference them; the set never owns a plane's lifetime).
type ManifoldSet struct {
	planes []*geometry.Plane
}

// NewManifoldSet returns an empty manifold set.
func NewManifoldSet() *ManifoldSet {
	return &ManifoldSet{}
}

// Contains reports whether p is a member of the set.
func (m *ManifoldSet) Contains(p *geometry.Plane) bool {
	for _, existing := range m.planes {
		if existing == p {
			return true
		}
	}
	return false
}

// Add inserts p at the end of the set if it is not already present.
func (m *ManifoldSet) Add(p *geometry.Plane) {
	if m.Contains(p) {
		return
	}
	m.planes = append(m.planes, p)
}

// Remove deletes p from the set, preserving the relative order of the
// remaining planes.
func (m *ManifoldSet) Remove(p *geometry.Plane) {
	for i, existing := range m.planes {
		if existing == p {
			m.planes = append(m.planes[:i], m.planes[i+1:]...)
			return
		}
	}
}

// Planes returns the set's members in insertion order. Callers must not
// mutate the returned slice.
func (m *ManifoldSet) Planes() []*geometry.Plane {
	return m.planes
}

// Len returns the number of planes currently in the set.
func (m *ManifoldSet) Len() int {
	return len(m.planes)
}

// Clear empties the set.
func (m *ManifoldSet) Clear() {
	m.planes = nil
}

// Particle is a unit-mass point in the world: current and initial
// position/velocity, a goal state used by the (out-of-scope) evaluator,
// and the manifold set the advancer mutates across a timestep.
type Particle struct {
	Position vector.Vector
	Velocity vector.Vector

	StartPosition vector.Vector
	StartVelocity vector.Vector

	GoalPosition vector.Vector
	GoalVelocity vector.Vector

	Manifolds *ManifoldSet
}

// NewParticle constructs a particle at the given start state with an
// empty manifold set.
func NewParticle(startPos, startVel, goalPos, goalVel vector.Vector) *Particle {
	p := &Particle{
		StartPosition: startPos,
		StartVelocity: startVel,
		GoalPosition:  goalPos,
		GoalVelocity:  goalVel,
		Manifolds:     NewManifoldSet(),
	}
	p.SetToInitialState()
	return p
}

// SetToInitialState resets (x, v, M) to the particle's recorded start
// values and M = ∅ (spec.md §3, "Lifecycle").
func (p *Particle) SetToInitialState() {
	p.Position = p.StartPosition
	p.Velocity = p.StartVelocity
	p.Manifolds = NewManifoldSet()
}

// OnManifold reports whether plane is currently in this particle's
// manifold set.
func (p *Particle) OnManifold(plane *geometry.Plane) bool {
	return p.Manifolds.Contains(plane)
}

// OnSomeManifold reports whether the particle's manifold set is
// non-empty.
func (p *Particle) OnSomeManifold() bool {
	return p.Manifolds.Len() > 0
}

// KineticEnergy returns 0.5*|v|^2 for this unit-mass particle — the
// instrumentation testable property P3 (processImpact does not increase
// |v|) is checked against. Adapted from the teacher's
// internal/physics/particle.go Particle.KineticEnergy, simplified to
// unit mass.
func (p *Particle) KineticEnergy() float64 {
	v := p.Velocity.Length()
	return 0.5 * v * v
}

// ForceProvider is the core's only window onto the outer phase/timestep
// loop and its per-particle force unpacking (spec.md §1, §6): it is
// opaque to the core, returns the total external force (inclusive of
// gravity) for a particle during a phase, and is assumed constant over
// the timestep the core is asked to advance.
type ForceProvider interface {
	GetForce(forceInfo any, phase, particleIndex int) vector.Vector
}

// World is the fixed collection of collision planes (read-only after
// construction) plus the particles and tolerances a run operates on
// (spec.md §3, §5).
type World struct {
	Dimension int
	Gravity   vector.Vector

	Planes    []*geometry.Plane
	Particles []*Particle

	CollisionEpsilon float64
	VelocityEpsilon  float64
	ForceEpsilon     float64

	Integrator config.Integrator

	Forces ForceProvider
}

// NewWorld constructs an empty World from a Config's dimension, gravity,
// integrator and tolerances.
func NewWorld(cfg *config.Config) *World {
	return &World{
		Dimension:        cfg.Dimension,
		Gravity:          cfg.Gravity,
		CollisionEpsilon: cfg.CollisionEpsilon,
		VelocityEpsilon:  cfg.VelocityEpsilon,
		ForceEpsilon:     cfg.ForceEpsilon,
		Integrator:       cfg.Integrator,
	}
}

// AddCollisionPlane appends plane to the world's plane pool.
func (w *World) AddCollisionPlane(plane *geometry.Plane) {
	w.Planes = append(w.Planes, plane)
}

// AddParticle appends p to the world's particle list.
func (w *World) AddParticle(p *Particle) {
	w.Particles = append(w.Particles, p)
}

// SetToInitialState resets every particle's (x, v, M) to its recorded
// start values (spec.md §6).
func (w *World) SetToInitialState() {
	for _, p := range w.Particles {
		p.SetToInitialState()
	}
}

// GetActiveObject returns the i'th particle (spec.md §6).
func (w *World) GetActiveObject(i int) *Particle {
	return w.Particles[i]
}

// GetNumberOfActiveObjects returns the number of particles in the world
// (spec.md §6).
func (w *World) GetNumberOfActiveObjects() int {
	return len(w.Particles)
}

// GetForce delegates to the world's ForceProvider, per spec.md §6. The
// core treats the result as opaque and constant over the timestep it is
// asked to advance.
func (w *World) GetForce(forceInfo any, phase, particleIndex int) vector.Vector {
	return w.Forces.GetForce(forceInfo, phase, particleIndex)
}
