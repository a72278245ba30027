// Package rootfinder implements component C: solving for the earliest
// positive time at which a particle's trajectory under a constant force
// crosses a plane or a boundary, for either the linear (Euler) or the
// exact quadratic integrator. Grounded on spec.md §4.C and on
// original_source/PhysicsOld/src/simulation.py's collideWithPlane /
// getFirstBoundaryCrossingOnManifold, which dispatch the same way on the
// integrator tag before delegating to the collision plane.
package rootfinder

import (
	"fmt"
	"math"

	"github.com/kieda/ForcePhysicsSimulator/internal/config"
	"github.com/kieda/ForcePhysicsSimulator/internal/geometry"
	"github.com/kieda/ForcePhysicsSimulator/internal/physicserr"
	"github.com/kieda/ForcePhysicsSimulator/internal/vector"
)

// FreeAdvance integrates position and velocity forward by dt under a
// constant force, without checking for any event — the "free-advance"
// primitive shared by the root-finder (to locate event points) and the
// sub-timestep advancer (to actually move the particle).
func FreeAdvance(pos, vel, force vector.Vector, dt float64, integrator config.Integrator) (newPos, newVel vector.Vector, err error) {
	switch integrator {
	case config.Euler:
		newPos = pos.Add(vel.Scale(dt))
		newVel = vel.Add(force.Scale(dt))
	case config.QuadraticExact:
		newPos = pos.Add(vel.Scale(dt)).Add(force.Scale(0.5 * dt * dt))
		newVel = vel.Add(force.Scale(dt))
	default:
		return vector.Vector{}, vector.Vector{}, fmt.Errorf("integrator %v: %w", integrator, physicserr.ErrUnknownIntegrator)
	}
	return newPos, newVel, nil
}

// quadraticRoots returns the real roots of a*t^2 + b*t + c = 0 in
// ascending order. If a is negligible the equation is treated as linear.
func quadraticRoots(a, b, c, forceEpsilon float64) []float64 {
	if math.Abs(a) < forceEpsilon {
		if b == 0 {
			return nil
		}
		return []float64{-c / b}
	}
	disc := b*b - 4*a*c
	if disc < 0 {
		return nil
	}
	sq := math.Sqrt(disc)
	r1 := (-b - sq) / (2 * a)
	r2 := (-b + sq) / (2 * a)
	if r1 > r2 {
		r1, r2 = r2, r1
	}
	return []float64{r1, r2}
}

// selectRoot picks the smallest root satisfying t > -collisionEpsilon
// (clamped up to 0 if within epsilon of it) and whose rate of change of
// the underlying scalar quantity (2*a*t+b) satisfies velocityOK. roots
// must already be sorted ascending.
func selectRoot(roots []float64, a, b, collisionEpsilon float64, velocityOK func(rate float64) bool) (float64, bool) {
	for _, t := range roots {
		if t <= -collisionEpsilon {
			continue
		}
		clamped := t
		if clamped < 0 {
			clamped = 0
		}
		rate := 2*a*clamped + b
		if velocityOK(rate) {
			return clamped, true
		}
	}
	return 0, false
}

// FindCollision solves for the earliest positive time at which the
// particle's trajectory from pos/vel under force first touches plane,
// per spec.md §4.C. ok is false if no such collision exists (the plane
// is never reached, or reached only while moving away from it).
func FindCollision(plane *geometry.Plane, pos, vel, force vector.Vector, integrator config.Integrator, collisionEpsilon, velocityEpsilon, forceEpsilon float64) (t float64, point vector.Vector, ok bool, err error) {
	n := plane.Normal

	switch integrator {
	case config.Euler:
		nv := n.Dot(vel)
		if nv >= 0 {
			return 0, vector.Vector{}, false, nil
		}
		candidate := -plane.Distance(pos) / nv
		if candidate <= 0 {
			return 0, vector.Vector{}, false, nil
		}
		p, _, err := FreeAdvance(pos, vel, force, candidate, integrator)
		if err != nil {
			return 0, vector.Vector{}, false, err
		}
		return candidate, p, true, nil

	case config.QuadraticExact:
		a := 0.5 * n.Dot(force)
		b := n.Dot(vel)
		c := plane.Distance(pos)
		roots := quadraticRoots(a, b, c, forceEpsilon)
		chosen, found := selectRoot(roots, a, b, collisionEpsilon, func(rate float64) bool {
			return rate <= velocityEpsilon
		})
		if !found {
			return 0, vector.Vector{}, false, nil
		}
		p, _, err := FreeAdvance(pos, vel, force, chosen, integrator)
		if err != nil {
			return 0, vector.Vector{}, false, err
		}
		return chosen, p, true, nil

	default:
		return 0, vector.Vector{}, false, fmt.Errorf("integrator %v: %w", integrator, physicserr.ErrUnknownIntegrator)
	}
}

// FindBoundaryCrossing solves for the earliest time at which a particle
// sliding on boundary's owning plane departs through it, per spec.md
// §4.A/§4.C. Because u is a unit direction lying in the plane (u·n=0),
// u·x(t) depends only on the component of velocity/force along u, so the
// planar projection the spec describes needs no explicit computation:
// dotting the true velocity and force with u already isolates it.
func FindBoundaryCrossing(boundary geometry.Boundary, pos, vel, force vector.Vector, integrator config.Integrator, collisionEpsilon, velocityEpsilon, forceEpsilon float64) (t float64, point vector.Vector, ok bool, err error) {
	u := boundary.Direction
	target := boundary.Offset + u.Dot(boundary.Anchor)

	switch integrator {
	case config.Euler:
		uv := u.Dot(vel)
		if uv <= 0 {
			return 0, vector.Vector{}, false, nil
		}
		c := u.Dot(pos) - target
		candidate := -c / uv
		if candidate <= 0 {
			return 0, vector.Vector{}, false, nil
		}
		p, _, err := FreeAdvance(pos, vel, force, candidate, integrator)
		if err != nil {
			return 0, vector.Vector{}, false, err
		}
		return candidate, p, true, nil

	case config.QuadraticExact:
		a := 0.5 * u.Dot(force)
		b := u.Dot(vel)
		c := u.Dot(pos) - target
		roots := quadraticRoots(a, b, c, forceEpsilon)
		chosen, found := selectRoot(roots, a, b, collisionEpsilon, func(rate float64) bool {
			return rate >= -velocityEpsilon
		})
		if !found {
			return 0, vector.Vector{}, false, nil
		}
		p, _, err := FreeAdvance(pos, vel, force, chosen, integrator)
		if err != nil {
			return 0, vector.Vector{}, false, err
		}
		return chosen, p, true, nil

	default:
		return 0, vector.Vector{}, false, fmt.Errorf("integrator %v: %w", integrator, physicserr.ErrUnknownIntegrator)
	}
}
