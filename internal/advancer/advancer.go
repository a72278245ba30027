// Package advancer implements component E, the sub-timestep event loop
// that ties components A-D together: adjust the driving force to the
// current manifold set, find the next event, free-advance to it, apply
// its effect, and repeat until the requested time is exhausted or the
// depth cap is hit. Grounded on
// original_source/PhysicsOld/src/simulation.py's advanceActiveObject,
// getNextEvent and getFirstCollision/getFirstBoundaryCrossing, rebuilt
// as an explicit loop per spec.md §9 ("Recursion vs. loop" — the
// original recurses on every sub-event; a depth-capped loop expresses
// the same bound without growing the call stack).
package advancer

import (
	"fmt"

	"github.com/kieda/ForcePhysicsSimulator/internal/contact"
	"github.com/kieda/ForcePhysicsSimulator/internal/event"
	"github.com/kieda/ForcePhysicsSimulator/internal/physicserr"
	"github.com/kieda/ForcePhysicsSimulator/internal/rootfinder"
	"github.com/kieda/ForcePhysicsSimulator/internal/vector"
	"github.com/kieda/ForcePhysicsSimulator/internal/world"
)

// maxDepth bounds the number of sub-events a single Advance call may
// resolve before it is considered a numeric inconsistency (spec.md §7,
// §9).
const maxDepth = 10

// Advance moves particle p forward by timeLeft under the constant
// driving force forceIn, resolving any collisions, boundary departures
// or zero-velocity events encountered along the way against w's plane
// pool. depth is the number of sub-events already resolved for this
// call's outer timestep (callers invoking Advance directly should pass
// 0); it is how ErrRecursionOverflow is detected without recursing.
func Advance(p *world.Particle, forceIn vector.Vector, timeLeft float64, w *world.World, depth int) error {
	for {
		if depth > maxDepth {
			return fmt.Errorf("advancing past %d sub-events in one timestep: %w", maxDepth, physicserr.ErrRecursionOverflow)
		}

		forceEff, err := contact.AdjustToManifolds(p, forceIn, w.CollisionEpsilon, w.VelocityEpsilon)
		if err != nil {
			return err
		}

		for _, m := range p.Manifolds.Planes() {
			if m.Normal.Dot(p.Velocity) < -w.VelocityEpsilon {
				return fmt.Errorf("residual velocity into manifold after adjustment: %w", physicserr.ErrVelocityIntoManifold)
			}
		}

		nextEvent, err := findNextEvent(p, forceEff, forceIn, w)
		if err != nil {
			return err
		}

		if nextEvent == nil || nextEvent.Time >= timeLeft {
			newPos, newVel, err := rootfinder.FreeAdvance(p.Position, p.Velocity, forceEff, timeLeft, w.Integrator)
			if err != nil {
				return err
			}
			p.Position, p.Velocity = newPos, newVel
			return nil
		}

		newPos, newVel, err := rootfinder.FreeAdvance(p.Position, p.Velocity, forceEff, nextEvent.Time, w.Integrator)
		if err != nil {
			return err
		}
		p.Position, p.Velocity = newPos, newVel

		if nextEvent.Kind == event.KindCollision || nextEvent.Kind == event.KindBoundaryCrossing {
			if p.Position.Sub(nextEvent.Point).Length() >= w.CollisionEpsilon {
				return fmt.Errorf("free-advance landed %v away from predicted event point %v: %w", p.Position.Sub(nextEvent.Point), nextEvent.Point, physicserr.ErrEventPositionDivergence)
			}
		}

		switch nextEvent.Kind {
		case event.KindCollision:
			if err := contact.ProcessImpact(p, nextEvent.Plane, w.VelocityEpsilon); err != nil {
				return err
			}
			p.Manifolds.Add(nextEvent.Plane)
		case event.KindBoundaryCrossing:
			p.Manifolds.Remove(nextEvent.Plane)
		case event.KindZeroVelocity:
			// the free-advance above already carried velocity to (within
			// tolerance of) zero; no further state change is needed.
		}

		timeLeft -= nextEvent.Time
		depth++
	}
}

// findNextEvent scans for the earliest of: a collision against a plane
// not already in p's manifold set, a boundary departure from a plane p
// is currently on, or a predicted zero-velocity moment, per spec.md
// §4.E step 3. forceIn (as opposed to forceEff) is passed through to
// GetFirstVelocityZero, which needs the undamped driving force to
// reason about whether friction alone is decelerating the particle.
func findNextEvent(p *world.Particle, forceEff, forceIn vector.Vector, w *world.World) (*event.Event, error) {
	var best *event.Event

	for _, plane := range w.Planes {
		if p.OnManifold(plane) {
			continue
		}
		t, point, ok, err := rootfinder.FindCollision(plane, p.Position, p.Velocity, forceEff, w.Integrator, w.CollisionEpsilon, w.VelocityEpsilon, w.ForceEpsilon)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		e := event.NewCollision(t, point, plane)
		best = event.Earliest(best, &e)
	}

	zv, err := contact.GetFirstVelocityZero(p, forceEff, forceIn, w.VelocityEpsilon, w.ForceEpsilon)
	if err != nil {
		return nil, err
	}
	best = event.Earliest(best, zv)

	for _, plane := range p.Manifolds.Planes() {
		for _, b := range plane.Boundaries {
			t, point, ok, err := rootfinder.FindBoundaryCrossing(b, p.Position, p.Velocity, forceEff, w.Integrator, w.CollisionEpsilon, w.VelocityEpsilon, w.ForceEpsilon)
			if err != nil {
				return nil, err
			}
			if !ok {
				continue
			}
			e := event.NewBoundaryCrossing(t, point, plane)
			best = event.Earliest(best, &e)
		}
	}

	return best, nil
}
