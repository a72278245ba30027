// Package contact implements component D: adjusting a requested driving
// force to the particle's current manifold set via friction-cone
// reasoning, resolving impacts with plastic Coulomb dissipation, and
// predicting when a sliding particle's velocity will reach zero.
// Grounded line-for-line on
// original_source/PhysicsOld/src/simulation.py's adjustToManifolds,
// processImpact and getFirstVelocityZero.
package contact

import (
	"fmt"
	"math"

	"github.com/kieda/ForcePhysicsSimulator/internal/event"
	"github.com/kieda/ForcePhysicsSimulator/internal/geometry"
	"github.com/kieda/ForcePhysicsSimulator/internal/physicserr"
	"github.com/kieda/ForcePhysicsSimulator/internal/vector"
	"github.com/kieda/ForcePhysicsSimulator/internal/world"
)

// AdjustToManifolds adjusts forceIn to the particle's current manifold
// set, per spec.md §4.D.1: stale manifolds are purged, penetration and
// into-manifold velocity are corrected (fatally, if beyond tolerance),
// and the remaining force is decomposed into normal and tangential
// components to apply Coulomb friction-cone reasoning. It mutates
// p.Position/p.Velocity in place and returns the effective force to
// integrate with.
func AdjustToManifolds(p *world.Particle, forceIn vector.Vector, collisionEpsilon, velocityEpsilon float64) (vector.Vector, error) {
	var toRemove []*geometry.Plane

	for _, m := range p.Manifolds.Planes() {
		normalDist := m.Distance(p.Position)
		normalVelocity := m.Normal.Dot(p.Velocity)

		// case (1)/(2): we have left, or are leaving, the manifold.
		if normalDist > collisionEpsilon || normalVelocity > velocityEpsilon {
			toRemove = append(toRemove, m)
		}

		// case (3): we have penetrated the manifold.
		if normalDist < 0 {
			if -normalDist >= collisionEpsilon {
				return vector.Vector{}, fmt.Errorf("penetrated manifold by %g (limit %g): %w", -normalDist, collisionEpsilon, physicserr.ErrPenetrationTooDeep)
			}
			p.Position = m.ProjectOnto(p.Position)
		}

		// case (4): velocity is heading into the manifold.
		if normalVelocity < 0 {
			if -normalVelocity >= velocityEpsilon {
				return vector.Vector{}, fmt.Errorf("velocity %g into manifold normal (limit %g): %w", -normalVelocity, velocityEpsilon, physicserr.ErrVelocityIntoManifold)
			}
			p.Velocity = p.Velocity.Sub(m.Normal.Scale(normalVelocity))
		}
	}

	for _, m := range toRemove {
		p.Manifolds.Remove(m)
	}

	if p.Manifolds.Len() == 0 {
		return forceIn, nil
	}

	remainingForce := forceIn
	normalForce := vector.Vector{}
	tangentVelocity := vector.Vector{}
	remainingVelocity := p.Velocity
	mu := 0.0

	for _, m := range p.Manifolds.Planes() {
		n := m.Normal
		forceDot := remainingForce.Dot(n)

		if forceDot >= 0 {
			// force is not pressing into this manifold; leave it alone.
			continue
		}

		addToNormalForce := n.Scale(forceDot)
		normalForce = normalForce.Add(addToNormalForce)
		remainingForce = remainingForce.Sub(addToNormalForce)

		velDot := remainingVelocity.Dot(n)
		addToTangentVel := remainingVelocity.Sub(n.Scale(velDot))
		tangentVelocity = tangentVelocity.Add(addToTangentVel)
		remainingVelocity = remainingVelocity.Sub(addToTangentVel)

		if manifoldMu := m.CoefficientOfFriction(); manifoldMu > mu {
			mu = manifoldMu
		}
	}

	tangentForce := remainingForce
	tangentForceMagnitude := tangentForce.Length()
	normalForceMagnitude := normalForce.Length()
	tangentVelocityMagnitude := tangentVelocity.Length()

	// CASE 1: existing tangent velocity supplies the resistive friction
	// force that opposes it; do not zero P.v here.
	if tangentVelocityMagnitude > velocityEpsilon {
		unitTangentVelocity := tangentVelocity.Scale(1.0 / tangentVelocityMagnitude)
		return tangentForce.Sub(unitTangentVelocity.Scale(mu * normalForceMagnitude)), nil
	}

	// any residual tangential velocity below epsilon is numerical noise.
	p.Velocity = vector.Vector{}

	// CASE 2: sticking — requested force is within the friction cone.
	if tangentForceMagnitude < mu*normalForceMagnitude {
		return vector.Vector{}, nil
	}

	// CASE 3: breaking loose — surplus beyond the friction cone drives
	// the particle along the tangential force direction.
	unitTangentForce := tangentForce.Scale(1.0 / tangentForceMagnitude)
	return tangentForce.Sub(unitTangentForce.Scale(mu * normalForceMagnitude)), nil
}

// ClampToManifolds projects forceIn onto the current manifold set using
// the same normal-force decomposition AdjustToManifolds uses, but
// without the friction term — the helper spec.md §4.D.3 needs (named
// clampToManifolds in the source) to determine whether a manifold is
// altering the driving force at all.
func ClampToManifolds(p *world.Particle, forceIn vector.Vector) vector.Vector {
	remaining := forceIn
	for _, m := range p.Manifolds.Planes() {
		n := m.Normal
		forceDot := remaining.Dot(n)
		if forceDot < 0 {
			remaining = remaining.Sub(n.Scale(forceDot))
		}
	}
	return remaining
}

// ProcessImpact resolves a collision with collisionPlane, per spec.md
// §4.D.2: perfectly plastic with Coulomb dissipation. It mutates
// p.Velocity in place; the caller is responsible for adding
// collisionPlane to the particle's manifold set afterward.
func ProcessImpact(p *world.Particle, collisionPlane *geometry.Plane, velocityEpsilon float64) error {
	mu := collisionPlane.CoefficientOfFriction()
	n := collisionPlane.Normal

	normalVelocityDot := p.Velocity.Dot(n)
	if normalVelocityDot > 0 {
		return fmt.Errorf("impact velocity %g points away from plane normal: %w", normalVelocityDot, physicserr.ErrImpactVelocityOutward)
	}
	normalVelocityMagnitude := math.Abs(normalVelocityDot)
	normalVelocity := n.Scale(normalVelocityDot)

	tangentVelocity := p.Velocity.Sub(normalVelocity)
	tangentVelocityMagnitude := tangentVelocity.Length()

	if tangentVelocityMagnitude < velocityEpsilon || tangentVelocityMagnitude < mu*normalVelocityMagnitude {
		// velocity lies inside the friction cone (or the tangent is
		// negligible): the impact is fully absorbed.
		p.Velocity = vector.Vector{}
		return nil
	}

	p.Velocity = p.Velocity.Sub(normalVelocity)
	unitTangent := tangentVelocity.Scale(1.0 / tangentVelocityMagnitude)
	tangentVelocityRemoved := unitTangent.Scale(mu * normalVelocityMagnitude)
	p.Velocity = p.Velocity.Sub(tangentVelocityRemoved)
	return nil
}

// GetFirstVelocityZero predicts when a sliding particle's velocity will
// next reach zero along some direction, per spec.md §4.D.3. forceEff is
// AdjustToManifolds's output for forceIn; this two-stage
// orthogonal-then-parallel ordering is what keeps a constant-force phase
// moving along a straight line between events even while kinetic
// friction is acting (see spec.md §4.D.3's closing design note). A nil
// event with a nil error means no zero-velocity event is predicted.
func GetFirstVelocityZero(p *world.Particle, forceEff, forceIn vector.Vector, velocityEpsilon, forceEpsilon float64) (*event.Event, error) {
	if !p.OnSomeManifold() {
		return nil, nil
	}
	if p.Velocity.Length() <= velocityEpsilon {
		return nil, nil
	}

	if forceEff.Sub(forceIn).Length() < forceEpsilon {
		// the manifolds are having no effect on the force at all.
		return nil, nil
	}

	clamped := ClampToManifolds(p, forceIn)

	if forceEff.Sub(clamped).Length() < forceEpsilon {
		// friction is having no effect beyond the manifold projection.
		return nil, nil
	}

	clampedNorm := clamped.Length()
	if clampedNorm < forceEpsilon {
		// no driving force: friction alone decelerates the particle.
		forceMagnitude := forceEff.Length()
		if forceMagnitude <= 0 {
			return nil, fmt.Errorf("expected non-zero effective force while decelerating: %w", physicserr.ErrMissingOpposingVelocity)
		}
		unitForce := forceEff.Scale(1.0 / forceMagnitude)
		velDotForce := p.Velocity.Dot(unitForce)
		if velDotForce >= 0 {
			return nil, fmt.Errorf("no velocity opposing frictional force direction: %w", physicserr.ErrMissingOpposingVelocity)
		}
		zeroTime := -velDotForce / forceMagnitude
		e := event.NewZeroVelocity(zeroTime, unitForce)
		return &e, nil
	}

	// stage 1: stop velocity orthogonal to the (clamped) driving force.
	unitClamped := clamped.Scale(1.0 / clampedNorm)
	velInDir := unitClamped.Scale(p.Velocity.Dot(unitClamped))
	orthogonalVelocity := p.Velocity.Sub(velInDir)
	orthogonalVelocityNorm := orthogonalVelocity.Length()

	forceInDir := unitClamped.Scale(forceEff.Dot(unitClamped))
	orthogonalForce := forceEff.Sub(forceInDir)
	orthogonalForceNorm := orthogonalForce.Length()

	if orthogonalVelocityNorm > velocityEpsilon {
		if orthogonalVelocity.Dot(orthogonalForce) >= 0 {
			return nil, fmt.Errorf("orthogonal force does not oppose orthogonal velocity: %w", physicserr.ErrMissingOpposingVelocity)
		}
		zeroTime := orthogonalVelocityNorm / orthogonalForceNorm
		e := event.NewZeroVelocity(zeroTime, orthogonalForce.Scale(1.0/orthogonalForceNorm))
		return &e, nil
	}

	// stage 2: no orthogonal velocity left; zero the parallel component
	// if the driving force opposes it.
	velDotForce := forceInDir.Dot(velInDir)
	if velDotForce >= 0 {
		return nil, nil
	}

	forceInDirNorm := forceInDir.Length()
	zeroTime := velInDir.Length() / forceInDirNorm
	e := event.NewZeroVelocity(zeroTime, forceInDir.Scale(1.0/forceInDirNorm))
	return &e, nil
}
