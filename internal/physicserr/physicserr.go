// Package physicserr holds the sentinel errors for the numeric
// inconsistencies spec.md §7 classifies as fatal: conditions that
// indicate a geometry or integrator bug rather than ordinary control
// flow. The teacher never wraps a custom error type (it uses
// errors.New/fmt.Errorf directly, e.g. internal/gpu/buffer_manager.go);
// this package follows the same texture, just collecting the sentinels
// callers will want to errors.Is against in one place.
package physicserr

import "errors"

var (
	// ErrPenetrationTooDeep is returned when a particle has penetrated
	// a manifold by more than collisionEpsilon.
	ErrPenetrationTooDeep = errors.New("penetration exceeds collisionEpsilon")

	// ErrVelocityIntoManifold is returned when a particle carries
	// velocity into a manifold's normal by more than velocityEpsilon.
	ErrVelocityIntoManifold = errors.New("velocity into manifold exceeds velocityEpsilon")

	// ErrImpactVelocityOutward is returned when processImpact is asked
	// to resolve a collision where the particle is not moving into the
	// plane.
	ErrImpactVelocityOutward = errors.New("impact velocity does not point into the collision plane")

	// ErrMissingOpposingVelocity is returned when the zero-velocity
	// predictor expects velocity opposing the driving/frictional force
	// and does not find it.
	ErrMissingOpposingVelocity = errors.New("expected velocity opposing force direction")

	// ErrEventPositionDivergence is returned when free-advancing to an
	// event's predicted time lands the particle away from its
	// predicted point by more than collisionEpsilon.
	ErrEventPositionDivergence = errors.New("position diverged from predicted event point beyond collisionEpsilon")

	// ErrRecursionOverflow is returned when a single timestep requires
	// more than 10 sub-events to resolve.
	ErrRecursionOverflow = errors.New("sub-timestep advance exceeded depth limit")

	// ErrUnknownIntegrator is returned when an Integrator value outside
	// the closed {Euler, QuadraticExact} variant is encountered.
	ErrUnknownIntegrator = errors.New("unknown integrator")
)
