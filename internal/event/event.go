// Package event implements component B: the tagged record of the three
// sub-timestep event kinds the advancer schedules between. Grounded on
// original_source/PhysicsOld/src/event.py, re-architected per spec.md §9
// ("Tagged event variants vs. inheritance") as a closed sum type instead
// of three ad-hoc classes sharing a numeric type tag.
package event

import (
	"fmt"

	"github.com/kieda/ForcePhysicsSimulator/internal/geometry"
	"github.com/kieda/ForcePhysicsSimulator/internal/vector"
)

// Kind distinguishes the three event cases for exhaustive dispatch.
type Kind int

const (
	// KindCollision is first contact with a plane not currently in the
	// particle's manifold set.
	KindCollision Kind = iota
	// KindBoundaryCrossing is departure from a plane's boundary while
	// sliding on it.
	KindBoundaryCrossing
	// KindZeroVelocity is the predicted moment a sliding particle's
	// velocity reaches zero along some direction.
	KindZeroVelocity
)

func (k Kind) String() string {
	switch k {
	case KindCollision:
		return "Collision"
	case KindBoundaryCrossing:
		return "BoundaryCrossing"
	case KindZeroVelocity:
		return "ZeroVelocity"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Event is the closed three-case variant consumed by the advancer. Only
// the fields relevant to Kind are meaningful: Point and Plane for
// Collision/BoundaryCrossing, Direction for ZeroVelocity.
type Event struct {
	Kind      Kind
	Time      float64
	Point     vector.Vector
	Plane     *geometry.Plane
	Direction vector.Vector
}

// NewCollision constructs a Collision event. time < 0 is a programming
// error and panics immediately (spec.md §4.B, §7.4) — the source's
// BoundaryCrossing constructor performed the same fail-fast check, and
// spec.md extends it to Collision explicitly.
func NewCollision(time float64, point vector.Vector, plane *geometry.Plane) Event {
	if time < 0 {
		panic(fmt.Sprintf("Collision requested at negative time %g at point %v on plane normal %v", time, point, plane.Normal))
	}
	return Event{Kind: KindCollision, Time: time, Point: point, Plane: plane}
}

// NewBoundaryCrossing constructs a BoundaryCrossing event. time < 0 is a
// programming error and panics immediately.
func NewBoundaryCrossing(time float64, point vector.Vector, plane *geometry.Plane) Event {
	if time < 0 {
		panic(fmt.Sprintf("BoundaryCrossing requested at negative time %g at point %v on plane normal %v", time, point, plane.Normal))
	}
	return Event{Kind: KindBoundaryCrossing, Time: time, Point: point, Plane: plane}
}

// NewZeroVelocity constructs a ZeroVelocity event. time < 0 is a
// programming error and panics immediately (spec.md §4.B); a time of
// exactly zero is accepted.
func NewZeroVelocity(time float64, direction vector.Vector) Event {
	if time < 0 {
		panic(fmt.Sprintf("ZeroVelocity requested at negative time %g in direction %v", time, direction))
	}
	return Event{Kind: KindZeroVelocity, Time: time, Direction: direction}
}

// rank orders same-time events: ZeroVelocity < Collision < BoundaryCrossing
// (spec.md §4.B — "matches the physical intuition of stopping before
// re-contact").
func (k Kind) rank() int {
	switch k {
	case KindZeroVelocity:
		return 0
	case KindCollision:
		return 1
	case KindBoundaryCrossing:
		return 2
	default:
		return 3
	}
}

// Before reports whether e should be selected ahead of other as the next
// event: strictly earlier time, or equal time and a lower tie-break rank.
func (e Event) Before(other Event) bool {
	if e.Time != other.Time {
		return e.Time < other.Time
	}
	return e.Kind.rank() < other.Kind.rank()
}

// Earliest returns whichever of a, b should be treated as occurring
// first, or the non-nil one if exactly one is nil. Both nil returns nil.
func Earliest(a, b *Event) *Event {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	if b.Before(*a) {
		return b
	}
	return a
}
