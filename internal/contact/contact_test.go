package contact

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kieda/ForcePhysicsSimulator/internal/geometry"
	"github.com/kieda/ForcePhysicsSimulator/internal/physicserr"
	"github.com/kieda/ForcePhysicsSimulator/internal/vector"
	"github.com/kieda/ForcePhysicsSimulator/internal/world"
)

const eps = 1e-6

func TestAdjustToManifoldsNoManifoldsPassesForceThrough(t *testing.T) {
	p := world.NewParticle(vector.New(0, 10, 0), vector.New(1, 0, 0), vector.Vector{}, vector.Vector{})
	force := vector.New(0, -9.8, 0)

	got, err := AdjustToManifolds(p, force, eps, eps)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != force {
		t.Errorf("force = %v, want unchanged %v", got, force)
	}
}

func TestAdjustToManifoldsSticksWithinFrictionCone(t *testing.T) {
	plane := geometry.NewPlane(vector.New(0, 1, 0), 20, 1.0) // mu = 1.0, wide cone
	p := world.NewParticle(vector.New(0, 20, 0), vector.Vector{}, vector.Vector{}, vector.Vector{})
	p.Manifolds.Add(plane)

	force := vector.New(1, -9.8, 0) // tangential component (1) well within mu*normal
	got, err := AdjustToManifolds(p, force, eps, eps)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != (vector.Vector{}) {
		t.Errorf("effective force = %v, want zero (sticking)", got)
	}
	if p.Velocity != (vector.Vector{}) {
		t.Errorf("velocity = %v, want zero", p.Velocity)
	}
}

func TestAdjustToManifoldsBreaksLooseBeyondFrictionCone(t *testing.T) {
	plane := geometry.NewPlane(vector.New(0, 1, 0), 20, 0.1) // mu = 0.1, narrow cone
	p := world.NewParticle(vector.New(0, 20, 0), vector.Vector{}, vector.Vector{}, vector.Vector{})
	p.Manifolds.Add(plane)

	force := vector.New(5, -9.8, 0)
	got, err := AdjustToManifolds(p, force, eps, eps)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Y != 0 {
		t.Errorf("effective force.Y = %f, want 0 (normal absorbed by plane)", got.Y)
	}
	if got.X <= 0 || got.X >= 5 {
		t.Errorf("effective force.X = %f, want reduced but still positive", got.X)
	}
}

func TestAdjustToManifoldsRemovesDepartingManifold(t *testing.T) {
	plane := geometry.NewPlane(vector.New(0, 1, 0), 20, 0.5)
	p := world.NewParticle(vector.New(0, 20, 0), vector.New(0, 5, 0), vector.Vector{}, vector.Vector{})
	p.Manifolds.Add(plane)

	_, err := AdjustToManifolds(p, vector.New(0, -9.8, 0), eps, eps)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.OnManifold(plane) {
		t.Error("expected departing manifold to be removed")
	}
}

func TestAdjustToManifoldsFatalOnDeepPenetration(t *testing.T) {
	plane := geometry.NewPlane(vector.New(0, 1, 0), 20, 0.5)
	p := world.NewParticle(vector.New(0, 10, 0), vector.Vector{}, vector.Vector{}, vector.Vector{})
	p.Manifolds.Add(plane)

	_, err := AdjustToManifolds(p, vector.New(0, -9.8, 0), eps, eps)
	if !errors.Is(err, physicserr.ErrPenetrationTooDeep) {
		t.Errorf("err = %v, want ErrPenetrationTooDeep", err)
	}
}

func TestAdjustToManifoldsFatalOnVelocityIntoManifold(t *testing.T) {
	plane := geometry.NewPlane(vector.New(0, 1, 0), 20, 0.5)
	p := world.NewParticle(vector.New(0, 20, 0), vector.New(0, -5, 0), vector.Vector{}, vector.Vector{})
	p.Manifolds.Add(plane)

	_, err := AdjustToManifolds(p, vector.New(0, -9.8, 0), eps, eps)
	if !errors.Is(err, physicserr.ErrVelocityIntoManifold) {
		t.Errorf("err = %v, want ErrVelocityIntoManifold", err)
	}
}

func TestProcessImpactAbsorbsWithinFrictionCone(t *testing.T) {
	plane := geometry.NewPlane(vector.New(0, 1, 0), 20, 1.0)
	p := world.NewParticle(vector.New(0, 20, 0), vector.New(1, -5, 0), vector.Vector{}, vector.Vector{})

	if err := ProcessImpact(p, plane, eps); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Velocity != (vector.Vector{}) {
		t.Errorf("velocity = %v, want zero", p.Velocity)
	}
}

func TestProcessImpactRetainsTangentBeyondCone(t *testing.T) {
	plane := geometry.NewPlane(vector.New(0, 1, 0), 20, 0.1)
	p := world.NewParticle(vector.New(0, 20, 0), vector.New(10, -5, 0), vector.Vector{}, vector.Vector{})

	before := p.KineticEnergy()
	if err := ProcessImpact(p, plane, eps); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Velocity.Y != 0 {
		t.Errorf("velocity.Y = %f, want 0 (normal component absorbed)", p.Velocity.Y)
	}
	if p.Velocity.X <= 0 {
		t.Errorf("velocity.X = %f, want positive residual tangent", p.Velocity.X)
	}
	if p.KineticEnergy() >= before {
		t.Error("expected impact to dissipate kinetic energy (P3)")
	}
}

func TestProcessImpactFatalOnOutwardVelocity(t *testing.T) {
	plane := geometry.NewPlane(vector.New(0, 1, 0), 20, 0.5)
	p := world.NewParticle(vector.New(0, 20, 0), vector.New(0, 5, 0), vector.Vector{}, vector.Vector{})

	err := ProcessImpact(p, plane, eps)
	if !errors.Is(err, physicserr.ErrImpactVelocityOutward) {
		t.Errorf("err = %v, want ErrImpactVelocityOutward", err)
	}
}

func TestClampToManifoldsRemovesIntoPlaneComponent(t *testing.T) {
	plane := geometry.NewPlane(vector.New(0, 1, 0), 20, 0.5)
	p := world.NewParticle(vector.New(0, 20, 0), vector.Vector{}, vector.Vector{}, vector.Vector{})
	p.Manifolds.Add(plane)

	got := ClampToManifolds(p, vector.New(3, -9.8, 0))
	if got.Y != 0 {
		t.Errorf("clamped.Y = %f, want 0", got.Y)
	}
	if got.X != 3 {
		t.Errorf("clamped.X = %f, want 3 (tangential untouched)", got.X)
	}
}

func TestGetFirstVelocityZeroNoManifoldReturnsNil(t *testing.T) {
	p := world.NewParticle(vector.New(0, 30, 0), vector.New(1, 0, 0), vector.Vector{}, vector.Vector{})
	e, err := GetFirstVelocityZero(p, vector.New(0, -9.8, 0), vector.New(0, -9.8, 0), eps, eps)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if e != nil {
		t.Errorf("expected nil event, got %v", e)
	}
}

func TestGetFirstVelocityZeroPredictsDecelerationToStop(t *testing.T) {
	plane := geometry.NewPlane(vector.New(0, 1, 0), 20, 0.2)
	p := world.NewParticle(vector.New(0, 20, 0), vector.New(10, 0, 0), vector.Vector{}, vector.Vector{})
	p.Manifolds.Add(plane)

	forceIn := vector.New(0, -9.8, 0)
	forceEff, err := AdjustToManifolds(p, forceIn, eps, eps)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	p.Velocity = vector.New(10, 0, 0) // AdjustToManifolds may have zeroed it; restore sliding velocity

	e, err := GetFirstVelocityZero(p, forceEff, forceIn, eps, eps)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if e == nil {
		t.Fatal("expected a zero-velocity prediction while sliding against kinetic friction")
	}
	want := 10.0 / (0.2 * 9.8)
	assert.InDelta(t, want, e.Time, 1e-6)
}
