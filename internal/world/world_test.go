package world

import (
	"testing"

	"github.com/kieda/ForcePhysicsSimulator/internal/config"
	"github.com/kieda/ForcePhysicsSimulator/internal/geometry"
	"github.com/kieda/ForcePhysicsSimulator/internal/vector"
)

func TestManifoldSetAddIsIdempotentAndOrdered(t *testing.T) {
	m := NewManifoldSet()
	p1 := geometry.NewPlane(vector.New(0, 1, 0), 20, 0.5)
	p2 := geometry.NewPlane(vector.New(1, 0, 0), 10, 0.5)

	m.Add(p1)
	m.Add(p2)
	m.Add(p1) // duplicate add should not change membership or order

	if m.Len() != 2 {
		t.Fatalf("expected 2 planes, got %d", m.Len())
	}
	planes := m.Planes()
	if planes[0] != p1 || planes[1] != p2 {
		t.Errorf("expected insertion order [p1, p2], got %v", planes)
	}
}

func TestManifoldSetRemove(t *testing.T) {
	m := NewManifoldSet()
	p1 := geometry.NewPlane(vector.New(0, 1, 0), 20, 0.5)
	p2 := geometry.NewPlane(vector.New(1, 0, 0), 10, 0.5)
	m.Add(p1)
	m.Add(p2)

	m.Remove(p1)

	if m.Contains(p1) {
		t.Error("expected p1 to be removed")
	}
	if !m.Contains(p2) {
		t.Error("expected p2 to remain")
	}
	if m.Len() != 1 {
		t.Errorf("expected 1 plane remaining, got %d", m.Len())
	}
}

func TestParticleSetToInitialState(t *testing.T) {
	p := NewParticle(vector.New(20, 100, 0), vector.New(0, 0, 0), vector.New(0, 20, 0), vector.New(0, 0, 0))

	plane := geometry.NewPlane(vector.New(0, 1, 0), 20, 0.5)
	p.Position = vector.New(1, 2, 3)
	p.Velocity = vector.New(4, 5, 6)
	p.Manifolds.Add(plane)

	p.SetToInitialState()

	if p.Position != p.StartPosition {
		t.Errorf("expected Position reset to StartPosition, got %v", p.Position)
	}
	if p.Velocity != p.StartVelocity {
		t.Errorf("expected Velocity reset to StartVelocity, got %v", p.Velocity)
	}
	if p.OnSomeManifold() {
		t.Error("expected manifold set to be empty after reset")
	}
}

func TestParticleKineticEnergy(t *testing.T) {
	p := NewParticle(vector.Vector{}, vector.New(3, 4, 0), vector.Vector{}, vector.Vector{})
	want := 0.5 * 25.0
	if got := p.KineticEnergy(); got != want {
		t.Errorf("KineticEnergy() = %f, want %f", got, want)
	}
}

type constantForce struct{ f vector.Vector }

func (c constantForce) GetForce(forceInfo any, phase, particleIndex int) vector.Vector {
	return c.f
}

func TestWorldSetToInitialStateResetsAllParticles(t *testing.T) {
	cfg := config.DefaultConfig()
	w := NewWorld(cfg)
	w.Forces = constantForce{f: vector.New(1, 2, 0)}

	p1 := NewParticle(vector.New(0, 10, 0), vector.New(1, 0, 0), vector.Vector{}, vector.Vector{})
	p2 := NewParticle(vector.New(5, 10, 0), vector.New(0, 0, 0), vector.Vector{}, vector.Vector{})
	w.AddParticle(p1)
	w.AddParticle(p2)

	if w.GetNumberOfActiveObjects() != 2 {
		t.Fatalf("expected 2 active objects, got %d", w.GetNumberOfActiveObjects())
	}

	p1.Position = vector.New(99, 99, 0)
	w.SetToInitialState()

	if w.GetActiveObject(0).Position != p1.StartPosition {
		t.Errorf("expected particle 0 reset, got %v", w.GetActiveObject(0).Position)
	}

	force := w.GetForce(nil, 0, 0)
	if force != vector.New(1, 2, 0) {
		t.Errorf("GetForce = %v, want (1,2,0)", force)
	}
}
