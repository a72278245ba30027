// Command simulate drives a single particle through a demo world of
// collision planes for a configurable number of one-second phases,
// logging the particle's state after each phase. It replaces the
// teacher's raylib/ebiten render loop (spec.md places display and
// plotting out of the core's scope) with the plain flag+log CLI shape
// the rest of the pack's command-line tools use.
package main

import (
	"flag"
	"log"

	"github.com/kieda/ForcePhysicsSimulator/internal/advancer"
	"github.com/kieda/ForcePhysicsSimulator/internal/config"
	"github.com/kieda/ForcePhysicsSimulator/internal/vector"
	"github.com/kieda/ForcePhysicsSimulator/internal/world"
	"github.com/kieda/ForcePhysicsSimulator/internal/worldbuild"
)

func main() {
	var (
		phases  = flag.Int("phases", 10, "number of one-second phases to advance")
		mu      = flag.Float64("mu", 0.3, "coefficient of friction of the collision plane")
		forceX  = flag.Float64("force-x", 0.0, "constant applied force along x")
		startX  = flag.Float64("start-x", 20.0, "particle start position x")
		startY  = flag.Float64("start-y", 100.0, "particle start position y")
		startVX = flag.Float64("start-vx", 5.0, "particle start velocity x")
		planeY  = flag.Float64("plane-y", 20.0, "height of the horizontal collision plane")
	)
	flag.Parse()

	cfg := config.DefaultConfig()
	w := worldbuild.NewFlatWorld(cfg, *planeY, *mu)
	w.Forces = worldbuild.ConstantForce{
		Gravity: cfg.Gravity,
		Applied: vector.New(*forceX, 0, 0),
	}

	p := world.NewParticle(
		vector.New(*startX, *startY, 0),
		vector.New(*startVX, 0, 0),
		vector.Vector{},
		vector.Vector{},
	)
	w.AddParticle(p)

	forceIn := w.GetForce(nil, 0, 0)

	for phase := 0; phase < *phases; phase++ {
		if err := advancer.Advance(p, forceIn, 1.0, w, 0); err != nil {
			log.Fatalf("phase %d: advance failed: %v", phase, err)
		}
		log.Printf("phase %d: position=%v velocity=%v onManifold=%d", phase, p.Position, p.Velocity, p.Manifolds.Len())
	}

	log.Printf("final position=%v velocity=%v kinetic energy=%f", p.Position, p.Velocity, p.KineticEnergy())
}
