package problemgen

import (
	"math/rand/v2"
	"sync"

	"github.com/abhisek/algebriz/internal/mastery"
)

// Generator produces solvable linear equations.
type Generator interface {
	// Generate returns an equation for the level. The optional snapshot
	// lets the generator nudge difficulty for advanced learners.
	Generate(level int, snap *mastery.Snapshot) Equation
}

// RandomGenerator draws equations uniformly from a level's band.
// It is safe for concurrent use.
type RandomGenerator struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewRandomGenerator creates a generator. A nil rng uses a randomly seeded source.
func NewRandomGenerator(rng *rand.Rand) *RandomGenerator {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &RandomGenerator{rng: rng}
}

// EffectiveLevel shifts the level up by one once the learner has moved past
// balance understanding.
func EffectiveLevel(level int, snap *mastery.Snapshot) int {
	if level < 1 {
		level = 1
	}
	if snap != nil && mastery.LevelFor(*snap).Rank() >= mastery.LevelInverse.Rank() {
		level++
	}
	return level
}

func (g *RandomGenerator) Generate(level int, snap *mastery.Snapshot) Equation {
	band := BandFor(EffectiveLevel(level, snap))

	g.mu.Lock()
	defer g.mu.Unlock()

	a := g.between(MinCoefficient, MaxCoefficient)
	b := g.between(band.MinB, band.MaxB)
	if g.rng.IntN(2) == 0 {
		b = -b
	}
	x := g.between(band.MinX, band.MaxX)
	return NewEquation(a, b, x)
}

// between returns a value in [lo, hi].
func (g *RandomGenerator) between(lo, hi int) int {
	return lo + g.rng.IntN(hi-lo+1)
}
