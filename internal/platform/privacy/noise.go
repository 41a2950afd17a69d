package privacy

import (
	"math"
	"math/rand"
	"sync"
	"time"
)

// LaplaceMechanism draws additive noise from a Laplace distribution scaled by
// the privacy budget epsilon. Smaller epsilon means wider noise and stronger
// privacy. The random source is shared across concurrent callers, so draws
// are serialized.
type LaplaceMechanism struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

// NewLaplaceMechanism builds a LaplaceMechanism. A nil source falls back to a
// time-seeded one for production use.
func NewLaplaceMechanism(rnd *rand.Rand) *LaplaceMechanism {
	if rnd == nil {
		rnd = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &LaplaceMechanism{rnd: rnd}
}

// Noise returns one Laplace(0, 1/epsilon) sample via inverse transform:
// draw u uniformly from (-0.5, 0.5) and return -b*sign(u)*ln(1-2|u|).
func (m *LaplaceMechanism) Noise(epsilon float64) float64 {
	m.mu.Lock()
	u := m.rnd.Float64() - 0.5
	m.mu.Unlock()
	b := 1.0 / epsilon
	return -b * sign(u) * math.Log(1-2*math.Abs(u))
}

// Perturb adds Laplace noise to v and clamps the result at zero. Health
// metrics are non-negative, so negative draws are floored.
func (m *LaplaceMechanism) Perturb(v, epsilon float64) float64 {
	return math.Max(0, v+m.Noise(epsilon))
}

func sign(x float64) float64 {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	default:
		return 0
	}
}
