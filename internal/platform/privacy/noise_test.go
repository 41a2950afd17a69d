package privacy

import (
	"math"
	"math/rand"
	"testing"
)

func TestLaplaceNoise_SymmetricAroundZero(t *testing.T) {
	m := NewLaplaceMechanism(rand.New(rand.NewSource(7)))
	var sum float64
	const n = 100000
	for i := 0; i < n; i++ {
		sum += m.Noise(1.0)
	}
	mean := sum / n
	if math.Abs(mean) > 0.05 {
		t.Errorf("expected near-zero mean, got %f", mean)
	}
}

func TestLaplaceNoise_ScaleGrowsAsEpsilonShrinks(t *testing.T) {
	m := NewLaplaceMechanism(rand.New(rand.NewSource(7)))
	spread := func(eps float64) float64 {
		var total float64
		for i := 0; i < 50000; i++ {
			total += math.Abs(m.Noise(eps))
		}
		return total / 50000
	}
	tight := spread(10.0)
	loose := spread(0.1)
	if loose <= tight {
		t.Errorf("smaller epsilon must widen noise: eps=0.1 mean |noise| %f <= eps=10 mean %f", loose, tight)
	}
}

func TestPerturb_NeverNegative(t *testing.T) {
	m := NewLaplaceMechanism(rand.New(rand.NewSource(3)))
	for _, eps := range []float64{0.1, 1.0, 5.0} {
		for _, v := range []float64{0, 0.5, 72, 120} {
			for i := 0; i < 1000; i++ {
				if got := m.Perturb(v, eps); got < 0 {
					t.Fatalf("Perturb(%f, %f) returned negative %f", v, eps, got)
				}
			}
		}
	}
}

func TestPerturb_DeterministicUnderSeededSource(t *testing.T) {
	a := NewLaplaceMechanism(rand.New(rand.NewSource(11))).Perturb(80, 1.0)
	b := NewLaplaceMechanism(rand.New(rand.NewSource(11))).Perturb(80, 1.0)
	if a != b {
		t.Errorf("same seed produced different perturbations: %f vs %f", a, b)
	}
}
