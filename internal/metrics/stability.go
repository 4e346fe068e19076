package metrics

import (
	"github.com/postusername/n-body-problem/internal/scalar"
	"github.com/postusername/n-body-problem/internal/system"
)

// Stability reports the fraction of observed steps where every body stayed
// within threshold of the origin, adapted from the teacher's Stability
// metric (originally a per-state-component bound on a control system) to
// the "stays bounded" invariant spec.md 8 assigns to the Ring scenario.
type Stability[T scalar.Scalar[T]] struct {
	threshold  float64
	violations int
	samples    int
}

func NewStability[T scalar.Scalar[T]](threshold float64) *Stability[T] {
	return &Stability[T]{threshold: threshold}
}

func (s *Stability[T]) Name() string { return "stability" }

func (s *Stability[T]) Observe(step int, t T, sys system.System[T]) {
	s.samples++
	for _, b := range sys.Bodies() {
		if b.Position.Magnitude().Float64() > s.threshold {
			s.violations++
			return
		}
	}
}

func (s *Stability[T]) Value() float64 {
	if s.samples == 0 {
		return 1.0
	}
	return 1.0 - float64(s.violations)/float64(s.samples)
}

func (s *Stability[T]) Reset() {
	s.violations = 0
	s.samples = 0
}
