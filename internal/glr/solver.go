package glr

// Solver tunes the gradient descent optimizer. A nil solver on a Problem
// means the package defaults; unset fields of a non-nil solver fall back to
// the defaults too.
type Solver struct {
	LearningRate float64
	MaxIter      int
	Tol          float64
}

// DefaultSolver returns the optimizer settings used when a problem carries
// no solver descriptor.
func DefaultSolver() *Solver {
	return &Solver{
		LearningRate: 0.1,
		MaxIter:      2000,
		Tol:          1e-7,
	}
}

func (s *Solver) withDefaults() Solver {
	out := *DefaultSolver()
	if s == nil {
		return out
	}
	if s.LearningRate > 0 {
		out.LearningRate = s.LearningRate
	}
	if s.MaxIter > 0 {
		out.MaxIter = s.MaxIter
	}
	if s.Tol > 0 {
		out.Tol = s.Tol
	}
	return out
}
