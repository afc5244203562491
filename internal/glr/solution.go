package glr

import "gonum.org/v1/gonum/mat"

// Solution holds the fitted parameters of a problem. Weights are class-major
// (one row per class, a single row for the logistic loss) and stored as plain
// slices so solutions survive gob encoding.
type Solution struct {
	Loss       Loss
	NClasses   int
	Weights    [][]float64
	Intercepts []float64
	FinalLoss  float64
	Iterations int
	Converged  bool
}

// Probabilities returns an n x NClasses matrix of class membership
// probabilities for the rows of X.
func (s *Solution) Probabilities(X *mat.Dense) *mat.Dense {
	n, d := X.Dims()
	out := mat.NewDense(n, s.NClasses, nil)
	scores := make([]float64, len(s.Weights))

	for i := 0; i < n; i++ {
		row := X.RawRowView(i)
		for c, w := range s.Weights {
			z := s.Intercepts[c]
			for j := 0; j < d && j < len(w); j++ {
				z += w[j] * row[j]
			}
			scores[c] = z
		}

		if s.Loss == LossLogistic {
			p := sigmoid(scores[0])
			out.Set(i, 0, 1-p)
			out.Set(i, 1, p)
		} else {
			softmaxInPlace(scores)
			for c, p := range scores {
				out.Set(i, c, p)
			}
		}
	}

	return out
}

// PredictClasses returns the most probable class index for each row of X.
func (s *Solution) PredictClasses(X *mat.Dense) []int {
	probs := s.Probabilities(X)
	n, k := probs.Dims()

	out := make([]int, n)
	for i := 0; i < n; i++ {
		best := 0
		bestVal := probs.At(i, 0)
		for c := 1; c < k; c++ {
			if v := probs.At(i, c); v > bestVal {
				bestVal = v
				best = c
			}
		}
		out[i] = best
	}
	return out
}
