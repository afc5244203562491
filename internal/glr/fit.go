package glr

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// Fit minimizes the penalized loss of p over (X, y) with batch gradient
// descent from a zero start, so repeated fits are deterministic. Labels must
// be class indices in [0, NClasses).
func Fit(p *Problem, X *mat.Dense, y []int) (*Solution, error) {
	if p == nil {
		return nil, fmt.Errorf("glr: nil problem")
	}
	n, d := X.Dims()
	if n == 0 || d == 0 {
		return nil, fmt.Errorf("glr: empty design matrix")
	}
	if len(y) != n {
		return nil, fmt.Errorf("glr: X has %d rows but y has %d labels", n, len(y))
	}
	for i, label := range y {
		if label < 0 || label >= p.nclasses {
			return nil, fmt.Errorf("glr: label %d at row %d outside [0, %d)", label, i, p.nclasses)
		}
	}

	solver := p.solver.withDefaults()

	// The logistic loss trains a single weight vector; the multinomial loss
	// trains one per class.
	k := p.nclasses
	if p.loss == LossLogistic {
		k = 1
	}

	w := make([][]float64, k)
	gw := make([][]float64, k)
	for c := 0; c < k; c++ {
		w[c] = make([]float64, d)
		gw[c] = make([]float64, d)
	}
	b := make([]float64, k)
	gb := make([]float64, k)

	prev := math.Inf(1)
	iterations := 0
	converged := false

	for it := 0; it < solver.MaxIter; it++ {
		loss := p.gradients(X, y, w, b, gw, gb)

		for c := 0; c < k; c++ {
			for j := 0; j < d; j++ {
				w[c][j] -= solver.LearningRate * gw[c][j]
			}
			if p.fitIntercept {
				b[c] -= solver.LearningRate * gb[c]
			}
		}

		iterations = it + 1
		if math.Abs(prev-loss) < solver.Tol {
			converged = true
			break
		}
		prev = loss
	}

	final := p.gradients(X, y, w, b, gw, gb)

	return &Solution{
		Loss:       p.loss,
		NClasses:   p.nclasses,
		Weights:    w,
		Intercepts: b,
		FinalLoss:  final,
		Iterations: iterations,
		Converged:  converged,
	}, nil
}

// gradients fills gw and gb with the penalized gradient at (w, b) and
// returns the penalized loss there.
func (p *Problem) gradients(X *mat.Dense, y []int, w [][]float64, b []float64, gw [][]float64, gb []float64) float64 {
	n, d := X.Dims()
	k := len(w)

	for c := 0; c < k; c++ {
		for j := 0; j < d; j++ {
			gw[c][j] = 0
		}
		gb[c] = 0
	}

	dataLoss := 0.0
	scores := make([]float64, k)

	for i := 0; i < n; i++ {
		row := X.RawRowView(i)
		for c := 0; c < k; c++ {
			z := b[c]
			for j := 0; j < d; j++ {
				z += w[c][j] * row[j]
			}
			scores[c] = z
		}

		if p.loss == LossLogistic {
			pr := sigmoid(scores[0])
			target := 0.0
			if y[i] == 1 {
				target = 1
			}
			g := pr - target
			for j := 0; j < d; j++ {
				gw[0][j] += g * row[j]
			}
			gb[0] += g
			dataLoss += -target*math.Log(clampProb(pr)) - (1-target)*math.Log(clampProb(1-pr))
		} else {
			softmaxInPlace(scores)
			for c := 0; c < k; c++ {
				g := scores[c]
				if c == y[i] {
					g -= 1
				}
				for j := 0; j < d; j++ {
					gw[c][j] += g * row[j]
				}
				gb[c] += g
			}
			dataLoss += -math.Log(clampProb(scores[y[i]]))
		}
	}

	inv := 1.0 / float64(n)
	for c := 0; c < k; c++ {
		for j := 0; j < d; j++ {
			gw[c][j] *= inv
		}
		gb[c] *= inv
	}
	dataLoss *= inv

	penLoss := 0.0
	for c := 0; c < k; c++ {
		for j := 0; j < d; j++ {
			gw[c][j] += p.penaltyGrad(w[c][j])
			penLoss += p.penaltyTerm(w[c][j])
		}
		if p.penalizeIntercept {
			gb[c] += p.penaltyGrad(b[c])
			penLoss += p.penaltyTerm(b[c])
		}
	}

	return dataLoss + penLoss
}

func (p *Problem) penaltyGrad(v float64) float64 {
	switch p.penalty {
	case PenaltyL2:
		return p.lambda * v
	case PenaltyL1:
		return p.lambda * sign(v)
	case PenaltyElasticNet:
		return p.lambda*v + p.gamma*sign(v)
	default:
		return 0
	}
}

func (p *Problem) penaltyTerm(v float64) float64 {
	switch p.penalty {
	case PenaltyL2:
		return 0.5 * p.lambda * v * v
	case PenaltyL1:
		return p.lambda * math.Abs(v)
	case PenaltyElasticNet:
		return 0.5*p.lambda*v*v + p.gamma*math.Abs(v)
	default:
		return 0
	}
}

func sign(v float64) float64 {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}

func sigmoid(z float64) float64 {
	if z >= 0 {
		return 1 / (1 + math.Exp(-z))
	}
	e := math.Exp(z)
	return e / (1 + e)
}

func clampProb(v float64) float64 {
	const eps = 1e-15
	if v < eps {
		return eps
	}
	if v > 1-eps {
		return 1 - eps
	}
	return v
}

// softmaxInPlace replaces scores with softmax probabilities, shifted by the
// max score for numerical stability.
func softmaxInPlace(scores []float64) {
	max := scores[0]
	for _, s := range scores[1:] {
		if s > max {
			max = s
		}
	}
	sum := 0.0
	for c, s := range scores {
		scores[c] = math.Exp(s - max)
		sum += scores[c]
	}
	for c := range scores {
		scores[c] /= sum
	}
}
