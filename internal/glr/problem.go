package glr

import "fmt"

// Loss names the data-fit term of a problem.
type Loss string

const (
	LossLogistic    Loss = "logistic"
	LossMultinomial Loss = "multinomial"
)

// Problem fully specifies a penalized generalized linear classification
// problem: the loss, the penalty shape and strengths, intercept handling and
// the class count. Values are fixed at construction; Fit never mutates them.
type Problem struct {
	loss              Loss
	lambda            float64
	gamma             float64
	penalty           Penalty
	fitIntercept      bool
	penalizeIntercept bool
	nclasses          int
	solver            *Solver
}

// NewProblem builds a problem descriptor. The penalty symbol is coerced to
// its canonical form; invalid configurations are rejected here rather than
// at fit time.
func NewProblem(loss Loss, lambda, gamma float64, penalty Penalty, fitIntercept, penalizeIntercept bool, nclasses int, solver *Solver) (*Problem, error) {
	canonical, err := ParsePenalty(string(penalty))
	if err != nil {
		return nil, err
	}
	if loss != LossLogistic && loss != LossMultinomial {
		return nil, fmt.Errorf("glr: invalid configuration: unknown loss %q", loss)
	}
	if lambda < 0 {
		return nil, fmt.Errorf("glr: invalid configuration: lambda must be non-negative, got %v", lambda)
	}
	if gamma < 0 {
		return nil, fmt.Errorf("glr: invalid configuration: gamma must be non-negative, got %v", gamma)
	}
	if nclasses < 2 {
		return nil, fmt.Errorf("glr: invalid configuration: need at least 2 classes, got %d", nclasses)
	}
	if loss == LossLogistic && nclasses != 2 {
		return nil, fmt.Errorf("glr: invalid configuration: logistic loss requires exactly 2 classes, got %d (use the multinomial loss)", nclasses)
	}

	return &Problem{
		loss:              loss,
		lambda:            lambda,
		gamma:             gamma,
		penalty:           canonical,
		fitIntercept:      fitIntercept,
		penalizeIntercept: penalizeIntercept,
		nclasses:          nclasses,
		solver:            solver,
	}, nil
}

func (p *Problem) Loss() Loss              { return p.loss }
func (p *Problem) Lambda() float64         { return p.lambda }
func (p *Problem) Gamma() float64          { return p.gamma }
func (p *Problem) Penalty() Penalty        { return p.penalty }
func (p *Problem) FitIntercept() bool      { return p.fitIntercept }
func (p *Problem) PenalizeIntercept() bool { return p.penalizeIntercept }
func (p *Problem) NClasses() int           { return p.nclasses }
func (p *Problem) Solver() *Solver         { return p.solver }
