package models

import (
    "glmclassifier/internal/glr"
)

type glmParams struct {
    lambda            float64
    gamma             float64
    penalty           glr.Penalty
    fitIntercept      bool
    penalizeIntercept bool
    solver            *glr.Solver
    multiClass        bool
    nclasses          int
}

func defaultGLMParams() glmParams {
    return glmParams{
        lambda:       1.0,
        gamma:        0.0,
        penalty:      glr.PenaltyL2,
        fitIntercept: true,
        nclasses:     2,
    }
}

// Option overrides one defaulted hyperparameter of a generalized linear
// classifier.
type Option func(*glmParams)

// WithLambda sets the strength of the L2 term (or of the sole regularizer
// when the penalty is l1 or l2).
func WithLambda(lambda float64) Option {
    return func(p *glmParams) {
        p.lambda = lambda
    }
}

// WithGamma sets the strength of the L1 term, used only under the
// elastic-net penalty.
func WithGamma(gamma float64) Option {
    return func(p *glmParams) {
        p.gamma = gamma
    }
}

// WithPenalty sets the penalty symbol. The symbol is coerced to its
// canonical form when the problem descriptor is built.
func WithPenalty(penalty glr.Penalty) Option {
    return func(p *glmParams) {
        p.penalty = penalty
    }
}

// WithFitIntercept sets whether an intercept term is estimated.
func WithFitIntercept(fit bool) Option {
    return func(p *glmParams) {
        p.fitIntercept = fit
    }
}

// WithPenalizeIntercept sets whether the intercept is included in the
// regularization penalty.
func WithPenalizeIntercept(penalize bool) Option {
    return func(p *glmParams) {
        p.penalizeIntercept = penalize
    }
}

// WithSolver selects the optimizer; nil keeps the engine default.
func WithSolver(solver *glr.Solver) Option {
    return func(p *glmParams) {
        p.solver = solver
    }
}

// WithMultiClass switches the logistic model between the binary logistic
// loss and the multinomial loss. The multinomial model ignores it.
func WithMultiClass(multi bool) Option {
    return func(p *glmParams) {
        p.multiClass = multi
    }
}

// WithNClasses sets the expected class count. Fit overwrites it with the
// count observed in the training labels.
func WithNClasses(n int) Option {
    return func(p *glmParams) {
        p.nclasses = n
    }
}
