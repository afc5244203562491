package glr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProblemDefaultsThrough(t *testing.T) {
	p, err := NewProblem(LossLogistic, 1.0, 0.0, PenaltyL2, true, false, 2, nil)
	require.NoError(t, err)

	assert.Equal(t, LossLogistic, p.Loss())
	assert.Equal(t, 1.0, p.Lambda())
	assert.Equal(t, 0.0, p.Gamma())
	assert.Equal(t, PenaltyL2, p.Penalty())
	assert.True(t, p.FitIntercept())
	assert.False(t, p.PenalizeIntercept())
	assert.Equal(t, 2, p.NClasses())
	assert.Nil(t, p.Solver())
}

func TestNewProblemCanonicalizesPenalty(t *testing.T) {
	p, err := NewProblem(LossMultinomial, 0.5, 0.0, Penalty("ridge"), true, false, 3, nil)
	require.NoError(t, err)
	assert.Equal(t, PenaltyL2, p.Penalty())

	p, err = NewProblem(LossMultinomial, 0.5, 0.1, Penalty("ElasticNet"), true, false, 3, nil)
	require.NoError(t, err)
	assert.Equal(t, PenaltyElasticNet, p.Penalty())
}

func TestNewProblemRejectsInvalidConfigurations(t *testing.T) {
	tests := []struct {
		name     string
		loss     Loss
		lambda   float64
		gamma    float64
		penalty  Penalty
		nclasses int
	}{
		{"unknown penalty", LossLogistic, 1, 0, Penalty("l3"), 2},
		{"unknown loss", Loss("hinge"), 1, 0, PenaltyL2, 2},
		{"negative lambda", LossLogistic, -0.1, 0, PenaltyL2, 2},
		{"negative gamma", LossLogistic, 1, -1, PenaltyElasticNet, 2},
		{"too few classes", LossMultinomial, 1, 0, PenaltyL2, 1},
		{"logistic with three classes", LossLogistic, 1, 0, PenaltyL2, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewProblem(tt.loss, tt.lambda, tt.gamma, tt.penalty, true, false, tt.nclasses, nil)
			assert.Error(t, err)
		})
	}
}

func TestSolverWithDefaults(t *testing.T) {
	var nilSolver *Solver
	got := nilSolver.withDefaults()
	assert.Equal(t, *DefaultSolver(), got)

	partial := &Solver{MaxIter: 50}
	got = partial.withDefaults()
	assert.Equal(t, 50, got.MaxIter)
	assert.Equal(t, DefaultSolver().LearningRate, got.LearningRate)
	assert.Equal(t, DefaultSolver().Tol, got.Tol)
}
