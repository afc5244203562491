package glr

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

// binaryToy is linearly separable along the first feature.
func binaryToy() (*mat.Dense, []int) {
	X := mat.NewDense(8, 2, []float64{
		-2.0, 0.5,
		-1.5, -0.5,
		-1.0, 1.0,
		-2.5, 0.0,
		2.0, 0.5,
		1.5, -0.5,
		1.0, 1.0,
		2.5, 0.0,
	})
	y := []int{0, 0, 0, 0, 1, 1, 1, 1}
	return X, y
}

// threeClassToy puts each class in its own cluster.
func threeClassToy() (*mat.Dense, []int) {
	X := mat.NewDense(9, 2, []float64{
		-1.0, -1.0,
		-1.2, -0.8,
		-0.9, -1.1,
		0.0, 1.0,
		0.1, 1.2,
		-0.1, 0.9,
		2.0, 2.0,
		2.1, 1.9,
		1.9, 2.2,
	})
	y := []int{0, 0, 0, 1, 1, 1, 2, 2, 2}
	return X, y
}

func TestFitBinaryLogistic(t *testing.T) {
	X, y := binaryToy()
	p, err := NewProblem(LossLogistic, 0.0, 0.0, PenaltyNone, true, false, 2, nil)
	require.NoError(t, err)

	sol, err := Fit(p, X, y)
	require.NoError(t, err)
	require.Len(t, sol.Weights, 1)
	require.Len(t, sol.Weights[0], 2)

	predictions := sol.PredictClasses(X)
	assert.Equal(t, y, predictions)

	// The first feature separates the classes, so its weight dominates.
	assert.Greater(t, sol.Weights[0][0], 0.0)
	assert.Greater(t, math.Abs(sol.Weights[0][0]), math.Abs(sol.Weights[0][1]))
}

func TestFitMultinomial(t *testing.T) {
	X, y := threeClassToy()
	p, err := NewProblem(LossMultinomial, 0.01, 0.0, PenaltyL2, true, false, 3, nil)
	require.NoError(t, err)

	sol, err := Fit(p, X, y)
	require.NoError(t, err)
	require.Len(t, sol.Weights, 3)

	predictions := sol.PredictClasses(X)
	assert.Equal(t, y, predictions)
}

func TestFitDeterministic(t *testing.T) {
	X, y := binaryToy()
	p, err := NewProblem(LossLogistic, 0.1, 0.0, PenaltyL2, true, false, 2, nil)
	require.NoError(t, err)

	first, err := Fit(p, X, y)
	require.NoError(t, err)
	second, err := Fit(p, X, y)
	require.NoError(t, err)

	assert.Equal(t, first.Weights, second.Weights)
	assert.Equal(t, first.Intercepts, second.Intercepts)
	assert.Equal(t, first.FinalLoss, second.FinalLoss)
	assert.Equal(t, first.Iterations, second.Iterations)
}

func TestFitPenaltyShrinksWeights(t *testing.T) {
	X, y := binaryToy()

	unpenalized, err := NewProblem(LossLogistic, 0.0, 0.0, PenaltyNone, true, false, 2, nil)
	require.NoError(t, err)
	penalized, err := NewProblem(LossLogistic, 10.0, 0.0, PenaltyL2, true, false, 2, nil)
	require.NoError(t, err)

	free, err := Fit(unpenalized, X, y)
	require.NoError(t, err)
	shrunk, err := Fit(penalized, X, y)
	require.NoError(t, err)

	freeNorm := free.Weights[0][0]*free.Weights[0][0] + free.Weights[0][1]*free.Weights[0][1]
	shrunkNorm := shrunk.Weights[0][0]*shrunk.Weights[0][0] + shrunk.Weights[0][1]*shrunk.Weights[0][1]
	assert.Less(t, shrunkNorm, freeNorm)
}

func TestFitElasticNetUsesGamma(t *testing.T) {
	X, y := binaryToy()

	l2Only, err := NewProblem(LossLogistic, 0.5, 0.0, PenaltyElasticNet, true, false, 2, nil)
	require.NoError(t, err)
	withL1, err := NewProblem(LossLogistic, 0.5, 0.5, PenaltyElasticNet, true, false, 2, nil)
	require.NoError(t, err)

	a, err := Fit(l2Only, X, y)
	require.NoError(t, err)
	b, err := Fit(withL1, X, y)
	require.NoError(t, err)

	assert.NotEqual(t, a.Weights, b.Weights)
}

func TestFitNoInterceptStaysZero(t *testing.T) {
	X, y := binaryToy()
	p, err := NewProblem(LossLogistic, 0.1, 0.0, PenaltyL2, false, false, 2, nil)
	require.NoError(t, err)

	sol, err := Fit(p, X, y)
	require.NoError(t, err)
	assert.Equal(t, 0.0, sol.Intercepts[0])
}

func TestFitCustomSolver(t *testing.T) {
	X, y := binaryToy()
	solver := &Solver{LearningRate: 0.05, MaxIter: 10, Tol: 1e-12}
	p, err := NewProblem(LossLogistic, 0.0, 0.0, PenaltyNone, true, false, 2, solver)
	require.NoError(t, err)

	sol, err := Fit(p, X, y)
	require.NoError(t, err)
	assert.Equal(t, 10, sol.Iterations)
	assert.False(t, sol.Converged)
}

func TestFitInputValidation(t *testing.T) {
	X, y := binaryToy()
	p, err := NewProblem(LossLogistic, 0.0, 0.0, PenaltyNone, true, false, 2, nil)
	require.NoError(t, err)

	_, err = Fit(nil, X, y)
	assert.Error(t, err)

	_, err = Fit(p, X, y[:4])
	assert.Error(t, err)

	bad := []int{0, 0, 0, 0, 1, 1, 1, 2}
	_, err = Fit(p, X, bad)
	assert.Error(t, err)
}

func TestProbabilitiesSumToOne(t *testing.T) {
	X, y := threeClassToy()
	p, err := NewProblem(LossMultinomial, 0.1, 0.0, PenaltyL2, true, false, 3, nil)
	require.NoError(t, err)

	sol, err := Fit(p, X, y)
	require.NoError(t, err)

	probs := sol.Probabilities(X)
	n, k := probs.Dims()
	require.Equal(t, 9, n)
	require.Equal(t, 3, k)

	for i := 0; i < n; i++ {
		sum := 0.0
		for c := 0; c < k; c++ {
			v := probs.At(i, c)
			assert.GreaterOrEqual(t, v, 0.0)
			assert.LessOrEqual(t, v, 1.0)
			sum += v
		}
		assert.InDelta(t, 1.0, sum, 1e-9)
	}
}

func TestBinaryProbabilitiesTwoColumns(t *testing.T) {
	X, y := binaryToy()
	p, err := NewProblem(LossLogistic, 0.0, 0.0, PenaltyNone, true, false, 2, nil)
	require.NoError(t, err)

	sol, err := Fit(p, X, y)
	require.NoError(t, err)

	probs := sol.Probabilities(X)
	n, k := probs.Dims()
	require.Equal(t, 8, n)
	require.Equal(t, 2, k)

	for i := 0; i < n; i++ {
		assert.InDelta(t, 1.0, probs.At(i, 0)+probs.At(i, 1), 1e-12)
	}
}
