package models

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"glmclassifier/internal/glr"
)

func dec(vals ...float64) []decimal.Decimal {
	row := make([]decimal.Decimal, len(vals))
	for i, v := range vals {
		row[i] = decimal.NewFromFloat(v)
	}
	return row
}

func binaryDataset() ([][]decimal.Decimal, []int) {
	X := [][]decimal.Decimal{
		dec(-2.0, 0.5),
		dec(-1.5, -0.5),
		dec(-1.0, 1.0),
		dec(-2.5, 0.0),
		dec(2.0, 0.5),
		dec(1.5, -0.5),
		dec(1.0, 1.0),
		dec(2.5, 0.0),
	}
	y := []int{0, 0, 0, 0, 1, 1, 1, 1}
	return X, y
}

func threeClassDataset() ([][]decimal.Decimal, []int) {
	X := [][]decimal.Decimal{
		dec(-1.0, -1.0),
		dec(-1.2, -0.8),
		dec(-0.9, -1.1),
		dec(0.0, 1.0),
		dec(0.1, 1.2),
		dec(-0.1, 0.9),
		dec(2.0, 2.0),
		dec(2.1, 1.9),
		dec(1.9, 2.2),
	}
	y := []int{0, 0, 0, 1, 1, 1, 2, 2, 2}
	return X, y
}

func TestNewLogisticRegressionDefaults(t *testing.T) {
	lr := NewLogisticRegression()

	assert.Equal(t, 1.0, lr.Lambda)
	assert.Equal(t, 0.0, lr.Gamma)
	assert.Equal(t, glr.PenaltyL2, lr.Penalty)
	assert.True(t, lr.FitIntercept)
	assert.False(t, lr.PenalizeIntercept)
	assert.False(t, lr.MultiClass)
	assert.Equal(t, 2, lr.NClasses)
	assert.Nil(t, lr.Solver)
	assert.Equal(t, "LogisticRegression", lr.GetName())
}

func TestLogisticRegressionGLRDefaults(t *testing.T) {
	problem, err := NewLogisticRegression().GLR()
	require.NoError(t, err)

	assert.Equal(t, glr.LossLogistic, problem.Loss())
	assert.Equal(t, 1.0, problem.Lambda())
	assert.Equal(t, 0.0, problem.Gamma())
	assert.Equal(t, glr.PenaltyL2, problem.Penalty())
	assert.True(t, problem.FitIntercept())
	assert.False(t, problem.PenalizeIntercept())
	assert.Equal(t, 2, problem.NClasses())
}

func TestLogisticRegressionGLRMultiClass(t *testing.T) {
	lr := NewLogisticRegression(WithMultiClass(true), WithNClasses(4))
	problem, err := lr.GLR()
	require.NoError(t, err)
	assert.Equal(t, glr.LossMultinomial, problem.Loss())
	assert.Equal(t, 4, problem.NClasses())
}

func TestLogisticRegressionGLRInvalidPenalty(t *testing.T) {
	lr := NewLogisticRegression(WithPenalty(glr.Penalty("l3")))
	_, err := lr.GLR()
	assert.Error(t, err)
}

func TestLogisticRegressionGLRPenaltyAlias(t *testing.T) {
	lr := NewLogisticRegression(WithPenalty(glr.Penalty("ridge")))
	problem, err := lr.GLR()
	require.NoError(t, err)
	assert.Equal(t, glr.PenaltyL2, problem.Penalty())
}

func TestLogisticRegressionFitPredict(t *testing.T) {
	X, y := binaryDataset()
	lr := NewLogisticRegression(WithLambda(0.01))

	require.NoError(t, lr.Fit(X, y))
	require.NotNil(t, lr.Solution)

	predictions := lr.Predict(X)
	assert.Equal(t, y, predictions)
	assert.Equal(t, []int{0, 1}, lr.GetClasses())
}

func TestLogisticRegressionRejectsThreeClasses(t *testing.T) {
	X, y := threeClassDataset()
	lr := NewLogisticRegression()

	err := lr.Fit(X, y)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "multi_class")
}

func TestLogisticRegressionMultiClassFit(t *testing.T) {
	X, y := threeClassDataset()
	lr := NewLogisticRegression(WithMultiClass(true), WithLambda(0.01))

	require.NoError(t, lr.Fit(X, y))
	assert.Equal(t, 3, lr.NClasses)
	assert.Equal(t, y, lr.Predict(X))
}

func TestLogisticRegressionPredictProba(t *testing.T) {
	X, y := binaryDataset()
	lr := NewLogisticRegression(WithLambda(0.01))
	require.NoError(t, lr.Fit(X, y))

	proba := lr.PredictProba(X)
	require.Len(t, proba, len(X))

	one := decimal.NewFromInt(1)
	for _, row := range proba {
		require.Len(t, row, 2)
		sum := row[0].Add(row[1])
		diff, _ := sum.Sub(one).Abs().Float64()
		assert.Less(t, diff, 1e-9)
	}
}

func TestLogisticRegressionNonContiguousLabels(t *testing.T) {
	X, _ := binaryDataset()
	y := []int{3, 3, 3, 3, 7, 7, 7, 7}

	lr := NewLogisticRegression(WithLambda(0.01))
	require.NoError(t, lr.Fit(X, y))

	assert.Equal(t, []int{3, 7}, lr.GetClasses())
	assert.Equal(t, y, lr.Predict(X))
}

func TestLogisticRegressionFitErrors(t *testing.T) {
	lr := NewLogisticRegression()

	assert.Error(t, lr.Fit(nil, nil))

	X, y := binaryDataset()
	assert.Error(t, lr.Fit(X, y[:3]))
}

func TestLogisticRegressionReset(t *testing.T) {
	X, y := binaryDataset()
	lr := NewLogisticRegression()
	require.NoError(t, lr.Fit(X, y))

	lr.Reset()
	assert.Nil(t, lr.Solution)
	assert.Nil(t, lr.GetClasses())
	assert.Equal(t, 2, lr.NClasses)
	assert.Nil(t, lr.Predict(X))
}

func TestLogisticRegressionDescribe(t *testing.T) {
	assert.Contains(t, NewLogisticRegression().Describe(), "binary logistic loss")
	assert.Contains(t, NewLogisticRegression(WithMultiClass(true)).Describe(), "softmax")
}
