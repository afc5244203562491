package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"glmclassifier/internal/glr"
)

func TestCreateModelLogistic(t *testing.T) {
	config := ModelConfig{
		Algorithm:    "logistic",
		Lambda:       0.5,
		Penalty:      "l1",
		FitIntercept: true,
	}

	model, err := CreateModel(config)
	require.NoError(t, err)

	lr, ok := model.(*LogisticRegression)
	require.True(t, ok)
	assert.Equal(t, 0.5, lr.Lambda)
	assert.Equal(t, glr.PenaltyL1, lr.Penalty)
	assert.False(t, lr.MultiClass)
}

func TestCreateModelMultinomial(t *testing.T) {
	config := ModelConfig{
		Algorithm:    "multinomial",
		Lambda:       2.0,
		Gamma:        0.1,
		Penalty:      "elastic-net",
		FitIntercept: true,
	}

	model, err := CreateModel(config)
	require.NoError(t, err)

	mr, ok := model.(*MultinomialRegression)
	require.True(t, ok)
	assert.Equal(t, 2.0, mr.Lambda)
	assert.Equal(t, 0.1, mr.Gamma)
	assert.Equal(t, glr.PenaltyElasticNet, mr.Penalty)
}

func TestCreateModelDefaultsPenalty(t *testing.T) {
	model, err := CreateModel(ModelConfig{Algorithm: "logistic", FitIntercept: true})
	require.NoError(t, err)
	assert.Equal(t, glr.PenaltyL2, model.(*LogisticRegression).Penalty)
}

func TestCreateModelSolverPassthrough(t *testing.T) {
	config := ModelConfig{
		Algorithm:    "logistic",
		Penalty:      "l2",
		LearningRate: 0.05,
		MaxIter:      300,
	}

	model, err := CreateModel(config)
	require.NoError(t, err)

	lr := model.(*LogisticRegression)
	require.NotNil(t, lr.Solver)
	assert.Equal(t, 0.05, lr.Solver.LearningRate)
	assert.Equal(t, 300, lr.Solver.MaxIter)
}

func TestCreateModelNoSolverWhenUnset(t *testing.T) {
	model, err := CreateModel(ModelConfig{Algorithm: "multinomial"})
	require.NoError(t, err)
	assert.Nil(t, model.(*MultinomialRegression).Solver)
}

func TestCreateModelUnknownAlgorithm(t *testing.T) {
	_, err := CreateModel(ModelConfig{Algorithm: "forest"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown algorithm")
}

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig("logistic")
	assert.Equal(t, "logistic", config.Algorithm)
	assert.Equal(t, 1.0, config.Lambda)
	assert.Equal(t, 0.0, config.Gamma)
	assert.Equal(t, "l2", config.Penalty)
	assert.True(t, config.FitIntercept)
	assert.False(t, config.PenalizeIntercept)
}
