package preprocessing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rows(vals ...[]float64) [][]decimal.Decimal {
	out := make([][]decimal.Decimal, len(vals))
	for i, row := range vals {
		out[i] = make([]decimal.Decimal, len(row))
		for j, v := range row {
			out[i][j] = decimal.NewFromFloat(v)
		}
	}
	return out
}

func TestScalerMinMax(t *testing.T) {
	X := rows([]float64{0, 10}, []float64{5, 20}, []float64{10, 30})

	scaler := NewScaler("minmax")
	result, err := scaler.FitTransform(X)
	require.NoError(t, err)

	zero := decimal.Zero
	one := decimal.NewFromInt(1)
	half := decimal.NewFromFloat(0.5)

	assert.True(t, result[0][0].Equal(zero))
	assert.True(t, result[1][0].Equal(half))
	assert.True(t, result[2][0].Equal(one))
	assert.True(t, result[0][1].Equal(zero))
	assert.True(t, result[2][1].Equal(one))
}

func TestScalerMinMaxConstantColumn(t *testing.T) {
	X := rows([]float64{3, 1}, []float64{3, 2})

	scaler := NewScaler("minmax")
	result, err := scaler.FitTransform(X)
	require.NoError(t, err)

	// A zero-span column maps to zero instead of dividing by zero.
	assert.True(t, result[0][0].IsZero())
	assert.True(t, result[1][0].IsZero())
}

func TestScalerStandard(t *testing.T) {
	X := rows([]float64{1, 0}, []float64{2, 0}, []float64{3, 0})

	scaler := NewScaler("standard")
	result, err := scaler.FitTransform(X)
	require.NoError(t, err)

	// Mean 2, population std sqrt(2/3); the middle sample lands on zero.
	assert.True(t, result[1][0].IsZero())

	f0, _ := result[0][0].Float64()
	f2, _ := result[2][0].Float64()
	assert.InDelta(t, -f2, f0, 1e-9)

	// Constant columns use std=1 and center to zero.
	assert.True(t, result[0][1].IsZero())
}

func TestScalerRawPassthrough(t *testing.T) {
	X := rows([]float64{1, 2}, []float64{3, 4})

	scaler := NewScaler("raw")
	result, err := scaler.FitTransform(X)
	require.NoError(t, err)
	for i := range X {
		for j := range X[i] {
			assert.True(t, result[i][j].Equal(X[i][j]))
		}
	}
}

func TestScalerUnknownType(t *testing.T) {
	scaler := NewScaler("log")
	err := scaler.Fit(rows([]float64{1}))
	assert.Error(t, err)
}

func TestScalerTransformBeforeFit(t *testing.T) {
	scaler := NewScaler("minmax")
	_, err := scaler.Transform(rows([]float64{1}))
	assert.Error(t, err)
}
