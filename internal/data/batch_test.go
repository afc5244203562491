package data

import (
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// rowsOf builds a feature matrix with nCols columns from a flat value list.
func rowsOf(nCols int, vals ...float64) [][]decimal.Decimal {
	n := len(vals) / nCols
	out := make([][]decimal.Decimal, n)
	for i := 0; i < n; i++ {
		out[i] = make([]decimal.Decimal, nCols)
		for j := 0; j < nCols; j++ {
			out[i][j] = decimal.NewFromFloat(vals[i*nCols+j])
		}
	}
	return out
}

func TestBatchProcessorSplitsEvenly(t *testing.T) {
	X := rowsOf(1, 1, 2, 3, 4, 5)
	y := []int{0, 1, 0, 1, 0}

	bp := NewBatchProcessor(2)
	var sizes []int
	err := bp.ProcessBatches(X, y, func(bx [][]decimal.Decimal, by []int) error {
		require.Equal(t, len(bx), len(by))
		sizes = append(sizes, len(bx))
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []int{2, 2, 1}, sizes)
}

func TestBatchProcessorLengthMismatch(t *testing.T) {
	bp := NewBatchProcessor(2)
	err := bp.ProcessBatches(rowsOf(1, 1, 2), []int{0}, func([][]decimal.Decimal, []int) error {
		return nil
	})
	assert.Error(t, err)
}

func TestBatchProcessorPropagatesError(t *testing.T) {
	bp := NewBatchProcessor(1)
	calls := 0
	err := bp.ProcessBatches(rowsOf(1, 1, 2, 3), []int{0, 1, 0}, func([][]decimal.Decimal, []int) error {
		calls++
		if calls == 2 {
			return fmt.Errorf("boom")
		}
		return nil
	})
	require.Error(t, err)
	assert.Equal(t, 2, calls)
}

func TestBatchProcessorDefaultSize(t *testing.T) {
	bp := NewBatchProcessor(0)
	assert.Equal(t, 1000, bp.GetBatchSize())

	bp.SetBatchSize(-5)
	assert.Equal(t, 1000, bp.GetBatchSize())

	bp.SetBatchSize(10)
	assert.Equal(t, 10, bp.GetBatchSize())
}
