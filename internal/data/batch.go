package data

import (
	"fmt"

	"github.com/shopspring/decimal"
)

type BatchProcessor struct {
	batchSize int
}

func NewBatchProcessor(batchSize int) *BatchProcessor {
	if batchSize <= 0 {
		batchSize = 1000
	}
	return &BatchProcessor{batchSize: batchSize}
}

func (bp *BatchProcessor) ProcessBatches(X [][]decimal.Decimal, y []int, processFn func([][]decimal.Decimal, []int) error) error {
	if len(X) != len(y) {
		return fmt.Errorf("feature matrix and labels have different lengths: %d vs %d", len(X), len(y))
	}

	totalSamples := len(X)

	for start := 0; start < totalSamples; start += bp.batchSize {
		end := start + bp.batchSize
		if end > totalSamples {
			end = totalSamples
		}

		if err := processFn(X[start:end], y[start:end]); err != nil {
			return err
		}
	}

	return nil
}

func (bp *BatchProcessor) SetBatchSize(size int) {
	if size > 0 {
		bp.batchSize = size
	}
}

func (bp *BatchProcessor) GetBatchSize() int {
	return bp.batchSize
}
