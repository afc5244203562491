package evaluation

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeDataset(n int) ([][]decimal.Decimal, []int) {
	X := make([][]decimal.Decimal, n)
	y := make([]int, n)
	for i := 0; i < n; i++ {
		X[i] = []decimal.Decimal{decimal.NewFromInt(int64(i))}
		y[i] = i % 2
	}
	return X, y
}

func TestTrainTestSplitSizes(t *testing.T) {
	X, y := makeDataset(10)

	splitter := NewTrainTestSplitter(0.2, 42, true)
	XTrain, XTest, yTrain, yTest, err := splitter.Split(X, y)
	require.NoError(t, err)

	assert.Len(t, XTrain, 8)
	assert.Len(t, XTest, 2)
	assert.Len(t, yTrain, 8)
	assert.Len(t, yTest, 2)
}

func TestTrainTestSplitValidation(t *testing.T) {
	X, y := makeDataset(10)

	splitter := NewTrainTestSplitter(0.2, 42, true)
	_, _, _, _, err := splitter.Split(X, y[:5])
	assert.Error(t, err)

	_, _, _, _, err = splitter.Split(nil, nil)
	assert.Error(t, err)

	bad := NewTrainTestSplitter(1.5, 42, true)
	_, _, _, _, err = bad.Split(X, y)
	assert.Error(t, err)
}

func TestTrainTestSplitDeterministicSeed(t *testing.T) {
	X, y := makeDataset(20)

	first := NewTrainTestSplitter(0.25, 7, true)
	_, XTest1, _, _, err := first.Split(X, y)
	require.NoError(t, err)

	second := NewTrainTestSplitter(0.25, 7, true)
	_, XTest2, _, _, err := second.Split(X, y)
	require.NoError(t, err)

	assert.Equal(t, XTest1, XTest2)
}

func TestStratifiedSplitKeepsProportions(t *testing.T) {
	// 12 of class 0, 4 of class 1.
	X := make([][]decimal.Decimal, 16)
	y := make([]int, 16)
	for i := range X {
		X[i] = []decimal.Decimal{decimal.NewFromInt(int64(i))}
		if i >= 12 {
			y[i] = 1
		}
	}

	splitter := NewTrainTestSplitter(0.25, 42, true)
	_, _, yTrain, yTest, err := splitter.StratifiedSplit(X, y)
	require.NoError(t, err)

	testCount := map[int]int{}
	for _, label := range yTest {
		testCount[label]++
	}
	assert.Equal(t, 3, testCount[0])
	assert.Equal(t, 1, testCount[1])

	trainCount := map[int]int{}
	for _, label := range yTrain {
		trainCount[label]++
	}
	assert.Equal(t, 9, trainCount[0])
	assert.Equal(t, 3, trainCount[1])
}

func TestKFoldSplitterCoversAllSamples(t *testing.T) {
	X, y := makeDataset(10)

	kfs := NewKFoldSplitter(3, true, 42)
	XTrainFolds, XTestFolds, yTrainFolds, yTestFolds, err := kfs.Split(X, y)
	require.NoError(t, err)

	require.Len(t, XTestFolds, 3)
	total := 0
	for i := range XTestFolds {
		assert.Equal(t, len(XTestFolds[i]), len(yTestFolds[i]))
		assert.Equal(t, len(XTrainFolds[i]), len(yTrainFolds[i]))
		assert.Equal(t, 10, len(XTestFolds[i])+len(XTrainFolds[i]))
		total += len(XTestFolds[i])
	}
	assert.Equal(t, 10, total)
}

func TestKFoldSplitterValidation(t *testing.T) {
	X, y := makeDataset(4)

	kfs := NewKFoldSplitter(1, false, 42)
	_, _, _, _, err := kfs.Split(X, y)
	assert.Error(t, err)

	kfs = NewKFoldSplitter(5, false, 42)
	_, _, _, _, err = kfs.Split(X, y)
	assert.Error(t, err)
}
