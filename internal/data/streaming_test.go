package data

import (
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStreamingReaderBatches(t *testing.T) {
	path := writeCSV(t, "a,b,label\n1,2,x\n3,4,y\n5,6,x\n7,8,y\n9,10,x\n")

	reader, err := NewStreamingReader(path, -1, 2)
	require.NoError(t, err)
	defer reader.Close()

	assert.Equal(t, []string{"a", "b", "label"}, reader.GetHeaders())

	var sizes []int
	var labels []string
	for {
		batch, err := reader.ReadBatch()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		sizes = append(sizes, batch.Size)
		labels = append(labels, batch.Labels...)
	}

	assert.Equal(t, []int{2, 2, 1}, sizes)
	assert.Equal(t, []string{"x", "y", "x", "y", "x"}, labels)
}

func TestStreamingReaderSkipsMissingValues(t *testing.T) {
	path := writeCSV(t, "a,b,label\n1,2,x\n,4,y\n5,6,x\n")

	reader, err := NewStreamingReader(path, -1, 10)
	require.NoError(t, err)
	defer reader.Close()

	batch, err := reader.ReadBatch()
	require.NoError(t, err)
	assert.Equal(t, 2, batch.Size)
}

func TestProcessLargeFile(t *testing.T) {
	path := writeCSV(t, "a,label\n1,x\n2,y\n3,x\n")

	total := 0
	err := ProcessLargeFile(path, func(batch *DataBatch) error {
		total += batch.Size
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 3, total)
}
