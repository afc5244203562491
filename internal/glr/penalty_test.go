package glr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePenalty(t *testing.T) {
	tests := []struct {
		input    string
		expected Penalty
	}{
		{"none", PenaltyNone},
		{"l1", PenaltyL1},
		{"l2", PenaltyL2},
		{"elastic-net", PenaltyElasticNet},
		{"lasso", PenaltyL1},
		{"ridge", PenaltyL2},
		{"elasticnet", PenaltyElasticNet},
		{"elastic_net", PenaltyElasticNet},
		{"en", PenaltyElasticNet},
		{"L2", PenaltyL2},
		{"  l1  ", PenaltyL1},
		{"Elastic-Net", PenaltyElasticNet},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParsePenalty(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestParsePenaltyIdempotent(t *testing.T) {
	for _, p := range []Penalty{PenaltyNone, PenaltyL1, PenaltyL2, PenaltyElasticNet} {
		got, err := ParsePenalty(string(p))
		require.NoError(t, err)
		assert.Equal(t, p, got)
	}
}

func TestParsePenaltyInvalid(t *testing.T) {
	for _, input := range []string{"", "l3", "net", "ridge2", "l 1"} {
		_, err := ParsePenalty(input)
		assert.Error(t, err, "input %q", input)
	}
}
