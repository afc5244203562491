package glr

import (
	"fmt"
	"strings"
)

// Penalty selects the regularization term added to the data-fit loss.
type Penalty string

const (
	PenaltyNone       Penalty = "none"
	PenaltyL1         Penalty = "l1"
	PenaltyL2         Penalty = "l2"
	PenaltyElasticNet Penalty = "elastic-net"
)

// ParsePenalty canonicalizes a penalty symbol. It accepts the canonical
// tokens as well as common spellings, so feeding a canonical token back in
// returns it unchanged.
func ParsePenalty(s string) (Penalty, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "none":
		return PenaltyNone, nil
	case "l1", "lasso":
		return PenaltyL1, nil
	case "l2", "ridge":
		return PenaltyL2, nil
	case "elastic-net", "elasticnet", "elastic_net", "en":
		return PenaltyElasticNet, nil
	default:
		return "", fmt.Errorf("glr: unrecognized penalty %q (want none, l1, l2 or elastic-net)", s)
	}
}

func (p Penalty) String() string {
	return string(p)
}
