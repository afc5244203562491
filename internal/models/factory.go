package models

import (
    "fmt"

    "glmclassifier/internal/glr"
)

type ModelConfig struct {
    Algorithm         string
    Lambda            float64
    Gamma             float64
    Penalty           string
    FitIntercept      bool
    PenalizeIntercept bool
    MultiClass        bool
    LearningRate      float64
    MaxIter           int
    Tol               float64
}

func CreateModel(config ModelConfig) (Model, error) {
    if config.Penalty == "" {
        config.Penalty = "l2"
    }

    var solver *glr.Solver
    if config.LearningRate > 0 || config.MaxIter > 0 || config.Tol > 0 {
        solver = &glr.Solver{
            LearningRate: config.LearningRate,
            MaxIter:      config.MaxIter,
            Tol:          config.Tol,
        }
    }

    opts := []Option{
        WithLambda(config.Lambda),
        WithGamma(config.Gamma),
        WithPenalty(glr.Penalty(config.Penalty)),
        WithFitIntercept(config.FitIntercept),
        WithPenalizeIntercept(config.PenalizeIntercept),
        WithSolver(solver),
    }

    switch config.Algorithm {
    case "logistic":
        opts = append(opts, WithMultiClass(config.MultiClass))
        return NewLogisticRegression(opts...), nil

    case "multinomial":
        return NewMultinomialRegression(opts...), nil

    default:
        return nil, fmt.Errorf("unknown algorithm: %s", config.Algorithm)
    }
}

func DefaultConfig(algorithm string) ModelConfig {
    return ModelConfig{
        Algorithm:    algorithm,
        Lambda:       1.0,
        Gamma:        0.0,
        Penalty:      "l2",
        FitIntercept: true,
    }
}
