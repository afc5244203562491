package models

import (
    "fmt"

    "github.com/shopspring/decimal"

    "glmclassifier/internal/glr"
)

// MultinomialRegression configures a multiclass classifier that is always
// fitted with the multinomial (softmax) loss; unlike LogisticRegression
// there is no multi_class switch. Defaults match the logistic variant:
// lambda=1, gamma=0, penalty=l2, fit_intercept=true,
// penalize_intercept=false, default solver, two classes.
type MultinomialRegression struct {
    BaseModel
    Lambda            float64
    Gamma             float64
    Penalty           glr.Penalty
    FitIntercept      bool
    PenalizeIntercept bool
    Solver            *glr.Solver
    NClasses          int
    Solution          *glr.Solution
}

func NewMultinomialRegression(opts ...Option) *MultinomialRegression {
    p := defaultGLMParams()
    for _, opt := range opts {
        opt(&p)
    }

    return &MultinomialRegression{
        Lambda:            p.lambda,
        Gamma:             p.gamma,
        Penalty:           p.penalty,
        FitIntercept:      p.fitIntercept,
        PenalizeIntercept: p.penalizeIntercept,
        Solver:            p.solver,
        NClasses:          p.nclasses,
        BaseModel: BaseModel{
            Name: "MultinomialRegression",
            Params: map[string]any{
                "lambda":             p.lambda,
                "gamma":              p.gamma,
                "penalty":            string(p.penalty),
                "fit_intercept":      p.fitIntercept,
                "penalize_intercept": p.penalizeIntercept,
            },
        },
    }
}

// GLR translates the configuration into a multinomial problem descriptor.
// The loss is fixed by the variant itself.
func (mr *MultinomialRegression) GLR() (*glr.Problem, error) {
    return glr.NewProblem(glr.LossMultinomial, mr.Lambda, mr.Gamma, mr.Penalty,
        mr.FitIntercept, mr.PenalizeIntercept, mr.NClasses, mr.Solver)
}

func (mr *MultinomialRegression) Fit(X [][]decimal.Decimal, y []int) error {
    if len(X) == 0 || len(X[0]) == 0 {
        return fmt.Errorf("empty dataset")
    }
    if len(X) != len(y) {
        return fmt.Errorf("X has %d samples but y has %d labels", len(X), len(y))
    }

    mr.Classes = ExtractClasses(y)
    mr.NClasses = len(mr.Classes)

    problem, err := mr.GLR()
    if err != nil {
        return fmt.Errorf("building problem descriptor: %w", err)
    }

    solution, err := glr.Fit(problem, toDense(X), encodeLabels(y, mr.Classes))
    if err != nil {
        return fmt.Errorf("fitting multinomial regression: %w", err)
    }

    mr.Solution = solution
    return nil
}

func (mr *MultinomialRegression) Predict(X [][]decimal.Decimal) []int {
    if mr.Solution == nil || len(X) == 0 {
        return nil
    }

    indices := mr.Solution.PredictClasses(toDense(X))
    predictions := make([]int, len(indices))
    for i, idx := range indices {
        predictions[i] = mr.Classes[idx]
    }
    return predictions
}

func (mr *MultinomialRegression) PredictProba(X [][]decimal.Decimal) [][]decimal.Decimal {
    if mr.Solution == nil || len(X) == 0 {
        return nil
    }
    return probaToDecimal(mr.Solution.Probabilities(toDense(X)))
}

func (mr *MultinomialRegression) Describe() string {
    return "Multinomial classifier always fitted with the multinomial (softmax) loss and an optional none/l1/l2/elastic-net penalty"
}

func (mr *MultinomialRegression) GetClasses() []int {
    return mr.Classes
}

func (mr *MultinomialRegression) Reset() {
    mr.Solution = nil
    mr.Classes = nil
    mr.NClasses = 2
}
