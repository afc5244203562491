package models

import (
    "fmt"

    "github.com/shopspring/decimal"
    "gonum.org/v1/gonum/mat"

    "glmclassifier/internal/glr"
)

// LogisticRegression configures a binary (or, with MultiClass, multiclass)
// logistic classifier. The zero set of options gives lambda=1, gamma=0,
// penalty=l2, fit_intercept=true, penalize_intercept=false, the default
// solver and two classes.
type LogisticRegression struct {
    BaseModel
    Lambda            float64
    Gamma             float64
    Penalty           glr.Penalty
    FitIntercept      bool
    PenalizeIntercept bool
    Solver            *glr.Solver
    MultiClass        bool
    NClasses          int
    Solution          *glr.Solution
}

func NewLogisticRegression(opts ...Option) *LogisticRegression {
    p := defaultGLMParams()
    for _, opt := range opts {
        opt(&p)
    }

    return &LogisticRegression{
        Lambda:            p.lambda,
        Gamma:             p.gamma,
        Penalty:           p.penalty,
        FitIntercept:      p.fitIntercept,
        PenalizeIntercept: p.penalizeIntercept,
        Solver:            p.solver,
        MultiClass:        p.multiClass,
        NClasses:          p.nclasses,
        BaseModel: BaseModel{
            Name: "LogisticRegression",
            Params: map[string]any{
                "lambda":             p.lambda,
                "gamma":              p.gamma,
                "penalty":            string(p.penalty),
                "fit_intercept":      p.fitIntercept,
                "penalize_intercept": p.penalizeIntercept,
                "multi_class":        p.multiClass,
            },
        },
    }
}

// GLR translates the configuration into the problem descriptor consumed by
// the glr engine. Pure field pass-through; invalid configurations surface in
// the descriptor constructor, not here.
func (lr *LogisticRegression) GLR() (*glr.Problem, error) {
    loss := glr.LossLogistic
    if lr.MultiClass {
        loss = glr.LossMultinomial
    }
    return glr.NewProblem(loss, lr.Lambda, lr.Gamma, lr.Penalty,
        lr.FitIntercept, lr.PenalizeIntercept, lr.NClasses, lr.Solver)
}

func (lr *LogisticRegression) Fit(X [][]decimal.Decimal, y []int) error {
    if len(X) == 0 || len(X[0]) == 0 {
        return fmt.Errorf("empty dataset")
    }
    if len(X) != len(y) {
        return fmt.Errorf("X has %d samples but y has %d labels", len(X), len(y))
    }

    lr.Classes = ExtractClasses(y)
    if len(lr.Classes) > 2 && !lr.MultiClass {
        return fmt.Errorf("%d classes found but multi_class is false; enable multi_class or use the multinomial model", len(lr.Classes))
    }
    lr.NClasses = len(lr.Classes)

    problem, err := lr.GLR()
    if err != nil {
        return fmt.Errorf("building problem descriptor: %w", err)
    }

    solution, err := glr.Fit(problem, toDense(X), encodeLabels(y, lr.Classes))
    if err != nil {
        return fmt.Errorf("fitting logistic regression: %w", err)
    }

    lr.Solution = solution
    return nil
}

func (lr *LogisticRegression) Predict(X [][]decimal.Decimal) []int {
    if lr.Solution == nil || len(X) == 0 {
        return nil
    }

    indices := lr.Solution.PredictClasses(toDense(X))
    predictions := make([]int, len(indices))
    for i, idx := range indices {
        predictions[i] = lr.Classes[idx]
    }
    return predictions
}

func (lr *LogisticRegression) PredictProba(X [][]decimal.Decimal) [][]decimal.Decimal {
    if lr.Solution == nil || len(X) == 0 {
        return nil
    }
    return probaToDecimal(lr.Solution.Probabilities(toDense(X)))
}

func (lr *LogisticRegression) Describe() string {
    if lr.MultiClass {
        return "Logistic classifier fitted with the multinomial (softmax) loss and an optional none/l1/l2/elastic-net penalty"
    }
    return "Logistic classifier fitted with the binary logistic loss and an optional none/l1/l2/elastic-net penalty"
}

func (lr *LogisticRegression) GetClasses() []int {
    return lr.Classes
}

func (lr *LogisticRegression) Reset() {
    lr.Solution = nil
    lr.Classes = nil
    lr.NClasses = 2
}

// encodeLabels maps raw labels onto their index in the sorted class list,
// which is what the engine expects.
func encodeLabels(y []int, classes []int) []int {
    index := make(map[int]int, len(classes))
    for i, class := range classes {
        index[class] = i
    }

    encoded := make([]int, len(y))
    for i, label := range y {
        encoded[i] = index[label]
    }
    return encoded
}

func probaToDecimal(probs *mat.Dense) [][]decimal.Decimal {
    n, k := probs.Dims()
    proba := make([][]decimal.Decimal, n)
    for i := 0; i < n; i++ {
        proba[i] = make([]decimal.Decimal, k)
        for j := 0; j < k; j++ {
            proba[i][j] = decimal.NewFromFloat(probs.At(i, j))
        }
    }
    return proba
}
