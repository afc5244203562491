package models

import (
    "sort"

    "github.com/shopspring/decimal"
    "gonum.org/v1/gonum/mat"
)

// Model is the probabilistic classifier interface shared by all estimators,
// letting the pipeline fit, predict and describe them uniformly.
type Model interface {
    Fit(X [][]decimal.Decimal, y []int) error
    Predict(X [][]decimal.Decimal) []int
    PredictProba(X [][]decimal.Decimal) [][]decimal.Decimal
    Describe() string
    GetType() string
    GetName() string
    GetParams() map[string]any
    GetClasses() []int
    Reset()
}

type BaseModel struct {
    Name    string
    Params  map[string]any
    Classes []int
}

func (bm *BaseModel) GetType() string {
    return bm.Name
}

func (bm *BaseModel) GetName() string {
    return bm.Name
}

func (bm *BaseModel) GetParams() map[string]any {
    return bm.Params
}

// ExtractClasses returns the distinct labels of y in ascending order.
func ExtractClasses(y []int) []int {
    classMap := make(map[int]bool)
    for _, label := range y {
        classMap[label] = true
    }

    classes := make([]int, 0, len(classMap))
    for class := range classMap {
        classes = append(classes, class)
    }
    sort.Ints(classes)

    return classes
}

func toDense(X [][]decimal.Decimal) *mat.Dense {
    out := mat.NewDense(len(X), len(X[0]), nil)
    for i, row := range X {
        for j, v := range row {
            f, _ := v.Float64()
            out.Set(i, j, f)
        }
    }
    return out
}
