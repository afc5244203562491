package experiment

import (
    "encoding/csv"
    "fmt"
    "os"
    "time"

    "github.com/shopspring/decimal"
    "gopkg.in/yaml.v3"

    "glmclassifier/internal/data"
    "glmclassifier/internal/evaluation"
    "glmclassifier/internal/models"
    "glmclassifier/internal/preprocessing"
)

// ExperimentRunner sweeps hyperparameter grids from a YAML config and scores
// every combination on a held-out split, optionally with cross-validation.
type ExperimentRunner struct {
    Config *ExperimentConfig
}

type ExperimentConfig struct {
    Experiment struct {
        Preprocessing   []string  `yaml:"preprocessing"`
        TrainTestSplits []float64 `yaml:"train_test_splits"`
        CrossValidation struct {
            Folds int `yaml:"folds"`
        } `yaml:"cross_validation"`
        Algorithms struct {
            Logistic struct {
                Lambda     []float64 `yaml:"lambda"`
                Gamma      []float64 `yaml:"gamma"`
                Penalty    []string  `yaml:"penalty"`
                MultiClass bool      `yaml:"multi_class"`
            } `yaml:"logistic"`
            Multinomial struct {
                Lambda  []float64 `yaml:"lambda"`
                Gamma   []float64 `yaml:"gamma"`
                Penalty []string  `yaml:"penalty"`
            } `yaml:"multinomial"`
        } `yaml:"algorithms"`
    } `yaml:"experiment"`
}

func NewRunner(configFile string) (*ExperimentRunner, error) {
    raw, err := os.ReadFile(configFile)
    if err != nil {
        return nil, fmt.Errorf("failed to read config: %w", err)
    }

    config := &ExperimentConfig{}
    if err := yaml.Unmarshal(raw, config); err != nil {
        return nil, fmt.Errorf("failed to parse config: %w", err)
    }

    return &ExperimentRunner{Config: config}, nil
}

func (r *ExperimentRunner) RunAllExperiments(dataFile string) ([]ExperimentResult, error) {
    reader, err := data.NewCSVReader(dataFile)
    if err != nil {
        return nil, err
    }

    X, y, _, _, err := reader.LoadData()
    if err != nil {
        return nil, err
    }

    var results []ExperimentResult

    for _, prepMethod := range r.Config.Experiment.Preprocessing {
        XProcessed := r.preprocess(X, prepMethod)

        for _, split := range r.Config.Experiment.TrainTestSplits {
            logistic, err := r.testLogistic(XProcessed, y, prepMethod, split)
            if err != nil {
                return nil, err
            }
            results = append(results, logistic...)

            multinomial, err := r.testMultinomial(XProcessed, y, prepMethod, split)
            if err != nil {
                return nil, err
            }
            results = append(results, multinomial...)
        }
    }

    for i := range results {
        results[i].Dataset = dataFile
    }

    return results, nil
}

func (r *ExperimentRunner) preprocess(X [][]decimal.Decimal, method string) [][]decimal.Decimal {
    switch method {
    case "normalized", "minmax":
        scaler := preprocessing.NewScaler("minmax")
        result, err := scaler.FitTransform(X)
        if err != nil {
            return X
        }
        return result
    case "standardized", "standard":
        scaler := preprocessing.NewScaler("standard")
        result, err := scaler.FitTransform(X)
        if err != nil {
            return X
        }
        return result
    default:
        return X
    }
}

// gammaGrid returns the gamma values relevant for a penalty. Gamma only
// participates under elastic-net, so other penalties collapse to a single run.
func gammaGrid(penalty string, gammas []float64) []float64 {
    if penalty == "elastic-net" && len(gammas) > 0 {
        return gammas
    }
    return []float64{0}
}

func (r *ExperimentRunner) testLogistic(X [][]decimal.Decimal, y []int, prep string, split float64) ([]ExperimentResult, error) {
    grid := r.Config.Experiment.Algorithms.Logistic
    var results []ExperimentResult

    for _, lambda := range grid.Lambda {
        for _, penalty := range grid.Penalty {
            for _, gamma := range gammaGrid(penalty, grid.Gamma) {
                config := models.DefaultConfig("logistic")
                config.Lambda = lambda
                config.Gamma = gamma
                config.Penalty = penalty
                config.MultiClass = grid.MultiClass

                model, err := models.CreateModel(config)
                if err != nil {
                    return nil, err
                }

                result, err := r.evaluateModel(model, X, y, prep, split)
                if err != nil {
                    return nil, err
                }
                result.Algorithm = "logistic"
                results = append(results, result)
            }
        }
    }

    return results, nil
}

func (r *ExperimentRunner) testMultinomial(X [][]decimal.Decimal, y []int, prep string, split float64) ([]ExperimentResult, error) {
    grid := r.Config.Experiment.Algorithms.Multinomial
    var results []ExperimentResult

    for _, lambda := range grid.Lambda {
        for _, penalty := range grid.Penalty {
            for _, gamma := range gammaGrid(penalty, grid.Gamma) {
                config := models.DefaultConfig("multinomial")
                config.Lambda = lambda
                config.Gamma = gamma
                config.Penalty = penalty

                model, err := models.CreateModel(config)
                if err != nil {
                    return nil, err
                }

                result, err := r.evaluateModel(model, X, y, prep, split)
                if err != nil {
                    return nil, err
                }
                result.Algorithm = "multinomial"
                results = append(results, result)
            }
        }
    }

    return results, nil
}

func (r *ExperimentRunner) evaluateModel(model models.Model, X [][]decimal.Decimal, y []int, prep string, split float64) (ExperimentResult, error) {
    result := ExperimentResult{
        Parameters:     fmt.Sprintf("%v", model.GetParams()),
        Preprocessing:  prep,
        TrainTestSplit: fmt.Sprintf("%.0f-%.0f", split*100, (1-split)*100),
    }

    splitter := evaluation.NewTrainTestSplitter(1-split, 42, true)
    XTrain, XTest, yTrain, yTest, err := splitter.StratifiedSplit(X, y)
    if err != nil {
        return result, err
    }

    startTime := time.Now()
    if err := model.Fit(XTrain, yTrain); err != nil {
        return result, err
    }
    result.TrainingTimeMs = time.Since(startTime).Milliseconds()

    predictions := model.Predict(XTest)
    classes := models.ExtractClasses(y)
    metrics := evaluation.CalculateMetrics(yTest, predictions, classes)
    if metrics != nil {
        result.Accuracy = metrics.Accuracy
        result.Precision = metrics.MacroPrecision
        result.Recall = metrics.MacroRecall
        result.F1Score = metrics.MacroF1
    }

    if r.Config.Experiment.CrossValidation.Folds > 0 {
        cv := evaluation.NewCrossValidator(r.Config.Experiment.CrossValidation.Folds, true)
        _, mean, std, err := cv.ParallelCrossValidate(X, y, model)
        if err != nil {
            return result, fmt.Errorf("cross-validation failed: %w", err)
        }
        result.CVMean = mean
        result.CVStd = std
    }

    return result, nil
}

type ExperimentResult struct {
    Dataset        string
    Algorithm      string
    Parameters     string
    Preprocessing  string
    TrainTestSplit string
    Accuracy       float64
    Precision      float64
    Recall         float64
    F1Score        float64
    CVMean         float64
    CVStd          float64
    TrainingTimeMs int64
}

func (r *ExperimentRunner) ExportResults(results []ExperimentResult, filename string) error {
    file, err := os.Create(filename)
    if err != nil {
        return err
    }
    defer file.Close()

    writer := csv.NewWriter(file)
    defer writer.Flush()

    writer.Write([]string{
        "Dataset", "Algorithm", "Parameters", "Preprocessing",
        "TrainTestSplit", "Accuracy", "Precision", "Recall", "F1Score",
        "CVMean", "CVStd", "TrainingTimeMs",
    })

    for _, result := range results {
        writer.Write([]string{
            result.Dataset,
            result.Algorithm,
            result.Parameters,
            result.Preprocessing,
            result.TrainTestSplit,
            fmt.Sprintf("%.4f", result.Accuracy),
            fmt.Sprintf("%.4f", result.Precision),
            fmt.Sprintf("%.4f", result.Recall),
            fmt.Sprintf("%.4f", result.F1Score),
            fmt.Sprintf("%.4f", result.CVMean),
            fmt.Sprintf("%.4f", result.CVStd),
            fmt.Sprintf("%d", result.TrainingTimeMs),
        })
    }

    return writer.Error()
}
