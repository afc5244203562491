package commander

import (
    "bufio"
    "encoding/csv"
    "fmt"
    "math"
    "os"
    "path/filepath"
    "strconv"
    "strings"
    "time"

    "glmclassifier/internal/data"
    "glmclassifier/internal/evaluation"
    "glmclassifier/internal/experiment"
    "glmclassifier/internal/jobs"
    "glmclassifier/internal/models"
    "glmclassifier/internal/persistence"
    "glmclassifier/internal/preprocessing"

    "github.com/fatih/color"
    "github.com/shopspring/decimal"
)

type Commander struct {
    currentModel     models.Model
    modelBundle      *persistence.ModelBundle
    currentModelPath string
    loadedData       *DataSet
    jobManager       *jobs.Manager

    green  func(a ...any) string
    red    func(a ...any) string
    yellow func(a ...any) string
    cyan   func(a ...any) string
    blue   func(a ...any) string
}

type DataSet struct {
    X          [][]decimal.Decimal
    y          []int
    Features   []string
    Classes    []string
    SourceFile string
}

func NewCommander() *Commander {
    return &Commander{
        jobManager: jobs.NewManager(),
        green:      color.New(color.FgGreen).SprintFunc(),
        red:        color.New(color.FgRed).SprintFunc(),
        yellow:     color.New(color.FgYellow).SprintFunc(),
        cyan:       color.New(color.FgCyan).SprintFunc(),
        blue:       color.New(color.FgBlue).SprintFunc(),
    }
}

func (c *Commander) Start() {
    c.printWelcome()
    scanner := bufio.NewScanner(os.Stdin)

    for {
        fmt.Print(c.yellow("\nglm> "))
        if !scanner.Scan() {
            if scanner.Err() != nil {
                fmt.Printf("\n%s Scanner error: %v\n", c.red("✗"), scanner.Err())
            }
            break
        }

        input := strings.TrimSpace(scanner.Text())
        if input == "" {
            continue
        }

        parts := strings.Fields(input)
        command := strings.ToLower(parts[0])
        args := parts[1:]

        c.ExecuteCommand(command, args)
    }
}

func (c *Commander) ExecuteCommand(command string, args []string) {
    switch command {
    case "help", "h":
        c.showHelp()
    case "load":
        if len(args) > 0 {
            c.loadData(args[0])
        } else {
            fmt.Println(c.red("Usage: load <filename>"))
        }
    case "load-streaming":
        if len(args) > 0 {
            c.loadStreamingData(args)
        } else {
            fmt.Println(c.red("Usage: load-streaming <filename> --batch-size=1000"))
        }
    case "info":
        c.showDataInfo()
    case "train":
        if len(args) > 0 {
            c.trainModel(args[0], args[1:])
        } else {
            c.showTrainHelp()
        }
    case "train-bg":
        if len(args) > 0 {
            c.trainModelBackground(args[0], args[1:])
        } else {
            fmt.Println(c.red("Usage: train-bg <algorithm> [params]"))
        }
    case "predict":
        c.predict(args)
    case "batch":
        if len(args) > 0 {
            c.batchPredict(args[0])
        } else {
            fmt.Println(c.red("Usage: batch <filename>"))
        }
    case "evaluate":
        c.evaluate()
    case "cv":
        c.crossValidate(args)
    case "loadmodel":
        if len(args) > 0 {
            c.loadModel(args[0])
        } else {
            fmt.Println(c.red("Usage: loadmodel <filename>"))
        }
    case "list":
        c.listModels()
    case "current":
        c.showCurrentModel()
    case "compare":
        c.compareModels()
    case "experiment":
        if len(args) > 0 {
            c.runExperiment(args[0])
        } else {
            fmt.Println(c.red("Usage: experiment <config.yaml>"))
        }
    case "job-status":
        if len(args) > 0 {
            c.showJobStatus(args[0])
        } else {
            c.listAllJobs()
        }
    case "job-cancel":
        if len(args) > 0 {
            c.cancelJob(args[0])
        } else {
            fmt.Println(c.red("Usage: job-cancel <job-id>"))
        }
    case "job-logs":
        if len(args) > 0 {
            c.showJobLogs(args[0])
        } else {
            fmt.Println(c.red("Usage: job-logs <job-id>"))
        }
    case "clear":
        c.clearScreen()
    case "quit", "exit", "q":
        c.quit()
    default:
        fmt.Printf("%s Unknown command: %s\n", c.red("✗"), command)
        fmt.Println("Type 'help' for available commands")
    }
}

func (c *Commander) printWelcome() {
    fmt.Println(c.cyan("╔══════════════════════════════════════════╗"))
    fmt.Println(c.cyan("║       GLM Classifier Commander            ║"))
    fmt.Println(c.cyan("║   Logistic & Multinomial Training         ║"))
    fmt.Println(c.cyan("╚══════════════════════════════════════════╝"))
    fmt.Println()
    fmt.Println("Type 'help' for available commands")
}

func (c *Commander) showHelp() {
    fmt.Println(c.blue("\nAvailable Commands:"))

    fmt.Println("\n" + c.cyan("Data Management:"))
    fmt.Println("  load <file>            - Load dataset from CSV")
    fmt.Println("  load-streaming <file>  - Load large dataset in batches")
    fmt.Println("  info                   - Show loaded data information")

    fmt.Println("\n" + c.cyan("Model Training:"))
    fmt.Println("  train <algo>           - Train a model (logistic, multinomial)")
    fmt.Println("  train-bg <algo>        - Train model in background")
    fmt.Println("                           Models are auto-saved to models/ directory")
    fmt.Println("  evaluate               - Evaluate current model")
    fmt.Println("  cv [folds]             - Run cross-validation on current model")

    fmt.Println("\n" + c.cyan("Model Management:"))
    fmt.Println("  list                   - List all saved models")
    fmt.Println("  loadmodel <file>       - Load a saved model")
    fmt.Println("  current                - Show current active model info")
    fmt.Println("  compare                - Compare saved models")

    fmt.Println("\n" + c.cyan("Predictions:"))
    fmt.Println("  predict [values]       - Make a prediction with current model")
    fmt.Println("  batch <file>           - Batch predictions from CSV")

    fmt.Println("\n" + c.cyan("Experiments:"))
    fmt.Println("  experiment <config>    - Run hyperparameter sweep from YAML config")

    fmt.Println("\n" + c.cyan("Job Management:"))
    fmt.Println("  job-status [job-id]    - Show job status or list all jobs")
    fmt.Println("  job-cancel <job-id>    - Cancel a running job")
    fmt.Println("  job-logs <job-id>      - View job logs")

    fmt.Println("\n" + c.cyan("System:"))
    fmt.Println("  help                   - Show this help message")
    fmt.Println("  clear                  - Clear screen")
    fmt.Println("  quit                   - Exit program")
}

func (c *Commander) showTrainHelp() {
    fmt.Println(c.blue("\nTrain Command Usage:"))
    fmt.Println("  train logistic         - Binary logistic regression (l2 by default)")
    fmt.Println("  train multinomial      - Multinomial (softmax) regression")
    fmt.Println("\nOptions:")
    fmt.Println("  --lambda=<v>           - Regularization strength (default 1.0)")
    fmt.Println("  --gamma=<v>            - L1 strength, elastic-net only")
    fmt.Println("  --penalty=<p>          - none, l1, l2 or elastic-net")
    fmt.Println("  --no-intercept         - Fit without an intercept")
    fmt.Println("  --penalize-intercept   - Include intercept in the penalty")
    fmt.Println("  --multiclass           - Switch logistic to the softmax loss")
    fmt.Println("  --lr=<v>               - Solver learning rate")
    fmt.Println("  --max-iter=<n>         - Solver iteration cap")
    fmt.Println("  --split=<v>            - Train fraction (default 0.8)")
    fmt.Println("  --prep=<m>             - raw, normalized or standardized")
    fmt.Println("\nExample: train logistic --lambda=0.5 --penalty=elastic-net --gamma=0.1")
}

func (c *Commander) loadData(filename string) {
    startTime := time.Now()
    fmt.Printf("Loading data from %s...\n", filename)

    reader, err := data.NewCSVReader(filename)
    if err != nil {
        fmt.Printf("%s Error: %v\n", c.red("✗"), err)
        return
    }

    X, y, features, encoder, err := reader.LoadData()
    if err != nil {
        fmt.Printf("%s Error reading CSV: %v\n", c.red("✗"), err)
        return
    }

    validator := data.NewDataValidator()
    if err := validator.ValidateLabels(y); err != nil {
        fmt.Printf("%s Invalid labels: %v\n", c.red("✗"), err)
        return
    }

    classCount := make(map[int]int)
    for _, label := range y {
        classCount[label]++
    }

    minCount := len(y)
    maxCount := 0
    for _, count := range classCount {
        if count < minCount {
            minCount = count
        }
        if count > maxCount {
            maxCount = count
        }
    }

    c.loadedData = &DataSet{
        X:          X,
        y:          y,
        Features:   features,
        Classes:    encoder.ClassNames(),
        SourceFile: filename,
    }

    fmt.Printf("%s Data loaded successfully!\n", c.green("✓"))
    fmt.Println(strings.Repeat("─", 50))
    fmt.Printf("Load time:     %.3fs\n", time.Since(startTime).Seconds())
    fmt.Printf("Samples:       %d\n", len(X))
    fmt.Printf("Features:      %d\n", len(features))
    fmt.Printf("Classes:       %d\n", len(c.loadedData.Classes))

    fmt.Print("Distribution:  ")
    for class, name := range c.loadedData.Classes {
        fmt.Printf("%s:%d ", name, classCount[class])
    }
    fmt.Println()

    if minCount > 0 {
        imbalanceRatio := float64(maxCount) / float64(minCount)
        if imbalanceRatio > 2 {
            fmt.Printf("%s Class imbalance detected (ratio: %.2f)\n",
                c.yellow("⚠"), imbalanceRatio)
            fmt.Println("  Consider stratified splitting or a stronger penalty")
        }
    }

    fmt.Println(strings.Repeat("─", 50))
    fmt.Println("Ready to train! Use 'train <algorithm>' command")
}

// parseTrainOptions splits training flags from the argument list and applies
// them onto a model config. Unknown flags are reported, not silently dropped.
func (c *Commander) parseTrainOptions(config *models.ModelConfig, params []string) (splitRatio float64, prepMethod string, err error) {
    splitRatio = 0.8
    prepMethod = "raw"

    for _, param := range params {
        switch {
        case strings.HasPrefix(param, "--lambda="):
            config.Lambda, err = strconv.ParseFloat(strings.TrimPrefix(param, "--lambda="), 64)
        case strings.HasPrefix(param, "--gamma="):
            config.Gamma, err = strconv.ParseFloat(strings.TrimPrefix(param, "--gamma="), 64)
        case strings.HasPrefix(param, "--penalty="):
            config.Penalty = strings.TrimPrefix(param, "--penalty=")
        case param == "--no-intercept":
            config.FitIntercept = false
        case param == "--penalize-intercept":
            config.PenalizeIntercept = true
        case param == "--multiclass":
            config.MultiClass = true
        case strings.HasPrefix(param, "--lr="):
            config.LearningRate, err = strconv.ParseFloat(strings.TrimPrefix(param, "--lr="), 64)
        case strings.HasPrefix(param, "--max-iter="):
            config.MaxIter, err = strconv.Atoi(strings.TrimPrefix(param, "--max-iter="))
        case strings.HasPrefix(param, "--tol="):
            config.Tol, err = strconv.ParseFloat(strings.TrimPrefix(param, "--tol="), 64)
        case strings.HasPrefix(param, "--split="):
            var val float64
            val, err = strconv.ParseFloat(strings.TrimPrefix(param, "--split="), 64)
            if err == nil && val > 0 && val < 1 {
                splitRatio = val
            }
        case strings.HasPrefix(param, "--prep="):
            prepMethod = strings.TrimPrefix(param, "--prep=")
        default:
            err = fmt.Errorf("unknown option: %s", param)
        }
        if err != nil {
            return 0, "", fmt.Errorf("invalid option %q: %w", param, err)
        }
    }

    return splitRatio, prepMethod, nil
}

func (c *Commander) applyPreprocessing(X [][]decimal.Decimal, method string) ([][]decimal.Decimal, *preprocessing.Scaler) {
    var scaler *preprocessing.Scaler

    switch method {
    case "normalized", "minmax":
        scaler = preprocessing.NewScaler("minmax")
    case "standardized", "standard":
        scaler = preprocessing.NewScaler("standard")
    default:
        return X, nil
    }

    result, err := scaler.FitTransform(X)
    if err != nil {
        fmt.Printf("%s Preprocessing failed, using raw data: %v\n", c.yellow("⚠"), err)
        return X, nil
    }
    return result, scaler
}

func (c *Commander) trainModel(algorithm string, params []string) {
    if c.loadedData == nil {
        fmt.Println(c.red("No data loaded. Use 'load <file>' first"))
        return
    }

    config := models.DefaultConfig(algorithm)
    splitRatio, prepMethod, err := c.parseTrainOptions(&config, params)
    if err != nil {
        fmt.Printf("%s %v\n", c.red("✗"), err)
        return
    }

    model, err := models.CreateModel(config)
    if err != nil {
        fmt.Printf("%s %v\n", c.red("✗"), err)
        c.showTrainHelp()
        return
    }

    fmt.Printf("Training %s model...\n", algorithm)
    fmt.Printf("Configuration: lambda=%.4g, gamma=%.4g, penalty=%s, split=%.0f/%.0f, preprocessing=%s\n",
        config.Lambda, config.Gamma, config.Penalty,
        splitRatio*100, (1-splitRatio)*100, prepMethod)

    XProcessed, scaler := c.applyPreprocessing(c.loadedData.X, prepMethod)

    splitter := evaluation.NewTrainTestSplitter(1-splitRatio, time.Now().UnixNano(), true)
    XTrain, XTest, yTrain, yTest, err := splitter.StratifiedSplit(XProcessed, c.loadedData.y)
    if err != nil {
        fmt.Printf("%s Failed to split data: %v\n", c.red("✗"), err)
        return
    }

    startTime := time.Now()
    if err := model.Fit(XTrain, yTrain); err != nil {
        fmt.Printf("%s Training error: %v\n", c.red("✗"), err)
        return
    }
    trainingTime := time.Since(startTime)

    predictions := model.Predict(XTest)
    classes := models.ExtractClasses(c.loadedData.y)
    metrics := evaluation.CalculateMetrics(yTest, predictions, classes)
    if metrics == nil {
        fmt.Printf("%s Evaluation produced no metrics\n", c.red("✗"))
        return
    }

    bundle := persistence.NewModelBundle(model)
    bundle.Scaler = scaler
    bundle.Metadata.Dataset = c.loadedData.SourceFile
    bundle.Metadata.Accuracy = metrics.Accuracy
    bundle.Metadata.Precision = metrics.MacroPrecision
    bundle.Metadata.Recall = metrics.MacroRecall
    bundle.Metadata.F1Score = metrics.MacroF1
    bundle.Metadata.TrainingTime = trainingTime
    bundle.Metadata.Features = c.loadedData.Features
    bundle.Metadata.Classes = c.loadedData.Classes

    timestamp := time.Now().Format("20060102_150405")
    datasetName := strings.TrimSuffix(filepath.Base(c.loadedData.SourceFile), filepath.Ext(c.loadedData.SourceFile))
    modelName := fmt.Sprintf("%s_%s_%s_%s", algorithm, datasetName, prepMethod, timestamp)
    filename := filepath.Join("models", modelName+".model")

    os.MkdirAll("models", 0755)

    if err := bundle.Save(filename); err != nil {
        fmt.Printf("%s Failed to save model: %v\n", c.red("✗"), err)
        return
    }

    c.currentModel = model
    c.modelBundle = bundle
    c.currentModelPath = filename
    c.saveTrainingLog(modelName, bundle.Metadata)

    fmt.Printf("%s Model trained successfully!\n", c.green("✓"))
    fmt.Println(strings.Repeat("─", 50))
    fmt.Printf("Training time:  %.2fs\n", trainingTime.Seconds())
    fmt.Printf("Test Accuracy:  %.4f\n", metrics.Accuracy)
    fmt.Printf("Test Precision: %.4f\n", metrics.MacroPrecision)
    fmt.Printf("Test Recall:    %.4f\n", metrics.MacroRecall)
    fmt.Printf("Test F1 Score:  %.4f\n", metrics.MacroF1)
    fmt.Println(strings.Repeat("─", 50))
    fmt.Printf("Model saved: %s\n", filename)
}

func (c *Commander) saveTrainingLog(modelName string, metadata persistence.BundleMetadata) {
    logFile := filepath.Join("models", "training_log.csv")
    file, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
    if err != nil {
        return
    }
    defer file.Close()

    info, _ := file.Stat()
    if info.Size() == 0 {
        fmt.Fprintln(file, "Timestamp,Model,Dataset,Accuracy,TrainingTime")
    }

    fmt.Fprintf(file, "%s,%s,%s,%.4f,%.2f\n",
        time.Now().Format("2006-01-02 15:04:05"),
        modelName,
        metadata.Dataset,
        metadata.Accuracy,
        metadata.TrainingTime.Seconds())
}

func (c *Commander) evaluate() {
    if c.currentModel == nil {
        fmt.Println(c.red("No model trained. Train a model first"))
        return
    }
    if c.loadedData == nil {
        fmt.Println(c.red("No data loaded"))
        return
    }

    fmt.Println(c.blue("\nModel Evaluation:"))
    fmt.Println(strings.Repeat("═", 60))
    fmt.Println(c.currentModel.Describe())
    fmt.Println(strings.Repeat("─", 60))

    splitter := evaluation.NewTrainTestSplitter(0.2, time.Now().UnixNano(), true)
    _, XTest, _, yTest, err := splitter.StratifiedSplit(c.loadedData.X, c.loadedData.y)
    if err != nil {
        fmt.Printf("%s Error splitting data: %v\n", c.red("✗"), err)
        return
    }

    XTestProcessed := XTest
    if c.modelBundle != nil && c.modelBundle.Scaler != nil {
        XTestProcessed, err = c.modelBundle.Scaler.Transform(XTest)
        if err != nil {
            fmt.Printf("%s Error preprocessing data: %v\n", c.red("✗"), err)
            return
        }
    }

    predictions := c.currentModel.Predict(XTestProcessed)
    classes := models.ExtractClasses(c.loadedData.y)
    metrics := evaluation.CalculateMetrics(yTest, predictions, classes)
    if metrics == nil {
        fmt.Printf("%s Evaluation produced no metrics\n", c.red("✗"))
        return
    }

    fmt.Println(c.cyan("Confusion Matrix:"))
    fmt.Println("(Rows = Actual, Columns = Predicted)")
    fmt.Print("                  ")
    for _, class := range classes {
        fmt.Printf("%-10s", c.className(class))
    }
    fmt.Println()

    for i, actualClass := range classes {
        fmt.Printf("%-18s", c.className(actualClass))
        for j := range classes {
            count := metrics.ConfusionMatrix[i][j]
            switch {
            case i == j:
                fmt.Printf("%-10s", c.green(fmt.Sprintf("%d", count)))
            case count > 0:
                fmt.Printf("%-10s", c.red(fmt.Sprintf("%d", count)))
            default:
                fmt.Printf("%-10d", count)
            }
        }
        fmt.Println()
    }

    fmt.Println(strings.Repeat("─", 60))
    fmt.Printf("Simple Accuracy:    %.4f  (%d/%d correct)\n",
        metrics.Accuracy,
        int(metrics.Accuracy*float64(len(yTest))+0.5),
        len(yTest))
    fmt.Printf("Balanced Accuracy:  %.4f  (avg of class recalls)\n",
        metrics.BalancedAccuracy)

    fmt.Println(c.cyan("\nPrecision, Recall, F1:"))
    fmt.Println(strings.Repeat("─", 60))
    fmt.Printf("%-15s %-12s %-12s %-12s\n", "Method", "Precision", "Recall", "F1-Score")
    fmt.Printf("%-15s %-12.4f %-12.4f %-12.4f\n",
        "Macro", metrics.MacroPrecision, metrics.MacroRecall, metrics.MacroF1)
    fmt.Printf("%-15s %-12.4f %-12.4f %-12.4f\n",
        "Weighted", metrics.WeightedPrecision, metrics.WeightedRecall, metrics.WeightedF1)

    fmt.Println(c.cyan("\nPer-Class Metrics:"))
    fmt.Println(strings.Repeat("─", 70))
    fmt.Printf("%-15s %-10s %-10s %-12s %-10s %-8s\n",
        "Class", "Precision", "Recall", "Specificity", "F1-Score", "Support")
    fmt.Println(strings.Repeat("─", 70))

    for _, class := range classes {
        classMetrics := metrics.PerClassMetrics[class]
        fmt.Printf("%-15s %-10.4f %-10.4f %-12.4f %-10.4f %-8d\n",
            c.className(class),
            classMetrics.Precision,
            classMetrics.Recall,
            classMetrics.Specificity,
            classMetrics.F1Score,
            metrics.ClassSupport[class])
    }

    fmt.Println(strings.Repeat("═", 70))

    accuracyDiff := math.Abs(metrics.Accuracy - metrics.BalancedAccuracy)
    if accuracyDiff > 0.05 && metrics.BalancedAccuracy < metrics.Accuracy {
        fmt.Printf("\n%s Simple accuracy exceeds balanced accuracy by %.3f\n",
            c.yellow("Note:"), accuracyDiff)
        fmt.Println("  Model may be biased toward the majority class")
    }
}

func (c *Commander) className(class int) string {
    if c.loadedData != nil && class >= 0 && class < len(c.loadedData.Classes) {
        name := c.loadedData.Classes[class]
        if len(name) > 12 {
            return name[:12]
        }
        return name
    }
    return fmt.Sprintf("Class %d", class)
}

func (c *Commander) crossValidate(args []string) {
    if c.currentModel == nil {
        fmt.Println(c.red("No model trained. Train a model first"))
        return
    }
    if c.loadedData == nil {
        fmt.Println(c.red("No data loaded"))
        return
    }

    folds := 5
    if len(args) > 0 {
        if f, err := strconv.Atoi(args[0]); err == nil && f > 1 {
            folds = f
        }
    }

    fmt.Printf("Running %d-fold cross-validation...\n", folds)

    cv := evaluation.NewCrossValidator(folds, true)
    scores, mean, std, err := cv.ParallelCrossValidate(
        c.loadedData.X, c.loadedData.y, c.currentModel)
    if err != nil {
        fmt.Printf("%s Cross-validation failed: %v\n", c.red("✗"), err)
        return
    }

    fmt.Printf("%s Cross-validation complete!\n", c.green("✓"))
    fmt.Print("Scores: [")
    for i, s := range scores {
        if i > 0 {
            fmt.Print(" ")
        }
        fmt.Printf("%.4f", s)
    }
    fmt.Println("]")
    fmt.Printf("Mean: %.4f (±%.4f)\n", mean, std)
}

func (c *Commander) loadModel(filename string) {
    if !strings.Contains(filename, "/") {
        filename = filepath.Join("models", filename)
    }
    if !strings.Contains(filename, ".") {
        filename = filename + ".model"
    }

    bundle, err := persistence.LoadModelBundle(filename)
    if err != nil {
        fmt.Printf("%s Error loading model: %v\n", c.red("✗"), err)
        fmt.Println("Ensure the file exists in models/ directory")
        return
    }

    c.modelBundle = bundle
    c.currentModel = bundle.Model
    c.currentModelPath = filename

    fmt.Printf("%s Model loaded successfully!\n", c.green("✓"))
    fmt.Printf("Model: %s\n", bundle.Metadata.ModelName)
    fmt.Printf("Dataset: %s\n", bundle.Metadata.Dataset)
    fmt.Printf("Accuracy: %.4f | F1: %.4f\n",
        bundle.Metadata.Accuracy, bundle.Metadata.F1Score)
    fmt.Printf("Created: %s\n", bundle.CreatedAt.Format("2006-01-02 15:04:05"))
    fmt.Println("Use 'predict' or 'evaluate' to interact with the model")
}

func (c *Commander) listModels() {
    modelFiles, err := filepath.Glob("models/*.model")
    if err != nil || len(modelFiles) == 0 {
        fmt.Println("No saved models found in models/ directory")
        fmt.Println("Train a model using 'train <algorithm>' command")
        return
    }

    fmt.Println(c.blue("\nSaved Models:"))
    fmt.Println(strings.Repeat("─", 70))
    fmt.Printf("%-40s %-10s %-15s %-10s\n", "Filename", "Size", "Modified", "Status")
    fmt.Println(strings.Repeat("─", 70))

    for _, file := range modelFiles {
        info, err := os.Stat(file)
        if err != nil {
            continue
        }

        status := ""
        if c.currentModelPath == file {
            status = c.cyan("[ACTIVE]")
        }

        fmt.Printf("%-40s %-10s %-15s %-10s\n",
            filepath.Base(file),
            fmt.Sprintf("%.1f KB", float64(info.Size())/1024),
            info.ModTime().Format("01-02 15:04"),
            status)
    }

    fmt.Println()
    fmt.Println("Use 'loadmodel <filename>' to load a model")
}

func (c *Commander) showCurrentModel() {
    if c.currentModel == nil {
        fmt.Println(c.red("No model currently loaded"))
        fmt.Println("Use 'train <algorithm>' to train a new model")
        fmt.Println("Or 'loadmodel <filename>' to load an existing model")
        return
    }

    fmt.Println(c.blue("\nCurrent Active Model:"))
    fmt.Println(strings.Repeat("─", 50))
    fmt.Printf("Model Type: %s\n", c.currentModel.GetName())
    fmt.Printf("Description: %s\n", c.currentModel.Describe())
    fmt.Printf("Parameters: %v\n", c.currentModel.GetParams())

    if c.modelBundle != nil {
        fmt.Printf("Dataset: %s\n", c.modelBundle.Metadata.Dataset)
        fmt.Printf("Accuracy: %.4f\n", c.modelBundle.Metadata.Accuracy)
        fmt.Printf("Precision: %.4f\n", c.modelBundle.Metadata.Precision)
        fmt.Printf("Recall: %.4f\n", c.modelBundle.Metadata.Recall)
        fmt.Printf("F1 Score: %.4f\n", c.modelBundle.Metadata.F1Score)
        fmt.Printf("Training Time: %.2fs\n", c.modelBundle.Metadata.TrainingTime.Seconds())
    }

    if c.currentModelPath != "" {
        fmt.Printf("File: %s\n", c.currentModelPath)
    }
}

func (c *Commander) showDataInfo() {
    if c.loadedData == nil {
        fmt.Println(c.red("No data loaded"))
        return
    }

    fmt.Println(c.blue("\nDataset Information:"))
    fmt.Println(strings.Repeat("─", 40))
    fmt.Printf("Source: %s\n", c.loadedData.SourceFile)
    fmt.Printf("Samples: %d\n", len(c.loadedData.X))
    fmt.Printf("Features: %d\n", len(c.loadedData.Features))
    fmt.Printf("Feature names: %v\n", c.loadedData.Features)
    fmt.Printf("Classes: %d\n", len(c.loadedData.Classes))
    fmt.Printf("Class mapping: %v\n", c.loadedData.Classes)
}

func (c *Commander) predict(args []string) {
    if c.currentModel == nil {
        fmt.Println(c.red("No model loaded. Train or load a model first"))
        return
    }
    if c.loadedData == nil || c.loadedData.Features == nil {
        fmt.Println(c.red("No dataset information available"))
        fmt.Println("Please load the same dataset used for training")
        return
    }

    expectedFeatures := len(c.loadedData.Features)

    if len(args) == 0 {
        fmt.Printf("Usage: predict <%d comma- or space-separated values>\n", expectedFeatures)
        fmt.Printf("Features: %v\n", c.loadedData.Features)
        return
    }

    // Accept both "predict 1.2 3.4" and "predict 1.2,3.4".
    if len(args) == 1 && strings.Contains(args[0], ",") {
        args = strings.Split(args[0], ",")
    }

    if len(args) != expectedFeatures {
        fmt.Printf("%s Expected %d values, got %d\n", c.red("✗"), expectedFeatures, len(args))
        fmt.Printf("Features: %v\n", c.loadedData.Features)
        return
    }

    sample := make([]decimal.Decimal, expectedFeatures)
    for i := 0; i < expectedFeatures; i++ {
        val, err := decimal.NewFromString(strings.TrimSpace(args[i]))
        if err != nil {
            fmt.Printf("%s Invalid value for %s: %s\n",
                c.red("✗"), c.loadedData.Features[i], args[i])
            return
        }
        sample[i] = val
    }

    c.makePrediction(sample)
}

func (c *Commander) makePrediction(sample []decimal.Decimal) {
    processedSample := [][]decimal.Decimal{sample}

    if c.modelBundle != nil && c.modelBundle.Scaler != nil {
        result, err := c.modelBundle.Scaler.Transform(processedSample)
        if err != nil {
            fmt.Printf("Warning: Preprocessing failed, using raw data: %v\n", err)
        } else {
            processedSample = result
        }
    }

    prediction := c.currentModel.Predict(processedSample)
    proba := c.currentModel.PredictProba(processedSample)

    fmt.Println("\n" + strings.Repeat("═", 50))
    fmt.Println(c.green("Prediction Results:"))
    fmt.Println(strings.Repeat("─", 50))

    fmt.Println("Input values:")
    for i, feature := range c.loadedData.Features {
        value, _ := sample[i].Float64()
        fmt.Printf("  %s: %.4f\n", feature, value)
    }

    fmt.Println(strings.Repeat("─", 50))

    predictedClass := prediction[0]
    fmt.Printf("Predicted Class: %s\n", c.cyan(c.className(predictedClass)))

    fmt.Println("\nConfidence Scores:")
    maxProba := decimal.Zero
    modelClasses := c.currentModel.GetClasses()

    for i, p := range proba[0] {
        actualClass := modelClasses[i]

        barLength := int(p.Mul(decimal.NewFromInt(30)).IntPart())
        if barLength > 30 {
            barLength = 30
        }
        bar := strings.Repeat("█", barLength) + strings.Repeat("░", 30-barLength)

        paint := c.yellow
        if actualClass == predictedClass {
            paint = c.green
            maxProba = p
        }

        f, _ := p.Mul(decimal.NewFromInt(100)).Float64()
        fmt.Printf("  %s: %s %.2f%%\n",
            paint(fmt.Sprintf("%-15s", c.className(actualClass))), bar, f)
    }

    fmt.Println(strings.Repeat("═", 50))

    confidence, _ := maxProba.Float64()
    switch {
    case confidence > 0.9:
        fmt.Printf("Confidence Level: %s (%.2f%%)\n", c.green("Very High"), confidence*100)
    case confidence > 0.7:
        fmt.Printf("Confidence Level: %s (%.2f%%)\n", c.green("High"), confidence*100)
    case confidence > 0.5:
        fmt.Printf("Confidence Level: %s (%.2f%%)\n", c.yellow("Moderate"), confidence*100)
    default:
        fmt.Printf("Confidence Level: %s (%.2f%%)\n", c.red("Low"), confidence*100)
    }
}

func (c *Commander) batchPredict(filename string) {
    if c.currentModel == nil {
        fmt.Println(c.red("No model loaded. Train or load a model first"))
        return
    }

    file, err := os.Open(filename)
    if err != nil {
        fmt.Printf("%s Error opening file: %v\n", c.red("✗"), err)
        return
    }
    defer file.Close()

    reader := csv.NewReader(file)
    records, err := reader.ReadAll()
    if err != nil {
        fmt.Printf("%s Error reading CSV: %v\n", c.red("✗"), err)
        return
    }

    if len(records) < 2 {
        fmt.Printf("%s No data found in file\n", c.red("✗"))
        return
    }

    rows := records[1:]
    X := make([][]decimal.Decimal, len(rows))
    for i, record := range rows {
        X[i] = make([]decimal.Decimal, len(record))
        for j, val := range record {
            parsed, err := decimal.NewFromString(val)
            if err != nil {
                fmt.Printf("%s Non-numeric value %q at row %d\n", c.red("✗"), val, i+2)
                return
            }
            X[i][j] = parsed
        }
    }

    fmt.Printf("Making predictions for %d samples...\n", len(X))

    XProcessed := X
    if c.modelBundle != nil && c.modelBundle.Scaler != nil {
        result, err := c.modelBundle.Scaler.Transform(X)
        if err != nil {
            fmt.Printf("Warning: Preprocessing failed, using raw data: %v\n", err)
        } else {
            XProcessed = result
        }
    }

    predictions := c.currentModel.Predict(XProcessed)
    probas := c.currentModel.PredictProba(XProcessed)

    outputFile := strings.TrimSuffix(filename, filepath.Ext(filename)) + "_predictions.csv"
    output, err := os.Create(outputFile)
    if err != nil {
        fmt.Printf("%s Error creating output file: %v\n", c.red("✗"), err)
        return
    }
    defer output.Close()

    writer := csv.NewWriter(output)
    writer.Write([]string{"Sample", "Prediction", "Confidence"})

    modelClasses := c.currentModel.GetClasses()

    for i, pred := range predictions {
        confidence := decimal.Zero
        for idx, classID := range modelClasses {
            if classID == pred && idx < len(probas[i]) {
                confidence = probas[i][idx]
                break
            }
        }

        f, _ := confidence.Float64()
        writer.Write([]string{
            fmt.Sprintf("%d", i+1),
            c.className(pred),
            fmt.Sprintf("%.4f", f),
        })
    }

    writer.Flush()
    fmt.Printf("%s Predictions saved to %s\n", c.green("✓"), outputFile)
}

func (c *Commander) compareModels() {
    modelFiles, err := filepath.Glob("models/*.model")
    if err != nil || len(modelFiles) == 0 {
        fmt.Println("No saved models found for comparison")
        return
    }

    fmt.Println(c.blue("\nModel Comparison Results:"))
    fmt.Println(strings.Repeat("─", 80))
    fmt.Printf("%-40s %-10s %-10s %-10s %-10s\n",
        "Model", "Accuracy", "F1", "Precision", "Recall")
    fmt.Println(strings.Repeat("─", 80))

    bestAccuracy := 0.0
    bestModel := ""

    for _, modelPath := range modelFiles {
        bundle, err := persistence.LoadModelBundle(modelPath)
        if err != nil {
            continue
        }

        name := filepath.Base(modelPath)
        fmt.Printf("%-40s %-10.4f %-10.4f %-10.4f %-10.4f\n",
            name,
            bundle.Metadata.Accuracy,
            bundle.Metadata.F1Score,
            bundle.Metadata.Precision,
            bundle.Metadata.Recall)

        if bundle.Metadata.Accuracy > bestAccuracy {
            bestAccuracy = bundle.Metadata.Accuracy
            bestModel = name
        }
    }

    fmt.Println(strings.Repeat("─", 80))
    fmt.Printf("\n%s Best model: %s (Accuracy: %.4f)\n",
        c.green("★"), bestModel, bestAccuracy)
}

func (c *Commander) runExperiment(configFile string) {
    if c.loadedData == nil {
        fmt.Println(c.red("No data loaded. Use 'load <file>' first"))
        return
    }

    runner, err := experiment.NewRunner(configFile)
    if err != nil {
        fmt.Printf("%s %v\n", c.red("✗"), err)
        return
    }

    fmt.Printf("Running experiments from %s...\n", configFile)

    results, err := runner.RunAllExperiments(c.loadedData.SourceFile)
    if err != nil {
        fmt.Printf("%s Experiment failed: %v\n", c.red("✗"), err)
        return
    }

    timestamp := time.Now().Format("20060102_150405")
    datasetName := strings.TrimSuffix(filepath.Base(c.loadedData.SourceFile), filepath.Ext(c.loadedData.SourceFile))
    os.MkdirAll("results", 0755)
    outputFile := filepath.Join("results", fmt.Sprintf("exp_%s_%s.csv", datasetName, timestamp))

    if err := runner.ExportResults(results, outputFile); err != nil {
        fmt.Printf("%s Failed to export results: %v\n", c.red("✗"), err)
        return
    }

    fmt.Printf("%s Experiment complete! %d configurations tested\n", c.green("✓"), len(results))
    fmt.Printf("Results saved to: %s\n", outputFile)

    bestF1 := -1.0
    var best experiment.ExperimentResult
    for _, r := range results {
        if r.F1Score > bestF1 {
            bestF1 = r.F1Score
            best = r
        }
    }
    if bestF1 >= 0 {
        fmt.Printf("%s Best configuration: %s %s (F1: %.4f, Acc: %.4f)\n",
            c.green("★"), best.Algorithm, best.Parameters, best.F1Score, best.Accuracy)
    }
}

func (c *Commander) clearScreen() {
    fmt.Print("\033[H\033[2J")
    c.printWelcome()
}

func (c *Commander) quit() {
    os.Exit(0)
}
