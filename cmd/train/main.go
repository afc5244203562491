package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"glmclassifier/internal/data"
	"glmclassifier/internal/evaluation"
	"glmclassifier/internal/experiment"
	"glmclassifier/internal/models"
	"glmclassifier/internal/persistence"
	"glmclassifier/internal/preprocessing"
)

func main() {
	dataFile := flag.String("data", "", "Path to training data CSV file")
	algorithm := flag.String("algorithm", "logistic", "Algorithm to use (logistic|multinomial)")
	configFile := flag.String("config", "config/config.yaml", "Path to configuration file")
	outputDir := flag.String("output", "models", "Output directory for trained models")
	preprocessMethod := flag.String("preprocess", "standardized", "Preprocessing method (raw|normalized|standardized)")
	runExp := flag.Bool("experiment", false, "Run full hyperparameter sweep from config")
	lambda := flag.Float64("lambda", 1.0, "Regularization strength")
	gamma := flag.Float64("gamma", 0.0, "L1 strength under elastic-net")
	penalty := flag.String("penalty", "l2", "Penalty (none|l1|l2|elastic-net)")
	fitIntercept := flag.Bool("intercept", true, "Fit an intercept term")
	penalizeIntercept := flag.Bool("penalize-intercept", false, "Include the intercept in the penalty")
	multiClass := flag.Bool("multiclass", false, "Use the softmax loss for logistic models")
	learningRate := flag.Float64("lr", 0, "Solver learning rate (0 = default)")
	maxIter := flag.Int("max-iter", 0, "Solver iteration cap (0 = default)")
	testSize := flag.Float64("test-size", 0.2, "Test set size (0.0-1.0)")
	crossValidation := flag.Bool("cv", true, "Enable cross-validation")
	cvFolds := flag.Int("cv-folds", 5, "Number of cross-validation folds")

	flag.Parse()

	if *dataFile == "" {
		fmt.Println("Usage:")
		fmt.Println("  Simple training: go run cmd/train/main.go -data data/train/iris.csv -algorithm multinomial")
		fmt.Println("  Full experiment: go run cmd/train/main.go -experiment -config config/config.yaml -data data/train/iris.csv")
		fmt.Println("\nOptions:")
		flag.PrintDefaults()
		os.Exit(1)
	}

	if *runExp {
		runExperiment(*configFile, *dataFile, *outputDir)
		return
	}

	config := models.ModelConfig{
		Algorithm:         *algorithm,
		Lambda:            *lambda,
		Gamma:             *gamma,
		Penalty:           *penalty,
		FitIntercept:      *fitIntercept,
		PenalizeIntercept: *penalizeIntercept,
		MultiClass:        *multiClass,
		LearningRate:      *learningRate,
		MaxIter:           *maxIter,
	}

	runSingleTraining(*dataFile, config, *preprocessMethod, *outputDir, *testSize, *crossValidation, *cvFolds)
}

func runExperiment(configFile, dataFile, outputDir string) {
	fmt.Println("Running full experiment...")

	runner, err := experiment.NewRunner(configFile)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	results, err := runner.RunAllExperiments(dataFile)
	if err != nil {
		log.Fatalf("Experiment failed: %v", err)
	}

	timestamp := time.Now().Format("20060102_150405")
	expDir := filepath.Join(outputDir, fmt.Sprintf("experiment_%s", timestamp))
	os.MkdirAll(expDir, 0755)

	resultsFile := filepath.Join(expDir, "experiment_results.csv")
	if err := runner.ExportResults(results, resultsFile); err != nil {
		log.Printf("Failed to export results: %v", err)
	} else {
		fmt.Printf("Experiment results saved to: %s\n", resultsFile)
	}

	fmt.Printf("\nExperiment Summary:\n")
	fmt.Printf("Total experiments: %d\n", len(results))

	if len(results) > 0 {
		best := results[0]
		for _, result := range results[1:] {
			if result.Accuracy > best.Accuracy {
				best = result
			}
		}
		fmt.Printf("Best accuracy: %.4f (%s %s with %s preprocessing)\n",
			best.Accuracy, best.Algorithm, best.Parameters, best.Preprocessing)
	}
}

func runSingleTraining(dataFile string, config models.ModelConfig, preprocessMethod, outputDir string, testSize float64, crossValidation bool, cvFolds int) {
	fmt.Printf("Training %s model on %s...\n", config.Algorithm, dataFile)

	fmt.Println("Loading dataset...")
	reader, err := data.NewCSVReader(dataFile)
	if err != nil {
		log.Fatalf("Failed to create CSV reader: %v", err)
	}

	X, y, headers, _, err := reader.LoadData()
	if err != nil {
		log.Fatalf("Failed to load data: %v", err)
	}

	fmt.Printf("Loaded %d samples with %d features\n", len(X), len(headers))

	validator := data.NewDataValidator()
	if err := validator.ValidateDataset(X, y); err != nil {
		log.Fatalf("Data validation failed: %v", err)
	}

	fmt.Printf("Applying %s preprocessing...\n", preprocessMethod)
	var XProcessed = X
	if preprocessMethod != "raw" {
		scaler := preprocessing.NewScaler(preprocessMethod)
		XProcessed, err = scaler.FitTransform(X)
		if err != nil {
			log.Fatalf("Preprocessing failed: %v", err)
		}
	}

	fmt.Printf("Splitting data (test size: %.1f%%)...\n", testSize*100)
	splitter := evaluation.NewTrainTestSplitter(testSize, time.Now().UnixNano(), true)
	XTrain, XTest, yTrain, yTest, err := splitter.StratifiedSplit(XProcessed, y)
	if err != nil {
		log.Fatalf("Failed to split data: %v", err)
	}

	model, err := models.CreateModel(config)
	if err != nil {
		log.Fatalf("Failed to create model: %v", err)
	}

	fmt.Printf("Training %s model...\n", model.GetName())
	fmt.Println(model.Describe())
	startTime := time.Now()
	if err := model.Fit(XTrain, yTrain); err != nil {
		log.Fatalf("Training failed: %v", err)
	}
	trainingTime := time.Since(startTime)

	fmt.Println("Evaluating model...")
	predictions := model.Predict(XTest)
	classes := models.ExtractClasses(y)
	metrics := evaluation.CalculateMetrics(yTest, predictions, classes)
	if metrics == nil {
		log.Fatalf("Evaluation produced no metrics")
	}

	fmt.Printf("\nTraining Results:\n")
	fmt.Printf("Training time: %v\n", trainingTime)
	fmt.Printf("Test accuracy: %.4f\n", metrics.Accuracy)
	fmt.Printf("Precision: %.4f\n", metrics.MacroPrecision)
	fmt.Printf("Recall: %.4f\n", metrics.MacroRecall)
	fmt.Printf("F1-score: %.4f\n", metrics.MacroF1)

	if crossValidation {
		fmt.Printf("Running %d-fold cross-validation...\n", cvFolds)
		cv := evaluation.NewCrossValidator(cvFolds, true)
		_, mean, std, err := cv.ParallelCrossValidate(XProcessed, y, model)
		if err != nil {
			fmt.Printf("Parallel CV failed, trying serial: %v\n", err)
			_, mean, std, _ = cv.CrossValidateSerial(XProcessed, y, model)
		}
		fmt.Printf("CV accuracy: %.4f ± %.4f\n", mean, std)
	}

	fmt.Println("Saving model...")
	os.MkdirAll(outputDir, 0755)
	timestamp := time.Now().Format("20060102_150405")
	datasetName := strings.TrimSuffix(filepath.Base(dataFile), filepath.Ext(dataFile))
	filename := fmt.Sprintf("%s_%s_%s_%s.model", config.Algorithm, datasetName, preprocessMethod, timestamp)
	modelPath := filepath.Join(outputDir, filename)

	bundle := persistence.NewModelBundle(model)
	bundle.Metadata.Dataset = dataFile
	bundle.Metadata.Accuracy = metrics.Accuracy
	bundle.Metadata.Precision = metrics.MacroPrecision
	bundle.Metadata.Recall = metrics.MacroRecall
	bundle.Metadata.F1Score = metrics.MacroF1
	bundle.Metadata.TrainingTime = trainingTime
	bundle.Metadata.Features = headers

	if err := bundle.Save(modelPath); err != nil {
		log.Printf("Failed to save model: %v", err)
	} else {
		fmt.Printf("Model saved to: %s\n", modelPath)
	}

	fmt.Println("\nTraining completed successfully!")
}
