package commander

import (
    "context"
    "fmt"
    "io"
    "os"
    "path/filepath"
    "sort"
    "strconv"
    "strings"
    "time"

    "glmclassifier/internal/data"
    "glmclassifier/internal/evaluation"
    "glmclassifier/internal/jobs"
    "glmclassifier/internal/models"
    "glmclassifier/internal/persistence"
    "glmclassifier/internal/preprocessing"

    "github.com/shopspring/decimal"
)

func (c *Commander) loadStreamingData(args []string) {
    filename := args[0]
    batchSize := 1000

    for _, arg := range args[1:] {
        if value, ok := strings.CutPrefix(arg, "--batch-size="); ok {
            val, err := strconv.Atoi(value)
            if err == nil && val > 0 {
                batchSize = val
            }
        }
    }

    fmt.Printf("Loading %s with batch size %d...\n", filename, batchSize)

    streamer, err := data.NewStreamingReader(filename, -1, batchSize)
    if err != nil {
        fmt.Printf("%s Failed to open file: %v\n", c.red("✗"), err)
        return
    }
    defer streamer.Close()

    var allX [][]decimal.Decimal
    var allLabels []string
    batchNum := 0

    for {
        batch, err := streamer.ReadBatch()
        if err != nil {
            if err == io.EOF {
                break
            }
            fmt.Printf("%s Error reading batch: %v\n", c.red("✗"), err)
            return
        }

        allX = append(allX, batch.X...)
        allLabels = append(allLabels, batch.Labels...)
        batchNum++

        fmt.Printf("\rLoaded %d batches (%d samples)...", batchNum, len(allX))
    }

    if len(allX) == 0 {
        fmt.Printf("\n%s No samples found in %s\n", c.red("✗"), filename)
        return
    }

    // Encoding waits until all labels are seen so batch order never changes
    // the class mapping.
    encoder := preprocessing.NewLabelEncoder()
    allY, err := encoder.FitTransform(allLabels)
    if err != nil {
        fmt.Printf("\n%s Failed to encode labels: %v\n", c.red("✗"), err)
        return
    }

    fmt.Printf("\n%s Successfully loaded %d samples\n", c.green("✓"), len(allX))

    headers := streamer.GetHeaders()
    features := headers[:len(headers)-1]

    c.loadedData = &DataSet{
        X:          allX,
        y:          allY,
        Features:   features,
        Classes:    encoder.ClassNames(),
        SourceFile: filename,
    }

    c.showDataInfo()
}

func (c *Commander) trainModelBackground(algorithm string, params []string) {
    if c.loadedData == nil {
        fmt.Println(c.red("No data loaded. Use 'load <file>' first"))
        return
    }

    config := models.DefaultConfig(algorithm)
    _, prepMethod, err := c.parseTrainOptions(&config, params)
    if err != nil {
        fmt.Printf("%s %v\n", c.red("✗"), err)
        return
    }

    job := c.jobManager.CreateJob("train", fmt.Sprintf("Training %s model", algorithm))
    fmt.Printf("Job submitted: %s\n", c.cyan(job.ID))
    fmt.Println("Use 'job-status " + job.ID + "' to track progress")

    go func() {
        ctx, cancel := context.WithCancel(context.Background())
        job.SetCancelFunc(cancel)
        job.SetStatus(jobs.JobRunning)
        job.AddLog(fmt.Sprintf("Starting training of %s model", algorithm))

        model, err := models.CreateModel(config)
        if err != nil {
            job.SetError(err)
            return
        }

        job.AddLog("Preprocessing data...")
        job.SetProgress(0.2)

        XProcessed, scaler := c.applyPreprocessing(c.loadedData.X, prepMethod)

        splitter := evaluation.DefaultTrainTestSplitter()
        XTrain, XTest, yTrain, yTest, err := splitter.StratifiedSplit(XProcessed, c.loadedData.y)
        if err != nil {
            job.SetError(err)
            return
        }

        job.AddLog(fmt.Sprintf("Training with %d samples...", len(XTrain)))
        job.SetProgress(0.4)

        select {
        case <-ctx.Done():
            job.SetStatus(jobs.JobCancelled)
            job.AddLog("Training cancelled by user")
            return
        default:
        }

        startTime := time.Now()
        if err := model.Fit(XTrain, yTrain); err != nil {
            job.SetError(err)
            return
        }

        job.AddLog("Evaluating model...")
        job.SetProgress(0.8)

        predictions := model.Predict(XTest)
        classes := models.ExtractClasses(c.loadedData.y)
        metrics := evaluation.CalculateMetrics(yTest, predictions, classes)
        if metrics == nil {
            job.SetError(fmt.Errorf("evaluation produced no metrics"))
            return
        }

        job.SetProgress(1.0)
        job.SetResult(metrics)
        job.SetStatus(jobs.JobCompleted)
        job.AddLog(fmt.Sprintf("Training completed. Accuracy: %.4f", metrics.Accuracy))

        timestamp := time.Now().Format("20060102_150405")
        datasetName := strings.TrimSuffix(filepath.Base(c.loadedData.SourceFile), filepath.Ext(c.loadedData.SourceFile))
        filename := filepath.Join("models",
            fmt.Sprintf("%s_%s_bg_%s.model", algorithm, datasetName, timestamp))

        bundle := persistence.NewModelBundle(model)
        bundle.Scaler = scaler
        bundle.Metadata.Dataset = c.loadedData.SourceFile
        bundle.Metadata.Accuracy = metrics.Accuracy
        bundle.Metadata.Precision = metrics.MacroPrecision
        bundle.Metadata.Recall = metrics.MacroRecall
        bundle.Metadata.F1Score = metrics.MacroF1
        bundle.Metadata.TrainingTime = time.Since(startTime)

        os.MkdirAll("models", 0755)

        if err := bundle.Save(filename); err != nil {
            job.AddLog(fmt.Sprintf("Failed to save model: %v", err))
        } else {
            job.AddLog(fmt.Sprintf("Model saved to: %s", filename))
        }
    }()
}

func (c *Commander) showJobStatus(jobID string) {
    job, exists := c.jobManager.GetJob(jobID)
    if !exists {
        fmt.Printf("%s Job not found: %s\n", c.red("✗"), jobID)
        return
    }

    fmt.Println(c.blue("\nJob Status:"))
    fmt.Println(strings.Repeat("─", 50))
    fmt.Printf("ID:          %s\n", job.ID)
    fmt.Printf("Type:        %s\n", job.Type)
    fmt.Printf("Description: %s\n", job.Description)

    status := job.GetStatus()
    switch status {
    case jobs.JobCompleted:
        fmt.Printf("Status:      %s\n", c.green(string(status)))
    case jobs.JobFailed, jobs.JobCancelled:
        fmt.Printf("Status:      %s\n", c.red(string(status)))
    default:
        fmt.Printf("Status:      %s\n", c.yellow(string(status)))
    }

    fmt.Printf("Progress:    %.0f%%\n", job.GetProgress()*100)
    fmt.Printf("Started:     %s\n", job.StartTime.Format("15:04:05"))

    if job.EndTime != nil {
        fmt.Printf("Finished:    %s (ran %.1fs)\n",
            job.EndTime.Format("15:04:05"),
            job.EndTime.Sub(job.StartTime).Seconds())
    }

    if job.Error != nil {
        fmt.Printf("Error:       %s\n", c.red(job.Error.Error()))
    }
}

func (c *Commander) listAllJobs() {
    allJobs := c.jobManager.ListJobs()
    if len(allJobs) == 0 {
        fmt.Println("No jobs found")
        fmt.Println("Use 'train-bg <algorithm>' to start a background job")
        return
    }

    sort.Slice(allJobs, func(i, j int) bool {
        return allJobs[i].StartTime.Before(allJobs[j].StartTime)
    })

    fmt.Println(c.blue("\nAll Jobs:"))
    fmt.Println(strings.Repeat("─", 80))
    fmt.Printf("%-35s %-10s %-12s %-10s %-10s\n",
        "Job ID", "Type", "Status", "Progress", "Started")
    fmt.Println(strings.Repeat("─", 80))

    for _, job := range allJobs {
        status := string(job.GetStatus())
        switch job.GetStatus() {
        case jobs.JobCompleted:
            status = c.green(status)
        case jobs.JobFailed, jobs.JobCancelled:
            status = c.red(status)
        case jobs.JobRunning:
            status = c.yellow(status)
        }

        fmt.Printf("%-35s %-10s %-12s %-10s %-10s\n",
            job.ID,
            job.Type,
            status,
            fmt.Sprintf("%.0f%%", job.GetProgress()*100),
            job.StartTime.Format("15:04:05"))
    }
}

func (c *Commander) cancelJob(jobID string) {
    if err := c.jobManager.CancelJob(jobID); err != nil {
        fmt.Printf("%s %v\n", c.red("✗"), err)
        return
    }
    fmt.Printf("%s Job cancelled: %s\n", c.green("✓"), jobID)
}

func (c *Commander) showJobLogs(jobID string) {
    job, exists := c.jobManager.GetJob(jobID)
    if !exists {
        fmt.Printf("%s Job not found: %s\n", c.red("✗"), jobID)
        return
    }

    logs := job.GetLogs()
    if len(logs) == 0 {
        fmt.Println("No logs for this job yet")
        return
    }

    fmt.Println(c.blue(fmt.Sprintf("\nLogs for %s:", jobID)))
    fmt.Println(strings.Repeat("─", 60))
    for _, line := range logs {
        fmt.Println(line)
    }
}
