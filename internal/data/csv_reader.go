package data

import (
    "encoding/csv"
    "fmt"
    "os"

    "github.com/shopspring/decimal"

    "glmclassifier/internal/preprocessing"
)

// CSVReader loads a whole dataset at once. The last column holds the class
// label, every other column must be numeric.
type CSVReader struct {
    filename string
}

func NewCSVReader(filename string) (*CSVReader, error) {
    if filename == "" {
        return nil, fmt.Errorf("empty filename")
    }
    return &CSVReader{filename: filename}, nil
}

// LoadData returns the feature matrix, encoded labels, feature names and the
// fitted label encoder.
func (cr *CSVReader) LoadData() ([][]decimal.Decimal, []int, []string, *preprocessing.LabelEncoder, error) {
    file, err := os.Open(cr.filename)
    if err != nil {
        return nil, nil, nil, nil, err
    }
    defer file.Close()

    reader := csv.NewReader(file)
    records, err := reader.ReadAll()
    if err != nil {
        return nil, nil, nil, nil, err
    }

    if len(records) < 2 {
        return nil, nil, nil, nil, fmt.Errorf("insufficient data in file")
    }

    headers := records[0][:len(records[0])-1]
    rows := records[1:]

    X := make([][]decimal.Decimal, len(rows))
    labels := make([]string, len(rows))

    for i, record := range rows {
        if len(record) != len(records[0]) {
            return nil, nil, nil, nil, fmt.Errorf("row %d has %d columns, expected %d", i+2, len(record), len(records[0]))
        }

        X[i] = make([]decimal.Decimal, len(record)-1)
        for j := 0; j < len(record)-1; j++ {
            val, err := decimal.NewFromString(record[j])
            if err != nil {
                return nil, nil, nil, nil, fmt.Errorf("non-numeric value %q at row %d, column %d", record[j], i+2, j+1)
            }
            X[i][j] = val
        }
        labels[i] = record[len(record)-1]
    }

    encoder := preprocessing.NewLabelEncoder()
    y, err := encoder.FitTransform(labels)
    if err != nil {
        return nil, nil, nil, nil, err
    }

    return X, y, headers, encoder, nil
}
