package data

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// loadColumns reads a header-addressed CSV file and returns the named columns
// as float series. Every wanted column must be present; blank records are
// skipped.
func loadColumns(path string, wanted ...string) (map[string][]float64, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("csv %s is empty", path)
	}
	if err != nil {
		return nil, fmt.Errorf("read csv header %s: %w", path, err)
	}

	indexes := make(map[string]int, len(wanted))
	for i, name := range header {
		indexes[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, name := range wanted {
		if _, ok := indexes[name]; !ok {
			return nil, fmt.Errorf("csv %s is missing column %s", path, name)
		}
	}

	columns := make(map[string][]float64, len(wanted))
	for rowIndex := 1; ; rowIndex++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv %s row %d: %w", path, rowIndex, err)
		}
		if blankRecord(record) {
			continue
		}
		for _, name := range wanted {
			column := indexes[name]
			if column >= len(record) {
				return nil, fmt.Errorf("csv %s row %d is missing column %s", path, rowIndex, name)
			}
			value, err := strconv.ParseFloat(strings.TrimSpace(record[column]), 64)
			if err != nil {
				return nil, fmt.Errorf("parse csv %s row %d column %s: %w", path, rowIndex, name, err)
			}
			columns[name] = append(columns[name], value)
		}
	}
	return columns, nil
}

func blankRecord(record []string) bool {
	for _, field := range record {
		if strings.TrimSpace(field) != "" {
			return false
		}
	}
	return true
}
