package parser

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
)

type TeamRow struct {
	NumEquipe string `json:"num_equipe"`
	NomEquipe string `json:"nom_equipe"`
}

// TeamParseResult is the outcome of reading one import file. Duplicates
// within the file are skipped and counted, not treated as errors; only
// rows with missing fields produce entries in Errors.
type TeamParseResult struct {
	Rows           []TeamRow
	Errors         []string
	DuplicateCount int
}

var numFallbackColumns = []string{"num_equipe", "numero_equipe", "team_number", "id", "team_id"}
var nameFallbackColumns = []string{"nom_equipe", "team_name"}

// ParseTeamsCSV reads (num_equipe, nom_equipe) pairs from a CSV file with
// a header row. Column detection is tolerant: any header containing "num"
// supplies the team number, any header containing "nom" or "name" the team
// name, with a fixed fallback list for files without recognizable headers.
func ParseTeamsCSV(r io.Reader) (*TeamParseResult, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %v", err)
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	numCols := matchingColumns(header, "num")
	if len(numCols) == 0 {
		numCols = columnIndexes(header, numFallbackColumns)
	}
	nameCols := append(matchingColumns(header, "nom"), matchingColumns(header, "name")...)
	if len(nameCols) == 0 {
		nameCols = columnIndexes(header, nameFallbackColumns)
	}

	result := &TeamParseResult{Rows: make([]TeamRow, 0)}
	seen := make(map[string]bool)

	// header is row 1
	for rowIdx := 2; ; rowIdx++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("Row %d: %v", rowIdx, err))
			continue
		}

		numEquipe := firstNonEmpty(record, numCols)
		nomEquipe := firstNonEmpty(record, nameCols)

		rowErrors := make([]string, 0)
		if numEquipe == "" {
			rowErrors = append(rowErrors, fmt.Sprintf("Row %d: Missing num_equipe", rowIdx))
		}
		if nomEquipe == "" {
			rowErrors = append(rowErrors, fmt.Sprintf("Row %d: Missing nom_equipe", rowIdx))
		}
		if len(rowErrors) > 0 {
			result.Errors = append(result.Errors, rowErrors...)
			continue
		}

		if seen[numEquipe] {
			result.DuplicateCount++
			continue
		}
		seen[numEquipe] = true

		result.Rows = append(result.Rows, TeamRow{NumEquipe: numEquipe, NomEquipe: nomEquipe})
	}

	return result, nil
}

func matchingColumns(header []string, substring string) []int {
	indexes := make([]int, 0)
	for i, column := range header {
		if column != "" && strings.Contains(strings.ToLower(column), substring) {
			indexes = append(indexes, i)
		}
	}
	return indexes
}

func columnIndexes(header []string, names []string) []int {
	indexes := make([]int, 0)
	for _, name := range names {
		for i, column := range header {
			if strings.EqualFold(column, name) {
				indexes = append(indexes, i)
			}
		}
	}
	return indexes
}

func firstNonEmpty(record []string, indexes []int) string {
	for _, i := range indexes {
		if i < len(record) {
			if value := strings.TrimSpace(record[i]); value != "" {
				return value
			}
		}
	}
	return ""
}
