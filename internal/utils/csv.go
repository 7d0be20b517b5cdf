package utils

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"regexp"
	"strings"
)

// CSVAnalysis describes the layout detected for an uploaded CSV file
type CSVAnalysis struct {
	Delimiter           rune    `json:"delimiter"`         // ',' or ';'
	NumericSeparator    string  `json:"numeric_separator"` // '.' or ','
	HasHeader           bool    `json:"has_header"`
	Columns             int     `json:"columns"`
	SampleRows          int     `json:"sample_rows"`
	DelimiterConfidence float64 `json:"delimiter_confidence"`
}

const sampleLines = 10

var numericField = regexp.MustCompile(`^\$?\d+([.,]\d+)*$`)

// Words that mark a catalog header row
var headerWords = []string{
	"name", "title", "price", "karat", "purity", "style", "type",
	"length", "weight", "grams", "currency", "stock", "url", "description",
}

// AnalyzeCSV samples the first lines of a file to detect its delimiter and
// number format. Semicolon files are assumed to use decimal commas.
func AnalyzeCSV(reader io.Reader) (*CSVAnalysis, error) {
	scanner := bufio.NewScanner(reader)
	var lines []string
	for len(lines) < sampleLines && scanner.Scan() {
		if line := scanner.Text(); strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	if len(lines) == 0 {
		return nil, fmt.Errorf("file is empty")
	}

	delimiter, confidence := detectDelimiter(lines)
	numericSeparator := "."
	if delimiter == ';' {
		numericSeparator = ","
	}

	return &CSVAnalysis{
		Delimiter:           delimiter,
		NumericSeparator:    numericSeparator,
		HasHeader:           hasHeader(lines, delimiter),
		Columns:             len(strings.Split(lines[0], string(delimiter))),
		SampleRows:          len(lines),
		DelimiterConfidence: confidence,
	}, nil
}

func detectDelimiter(lines []string) (rune, float64) {
	comma := delimiterScore(lines, ',')
	semicolon := delimiterScore(lines, ';')
	if semicolon > comma {
		return ';', semicolon
	}
	return ',', comma
}

// delimiterScore rates how consistently a delimiter splits the sample,
// allowing one column of slack for empty trailing fields.
func delimiterScore(lines []string, delimiter rune) float64 {
	sep := string(delimiter)
	first := len(strings.Split(lines[0], sep))
	if first < 2 {
		return 0
	}
	if len(lines) == 1 {
		return 0.5
	}

	consistent := 0
	for _, line := range lines {
		n := len(strings.Split(line, sep))
		if n >= first-1 && n <= first+1 {
			consistent++
		}
	}

	bonus := float64(first) * 0.1
	if bonus > 0.3 {
		bonus = 0.3
	}
	return float64(consistent)/float64(len(lines)) + bonus
}

func hasHeader(lines []string, delimiter rune) bool {
	fields := strings.Split(lines[0], string(delimiter))

	score := 0
	for _, field := range fields {
		field = strings.ToLower(strings.Trim(strings.TrimSpace(field), `"'`))
		for _, word := range headerWords {
			if strings.Contains(field, word) {
				score++
				break
			}
		}
		if numericField.MatchString(field) {
			score--
		}
	}
	return float64(score)/float64(len(fields)) > 0.3
}

// NormalizeNumericValue rewrites a number to use a decimal point and drops
// currency symbols and digit grouping.
func NormalizeNumericValue(value string, numericSeparator string) string {
	value = strings.Trim(strings.TrimSpace(value), `"'`)
	value = strings.TrimPrefix(value, "$")
	if value == "" {
		return value
	}

	if numericSeparator == "," {
		value = strings.ReplaceAll(value, ".", "")
		return strings.ReplaceAll(value, ",", ".")
	}
	return strings.ReplaceAll(value, ",", "")
}

// ParseCSV detects the file layout and reads every record with it
func ParseCSV(reader io.Reader) ([][]string, *CSVAnalysis, error) {
	content, err := io.ReadAll(reader)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read file: %w", err)
	}

	analysis, err := AnalyzeCSV(bytes.NewReader(content))
	if err != nil {
		return nil, nil, err
	}

	csvReader := csv.NewReader(bytes.NewReader(content))
	csvReader.Comma = analysis.Delimiter
	csvReader.FieldsPerRecord = -1
	csvReader.TrimLeadingSpace = true

	records, err := csvReader.ReadAll()
	if err != nil {
		return nil, analysis, fmt.Errorf("failed to parse CSV: %w", err)
	}
	return records, analysis, nil
}

// HeaderIndex maps normalized header names to column positions
func HeaderIndex(header []string) map[string]int {
	index := make(map[string]int, len(header))
	for i, h := range header {
		h = strings.ToLower(strings.Trim(strings.TrimSpace(h), `"'`))
		h = strings.ReplaceAll(h, " ", "_")
		if _, seen := index[h]; !seen {
			index[h] = i
		}
	}
	return index
}
