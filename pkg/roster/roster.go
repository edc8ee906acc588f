// Package roster parses participant id lists from free text and from
// .txt/.csv import files.
package roster

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Parse splits free text into participant ids. Ids may be separated by
// newlines or commas; blanks are dropped. Order is preserved and no
// dedupe is applied (batch text is taken as typed).
func Parse(text string) []string {
	var ids []string
	for _, line := range strings.Split(strings.ReplaceAll(text, ",", "\n"), "\n") {
		if id := strings.TrimSpace(line); id != "" {
			ids = append(ids, id)
		}
	}
	return ids
}

// ImportFile reads participant ids from a .txt or .csv file. CSV files
// contribute every non-empty trimmed cell; text files are parsed like
// batch text. Duplicates are removed preserving first occurrence.
func ImportFile(path string) ([]string, error) {
	var ids []string

	if strings.EqualFold(filepath.Ext(path), ".csv") {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()

		reader := csv.NewReader(f)
		reader.FieldsPerRecord = -1
		rows, err := reader.ReadAll()
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", filepath.Base(path), err)
		}
		for _, row := range rows {
			for _, cell := range row {
				if id := strings.TrimSpace(cell); id != "" {
					ids = append(ids, id)
				}
			}
		}
	} else {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		ids = Parse(string(data))
	}

	return Dedupe(ids), nil
}

// Dedupe removes duplicate ids preserving first occurrence.
func Dedupe(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	var unique []string
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			unique = append(unique, id)
		}
	}
	return unique
}
