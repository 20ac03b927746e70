package election

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ostcar/stvtab/stv"
)

// WriteResults writes one CSV file per race, named after its sanitized
// position, into outDir — the Go-idiomatic analogue of the original's
// pd.ExcelWriter one-sheet-per-race workbook
// (original_source/interfaces/cmd/Runner.py), without requiring a
// spreadsheet library this pack never retrieves.
func WriteResults(e *Election, outDir string) error {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("creating output directory %s: %w", outDir, err)
	}

	rows := e.SortedResultRows()
	for _, position := range e.positions() {
		path := filepath.Join(outDir, sanitizeFilename(position)+".csv")
		if err := writeRaceCSV(path, rows[position]); err != nil {
			return err
		}
	}
	return nil
}

func writeRaceCSV(path string, rows []stv.ResultRow) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating result file %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write([]string{"candidate_id", "name", "party", "status", "score"}); err != nil {
		return fmt.Errorf("writing header to %s: %w", path, err)
	}
	for _, row := range rows {
		record := []string{row.CandidateID, row.Name, row.Party, row.Status, row.ScoreDisplay}
		if err := w.Write(record); err != nil {
			return fmt.Errorf("writing row to %s: %w", path, err)
		}
	}
	return w.Error()
}

// sanitizeFilename strips characters that would be awkward in a filename
// from a race position label.
func sanitizeFilename(s string) string {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			out = append(out, r)
		case r == ' ':
			out = append(out, '_')
		}
	}
	if len(out) == 0 {
		return "race"
	}
	return string(out)
}
