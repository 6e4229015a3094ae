// Package ledger persists session CSVs and merges them into the append-only
// aggregate files.
package ledger

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ErrSchemaMismatch means an aggregate file's columns differ from the batch
// being appended. Merging anyway would silently misalign every later read,
// so the append is refused.
var ErrSchemaMismatch = errors.New("aggregate schema mismatch")

// PlayerHeader is the player ledger column set. Headers are load-bearing:
// every append batch must carry exactly these columns.
var PlayerHeader = []string{
	"uuid", "row", "player", "level", "score", "kills",
	"damage", "goldSpent", "team", "Victory/Defeat", "datetime",
}

// MiddleControlHeader is the middle-control ledger column set.
var MiddleControlHeader = []string{"uuid", "team", "timeMMSS", "middleControlSeconds"}

// Write creates (or truncates) a CSV file with a header and rows.
func Write(path string, header []string, rows [][]string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create dir for %s: %w", path, err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	if err := w.WriteAll(rows); err != nil {
		return fmt.Errorf("write rows: %w", err)
	}
	w.Flush()
	return w.Error()
}

// Read loads a CSV file. A missing file is an empty table, not an error:
// header and rows come back nil.
func Read(path string) (header []string, rows [][]string, err error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil, nil
		}
		return nil, nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	records, err := r.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("read %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, nil, nil
	}
	return records[0], records[1:], nil
}

// Append merges newRows into the aggregate at path: read, concatenate after
// the existing rows, write back. Order is preserved; nothing is deduplicated
// or updated. A missing aggregate is created with the batch's header. An
// existing aggregate whose header differs from the batch's is refused with
// ErrSchemaMismatch.
func Append(path string, header []string, newRows [][]string) error {
	existingHeader, existingRows, err := Read(path)
	if err != nil {
		return err
	}
	if existingHeader != nil && !sameColumns(existingHeader, header) {
		return fmt.Errorf("%w: %s has columns %v, batch has %v",
			ErrSchemaMismatch, filepath.Base(path), existingHeader, header)
	}
	combined := make([][]string, 0, len(existingRows)+len(newRows))
	combined = append(combined, existingRows...)
	combined = append(combined, newRows...)
	return Write(path, header, combined)
}

// AppendFile merges a session CSV into an aggregate, carrying the session
// file's own header as the batch schema.
func AppendFile(aggregatePath, sessionPath string) error {
	header, rows, err := Read(sessionPath)
	if err != nil {
		return err
	}
	if header == nil {
		return fmt.Errorf("session file missing or empty: %s", sessionPath)
	}
	return Append(aggregatePath, header, rows)
}

func sameColumns(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
