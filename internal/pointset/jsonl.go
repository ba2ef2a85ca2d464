package pointset

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// jsonlRecord is one line of a JSON Lines point file.
type jsonlRecord struct {
	ID    string    `json:"id"`
	Point []float32 `json:"point"`
}

// ReadJSONL reads a batch from a JSON Lines stream, one
// {"id": ..., "point": [...]} object per line. Blank lines are
// skipped. Errors name the offending line.
func ReadJSONL(r io.Reader) (*Batch, error) {
	batch := &Batch{}
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}
		var rec jsonlRecord
		if err := json.Unmarshal([]byte(text), &rec); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		if rec.ID == "" {
			return nil, fmt.Errorf("line %d: missing id", line)
		}
		if len(rec.Point) == 0 {
			return nil, fmt.Errorf("line %d: missing point", line)
		}
		batch.append(rec.ID, rec.Point)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading point file: %w", err)
	}
	return batch, nil
}
