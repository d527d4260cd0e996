package batch

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
)

// ParseSelection extracts item IDs from an uploaded selection file. The file
// is either a plain list of IDs (one per line) or a CSV whose first column
// holds the ID; a header row named "id" or "item_id" is skipped. No other
// columns are interpreted.
func ParseSelection(r io.Reader) ([]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	ids := make([]string, 0, 16)
	seen := make(map[string]struct{})
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parse selection file: %w", err)
		}
		if len(record) == 0 {
			continue
		}
		id := strings.TrimSpace(record[0])
		if id == "" {
			continue
		}
		switch strings.ToLower(id) {
		case "id", "item_id":
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	return ids, nil
}
