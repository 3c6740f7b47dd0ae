package seed

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// readCSV loads a headered CSV into one map per row. Headers and values
// are trimmed, and a leading UTF-8 BOM on the first header is stripped;
// exported catalog files routinely carry one.
func readCSV(dir, filename string) ([]map[string]string, error) {
	path := filepath.Join(dir, filename)
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("parse %s: no header row", path)
	}

	headers := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		if i == 0 {
			h = strings.TrimPrefix(h, "\uFEFF")
		}
		headers[i] = strings.TrimSpace(h)
	}

	records := make([]map[string]string, 0, len(rows)-1)
	for _, row := range rows[1:] {
		record := make(map[string]string, len(headers))
		for i, header := range headers {
			if i < len(row) {
				record[header] = strings.TrimSpace(row[i])
			}
		}
		records = append(records, record)
	}
	return records, nil
}
