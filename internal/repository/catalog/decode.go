package catalog

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/kailas-cloud/partdex/internal/domain/part"
)

// Decode reads NDJSON records. Blank lines are ignored; lines that are not a
// JSON object, lack a sku or exceed MaxLineBytes are counted in skipped and
// otherwise ignored. Only read errors are returned.
func Decode(r io.Reader) (records []part.Record, skipped int, err error) {
	oversized, err := ReadLines(r, MaxLineBytes, func(raw []byte) error {
		line := bytes.TrimSpace(raw)
		if len(line) == 0 {
			return nil
		}
		rec, ok := DecodeLine(line)
		if !ok {
			skipped++
			return nil
		}
		records = append(records, rec)
		return nil
	})
	skipped += oversized
	if err != nil {
		return records, skipped, fmt.Errorf("read catalog: %w", err)
	}
	return records, skipped, nil
}

// DecodeLine decodes one JSON object line into a record.
func DecodeLine(line []byte) (part.Record, bool) {
	if len(line) == 0 || line[0] != '{' {
		return part.Record{}, false
	}
	var rec part.Record
	if err := json.Unmarshal(line, &rec); err != nil {
		return part.Record{}, false
	}
	if rec.SKU.IsEmpty() {
		return part.Record{}, false
	}
	return rec, true
}
