// Package enrich writes derived connection sizes back into an NDJSON catalog.
package enrich

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"go.uber.org/zap"

	"github.com/kailas-cloud/partdex/internal/domain/connection"
	"github.com/kailas-cloud/partdex/internal/domain/part"
	"github.com/kailas-cloud/partdex/internal/metrics"
	"github.com/kailas-cloud/partdex/internal/repository/catalog"
)

const connectionField = "connection_mm"

// Stats summarizes one enrichment pass.
type Stats struct {
	Records int // JSON objects written
	Skipped int // malformed or oversized lines dropped
	Derived int // connection_mm added or replaced
	Kept    int // explicit connection_mm left untouched
	Unknown int // no derivation possible, written unchanged
}

// Service runs the offline enrichment pass.
type Service struct {
	logger *zap.Logger
}

// New creates an enrichment service.
func New(logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{logger: logger}
}

// Run copies NDJSON from r to w. Every object lacking a usable connection_mm
// gets the derived value written as a number, with the record's own gingiva
// height as hint. All other fields are preserved; keys come out sorted.
func (s *Service) Run(ctx context.Context, r io.Reader, w io.Writer) (Stats, error) {
	var st Stats

	bw := bufio.NewWriter(w)

	oversized, err := catalog.ReadLines(r, catalog.MaxLineBytes, func(raw []byte) error {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("enrich: %w", err)
		}

		line := bytes.TrimSpace(raw)
		if len(line) == 0 {
			return nil
		}

		out, outcome, ok := enrichLine(line)
		if !ok {
			st.Skipped++
			return nil
		}
		switch outcome {
		case connection.SourceExplicit:
			st.Kept++
		case connection.SourceUnknown:
			st.Unknown++
		default:
			st.Derived++
		}
		metrics.ConnectionDerivationsTotal.WithLabelValues(string(outcome)).Inc()

		if _, err := bw.Write(out); err != nil {
			return fmt.Errorf("write record: %w", err)
		}
		if err := bw.WriteByte('\n'); err != nil {
			return fmt.Errorf("write record: %w", err)
		}
		st.Records++
		return nil
	})
	st.Skipped += oversized
	if err != nil {
		return st, err
	}
	if err := bw.Flush(); err != nil {
		return st, fmt.Errorf("flush output: %w", err)
	}

	s.logger.Info("catalog enriched",
		zap.Int("records", st.Records),
		zap.Int("derived", st.Derived),
		zap.Int("kept", st.Kept),
		zap.Int("unknown", st.Unknown),
		zap.Int("skipped", st.Skipped),
	)
	return st, nil
}

// enrichLine returns the line to write and the stage that decided its
// connection size. ok is false for lines that are not a JSON object.
func enrichLine(line []byte) ([]byte, connection.Source, bool) {
	if line[0] != '{' {
		return nil, "", false
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(line, &fields); err != nil {
		return nil, "", false
	}
	var rec part.Record
	if err := json.Unmarshal(line, &rec); err != nil {
		return nil, "", false
	}

	v, src := connection.DeriveWithSource(&rec, rec.GingivaMM.Number())
	if src == connection.SourceExplicit || src == connection.SourceUnknown {
		return line, src, true
	}

	fields[connectionField] = json.RawMessage(strconv.FormatFloat(v, 'f', -1, 64))
	out, err := json.Marshal(fields)
	if err != nil {
		return nil, "", false
	}
	return out, src, true
}
