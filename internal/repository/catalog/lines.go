package catalog

import (
	"bufio"
	"errors"
	"fmt"
	"io"
)

// MaxLineBytes bounds a single NDJSON line.
const MaxLineBytes = 4 << 20

// ReadLines calls fn for every line of r without its line terminator.
// Lines longer than limit are drained and counted in oversized instead of
// failing the read. The slice passed to fn is reused after fn returns.
func ReadLines(r io.Reader, limit int, fn func(line []byte) error) (oversized int, err error) {
	br := bufio.NewReaderSize(r, 64*1024)
	var (
		buf     []byte
		tooLong bool
	)
	for {
		chunk, isPrefix, err := br.ReadLine()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return oversized, nil
			}
			return oversized, fmt.Errorf("read line: %w", err)
		}

		if !tooLong {
			if len(buf)+len(chunk) > limit {
				tooLong = true
				buf = buf[:0]
			} else {
				buf = append(buf, chunk...)
			}
		}
		if isPrefix {
			continue
		}

		if tooLong {
			oversized++
			tooLong = false
		} else if err := fn(buf); err != nil {
			return oversized, err
		}
		buf = buf[:0]
	}
}
