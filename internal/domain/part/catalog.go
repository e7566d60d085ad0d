package part

import "time"

// Catalog is one immutable load of the record source. Callers must not modify Records.
type Catalog struct {
	Records  []Record
	Skipped  int
	Source   string
	LoadedAt time.Time
}

// Len returns the number of usable records.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.Records)
}
