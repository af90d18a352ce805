package dataset

import "fmt"

// Page is a fixed-size window of raw source rows.
type Page struct {
	Header []string
	Rows   [][]string
	Offset int
	// Done is set when no rows remain after this page.
	Done bool
}

// Page returns up to size raw rows starting at offset, in source column
// order. An offset at or past the end yields an empty page with Done set.
func (t *Table) Page(offset, size int) (Page, error) {
	if size <= 0 {
		return Page{}, fmt.Errorf("page size must be positive, got %d", size)
	}
	if offset < 0 {
		offset = 0
	}

	p := Page{Header: t.Columns(), Offset: offset}
	if offset >= len(t.rows) {
		p.Done = true
		return p, nil
	}

	end := min(offset+size, len(t.rows))
	sub := t.frame.Subset(t.rows[offset:end])
	if sub.Err != nil {
		return Page{}, fmt.Errorf("failed to read rows %d-%d: %w", offset, end, sub.Err)
	}

	records := sub.Records()
	if len(records) > 0 {
		p.Header = records[0]
		p.Rows = records[1:]
	}
	p.Done = end >= len(t.rows)
	return p, nil
}
