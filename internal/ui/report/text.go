package report

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/j-veylop/bikeshare-explorer/internal/config"
	"github.com/j-veylop/bikeshare-explorer/internal/dataset"
	"github.com/j-veylop/bikeshare-explorer/internal/services"
)

const rule = "----------------------------------------"

// WriteText prints every section of r as plain text.
func WriteText(w io.Writer, r *services.Result) error {
	ew := &errWriter{w: w}

	ew.printf("%s: %d trips (month: %s, day: %s)\n",
		config.DisplayCity(r.Query.City), r.Table.Len(), r.Query.Month, r.Query.Day)

	for _, s := range Sections(r) {
		ew.printf("\nCalculating %s...\n\n", s.Title)
		writeGroups(ew, s.Groups)
		if s.Err != nil {
			ew.printf("%s\n", ErrorText(s.Err))
		}
		ew.printf("\nThis took %.6f seconds.\n%s\n", s.Elapsed.Seconds(), rule)
	}
	return ew.err
}

func writeGroups(ew *errWriter, groups []Group) {
	for i, g := range groups {
		if i > 0 {
			ew.printf("\n")
		}
		if g.Title != "" {
			ew.printf("%s:\n", g.Title)
		}
		tw := tabwriter.NewWriter(ew, 0, 0, 2, ' ', 0)
		for _, f := range g.Fields {
			fmt.Fprintf(tw, "%s:\t%s\n", f.Label, f.Value)
		}
		if err := tw.Flush(); err != nil && ew.err == nil {
			ew.err = err
		}
	}
}

// WriteRaw prints raw rows in pages of size until limit rows were shown
// or the table ends, then prints EndOfData if the end was reached.
func WriteRaw(w io.Writer, t *dataset.Table, limit, size int) error {
	ew := &errWriter{w: w}

	for offset := 0; offset < limit; offset += size {
		page, err := t.Page(offset, min(size, limit-offset))
		if err != nil {
			return err
		}
		if len(page.Rows) > 0 {
			tw := tabwriter.NewWriter(ew, 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, strings.Join(page.Header, "\t"))
			for _, row := range page.Rows {
				fmt.Fprintln(tw, strings.Join(row, "\t"))
			}
			if err := tw.Flush(); err != nil {
				return err
			}
		}
		if page.Done || offset+len(page.Rows) >= t.Len() {
			ew.printf("%s\n", EndOfData)
			break
		}
		ew.printf("\n")
	}
	return ew.err
}

// errWriter remembers the first write error.
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) Write(p []byte) (int, error) {
	if e.err != nil {
		return 0, e.err
	}
	n, err := e.w.Write(p)
	e.err = err
	return n, err
}

func (e *errWriter) printf(format string, args ...any) {
	fmt.Fprintf(e, format, args...)
}
