package probe

import (
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"
)

var header = []string{"STATUS", "METHOD", "URL", "EXPECTED", "ACTUAL", "ERROR"}

func (c Check) row() []string {
	status := "PASS"
	if !c.OK() {
		status = "FAIL"
	}
	actual := "-"
	if c.Actual != 0 {
		actual = strconv.Itoa(c.Actual)
	}
	errText := ""
	if c.Err != nil {
		errText = c.Err.Error()
	}
	return []string{status, string(c.Method), c.URL, strconv.Itoa(c.Expected), actual, errText}
}

// WriteTable renders r as aligned columns followed by the summary line.
func (r *Report) WriteTable(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	writeRows(tw, r)
	if err := tw.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintln(w, r.Summary())
	return err
}

// WriteTSV renders r as tab-separated lines without a header, for pipes.
func (r *Report) WriteTSV(w io.Writer) error {
	for _, c := range r.Checks {
		if err := writeLine(w, c.row()); err != nil {
			return err
		}
	}
	return nil
}

func writeRows(w io.Writer, r *Report) {
	_ = writeLine(w, header)
	for _, c := range r.Checks {
		_ = writeLine(w, c.row())
	}
}

func writeLine(w io.Writer, cols []string) error {
	for i, col := range cols {
		sep := "\t"
		if i == len(cols)-1 {
			sep = "\n"
		}
		if _, err := io.WriteString(w, col+sep); err != nil {
			return err
		}
	}
	return nil
}
