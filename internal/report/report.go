// Package report renders the session summary and writes it to the output
// file.
package report

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Section headers and the delimiter around the copied input contents.
const (
	HeaderUser      = "=== USER INFORMATION ==="
	HeaderIntegers  = "=== INTEGER CALCULATIONS ==="
	HeaderFile      = "=== FILE INFORMATION ==="
	ContentsDivider = "----------------------"
)

// Report is everything a session collected.
type Report struct {
	FirstName     string
	LastName      string
	FirstInteger  int32
	SecondInteger int32
	Sum           int32
	Product       int32
	InputFileName string
	InputContents string
}

// Render writes the report in its fixed text format.
func (r Report) Render(w io.Writer) error {
	var b bytes.Buffer

	fmt.Fprintln(&b, HeaderUser)
	fmt.Fprintf(&b, "First Name: %s\n", r.FirstName)
	fmt.Fprintf(&b, "Last Name: %s\n\n", r.LastName)

	fmt.Fprintln(&b, HeaderIntegers)
	fmt.Fprintf(&b, "First Integer: %d\n", r.FirstInteger)
	fmt.Fprintf(&b, "Second Integer: %d\n", r.SecondInteger)
	fmt.Fprintf(&b, "Sum: %d\n", r.Sum)
	fmt.Fprintf(&b, "Product: %d\n\n", r.Product)

	fmt.Fprintln(&b, HeaderFile)
	fmt.Fprintf(&b, "Input File Name: %s\n\n", r.InputFileName)
	fmt.Fprintln(&b, "Input File Contents:")
	fmt.Fprintln(&b, ContentsDivider)
	b.WriteString(r.InputContents)
	fmt.Fprintf(&b, "\n%s\n", ContentsDivider)

	_, err := w.Write(b.Bytes())
	return err
}

// Summary writes the short on-screen echo of the report.
func (r Report) Summary(w io.Writer) {
	fmt.Fprintln(w, "\n=== OUTPUT SUMMARY (also written to file) ===")
	fmt.Fprintf(w, "Name: %s %s\n", r.FirstName, r.LastName)
	fmt.Fprintf(w, "Integers: %d and %d\n", r.FirstInteger, r.SecondInteger)
	fmt.Fprintf(w, "Sum: %d\n", r.Sum)
	fmt.Fprintf(w, "Product: %d\n", r.Product)
	fmt.Fprintf(w, "Input file: %s\n", r.InputFileName)
	fmt.Fprintln(w, "Input file contents were successfully processed")
}

// WriteFile writes the report to path atomically: it renders into a temp
// file in the same directory and renames it over path, so path never holds
// a partial report.
func WriteFile(ctx context.Context, path string, r Report) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".report-*.tmp")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
		}
	}()

	if err = r.Render(tmp); err != nil {
		return err
	}
	if err = tmp.Sync(); err != nil {
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}
	if err = os.Chmod(tmp.Name(), 0o644); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
