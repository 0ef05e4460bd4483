package twinefile

import (
	"bufio"
	"fmt"
	"io"
	"os"
)

// Write emits the catalog in canonical form: keys sorted by name,
// locales in canonical order, tab-indented entries. Reformatting an
// already canonical catalog is a no-op.
func (c *Catalog) Write(w io.Writer) error {
	bw := bufio.NewWriter(w)

	for i, k := range c.SortedKeys() {
		if i > 0 {
			fmt.Fprintln(bw)
		}
		fmt.Fprintf(bw, "[%s]\n", k.Name)
		for _, tr := range k.SortedTranslations() {
			fmt.Fprintf(bw, "\t%s = %s\n", tr.Locale, tr.Text)
		}
	}

	return bw.Flush()
}

// WriteFile writes the canonical catalog form to disk.
func (c *Catalog) WriteFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return c.Write(f)
}
