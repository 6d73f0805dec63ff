package report

import (
	"fmt"
	"io"
	"sort"

	"github.com/gcbaptista/go-column-index/index"
	"github.com/gcbaptista/go-column-index/model"
)

// WriteFrequencyTable writes a token frequency table sorted by token.
func WriteFrequencyTable(w io.Writer, column string, freq map[string]int) error {
	if _, err := fmt.Fprintf(w, "Frequency table for column '%s':\n", column); err != nil {
		return err
	}
	tokens := make([]string, 0, len(freq))
	for token := range freq {
		tokens = append(tokens, token)
	}
	sort.Strings(tokens)
	for _, token := range tokens {
		if _, err := fmt.Fprintf(w, "  %s : %d\n", token, freq[token]); err != nil {
			return err
		}
	}
	return nil
}

// WriteIndexReport writes the codebook, the code tree, the posting tree, and
// the distinct-key count for one index.
func WriteIndexReport(w io.Writer, ix *index.EqualityIndex) error {
	fmt.Fprintf(w, "== Index '%s' codebook ==\n", ix.Name())
	if err := ix.Codec().WriteCodebook(w); err != nil {
		return err
	}

	fmt.Fprintf(w, "\n== Index '%s' code tree ==\n", ix.Name())
	if err := ix.Codec().WriteASCIITree(w); err != nil {
		return err
	}

	fmt.Fprintf(w, "\n== Index '%s' rb-tree ==\n", ix.Name())
	if err := ix.Tree().WriteASCII(w); err != nil {
		return err
	}

	_, err := fmt.Fprintf(w, "\nIndex '%s' distinct keys: %d\n", ix.Name(), ix.Size())
	return err
}

// WriteQueryResult pretty-prints a small result set fetched back from the
// row store.
func WriteQueryResult(w io.Writer, title string, rows []model.Row, columns []string) error {
	if _, err := fmt.Fprintf(w, "\n-- Query: %s --\n", title); err != nil {
		return err
	}
	if len(rows) == 0 {
		_, err := fmt.Fprintln(w, "(no hit)")
		return err
	}
	for _, row := range rows {
		line := fmt.Sprintf("Row#%d", row.ID)
		for _, col := range columns {
			if v, ok := row.Field(col); ok {
				line += fmt.Sprintf("   %s=%s", col, v)
			}
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
