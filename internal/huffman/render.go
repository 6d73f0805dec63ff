package huffman

import (
	"fmt"
	"io"
	"sort"
)

// WriteCodebook writes the codebook to w, one "token -> code" line per token,
// sorted by token.
func (c *Codec) WriteCodebook(w io.Writer) error {
	tokens := make([]string, 0, len(c.enc))
	for token := range c.enc {
		tokens = append(tokens, token)
	}
	sort.Strings(tokens)

	for _, token := range tokens {
		if _, err := fmt.Fprintf(w, "%s -> %s\n", token, c.enc[token]); err != nil {
			return err
		}
	}
	return nil
}

// WriteASCIITree renders the code tree to w with 0/1 edge labels.
func (c *Codec) WriteASCIITree(w io.Writer) error {
	if _, err := fmt.Fprintln(w, "(code tree; left=0, right=1)"); err != nil {
		return err
	}
	return writeASCIINode(w, c.root, "", true, "")
}

func writeASCIINode(w io.Writer, n codeNode, prefix string, isTail bool, edge string) error {
	if n == nil {
		return nil
	}

	label := "(internal)"
	if l, ok := n.(*leafNode); ok {
		label = "'" + l.token + "'"
	}

	connector := "├─ "
	if isTail {
		connector = "└─ "
	}
	edgeLabel := ""
	if edge != "" {
		edgeLabel = edge + " "
	}
	if _, err := fmt.Fprintf(w, "%s%s%s%s [%d]\n", prefix, edgeLabel, connector, label, n.frequency()); err != nil {
		return err
	}

	childPrefix := prefix + "│  "
	if isTail {
		childPrefix = prefix + "   "
	}
	if in, ok := n.(*internalNode); ok {
		if err := writeASCIINode(w, in.left, childPrefix, false, "0"); err != nil {
			return err
		}
		return writeASCIINode(w, in.right, childPrefix, true, "1")
	}
	return nil
}
