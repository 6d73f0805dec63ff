package rbtree

import (
	"fmt"
	"io"
)

// WriteASCII renders the tree to w, one node per line as "key[color]" with
// the posting count. Sentinel leaves print as NIL[B] alongside a lone child.
func (t *Tree) WriteASCII(w io.Writer) error {
	if _, err := fmt.Fprintln(w, "(rb-tree: key[color], postings)"); err != nil {
		return err
	}
	return t.writeASCIINode(w, t.root, "", true)
}

func (t *Tree) writeASCIINode(w io.Writer, n *node, prefix string, isTail bool) error {
	connector := "├─ "
	if isTail {
		connector = "└─ "
	}

	if n == t.sentinel {
		_, err := fmt.Fprintf(w, "%s%sNIL[B]\n", prefix, connector)
		return err
	}

	c := "B"
	if n.color == red {
		c = "R"
	}
	if _, err := fmt.Fprintf(w, "%s%s%d[%s] (postings=%d)\n", prefix, connector, n.key, c, len(n.postings)); err != nil {
		return err
	}

	childPrefix := prefix + "│  "
	if isTail {
		childPrefix = prefix + "   "
	}
	if n.left != t.sentinel || n.right != t.sentinel {
		if err := t.writeASCIINode(w, n.left, childPrefix, false); err != nil {
			return err
		}
		return t.writeASCIINode(w, n.right, childPrefix, true)
	}
	return nil
}
