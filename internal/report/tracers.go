// Package report renders diagnostics and human-readable index reports.
// Everything here writes to an explicit io.Writer handed in by the caller;
// nothing touches global output state, and none of it affects index contents.
package report

import (
	"fmt"
	"io"

	"github.com/gcbaptista/go-column-index/internal/huffman"
	"github.com/gcbaptista/go-column-index/internal/rbtree"
)

// MergeTracer logs code-tree merge steps. It implements huffman.Tracer.
type MergeTracer struct {
	W io.Writer
}

func (mt *MergeTracer) MergeStep(step int, left, right huffman.MergeOperand, combinedFreq int) {
	fmt.Fprintf(mt.W, "Merge #%d: %s[%d] + %s[%d] -> %d\n",
		step, operandLabel(left), left.Freq, operandLabel(right), right.Freq, combinedFreq)
}

func operandLabel(op huffman.MergeOperand) string {
	if op.Leaf {
		return "'" + op.Token + "'"
	}
	return "(internal)"
}

// TreeTracer logs tree structural events and, when Snapshots is set, renders
// the tree after each fix-up. It implements rbtree.Tracer.
type TreeTracer struct {
	W         io.Writer
	Snapshots bool
}

func (tt *TreeTracer) TreeEvent(e rbtree.Event) {
	switch e.Kind {
	case rbtree.EventInsert:
		fmt.Fprintf(tt.W, "insert key=%d row=%d\n", e.Key, e.RowID)
	case rbtree.EventAppend:
		fmt.Fprintf(tt.W, "append key=%d row=%d (duplicate key, no restructuring)\n", e.Key, e.RowID)
	case rbtree.EventRecolor:
		fmt.Fprintf(tt.W, "  fixup: red uncle, recolor around key=%d\n", e.Key)
	case rbtree.EventInnerCase:
		fmt.Fprintf(tt.W, "  fixup: inner child at key=%d, rotating outward\n", e.Key)
	case rbtree.EventOuterCase:
		fmt.Fprintf(tt.W, "  fixup: outer child, recolor and rotate grandparent key=%d\n", e.Key)
	case rbtree.EventRotateLeft:
		fmt.Fprintf(tt.W, "  rotate-left around key=%d\n", e.Key)
	case rbtree.EventRotateRight:
		fmt.Fprintf(tt.W, "  rotate-right around key=%d\n", e.Key)
	}
}

func (tt *TreeTracer) FixupDone(t *rbtree.Tree) {
	if !tt.Snapshots {
		return
	}
	_ = t.WriteASCII(tt.W)
}
