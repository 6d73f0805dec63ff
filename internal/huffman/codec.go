// Package huffman builds token-level optimal prefix codes.
//
// Each distinct token in a column (e.g. "mother", "father", "0", "5") is
// treated as a symbol. The codec builds a binary code tree from a frequency
// table and produces a codebook token -> bitstring ("0"/"1"). No code in a
// codebook is a prefix of another, so the bitstrings can double as unambiguous
// lookup keys. The codec never packs bits into a byte stream; the bitstrings
// are consumed as tree keys by the index layer.
package huffman

import (
	"container/heap"
	"fmt"
	"sort"

	internalErrors "github.com/gcbaptista/go-column-index/internal/errors"
)

// codeNode is a node of the code tree: either a leaf carrying a token or an
// internal node owning two children.
type codeNode interface {
	frequency() int
	// tiebreak orders nodes of equal frequency; internal nodes use the empty
	// string so they sort before any real token.
	tiebreak() string
}

type leafNode struct {
	token string
	freq  int
}

func (n *leafNode) frequency() int   { return n.freq }
func (n *leafNode) tiebreak() string { return n.token }

type internalNode struct {
	freq        int
	left, right codeNode
}

func (n *internalNode) frequency() int   { return n.freq }
func (n *internalNode) tiebreak() string { return "" }

// Codec holds an immutable codebook and the code tree it was derived from.
// Build once per column via NewCodec; never mutated afterwards.
type Codec struct {
	enc  map[string]string
	root codeNode
}

// MergeOperand describes one side of a merge step for tracing.
type MergeOperand struct {
	Token string // empty for internal nodes
	Leaf  bool
	Freq  int
}

// Tracer receives merge-step events while the code tree is built.
// Implementations are purely observational and must not affect the build.
// A nil Tracer disables tracing.
type Tracer interface {
	MergeStep(step int, left, right MergeOperand, combinedFreq int)
}

// NewCodec builds a codec from a token frequency table.
// It returns ErrEmptyFrequencies when the table is empty; every frequency
// must be positive. tracer may be nil.
func NewCodec(freq map[string]int, tracer Tracer) (*Codec, error) {
	if len(freq) == 0 {
		return nil, internalErrors.ErrEmptyFrequencies
	}

	leaves := make([]*leafNode, 0, len(freq))
	for token, f := range freq {
		if f <= 0 {
			return nil, fmt.Errorf("frequency for token '%s' must be positive, got %d", token, f)
		}
		leaves = append(leaves, &leafNode{token: token, freq: f})
	}
	// Map iteration order is random; sorting the initial candidates makes the
	// resulting codebook deterministic for a given frequency table.
	sort.Slice(leaves, func(i, j int) bool {
		if leaves[i].freq != leaves[j].freq {
			return leaves[i].freq < leaves[j].freq
		}
		return leaves[i].token < leaves[j].token
	})

	codec := &Codec{enc: make(map[string]string, len(leaves))}

	// Edge case: a single distinct symbol gets the code "0" with no merges.
	if len(leaves) == 1 {
		codec.root = leaves[0]
		codec.enc[leaves[0].token] = "0"
		return codec, nil
	}

	pq := newCandidateQueue(leaves)
	step := 1
	for pq.Len() > 1 {
		a := heap.Pop(pq).(*candidate)
		b := heap.Pop(pq).(*candidate)
		merged := &internalNode{
			freq:  a.node.frequency() + b.node.frequency(),
			left:  a.node,
			right: b.node,
		}
		if tracer != nil {
			tracer.MergeStep(step, operandOf(a.node), operandOf(b.node), merged.freq)
			step++
		}
		pq.push(merged)
	}
	codec.root = heap.Pop(pq).(*candidate).node

	codec.assign(codec.root, "")
	return codec, nil
}

// assign walks the tree appending "0" for left edges and "1" for right edges;
// a leaf's accumulated path becomes its code.
func (c *Codec) assign(n codeNode, path string) {
	switch node := n.(type) {
	case *leafNode:
		c.enc[node.token] = path
	case *internalNode:
		c.assign(node.left, path+"0")
		c.assign(node.right, path+"1")
	}
}

// Encode returns the code for token, or an UnknownTokenError if the token is
// absent from the codebook.
func (c *Codec) Encode(token string) (string, error) {
	code, ok := c.enc[token]
	if !ok {
		return "", internalErrors.NewUnknownTokenError(token)
	}
	return code, nil
}

// TryEncode is the non-failing variant of Encode, used by query paths that
// must tolerate unseen tokens.
func (c *Codec) TryEncode(token string) (string, bool) {
	code, ok := c.enc[token]
	return code, ok
}

// Codebook returns a copy of the token -> code mapping.
func (c *Codec) Codebook() map[string]string {
	book := make(map[string]string, len(c.enc))
	for token, code := range c.enc {
		book[token] = code
	}
	return book
}

// Len returns the number of distinct tokens in the codebook.
func (c *Codec) Len() int { return len(c.enc) }

func operandOf(n codeNode) MergeOperand {
	if l, ok := n.(*leafNode); ok {
		return MergeOperand{Token: l.token, Leaf: true, Freq: l.freq}
	}
	return MergeOperand{Freq: n.frequency()}
}

// candidate wraps a code-tree node for the priority queue. seq is a final
// tiebreak so heap order is fully deterministic when both frequency and
// tiebreak string are equal (two internal nodes of the same weight).
type candidate struct {
	node codeNode
	seq  int
}

type candidateQueue struct {
	items   []*candidate
	nextSeq int
}

func newCandidateQueue(leaves []*leafNode) *candidateQueue {
	pq := &candidateQueue{items: make([]*candidate, 0, len(leaves))}
	for _, l := range leaves {
		pq.items = append(pq.items, &candidate{node: l, seq: pq.nextSeq})
		pq.nextSeq++
	}
	heap.Init(pq)
	return pq
}

func (pq *candidateQueue) push(n codeNode) {
	heap.Push(pq, &candidate{node: n, seq: pq.nextSeq})
	pq.nextSeq++
}

func (pq *candidateQueue) Len() int { return len(pq.items) }

func (pq *candidateQueue) Less(i, j int) bool {
	a, b := pq.items[i], pq.items[j]
	if a.node.frequency() != b.node.frequency() {
		return a.node.frequency() < b.node.frequency()
	}
	if a.node.tiebreak() != b.node.tiebreak() {
		return a.node.tiebreak() < b.node.tiebreak()
	}
	return a.seq < b.seq
}

func (pq *candidateQueue) Swap(i, j int) {
	pq.items[i], pq.items[j] = pq.items[j], pq.items[i]
}

func (pq *candidateQueue) Push(x any) {
	pq.items = append(pq.items, x.(*candidate))
}

func (pq *candidateQueue) Pop() any {
	n := len(pq.items) - 1
	item := pq.items[n]
	pq.items = pq.items[:n]
	return item
}
