// Package index contains the equality index core: a prefix-code codec keyed
// into a red-black tree of posting lists.
package index

import (
	"sync"

	internalErrors "github.com/gcbaptista/go-column-index/internal/errors"
	"github.com/gcbaptista/go-column-index/internal/huffman"
	"github.com/gcbaptista/go-column-index/internal/rbtree"
)

// EqualityIndex answers equality lookups over one column. Tokens are encoded
// through the column's codec, the code is mapped to an int64 key, and the key
// leads to a posting list in the tree.
//
// The index is single-writer: callers serialize Add against everything else
// through Mu. Find/Size only need the read lock.
type EqualityIndex struct {
	Mu sync.RWMutex

	name  string
	codec *huffman.Codec
	tree  *rbtree.Tree

	// codeByKey guards against the hash-fallback weakness of KeyFromCode:
	// if two distinct codes ever land on one key, Add fails loudly instead of
	// silently merging postings.
	codeByKey map[int64]string
}

// New creates an empty index over the given codec. tracer may be nil; it is
// handed to the tree for structural diagnostics.
func New(name string, codec *huffman.Codec, tracer rbtree.Tracer) *EqualityIndex {
	return &EqualityIndex{
		name:      name,
		codec:     codec,
		tree:      rbtree.New(tracer),
		codeByKey: make(map[int64]string),
	}
}

// Name returns the index name (typically the column it covers).
func (ix *EqualityIndex) Name() string { return ix.name }

// Add indexes one (token, rowID) pair. The token must be in the codebook the
// index was built with; an unseen token is an UnknownTokenError. A
// KeyCollisionError means two distinct codes mapped to the same key and the
// pair was NOT indexed.
//
// Callers must hold Mu for writing.
func (ix *EqualityIndex) Add(token string, rowID uint32) error {
	code, err := ix.codec.Encode(token)
	if err != nil {
		return err
	}

	key := KeyFromCode(code)
	if existing, ok := ix.codeByKey[key]; ok {
		if existing != code {
			return internalErrors.NewKeyCollisionError(key, existing, code)
		}
	} else {
		ix.codeByKey[key] = code
	}

	ix.tree.Insert(key, rowID)
	return nil
}

// Find returns the posting list for token in insertion order. An unseen token
// is a normal query outcome and yields an empty list, never an error.
//
// Callers must hold Mu for reading.
func (ix *EqualityIndex) Find(token string) PostingList {
	code, ok := ix.codec.TryEncode(token)
	if !ok {
		return PostingList{}
	}

	postings := ix.tree.Get(KeyFromCode(code))
	out := make(PostingList, len(postings))
	copy(out, postings)
	return out
}

// Size returns the number of distinct keys in the tree (distinct indexed
// tokens), not the number of postings.
func (ix *EqualityIndex) Size() int {
	return ix.tree.SizeDistinctKeys()
}

// Codec exposes the codec for report output (codebook and code tree).
func (ix *EqualityIndex) Codec() *huffman.Codec { return ix.codec }

// Tree exposes the tree for report output. Callers must not mutate it.
func (ix *EqualityIndex) Tree() *rbtree.Tree { return ix.tree }
