package index

// PostingList is the ordered list of row ids associated with one index key.
// Order is insertion order; the same row id may appear more than once if it
// was added more than once.
type PostingList []uint32
