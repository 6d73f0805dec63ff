package index

import (
	"hash/fnv"
	"strconv"
)

// KeyFromCode maps a binary code string ("0101...") to an int64 tree key.
// A leading '1' is prepended before parsing so that leading zeros survive the
// conversion: "01" becomes 0b101 while "1" becomes 0b11, keeping the two
// distinct. The function is total and deterministic; the same code always
// yields the same key within one process run.
//
// Codes longer than 63 bits cannot be represented directly and fall back to a
// 64-bit FNV-1a hash of the prefixed string, masked to stay non-negative.
// The fallback is NOT collision-free against the direct-integer path or other
// hashed codes; a collision would merge the postings of two unrelated tokens
// under one key. EqualityIndex.Add detects exactly that case and refuses the
// insert instead of corrupting the index. Codes that long require a column
// with an enormous number of distinct values, so the direct path is the
// overwhelmingly common one.
func KeyFromCode(code string) int64 {
	prefixed := "1" + code
	if key, err := strconv.ParseInt(prefixed, 2, 64); err == nil {
		return key
	}

	h := fnv.New64a()
	_, _ = h.Write([]byte(prefixed))
	return int64(h.Sum64() &^ (1 << 63))
}
