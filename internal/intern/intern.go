// Package intern provides the hash-then-verify dedup table used by the
// encoder's string table and shape pool.
//
// Both pools share the same shape: first occurrence of a byte sequence
// fixes its position (offset into the string table, or index into the
// shape pool), and every later occurrence of byte-identical content must
// resolve to that same position. This is the same "hash first, verify on
// mismatch" pattern as a metric-name collision tracker, generalized from
// strings with names to arbitrary interned byte records: xxHash64 buckets
// candidates for O(1) lookup, and a byte-compare against the stored
// content guards against the astronomically unlikely case of a hash
// collision between two different byte sequences.
package intern

import "github.com/fspk/fspk/internal/hash"

// entry is one bucket slot: the interned bytes and the position assigned
// to them on first occurrence.
type entry struct {
	data []byte
	pos  int
}

// Table interns byte sequences, assigning each distinct sequence a stable
// integer position on first occurrence and returning that same position
// for every subsequent occurrence of byte-identical content.
type Table struct {
	buckets map[uint64][]entry
	count   int
}

// New creates an empty interning table.
func New() *Table {
	return &Table{buckets: make(map[uint64][]entry)}
}

// Intern returns the position assigned to data, creating one via newPos()
// if this is the first time this exact byte sequence has been seen.
//
// newPos is called at most once per distinct byte sequence, only when a
// new entry must be created; it computes the position to assign (e.g. the
// current end of the string table, or the next shape-pool index).
func (t *Table) Intern(data []byte, newPos func() int) (pos int, isNew bool) {
	h := hash.Bytes(data)
	for _, e := range t.buckets[h] {
		if string(e.data) == string(data) {
			return e.pos, false
		}
	}

	pos = newPos()
	cp := make([]byte, len(data))
	copy(cp, data)
	t.buckets[h] = append(t.buckets[h], entry{data: cp, pos: pos})
	t.count++

	return pos, true
}

// Len returns the number of distinct byte sequences interned so far.
func (t *Table) Len() int {
	return t.count
}
