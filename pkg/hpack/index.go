package hpack

import "github.com/cespare/xxhash/v2"

// contentIndex gives the Encoder O(1) lookup from a header name (and,
// within a name's chain, a value) to the newest matching dynamic table
// entry, without walking the table linearly on every header field.
//
// It is grounded on the hash-chained HeaderEntry design in the original
// Twitter hpack Encoder, adapted to this table's circular-buffer-plus-
// sequence-number realization: rather than linking entries together with
// pointers (and separately threading a FIFO eviction order through the
// same links), each bucket merely stores the sequence numbers of entries
// that hashed into it, and a stale entry - one since evicted from the
// dynamic table - is simply filtered out when its bucket is walked. This
// keeps the index a flat array of uint64 slices with no pointer graph to
// keep cycle-free by hand.
type contentIndex struct {
	buckets [][]uint64
	table   *dynamicTable
}

func newContentIndex(table *dynamicTable) *contentIndex {
	return &contentIndex{
		buckets: make([][]uint64, bucketCountFor(table.MaxSize())),
		table:   table,
	}
}

// bucketCountFor picks a small prime bucket count scaled to how many
// entries a table of this capacity can hold, keeping chains short without
// over-allocating for small tables.
func bucketCountFor(maxSize uint32) int {
	entries := int(maxSize/64) + 1
	switch {
	case entries <= 32:
		return 17
	case entries <= 256:
		return 131
	case entries <= 2048:
		return 1031
	default:
		return 8191
	}
}

func (ci *contentIndex) hashName(name []byte) uint64 {
	return xxhash.Sum64(name)
}

func (ci *contentIndex) bucketFor(name []byte) int {
	return int(ci.hashName(name) % uint64(len(ci.buckets)))
}

// Insert records a newly added entry under seq, the sequence number Add
// returned for it.
func (ci *contentIndex) Insert(name []byte, seq uint64) {
	if seq == 0 {
		return
	}
	b := ci.bucketFor(name)
	ci.buckets[b] = append(ci.buckets[b], seq)
}

// Rebuild resizes the bucket array to fit the table's current capacity and
// re-indexes every live entry. Called when the table's capacity changes
// enough to warrant different bucket granularity.
func (ci *contentIndex) Rebuild() {
	n := bucketCountFor(ci.table.MaxSize())
	ci.buckets = make([][]uint64, n)
	for idx := 1; idx <= ci.table.Len(); idx++ {
		hf, ok := ci.table.Get(idx)
		if !ok {
			continue
		}
		seq, ok := ci.table.seqForIndexUnsafe(idx)
		if !ok {
			continue
		}
		ci.Insert(hf.Name, seq)
	}
}

// Find returns the absolute combined-table index of the newest dynamic
// table entry matching name (and, if exact is true, value too), searching
// the static table first as RFC 7541 does not prefer one table over the
// other by recency but implementations conventionally check the fixed
// table first since it requires no hashing.
func (ci *contentIndex) Find(name, value []byte) (index int, exactMatch bool) {
	staticIdx, staticExact := staticFind(name, value)
	if staticExact {
		return staticIdx, true
	}

	b := ci.bucketFor(name)
	chain := ci.buckets[b]

	// Drop stale (evicted) sequence numbers first, compacting forward: a
	// forward read/write pass never overwrites an entry before it has been
	// read, unlike compacting while walking the chain newest-first below.
	write := 0
	for read := 0; read < len(chain); read++ {
		if _, ok := ci.table.IndexForSeq(chain[read]); ok {
			chain[write] = chain[read]
			write++
		}
	}
	chain = chain[:write]
	ci.buckets[b] = chain

	nameMatch := 0
	for i := len(chain) - 1; i >= 0; i-- {
		idx, ok := ci.table.IndexForSeq(chain[i])
		if !ok {
			continue
		}

		hf, _ := ci.table.Get(idx)
		if !constantTimeEqual(hf.Name, name) {
			continue
		}
		absolute := StaticTableSize + idx
		if constantTimeEqual(hf.Value, value) {
			return absolute, true
		}
		if nameMatch == 0 {
			nameMatch = absolute
		}
	}

	if nameMatch > 0 {
		return nameMatch, false
	}
	if staticIdx > 0 {
		return staticIdx, false
	}
	return 0, false
}

// seqForIndexUnsafe recovers the sequence number for a currently-valid
// 1-based index - the inverse of IndexForSeq - used only when rebuilding
// the content index from the table's present contents.
func (dt *dynamicTable) seqForIndexUnsafe(index int) (uint64, bool) {
	if index < 1 || index > dt.count {
		return 0, false
	}
	return dt.insertSeq - uint64(index) + 1, true
}
