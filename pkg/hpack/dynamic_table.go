package hpack

// dynamicTable is the HPACK dynamic table (RFC 7541 Section 2.3.2): a FIFO
// of header fields, bounded by a byte budget rather than an entry count,
// realized as a circular buffer so insertion and eviction at the ends are
// both O(1) amortized.
//
// Each entry also carries a monotonically increasing insertion sequence
// number. A caller that needs a stable handle on an entry - the encoder's
// content index, in particular - stores that sequence number instead of a
// pointer or buffer slot: RFC 7541 indices are relative to the table's
// current state and shift on every insertion, so a stored absolute
// position would go stale the moment another entry is added, whereas a
// sequence number converts back to a live relative index (or reveals that
// the entry has since been evicted) in O(1) via insertSeq arithmetic.
type dynamicTable struct {
	entries []HeaderField
	head    int
	count   int
	size    uint32
	maxSize uint32

	insertSeq uint64
}

func newDynamicTable(maxSize uint32) *dynamicTable {
	capacity := int(maxSize / 64)
	if capacity < 16 {
		capacity = 16
	}
	return &dynamicTable{
		entries: make([]HeaderField, capacity),
		maxSize: maxSize,
	}
}

// Add inserts a copy of hf at the front of the table, evicting older
// entries until it fits. An entry whose size exceeds the table's entire
// capacity clears the table and is not inserted (RFC 7541 Section 4.4).
// Returns the sequence number assigned, or 0 if nothing was inserted.
func (dt *dynamicTable) Add(hf HeaderField) uint64 {
	size := uint32(headerSize(hf.Name, hf.Value))

	if size > dt.maxSize {
		dt.Clear()
		return 0
	}

	for dt.size+size > dt.maxSize && dt.count > 0 {
		dt.evictOldest()
	}

	if dt.count == len(dt.entries) {
		dt.grow()
	}

	dt.head = (dt.head - 1 + len(dt.entries)) % len(dt.entries)
	dt.entries[dt.head] = hf.clone()
	dt.count++
	dt.size += size

	dt.insertSeq++
	return dt.insertSeq
}

// Get retrieves the entry at the given 1-based index, where 1 is the most
// recently inserted entry still present.
func (dt *dynamicTable) Get(index int) (HeaderField, bool) {
	if index < 1 || index > dt.count {
		return HeaderField{}, false
	}
	pos := (dt.head + index - 1) % len(dt.entries)
	return dt.entries[pos], true
}

// IndexForSeq converts a sequence number returned by Add into the entry's
// current 1-based relative index, or reports that it has been evicted.
func (dt *dynamicTable) IndexForSeq(seq uint64) (int, bool) {
	if seq == 0 || seq > dt.insertSeq {
		return 0, false
	}
	idx := int(dt.insertSeq - seq + 1)
	if idx < 1 || idx > dt.count {
		return 0, false
	}
	return idx, true
}

// Len returns the number of entries currently held.
func (dt *dynamicTable) Len() int { return dt.count }

// Size returns the current accounted size in bytes.
func (dt *dynamicTable) Size() uint32 { return dt.size }

// MaxSize returns the table's current capacity in bytes.
func (dt *dynamicTable) MaxSize() uint32 { return dt.maxSize }

// SetMaxSize changes the table's capacity, evicting from the tail as
// needed to come back under budget.
func (dt *dynamicTable) SetMaxSize(maxSize uint32) {
	dt.maxSize = maxSize
	for dt.size > dt.maxSize && dt.count > 0 {
		dt.evictOldest()
	}
}

// Remove evicts and returns the oldest entry, if any.
func (dt *dynamicTable) Remove() (HeaderField, bool) {
	if dt.count == 0 {
		return HeaderField{}, false
	}
	tail := (dt.head + dt.count - 1) % len(dt.entries)
	hf := dt.entries[tail]
	dt.evictOldest()
	return hf, true
}

func (dt *dynamicTable) evictOldest() {
	if dt.count == 0 {
		return
	}
	tail := (dt.head + dt.count - 1) % len(dt.entries)
	entry := dt.entries[tail]
	dt.size -= uint32(headerSize(entry.Name, entry.Value))
	dt.count--
	dt.entries[tail] = HeaderField{}
}

func (dt *dynamicTable) grow() {
	newEntries := make([]HeaderField, len(dt.entries)*2)
	for i := 0; i < dt.count; i++ {
		pos := (dt.head + i) % len(dt.entries)
		newEntries[i] = dt.entries[pos]
	}
	dt.entries = newEntries
	dt.head = 0
}

// Clear empties the table without changing its configured capacity.
func (dt *dynamicTable) Clear() {
	for i := 0; i < dt.count; i++ {
		pos := (dt.head + i) % len(dt.entries)
		dt.entries[pos] = HeaderField{}
	}
	dt.head = 0
	dt.count = 0
	dt.size = 0
}

// combinedTable presents the static and dynamic tables through a single
// index space: 1..StaticTableSize addresses the static table, and
// StaticTableSize+1.. addresses the dynamic table, newest first.
type combinedTable struct {
	dynamic *dynamicTable
}

func newCombinedTable(maxDynamicSize uint32) *combinedTable {
	return &combinedTable{dynamic: newDynamicTable(maxDynamicSize)}
}

func (t *combinedTable) Get(index int) (HeaderField, bool) {
	if index <= 0 {
		return HeaderField{}, false
	}
	if index <= StaticTableSize {
		return staticGet(index)
	}
	return t.dynamic.Get(index - StaticTableSize)
}

func (t *combinedTable) SetMaxDynamicSize(size uint32) { t.dynamic.SetMaxSize(size) }
func (t *combinedTable) DynamicSize() uint32            { return t.dynamic.Size() }
func (t *combinedTable) DynamicMaxSize() uint32         { return t.dynamic.MaxSize() }
func (t *combinedTable) DynamicLen() int                { return t.dynamic.Len() }

// AddDynamic inserts hf into the dynamic table, used by the Decoder for
// incrementally-indexed literals. Unlike the Encoder, the Decoder never
// needs a content index over these entries - it only ever looks an entry
// up by the index the peer sent.
func (t *combinedTable) AddDynamic(hf HeaderField) uint64 { return t.dynamic.Add(hf) }
