package hpack

// headerEntryOverhead is the estimated per-entry structural overhead added
// to a dynamic table entry's size, per RFC 7541 Section 4.1.
const headerEntryOverhead = 32

// HeaderField is a single decompressed or to-be-compressed header name and
// value. Name and value are raw header bytes, not necessarily valid UTF-8
// or even ASCII - HPACK places no encoding requirement on them beyond
// octet strings.
type HeaderField struct {
	Name      []byte
	Value     []byte
	Sensitive bool
}

// Size returns the entry's contribution to dynamic table accounting.
func (h HeaderField) Size() int {
	return headerSize(h.Name, h.Value)
}

func headerSize(name, value []byte) int {
	return len(name) + len(value) + headerEntryOverhead
}

// clone returns a HeaderField whose Name and Value do not alias the
// caller's buffers, as required before insertion into the dynamic table.
func (h HeaderField) clone() HeaderField {
	name := append([]byte(nil), h.Name...)
	value := append([]byte(nil), h.Value...)
	return HeaderField{Name: name, Value: value, Sensitive: h.Sensitive}
}
