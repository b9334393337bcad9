package hpack

import "github.com/valyala/bytebufferpool"

// Encoder compresses header fields into an HPACK header block. It owns one
// dynamic table and one content index; it is not safe for concurrent use,
// matching the single-threaded-per-connection model HPACK assumes.
type Encoder struct {
	table *dynamicTable
	index *contentIndex
	opts  EncoderOptions
}

// NewEncoder creates an Encoder with the given options.
func NewEncoder(opts EncoderOptions) (*Encoder, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	table := newDynamicTable(opts.MaxHeaderTableSize)
	return &Encoder{
		table: table,
		index: newContentIndex(table),
		opts:  opts,
	}, nil
}

// MaxHeaderTableSize returns the dynamic table capacity currently
// advertised to the peer.
func (e *Encoder) MaxHeaderTableSize() uint32 { return e.table.MaxSize() }

// SetMaxHeaderTableSize changes the advertised dynamic table capacity,
// emitting a Dynamic Table Size Update onto buf so the peer's decoder
// stays synchronized. A request that does not change the capacity is a
// no-op and emits nothing (RFC 7541 places no requirement on redundant
// updates, and suppressing them saves a byte on every unrelated header
// block between real changes).
func (e *Encoder) SetMaxHeaderTableSize(buf *bytebufferpool.ByteBuffer, newCap uint32) {
	if newCap == e.table.MaxSize() {
		return
	}
	e.table.SetMaxSize(newCap)
	e.index.Rebuild()
	buf.B = appendInt(buf.B, 0x20, 5, int(newCap))
}

// Encode encodes a whole header list into a freshly allocated byte slice,
// for callers that do not need to manage the output buffer themselves.
func (e *Encoder) Encode(headers []HeaderField) []byte {
	buf := getOutputBuffer()
	defer putOutputBuffer(buf)

	for _, h := range headers {
		e.EncodeHeader(buf, h.Name, h.Value, h.Sensitive)
	}

	out := make([]byte, len(buf.B))
	copy(out, buf.B)
	return out
}

// EncodeHeader appends the representation for one header field to buf,
// following the selection procedure of RFC 7541 Section 6: prefer a fully
// indexed reference, fall back to indexing just the name, and only write
// both name and value inline when neither is already known to the peer.
func (e *Encoder) EncodeHeader(buf *bytebufferpool.ByteBuffer, name, value []byte, sensitive bool) {
	if sensitive {
		idx, _ := e.index.Find(name, value)
		e.encodeLiteral(buf, 0x10, 4, idx, name, value)
		return
	}

	if e.table.MaxSize() == 0 {
		if idx, exact := staticFind(name, value); exact {
			e.encodeIndexed(buf, idx)
			return
		}
		nameIdx, _ := staticFind(name, nil)
		e.encodeLiteral(buf, 0x00, 4, nameIdx, name, value)
		return
	}

	if headerSize(name, value) > int(e.table.MaxSize()) {
		idx, _ := e.index.Find(name, value)
		e.encodeLiteral(buf, 0x00, 4, idx, name, value)
		return
	}

	idx, exact := e.index.Find(name, value)
	if exact {
		e.encodeIndexed(buf, idx)
		return
	}

	if !e.opts.UseIndexing {
		e.encodeLiteral(buf, 0x00, 4, idx, name, value)
		return
	}

	e.encodeLiteral(buf, 0x40, 6, idx, name, value)
	seq := e.table.Add(HeaderField{Name: name, Value: value})
	if seq != 0 {
		e.index.Insert(name, seq)
	}
}

func (e *Encoder) encodeIndexed(buf *bytebufferpool.ByteBuffer, index int) {
	buf.B = appendInt(buf.B, 0x80, 7, index)
}

// encodeLiteral writes a literal representation's integer prefix (the
// name index, or 0 for "name follows inline") and then the name (if
// inline) and value strings. mask/prefixBits select which of the three
// literal representations (incremental, without-indexing, never-indexed)
// is being written.
func (e *Encoder) encodeLiteral(buf *bytebufferpool.ByteBuffer, mask byte, prefixBits uint8, nameIndex int, name, value []byte) {
	buf.B = appendInt(buf.B, mask, prefixBits, nameIndex)
	if nameIndex == 0 {
		e.encodeString(buf, name)
	}
	e.encodeString(buf, value)
}

func (e *Encoder) encodeString(buf *bytebufferpool.ByteBuffer, s []byte) {
	if e.shouldHuffman(s) {
		encoded := HuffmanEncode(nil, s)
		buf.B = appendInt(buf.B, 0x80, 7, len(encoded))
		buf.B = append(buf.B, encoded...)
		return
	}
	buf.B = appendInt(buf.B, 0x00, 7, len(s))
	buf.B = append(buf.B, s...)
}

func (e *Encoder) shouldHuffman(s []byte) bool {
	if e.opts.ForceHuffmanOn {
		return true
	}
	if e.opts.ForceHuffmanOff {
		return false
	}
	return HuffmanEncodedLen(s) < len(s)
}
