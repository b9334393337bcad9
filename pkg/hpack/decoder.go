package hpack

// indexType classifies how a literal representation's header field is
// handled once decoded: whether it is added to the dynamic table, and
// whether the peer has marked it sensitive (RFC 7541 Section 6.2).
type indexType uint8

const (
	idxNone indexType = iota
	idxIncremental
	idxNever
)

// decState is the Decoder's position within a single header field
// representation. A representation that straddles two calls to Decode
// leaves the Decoder parked in the state that needs more input; the next
// call resumes exactly there instead of restarting the representation.
type decState uint8

const (
	stRepresentation decState = iota
	stLiteralNameLength
	stLiteralNameBytes
	stLiteralValueLength
	stLiteralValueBytes
)

// Decoder turns an HPACK header block, fed incrementally, into a sequence
// of HeaderSink callbacks. It owns one dynamic table and suspends cleanly
// at any byte boundary: Decode can be called with whatever fragment of the
// block happened to arrive off the wire, including a single byte at a
// time, and will emit exactly the headers whose representations are fully
// present so far.
type Decoder struct {
	table *combinedTable
	src   byteSource

	maxHeaderSize     int
	localMaxTableSize uint32

	state       decState
	atBlockStart bool
	sizeUpdateRequired bool

	headerSize int
	truncated  bool

	curIndexType   indexType
	curName        []byte
	curNameLen     int
	curNameHuffman bool
	curValue       []byte
	curValueLen    int
	curValueHuffman bool
}

// NewDecoder creates a Decoder with the given options.
func NewDecoder(opts DecoderOptions) (*Decoder, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return &Decoder{
		table:             newCombinedTable(opts.MaxHeaderTableSize),
		maxHeaderSize:     opts.MaxHeaderSize,
		localMaxTableSize: opts.MaxHeaderTableSize,
		atBlockStart:      true,
	}, nil
}

// SetMaxHeaderTableSize lowers or raises the local ceiling the peer's
// Dynamic Table Size Updates must respect, and shrinks the table itself to
// match. If this reduces the table below its current capacity, the peer
// has not yet been told and the next header block it sends is presumed to
// still rely on the old, larger capacity; sizeUpdateRequired records that
// a Dynamic Table Size Update must be the first representation accepted.
func (d *Decoder) SetMaxHeaderTableSize(newCap uint32) {
	if newCap < d.table.DynamicMaxSize() {
		d.sizeUpdateRequired = true
	}
	d.localMaxTableSize = newCap
	d.table.SetMaxDynamicSize(newCap)
}

// EndHeaderBlock marks the end of one header block (e.g. the end of a
// HEADERS frame sequence for one HTTP/2 stream). It resets the per-block
// truncation accounting and reports whether any header in the block that
// just ended was dropped for exceeding MaxHeaderSize. The dynamic table is
// untouched: it persists across header blocks for the life of the
// connection.
//
// It is an error to call EndHeaderBlock while the Decoder is parked
// mid-representation (state != stRepresentation, or unconsumed bytes of a
// partial representation prefix still buffered): that means the caller
// fed every byte it has and the block still ends with an incomplete
// integer or string, which can only mean the peer sent a malformed or
// truncated block, never that more bytes are merely late.
func (d *Decoder) EndHeaderBlock() (bool, error) {
	if d.state != stRepresentation || d.src.Remaining() > 0 {
		return false, errUnexpectedEnd
	}

	wasTruncated := d.truncated
	d.truncated = false
	d.headerSize = 0
	d.atBlockStart = true
	d.curIndexType = idxNone
	return wasTruncated, nil
}

// Decode feeds p into the Decoder and emits every header field whose
// representation becomes fully available as a result, via sink. It may be
// called any number of times with arbitrary fragments of a header block;
// a representation that runs out of input mid-way is resumed by the next
// call rather than re-parsed from scratch.
func (d *Decoder) Decode(p []byte, sink HeaderSink) error {
	d.src.buf = append(d.src.buf, p...)
	if err := d.run(sink); err != nil {
		return err
	}
	d.compact()
	return nil
}

// compact drops the bytes already consumed from the front of the source
// buffer so it does not grow without bound across a long-lived Decoder.
func (d *Decoder) compact() {
	if d.src.pos == 0 {
		return
	}
	n := copy(d.src.buf, d.src.buf[d.src.pos:])
	d.src.buf = d.src.buf[:n]
	d.src.pos = 0
}

// run advances the state machine as far as the currently buffered input
// allows, returning nil (not an error) when it runs out of bytes mid
// representation; the Decoder is left parked at d.state for the next
// Decode call to resume.
func (d *Decoder) run(sink HeaderSink) error {
	for {
		switch d.state {
		case stRepresentation:
			b, have := d.src.Peek()
			if !have {
				return nil
			}

			var prefixBits uint8
			isSizeUpdate := false
			switch {
			case b&0x80 != 0:
				prefixBits = 7
			case b&0x40 != 0:
				prefixBits = 6
				d.curIndexType = idxIncremental
			case b&0x20 != 0:
				prefixBits = 5
				isSizeUpdate = true
			case b&0x10 != 0:
				prefixBits = 4
				d.curIndexType = idxNever
			default:
				prefixBits = 4
				d.curIndexType = idxNone
			}

			if isSizeUpdate {
				if !d.atBlockStart {
					return errMisplacedSizeUpdate
				}
			} else if d.sizeUpdateRequired {
				return ErrMaxHeaderTableSizeChangeRequired
			}

			value, ok, err := decodeInt(&d.src, prefixBits)
			if err != nil {
				return err
			}
			if !ok {
				return nil
			}
			if !isSizeUpdate {
				d.atBlockStart = false
			}

			switch {
			case b&0x80 != 0:
				if err := d.finishIndexed(value, sink); err != nil {
					return err
				}
			case isSizeUpdate:
				if err := d.finishSizeUpdate(value); err != nil {
					return err
				}
			default:
				if err := d.afterNameIndex(value); err != nil {
					return err
				}
			}

		case stLiteralNameLength:
			huff, length, ok, err := decodeStringLengthPrefix(&d.src)
			if err != nil {
				return err
			}
			if !ok {
				return nil
			}
			if length == 0 {
				return errEmptyName
			}
			d.curNameHuffman = huff
			d.curNameLen = length
			d.accountSize(length)
			d.state = stLiteralNameBytes

		case stLiteralNameBytes:
			name, ok, err := d.readLiteral(d.curNameLen, d.curNameHuffman)
			if err != nil {
				return err
			}
			if !ok {
				return nil
			}
			d.curName = name
			d.state = stLiteralValueLength

		case stLiteralValueLength:
			huff, length, ok, err := decodeStringLengthPrefix(&d.src)
			if err != nil {
				return err
			}
			if !ok {
				return nil
			}
			d.curValueHuffman = huff
			d.curValueLen = length
			d.accountSize(length)
			d.state = stLiteralValueBytes

		case stLiteralValueBytes:
			value, ok, err := d.readLiteral(d.curValueLen, d.curValueHuffman)
			if err != nil {
				return err
			}
			if !ok {
				return nil
			}
			d.curValue = value
			if err := d.finishLiteral(sink); err != nil {
				return err
			}
		}
	}
}

// readLiteral consumes n wire bytes for a literal name or value, Huffman
// decoding them if huffman is set. When the current header has already
// been marked for truncation and will not be retained in the dynamic
// table, the bytes are skipped rather than copied or decoded - they
// contribute nothing but their length, already accounted for.
func (d *Decoder) readLiteral(n int, huffman bool) ([]byte, bool, error) {
	if d.truncated && d.curIndexType != idxIncremental {
		if !d.src.Skip(n) {
			return nil, false, nil
		}
		return nil, true, nil
	}

	raw, ok := d.src.Next(n)
	if !ok {
		return nil, false, nil
	}
	if huffman {
		decoded, err := HuffmanDecode(raw)
		if err != nil {
			return nil, false, err
		}
		return decoded, true, nil
	}
	return append([]byte(nil), raw...), true, nil
}

// accountSize adds n bytes to the running total for the header block
// currently in progress and latches the truncation flag once the
// configured maximum is exceeded. The flag is sticky for the rest of the
// block: once set, every later header in the block is also suppressed,
// matching a strict reading of "header list size" as a block-wide budget.
func (d *Decoder) accountSize(n int) {
	d.headerSize += n
	if d.headerSize > d.maxHeaderSize {
		d.truncated = true
	}
}

func (d *Decoder) finishIndexed(index int, sink HeaderSink) error {
	if index == 0 {
		return errZeroIndex
	}
	hf, ok := d.table.Get(index)
	if !ok {
		return errIndexOutOfBounds
	}

	d.accountSize(len(hf.Name) + len(hf.Value))
	if !d.truncated {
		sink.OnHeaderField(hf.Name, hf.Value, false)
	}

	d.state = stRepresentation
	return nil
}

func (d *Decoder) finishSizeUpdate(newCap int) error {
	if uint32(newCap) > d.localMaxTableSize {
		return ErrInvalidMaxHeaderTableSize
	}
	d.table.SetMaxDynamicSize(uint32(newCap))
	d.sizeUpdateRequired = false
	d.state = stRepresentation
	return nil
}

// afterNameIndex resolves the name half of a literal representation once
// its name-index prefix is known: index 0 means the name follows inline
// and the state machine moves on to read its length, any other value
// resolves immediately against the combined table since no further input
// is needed for that.
func (d *Decoder) afterNameIndex(nameIndex int) error {
	if nameIndex == 0 {
		d.curName = nil
		d.state = stLiteralNameLength
		return nil
	}

	hf, ok := d.table.Get(nameIndex)
	if !ok {
		return errIndexOutOfBounds
	}
	d.curName = append(d.curName[:0], hf.Name...)
	d.accountSize(len(d.curName))
	d.state = stLiteralValueLength
	return nil
}

// finishLiteral is reached once a literal representation's value bytes
// have been fully consumed (or skipped). It emits the header unless the
// block is truncated, and - for incremental indexing - inserts it into the
// dynamic table regardless of truncation, since an entry the peer's
// encoder believes it inserted must exist at the same relative index on
// both sides even if this decoder chose not to surface it to its caller.
func (d *Decoder) finishLiteral(sink HeaderSink) error {
	if d.curIndexType == idxIncremental {
		d.table.AddDynamic(HeaderField{Name: d.curName, Value: d.curValue})
	}
	if !d.truncated {
		sink.OnHeaderField(d.curName, d.curValue, d.curIndexType == idxNever)
	}

	d.state = stRepresentation
	return nil
}
