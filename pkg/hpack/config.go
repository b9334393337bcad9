package hpack

// EncoderOptions configures a new Encoder. MaxHeaderTableSize is the
// dynamic table capacity advertised to the peer and must match what the
// peer's Decoder was constructed with for the two sides to stay in sync.
type EncoderOptions struct {
	MaxHeaderTableSize uint32

	// UseIndexing controls whether new (name, value) pairs that miss both
	// tables are added to the dynamic table via incremental indexing.
	// Tests that want to observe literal-without-indexing behavior set
	// this false.
	UseIndexing bool

	// ForceHuffmanOn and ForceHuffmanOff override the Encoder's normal
	// shorter-wins Huffman heuristic. At most one should be set; if both
	// are set, ForceHuffmanOn takes precedence.
	ForceHuffmanOn  bool
	ForceHuffmanOff bool
}

// DefaultEncoderOptions returns the options an HTTP/2 endpoint would use
// absent any special testing needs.
func DefaultEncoderOptions() EncoderOptions {
	return EncoderOptions{
		MaxHeaderTableSize: DefaultHeaderTableSize,
		UseIndexing:        true,
	}
}

func (o EncoderOptions) Validate() error {
	if int32(o.MaxHeaderTableSize) < 0 {
		return newError(ErrCodeInvalidMaxHeaderTableSize, "max header table size out of range")
	}
	return nil
}

// DecoderOptions configures a new Decoder.
type DecoderOptions struct {
	// MaxHeaderSize bounds the aggregate name+value bytes a single
	// header block may emit before the Decoder starts truncating.
	MaxHeaderSize int

	// MaxHeaderTableSize is the local upper bound the peer's encoder
	// must not exceed via a Dynamic Table Size Update.
	MaxHeaderTableSize uint32
}

// DefaultDecoderOptions returns a generous but bounded default, matching
// common HTTP/2 server configurations (an 8 KiB header list cap).
func DefaultDecoderOptions() DecoderOptions {
	return DecoderOptions{
		MaxHeaderSize:      8192,
		MaxHeaderTableSize: DefaultHeaderTableSize,
	}
}

func (o DecoderOptions) Validate() error {
	if o.MaxHeaderSize < 0 {
		return newError(ErrCodeDecompression, "max header size must not be negative")
	}
	if int32(o.MaxHeaderTableSize) < 0 {
		return newError(ErrCodeInvalidMaxHeaderTableSize, "max header table size out of range")
	}
	return nil
}
