package hpack

// appendInt writes value to dst using HPACK's prefix integer encoding
// (RFC 7541 Section 5.1): the low prefixBits bits of the first byte hold
// the value directly if it fits, OR'd with mask; otherwise the prefix
// bits are all set and the remainder is written little-endian base-128,
// every continuation byte but the last carrying the high bit.
func appendInt(dst []byte, mask byte, prefixBits uint8, value int) []byte {
	max := (1 << prefixBits) - 1

	if value < max {
		return append(dst, mask|byte(value))
	}

	dst = append(dst, mask|byte(max))
	rem := value - max
	for rem >= 0x80 {
		dst = append(dst, byte(rem&0x7f)|0x80)
		rem >>= 7
	}
	return append(dst, byte(rem))
}

// decodeInt reads a prefix-encoded integer whose first byte has already
// been classified by the caller (the representation byte doubles as the
// first byte of the index/length integer in every HPACK representation).
// It returns ok=false, with the source rewound to mark, if the source
// runs out before the integer is complete; it returns a decompression
// error if the value would not fit in a positive 32-bit integer.
func decodeInt(src *byteSource, prefixBits uint8) (value int, ok bool, err error) {
	mark := src.Mark()

	b, have := src.ReadByte()
	if !have {
		return 0, false, nil
	}

	max := (1 << prefixBits) - 1
	v := int(b) & max
	if v < max {
		return v, true, nil
	}

	m := uint(0)
	for i := 0; i < 5; i++ {
		cb, have := src.ReadByte()
		if !have {
			src.Rewind(mark)
			return 0, false, nil
		}
		if m == 28 && cb&0xf8 != 0 {
			return 0, false, errIntegerOverflow
		}
		v += int(cb&0x7f) << m
		if cb&0x80 == 0 {
			if v > 1<<31-1 {
				return 0, false, errIntegerOverflow
			}
			return v, true, nil
		}
		m += 7
	}
	return 0, false, errIntegerOverflow
}

// decodeStringLengthPrefix reads the length prefix of an HPACK string
// (RFC 7541 Section 5.2): a 7-bit prefix-coded integer whose preceding bit
// is the Huffman flag. It is kept separate from decodeInt because the flag
// bit must be read off the first byte before the integer's own prefix
// masking discards it.
func decodeStringLengthPrefix(src *byteSource) (huffman bool, length int, ok bool, err error) {
	mark := src.Mark()

	b, have := src.ReadByte()
	if !have {
		return false, 0, false, nil
	}
	huffman = b&0x80 != 0

	const max = 0x7f
	v := int(b) & max
	if v < max {
		return huffman, v, true, nil
	}

	m := uint(0)
	for i := 0; i < 5; i++ {
		cb, have := src.ReadByte()
		if !have {
			src.Rewind(mark)
			return false, 0, false, nil
		}
		if m == 28 && cb&0xf8 != 0 {
			return false, 0, false, errIntegerOverflow
		}
		v += int(cb&0x7f) << m
		if cb&0x80 == 0 {
			return huffman, v, true, nil
		}
		m += 7
	}
	return false, 0, false, errIntegerOverflow
}
