package hpack

import "testing"

func TestHuffmanEncode(t *testing.T) {
	tests := []struct {
		input    string
		expected []byte
	}{
		{"", nil},
		{"www.example.com", []byte{
			0xf1, 0xe3, 0xc2, 0xe5, 0xf2, 0x3a, 0x6b, 0xa0,
			0xab, 0x90, 0xf4, 0xff,
		}},
		{"no-cache", []byte{0xa8, 0xeb, 0x10, 0x64, 0x9c, 0xbf}},
		{"custom-key", []byte{0x25, 0xa8, 0x49, 0xe9, 0x5b, 0xa9, 0x7d, 0x7f}},
		{"custom-value", []byte{0x25, 0xa8, 0x49, 0xe9, 0x5b, 0xb8, 0xe8, 0xb4, 0xbf}},
	}

	for _, tt := range tests {
		got := HuffmanEncode(nil, []byte(tt.input))
		if string(got) != string(tt.expected) {
			t.Errorf("HuffmanEncode(%q) = %x, want %x", tt.input, got, tt.expected)
		}
	}
}

func TestHuffmanDecode(t *testing.T) {
	tests := []struct {
		input    []byte
		expected string
	}{
		{nil, ""},
		{
			[]byte{0xf1, 0xe3, 0xc2, 0xe5, 0xf2, 0x3a, 0x6b, 0xa0, 0xab, 0x90, 0xf4, 0xff},
			"www.example.com",
		},
		{[]byte{0xa8, 0xeb, 0x10, 0x64, 0x9c, 0xbf}, "no-cache"},
		{[]byte{0x25, 0xa8, 0x49, 0xe9, 0x5b, 0xa9, 0x7d, 0x7f}, "custom-key"},
		{[]byte{0x25, 0xa8, 0x49, 0xe9, 0x5b, 0xb8, 0xe8, 0xb4, 0xbf}, "custom-value"},
	}

	for _, tt := range tests {
		got, err := HuffmanDecode(tt.input)
		if err != nil {
			t.Errorf("HuffmanDecode(%x) error: %v", tt.input, err)
			continue
		}
		if string(got) != tt.expected {
			t.Errorf("HuffmanDecode(%x) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestHuffmanRoundTrip(t *testing.T) {
	tests := []string{
		"",
		"hello",
		"www.example.com",
		":method",
		"GET",
		"application/json",
		"Mozilla/5.0",
		"a",
		string([]byte{0x00, 0x01, 0x02, 0xff}),
	}

	for _, original := range tests {
		encoded := HuffmanEncode(nil, []byte(original))
		decoded, err := HuffmanDecode(encoded)
		if err != nil {
			t.Errorf("round trip %q: decode error %v", original, err)
			continue
		}
		if string(decoded) != original {
			t.Errorf("round trip %q: got %q", original, decoded)
		}
	}
}

// TestHuffmanDecodeInvalid exercises the error paths: an incomplete final
// symbol and padding that is not a strict prefix of the EOS code must both
// be rejected, not silently truncated.
func TestHuffmanDecodeInvalid(t *testing.T) {
	tests := []struct {
		name  string
		input []byte
	}{
		{"all zero bits, too many to be padding", []byte{0x00, 0x00}},
		{"single zero byte", []byte{0x00}},
	}

	for _, tt := range tests {
		if _, err := HuffmanDecode(tt.input); err == nil {
			t.Errorf("%s: expected error, got nil", tt.name)
		}
	}
}

func TestHuffmanEncodedLen(t *testing.T) {
	for _, s := range []string{"", "GET", "www.example.com", "custom-key"} {
		want := len(HuffmanEncode(nil, []byte(s)))
		got := HuffmanEncodedLen([]byte(s))
		if got != want {
			t.Errorf("HuffmanEncodedLen(%q) = %d, want %d", s, got, want)
		}
	}
}

func FuzzHuffmanRoundTrip(f *testing.F) {
	f.Add([]byte(""))
	f.Add([]byte("www.example.com"))
	f.Add([]byte("GET"))
	f.Add([]byte{0x00, 0xff, 0x7f, 0x80})

	f.Fuzz(func(t *testing.T, s []byte) {
		encoded := HuffmanEncode(nil, s)
		decoded, err := HuffmanDecode(encoded)
		if err != nil {
			t.Fatalf("decode of our own encoding failed: %v", err)
		}
		if string(decoded) != string(s) {
			t.Fatalf("round trip mismatch: got %x, want %x", decoded, s)
		}
	})
}

func FuzzHuffmanDecodeNoPanic(f *testing.F) {
	f.Add([]byte{0xf1, 0xe3, 0xc2, 0xe5, 0xf2, 0x3a, 0x6b, 0xa0, 0xab, 0x90, 0xf4, 0xff})
	f.Add([]byte{0x00})
	f.Add([]byte{0xff, 0xff, 0xff, 0xff})

	f.Fuzz(func(t *testing.T, data []byte) {
		_, _ = HuffmanDecode(data)
	})
}

func BenchmarkHuffmanEncode(b *testing.B) {
	tests := []struct {
		name  string
		input string
	}{
		{"short", "GET"},
		{"medium", "www.example.com"},
		{"long", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"},
	}

	for _, tt := range tests {
		b.Run(tt.name, func(b *testing.B) {
			b.ReportAllocs()
			b.SetBytes(int64(len(tt.input)))
			b.ResetTimer()

			for i := 0; i < b.N; i++ {
				_ = HuffmanEncode(nil, []byte(tt.input))
			}
		})
	}
}

func BenchmarkHuffmanDecode(b *testing.B) {
	tests := []struct {
		name  string
		input []byte
	}{
		{"short", HuffmanEncode(nil, []byte("GET"))},
		{"medium", HuffmanEncode(nil, []byte("www.example.com"))},
		{"long", HuffmanEncode(nil, []byte("Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"))},
	}

	for _, tt := range tests {
		b.Run(tt.name, func(b *testing.B) {
			b.ReportAllocs()
			b.SetBytes(int64(len(tt.input)))
			b.ResetTimer()

			for i := 0; i < b.N; i++ {
				_, _ = HuffmanDecode(tt.input)
			}
		})
	}
}
