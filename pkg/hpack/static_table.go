package hpack

import "crypto/subtle"

// StaticTableSize is the number of entries in the HPACK static table
// (RFC 7541 Appendix A). Index 0 is unused; valid indices are 1-61.
const StaticTableSize = 61

type staticEntry struct {
	name  []byte
	value []byte
}

// staticTable holds the 61 predefined header fields. These entries never
// change and are never evicted.
var staticTable = [StaticTableSize + 1]staticEntry{
	{},
	{[]byte(":authority"), nil},
	{[]byte(":method"), []byte("GET")},
	{[]byte(":method"), []byte("POST")},
	{[]byte(":path"), []byte("/")},
	{[]byte(":path"), []byte("/index.html")},
	{[]byte(":scheme"), []byte("http")},
	{[]byte(":scheme"), []byte("https")},
	{[]byte(":status"), []byte("200")},
	{[]byte(":status"), []byte("204")},
	{[]byte(":status"), []byte("206")},
	{[]byte(":status"), []byte("304")},
	{[]byte(":status"), []byte("400")},
	{[]byte(":status"), []byte("404")},
	{[]byte(":status"), []byte("500")},
	{[]byte("accept-charset"), nil},
	{[]byte("accept-encoding"), []byte("gzip, deflate")},
	{[]byte("accept-language"), nil},
	{[]byte("accept-ranges"), nil},
	{[]byte("accept"), nil},
	{[]byte("access-control-allow-origin"), nil},
	{[]byte("age"), nil},
	{[]byte("allow"), nil},
	{[]byte("authorization"), nil},
	{[]byte("cache-control"), nil},
	{[]byte("content-disposition"), nil},
	{[]byte("content-encoding"), nil},
	{[]byte("content-language"), nil},
	{[]byte("content-length"), nil},
	{[]byte("content-location"), nil},
	{[]byte("content-range"), nil},
	{[]byte("content-type"), nil},
	{[]byte("cookie"), nil},
	{[]byte("date"), nil},
	{[]byte("etag"), nil},
	{[]byte("expect"), nil},
	{[]byte("expires"), nil},
	{[]byte("from"), nil},
	{[]byte("host"), nil},
	{[]byte("if-match"), nil},
	{[]byte("if-modified-since"), nil},
	{[]byte("if-none-match"), nil},
	{[]byte("if-range"), nil},
	{[]byte("if-unmodified-since"), nil},
	{[]byte("last-modified"), nil},
	{[]byte("link"), nil},
	{[]byte("location"), nil},
	{[]byte("max-forwards"), nil},
	{[]byte("proxy-authenticate"), nil},
	{[]byte("proxy-authorization"), nil},
	{[]byte("range"), nil},
	{[]byte("referer"), nil},
	{[]byte("refresh"), nil},
	{[]byte("retry-after"), nil},
	{[]byte("server"), nil},
	{[]byte("set-cookie"), nil},
	{[]byte("strict-transport-security"), nil},
	{[]byte("transfer-encoding"), nil},
	{[]byte("user-agent"), nil},
	{[]byte("vary"), nil},
	{[]byte("via"), nil},
	{[]byte("www-authenticate"), nil},
}

// staticNameIndex maps a header name to the first static table index
// carrying that name.
var staticNameIndex map[string]int

func init() {
	staticNameIndex = make(map[string]int, StaticTableSize)

	for i := 1; i <= StaticTableSize; i++ {
		e := staticTable[i]
		if _, ok := staticNameIndex[string(e.name)]; !ok {
			staticNameIndex[string(e.name)] = i
		}
	}
}

// staticGet returns the static table entry at the given 1-based index.
func staticGet(index int) (HeaderField, bool) {
	if index < 1 || index > StaticTableSize {
		return HeaderField{}, false
	}
	e := staticTable[index]
	return HeaderField{Name: e.name, Value: e.value}, true
}

// staticFind searches the static table for name (and value, if an exact
// match exists). staticNameIndex locates the start of name's run cheaply
// (the static table's own contents are fixed, not caller-controlled, so
// using them as a map key leaks nothing); every comparison against the
// caller-supplied name and value bytes themselves, though, goes through
// constantTimeEqual, since this lookup sits directly on the Encoder's hot
// path for every header field, including ones carrying secrets such as an
// Authorization value (spec.md §5).
func staticFind(name, value []byte) (index int, exactMatch bool) {
	idx, ok := staticNameIndex[bytesToString(name)]
	if !ok {
		return 0, false
	}
	// Equal names occur in a contiguous run (RFC 7541 Appendix A); scan
	// forward from the first one.
	for i := idx; i <= StaticTableSize && constantTimeEqual(staticTable[i].name, name); i++ {
		if constantTimeEqual(staticTable[i].value, value) {
			return i, true
		}
	}
	return idx, false
}

// constantTimeEqual reports whether a and b are byte-for-byte equal,
// without leaking timing information about where they first differ. Used
// when comparing against a sensitive (never-indexed) header's value.
func constantTimeEqual(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	return subtle.ConstantTimeCompare(a, b) == 1
}
