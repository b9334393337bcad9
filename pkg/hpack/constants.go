package hpack

// DefaultHeaderTableSize is the dynamic table capacity both peers of an
// HTTP/2 connection assume before any SETTINGS frame or Dynamic Table
// Size Update changes it (RFC 7541 Section 6.3 / RFC 7540 Section 6.5.2).
const DefaultHeaderTableSize = 4096
