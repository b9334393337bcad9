package hpack

// HeaderSink receives header fields as the Decoder emits them, in exactly
// the order their representations appeared on the wire. A sink must
// tolerate being handed the same logical header more than once across
// reuses of a Decoder.
type HeaderSink interface {
	OnHeaderField(name, value []byte, sensitive bool)
}

// HeaderSinkFunc adapts a function to a HeaderSink.
type HeaderSinkFunc func(name, value []byte, sensitive bool)

func (f HeaderSinkFunc) OnHeaderField(name, value []byte, sensitive bool) {
	f(name, value, sensitive)
}

// CollectingSink accumulates every emitted header into a slice, the
// common case for callers that want a whole decoded list at once rather
// than a streaming callback.
type CollectingSink struct {
	Headers []HeaderField
}

func (s *CollectingSink) OnHeaderField(name, value []byte, sensitive bool) {
	s.Headers = append(s.Headers, HeaderField{
		Name:      append([]byte(nil), name...),
		Value:     append([]byte(nil), value...),
		Sensitive: sensitive,
	})
}
