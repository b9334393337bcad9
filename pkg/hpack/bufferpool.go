package hpack

import "github.com/valyala/bytebufferpool"

// outputPool backs the Encoder's per-call output buffer in Encode; the
// Huffman encoder allocates its own result slice. A dedicated pool (rather than a
// bare bytes.Buffer per call) matters here because an HTTP/2 connection
// encodes a header block on every request and response it sends.
var outputPool bytebufferpool.Pool

func getOutputBuffer() *bytebufferpool.ByteBuffer {
	return outputPool.Get()
}

func putOutputBuffer(b *bytebufferpool.ByteBuffer) {
	outputPool.Put(b)
}
