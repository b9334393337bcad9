package hpack

import "testing"

func TestCollectingSinkAccumulates(t *testing.T) {
	s := &CollectingSink{}
	s.OnHeaderField([]byte("a"), []byte("1"), false)
	s.OnHeaderField([]byte("b"), []byte("2"), true)

	if len(s.Headers) != 2 {
		t.Fatalf("got %d headers, want 2", len(s.Headers))
	}
	if !eqHeaderField(s.Headers[0], "a", "1") || s.Headers[0].Sensitive {
		t.Errorf("header 0 = %+v", s.Headers[0])
	}
	if !eqHeaderField(s.Headers[1], "b", "2") || !s.Headers[1].Sensitive {
		t.Errorf("header 1 = %+v", s.Headers[1])
	}
}

func TestCollectingSinkDoesNotAliasCallerBuffers(t *testing.T) {
	s := &CollectingSink{}
	name := []byte("a")
	s.OnHeaderField(name, []byte("1"), false)
	name[0] = 'X'

	if !eqHeaderField(s.Headers[0], "a", "1") {
		t.Errorf("sink aliased the caller's name buffer: got %+v", s.Headers[0])
	}
}

func TestHeaderSinkFunc(t *testing.T) {
	var got HeaderField
	var sink HeaderSink = HeaderSinkFunc(func(name, value []byte, sensitive bool) {
		got = HeaderField{Name: name, Value: value, Sensitive: sensitive}
	})

	sink.OnHeaderField([]byte("x"), []byte("y"), true)
	if !eqHeaderField(got, "x", "y") || !got.Sensitive {
		t.Errorf("got %+v", got)
	}
}
