package hpack

import "bytes"

func hf(name, value string) HeaderField {
	return HeaderField{Name: []byte(name), Value: []byte(value)}
}

func eqHeaderField(a HeaderField, name, value string) bool {
	return bytes.Equal(a.Name, []byte(name)) && bytes.Equal(a.Value, []byte(value))
}
