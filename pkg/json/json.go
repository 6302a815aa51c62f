// Package json provides high-performance JSON serialization with buffer pooling
package json

import (
	"bytes"
	"io"

	gojson "github.com/goccy/go-json"

	"github.com/ajitpratap0/comet/pkg/pool"
)

// GetBuffer gets an empty buffer from the shared pool
func GetBuffer() *bytes.Buffer {
	return pool.GlobalBufferPool.Get()
}

// PutBuffer returns a buffer to the shared pool
func PutBuffer(buf *bytes.Buffer) {
	pool.GlobalBufferPool.Put(buf)
}

// Marshal is a high-performance drop-in replacement for json.Marshal
func Marshal(v interface{}) ([]byte, error) {
	return gojson.Marshal(v)
}

// Unmarshal is a high-performance drop-in replacement for json.Unmarshal
func Unmarshal(data []byte, v interface{}) error {
	return gojson.Unmarshal(data, v)
}

// MarshalIndent is a high-performance replacement for json.MarshalIndent
func MarshalIndent(v interface{}, prefix, indent string) ([]byte, error) {
	return gojson.MarshalIndent(v, prefix, indent)
}

// DecodeReader decodes a single JSON value from r into v.
func DecodeReader(r io.Reader, v interface{}) error {
	return gojson.NewDecoder(r).Decode(v)
}
