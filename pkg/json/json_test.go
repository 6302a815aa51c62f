package json

import (
	"bytes"
	"testing"
)

type testPayload struct {
	ID    int      `json:"id"`
	Name  string   `json:"name"`
	Tags  []string `json:"tags,omitempty"`
	Price float64  `json:"price"`
}

func TestMarshalUnmarshal(t *testing.T) {
	in := testPayload{ID: 42, Name: "Widget", Tags: []string{"sale"}, Price: 9.99}

	data, err := Marshal(in)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	var out testPayload
	if err := Unmarshal(data, &out); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}

	if out.ID != in.ID || out.Name != in.Name || out.Price != in.Price || len(out.Tags) != 1 {
		t.Fatalf("roundtrip mismatch: got %+v, want %+v", out, in)
	}
}

func TestDecodeReader(t *testing.T) {
	var out map[string]interface{}
	if err := DecodeReader(bytes.NewReader([]byte(`{"ok": true}`)), &out); err != nil {
		t.Fatalf("decode failed: %v", err)
	}

	if out["ok"] != true {
		t.Fatalf("unexpected value: %v", out["ok"])
	}
}

func TestDecodeReader_Malformed(t *testing.T) {
	var out interface{}
	if err := DecodeReader(bytes.NewReader([]byte(`{"ok": `)), &out); err == nil {
		t.Fatal("expected error for truncated payload")
	}
}

// GetBuffer and PutBuffer delegate to the shared pool; a buffer written to
// and returned must come back empty on the next Get.
func TestBufferPoolReuse(t *testing.T) {
	buf := GetBuffer()
	buf.WriteString("stale contents")
	PutBuffer(buf)

	buf2 := GetBuffer()
	defer PutBuffer(buf2)

	if buf2.Len() != 0 {
		t.Fatalf("pooled buffer not reset: %q", buf2.String())
	}
}
