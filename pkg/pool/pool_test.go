package pool

import "testing"

func TestBufferPool_GetReturnsEmpty(t *testing.T) {
	p := NewBufferPool(64, 1024)

	buf := p.Get()
	if buf.Len() != 0 {
		t.Fatalf("expected empty buffer, got %d bytes", buf.Len())
	}

	buf.WriteString("stale contents")
	p.Put(buf)

	buf2 := p.Get()
	if buf2.Len() != 0 {
		t.Fatalf("pooled buffer not reset: %q", buf2.String())
	}
	p.Put(buf2)
}

func TestBufferPool_OversizedNotPooled(t *testing.T) {
	p := NewBufferPool(64, 1024)

	buf := p.Get()
	buf.Write(make([]byte, 4096))
	// Grown past maxPooledCap; Put must drop the buffer without panicking.
	p.Put(buf)
}

func TestPool_ResetCalledOnPut(t *testing.T) {
	type item struct{ n int }

	resets := 0
	p := New(
		func() *item { return &item{} },
		func(i *item) {
			i.n = 0
			resets++
		},
	)

	it := p.Get()
	it.n = 7
	p.Put(it)

	if resets != 1 {
		t.Fatalf("expected 1 reset, got %d", resets)
	}
}
