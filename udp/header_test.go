package udp

import (
	"bytes"
	"testing"
)

func TestParseEmitRoundTrip(t *testing.T) {
	buf := []byte{
		0x1f, 0x90, 0x00, 0x35, // sport=8080 dport=53
		0x00, 0x0c, 0x00, 0x00, // ulen=12 sum=0
		'h', 'i', 'x', 'x', // 4 bytes payload
	}
	h, rest, err := Parse(buf)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(rest) != 4 {
		t.Fatalf("want 4 payload bytes, got %d", len(rest))
	}
	out := h.Emit(nil)
	if !bytes.Equal(out, buf[:HeaderSize]) {
		t.Fatalf("round trip mismatch\nwant %x\ngot  %x", buf[:HeaderSize], out)
	}
}

func TestParseShort(t *testing.T) {
	_, _, err := Parse(make([]byte, 4))
	if err != ErrShort {
		t.Fatalf("want ErrShort, got %v", err)
	}
}

func TestParseBadUlen(t *testing.T) {
	buf := []byte{0, 0, 0, 0, 0xff, 0xff, 0, 0}
	_, _, err := Parse(buf)
	if err != ErrShort {
		t.Fatalf("want ErrShort, got %v", err)
	}
}
