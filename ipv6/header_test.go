package ipv6

import (
	"testing"

	"github.com/soypat/pktdump/wire"
)

func TestParseEmitRoundTrip(t *testing.T) {
	h := Header{
		Class: 0x2e,
		Flow:  0x12345,
		Next:  wire.IPProtoUDP,
		Hop:   64,
	}
	h.SAddr[0], h.DAddr[0] = 1, 2
	payload := []byte("hello")
	h.Len = uint16(len(payload))
	buf := h.Emit(nil)
	buf = append(buf, payload...)

	got, rest, err := Parse(buf)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if got != h {
		t.Fatalf("want %+v, got %+v", h, got)
	}
	if string(rest) != "hello" {
		t.Fatalf("want trailing payload, got %q", rest)
	}
	if got.Kind() != wire.KindUDP {
		t.Fatalf("want KindUDP, got %v", got.Kind())
	}
}

func TestParseShort(t *testing.T) {
	_, _, err := Parse(make([]byte, HeaderSize-1))
	if err != ErrShort {
		t.Fatalf("want ErrShort, got %v", err)
	}
}

func TestParseShortPayloadLen(t *testing.T) {
	h := Header{Next: wire.IPProtoTCP, Len: 100}
	buf := h.Emit(nil) // Len claims 100 bytes of payload but none follow.
	_, _, err := Parse(buf)
	if err != ErrShort {
		t.Fatalf("want ErrShort, got %v", err)
	}
}
