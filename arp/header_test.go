package arp

import (
	"testing"

	"github.com/soypat/pktdump/wire"
)

func TestParseEmitRoundTrip(t *testing.T) {
	h := Header{
		HRD: 1,
		PRO: uint16(wire.EtherTypeIPv4),
		HLN: 6,
		PLN: 4,
		OP:  wire.ARPRequest,
		SHA: [6]byte{1, 2, 3, 4, 5, 6},
		SIP: [4]byte{192, 168, 1, 1},
		TIP: [4]byte{192, 168, 1, 2},
	}
	buf := h.Emit(nil)
	if len(buf) != HeaderSize {
		t.Fatalf("want %d bytes, got %d", HeaderSize, len(buf))
	}
	got, rest, err := Parse(buf)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if got != h {
		t.Fatalf("want %+v, got %+v", h, got)
	}
	if len(rest) != 0 {
		t.Fatalf("want no trailing bytes, got %d", len(rest))
	}
	if got.Kind() != wire.KindStop {
		t.Fatalf("want KindStop, got %v", got.Kind())
	}
}

func TestParseShort(t *testing.T) {
	_, _, err := Parse(make([]byte, HeaderSize-1))
	if err != ErrShort {
		t.Fatalf("want ErrShort, got %v", err)
	}
}
