package ethernet

import (
	"testing"

	"github.com/soypat/pktdump/wire"
)

func TestParseEmitRoundTrip(t *testing.T) {
	h := Header{
		Dhost: [6]byte{1, 2, 3, 4, 5, 6},
		Shost: [6]byte{6, 5, 4, 3, 2, 1},
		Type:  uint16(wire.EtherTypeIPv4),
	}
	buf := h.Emit(nil)
	buf = append(buf, "payload"...)
	got, rest, err := Parse(buf)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if got != h {
		t.Fatalf("want %+v, got %+v", h, got)
	}
	if string(rest) != "payload" {
		t.Fatalf("want trailing payload, got %q", rest)
	}
	if got.Kind() != wire.KindIPv4 {
		t.Fatalf("want KindIPv4, got %v", got.Kind())
	}
}

func TestParseShort(t *testing.T) {
	_, _, err := Parse(make([]byte, HeaderSize-1))
	if err != ErrShort {
		t.Fatalf("want ErrShort, got %v", err)
	}
}

func TestBroadcast(t *testing.T) {
	h := Header{Dhost: BroadcastAddr()}
	if !h.IsBroadcast() {
		t.Fatalf("want IsBroadcast true")
	}
	h.Dhost[0] = 0
	if h.IsBroadcast() {
		t.Fatalf("want IsBroadcast false")
	}
}

func TestVLANTagParseEmitRoundTrip(t *testing.T) {
	tag := VLANTag{PCP: 5, CFI: 1, VID: 0x0abc, EtherType: uint16(wire.EtherTypeIPv6)}
	buf := tag.Emit(nil)
	got, rest, err := ParseVLANTag(buf)
	if err != nil {
		t.Fatalf("ParseVLANTag: %v", err)
	}
	if got != tag {
		t.Fatalf("want %+v, got %+v", tag, got)
	}
	if len(rest) != 0 {
		t.Fatalf("want no trailing bytes, got %d", len(rest))
	}
	if got.Kind() != wire.KindIPv6 {
		t.Fatalf("want KindIPv6, got %v", got.Kind())
	}
}

func TestVLANTagParseShort(t *testing.T) {
	_, _, err := ParseVLANTag(make([]byte, VLANTagSize-1))
	if err != ErrShortVLAN {
		t.Fatalf("want ErrShortVLAN, got %v", err)
	}
}
