package gre

import (
	"testing"

	"github.com/soypat/pktdump/wire"
)

func TestParseEmitRoundTripNoChecksum(t *testing.T) {
	h := Header{Ver: 0, Type: uint16(wire.EtherTypeIPv4)}
	buf := h.Emit(nil)
	if len(buf) != HeaderSize {
		t.Fatalf("want %d bytes, got %d", HeaderSize, len(buf))
	}
	buf = append(buf, "payload"...)
	got, rest, err := Parse(buf)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if got.C || got.Chksum != nil || got.Res1 != nil {
		t.Fatalf("want no checksum fields, got %+v", got)
	}
	if string(rest) != "payload" {
		t.Fatalf("want trailing payload, got %q", rest)
	}
	if got.Kind() != wire.KindIPv4 {
		t.Fatalf("want KindIPv4, got %v", got.Kind())
	}
}

func TestParseEmitRoundTripWithChecksum(t *testing.T) {
	cs, r1 := uint16(0x1234), uint16(0)
	h := Header{C: true, Type: uint16(wire.EtherTypeIPv4), Chksum: &cs, Res1: &r1}
	buf := h.Emit(nil)
	if len(buf) != HeaderSize+4 {
		t.Fatalf("want %d bytes, got %d", HeaderSize+4, len(buf))
	}
	got, _, err := Parse(buf)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if !got.C || got.Chksum == nil || *got.Chksum != cs {
		t.Fatalf("want checksum %#x, got %+v", cs, got)
	}
}

func TestParseShort(t *testing.T) {
	_, _, err := Parse([]byte{0x80, 0, 0x08, 0})
	if err != ErrShort {
		t.Fatalf("want ErrShort for truncated checksum words, got %v", err)
	}
}
