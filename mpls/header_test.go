package mpls

import (
	"testing"

	"github.com/soypat/pktdump/wire"
)

func TestParseEmitRoundTripSingleEntry(t *testing.T) {
	h := Header{Mode: Unicast, Stack: []Entry{{Label: 100, QoS: 1, TTL: 64}}, EtherType: uint16(wire.EtherTypeIPv4)}
	buf := h.Emit(nil)
	if len(buf) != EntrySize+2 {
		t.Fatalf("want %d bytes, got %d", EntrySize+2, len(buf))
	}
	buf = append(buf, "payload"...)
	got, rest, err := Parse(Unicast, buf)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(got.Stack) != 1 || got.Stack[0].Label != 100 || got.Stack[0].TTL != 64 {
		t.Fatalf("want single entry label=100 ttl=64, got %+v", got.Stack)
	}
	if got.EtherType != h.EtherType {
		t.Fatalf("want EtherType %#x, got %#x", h.EtherType, got.EtherType)
	}
	if string(rest) != "payload" {
		t.Fatalf("want trailing payload, got %q", rest)
	}
	if got.Kind() != wire.KindIPv4 {
		t.Fatalf("want KindIPv4, got %v", got.Kind())
	}
}

func TestParseEmitRoundTripMultiEntryStack(t *testing.T) {
	h := Header{Mode: Multicast, Stack: []Entry{
		{Label: 100, TTL: 64},
		{Label: 200, TTL: 63},
		{Label: 300, TTL: 62},
	}, EtherType: uint16(wire.EtherTypeIPv6)}
	buf := h.Emit(nil)
	got, _, err := Parse(Multicast, buf)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(got.Stack) != 3 {
		t.Fatalf("want 3 entries, got %d", len(got.Stack))
	}
	for i, e := range got.Stack {
		if e.Label != h.Stack[i].Label || e.TTL != h.Stack[i].TTL {
			t.Fatalf("entry %d mismatch: want %+v, got %+v", i, h.Stack[i], e)
		}
	}
}

func TestBottomOfStackBitOnlyOnLastEntry(t *testing.T) {
	h := Header{Stack: []Entry{{Label: 1}, {Label: 2}}, EtherType: 0}
	buf := h.Emit(nil)
	first := buf[0:4]
	second := buf[4:8]
	if first[2]&1 != 0 {
		t.Fatalf("want bottom-of-stack bit clear on first entry, got %08b", first[2])
	}
	if second[2]&1 == 0 {
		t.Fatalf("want bottom-of-stack bit set on last entry, got %08b", second[2])
	}
}

func TestParseShort(t *testing.T) {
	_, _, err := Parse(Unicast, []byte{0, 0, 0})
	if err != ErrShort {
		t.Fatalf("want ErrShort, got %v", err)
	}
}
