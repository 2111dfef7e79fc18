// Package mpls implements the parse/emit codec for an MPLS label stack
// (RFC 3032). The teacher library has no MPLS code; this package is
// written from spec §3/§4.2's bit layout in the same big-endian,
// fixed-width-field style as ethernet.Header and ipv4.Header.
package mpls

import (
	"encoding/binary"
	"errors"

	"github.com/soypat/pktdump/wire"
)

// EntrySize is the length in bytes of one MPLS label stack entry.
const EntrySize = 4

// ErrShort is returned by Parse when buf runs out before a
// bottom-of-stack entry is found.
var ErrShort = errors.New("mpls: short buffer or missing bottom-of-stack entry")

// Mode distinguishes the two EtherTypes that can introduce an MPLS
// label stack; it is carried from the outer tag, not from the label
// stack itself (spec §3: "the mode is not encoded in-band").
type Mode uint8

const (
	Unicast Mode = iota
	Multicast
)

// Entry is one 32-bit MPLS label stack entry. The bottom-of-stack bit is
// not stored here: spec §3 reconstructs it on Emit from an entry's
// position in Header.Stack.
type Entry struct {
	Label uint32 // 20 bits
	QoS   uint8  // 1 bit (a.k.a. "Exp" bit 0)
	Pri   uint8  // 1 bit (a.k.a. "Exp" bit 1)
	ECN   uint8  // 1 bit (a.k.a. "Exp" bit 2, ECN-capable)
	TTL   uint8
}

// Header is a parsed MPLS label stack plus the EtherType of the header
// that follows it, spec §3 "MplsTag".
type Header struct {
	Mode      Mode
	Stack     []Entry
	EtherType uint16
}

func parseEntry(word uint32) Entry {
	return Entry{
		Label: word >> 12,
		QoS:   uint8((word >> 11) & 1),
		Pri:   uint8((word >> 10) & 1),
		ECN:   uint8((word >> 9) & 1),
		TTL:   uint8(word),
	}
}

func emitEntry(e Entry, bottom bool) uint32 {
	var s uint32
	if bottom {
		s = 1
	}
	return e.Label<<12 | uint32(e.QoS&1)<<11 | uint32(e.Pri&1)<<10 | uint32(e.ECN&1)<<9 | s<<8 | uint32(e.TTL)
}

// Parse decodes a label stack by repeatedly consuming 4-byte entries
// until the entry whose bottom-of-stack bit is 1, then the following
// 2 bytes as the inner EtherType, per spec §4.2. mode is carried in
// from the outer ether_type tag (0x8847 -> Unicast, 0x8848 -> Multicast)
// since it is not present on the wire at this layer.
func Parse(mode Mode, buf []byte) (h Header, rest []byte, err error) {
	off := 0
	for {
		if len(buf) < off+EntrySize {
			return Header{}, nil, ErrShort
		}
		word := binary.BigEndian.Uint32(buf[off : off+EntrySize])
		h.Stack = append(h.Stack, parseEntry(word))
		off += EntrySize
		if word&0x100 != 0 { // bottom-of-stack bit
			break
		}
	}
	if len(buf) < off+2 {
		return Header{}, nil, ErrShort
	}
	h.Mode = mode
	h.EtherType = binary.BigEndian.Uint16(buf[off : off+2])
	return h, buf[off+2:], nil
}

// Emit appends the wire form of h to dst. The bottom-of-stack bit is set
// only on the last entry of h.Stack regardless of what was parsed, per
// spec §4.2 ("On emit, the bottom bit is set only on the final entry").
func (h *Header) Emit(dst []byte) []byte {
	for i, e := range h.Stack {
		var buf [4]byte
		binary.BigEndian.PutUint32(buf[:], emitEntry(e, i == len(h.Stack)-1))
		dst = append(dst, buf[:]...)
	}
	var et [2]byte
	binary.BigEndian.PutUint16(et[:], h.EtherType)
	return append(dst, et[:]...)
}

// Kind reports the inner EtherType's decoded LayerKind.
func (h *Header) Kind() wire.LayerKind { return wire.EtherTypeKind(wire.EtherType(h.EtherType)) }
