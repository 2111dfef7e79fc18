// Package gre implements the parse/emit codec for GRE (RFC 2784, with
// the optional checksum of RFC 2890). The teacher has no GRE code; this
// package is written from spec §3/§6's bit layout in the same style as
// ipv4.Header and ipv6.Header.
package gre

import (
	"encoding/binary"
	"errors"

	"github.com/soypat/pktdump/wire"
)

// HeaderSize is the length in bytes of a GRE header without the
// optional checksum/reserved1 words.
const HeaderSize = 4

// ErrShort is returned by Parse when buf is too small for the header
// (plus the checksum words, if the C bit is set).
var ErrShort = errors.New("gre: short buffer")

// Header is the parsed form of a GRE header, spec §3 "Gre". Chksum and
// Res1 are present (non-nil) iff C is true.
type Header struct {
	C      bool
	Ver    uint8 // 3 bits
	Type   uint16
	Chksum *uint16
	Res1   *uint16
}

// Parse decodes a GRE header from the front of buf.
func Parse(buf []byte) (h Header, rest []byte, err error) {
	if len(buf) < HeaderSize {
		return Header{}, nil, ErrShort
	}
	flagsVer := binary.BigEndian.Uint16(buf[0:2])
	h.C = flagsVer&0x8000 != 0
	h.Ver = uint8(flagsVer & 0x7)
	h.Type = binary.BigEndian.Uint16(buf[2:4])
	off := HeaderSize
	if h.C {
		if len(buf) < off+4 {
			return Header{}, nil, ErrShort
		}
		cs := binary.BigEndian.Uint16(buf[off : off+2])
		r1 := binary.BigEndian.Uint16(buf[off+2 : off+4])
		h.Chksum = &cs
		h.Res1 = &r1
		off += 4
	}
	return h, buf[off:], nil
}

// Emit appends the wire form of h to dst. Res0 (the 12 reserved bits
// between C and Ver) is always zero on emit.
func (h *Header) Emit(dst []byte) []byte {
	var fixed [HeaderSize]byte
	var flagsVer uint16 = uint16(h.Ver) & 0x7
	if h.C {
		flagsVer |= 0x8000
	}
	binary.BigEndian.PutUint16(fixed[0:2], flagsVer)
	binary.BigEndian.PutUint16(fixed[2:4], h.Type)
	dst = append(dst, fixed[:]...)
	if h.C {
		var cs, r1 uint16
		if h.Chksum != nil {
			cs = *h.Chksum
		}
		if h.Res1 != nil {
			r1 = *h.Res1
		}
		var tail [4]byte
		binary.BigEndian.PutUint16(tail[0:2], cs)
		binary.BigEndian.PutUint16(tail[2:4], r1)
		dst = append(dst, tail[:]...)
	}
	return dst
}

// Kind reports the inner EtherType's decoded LayerKind, per spec §4.1's
// "gre -> ether_type(hdr.type)" transition.
func (h *Header) Kind() wire.LayerKind { return wire.EtherTypeKind(wire.EtherType(h.Type)) }
