// Package ipv6 implements the parse/emit codec for the IPv6 fixed
// header (RFC 8200), grounded directly on ipv6/frame.go in the teacher
// library (github.com/soypat/lneto/ipv6), adapted from its zero-copy
// Frame view into the owned-struct Header shape spec §3/§9 call for.
// Extension headers are out of scope per spec §1's Non-goals.
package ipv6

import (
	"encoding/binary"
	"errors"

	"github.com/soypat/pktdump/checksum"
	"github.com/soypat/pktdump/wire"
)

// HeaderSize is the length in bytes of the IPv6 fixed header.
const HeaderSize = 40

// ErrShort is returned by Parse when buf is smaller than HeaderSize, or
// when PayloadLength claims more bytes than remain after the header.
var ErrShort = errors.New("ipv6: short buffer")

// Header is the parsed form of the IPv6 fixed header, spec §3 "Ipv6".
type Header struct {
	Class uint8
	Flow  uint32 // 20 bits
	Len   uint16 // payload length, not including this header
	Next  wire.IPProto
	Hop   uint8
	SAddr [16]byte
	DAddr [16]byte
}

// Parse decodes an IPv6 fixed header from the front of buf.
func Parse(buf []byte) (h Header, rest []byte, err error) {
	if len(buf) < HeaderSize {
		return Header{}, nil, ErrShort
	}
	v := binary.BigEndian.Uint32(buf[0:4])
	if v>>28 != 6 {
		// Not a hard failure per spec §4.2 (only length preconditions
		// produce Truncated); callers that care can inspect the field.
	}
	h.Class = uint8(v >> 20)
	h.Flow = v & 0x000fffff
	h.Len = binary.BigEndian.Uint16(buf[4:6])
	h.Next = wire.IPProto(buf[6])
	h.Hop = buf[7]
	copy(h.SAddr[:], buf[8:24])
	copy(h.DAddr[:], buf[24:40])
	if int(h.Len)+HeaderSize > len(buf) {
		return Header{}, nil, ErrShort
	}
	return h, buf[HeaderSize : HeaderSize+int(h.Len)], nil
}

// Emit appends the wire form of h to dst.
func (h *Header) Emit(dst []byte) []byte {
	var fixed [HeaderSize]byte
	v := uint32(6)<<28 | uint32(h.Class)<<20 | h.Flow&0x000fffff
	binary.BigEndian.PutUint32(fixed[0:4], v)
	binary.BigEndian.PutUint16(fixed[4:6], h.Len)
	fixed[6] = uint8(h.Next)
	fixed[7] = h.Hop
	copy(fixed[8:24], h.SAddr[:])
	copy(fixed[24:40], h.DAddr[:])
	return append(dst, fixed[:]...)
}

// PseudoHeader accumulates the TCP/UDP/ICMPv6-over-IPv6 pseudo header
// (source and destination address, upper-layer length, next header)
// into acc, spec §4.4's IPv6 pseudo-header forms.
func (h *Header) PseudoHeader(acc *checksum.Accumulator, upperLayerLen uint32) {
	checksum.IPv6PseudoHeader(acc, h.SAddr, h.DAddr, uint8(h.Next), upperLayerLen)
}

// Kind reports the Next field's decoded LayerKind, delegating to
// wire.ProtoKind, for use by the dispatcher.
func (h *Header) Kind() wire.LayerKind { return wire.ProtoKind(h.Next) }
