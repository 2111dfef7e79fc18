// Package udp implements the parse/emit codec for the UDP header (RFC
// 768), grounded on the field accessors of udp/frame.go in the teacher
// library (github.com/soypat/lneto/udp), adapted from its zero-copy
// Frame view into the owned-struct Header shape spec §3/§9 call for.
package udp

import (
	"encoding/binary"
	"errors"

	"github.com/soypat/pktdump/checksum"
	"github.com/soypat/pktdump/wire"
)

// HeaderSize is the length in bytes of a UDP header.
const HeaderSize = 8

// ErrShort is returned by Parse when buf is smaller than HeaderSize, or
// when Ulen claims fewer bytes than HeaderSize or more than remain.
var ErrShort = errors.New("udp: short buffer")

// Header is the parsed form of a UDP header, spec §3 "Udp".
type Header struct {
	Sport Port
	Dport Port
	Ulen  uint16 // length of header plus payload, minimum HeaderSize
	Sum   uint16
}

// Port is a UDP port number.
type Port uint16

// Parse decodes a UDP header from the front of buf.
func Parse(buf []byte) (h Header, rest []byte, err error) {
	if len(buf) < HeaderSize {
		return Header{}, nil, ErrShort
	}
	h.Sport = Port(binary.BigEndian.Uint16(buf[0:2]))
	h.Dport = Port(binary.BigEndian.Uint16(buf[2:4]))
	h.Ulen = binary.BigEndian.Uint16(buf[4:6])
	h.Sum = binary.BigEndian.Uint16(buf[6:8])
	if h.Ulen < HeaderSize || int(h.Ulen) > len(buf) {
		return Header{}, nil, ErrShort
	}
	return h, buf[HeaderSize:h.Ulen], nil
}

// Emit appends the wire form of h to dst.
func (h *Header) Emit(dst []byte) []byte {
	var fixed [HeaderSize]byte
	binary.BigEndian.PutUint16(fixed[0:2], uint16(h.Sport))
	binary.BigEndian.PutUint16(fixed[2:4], uint16(h.Dport))
	binary.BigEndian.PutUint16(fixed[4:6], h.Ulen)
	binary.BigEndian.PutUint16(fixed[6:8], h.Sum)
	return append(dst, fixed[:]...)
}

// Checksum returns the RFC 1071 checksum of h plus payload accumulated
// atop a pseudo-header acc, spec §4.4's "checksum(Ip, Udp, payload)".
// acc must already hold the enclosing IP pseudo-header contribution.
func (h *Header) Checksum(acc checksum.Accumulator, payload []byte) uint16 {
	clone := *h
	clone.Sum = 0
	buf := clone.Emit(nil)
	acc.Write(buf)
	acc.Write(payload)
	return acc.Sum16()
}

// Kind reports the terminal layer kind for a UDP header, spec §4.1's
// "udp ... are terminal".
func (h *Header) Kind() wire.LayerKind { return wire.KindStop }
