// Package icmpv6 implements the parse/emit codec for the ICMPv6 fixed
// prologue (RFC 4443). The teacher library has no ICMPv6 code; this
// package is written from spec §3's minimal field list in the same
// style as the other header codecs in this module. The message body is
// left in the payload byte stream, per spec §3 "Icmpv6".
package icmpv6

import (
	"encoding/binary"
	"errors"

	"github.com/soypat/pktdump/checksum"
	"github.com/soypat/pktdump/wire"
)

// HeaderSize is the length in bytes of the ICMPv6 fixed prologue.
const HeaderSize = 4

// ErrShort is returned by Parse when buf is smaller than HeaderSize.
var ErrShort = errors.New("icmpv6: short buffer")

// Header is the parsed form of an ICMPv6 message's fixed prologue,
// spec §3 "Icmpv6" (the spec's "checksum" field is named Sum here to
// keep its checksum-computing method name free, matching tcp.Header.Sum
// and udp.Header.Sum). The body after the prologue is returned as rest
// by Parse and is not further interpreted by this package.
type Header struct {
	Type uint8
	Code uint8
	Sum  uint16
}

// Parse decodes an ICMPv6 prologue from the front of buf.
func Parse(buf []byte) (h Header, rest []byte, err error) {
	if len(buf) < HeaderSize {
		return Header{}, nil, ErrShort
	}
	h.Type = buf[0]
	h.Code = buf[1]
	h.Sum = binary.BigEndian.Uint16(buf[2:4])
	return h, buf[HeaderSize:], nil
}

// Emit appends the wire form of h to dst.
func (h *Header) Emit(dst []byte) []byte {
	var fixed [HeaderSize]byte
	fixed[0] = h.Type
	fixed[1] = h.Code
	binary.BigEndian.PutUint16(fixed[2:4], h.Sum)
	return append(dst, fixed[:]...)
}

// Checksum returns the RFC 1071 checksum of h plus body accumulated
// atop a pseudo-header acc, spec §4.4's "IPv6/ICMPv6" pseudo-header
// form. acc must already hold the enclosing IPv6 pseudo-header
// contribution.
func (h *Header) Checksum(acc checksum.Accumulator, body []byte) uint16 {
	clone := *h
	clone.Sum = 0
	buf := clone.Emit(nil)
	acc.Write(buf)
	acc.Write(body)
	return acc.Sum16()
}

// Kind reports the terminal layer kind for an ICMPv6 message, spec
// §4.1's "icmpv6 ... are terminal".
func (h *Header) Kind() wire.LayerKind { return wire.KindStop }
