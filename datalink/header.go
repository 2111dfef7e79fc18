// Package datalink implements the parse/emit codecs for the two
// pcap-only link layers spec §3/§9 names: BSD loopback ("null") framing
// and Linux "cooked" capture (SLL) framing. The teacher library has no
// BSD/SLL code; this package is written from spec §3/§9's bit layout,
// including the one native-byte-order exception spec §9 calls out for
// Null.family.
package datalink

import (
	"encoding/binary"
	"errors"

	"github.com/soypat/pktdump/wire"
)

// NullHeaderSize is the length in bytes of a BSD loopback header.
const NullHeaderSize = 16 // pcap pads the 4-byte family field out to 16 bytes on most platforms.

// SLLHeaderSize is the length in bytes of a Linux "cooked" (SLL) header.
const SLLHeaderSize = 16

// ErrShort is returned by ParseNull and ParseSLL when buf is smaller than the fixed
// header size for the link type being decoded.
var ErrShort = errors.New("datalink: short buffer")

// NullHeader is the parsed form of a BSD loopback frame header, spec §3
// "Null". Family is read and written in the host's native byte order,
// the one exception to network byte order spec §9 documents.
type NullHeader struct {
	Family uint32
}

// ParseNull decodes a BSD loopback header from the front of buf. Family is
// read as a native-byte-order 32-bit word, per spec §9.
func ParseNull(buf []byte) (h NullHeader, rest []byte, err error) {
	if len(buf) < NullHeaderSize {
		return NullHeader{}, nil, ErrShort
	}
	h.Family = nativeEndian.Uint32(buf[0:4])
	return h, buf[NullHeaderSize:], nil
}

// Emit appends the wire form of h to dst, padded to NullHeaderSize.
func (h *NullHeader) Emit(dst []byte) []byte {
	var fixed [NullHeaderSize]byte
	nativeEndian.PutUint32(fixed[0:4], h.Family)
	return append(dst, fixed[:]...)
}

// Kind reports the next tag derived from the address family, per spec
// §4.1's "null -> family(hdr.family)".
func (h *NullHeader) Kind() wire.LayerKind { return wire.FamilyKind(wire.AddressFamily(h.Family)) }

// SLLHeader is the parsed form of a Linux "cooked" capture header, spec
// §3 "LinuxCooked". All fields, Pro included, are read and written
// big-endian; Pro carries an ether-type compared as a raw u16, per
// spec §4.2.
type SLLHeader struct {
	PacketType uint16
	ARPHRDType uint16
	LLLen      uint16
	LLBytes    [8]byte
	Pro        uint16
}

// ParseSLL decodes a Linux SLL header from the front of buf.
func ParseSLL(buf []byte) (h SLLHeader, rest []byte, err error) {
	if len(buf) < SLLHeaderSize {
		return SLLHeader{}, nil, ErrShort
	}
	h.PacketType = binary.BigEndian.Uint16(buf[0:2])
	h.ARPHRDType = binary.BigEndian.Uint16(buf[2:4])
	h.LLLen = binary.BigEndian.Uint16(buf[4:6])
	copy(h.LLBytes[:], buf[6:14])
	h.Pro = binary.BigEndian.Uint16(buf[14:16])
	return h, buf[SLLHeaderSize:], nil
}

// Emit appends the wire form of h to dst.
func (h *SLLHeader) Emit(dst []byte) []byte {
	var fixed [SLLHeaderSize]byte
	binary.BigEndian.PutUint16(fixed[0:2], h.PacketType)
	binary.BigEndian.PutUint16(fixed[2:4], h.ARPHRDType)
	binary.BigEndian.PutUint16(fixed[4:6], h.LLLen)
	copy(fixed[6:14], h.LLBytes[:])
	binary.BigEndian.PutUint16(fixed[14:16], h.Pro)
	return append(dst, fixed[:]...)
}

// Kind reports the next tag derived from the Pro ether-type field, per
// spec §4.1's "linux_cooked -> ether_type(hdr.type)".
func (h *SLLHeader) Kind() wire.LayerKind { return wire.EtherTypeKind(wire.EtherType(h.Pro)) }
