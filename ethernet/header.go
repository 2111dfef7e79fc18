// Package ethernet implements the parse/emit codec for Ethernet II
// (IEEE 802.3) frame headers and 802.1Q VLAN tags, grounded on
// ethernet/frame.go and ethernet/definitions.go in the teacher library
// (github.com/soypat/lneto), adapted from lneto's zero-copy buffer-view
// Frame into the owned-struct Header shape spec §3/§9 call for.
package ethernet

import (
	"encoding/binary"
	"errors"

	"github.com/soypat/pktdump/wire"
)

// HeaderSize is the length in bytes of a non-VLAN Ethernet header.
const HeaderSize = 14

// ErrShort is returned by Parse when buf is too small to hold a full
// Ethernet header.
var ErrShort = errors.New("ethernet: short buffer")

// Header is the parsed form of an Ethernet II header, spec §3 "Ether".
type Header struct {
	Dhost [6]byte
	Shost [6]byte
	Type  uint16
}

// BroadcastAddr is the all-ones broadcast hardware address, named the
// same as ethernet.BroadcastAddr in the teacher library.
func BroadcastAddr() [6]byte { return [6]byte{0xff, 0xff, 0xff, 0xff, 0xff, 0xff} }

// IsBroadcast reports whether Dhost is the broadcast address.
func (h *Header) IsBroadcast() bool { return h.Dhost == BroadcastAddr() }

// Parse decodes an Ethernet header from the front of buf, returning the
// header and the unconsumed suffix. It never inspects VLAN/MPLS tags;
// the dispatcher in package pktdump is responsible for recursing into
// EtherType 0x8100/0x8847/0x8848 via the Ieee8021qTag/mpls codecs.
func Parse(buf []byte) (h Header, rest []byte, err error) {
	if len(buf) < HeaderSize {
		return Header{}, nil, ErrShort
	}
	copy(h.Dhost[:], buf[0:6])
	copy(h.Shost[:], buf[6:12])
	h.Type = binary.BigEndian.Uint16(buf[12:14])
	return h, buf[HeaderSize:], nil
}

// Emit appends the wire form of h to dst and returns the extended
// slice. Emit is total: it never fails, matching spec §4.2's codec
// contract ("emit: K -> bytes, a total function").
func (h *Header) Emit(dst []byte) []byte {
	dst = append(dst, h.Dhost[:]...)
	dst = append(dst, h.Shost[:]...)
	var typ [2]byte
	binary.BigEndian.PutUint16(typ[:], h.Type)
	return append(dst, typ[:]...)
}

// Kind reports the EtherType's decoded LayerKind, delegating to
// wire.EtherTypeKind, for use by the dispatcher.
func (h *Header) Kind() wire.LayerKind { return wire.EtherTypeKind(wire.EtherType(h.Type)) }

// VLANTagSize is the length in bytes of an 802.1Q VLAN tag, not
// including the EtherType field carried before it.
const VLANTagSize = 4

// ErrShortVLAN is returned by ParseVLANTag when buf is too small to hold
// a VLAN tag plus its inner EtherType.
var ErrShortVLAN = errors.New("ethernet: short VLAN tag")

// VLANTag is the parsed form of an 802.1Q tag, spec §3 "Ieee8021qTag".
// PCP/CFI/VID occupy the first 16 bits on the wire; EtherType is the
// following 16-bit field naming the encapsulated protocol.
type VLANTag struct {
	PCP       uint8  // 3 bits
	CFI       uint8  // 1 bit (a.k.a. DEI)
	VID       uint16 // 12 bits
	EtherType uint16
}

// ParseVLANTag decodes a VLAN tag (TCI + inner EtherType) from the
// front of buf.
func ParseVLANTag(buf []byte) (tag VLANTag, rest []byte, err error) {
	if len(buf) < VLANTagSize {
		return VLANTag{}, nil, ErrShortVLAN
	}
	tci := binary.BigEndian.Uint16(buf[0:2])
	tag.PCP = uint8(tci >> 13)
	tag.CFI = uint8((tci >> 12) & 1)
	tag.VID = tci & 0x0FFF
	tag.EtherType = binary.BigEndian.Uint16(buf[2:4])
	return tag, buf[VLANTagSize:], nil
}

// Emit appends the wire form of tag to dst.
func (tag *VLANTag) Emit(dst []byte) []byte {
	tci := uint16(tag.PCP&0b111)<<13 | uint16(tag.CFI&1)<<12 | tag.VID&0x0FFF
	var buf [4]byte
	binary.BigEndian.PutUint16(buf[0:2], tci)
	binary.BigEndian.PutUint16(buf[2:4], tag.EtherType)
	return append(dst, buf[:]...)
}

// Kind reports the inner EtherType's decoded LayerKind.
func (tag *VLANTag) Kind() wire.LayerKind { return wire.EtherTypeKind(wire.EtherType(tag.EtherType)) }
