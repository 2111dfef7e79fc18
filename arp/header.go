// Package arp implements the parse/emit codec for ARP (RFC 826),
// restricted to the IPv4-over-Ethernet shape (HLEN=6, PLEN=4, 28-byte
// frame) spec §3/§6 call for. Grounded on the field accessors in
// arp/frame.go in the teacher library (github.com/soypat/lneto/arp);
// the resolver/cache logic in the teacher's arp/handler.go is dropped
// (see DESIGN.md) since it performs address resolution, which is out of
// this module's scope (no routing).
package arp

import (
	"encoding/binary"
	"errors"

	"github.com/soypat/pktdump/wire"
)

// HeaderSize is the length in bytes of an IPv4-over-Ethernet ARP frame.
const HeaderSize = 28

// ErrShort is returned by Parse when buf is smaller than HeaderSize.
var ErrShort = errors.New("arp: short buffer")

// Header is the parsed form of an IPv4-over-Ethernet ARP frame, spec §3
// "Arp".
type Header struct {
	HRD uint16 // hardware type, 1 for Ethernet
	PRO uint16 // protocol type, an EtherType
	HLN uint8  // hardware address length, always 6
	PLN uint8  // protocol address length, always 4
	OP  wire.ARPOp
	SHA [6]byte // sender hardware address
	SIP [4]byte // sender protocol address
	THA [6]byte // target hardware address
	TIP [4]byte // target protocol address
}

// Parse decodes an ARP header from the front of buf. Per spec §3 this
// codec only handles the IPv4/Ethernet shape; HLN/PLN are still read
// from the wire rather than assumed, but Parse does not fail if they
// differ from 6/4 -- it simply reads 28 bytes starting at a fixed
// offset, matching the fixed-size assumption spec §6 documents ("ARP
// (RFC 826, IPv4/Ethernet only ... 28-byte frame)").
func Parse(buf []byte) (h Header, rest []byte, err error) {
	if len(buf) < HeaderSize {
		return Header{}, nil, ErrShort
	}
	h.HRD = binary.BigEndian.Uint16(buf[0:2])
	h.PRO = binary.BigEndian.Uint16(buf[2:4])
	h.HLN = buf[4]
	h.PLN = buf[5]
	h.OP = wire.ARPOp(binary.BigEndian.Uint16(buf[6:8]))
	copy(h.SHA[:], buf[8:14])
	copy(h.SIP[:], buf[14:18])
	copy(h.THA[:], buf[18:24])
	copy(h.TIP[:], buf[24:28])
	return h, buf[HeaderSize:], nil
}

// Emit appends the wire form of h to dst.
func (h *Header) Emit(dst []byte) []byte {
	var fixed [8]byte
	binary.BigEndian.PutUint16(fixed[0:2], h.HRD)
	binary.BigEndian.PutUint16(fixed[2:4], h.PRO)
	fixed[4] = h.HLN
	fixed[5] = h.PLN
	binary.BigEndian.PutUint16(fixed[6:8], uint16(h.OP))
	dst = append(dst, fixed[:]...)
	dst = append(dst, h.SHA[:]...)
	dst = append(dst, h.SIP[:]...)
	dst = append(dst, h.THA[:]...)
	dst = append(dst, h.TIP[:]...)
	return dst
}

// Kind reports the terminal layer kind for an ARP header, spec §4.1's
// "arp ... are terminal".
func (h *Header) Kind() wire.LayerKind { return wire.KindStop }
