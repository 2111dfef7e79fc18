// Package ipv4 implements the parse/emit codec for IPv4 headers (RFC
// 791), grounded on ipv4/frame.go, ipv4/definitions.go and the
// IPv4Frame type in lneto/frames.go in the teacher library
// (github.com/soypat/lneto), adapted from lneto's zero-copy Frame view
// into the owned-struct Header shape spec §3/§9 call for.
package ipv4

import (
	"encoding/binary"
	"errors"

	"github.com/soypat/pktdump/checksum"
	"github.com/soypat/pktdump/wire"
)

// HeaderSize is the length in bytes of an IPv4 header without options.
const HeaderSize = 20

var (
	// ErrShort is returned by Parse when buf is smaller than HeaderSize.
	ErrShort = errors.New("ipv4: short buffer")
	// ErrBadIHL is returned by Parse when the IHL field is less than 5
	// (spec §3 invariant "hl >= 5") or Emit when the IHL implied by
	// len(Opt) would not fit in 4 bits.
	ErrBadIHL = errors.New("ipv4: IHL must be >= 5 and <= 15")
	// ErrShortTotalLen is returned by Parse when the Len field claims
	// more bytes than remain in buf.
	ErrShortTotalLen = errors.New("ipv4: total length exceeds buffer")
)

// ToS is the Type of Service / DiffServ+ECN byte.
type ToS uint8

// DSCP returns the top 6 bits, the Differentiated Services Code Point.
func (t ToS) DSCP() uint8 { return uint8(t) >> 2 }

// ECN returns the bottom 2 bits, Explicit Congestion Notification.
func (t ToS) ECN() uint8 { return uint8(t) & 0b11 }

// Header is the parsed form of an IPv4 header, spec §3 "Ipv4". Opt
// holds the opaque options bytes; len(Opt) always equals (IHL-5)*4 for
// a value produced by Parse, spec §3's invariant.
type Header struct {
	IHL    uint8 // header length in 32-bit words, >= 5
	ToS    ToS
	Len    uint16
	ID     uint16
	DF     bool
	MF     bool
	Off    uint16 // fragment offset, 13 bits
	TTL    uint8
	Proto  wire.IPProto
	Sum    uint16
	SAddr  [4]byte
	DAddr  [4]byte
	Opt    []byte
}

// Parse decodes an IPv4 header (fixed part plus options) from the front
// of buf. Options are captured verbatim and neither parsed nor
// validated, per spec §4.2.
func Parse(buf []byte) (h Header, rest []byte, err error) {
	if len(buf) < HeaderSize {
		return Header{}, nil, ErrShort
	}
	ihl := buf[0] & 0x0f
	if ihl < 5 {
		return Header{}, nil, ErrBadIHL
	}
	hlen := int(ihl) * 4
	if len(buf) < hlen {
		return Header{}, nil, ErrShort
	}
	h.IHL = ihl
	h.ToS = ToS(buf[1])
	h.Len = binary.BigEndian.Uint16(buf[2:4])
	h.ID = binary.BigEndian.Uint16(buf[4:6])
	flagsOff := binary.BigEndian.Uint16(buf[6:8])
	h.DF = flagsOff&0x4000 != 0
	h.MF = flagsOff&0x2000 != 0
	h.Off = flagsOff & 0x1fff
	h.TTL = buf[8]
	h.Proto = wire.IPProto(buf[9])
	h.Sum = binary.BigEndian.Uint16(buf[10:12])
	copy(h.SAddr[:], buf[12:16])
	copy(h.DAddr[:], buf[16:20])
	if hlen > HeaderSize {
		h.Opt = append([]byte(nil), buf[HeaderSize:hlen]...)
	}
	if int(h.Len) > len(buf) || int(h.Len) < hlen {
		return Header{}, nil, ErrShortTotalLen
	}
	return h, buf[hlen:h.Len], nil
}

// ihl computes the IHL field implied by len(Opt), per spec §4.1's
// encapsulate rule "hl = 5 + ceil(bitlen(opt)/32)".
func (h *Header) ihl() (uint8, error) {
	words := (len(h.Opt) + 3) / 4
	ihl := 5 + words
	if ihl > 15 {
		return 0, ErrBadIHL
	}
	return uint8(ihl), nil
}

// HeaderLen returns the total header length in bytes, options included.
func (h *Header) HeaderLen() int { return int(h.IHL) * 4 }

// Emit appends the wire form of h to dst. The IHL field is recomputed
// from len(Opt) rather than trusted from h.IHL, and the reserved
// DF-predecessor bit is always zero, per spec §3/§4.1.
func (h *Header) Emit(dst []byte) ([]byte, error) {
	ihl, err := h.ihl()
	if err != nil {
		return dst, err
	}
	var fixed [HeaderSize]byte
	fixed[0] = 4<<4 | ihl&0x0f
	fixed[1] = byte(h.ToS)
	binary.BigEndian.PutUint16(fixed[2:4], h.Len)
	binary.BigEndian.PutUint16(fixed[4:6], h.ID)
	var flagsOff uint16 = h.Off & 0x1fff
	if h.DF {
		flagsOff |= 0x4000
	}
	if h.MF {
		flagsOff |= 0x2000
	}
	binary.BigEndian.PutUint16(fixed[6:8], flagsOff)
	fixed[8] = h.TTL
	fixed[9] = uint8(h.Proto)
	binary.BigEndian.PutUint16(fixed[10:12], h.Sum)
	copy(fixed[12:16], h.SAddr[:])
	copy(fixed[16:20], h.DAddr[:])
	dst = append(dst, fixed[:]...)
	dst = append(dst, h.Opt...)
	pad := int(ihl)*4 - HeaderSize - len(h.Opt)
	for i := 0; i < pad; i++ {
		dst = append(dst, 0)
	}
	return dst, nil
}

// Checksum returns the RFC 1071 checksum of h serialized with Sum
// zeroed, spec §4.4's "checksum(Ipv4)".
func (h *Header) Checksum() uint16 {
	clone := *h
	clone.Sum = 0
	buf, err := clone.Emit(nil)
	if err != nil {
		return 0
	}
	return checksum.Checksum(buf)
}

// PseudoHeader accumulates the TCP/UDP-over-IPv4 pseudo header (source
// and destination address, protocol, and transport+payload length) into
// acc, spec §4.4's IPv4/TCP and IPv4/UDP pseudo-header forms.
func (h *Header) PseudoHeader(acc *checksum.Accumulator, transportLen uint16) {
	checksum.IPv4PseudoHeader(acc, h.SAddr, h.DAddr, uint8(h.Proto), transportLen)
}

// Kind reports the Proto field's decoded LayerKind, delegating to
// wire.ProtoKind, for use by the dispatcher.
func (h *Header) Kind() wire.LayerKind { return wire.ProtoKind(h.Proto) }
