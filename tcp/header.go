// Package tcp implements the parse/emit codec for the TCP header (RFC
// 9293), grounded on the field accessors of tcp/frame.go in the teacher
// library (github.com/soypat/lneto/tcp), adapted from its zero-copy
// Frame view into the owned-struct Header shape spec §3/§9 call for.
// The Flags bitmask and OptionKind table are kept from the teacher's
// tcp/definitions.go and tcp/options.go; the connection state machine
// (State, Segment, RejectError, OptionParser) in those files is dropped
// (see DESIGN.md) since it belongs to stream reconstruction, out of
// this module's scope.
package tcp

import (
	"encoding/binary"
	"errors"
	"math/bits"

	"github.com/soypat/pktdump/checksum"
	"github.com/soypat/pktdump/wire"
)

// HeaderSize is the length in bytes of a TCP header without options.
const HeaderSize = 20

var (
	// ErrShort is returned by Parse when buf is smaller than HeaderSize,
	// or smaller than the header length the Off field implies.
	ErrShort = errors.New("tcp: short buffer")
	// ErrBadOffset is returned by Parse when Off is less than 5 (spec §3
	// invariant "off >= 5") or by Emit when len(Opt) would not fit in
	// the 4 bits available to encode it.
	ErrBadOffset = errors.New("tcp: Off must be >= 5 and <= 15")
)

// Flags is the TCP flags bitmask, kept from the teacher's tcp/definitions.go.
type Flags uint8

const (
	FlagFIN Flags = 1 << iota // FlagFIN - No more data from sender.
	FlagSYN                   // FlagSYN - Synchronize sequence numbers.
	FlagRST                   // FlagRST - Reset the connection.
	FlagPSH                   // FlagPSH - Push function.
	FlagACK                   // FlagACK - Acknowledgment field significant.
	FlagURG                   // FlagURG - Urgent pointer field significant.
	FlagECE                   // FlagECE - ECN-Echo.
	FlagCWR                   // FlagCWR - Congestion Window Reduced.
)

const flagMask = 0xff

// HasAll checks if mask bits are all set in the receiver flags.
func (flags Flags) HasAll(mask Flags) bool { return flags&mask == mask }

// HasAny checks if one or more mask bits are set in receiver flags.
func (flags Flags) HasAny(mask Flags) bool { return flags&mask != 0 }

// String returns a human readable flag string, e.g. "[SYN,ACK]".
func (flags Flags) String() string {
	if flags == 0 {
		return "[]"
	}
	buf := make([]byte, 0, 2+4*bits.OnesCount8(uint8(flags)))
	buf = append(buf, '[')
	buf = flags.AppendFormat(buf)
	buf = append(buf, ']')
	return string(buf)
}

// AppendFormat appends a human readable flag string to b.
func (flags Flags) AppendFormat(b []byte) []byte {
	const flaglen = 4
	const strflags = "FIN SYN RST PSH ACK URG ECE CWR "
	var addcommas bool
	for flags != 0 {
		i := bits.TrailingZeros8(uint8(flags))
		if addcommas {
			b = append(b, ',')
		} else {
			addcommas = true
		}
		name := strflags[i*flaglen : i*flaglen+flaglen-1]
		b = append(b, name...)
		flags &= ^(1 << i)
	}
	return b
}

// Header is the parsed form of a TCP header, spec §3 "Tcp". Opt holds
// the opaque options bytes; len(Opt) always equals (Off-5)*4 for a
// value produced by Parse, spec §3's invariant.
type Header struct {
	Sport Port
	Dport Port
	Seq   uint32
	Ack   uint32
	Off   uint8 // data offset in 32-bit words, >= 5
	Flags Flags
	Win   uint16
	Sum   uint16
	Urp   uint16
	Opt   []byte
}

// Port is a TCP port number.
type Port uint16

// Parse decodes a TCP header (fixed part plus options) from the front
// of buf. Options are captured verbatim, neither parsed nor validated,
// per spec §4.2.
func Parse(buf []byte) (h Header, rest []byte, err error) {
	if len(buf) < HeaderSize {
		return Header{}, nil, ErrShort
	}
	off := buf[12] >> 4
	if off < 5 {
		return Header{}, nil, ErrBadOffset
	}
	hlen := int(off) * 4
	if len(buf) < hlen {
		return Header{}, nil, ErrShort
	}
	h.Sport = Port(binary.BigEndian.Uint16(buf[0:2]))
	h.Dport = Port(binary.BigEndian.Uint16(buf[2:4]))
	h.Seq = binary.BigEndian.Uint32(buf[4:8])
	h.Ack = binary.BigEndian.Uint32(buf[8:12])
	h.Off = off
	h.Flags = Flags(buf[13])
	h.Win = binary.BigEndian.Uint16(buf[14:16])
	h.Sum = binary.BigEndian.Uint16(buf[16:18])
	h.Urp = binary.BigEndian.Uint16(buf[18:20])
	if hlen > HeaderSize {
		h.Opt = append([]byte(nil), buf[HeaderSize:hlen]...)
	}
	return h, buf[hlen:], nil
}

// Offset computes the Off field implied by len(Opt). Callers that need
// HeaderLen to reflect a header's current Opt before calling Emit
// (e.g. to compute a pseudo-header length) should assign h.Off = off
// first.
func (h *Header) Offset() (uint8, error) {
	words := (len(h.Opt) + 3) / 4
	off := 5 + words
	if off > 15 {
		return 0, ErrBadOffset
	}
	return uint8(off), nil
}

// HeaderLen returns the total header length in bytes, options included,
// using the current Off field. Off is only kept consistent with Opt
// after a call to Offset or Emit.
func (h *Header) HeaderLen() int { return int(h.Off) * 4 }

// Emit appends the wire form of h to dst. The Off field is recomputed
// from len(Opt) rather than trusted from h.Off, and the reserved nybble
// between Off and Flags is always zero, per spec §3.
func (h *Header) Emit(dst []byte) ([]byte, error) {
	off, err := h.Offset()
	if err != nil {
		return dst, err
	}
	h.Off = off
	var fixed [HeaderSize]byte
	binary.BigEndian.PutUint16(fixed[0:2], uint16(h.Sport))
	binary.BigEndian.PutUint16(fixed[2:4], uint16(h.Dport))
	binary.BigEndian.PutUint32(fixed[4:8], h.Seq)
	binary.BigEndian.PutUint32(fixed[8:12], h.Ack)
	fixed[12] = off << 4
	fixed[13] = byte(h.Flags) & flagMask
	binary.BigEndian.PutUint16(fixed[14:16], h.Win)
	binary.BigEndian.PutUint16(fixed[16:18], h.Sum)
	binary.BigEndian.PutUint16(fixed[18:20], h.Urp)
	dst = append(dst, fixed[:]...)
	dst = append(dst, h.Opt...)
	pad := int(off)*4 - HeaderSize - len(h.Opt)
	for i := 0; i < pad; i++ {
		dst = append(dst, 0)
	}
	return dst, nil
}

// Checksum returns the RFC 1071 checksum of h plus payload accumulated
// atop a pseudo-header acc, spec §4.4's "checksum(Ip, Tcp, payload)".
// acc must already hold the enclosing IP pseudo-header contribution.
func (h *Header) Checksum(acc checksum.Accumulator, payload []byte) uint16 {
	clone := *h
	clone.Sum = 0
	buf, err := clone.Emit(nil)
	if err != nil {
		return 0
	}
	acc.Write(buf)
	acc.Write(payload)
	return acc.Sum16()
}

// Kind reports the terminal layer kind for a TCP header, spec §4.1's
// "tcp ... are terminal".
func (h *Header) Kind() wire.LayerKind { return wire.KindStop }
