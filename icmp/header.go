// Package icmp implements the type-dispatched parse/emit codec for
// ICMPv4 (RFC 792), grounded on the Type/Code constants and per-type
// frame shapes in the teacher library's deleted ipv4/icmpv4/icmpv4.go
// (github.com/soypat/lneto/ipv4/icmpv4), adapted into the owned-struct
// Header+Body shape spec §3/§4.3 call for.
package icmp

import (
	"encoding/binary"
	"errors"

	"github.com/soypat/pktdump/wire"
)

// HeaderSize is the length in bytes of the fixed ICMP prologue
// (type, code, checksum) before the per-type body.
const HeaderSize = 4

// ErrShort is returned by Parse when buf is too small for the
// prologue or the type-specific body that follows it.
var ErrShort = errors.New("icmp: short buffer")

// Type is the ICMPv4 message type.
type Type uint8

const (
	TypeEchoReply              Type = 0
	TypeDestinationUnreachable Type = 3
	TypeSourceQuench           Type = 4
	TypeRedirect               Type = 5
	TypeEcho                   Type = 8
	TypeTimeExceeded           Type = 11
	TypeParameterProblem       Type = 12
	TypeTimestamp              Type = 13
	TypeTimestampReply         Type = 14
	TypeInfoRequest            Type = 15
	TypeInfoReply              Type = 16
)

// Header is the parsed form of an ICMPv4 message, spec §4.3.
type Header struct {
	Type     Type
	Code     uint8
	Checksum uint16
	Body     Body
}

// Body is the type-dispatched per-message body, spec §4.3's table.
// The concrete type implementing Body identifies which row of the
// table produced it.
type Body interface {
	emit(dst []byte) []byte
}

// Unused32 is the body of Destination Unreachable, Time Exceeded and
// Source Quench: a 32-bit field carried opaquely.
type Unused32 struct{ Un uint32 }

func (b Unused32) emit(dst []byte) []byte { return appendUint32(dst, b.Un) }

// ParameterProblem is the body of Parameter Problem: an 8-bit pointer
// plus a 24-bit unused field.
type ParameterProblem struct {
	Pointer uint8
	Unused  uint32 // 24 bits
}

func (b ParameterProblem) emit(dst []byte) []byte {
	return appendUint32(dst, uint32(b.Pointer)<<24|b.Unused&0x00ffffff)
}

// Redirect is the body of Redirect: a 32-bit gateway address.
type Redirect struct{ Gateway [4]byte }

func (b Redirect) emit(dst []byte) []byte { return append(dst, b.Gateway[:]...) }

// Echo is the body of Echo and Echo Reply: id and sequence.
type Echo struct {
	ID  uint16
	Seq uint16
}

func (b Echo) emit(dst []byte) []byte {
	dst = appendUint16(dst, b.ID)
	return appendUint16(dst, b.Seq)
}

// Timestamp is the body of Timestamp and Timestamp Reply: id, sequence,
// and the originate/receive/transmit 32-bit timestamps. It is terminal:
// no payload tail follows it.
type Timestamp struct {
	ID        uint16
	Seq       uint16
	Originate uint32
	Receive   uint32
	Transmit  uint32
}

func (b Timestamp) emit(dst []byte) []byte {
	dst = appendUint16(dst, b.ID)
	dst = appendUint16(dst, b.Seq)
	dst = appendUint32(dst, b.Originate)
	dst = appendUint32(dst, b.Receive)
	return appendUint32(dst, b.Transmit)
}

// Info is the body of Info Request and Info Reply: id and sequence. It
// is terminal: no payload tail follows it.
type Info struct {
	ID  uint16
	Seq uint16
}

func (b Info) emit(dst []byte) []byte {
	dst = appendUint16(dst, b.ID)
	return appendUint16(dst, b.Seq)
}

// Opaque is the body of any type not in spec §4.3's table: a 32-bit
// opaque field.
type Opaque struct{ Un uint32 }

func (b Opaque) emit(dst []byte) []byte { return appendUint32(dst, b.Un) }

func appendUint16(dst []byte, v uint16) []byte {
	var b [2]byte
	binary.BigEndian.PutUint16(b[:], v)
	return append(dst, b[:]...)
}

func appendUint32(dst []byte, v uint32) []byte {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], v)
	return append(dst, b[:]...)
}

// Parse decodes an ICMPv4 message from the front of buf, branching on
// the type byte per spec §4.3's table. Timestamp and Info messages are
// terminal: rest is always empty for them, per spec §4.3.
func Parse(buf []byte) (h Header, rest []byte, err error) {
	if len(buf) < HeaderSize {
		return Header{}, nil, ErrShort
	}
	h.Type = Type(buf[0])
	h.Code = buf[1]
	h.Checksum = binary.BigEndian.Uint16(buf[2:4])
	body := buf[HeaderSize:]
	switch h.Type {
	case TypeDestinationUnreachable, TypeTimeExceeded, TypeSourceQuench:
		if len(body) < 4 {
			return Header{}, nil, ErrShort
		}
		h.Body = Unused32{Un: binary.BigEndian.Uint32(body[0:4])}
		return h, body[4:], nil
	case TypeParameterProblem:
		if len(body) < 4 {
			return Header{}, nil, ErrShort
		}
		v := binary.BigEndian.Uint32(body[0:4])
		h.Body = ParameterProblem{Pointer: uint8(v >> 24), Unused: v & 0x00ffffff}
		return h, body[4:], nil
	case TypeRedirect:
		if len(body) < 4 {
			return Header{}, nil, ErrShort
		}
		var gw [4]byte
		copy(gw[:], body[0:4])
		h.Body = Redirect{Gateway: gw}
		return h, body[4:], nil
	case TypeEcho, TypeEchoReply:
		if len(body) < 4 {
			return Header{}, nil, ErrShort
		}
		h.Body = Echo{ID: binary.BigEndian.Uint16(body[0:2]), Seq: binary.BigEndian.Uint16(body[2:4])}
		return h, body[4:], nil
	case TypeTimestamp, TypeTimestampReply:
		if len(body) < 16 {
			return Header{}, nil, ErrShort
		}
		h.Body = Timestamp{
			ID:        binary.BigEndian.Uint16(body[0:2]),
			Seq:       binary.BigEndian.Uint16(body[2:4]),
			Originate: binary.BigEndian.Uint32(body[4:8]),
			Receive:   binary.BigEndian.Uint32(body[8:12]),
			Transmit:  binary.BigEndian.Uint32(body[12:16]),
		}
		return h, nil, nil
	case TypeInfoRequest, TypeInfoReply:
		if len(body) < 4 {
			return Header{}, nil, ErrShort
		}
		h.Body = Info{ID: binary.BigEndian.Uint16(body[0:2]), Seq: binary.BigEndian.Uint16(body[2:4])}
		return h, nil, nil
	default:
		if len(body) < 4 {
			return Header{}, nil, ErrShort
		}
		h.Body = Opaque{Un: binary.BigEndian.Uint32(body[0:4])}
		return h, body[4:], nil
	}
}

// Emit appends the wire form of h to dst.
func (h *Header) Emit(dst []byte) []byte {
	var fixed [HeaderSize]byte
	fixed[0] = byte(h.Type)
	fixed[1] = h.Code
	binary.BigEndian.PutUint16(fixed[2:4], h.Checksum)
	dst = append(dst, fixed[:]...)
	if h.Body != nil {
		dst = h.Body.emit(dst)
	}
	return dst
}

// Kind reports the terminal layer kind for an ICMPv4 message, spec
// §4.1's "icmp ... are terminal".
func (h *Header) Kind() wire.LayerKind { return wire.KindStop }
