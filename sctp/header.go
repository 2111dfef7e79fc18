// Package sctp implements the parse/emit codec for an SCTP common
// header plus its chunk list (RFC 9260). The teacher library has no
// SCTP code; this package is written from spec §3/§9's bit layout and
// the RFC 9260 §3.2 chunk-alignment rule resolved in DESIGN.md, in the
// same style as the other header codecs in this module.
package sctp

import (
	"encoding/binary"
	"errors"

	"github.com/soypat/pktdump/wire"
)

// HeaderSize is the length in bytes of the SCTP common header.
const HeaderSize = 12

// ChunkHeaderSize is the length in bytes of a chunk header (type, flags,
// length) without its payload.
const ChunkHeaderSize = 4

// DataChunkType is the chunk type value identifying a DATA chunk, whose
// payload has the structured shape in spec §3 rather than opaque bytes.
const DataChunkType = 0

var (
	// ErrShort is returned by Parse when buf is smaller than HeaderSize,
	// or when a chunk's declared length exceeds the remaining buffer.
	ErrShort = errors.New("sctp: short buffer")
)

// Header is the parsed form of an SCTP packet, spec §3 "Sctp".
type Header struct {
	Sport  uint16
	Dport  uint16
	VTag   uint32
	Sum    uint32
	Chunks []Chunk
}

// Chunk is one SCTP chunk, spec §3 "SctpChunk". Payload holds either a
// DataPayload (Type == DataChunkType) or opaque bytes.
type Chunk struct {
	Type    uint8
	Flags   uint8
	Len     uint16 // payload length, not including the 4-byte chunk header
	Payload any // DataPayload or []byte
}

// DataPayload is the structured payload of a DATA chunk (Type == 0),
// spec §3's "{ tsn, sid, ssn, ppi, data }".
type DataPayload struct {
	TSN  uint32
	SID  uint16
	SSN  uint16
	PPI  uint32
	Data []byte
}

// align4 rounds n up to the next multiple of 4, implementing RFC 9260
// §3.2's "len(chunk_on_wire) = ceil((4+chunk_len)/4) * 4" padding rule
// between chunks on the wire.
func align4(n int) int { return (n + 3) &^ 3 }

// Parse decodes an SCTP common header and its chunk list from buf.
func Parse(buf []byte) (h Header, rest []byte, err error) {
	if len(buf) < HeaderSize {
		return Header{}, nil, ErrShort
	}
	h.Sport = binary.BigEndian.Uint16(buf[0:2])
	h.Dport = binary.BigEndian.Uint16(buf[2:4])
	h.VTag = binary.BigEndian.Uint32(buf[4:8])
	h.Sum = binary.BigEndian.Uint32(buf[8:12])
	off := HeaderSize
	for off < len(buf) {
		if len(buf)-off < ChunkHeaderSize {
			return Header{}, nil, ErrShort
		}
		typ := buf[off]
		flags := buf[off+1]
		clen := binary.BigEndian.Uint16(buf[off+2 : off+4])
		payloadLen := int(clen) - ChunkHeaderSize
		if payloadLen < 0 || off+ChunkHeaderSize+payloadLen > len(buf) {
			return Header{}, nil, ErrShort
		}
		payloadBuf := buf[off+ChunkHeaderSize : off+ChunkHeaderSize+payloadLen]
		c := Chunk{Type: typ, Flags: flags, Len: uint16(payloadLen)}
		if typ == DataChunkType {
			dp, err := parseDataPayload(payloadBuf)
			if err != nil {
				return Header{}, nil, err
			}
			c.Payload = dp
		} else {
			c.Payload = append([]byte(nil), payloadBuf...)
		}
		h.Chunks = append(h.Chunks, c)
		off += align4(ChunkHeaderSize + payloadLen)
	}
	return h, nil, nil
}

func parseDataPayload(buf []byte) (DataPayload, error) {
	const dataFixedSize = 12
	if len(buf) < dataFixedSize {
		return DataPayload{}, ErrShort
	}
	return DataPayload{
		TSN:  binary.BigEndian.Uint32(buf[0:4]),
		SID:  binary.BigEndian.Uint16(buf[4:6]),
		SSN:  binary.BigEndian.Uint16(buf[6:8]),
		PPI:  binary.BigEndian.Uint32(buf[8:12]),
		Data: append([]byte(nil), buf[dataFixedSize:]...),
	}, nil
}

// Emit appends the wire form of h, including pad bytes between chunks,
// to dst.
func (h *Header) Emit(dst []byte) ([]byte, error) {
	var fixed [HeaderSize]byte
	binary.BigEndian.PutUint16(fixed[0:2], h.Sport)
	binary.BigEndian.PutUint16(fixed[2:4], h.Dport)
	binary.BigEndian.PutUint32(fixed[4:8], h.VTag)
	binary.BigEndian.PutUint32(fixed[8:12], h.Sum)
	dst = append(dst, fixed[:]...)
	for _, c := range h.Chunks {
		payload, err := emitChunkPayload(c)
		if err != nil {
			return dst, err
		}
		var ch [ChunkHeaderSize]byte
		ch[0] = c.Type
		ch[1] = c.Flags
		binary.BigEndian.PutUint16(ch[2:4], uint16(ChunkHeaderSize+len(payload)))
		dst = append(dst, ch[:]...)
		dst = append(dst, payload...)
		pad := align4(ChunkHeaderSize+len(payload)) - (ChunkHeaderSize + len(payload))
		for i := 0; i < pad; i++ {
			dst = append(dst, 0)
		}
	}
	return dst, nil
}

// Kind reports the terminal layer kind for an SCTP packet, spec §4.1's
// "sctp ... are terminal".
func (h *Header) Kind() wire.LayerKind { return wire.KindStop }

func emitChunkPayload(c Chunk) ([]byte, error) {
	switch p := c.Payload.(type) {
	case DataPayload:
		var fixed [12]byte
		binary.BigEndian.PutUint32(fixed[0:4], p.TSN)
		binary.BigEndian.PutUint16(fixed[4:6], p.SID)
		binary.BigEndian.PutUint16(fixed[6:8], p.SSN)
		binary.BigEndian.PutUint32(fixed[8:12], p.PPI)
		return append(fixed[:], p.Data...), nil
	case []byte:
		return p, nil
	case nil:
		return nil, nil
	default:
		return nil, errors.New("sctp: unrecognized chunk payload type")
	}
}
