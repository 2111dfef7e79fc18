package tcp

// OptionKind enumerates the kind byte of a TCP option, kept from the
// teacher's tcp/definitions.go table.
type OptionKind uint8

const (
	OptEnd            OptionKind = iota // end of option list
	OptNop                              // no-operation
	OptMaxSegmentSize                   // maximum segment size
	OptWindowScale                      // window scale
	OptSACKPermitted                    // SACK permitted
	OptSACK                             // SACK
	OptTimestamps     OptionKind = 8    // timestamps
)

// Option is a single decoded TCP option, spec §4's supplemented
// read-only option introspection.
type Option struct {
	Kind  OptionKind
	Value []byte
}

// DecodeOptions decodes the opaque option bytes stored in Header.Opt
// into a slice of Option for read-only inspection. It never
// participates in Parse/Emit round-tripping: Header.Opt remains the
// opaque byte slice spec §3 requires regardless of what DecodeOptions
// returns. Malformed trailing bytes (a kind byte with no matching
// length byte, or a length exceeding what remains) stop decoding and
// return what was decoded so far alongside the error.
func DecodeOptions(opt []byte) ([]Option, error) {
	var opts []Option
	off := 0
	for off < len(opt) && opt[off] != byte(OptEnd) {
		kind := OptionKind(opt[off])
		off++
		if kind == OptNop {
			continue
		}
		if off >= len(opt) {
			return opts, ErrShort
		}
		size := int(opt[off])
		off++
		dataLen := size - 2
		if dataLen < 0 || off+dataLen > len(opt) {
			return opts, ErrShort
		}
		opts = append(opts, Option{Kind: kind, Value: opt[off : off+dataLen]})
		off += dataLen
	}
	return opts, nil
}
