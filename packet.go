// Package pktdump decapsulates raw link-layer bytes into an ordered
// stack of typed headers and re-encapsulates that stack back into
// bytes. It is the dispatcher and builder that ties together the
// per-protocol codec packages (ethernet, arp, ipv4, ipv6, gre, mpls,
// tcp, udp, sctp, icmp, icmpv6, datalink) the way the teacher library's
// former monolithic lneto/lneto2 packages tied together its own
// protocol frames, before this module split each protocol into its own
// package (see DESIGN.md).
package pktdump

import "github.com/soypat/pktdump/wire"

// Layer is one element of a decapsulated Packet: a parsed header or one
// of the three terminal sentinels (Payload, Unsupported, Truncated).
// Every header type in this module (ethernet.Header, ipv4.Header, ...)
// satisfies Layer through its Kind method; Layer is intentionally
// minimal so that adding a header kind never requires touching this
// package's interface, only its own Kind implementation.
type Layer interface {
	Kind() wire.LayerKind
}

// Packet is a decapsulated header stack, outer-to-inner, spec §3's
// "ordered list of typed headers". The last element is always one of
// Payload, Unsupported, or Truncated.
type Packet []Layer

// Payload is the raw-byte tail of a packet whose layers were all
// successfully parsed and whose innermost protocol carries no further
// structure this module understands (e.g. application data after UDP,
// or an IPProtoRaw payload).
type Payload []byte

// Kind reports KindStop: Payload always terminates a Packet.
func (p Payload) Kind() wire.LayerKind { return wire.KindStop }

// Unsupported is the raw-byte tail recorded when the dispatcher meets a
// tag it has no codec for (an unknown EtherType, IP protocol number, or
// DLT), spec §4.1's "unsupported appends an Unsupported(remaining)
// sentinel".
type Unsupported []byte

// Kind reports KindUnsupported: Unsupported always terminates a Packet.
func (u Unsupported) Kind() wire.LayerKind { return wire.KindUnsupported }

// Truncated is the raw-byte tail recorded when the remaining buffer is
// too small to satisfy the next tag's minimum-length precondition,
// spec §4.1's "on failure it transitions to stop with a
// Truncated(remaining) sentinel".
type Truncated []byte

// Kind reports KindUnknown: Truncated always terminates a Packet.
func (t Truncated) Kind() wire.LayerKind { return wire.KindUnknown }
