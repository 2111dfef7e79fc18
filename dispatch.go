package pktdump

import (
	"github.com/soypat/pktdump/arp"
	"github.com/soypat/pktdump/datalink"
	"github.com/soypat/pktdump/ethernet"
	"github.com/soypat/pktdump/gre"
	"github.com/soypat/pktdump/icmp"
	"github.com/soypat/pktdump/icmpv6"
	"github.com/soypat/pktdump/ipv4"
	"github.com/soypat/pktdump/ipv6"
	"github.com/soypat/pktdump/mpls"
	"github.com/soypat/pktdump/sctp"
	"github.com/soypat/pktdump/tcp"
	"github.com/soypat/pktdump/udp"
	"github.com/soypat/pktdump/wire"
)

// Decapsulate parses buf as an Ethernet II frame and walks the layer
// dispatcher state machine described in spec §4.1, returning the
// resulting Packet outer-to-inner.
func Decapsulate(buf []byte) Packet {
	return decapsulate(wire.KindEther, buf)
}

// DecapsulateDLT parses buf starting from the header kind that dlt
// names (the pcap link-layer type table, spec §6), instead of always
// assuming Ethernet. An unrecognized dlt produces a one-element Packet
// holding Unsupported(buf).
func DecapsulateDLT(dlt wire.DLT, buf []byte) Packet {
	kind := wire.LinkTypeKind(dlt)
	if kind == wire.KindUnsupported {
		return Packet{Unsupported(buf)}
	}
	return decapsulate(kind, buf)
}

// decapsulate runs the state machine of spec §4.1 starting at kind,
// consuming buf and accumulating layers until a terminal tag is
// reached.
func decapsulate(kind wire.LayerKind, buf []byte) Packet {
	var pkt Packet
	for {
		switch kind {
		case wire.KindNull:
			h, rest, err := datalink.ParseNull(buf)
			if err != nil {
				return append(pkt, Truncated(buf))
			}
			pkt = append(pkt, &h)
			kind, buf = h.Kind(), rest

		case wire.KindLinuxCooked:
			h, rest, err := datalink.ParseSLL(buf)
			if err != nil {
				return append(pkt, Truncated(buf))
			}
			pkt = append(pkt, &h)
			kind, buf = h.Kind(), rest

		case wire.KindEther:
			h, rest, err := ethernet.Parse(buf)
			if err != nil {
				return append(pkt, Truncated(buf))
			}
			pkt = append(pkt, &h)
			kind, buf = h.Kind(), rest

		case wire.KindIeee8021q:
			tag, rest, err := ethernet.ParseVLANTag(buf)
			if err != nil {
				return append(pkt, Truncated(buf))
			}
			pkt = append(pkt, &tag)
			kind, buf = tag.Kind(), rest

		case wire.KindMPLSUnicast, wire.KindMPLSMulticast:
			mode := mpls.Unicast
			if kind == wire.KindMPLSMulticast {
				mode = mpls.Multicast
			}
			h, rest, err := mpls.Parse(mode, buf)
			if err != nil {
				return append(pkt, Truncated(buf))
			}
			pkt = append(pkt, &h)
			kind, buf = h.Kind(), rest

		case wire.KindARP:
			h, rest, err := arp.Parse(buf)
			if err != nil {
				return append(pkt, Truncated(buf))
			}
			return append(pkt, &h, Payload(rest))

		case wire.KindIPv4:
			h, rest, err := ipv4.Parse(buf)
			if err != nil {
				return append(pkt, Truncated(buf))
			}
			pkt = append(pkt, &h)
			kind, buf = h.Kind(), rest

		case wire.KindIPv6:
			h, rest, err := ipv6.Parse(buf)
			if err != nil {
				return append(pkt, Truncated(buf))
			}
			pkt = append(pkt, &h)
			kind, buf = h.Kind(), rest

		case wire.KindGRE:
			h, rest, err := gre.Parse(buf)
			if err != nil {
				return append(pkt, Truncated(buf))
			}
			pkt = append(pkt, &h)
			kind, buf = h.Kind(), rest

		case wire.KindTCP:
			h, rest, err := tcp.Parse(buf)
			if err != nil {
				return append(pkt, Truncated(buf))
			}
			return append(pkt, &h, Payload(rest))

		case wire.KindUDP:
			h, rest, err := udp.Parse(buf)
			if err != nil {
				return append(pkt, Truncated(buf))
			}
			return append(pkt, &h, Payload(rest))

		case wire.KindSCTP:
			h, rest, err := sctp.Parse(buf)
			if err != nil {
				return append(pkt, Truncated(buf))
			}
			return append(pkt, &h, Payload(rest))

		case wire.KindICMP:
			h, rest, err := icmp.Parse(buf)
			if err != nil {
				return append(pkt, Truncated(buf))
			}
			return append(pkt, &h, Payload(rest))

		case wire.KindICMPv6:
			h, rest, err := icmpv6.Parse(buf)
			if err != nil {
				return append(pkt, Truncated(buf))
			}
			return append(pkt, &h, Payload(rest))

		case wire.KindRaw:
			return append(pkt, Payload(buf))

		default: // wire.KindUnsupported and any unrecognized tag.
			return append(pkt, Unsupported(buf))
		}
	}
}
