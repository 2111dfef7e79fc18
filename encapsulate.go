package pktdump

import (
	"fmt"

	"github.com/soypat/pktdump/arp"
	"github.com/soypat/pktdump/checksum"
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

// etherTypeFor returns the EtherType that names layer's protocol, and
// false if layer is not one carried in an EtherType field (spec §4.1's
// encapsulate rule: "if inner layer is of unknown kind, the existing
// value is preserved").
func etherTypeFor(layer Layer) (uint16, bool) {
	switch h := layer.(type) {
	case *ipv4.Header:
		return uint16(wire.EtherTypeIPv4), true
	case *ipv6.Header:
		return uint16(wire.EtherTypeIPv6), true
	case *arp.Header:
		return uint16(wire.EtherTypeARP), true
	case *ethernet.VLANTag:
		return uint16(wire.EtherTypeVLAN), true
	case *mpls.Header:
		if h.Mode == mpls.Multicast {
			return uint16(wire.EtherTypeMPLSMulticast), true
		}
		return uint16(wire.EtherTypeMPLSUnicast), true
	default:
		return 0, false
	}
}

// protoNumberFor returns the IP protocol number that names layer's
// protocol, and false if layer carries no IP protocol number (same
// "preserve existing value" rule as etherTypeFor).
func protoNumberFor(layer Layer) (wire.IPProto, bool) {
	switch layer.(type) {
	case *tcp.Header:
		return wire.IPProtoTCP, true
	case *udp.Header:
		return wire.IPProtoUDP, true
	case *icmp.Header:
		return wire.IPProtoICMP, true
	case *icmpv6.Header:
		return wire.IPProtoICMPv6, true
	case *gre.Header:
		return wire.IPProtoGRE, true
	case *sctp.Header:
		return wire.IPProtoSCTP, true
	default:
		return 0, false
	}
}

// Encapsulate is the dual of Decapsulate: it serializes a Packet back
// into bytes, walking inner-to-outer and recomputing length, protocol
// and checksum fields per spec §4.1's "Encapsulate" rules. pkt must end
// in Payload, Unsupported or Truncated.
func Encapsulate(pkt Packet) ([]byte, error) {
	if len(pkt) == 0 {
		return nil, nil
	}
	var buf []byte
	var inner Layer // the already-serialized, next-more-inner layer.
	switch tail := pkt[len(pkt)-1].(type) {
	case Payload:
		buf, inner = append([]byte(nil), tail...), tail
	case Unsupported:
		buf, inner = append([]byte(nil), tail...), tail
	case Truncated:
		buf, inner = append([]byte(nil), tail...), tail
	default:
		return nil, fmt.Errorf("pktdump: packet must end in Payload, Unsupported or Truncated, got %T", tail)
	}

	headers := pkt[:len(pkt)-1]
	for i := len(headers) - 1; i >= 0; i-- {
		layer := headers[i]
		var outer Layer // the not-yet-serialized, next-more-outer layer.
		if i > 0 {
			outer = headers[i-1]
		}
		emitted, err := emitLayer(layer, inner, outer, buf)
		if err != nil {
			return nil, err
		}
		buf = append(emitted, buf...)
		inner = layer
	}
	return buf, nil
}

// emitLayer serializes one header. Its own type/proto-carrying field is
// rewritten from inner, the layer already serialized one step further
// in (spec §4.1: "overwrite ... from the just-emitted inner layer's
// known ether-type"); checksum fields that depend on an enclosing IP
// pseudo-header are rewritten from outer, the next-more-outer layer
// still waiting to be serialized (spec §4.1: "recomputed when the
// next-outer frame is an IP header visible in the stack").
func emitLayer(layer, inner, outer Layer, buf []byte) ([]byte, error) {
	switch h := layer.(type) {
	case *ethernet.Header:
		if et, ok := etherTypeFor(inner); ok {
			h.Type = et
		}
		return h.Emit(nil), nil

	case *ethernet.VLANTag:
		if et, ok := etherTypeFor(inner); ok {
			h.EtherType = et
		}
		return h.Emit(nil), nil

	case *mpls.Header:
		if et, ok := etherTypeFor(inner); ok {
			h.EtherType = et
		}
		return h.Emit(nil), nil

	case *arp.Header:
		return h.Emit(nil), nil

	case *datalink.NullHeader:
		return h.Emit(nil), nil

	case *datalink.SLLHeader:
		return h.Emit(nil), nil

	case *gre.Header:
		if et, ok := etherTypeFor(inner); ok {
			h.Type = et
		}
		return h.Emit(nil), nil

	case *ipv4.Header:
		if p, ok := protoNumberFor(inner); ok {
			h.Proto = p
		}
		words := (len(h.Opt) + 3) / 4
		hl := 5 + words
		h.Len = uint16(hl*4 + len(buf))
		h.Sum = h.Checksum()
		return h.Emit(nil)

	case *ipv6.Header:
		if p, ok := protoNumberFor(inner); ok {
			h.Next = p
		}
		h.Len = uint16(len(buf))
		return h.Emit(nil), nil

	case *tcp.Header:
		off, err := h.Offset()
		if err != nil {
			return nil, err
		}
		h.Off = off
		recomputeTCPChecksum(h, outer, buf)
		return h.Emit(nil)

	case *udp.Header:
		h.Ulen = uint16(udp.HeaderSize + len(buf))
		recomputeUDPChecksum(h, outer, buf)
		return h.Emit(nil), nil

	case *sctp.Header:
		return h.Emit(nil)

	case *icmp.Header:
		h.Checksum = 0
		full := append(h.Emit(nil), buf...)
		h.Checksum = checksum.Checksum(full)
		return h.Emit(nil), nil

	case *icmpv6.Header:
		recomputeICMPv6Checksum(h, outer, buf)
		return h.Emit(nil), nil

	default:
		return nil, fmt.Errorf("pktdump: unrecognized layer type %T", layer)
	}
}

// recomputeTCPChecksum rewrites h.Sum using outer's pseudo header, per
// spec §4.4, if outer is a visible IPv4 or IPv6 header; otherwise h.Sum
// is left untouched, per spec §4.4's "for any combination not
// enumerated, return 0 (the transport's checksum is left untouched)".
func recomputeTCPChecksum(h *tcp.Header, outer Layer, payload []byte) {
	switch o := outer.(type) {
	case *ipv4.Header:
		var acc checksum.Accumulator
		checksum.IPv4PseudoHeader(&acc, o.SAddr, o.DAddr, uint8(wire.IPProtoTCP), uint16(h.HeaderLen()+len(payload)))
		h.Sum = h.Checksum(acc, payload)
	case *ipv6.Header:
		var acc checksum.Accumulator
		checksum.IPv6PseudoHeader(&acc, o.SAddr, o.DAddr, uint8(wire.IPProtoTCP), uint32(h.HeaderLen()+len(payload)))
		h.Sum = h.Checksum(acc, payload)
	}
}

// recomputeUDPChecksum rewrites h.Sum using outer's pseudo header, per
// spec §4.4; see recomputeTCPChecksum.
func recomputeUDPChecksum(h *udp.Header, outer Layer, payload []byte) {
	switch o := outer.(type) {
	case *ipv4.Header:
		var acc checksum.Accumulator
		checksum.IPv4PseudoHeader(&acc, o.SAddr, o.DAddr, uint8(wire.IPProtoUDP), h.Ulen)
		h.Sum = h.Checksum(acc, payload)
	case *ipv6.Header:
		var acc checksum.Accumulator
		checksum.IPv6PseudoHeader(&acc, o.SAddr, o.DAddr, uint8(wire.IPProtoUDP), uint32(h.Ulen))
		h.Sum = h.Checksum(acc, payload)
	}
}

// recomputeICMPv6Checksum rewrites h.Sum using outer's IPv6 pseudo
// header, per spec §4.4's "IPv6/ICMPv6" form; ICMPv6 over anything
// other than IPv6 leaves h.Sum untouched.
func recomputeICMPv6Checksum(h *icmpv6.Header, outer Layer, body []byte) {
	o, ok := outer.(*ipv6.Header)
	if !ok {
		return
	}
	var acc checksum.Accumulator
	checksum.IPv6PseudoHeader(&acc, o.SAddr, o.DAddr, uint8(wire.IPProtoICMPv6), uint32(icmpv6.HeaderSize+len(body)))
	h.Sum = h.Checksum(acc, body)
}
