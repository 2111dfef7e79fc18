// Package wire holds the numeric tables shared by every header codec in
// the module: EtherTypes, IP protocol numbers, ARP operations, address
// families, pcap link-layer types (DLTs), and the closed set of layer
// kinds the dispatcher in package pktdump transitions between.
//
// It is a leaf package: it imports nothing from the rest of the module
// so that every protocol codec package can depend on it without risk of
// an import cycle, the same role github.com/soypat/lneto/lneto2 plays
// for github.com/soypat/lneto/arp in the teacher library.
package wire

import "strconv"

//go:generate stringer -type=EtherType,IPProto,ARPOp,LayerKind -linecomment -output stringers.go .

// EtherType is the 16-bit field identifying the payload protocol of an
// Ethernet, 802.1Q or MPLS frame.
type EtherType uint16

// IsSize reports whether et is actually an 802.3 payload length rather
// than an EtherType (values <= 1500 are lengths per IEEE 802.3).
func (et EtherType) IsSize() bool { return et <= 1500 }

const (
	EtherTypeIPv4          EtherType = 0x0800 // IPv4
	EtherTypeARP           EtherType = 0x0806 // ARP
	EtherTypeVLAN          EtherType = 0x8100 // 802.1Q VLAN
	EtherTypeIPv6          EtherType = 0x86DD // IPv6
	EtherTypeMPLSUnicast   EtherType = 0x8847 // MPLS unicast
	EtherTypeMPLSMulticast EtherType = 0x8848 // MPLS multicast
	EtherTypeServiceVLAN   EtherType = 0x88a8 // service VLAN (QinQ)
)

// IPProto is the IP protocol number carried in the IPv4 Protocol field
// or the IPv6 Next Header field.
type IPProto uint8

const (
	IPProtoICMP   IPProto = 1   // ICMP
	IPProtoTCP    IPProto = 6   // TCP
	IPProtoUDP    IPProto = 17  // UDP
	IPProtoIPv6   IPProto = 41  // IPv6 encapsulation
	IPProtoGRE    IPProto = 47  // GRE
	IPProtoICMPv6 IPProto = 58  // ICMPv6
	IPProtoSCTP   IPProto = 132 // SCTP
	IPProtoRaw    IPProto = 255 // raw IP payload, no further demux
)

// ARPOp is the ARP operation field: request or reply.
type ARPOp uint16

const (
	ARPRequest ARPOp = 1 // request
	ARPReply   ARPOp = 2 // reply
)

// AddressFamily is the value stored in a BSD loopback (DLT_NULL) header,
// native byte order on the wire. PF_INET6 varies by platform; the build
// tags in family_*.go pick the right constant for the host this module
// targets, the same way the teacher isolates platform differences in
// internet/definitions_go.go / definitions_tinygo.go.
type AddressFamily uint32

const (
	PF_INET AddressFamily = 2 // IPv4
)

// LayerKind is the closed set of dispatcher states from spec §4.1: the
// tag identifying which codec parses the next header, plus the three
// terminal outcomes a decapsulation walk can end in.
type LayerKind uint8

const (
	KindUnknown       LayerKind = iota // unknown
	KindNull                           // null
	KindLinuxCooked                    // linux_cooked
	KindEther                          // ether
	KindIeee8021q                      // ieee802_1q_tag
	KindMPLSUnicast                    // mpls_unicast
	KindMPLSMulticast                  // mpls_multicast
	KindARP                            // arp
	KindIPv4                           // ipv4
	KindIPv6                           // ipv6
	KindGRE                            // gre
	KindTCP                            // tcp
	KindUDP                            // udp
	KindSCTP                           // sctp
	KindICMP                           // icmp
	KindICMPv6                         // icmpv6
	KindRaw                            // raw
	KindUnsupported                    // unsupported
	KindStop                           // stop
)

// EtherTypeKind maps an EtherType (as seen in an Ethernet, 802.1Q or
// MPLS header) to the dispatcher state that parses its payload. Unknown
// EtherTypes map to KindUnsupported, per spec §4.1.
func EtherTypeKind(et EtherType) LayerKind {
	switch et {
	case EtherTypeIPv4:
		return KindIPv4
	case EtherTypeIPv6:
		return KindIPv6
	case EtherTypeARP:
		return KindARP
	case EtherTypeVLAN, EtherTypeServiceVLAN:
		return KindIeee8021q
	case EtherTypeMPLSUnicast:
		return KindMPLSUnicast
	case EtherTypeMPLSMulticast:
		return KindMPLSMulticast
	default:
		return KindUnsupported
	}
}

// ProtoKind maps an IP protocol number to the dispatcher state that
// parses the IP payload, per spec §4.1. Unknown protocol numbers map to
// KindUnsupported; protocol 255 (IPProtoRaw) maps to KindRaw, a payload
// terminal distinct from KindUnsupported.
func ProtoKind(p IPProto) LayerKind {
	switch p {
	case IPProtoICMP:
		return KindICMP
	case IPProtoTCP:
		return KindTCP
	case IPProtoUDP:
		return KindUDP
	case IPProtoGRE:
		return KindGRE
	case IPProtoICMPv6:
		return KindICMPv6
	case IPProtoSCTP:
		return KindSCTP
	case IPProtoRaw:
		return KindRaw
	default:
		return KindUnsupported
	}
}

// FamilyKind maps a BSD loopback address family to the dispatcher state
// that parses its payload, per spec §4.1.
func FamilyKind(af AddressFamily) LayerKind {
	switch af {
	case PF_INET:
		return KindIPv4
	case pfINET6:
		return KindIPv6
	default:
		return KindUnsupported
	}
}

// DLT is a pcap link-layer type code, as assigned by tcpdump.org.
type DLT uint32

// DLT codes required by spec §6.
const (
	DLT_NULL                    DLT = 0
	DLT_EN10MB                  DLT = 1
	DLT_EN3MB                   DLT = 2
	DLT_AX25                    DLT = 3
	DLT_PRONET                  DLT = 4
	DLT_CHAOS                   DLT = 5
	DLT_IEEE802                 DLT = 6
	DLT_ARCNET                  DLT = 7
	DLT_SLIP                    DLT = 8
	DLT_PPP                     DLT = 9
	DLT_FDDI                    DLT = 10
	DLT_ATM_RFC1483             DLT = 11
	DLT_RAW                     DLT = 12
	DLT_SLIP_BSDOS              DLT = 15
	DLT_PPP_BSDOS               DLT = 16
	DLT_PFSYNC                  DLT = 18
	DLT_ATM_CLIP                DLT = 19
	DLT_PPP_SERIAL              DLT = 50
	DLT_C_HDLC                  DLT = 104
	DLT_CHDLC                   DLT = 104
	DLT_IEEE802_11              DLT = 105
	DLT_LOOP                    DLT = 108
	DLT_LINUX_SLL               DLT = 113
	DLT_PFLOG                   DLT = 117
	DLT_IEEE802_11_RADIO        DLT = 127
	DLT_APPLE_IP_OVER_IEEE1394  DLT = 138
	DLT_IEEE802_11_RADIO_AVS    DLT = 163
)

var dltNames = [...]struct {
	code DLT
	name string
}{
	{DLT_NULL, "null"},
	{DLT_EN10MB, "en10mb"},
	{DLT_EN3MB, "en3mb"},
	{DLT_AX25, "ax25"},
	{DLT_PRONET, "pronet"},
	{DLT_CHAOS, "chaos"},
	{DLT_IEEE802, "ieee802"},
	{DLT_ARCNET, "arcnet"},
	{DLT_SLIP, "slip"},
	{DLT_PPP, "ppp"},
	{DLT_FDDI, "fddi"},
	{DLT_ATM_RFC1483, "atm_rfc1483"},
	{DLT_RAW, "raw"},
	{DLT_SLIP_BSDOS, "slip_bsdos"},
	{DLT_PPP_BSDOS, "ppp_bsdos"},
	{DLT_PFSYNC, "pfsync"},
	{DLT_ATM_CLIP, "atm_clip"},
	{DLT_PPP_SERIAL, "ppp_serial"},
	{DLT_C_HDLC, "c_hdlc"},
	{DLT_CHDLC, "chdlc"},
	{DLT_IEEE802_11, "ieee802_11"},
	{DLT_LOOP, "loop"},
	{DLT_LINUX_SLL, "linux_sll"},
	{DLT_PFLOG, "pflog"},
	{DLT_IEEE802_11_RADIO, "ieee802_11_radio"},
	{DLT_APPLE_IP_OVER_IEEE1394, "apple_ip_over_ieee1394"},
	{DLT_IEEE802_11_RADIO_AVS, "ieee802_11_radio_avs"},
}

// DLTByName returns the DLT code registered under name, and false if no
// such name is known. The source this module was distilled from carries
// a "ieee802_22_radio_avs" alias for DLT_IEEE802_11_RADIO_AVS that looks
// like a typo for "ieee802_11_radio_avs" (spec §9, Open Question); this
// table intentionally omits the misspelled alias.
func DLTByName(name string) (DLT, bool) {
	for _, e := range dltNames {
		if e.name == name {
			return e.code, true
		}
	}
	return 0, false
}

// DLTByCode returns the symbolic name registered for code, and false if
// code is not one of the DLTs spec §6 requires.
func DLTByCode(code DLT) (string, bool) {
	for _, e := range dltNames {
		if e.code == code {
			return e.name, true
		}
	}
	return "", false
}

// LinkTypeKind maps a DLT to the dispatcher state that should parse the
// first header of a frame captured with that link type. Unknown DLTs map
// to KindUnsupported, per spec §4.1's "unknown DLT -> unsupported" rule.
func LinkTypeKind(dlt DLT) LayerKind {
	switch dlt {
	case DLT_NULL, DLT_LOOP:
		return KindNull
	case DLT_LINUX_SLL:
		return KindLinuxCooked
	case DLT_EN10MB:
		return KindEther
	case DLT_RAW:
		return KindIPv4 // caller may override to KindIPv6 by inspecting the first nibble.
	default:
		return KindUnsupported
	}
}

// AppendHexPairs appends the colon-separated hex form of addr to dst, in
// the style of ethernet.AppendAddr in the teacher library.
func AppendHexPairs(dst []byte, addr []byte) []byte {
	for i, b := range addr {
		if i != 0 {
			dst = append(dst, ':')
		}
		if b < 16 {
			dst = append(dst, '0')
		}
		dst = strconv.AppendUint(dst, uint64(b), 16)
	}
	return dst
}
