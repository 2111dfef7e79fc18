// Command pktdump-tap opens a live interface or a .pcap file, feeds
// every captured frame through the pktdump dispatcher, and prints the
// resulting layer stack. It is a thin collaborator over the capture
// library, not part of the codec itself: the codec stays pure and
// pcap/syscall I/O lives only here.
package main

import (
	"flag"
	"fmt"
	"log"
	"net"
	"os"
	"time"

	"github.com/google/gopacket"
	"github.com/google/gopacket/pcap"

	"github.com/soypat/pktdump"
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

func main() {
	err := run()
	if err != nil {
		log.Fatalln("pktdump-tap:", err)
	}
}

func run() error {
	var (
		iface   = flag.String("i", "", "network interface to capture live; mutually exclusive with -r")
		file    = flag.String("r", "", "read packets from a .pcap file instead of a live interface")
		snaplen = flag.Int("s", 262144, "snapshot length in bytes")
		count   = flag.Int("c", 0, "stop after this many packets, 0 means unlimited")
	)
	flag.Parse()

	if *iface == "" && *file == "" {
		devs, err := pcap.FindAllDevs()
		if err != nil {
			return fmt.Errorf("no -i or -r given and no devices could be listed: %w", err)
		}
		for _, d := range devs {
			if len(d.Addresses) > 0 {
				*iface = d.Name
				break
			}
		}
		if *iface == "" {
			return fmt.Errorf("no -i or -r given and no suitable interface was found")
		}
		log.Printf("no interface given, using %s", *iface)
	}

	var handle *pcap.Handle
	var err error
	if *file != "" {
		handle, err = pcap.OpenOffline(*file)
	} else {
		handle, err = pcap.OpenLive(*iface, int32(*snaplen), true, pcap.BlockForever)
	}
	if err != nil {
		return err
	}
	defer handle.Close()

	dlt := wire.DLT(handle.LinkType())
	if name, ok := wire.DLTByCode(dlt); ok {
		log.Printf("capturing as DLT %s (%d)", name, dlt)
	} else {
		log.Printf("capturing as unrecognized DLT %d", dlt)
	}

	src := gopacket.NewPacketSource(handle, handle.LinkType())
	n := 0
	for raw := range src.Packets() {
		pkt := pktdump.DecapsulateDLT(dlt, raw.Data())
		fmt.Fprintf(os.Stdout, "--- packet %d (%d bytes) at %s\n", n, len(raw.Data()), raw.Metadata().Timestamp.Format(time.RFC3339Nano))
		printPacket(os.Stdout, pkt)
		n++
		if *count > 0 && n >= *count {
			break
		}
	}
	return nil
}

func printPacket(w *os.File, pkt pktdump.Packet) {
	for _, layer := range pkt {
		switch h := layer.(type) {
		case *ethernet.Header:
			fmt.Fprintf(w, "  ethernet %s -> %s type=%#04x\n", net.HardwareAddr(h.Shost[:]), net.HardwareAddr(h.Dhost[:]), h.Type)
		case *ethernet.VLANTag:
			fmt.Fprintf(w, "  802.1q vid=%d pcp=%d\n", h.VID, h.PCP)
		case *mpls.Header:
			fmt.Fprintf(w, "  mpls mode=%v entries=%d\n", h.Mode, len(h.Stack))
		case *arp.Header:
			fmt.Fprintf(w, "  arp op=%d %s -> %s\n", h.OP, net.IP(h.SIP[:]), net.IP(h.TIP[:]))
		case *ipv4.Header:
			fmt.Fprintf(w, "  ipv4 %s -> %s proto=%d len=%d\n", net.IP(h.SAddr[:]), net.IP(h.DAddr[:]), h.Proto, h.Len)
		case *ipv6.Header:
			fmt.Fprintf(w, "  ipv6 %s -> %s next=%d len=%d\n", net.IP(h.SAddr[:]), net.IP(h.DAddr[:]), h.Next, h.Len)
		case *gre.Header:
			fmt.Fprintf(w, "  gre type=%#04x checksum-present=%v\n", h.Type, h.C)
		case *tcp.Header:
			fmt.Fprintf(w, "  tcp %d -> %d flags=%s seq=%d ack=%d win=%d\n", h.Sport, h.Dport, h.Flags, h.Seq, h.Ack, h.Win)
		case *udp.Header:
			fmt.Fprintf(w, "  udp %d -> %d len=%d\n", h.Sport, h.Dport, h.Ulen)
		case *sctp.Header:
			fmt.Fprintf(w, "  sctp %d -> %d chunks=%d\n", h.Sport, h.Dport, len(h.Chunks))
		case *icmp.Header:
			fmt.Fprintf(w, "  icmp type=%d code=%d\n", h.Type, h.Code)
		case *icmpv6.Header:
			fmt.Fprintf(w, "  icmpv6 type=%d code=%d\n", h.Type, h.Code)
		case *datalink.NullHeader:
			fmt.Fprintf(w, "  loopback family=%d\n", h.Family)
		case *datalink.SLLHeader:
			fmt.Fprintf(w, "  linux-sll arphrd=%d proto=%#04x\n", h.ARPHRDType, h.Pro)
		case pktdump.Payload:
			fmt.Fprintf(w, "  payload (%d bytes)\n", len(h))
		case pktdump.Unsupported:
			fmt.Fprintf(w, "  unsupported (%d bytes)\n", len(h))
		case pktdump.Truncated:
			fmt.Fprintf(w, "  truncated (%d bytes)\n", len(h))
		default:
			fmt.Fprintf(w, "  %T\n", h)
		}
	}
}
