package checksum

import "testing"

func TestChecksumKnownVector(t *testing.T) {
	// RFC 1071 worked example: 0x0001 0xf203 0xf4f5 0xf6f7, checksum 0x220d.
	b := []byte{0x00, 0x01, 0xf2, 0x03, 0xf4, 0xf5, 0xf6, 0xf7}
	if got := Checksum(b); got != 0x220d {
		t.Fatalf("Checksum = %#x, want 0x220d", got)
	}
}

func TestChecksumOddLength(t *testing.T) {
	a := Checksum([]byte{0x01, 0x02, 0x03})
	b := Checksum([]byte{0x01, 0x02, 0x03, 0x00})
	if a != b {
		t.Fatalf("want zero-padded odd length to match explicit padding: %#x != %#x", a, b)
	}
}

func TestAccumulatorIncrementalMatchesOneShot(t *testing.T) {
	data := []byte{0x12, 0x34, 0x56, 0x78, 0x9a}
	oneShot := Checksum(data)
	var acc Accumulator
	acc.Write(data[:2])
	acc.Write(data[2:])
	if got := acc.Sum16(); got != oneShot {
		t.Fatalf("incremental Write = %#x, want %#x", got, oneShot)
	}
}

func TestMakeSumAndValid(t *testing.T) {
	if got := MakeSum(0x1234); got != 0xFFFF-0x1234 {
		t.Fatalf("MakeSum(0x1234) = %#x, want %#x", got, uint16(0xFFFF-0x1234))
	}
	if !Valid(0xFFFF) {
		t.Fatalf("want Valid(0xFFFF) true")
	}
	if Valid(0x0001) {
		t.Fatalf("want Valid(0x0001) false")
	}
}

func TestIPv4PseudoHeader(t *testing.T) {
	var acc Accumulator
	IPv4PseudoHeader(&acc, [4]byte{10, 0, 0, 1}, [4]byte{10, 0, 0, 2}, 6, 20)
	var want Accumulator
	want.Write([]byte{10, 0, 0, 1, 10, 0, 0, 2})
	want.AddUint16(6)
	want.AddUint16(20)
	if acc.Sum16() != want.Sum16() {
		t.Fatalf("IPv4PseudoHeader mismatch")
	}
}

func TestIPv6PseudoHeader(t *testing.T) {
	var s, d [16]byte
	s[0], d[0] = 1, 2
	var acc Accumulator
	IPv6PseudoHeader(&acc, s, d, 6, 40)
	var want Accumulator
	want.Write(s[:])
	want.Write(d[:])
	want.AddUint32(40)
	want.AddUint16(6)
	if acc.Sum16() != want.Sum16() {
		t.Fatalf("IPv6PseudoHeader mismatch")
	}
}
