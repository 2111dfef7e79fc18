package icmp

import (
	"bytes"
	"testing"
)

func TestParseEmitRoundTripEcho(t *testing.T) {
	h := Header{Type: TypeEcho, Code: 0, Body: Echo{ID: 42, Seq: 7}}
	buf := h.Emit(nil)
	buf = append(buf, "payload"...)
	got, rest, err := Parse(buf)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if got.Type != TypeEcho {
		t.Fatalf("want TypeEcho, got %v", got.Type)
	}
	echo, ok := got.Body.(Echo)
	if !ok || echo.ID != 42 || echo.Seq != 7 {
		t.Fatalf("want Echo{42,7}, got %+v", got.Body)
	}
	if string(rest) != "payload" {
		t.Fatalf("want trailing payload, got %q", rest)
	}
}

func TestParseEmitRoundTripTimestampIsTerminal(t *testing.T) {
	h := Header{Type: TypeTimestamp, Body: Timestamp{ID: 1, Seq: 2, Originate: 3, Receive: 4, Transmit: 5}}
	buf := h.Emit(nil)
	buf = append(buf, "trailing"...) // should be ignored: Timestamp is terminal
	got, rest, err := Parse(buf)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(rest) != 0 {
		t.Fatalf("want no rest for terminal Timestamp body, got %q", rest)
	}
	ts, ok := got.Body.(Timestamp)
	if !ok || ts.Transmit != 5 {
		t.Fatalf("want Timestamp with Transmit=5, got %+v", got.Body)
	}
}

func TestParseUnknownTypeFallsBackToOpaque(t *testing.T) {
	buf := []byte{200, 0, 0, 0, 0xaa, 0xbb, 0xcc, 0xdd}
	got, rest, err := Parse(buf)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	op, ok := got.Body.(Opaque)
	if !ok || op.Un != 0xaabbccdd {
		t.Fatalf("want Opaque{0xaabbccdd}, got %+v", got.Body)
	}
	if len(rest) != 0 {
		t.Fatalf("want no trailing bytes, got %q", rest)
	}
}

func TestParseShort(t *testing.T) {
	_, _, err := Parse([]byte{8, 0, 0})
	if err != ErrShort {
		t.Fatalf("want ErrShort, got %v", err)
	}
}

func TestParseRedirect(t *testing.T) {
	h := Header{Type: TypeRedirect, Body: Redirect{Gateway: [4]byte{10, 0, 0, 1}}}
	buf := h.Emit(nil)
	got, _, err := Parse(buf)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	rd, ok := got.Body.(Redirect)
	if !ok || !bytes.Equal(rd.Gateway[:], []byte{10, 0, 0, 1}) {
		t.Fatalf("want Redirect gateway 10.0.0.1, got %+v", got.Body)
	}
}
