//go:build 386 || amd64 || amd64p32 || arm || arm64 || loong64 || mipsle || mips64le || mips64p32le || ppc64le || riscv || riscv64 || wasm

package datalink

import "encoding/binary"

// nativeEndian is the host's native byte order, used only for the
// BSD loopback Family field per spec §9's one native-byte-order
// exception.
var nativeEndian = binary.LittleEndian
