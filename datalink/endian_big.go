//go:build armbe || arm64be || mips || mips64 || mips64p32 || ppc64 || s390 || s390x || sparc || sparc64

package datalink

import "encoding/binary"

// nativeEndian is the host's native byte order, used only for the
// BSD loopback Family field per spec §9's one native-byte-order
// exception.
var nativeEndian = binary.BigEndian
