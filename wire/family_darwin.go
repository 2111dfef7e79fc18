//go:build darwin

package wire

// pfINET6 is the platform's PF_INET6 value used by DLT_NULL/DLT_LOOP
// headers, which store the address family in host byte order (spec §6).
const pfINET6 AddressFamily = 30
