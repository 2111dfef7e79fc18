//go:build !darwin

package wire

// pfINET6 is the platform's PF_INET6 value used by DLT_NULL/DLT_LOOP
// headers, which store the address family in host byte order (spec §6).
// 10 is the Linux value; it is also used as the default for platforms
// this module has no specific constant for.
const pfINET6 AddressFamily = 10
