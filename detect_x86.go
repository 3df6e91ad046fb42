//go:build (amd64 || 386) && !purego

package aesctr

import "golang.org/x/sys/cpu"

// hasAESSupport reports whether the CPU provides the AES-NI and SSE2
// instructions the hardware backend relies on. It is consulted at every
// construction and never cached by this package.
func hasAESSupport() bool {
	return cpu.X86.HasAES && cpu.X86.HasSSE2
}
