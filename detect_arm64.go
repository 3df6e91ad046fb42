//go:build arm64 && !purego

package aesctr

import "golang.org/x/sys/cpu"

// hasAESSupport reports whether the CPU provides the ARMv8 AES instructions
// the hardware backend relies on. It is consulted at every construction and
// never cached by this package.
func hasAESSupport() bool {
	return cpu.ARM64.HasAES
}
