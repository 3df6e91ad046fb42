//go:build purego || !(amd64 || 386 || arm64)

package aesctr

// hasAESSupport reports false: either the "purego" tag forces the software
// path, or the target architecture has no wired AES instruction detection
// (riscv64 vector-crypto support is not yet exposed by the runtime).
func hasAESSupport() bool {
	return false
}
