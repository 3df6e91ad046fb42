package aesctr

import cryptorand "crypto/rand"

// mustEntropy fills b from the operating system's secure random source.
// A PRNG must never run unseeded, so failure to obtain entropy aborts the
// process rather than returning a degraded generator.
func mustEntropy(b []byte) {
	if _, err := cryptorand.Read(b); err != nil {
		panic("aesctr: cannot read entropy from OS: " + err.Error())
	}
}
