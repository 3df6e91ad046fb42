package aesctr

import "testing"

func BenchmarkAes128Ctr64Next(b *testing.B) {
	g := NewAes128Ctr64FromEntropy()
	defer g.Close()
	b.SetBytes(16)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		g.Next()
	}
}

func BenchmarkAes256Ctr128Next(b *testing.B) {
	g := NewAes256Ctr128FromEntropy()
	defer g.Close()
	b.SetBytes(16)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		g.Next()
	}
}

func BenchmarkUint64(b *testing.B) {
	g := NewAes128Ctr64FromEntropy()
	defer g.Close()
	b.SetBytes(8)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		g.Uint64()
	}
}

func BenchmarkUint64N(b *testing.B) {
	r := NewRand(NewAes128Ctr64FromEntropy())
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		r.Uint64N(6e9)
	}
}

func BenchmarkFillBytes(b *testing.B) {
	r := NewRand(NewAes256Ctr64FromEntropy())
	buf := make([]byte, 4096)
	b.SetBytes(int64(len(buf)))
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		r.FillBytes(buf)
	}
}

func BenchmarkGlobalUint64(b *testing.B) {
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Uint64()
	}
}
