package ordmap

import "testing"

func BenchmarkInsert(b *testing.B) {
	m := New[int, int]()
	for i := 0; i < b.N; i++ {
		m.Insert(i, i)
	}
}

func BenchmarkFind(b *testing.B) {
	m := New[int, int]()
	for i := 0; i < 1000; i++ {
		m.Insert(i, i)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		m.Find(i % 1000)
	}
}
