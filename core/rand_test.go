package core

// mockRandSource provides a deterministic random source for testing.
// Exhausted sequences return zero.
type mockRandSource struct {
	ints     []int
	floats   []float64
	intIdx   int
	floatIdx int
}

func (m *mockRandSource) Intn(n int) int {
	if m.intIdx >= len(m.ints) {
		return 0
	}
	val := m.ints[m.intIdx] % n
	m.intIdx++
	return val
}

func (m *mockRandSource) Float64() float64 {
	if m.floatIdx >= len(m.floats) {
		return 0
	}
	val := m.floats[m.floatIdx]
	m.floatIdx++
	return val
}
