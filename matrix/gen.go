package matrix

// ConstGen returns a generator that always yields c.
func ConstGen(c int) func() int {
	return func() int {
		return c
	}
}

// IncreasingGen returns a generator yielding start, start+1, ...
func IncreasingGen(start int) func() int {
	next := start
	return func() int {
		v := next
		next++
		return v
	}
}

// Fill builds an n x n matrix in row-major order from gen.
func Fill(n int, gen func() int) Matrix {
	m := New(n)
	for i := range m {
		for j := range m[i] {
			m[i][j] = gen()
		}
	}

	return m
}

// Identity returns the n x n identity matrix.
func Identity(n int) Matrix {
	m := New(n)
	for i := range m {
		m[i][i] = 1
	}

	return m
}
