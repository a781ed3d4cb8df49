package assessment

// intner is the slice of *rand.Rand the sampler needs.
type intner interface {
	IntN(n int) int
}

// Sample draws n distinct elements of pool uniformly at random without
// replacement, using a partial Fisher-Yates shuffle over a copy of pool.
// When n >= len(pool) the whole pool is returned in shuffled order.
// pool is never modified.
func Sample[T any](rng intner, pool []T, n int) []T {
	if n <= 0 || len(pool) == 0 {
		return []T{}
	}
	buf := append([]T(nil), pool...)
	if n > len(buf) {
		n = len(buf)
	}
	for i := 0; i < n; i++ {
		j := i + rng.IntN(len(buf)-i)
		buf[i], buf[j] = buf[j], buf[i]
	}
	return buf[:n]
}
