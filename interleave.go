package main

// interleaveMap returns the logical sector index placed in each physical
// slot: slot i receives sector (i*k) mod n. The geometry resolver rejects
// factors with gcd(k, n) != 1, so the mapping is always a bijection over
// [0, n).
func interleaveMap(n, k int) []int {
	m := make([]int, n)
	for i := range m {
		m[i] = i * k % n
	}
	return m
}
