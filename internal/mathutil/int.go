package mathutil

// IntMin returns the smaller of two ints.
func IntMin(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// IntMax returns the larger of two ints.
func IntMax(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// MakeEven bumps odd values up to the next even number. Negative odd values
// move toward zero, matching the behaviour of n+1.
func MakeEven(n int) int {
	if n%2 != 0 {
		return n + 1
	}
	return n
}
