package queue

const (
	bitSize       = 32 << (^uint(0) >> 63)
	maxIntHeadBit = 1 << (bitSize - 2)

	// minGrowCap is the smallest capacity allocated when a queue grows.
	minGrowCap = 8
)

// ceilPow2 returns n if it is a power-of-two, otherwise the next-highest power-of-two.
func ceilPow2(n int) int {
	if n&maxIntHeadBit != 0 && n > maxIntHeadBit {
		panic("argument is too large")
	}

	if n <= 2 {
		return 2
	}

	n--
	n |= n >> 1
	n |= n >> 2
	n |= n >> 4
	n |= n >> 8
	n |= n >> 16
	n |= n >> 32
	n++

	return n
}

// nextCapacity picks the storage size for a growing queue: at least double
// the current capacity, never below the requested minimum, rounded up to a
// power of two. Doubling amortizes reallocation cost to O(1) per enqueue.
func nextCapacity(oldCap, minCap int) int {
	newCap := oldCap * 2
	if newCap < minCap {
		newCap = minCap
	}
	if newCap < minGrowCap {
		newCap = minGrowCap
	}
	return ceilPow2(newCap)
}
