package program

// ExpectedLength returns the number of instructions Generate emits for an
// n x n multiplication with vector width w. With tileRows the compute phase
// visits one row per row tile instead of every row.
func ExpectedLength(n, w int, tileRows bool) int {
	tiles := (n + w - 1) / w

	computeRows := n
	if tileRows {
		computeRows = tiles
	}

	lut := 2
	load := 2 * n * tiles
	compute := computeRows * tiles * (2 + 4*tiles)

	return lut + load + compute + 1
}
