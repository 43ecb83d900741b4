package internal

import "math/big"

// ZeroPad pads the byte slice to the specified length by prepending zeros.
// If the slice is already longer than or equal to the target length,
// it returns the last 'length' bytes.
func ZeroPad(b []byte, length int) []byte {
	if len(b) >= length {
		return b[len(b)-length:]
	}

	result := make([]byte, length)
	copy(result[length-len(b):], b)
	return result
}

// PadInt returns n as a big-endian byte slice of exactly length bytes.
// n must be non-negative and fit in length bytes.
func PadInt(n *big.Int, length int) []byte {
	return n.FillBytes(make([]byte, length))
}

// Wipe overwrites b with zeros.
func Wipe(b []byte) {
	clear(b)
}
