// Package util holds small helpers shared across the module.
package util

// CeilDiv returns a/b rounded toward positive infinity. b must be positive.
func CeilDiv(a, b int) int {
	return (a + b - 1) / b
}
