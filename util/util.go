package util

// RotateIntArray 給定 source, 以 startIndex 當作第一個元素做 Rotations
//   - @param source Given source array
//   - @param startIndex Base index for the rotation
//   - @return rotated source
//
// Example:
//   - Given: []int{0, 1, 2, 3, 4}, startIndex = 2
//   - Output: []int{2, 3, 4, 0, 1}
func RotateIntArray(source []int, startIndex int) []int {
	if len(source) == 0 {
		return source
	}
	startIndex = startIndex % len(source)
	rotated := make([]int, 0, len(source))
	rotated = append(rotated, source[startIndex:]...)
	return append(rotated, source[:startIndex]...)
}

// Sequence returns 0..n-1.
func Sequence(n int) []int {
	seq := make([]int, n)
	for i := range seq {
		seq[i] = i
	}
	return seq
}
