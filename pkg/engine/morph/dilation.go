// Package morph implements grey-level morphology helpers over 2D fields.
package morph

// KernelOffsets returns how far a k×k kernel reaches before (left) and after
// (right, exclusive) its anchor cell. Odd kernels are centred; even kernels
// lean towards the anchor's lower indices.
func KernelOffsets(ksize int) (left, right int) {
	if ksize%2 == 0 {
		return ksize / 2, ksize / 2
	}
	return ksize / 2, ksize/2 + 1
}

// Dilate grows the blocked regions of field, where blocked means the zero
// value of T. Every anchor cell that is blocked in the source blanks the
// window [row-left, row+right) × [col-left, col+right) of the result. Anchors
// closer than the kernel reach to an edge are skipped, so nothing wraps and
// no padding is applied.
//
// The input is never modified. A ksize of 1 or less, or a ragged field,
// yields an unmodified copy.
func Dilate[T comparable](field [][]T, ksize int) [][]T {
	out := clone(field)
	if ksize <= 1 || !rectangular(field) {
		return out
	}

	var blocked T
	left, right := KernelOffsets(ksize)
	rows, cols := len(field), len(field[0])

	for row := left; row < rows-right; row++ {
		for col := left; col < cols-right; col++ {
			if field[row][col] != blocked {
				continue
			}
			for r := row - left; r < row+right; r++ {
				for c := col - left; c < col+right; c++ {
					out[r][c] = blocked
				}
			}
		}
	}
	return out
}

func clone[T any](field [][]T) [][]T {
	out := make([][]T, len(field))
	for i, row := range field {
		out[i] = append([]T(nil), row...)
	}
	return out
}

func rectangular[T any](field [][]T) bool {
	if len(field) == 0 || len(field[0]) == 0 {
		return false
	}
	for _, row := range field {
		if len(row) != len(field[0]) {
			return false
		}
	}
	return true
}
