package ops

// Buffers handled here are row-major: row r of a buffer with `width`
// columns lives at src[r*width : (r+1)*width].

// TakeRows gathers whole rows in the given order into a new buffer.
func TakeRows[T any](src []T, width int, rows []int) []T {
	out := make([]T, len(rows)*width)

	for i, r := range rows {
		copy(out[i*width:(i+1)*width], src[r*width:(r+1)*width])
	}

	return out
}

// TakeColumns gathers columns from every row. A column index of -1
// produces fill.
func TakeColumns[T any](src []T, nrows, width int, cols []int, fill T) []T {
	newWidth := len(cols)
	out := make([]T, nrows*newWidth)

	for r := 0; r < nrows; r++ {
		srcRow := src[r*width : (r+1)*width]
		dstRow := out[r*newWidth : (r+1)*newWidth]

		n := len(cols)
		i := 0

		for ; i+3 < n; i += 4 {
			dstRow[i+0] = pick(srcRow, cols[i+0], fill)
			dstRow[i+1] = pick(srcRow, cols[i+1], fill)
			dstRow[i+2] = pick(srcRow, cols[i+2], fill)
			dstRow[i+3] = pick(srcRow, cols[i+3], fill)
		}

		// tail
		for ; i < n; i++ {
			dstRow[i] = pick(srcRow, cols[i], fill)
		}
	}

	return out
}

func pick[T any](row []T, col int, fill T) T {
	if col < 0 {
		return fill
	}
	return row[col]
}

// SliceColumns copies columns [start, end) of every row.
func SliceColumns[T any](src []T, nrows, width, start, end int) []T {
	newWidth := end - start
	out := make([]T, nrows*newWidth)

	for r := 0; r < nrows; r++ {
		copy(out[r*newWidth:(r+1)*newWidth], src[r*width+start:r*width+end])
	}

	return out
}

// Scatter copies each row i of src into row dst[i] of out. out must have
// room for the highest destination row.
func Scatter[T any](out, src []T, width int, dst []int) {
	for i, d := range dst {
		copy(out[d*width:(d+1)*width], src[i*width:(i+1)*width])
	}
}
