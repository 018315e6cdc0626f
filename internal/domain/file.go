package domain

import "math"

type File struct {
	Name         string    `json:"name"`
	Size         float64   `json:"size"`
	BlockIndices []int     `json:"block_indices"`
	Colors       ColorPair `json:"colors"`
}

func (f *File) Copy() File {
	indices := make([]int, len(f.BlockIndices))
	copy(indices, f.BlockIndices)
	return File{
		Name:         f.Name,
		Size:         f.Size,
		BlockIndices: indices,
		Colors:       f.Colors,
	}
}

// FirstBlock returns the lowest occupied block index, or math.MaxInt when the
// file holds no block.
func (f *File) FirstBlock() int {
	first := math.MaxInt
	for _, idx := range f.BlockIndices {
		if idx < first {
			first = idx
		}
	}
	return first
}

func validSize(size float64) bool {
	return size > 0 && !math.IsInf(size, 0) && !math.IsNaN(size)
}
