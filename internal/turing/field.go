package turing

import "math"

// Field is one species' concentration over a square grid, stored row-major.
type Field struct {
	Size int
	Data []float64
}

func NewField(size int) Field {
	if size < 0 {
		size = 0
	}
	return Field{Size: size, Data: make([]float64, size*size)}
}

func (f Field) At(row, col int) float64     { return f.Data[row*f.Size+col] }
func (f Field) Set(row, col int, v float64) { f.Data[row*f.Size+col] = v }
func (f Field) Shape() (int, int)           { return f.Size, f.Size }

func (f Field) Fill(v float64) {
	for i := range f.Data {
		f.Data[i] = v
	}
}

func (f Field) Clone() Field {
	c := Field{Size: f.Size, Data: make([]float64, len(f.Data))}
	copy(c.Data, f.Data)
	return c
}

// IsValid reports whether every cell is finite.
func (f Field) IsValid() bool {
	for _, v := range f.Data {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func (f Field) Min() float64 {
	if len(f.Data) == 0 {
		return 0
	}
	m := f.Data[0]
	for _, v := range f.Data[1:] {
		m = math.Min(m, v)
	}
	return m
}

func (f Field) Max() float64 {
	if len(f.Data) == 0 {
		return 0
	}
	m := f.Data[0]
	for _, v := range f.Data[1:] {
		m = math.Max(m, v)
	}
	return m
}

func (f Field) Mean() float64 {
	if len(f.Data) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range f.Data {
		sum += v
	}
	return sum / float64(len(f.Data))
}

// Rows returns the field as a slice of row views sharing f's storage.
func (f Field) Rows() [][]float64 {
	rows := make([][]float64, f.Size)
	for r := range rows {
		rows[r] = f.Data[r*f.Size : (r+1)*f.Size]
	}
	return rows
}

func (f Field) sameShape(o Field) bool {
	return f.Size == o.Size && len(f.Data) == len(o.Data)
}
