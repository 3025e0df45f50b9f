package d2

import (
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r2"
)

// Transform is a 3x3 matrix stored in row major order. When used as a 2D
// homogeneous transform the last row is expected to be (0, 0, 1).
type Transform struct {
	data [3 * 3]float64
}

// NewTransform returns a Transform populated with the row major values in data.
// If data is nil the zero matrix is returned.
func NewTransform(data []float64) Transform {
	if data == nil {
		return Transform{}
	}
	if len(data) != 9 {
		panic("Transform is initialized with 9 values")
	}
	t := Transform{}
	copy(t.data[:], data)
	return t
}

// Identity returns the 3x3 identity matrix.
func Identity() Transform {
	return Transform{data: [9]float64{1, 0, 0, 0, 1, 0, 0, 0, 1}}
}

func (t Transform) At(i, j int) float64 {
	return t.data[i*3+j]
}

func (t *Transform) Set(i, j int, v float64) {
	t.data[i*3+j] = v
}

// Data returns a copy of the row major elements of t.
func (t Transform) Data() []float64 {
	d := make([]float64, 9)
	copy(d, t.data[:])
	return d
}

// Mul multiplies 3x3 matrices.
func (a Transform) Mul(b Transform) Transform {
	m := Transform{}
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			m.Set(i, j, a.At(i, 0)*b.At(0, j)+a.At(i, 1)*b.At(1, j)+a.At(i, 2)*b.At(2, j))
		}
	}
	return m
}

// ApplyPos applies t to b as a homogeneous 2D position.
func (t Transform) ApplyPos(b r2.Vec) r2.Vec {
	return r2.Vec{
		X: t.At(0, 0)*b.X + t.At(0, 1)*b.Y + t.At(0, 2),
		Y: t.At(1, 0)*b.X + t.At(1, 1)*b.Y + t.At(1, 2),
	}
}

// Dense returns t as a gonum matrix.
func (t Transform) Dense() *mat.Dense {
	return mat.NewDense(3, 3, t.Data())
}

// Determinant returns the determinant of the 3x3 matrix.
func (t Transform) Determinant() float64 {
	return mat.Det(t.Dense())
}

// Inverse returns the inverse of t. It returns an error if t is singular
// or too ill conditioned to invert.
func (t Transform) Inverse() (Transform, error) {
	var inv mat.Dense
	if err := inv.Inverse(t.Dense()); err != nil {
		return Transform{}, err
	}
	return NewTransform(inv.RawMatrix().Data), nil
}
