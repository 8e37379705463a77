package generator

import "github.com/danielpatrickdp/lattice-stage/internal/catalog"

// #region matrix

// Matrix is a 4×4 real matrix in row-major order.
type Matrix [4][4]float64

// Transpose returns mᵗ.
func (m Matrix) Transpose() Matrix {
	var t Matrix
	for i := range m {
		for j := range m[i] {
			t[j][i] = m[i][j]
		}
	}
	return t
}

// Mul returns m·n.
func (m Matrix) Mul(n Matrix) Matrix {
	var out Matrix
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			var sum float64
			for k := 0; k < 4; k++ {
				sum += m[i][k] * n[k][j]
			}
			out[i][j] = sum
		}
	}
	return out
}

// #endregion matrix

// #region lookup

// LookupFunc resolves a category id to its catalog definition. catalog.Lookup satisfies it.
type LookupFunc func(id int) (catalog.Definition, bool)

// Recorder observes generation outcomes. err is nil on success.
type Recorder interface {
	ObserveGeneration(id int, err error)
}

// #endregion lookup
