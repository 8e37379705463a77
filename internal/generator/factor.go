package generator

import (
	"fmt"
	"math"

	"github.com/danielpatrickdp/lattice-stage/internal/geometry"
)

// negativeResidual is the floor below which a diagonal residual is treated as a real
// negative value rather than rounding noise.
const negativeResidual = -1e-9

// #region gram

// GramMatrix builds the inner-product matrix for l and a. Entry (i, j) is
// lᵢ·lⱼ·cos(angle spanned by i and j); the diagonal is lᵢ².
func GramMatrix(l geometry.Lengths, a geometry.Angles) Matrix {
	var g Matrix
	for i := 0; i < 4; i++ {
		g[i][i] = l.At(i) * l.At(i)
		for j := i + 1; j < 4; j++ {
			v := l.At(i) * l.At(j) * geometry.CosDeg(a.Between(i, j))
			g[i][j], g[j][i] = v, v
		}
	}
	return g
}

// #endregion gram

// #region cholesky

// Cholesky returns the lower-triangular L with L·Lᵗ = g. Diagonal residuals are
// clamped at zero; one below -1e-9 is ErrGeometry. Entries below a zero pivot are 0.
func Cholesky(g Matrix) (Matrix, error) {
	var l Matrix
	for i := 0; i < 4; i++ {
		for j := 0; j <= i; j++ {
			var sum float64
			for k := 0; k < j; k++ {
				sum += l[i][k] * l[j][k]
			}
			if i == j {
				residual := g[i][i] - sum
				if residual < negativeResidual {
					return Matrix{}, fmt.Errorf("%w: not positive semidefinite (row %d residual %.3g)", ErrGeometry, i, residual)
				}
				l[i][i] = math.Sqrt(math.Max(0, residual))
				continue
			}
			if l[j][j] == 0 {
				l[i][j] = 0
				continue
			}
			l[i][j] = (g[i][j] - sum) / l[j][j]
		}
	}
	return l, nil
}

// Rows returns the rows of m as a vector set.
func Rows(m Matrix) geometry.Set {
	var s geometry.Set
	for i := range m {
		s[i] = geometry.Vector4(m[i])
	}
	return s
}

// #endregion cholesky
