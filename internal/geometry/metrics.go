package geometry

// #region lengths

// Lengths are the magnitudes of the four input vectors.
type Lengths struct {
	A float64 `json:"a" yaml:"a"`
	B float64 `json:"b" yaml:"b"`
	C float64 `json:"c" yaml:"c"`
	D float64 `json:"d" yaml:"d"`
}

// At returns the length of vector i (0=a … 3=d).
func (l Lengths) At(i int) float64 {
	switch i {
	case 0:
		return l.A
	case 1:
		return l.B
	case 2:
		return l.C
	default:
		return l.D
	}
}

// #endregion lengths

// #region angles

// Angles are the six pairwise angles in degrees, named after the pair they span:
//
//	α=(b,c) β=(a,c) γ=(a,b) δ=(a,d) ε=(b,d) ζ=(c,d)
type Angles struct {
	Alpha   float64 `json:"alpha" yaml:"alpha"`
	Beta    float64 `json:"beta" yaml:"beta"`
	Gamma   float64 `json:"gamma" yaml:"gamma"`
	Delta   float64 `json:"delta" yaml:"delta"`
	Epsilon float64 `json:"epsilon" yaml:"epsilon"`
	Zeta    float64 `json:"zeta" yaml:"zeta"`
}

// AllAngles returns a with every angle set to deg.
func AllAngles(deg float64) Angles {
	return Angles{Alpha: deg, Beta: deg, Gamma: deg, Delta: deg, Epsilon: deg, Zeta: deg}
}

// Slice returns the angles in α, β, γ, δ, ε, ζ order.
func (a Angles) Slice() [6]float64 {
	return [6]float64{a.Alpha, a.Beta, a.Gamma, a.Delta, a.Epsilon, a.Zeta}
}

// Between returns the angle spanned by vectors i and j (0=a … 3=d, order-insensitive).
// The diagonal (i == j) is 0.
func (a Angles) Between(i, j int) float64 {
	if i > j {
		i, j = j, i
	}
	switch [2]int{i, j} {
	case [2]int{0, 1}:
		return a.Gamma
	case [2]int{0, 2}:
		return a.Beta
	case [2]int{0, 3}:
		return a.Delta
	case [2]int{1, 2}:
		return a.Alpha
	case [2]int{1, 3}:
		return a.Epsilon
	case [2]int{2, 3}:
		return a.Zeta
	}
	return 0
}

// #endregion angles

// #region metrics

// Metrics bundles lengths and angles computed once per classification call.
type Metrics struct {
	Lengths Lengths `json:"lengths" yaml:"lengths"`
	Angles  Angles  `json:"angles" yaml:"angles"`
}

// Measure computes lengths and all six angles for a, b, c, d.
func Measure(s Set) Metrics {
	a, b, c, d := s[0], s[1], s[2], s[3]
	return Metrics{
		Lengths: Lengths{A: Magnitude(a), B: Magnitude(b), C: Magnitude(c), D: Magnitude(d)},
		Angles: Angles{
			Alpha:   AngleBetween(b, c),
			Beta:    AngleBetween(a, c),
			Gamma:   AngleBetween(a, b),
			Delta:   AngleBetween(a, d),
			Epsilon: AngleBetween(b, d),
			Zeta:    AngleBetween(c, d),
		},
	}
}

// #endregion metrics
