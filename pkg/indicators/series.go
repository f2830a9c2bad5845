package indicators

import (
	"gonum.org/v1/gonum/mat"
)

// Series is a read-only, ordered sequence of prices. Index 0 is the earliest
// observation.
type Series interface {
	Len() int
	At(i int) float64
}

// Float is the set of element types Slice accepts.
type Float interface {
	~float32 | ~float64
}

// Slice adapts a float slice to Series without copying.
type Slice[F Float] []F

func (s Slice[F]) Len() int          { return len(s) }
func (s Slice[F]) At(i int) float64 { return float64(s[i]) }

// Vector adapts a gonum vector (e.g. *mat.VecDense) to Series.
func Vector(v mat.Vector) Series {
	return vecSeries{v}
}

type vecSeries struct{ v mat.Vector }

func (s vecSeries) Len() int          { return s.v.Len() }
func (s vecSeries) At(i int) float64 { return s.v.AtVec(i) }
