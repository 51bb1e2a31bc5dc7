package nn

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

func glorotBound(fanIn, fanOut int) float64 {
	return math.Sqrt(6.0 / float64(fanIn+fanOut))
}

// matVec computes W*x into a fresh slice.
func matVec(w *mat.Dense, x []float64) []float64 {
	rows, _ := w.Dims()
	out := mat.NewVecDense(rows, nil)
	out.MulVec(w, mat.NewVecDense(len(x), x))
	return out.RawVector().Data
}

// addMatTVec accumulates Wᵀ*u into dst.
func addMatTVec(dst []float64, w *mat.Dense, u []float64) {
	tmp := mat.NewVecDense(len(dst), nil)
	tmp.MulVec(w.T(), mat.NewVecDense(len(u), u))
	for i := range dst {
		dst[i] += tmp.AtVec(i)
	}
}

// addOuter accumulates u*vᵀ into dst.
func addOuter(dst *mat.Dense, u, v []float64) {
	raw := dst.RawMatrix()
	for i, ui := range u {
		if ui == 0 {
			continue
		}
		row := raw.Data[i*raw.Stride : i*raw.Stride+raw.Cols]
		for j, vj := range v {
			row[j] += ui * vj
		}
	}
}

// addCol accumulates u into the single column of dst.
func addCol(dst *mat.Dense, u []float64) {
	for i, ui := range u {
		dst.Set(i, 0, dst.At(i, 0)+ui)
	}
}

// col reads the single column of an (n, 1) matrix as a slice view.
func col(m *mat.Dense) []float64 {
	return m.RawMatrix().Data
}

func addInPlace(dst []float64, srcs ...[]float64) {
	for _, src := range srcs {
		for i, v := range src {
			dst[i] += v
		}
	}
}

func sigmoidInPlace(v []float64) {
	for i, x := range v {
		v[i] = 1.0 / (1.0 + math.Exp(-x))
	}
}

func tanhInPlace(v []float64) {
	for i, x := range v {
		v[i] = math.Tanh(x)
	}
}

// softmax converts logits to a probability distribution, shifting by
// the max for overflow safety.
func softmax(logits []float64) []float64 {
	max := logits[0]
	for _, v := range logits[1:] {
		if v > max {
			max = v
		}
	}
	out := make([]float64, len(logits))
	sum := 0.0
	for i, v := range logits {
		e := math.Exp(v - max)
		out[i] = e
		sum += e
	}
	for i := range out {
		out[i] /= sum
	}
	return out
}
