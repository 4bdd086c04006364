package fu

import "sort"

func Mean(a []float64) float64 {
	var c float64
	for _, x := range a {
		c += x
	}
	return c / float64(len(a))
}

func Mse(a, b []float64) float64 {
	var c float64
	for i, x := range a {
		q := x - b[i]
		c += q * q
	}
	return c / float64(len(a))
}

// Median of a; the mean of both middle values when len(a) is even
func Median(a []float64) float64 {
	b := append([]float64{}, a...)
	sort.Float64s(b)
	n := len(b)
	if n%2 == 1 {
		return b[n/2]
	}
	return (b[n/2-1] + b[n/2]) / 2
}

func Flatnr(a [][]float64) []float64 {
	n := 0
	for _, x := range a {
		n += len(x)
	}
	r := make([]float64, n)
	i := 0
	for _, x := range a {
		copy(r[i:i+len(x)], x)
		i += len(x)
	}
	return r
}
