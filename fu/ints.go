package fu

// Fnzi returns the first non-zero int
func Fnzi(a ...int) int {
	for _, x := range a {
		if x != 0 {
			return x
		}
	}
	return 0
}

// Fnzd returns the first non-zero float64
func Fnzd(a ...float64) float64 {
	for _, x := range a {
		if x != 0 {
			return x
		}
	}
	return 0
}
