package optim

// Projector receives the variable vector after every Step that moved it,
// so an external shape representation can be updated for display.
// paths holds the problem's variable bindings (nil if none were given).
// Implementations must not retain or modify x.
type Projector interface {
	Project(paths []string, x []float64)
}

// ProjectorFunc adapts a function to the Projector interface.
type ProjectorFunc func(paths []string, x []float64)

// Project calls f(paths, x).
func (f ProjectorFunc) Project(paths []string, x []float64) {
	f(paths, x)
}

// Bindings maps each bound path to its value in x. Variables without a
// path are skipped.
func Bindings(paths []string, x []float64) map[string]float64 {
	out := make(map[string]float64, len(paths))
	for i, p := range paths {
		if p == "" || i >= len(x) {
			continue
		}
		out[p] = x[i]
	}
	return out
}
