// Package distance provides the pluggable distance functions the index
// treats as an external collaborator, plus ready-made implementations for
// the common metrics.
package distance

import "fmt"

// Func is the distance contract the index is built against: smaller values
// mean closer. Callers may supply any implementation; SquaredL2 and Dot
// below are provided for convenience. SquaredL2 is symmetric, non-negative,
// and zero for identical vectors; Dot is symmetric but can be negative and
// is not zero for identical vectors.
type Func func(a, b []float32) float32

// SquaredL2 computes the squared Euclidean distance between a and b.
// Assumes len(a) == len(b).
func SquaredL2(a, b []float32) float32 {
	var sum float32
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return sum
}

// Dot computes the negative dot product of a and b, so that smaller values
// mean "closer" for the max-inner-product case, consistent with the other
// distance functions.
func Dot(a, b []float32) float32 {
	var sum float32
	for i := range a {
		sum += a[i] * b[i]
	}
	return -sum
}

// Metric names a built-in distance function for configuration purposes
// (e.g. parsed from a config file or CLI flag).
type Metric int

const (
	MetricL2 Metric = iota
	MetricDot
)

func (m Metric) String() string {
	switch m {
	case MetricL2:
		return "L2"
	case MetricDot:
		return "Dot"
	default:
		return fmt.Sprintf("Unknown(%d)", m)
	}
}

// Provider returns the built-in distance function for the given metric.
func Provider(m Metric) (Func, error) {
	switch m {
	case MetricL2:
		return SquaredL2, nil
	case MetricDot:
		return Dot, nil
	default:
		return nil, fmt.Errorf("distance: unsupported metric %v", m)
	}
}
