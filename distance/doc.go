// Package distance provides the pure-Go distance metrics shipped alongside
// the index for convenience.
//
// # Supported Metrics
//
//   - MetricL2: squared Euclidean distance (default)
//   - MetricDot: negative dot product, for max-inner-product search
//
// # Usage
//
//	dist := distance.SquaredL2(a, b)
package distance
