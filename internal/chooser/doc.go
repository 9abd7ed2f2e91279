// Package chooser assumes the supplied distance.Func is non-negative (as
// SquaredL2 is); Gonzales and k-means++ weight candidates by raw distance
// values and treat zero as "indistinguishable from an existing center".
package chooser
