//go:build netlib

package model

import (
	"gonum.org/v1/gonum/blas/blas64"
	"gonum.org/v1/netlib/blas/netlib"
)

// Build with `-tags netlib` to route the embedding matrix products through
// a system BLAS instead of gonum's pure-Go kernels.
func init() {
	blas64.Use(netlib.Implementation{})
}
