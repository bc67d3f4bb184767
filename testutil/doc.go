// Package testutil provides testing utilities for tfrec.
//
// This package is intended for use in tests and benchmarks only.
//
//	rng := testutil.NewRNG(seed)
//	genes := rng.GaussianMatrix(85, 2128)
//	tokens := rng.TokenMatrix(85, 155, 10)
//	store := testutil.LocalStore(t)
package testutil
