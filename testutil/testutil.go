package testutil

import (
	"math/rand"
	"sync"
	"testing"

	"github.com/hupe1980/tfrec/blobstore"
)

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Seed(r.seed)
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// Float32 returns, as a float32, a pseudo-random number in [0.0,1.0).
func (r *RNG) Float32() float32 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Float32()
}

// FillGaussian fills dst with values from a standard normal distribution.
// Locks only once per call (preferred over calling NormFloat64 in a loop).
func (r *RNG) FillGaussian(dst []float32) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range dst {
		dst[i] = float32(r.rand.NormFloat64())
	}
}

// GaussianMatrix generates num rows of standard normal values.
// Uses a single backing array for efficiency.
func (r *RNG) GaussianMatrix(num, width int) [][]float32 {
	data := make([]float32, num*width)
	r.FillGaussian(data)

	rows := make([][]float32, num)
	for i := range num {
		rows[i] = data[i*width : (i+1)*width : (i+1)*width]
	}
	return rows
}

// TokenMatrix generates num rows of integers uniform in [0, vocab).
func (r *RNG) TokenMatrix(num, width, vocab int) [][]int64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	data := make([]int64, num*width)
	for i := range data {
		data[i] = int64(r.rand.Intn(vocab))
	}

	rows := make([][]int64, num)
	for i := range num {
		rows[i] = data[i*width : (i+1)*width : (i+1)*width]
	}
	return rows
}

// LocalStore returns a LocalStore rooted at a fresh temporary directory.
func LocalStore(tb testing.TB, opts ...blobstore.LocalOption) *blobstore.LocalStore {
	tb.Helper()
	return blobstore.NewLocalStore(tb.TempDir(), opts...)
}
