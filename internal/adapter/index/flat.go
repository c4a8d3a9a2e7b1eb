package index

import (
	"fmt"
	"math"
	"sort"
	"sync"
)

// FlatL2 is an append-only flat index over fixed-dimension vectors with
// exact nearest-neighbor search by Euclidean distance. Ordinals are
// assigned in append order and never reused or reordered, keeping the
// index positionally aligned with the tender store.
type FlatL2 struct {
	dimension int
	mu        sync.RWMutex
	vectors   [][]float32
}

// NewFlatL2 creates an empty index for vectors of the given dimension.
func NewFlatL2(dimension int) *FlatL2 {
	return &FlatL2{dimension: dimension}
}

// Add appends vectors in order. Dimension mismatch is a hard error and
// leaves the index unchanged.
func (idx *FlatL2) Add(vectors [][]float32) error {
	for i, v := range vectors {
		if len(v) != idx.dimension {
			return fmt.Errorf("vector %d dimension mismatch: expected %d, got %d", i, idx.dimension, len(v))
		}
	}

	idx.mu.Lock()
	defer idx.mu.Unlock()
	idx.vectors = append(idx.vectors, vectors...)
	return nil
}

// Search returns up to k nearest neighbors by ascending L2 distance.
// An empty index yields empty results, not an error.
func (idx *FlatL2) Search(query []float32, k int) ([]float64, []int, error) {
	if len(query) != idx.dimension {
		return nil, nil, fmt.Errorf("query dimension mismatch: expected %d, got %d", idx.dimension, len(query))
	}
	if k <= 0 {
		return nil, nil, fmt.Errorf("k must be positive, got %d", k)
	}

	idx.mu.RLock()
	defer idx.mu.RUnlock()

	if len(idx.vectors) == 0 {
		return nil, nil, nil
	}

	type scored struct {
		ordinal  int
		distance float64
	}

	scores := make([]scored, len(idx.vectors))
	for i, v := range idx.vectors {
		scores[i] = scored{ordinal: i, distance: l2Distance(query, v)}
	}

	sort.SliceStable(scores, func(i, j int) bool {
		return scores[i].distance < scores[j].distance
	})

	if k > len(scores) {
		k = len(scores)
	}

	distances := make([]float64, k)
	ordinals := make([]int, k)
	for i := 0; i < k; i++ {
		distances[i] = scores[i].distance
		ordinals[i] = scores[i].ordinal
	}

	return distances, ordinals, nil
}

// Size returns the number of vectors in the index.
func (idx *FlatL2) Size() int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return len(idx.vectors)
}

// Dimension returns the vector dimension.
func (idx *FlatL2) Dimension() int {
	return idx.dimension
}

func l2Distance(a, b []float32) float64 {
	var sum float64
	for i := range a {
		d := float64(a[i]) - float64(b[i])
		sum += d * d
	}
	return math.Sqrt(sum)
}
