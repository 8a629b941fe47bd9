package horizon

import (
	"maps"
	"slices"

	"github.com/google/uuid"
)

// sortedKeys returns the keys of m in a stable order so that repeated
// exports draw shapes in the same sequence.
func sortedKeys[V any](m map[uuid.UUID]V) []uuid.UUID {
	return slices.SortedFunc(maps.Keys(m), func(a, b uuid.UUID) int {
		return slices.Compare(a[:], b[:])
	})
}
