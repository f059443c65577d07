package nav

import (
	"sort"

	"github.com/maruel/natural"
)

// Sort method constants
const (
	SortModTime    = 0 // Newest first, ties by name
	SortNatural    = 1 // Natural sort order (e.g., file1, file2, file10)
	SortSimple     = 2 // Simple string sort (lexicographical)
	SortEntryOrder = 3 // Maintain original order (no sort)
)

// SortStrategy defines the interface for different sorting strategies
type SortStrategy interface {
	// Sort returns a new sorted slice without modifying the original
	Sort(entries []Entry) []Entry
	// Name returns the human-readable name of the strategy
	Name() string
	// ID returns the numeric identifier for config storage
	ID() int
}

func sortedCopy(entries []Entry, less func(a, b Entry) bool) []Entry {
	result := make([]Entry, len(entries))
	copy(result, entries)
	if less != nil {
		sort.SliceStable(result, func(i, j int) bool {
			return less(result[i], result[j])
		})
	}
	return result
}

// ModTimeSortStrategy orders by modification time descending, then by name
// ascending.
type ModTimeSortStrategy struct{}

func (s *ModTimeSortStrategy) Sort(entries []Entry) []Entry {
	return sortedCopy(entries, func(a, b Entry) bool {
		if !a.ModTime.Equal(b.ModTime) {
			return a.ModTime.After(b.ModTime)
		}
		return a.Name < b.Name
	})
}

func (s *ModTimeSortStrategy) Name() string {
	return "Modification Time"
}

func (s *ModTimeSortStrategy) ID() int {
	return SortModTime
}

// NaturalSortStrategy implements natural sorting using maruel/natural
type NaturalSortStrategy struct{}

func (s *NaturalSortStrategy) Sort(entries []Entry) []Entry {
	return sortedCopy(entries, func(a, b Entry) bool {
		return natural.Less(a.Name, b.Name)
	})
}

func (s *NaturalSortStrategy) Name() string {
	return "Natural"
}

func (s *NaturalSortStrategy) ID() int {
	return SortNatural
}

// SimpleSortStrategy implements lexicographical sorting
type SimpleSortStrategy struct{}

func (s *SimpleSortStrategy) Sort(entries []Entry) []Entry {
	return sortedCopy(entries, func(a, b Entry) bool {
		return a.Name < b.Name
	})
}

func (s *SimpleSortStrategy) Name() string {
	return "Simple"
}

func (s *SimpleSortStrategy) ID() int {
	return SortSimple
}

// EntryOrderSortStrategy preserves the listing order
type EntryOrderSortStrategy struct{}

func (s *EntryOrderSortStrategy) Sort(entries []Entry) []Entry {
	return sortedCopy(entries, nil)
}

func (s *EntryOrderSortStrategy) Name() string {
	return "Entry Order"
}

func (s *EntryOrderSortStrategy) ID() int {
	return SortEntryOrder
}

// GetSortStrategy returns the appropriate strategy based on the sort method ID
func GetSortStrategy(sortMethod int) SortStrategy {
	switch sortMethod {
	case SortModTime:
		return &ModTimeSortStrategy{}
	case SortNatural:
		return &NaturalSortStrategy{}
	case SortSimple:
		return &SimpleSortStrategy{}
	case SortEntryOrder:
		return &EntryOrderSortStrategy{}
	default:
		return &ModTimeSortStrategy{} // Default fallback
	}
}

// GetAllSortStrategies returns all available sort strategies
func GetAllSortStrategies() []SortStrategy {
	return []SortStrategy{
		&ModTimeSortStrategy{},
		&NaturalSortStrategy{},
		&SimpleSortStrategy{},
		&EntryOrderSortStrategy{},
	}
}
