package nav

import (
	"reflect"
	"testing"
	"time"

	"viewer/internal/imagepath"
)

var epoch = time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

func entry(name string, minutes int) Entry {
	return Entry{
		Path:    imagepath.File("test/" + name),
		Name:    name,
		ModTime: epoch.Add(time.Duration(minutes) * time.Minute),
	}
}

// Test data for sorting strategies
func getTestEntries() []Entry {
	return []Entry{
		entry("01.png", 5),
		entry("04.zip", 1),
		entry("08.png", 5),
		entry("09.png", 9),
		entry("2.png", 2),
		entry("３.png", 5),
	}
}

func names(entries []Entry) []string {
	var result []string
	for _, e := range entries {
		result = append(result, e.Name)
	}
	return result
}

func TestModTimeSortStrategy(t *testing.T) {
	strategy := &ModTimeSortStrategy{}

	t.Run("ID", func(t *testing.T) {
		if strategy.ID() != SortModTime {
			t.Errorf("Expected %d, got %d", SortModTime, strategy.ID())
		}
	})

	t.Run("Sort", func(t *testing.T) {
		expected := []string{"09.png", "01.png", "08.png", "３.png", "2.png", "04.zip"}
		result := names(strategy.Sort(getTestEntries()))
		if !reflect.DeepEqual(result, expected) {
			t.Errorf("Modification time sort failed")
			t.Logf("Expected: %v", expected)
			t.Logf("Got:      %v", result)
		}
	})

	t.Run("ImmutableInput", func(t *testing.T) {
		input := getTestEntries()
		original := make([]Entry, len(input))
		copy(original, input)

		_ = strategy.Sort(input)

		if !reflect.DeepEqual(input, original) {
			t.Error("Input slice was modified - should be immutable")
		}
	})
}

func TestNameSortStrategies(t *testing.T) {
	tests := []struct {
		strategy SortStrategy
		name     string
		expected []string
	}{
		{&NaturalSortStrategy{}, "Natural", []string{"01.png", "2.png", "04.zip", "08.png", "09.png", "３.png"}},
		{&SimpleSortStrategy{}, "Simple", []string{"01.png", "04.zip", "08.png", "09.png", "2.png", "３.png"}},
		{&EntryOrderSortStrategy{}, "Entry Order", []string{"01.png", "04.zip", "08.png", "09.png", "2.png", "３.png"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.strategy.Name() != tt.name {
				t.Errorf("Expected '%s', got '%s'", tt.name, tt.strategy.Name())
			}
			result := names(tt.strategy.Sort(getTestEntries()))
			if !reflect.DeepEqual(result, tt.expected) {
				t.Errorf("Expected %v, got %v", tt.expected, result)
			}
		})
	}
}

func TestGetSortStrategy(t *testing.T) {
	tests := []struct {
		method   int
		expected int
	}{
		{SortModTime, SortModTime},
		{SortNatural, SortNatural},
		{SortSimple, SortSimple},
		{SortEntryOrder, SortEntryOrder},
		{-1, SortModTime},
		{99, SortModTime},
	}

	for _, tt := range tests {
		if got := GetSortStrategy(tt.method).ID(); got != tt.expected {
			t.Errorf("GetSortStrategy(%d).ID() = %d, want %d", tt.method, got, tt.expected)
		}
	}

	if len(GetAllSortStrategies()) != 4 {
		t.Errorf("Expected 4 strategies, got %d", len(GetAllSortStrategies()))
	}
}

// Test edge cases
func TestSortStrategyEdgeCases(t *testing.T) {
	for _, strategy := range GetAllSortStrategies() {
		if result := strategy.Sort(nil); result == nil || len(result) != 0 {
			t.Errorf("Strategy %s should return an empty slice for no input", strategy.Name())
		}
		single := []Entry{entry("single.png", 0)}
		if result := strategy.Sort(single); len(result) != 1 || result[0].Name != "single.png" {
			t.Errorf("Strategy %s failed on single element", strategy.Name())
		}
	}
}
