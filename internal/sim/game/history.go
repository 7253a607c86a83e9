package game

import "sort"

// HistoryEntry is one turn's appended record for one civilization. Rank
// lookups read the most recent entry only.
type HistoryEntry struct {
	Turn         int
	Credits      int
	Maintenance  int
	Colonies     int
	Population   int
	Morale       int
	Resources    int
	Research     int
	Intelligence int

	CreditsRank    int
	ColoniesRank   int
	PopulationRank int
	ResearchRank   int
}

// rankOf returns 1-based rank of value among values (descending, ties share
// the better rank).
func rankOf(value int, values []int) int {
	sorted := append([]int(nil), values...)
	sort.Sort(sort.Reverse(sort.IntSlice(sorted)))
	for i, v := range sorted {
		if v == value {
			return i + 1
		}
	}
	return len(sorted)
}
