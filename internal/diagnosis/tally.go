package diagnosis

// Tally counts diagnoses by category.
type Tally map[ErrorCategory]int

// Add records one diagnosis.
func (t Tally) Add(c ErrorCategory) {
	t[c]++
}

// Total returns the number of diagnoses recorded.
func (t Tally) Total() int {
	n := 0
	for _, v := range t {
		n += v
	}
	return n
}

// Top returns the most frequent classified category. Ties go to the
// category listed first in AllCategories. It returns "" when nothing
// but unclassified misses were recorded.
func (t Tally) Top() ErrorCategory {
	var best ErrorCategory
	bestN := 0
	for _, c := range AllCategories() {
		if c == CategoryUnclassified {
			continue
		}
		if n := t[c]; n > bestN {
			best, bestN = c, n
		}
	}
	return best
}
