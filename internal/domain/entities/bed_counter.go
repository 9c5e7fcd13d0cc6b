package entities

// BedCounter issues sequential bed numbers, scoped per company, for the
// lifetime of one hierarchy-build run. Counters are seeded lazily on first
// use and never reset mid-run, so bed numbers stay strictly increasing across
// successive units of the same company. Not safe for concurrent use; a run
// owns exactly one counter.
type BedCounter struct {
	start int
	next  map[string]int
}

// NewBedCounter creates a counter starting at start (minimum 1).
func NewBedCounter(start int) *BedCounter {
	if start < 1 {
		start = 1
	}
	return &BedCounter{start: start, next: map[string]int{}}
}

// Next returns the next bed number for the company and advances the counter.
func (c *BedCounter) Next(company string) int {
	if _, ok := c.next[company]; !ok {
		c.next[company] = c.start
	}
	n := c.next[company]
	c.next[company] = n + 1
	return n
}
