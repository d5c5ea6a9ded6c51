package budget

import "sort"

// Allocation tracks one category's share of the context window for a single
// request. Used never exceeds Allocated.
type Allocation struct {
	Category  Category `json:"category"`
	Allocated int      `json:"allocated"`
	Used      int      `json:"used"`
}

func (a Allocation) Remaining() int { return a.Allocated - a.Used }

func (a Allocation) Utilization() float64 {
	if a.Allocated == 0 {
		return 0
	}
	return float64(a.Used) / float64(a.Allocated)
}

// Ledger holds one request's allocations, one per category. Packing is
// synchronous, so the ledger takes no locks.
type Ledger struct {
	allocations map[Category]*Allocation
}

func NewLedger(cfg Config) *Ledger {
	allocations := make(map[Category]*Allocation, len(cfg.Categories))
	for cat, tokens := range cfg.Categories {
		allocations[cat] = &Allocation{Category: cat, Allocated: tokens}
	}
	return &Ledger{allocations: allocations}
}

// Allocate consumes tokens from a category's share. It refuses, leaving the
// ledger unchanged, when the category is unknown or the remainder is too
// small.
func (l *Ledger) Allocate(category Category, tokens int) bool {
	alloc, ok := l.allocations[category]
	if !ok || tokens < 0 || alloc.Remaining() < tokens {
		return false
	}
	alloc.Used += tokens
	return true
}

func (l *Ledger) Remaining(category Category) int {
	if alloc, ok := l.allocations[category]; ok {
		return alloc.Remaining()
	}
	return 0
}

func (l *Ledger) Used(category Category) int {
	if alloc, ok := l.allocations[category]; ok {
		return alloc.Used
	}
	return 0
}

func (l *Ledger) TotalUsed() int {
	total := 0
	for _, alloc := range l.allocations {
		total += alloc.Used
	}
	return total
}

// Snapshot returns the allocations ordered by category name, for logging and
// result metadata.
func (l *Ledger) Snapshot() []Allocation {
	out := make([]Allocation, 0, len(l.allocations))
	for _, alloc := range l.allocations {
		out = append(out, *alloc)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Category < out[j].Category })
	return out
}
