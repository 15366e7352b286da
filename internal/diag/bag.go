package diag

import (
	"cmp"
	"slices"
)

// Bag collects diagnostics up to a limit and counts the ones it refused.
type Bag struct {
	items   []*Diagnostic
	max     int
	dropped int
}

// NewBag creates a bag holding at most max diagnostics; max <= 0 means no limit.
func NewBag(max int) *Bag {
	return &Bag{max: max}
}

// Add stores d unless the limit is reached. It reports whether d was kept.
func (b *Bag) Add(d *Diagnostic) bool {
	if d == nil {
		return false
	}
	if b.max > 0 && len(b.items) >= b.max {
		b.dropped++
		return false
	}
	b.items = append(b.items, d)
	return true
}

func (b *Bag) Len() int { return len(b.items) }

// Dropped returns how many diagnostics were refused because of the limit.
func (b *Bag) Dropped() int { return b.dropped }

// Items returns the stored diagnostics. The slice is shared with the bag.
func (b *Bag) Items() []*Diagnostic { return b.items }

// Count returns the number of diagnostics at exactly sev.
func (b *Bag) Count(sev Severity) int {
	n := 0
	for _, d := range b.items {
		if d.Severity == sev {
			n++
		}
	}
	return n
}

// Filter returns a new bag with the diagnostics at or above min.
// The dropped count is carried over.
func (b *Bag) Filter(min Severity) *Bag {
	out := &Bag{max: b.max, dropped: b.dropped}
	for _, d := range b.items {
		if d.Severity >= min {
			out.items = append(out.items, d)
		}
	}
	return out
}

// Sort orders by path, then position, then severity (errors first), then code.
func (b *Bag) Sort() {
	slices.SortStableFunc(b.items, func(x, y *Diagnostic) int {
		return cmp.Or(
			cmp.Compare(x.Path, y.Path),
			cmp.Compare(x.Primary.Start, y.Primary.Start),
			cmp.Compare(x.Primary.End, y.Primary.End),
			cmp.Compare(y.Severity, x.Severity),
			cmp.Compare(x.Code, y.Code),
		)
	})
}
