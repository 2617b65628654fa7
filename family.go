package reel

import "sort"

// FamilyOptions controls ExtractFamilyMembers.
type FamilyOptions struct {
	// UseZIndex sorts the flattened sequence by z-index. The sort is stable:
	// equal z-indexes keep their tree order.
	UseZIndex bool
	// OnlyWithPoints filters the sequence to members that carry drawable
	// geometry themselves.
	OnlyWithPoints bool
	// Dedup selects the policy for a mobject reachable through more than one
	// top-level entry.
	Dedup DedupPolicy
}

// ExtractFamilyMembers flattens an ordered sequence of top-level mobjects
// into a single sequence where each entry is immediately followed by its
// full depth-first family.
func ExtractFamilyMembers(mobjects []*Mobject, opts FamilyOptions) []*Mobject {
	var flat []*Mobject
	for _, m := range mobjects {
		flat = m.appendFamily(flat)
	}

	if opts.OnlyWithPoints {
		kept := flat[:0]
		for _, m := range flat {
			if m.HasPoints() {
				kept = append(kept, m)
			}
		}
		flat = kept
	}

	if opts.Dedup == DedupFirstOccurrence {
		seen := make(handleSet, len(flat))
		kept := flat[:0]
		for _, m := range flat {
			if _, ok := seen[m.handle]; ok {
				continue
			}
			seen[m.handle] = struct{}{}
			kept = append(kept, m)
		}
		flat = kept
	}

	if opts.UseZIndex {
		sort.SliceStable(flat, func(i, j int) bool {
			return flat[i].ZIndex < flat[j].ZIndex
		})
	}
	return flat
}
