package watcher

import "github.com/Monika-msk/vtu-internyet/internal/model"

// Detect partitions the normalized batch against the seen state and returns
// the new subset, preserving the order listings were encountered across pages.
// Every new ID is added to state in the same pass, so a delivery failure
// downstream does not re-report the listing on the next run (at-most-once).
func Detect(batch []model.Listing, state *model.SeenState) []model.Listing {
	var fresh []model.Listing
	for _, l := range batch {
		if state.Has(l.ID) {
			continue
		}
		state.Add(l.ID)
		fresh = append(fresh, l)
	}
	return fresh
}
