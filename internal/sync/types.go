package sync

import "github.com/grocerly/grocery-sync-server/internal/groceries"

// ListSnapshot pairs a list's metadata with its content for one refresh
// cycle. Snapshots are created fresh each cycle and never mutated.
type ListSnapshot struct {
	List  groceries.List          `json:"list"`
	Items groceries.ItemsResponse `json:"items"`
}

// Result maps list UUIDs to their snapshots for one refresh cycle. A UUID
// is present only if its fetch succeeded; a cycle either produces a complete
// Result or fails as a whole.
type Result map[string]ListSnapshot

// InterestSet is the set of list UUIDs current subscribers require. An
// empty set means every list is of interest.
type InterestSet map[string]struct{}

// NewInterestSet builds an InterestSet from list UUIDs
func NewInterestSet(listUUIDs ...string) InterestSet {
	s := make(InterestSet, len(listUUIDs))
	for _, id := range listUUIDs {
		s[id] = struct{}{}
	}
	return s
}

// Contains reports whether the set includes the given list UUID
func (s InterestSet) Contains(listUUID string) bool {
	_, ok := s[listUUID]
	return ok
}

// Empty reports whether no subscriber has expressed interest
func (s InterestSet) Empty() bool {
	return len(s) == 0
}
