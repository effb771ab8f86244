package booking

import (
	"time"

	"gigboard/internal/domain"
)

// expireHolds flips every sibling whose hold window has passed back to
// PENDING, clears its hold fields, and compacts the surviving positions.
// It mutates the slice elements in place and returns the ones that changed.
// A corrupt position sequence (duplicates among active holds) is reported
// as an invariant violation, never repaired.
func expireHolds(siblings []domain.DateEntry, now time.Time) ([]*domain.DateEntry, error) {
	if err := checkHoldPositions(siblings); err != nil {
		return nil, err
	}

	var changed []*domain.DateEntry
	expiredAny := false
	for i := range siblings {
		e := &siblings[i]
		if e.HoldExpired(now) {
			e.ClearHold()
			e.Status = domain.StatusPending
			e.UpdatedAt = now
			changed = append(changed, e)
			expiredAny = true
		}
	}
	if !expiredAny {
		return nil, nil
	}

	compacted, err := compactHolds(siblings)
	if err != nil {
		return nil, err
	}
	for _, e := range compacted {
		e.UpdatedAt = now
		if !containsEntry(changed, e) {
			changed = append(changed, e)
		}
	}
	return changed, nil
}

// compactHolds reassigns positions among the active holds of one sibling
// group so they form a dense 1..N sequence, preserving relative order.
// Returns the entries whose position actually moved.
func compactHolds(siblings []domain.DateEntry) ([]*domain.DateEntry, error) {
	holds := activeHolds(siblings)
	if err := checkDuplicates(holds); err != nil {
		return nil, err
	}
	sortByPosition(holds)

	var changed []*domain.DateEntry
	for i, e := range holds {
		want := i + 1
		if e.HoldPosition != want {
			e.HoldPosition = want
			changed = append(changed, e)
		}
	}
	return changed, nil
}

// nextHoldPosition returns the position a newly approved hold takes: one
// past the current dense sequence. The sequence is validated first; a
// corrupt store state fails the whole operation.
func nextHoldPosition(siblings []domain.DateEntry, excludeID string) (int, error) {
	holds := activeHolds(siblings)
	filtered := holds[:0]
	for _, e := range holds {
		if e.ID != excludeID {
			filtered = append(filtered, e)
		}
	}
	if err := checkDense(filtered); err != nil {
		return 0, err
	}
	return len(filtered) + 1, nil
}

func checkHoldPositions(siblings []domain.DateEntry) error {
	return checkDuplicates(activeHolds(siblings))
}

func activeHolds(siblings []domain.DateEntry) []*domain.DateEntry {
	var holds []*domain.DateEntry
	for i := range siblings {
		if siblings[i].Status == domain.StatusHold && siblings[i].HoldPosition > 0 {
			holds = append(holds, &siblings[i])
		}
	}
	return holds
}

func checkDuplicates(holds []*domain.DateEntry) error {
	seen := make(map[int]struct{}, len(holds))
	for _, e := range holds {
		if _, dup := seen[e.HoldPosition]; dup {
			return ErrInvariantViolation
		}
		seen[e.HoldPosition] = struct{}{}
	}
	return nil
}

func checkDense(holds []*domain.DateEntry) error {
	if err := checkDuplicates(holds); err != nil {
		return err
	}
	for _, e := range holds {
		if e.HoldPosition < 1 || e.HoldPosition > len(holds) {
			return ErrInvariantViolation
		}
	}
	return nil
}

func containsEntry(list []*domain.DateEntry, e *domain.DateEntry) bool {
	for _, x := range list {
		if x == e {
			return true
		}
	}
	return false
}
