package timeline

import (
	"fmt"
	"sort"

	"gigboard/internal/domain"
	"gigboard/internal/modules/booking"
)

// Sibling is one entry's slot inside a DateGroup, decorated for display:
// the other side's name, formatted terms, and the viewer's action menu.
type Sibling struct {
	Entry   domain.DateEntry       `json:"entry"`
	Label   string                 `json:"label"`
	Terms   string                 `json:"terms"`
	Amount  float64                `json:"amount"`
	Actions []booking.ActionOption `json:"actions"`
}

// DateGroup bundles every entry landing on one calendar date for one party.
// Competing offers for the same artist and date are siblings here, not
// separate groups: the viewer sees one decision point with N bids.
type DateGroup struct {
	Date       string             `json:"date"`
	Status     domain.EntryStatus `json:"status"`
	Label      string             `json:"label"`
	Count      int                `json:"count"`
	TermsRange string             `json:"terms_range"`
	Siblings   []Sibling          `json:"siblings,omitempty"`
}

// Aggregate builds the per-date negotiation view for one party. It is pure
// and idempotent: the same snapshot always yields the same groups, every
// input entry appears in exactly one group and one sibling slot, and no
// underlying record is touched.
func Aggregate(entries []domain.DateEntry, viewer domain.Role) []DateGroup {
	byDate := make(map[string][]domain.DateEntry)
	for _, e := range entries {
		byDate[e.Date] = append(byDate[e.Date], e)
	}

	dates := make([]string, 0, len(byDate))
	for d := range byDate {
		dates = append(dates, d)
	}
	sort.Strings(dates)

	groups := make([]DateGroup, 0, len(dates))
	for _, d := range dates {
		groups = append(groups, buildGroup(d, byDate[d], viewer))
	}
	return groups
}

func buildGroup(date string, entries []domain.DateEntry, viewer domain.Role) DateGroup {
	sibs := make([]Sibling, 0, len(entries))
	for _, e := range entries {
		sibs = append(sibs, Sibling{
			Entry:   e,
			Label:   otherSide(&e, viewer),
			Terms:   e.Deal.Format(),
			Amount:  e.Deal.ComparableAmount(),
			Actions: booking.AvailableActions(e.Status, viewer),
		})
	}

	// CONFIRMED entries first, then highest offer; hold position and id
	// break ties so the primary slot is stable across calls.
	sort.SliceStable(sibs, func(i, j int) bool {
		ci := sibs[i].Entry.Status == domain.StatusConfirmed
		cj := sibs[j].Entry.Status == domain.StatusConfirmed
		if ci != cj {
			return ci
		}
		if sibs[i].Amount != sibs[j].Amount {
			return sibs[i].Amount > sibs[j].Amount
		}
		pi, pj := sibs[i].Entry.HoldPosition, sibs[j].Entry.HoldPosition
		if pi != pj {
			if pi == 0 {
				return false
			}
			if pj == 0 {
				return true
			}
			return pi < pj
		}
		return sibs[i].Entry.ID < sibs[j].Entry.ID
	})

	return DateGroup{
		Date:       date,
		Status:     deriveStatus(sibs),
		Label:      groupLabel(sibs, viewer),
		Count:      len(sibs),
		TermsRange: termsRange(sibs),
		Siblings:   sibs,
	}
}

// deriveStatus applies the precedence CONFIRMED > HOLD > PENDING > INQUIRY.
// HOLD_REQUESTED counts at the PENDING level; a group of only terminal
// entries shows the terminal status itself.
func deriveStatus(sibs []Sibling) domain.EntryStatus {
	best := domain.StatusCancelled
	bestRank := -1
	for _, s := range sibs {
		status := s.Entry.Status
		if status == domain.StatusHoldRequested {
			status = domain.StatusPending
		}
		if r := statusRank(status); r > bestRank {
			bestRank = r
			best = status
		}
	}
	return best
}

func statusRank(s domain.EntryStatus) int {
	switch s {
	case domain.StatusConfirmed:
		return 5
	case domain.StatusHold:
		return 4
	case domain.StatusPending:
		return 3
	case domain.StatusInquiry:
		return 2
	case domain.StatusDeclined:
		return 1
	default:
		return 0
	}
}

func otherSide(e *domain.DateEntry, viewer domain.Role) string {
	if viewer == domain.RoleVenue {
		return e.ArtistName
	}
	return e.VenueName
}

// groupLabel names the collapsed row. A venue sees the artist it is bidding
// on; an artist sees the confirmed venue if one exists, otherwise how many
// open offers are competing.
func groupLabel(sibs []Sibling, viewer domain.Role) string {
	if len(sibs) == 0 {
		return ""
	}
	if viewer == domain.RoleVenue {
		return sibs[0].Entry.ArtistName
	}
	for _, s := range sibs {
		if s.Entry.Status == domain.StatusConfirmed {
			return s.Entry.VenueName
		}
	}
	if len(sibs) == 1 {
		return sibs[0].Entry.VenueName
	}
	open := 0
	for _, s := range sibs {
		if !s.Entry.Status.Terminal() {
			open++
		}
	}
	return fmt.Sprintf("%d open offers", open)
}

// termsRange summarizes the money on the table: a single entry's terms
// verbatim, otherwise the min-max span of comparable amounts ("$400-600").
func termsRange(sibs []Sibling) string {
	if len(sibs) == 1 {
		return sibs[0].Terms
	}
	var lo, hi float64
	found := false
	for _, s := range sibs {
		if s.Amount <= 0 {
			continue
		}
		if !found {
			lo, hi = s.Amount, s.Amount
			found = true
			continue
		}
		if s.Amount < lo {
			lo = s.Amount
		}
		if s.Amount > hi {
			hi = s.Amount
		}
	}
	if !found {
		return ""
	}
	if lo == hi {
		return formatAmount(lo)
	}
	return fmt.Sprintf("%s-%s", formatAmount(lo), trimDollar(formatAmount(hi)))
}

func formatAmount(v float64) string {
	if v == float64(int64(v)) {
		return fmt.Sprintf("$%d", int64(v))
	}
	return fmt.Sprintf("$%.2f", v)
}

func trimDollar(s string) string {
	if len(s) > 0 && s[0] == '$' {
		return s[1:]
	}
	return s
}
