package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

type DealType string

const (
	DealGuarantee          DealType = "guarantee"
	DealDoor               DealType = "door"
	DealSplit              DealType = "split"
	DealGuaranteeVsPercent DealType = "guarantee_vs_percent"
	DealGuaranteePlusSplit DealType = "guarantee_plus_split"

	// DealLegacy is not part of the wire vocabulary: it carries a flat
	// amount or door string written before structured deals existed.
	// Such values must stay readable indefinitely.
	DealLegacy DealType = "legacy"
)

var ErrUnknownDealType = errors.New("unknown deal type")

// Deal is the closed set of financial-term variants attached to a DateEntry.
// Exactly one variant is active, selected by Type; the other fields are zero.
type Deal struct {
	Type DealType

	Amount        float64  // GUARANTEE
	Percent       float64  // DOOR, GUARANTEE_VS_PERCENT
	Expenses      *float64 // DOOR, optional
	ArtistPercent float64  // SPLIT, GUARANTEE_PLUS_SPLIT
	VenuePercent  float64  // SPLIT
	Guarantee     float64  // GUARANTEE_VS_PERCENT, GUARANTEE_PLUS_SPLIT
	Threshold     float64  // GUARANTEE_PLUS_SPLIT

	Raw string // DealLegacy only
}

type dealWire struct {
	Type          DealType `json:"type"`
	Amount        float64  `json:"amount,omitempty"`
	Percent       float64  `json:"percent,omitempty"`
	Expenses      *float64 `json:"expenses,omitempty"`
	ArtistPercent float64  `json:"artist_percent,omitempty"`
	VenuePercent  float64  `json:"venue_percent,omitempty"`
	Guarantee     float64  `json:"guarantee,omitempty"`
	Threshold     float64  `json:"threshold,omitempty"`
}

// UnmarshalJSON accepts the five-variant tagged object shape, plus the two
// legacy shapes: a bare string ("$300 + merch cut") and a bare number (300).
func (d *Deal) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if strings.HasPrefix(trimmed, `"`) {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*d = Deal{Type: DealLegacy, Raw: s}
		return nil
	}
	if !strings.HasPrefix(trimmed, "{") {
		var n float64
		if err := json.Unmarshal(data, &n); err != nil {
			return err
		}
		*d = Deal{Type: DealLegacy, Raw: formatMoney(n)}
		return nil
	}

	var w dealWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	switch w.Type {
	case DealGuarantee, DealDoor, DealSplit, DealGuaranteeVsPercent, DealGuaranteePlusSplit:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownDealType, w.Type)
	}
	*d = Deal{
		Type:          w.Type,
		Amount:        w.Amount,
		Percent:       w.Percent,
		Expenses:      w.Expenses,
		ArtistPercent: w.ArtistPercent,
		VenuePercent:  w.VenuePercent,
		Guarantee:     w.Guarantee,
		Threshold:     w.Threshold,
	}
	return nil
}

func (d Deal) MarshalJSON() ([]byte, error) {
	if d.Type == DealLegacy {
		return json.Marshal(d.Raw)
	}
	return json.Marshal(dealWire{
		Type:          d.Type,
		Amount:        d.Amount,
		Percent:       d.Percent,
		Expenses:      d.Expenses,
		ArtistPercent: d.ArtistPercent,
		VenuePercent:  d.VenuePercent,
		Guarantee:     d.Guarantee,
		Threshold:     d.Threshold,
	})
}

// Format renders the deal for display. It is total: every variant and every
// optional-field combination produces a string, and legacy values render
// as stored.
func (d *Deal) Format() string {
	if d == nil {
		return ""
	}
	switch d.Type {
	case DealGuarantee:
		return formatMoney(d.Amount) + " guarantee"
	case DealDoor:
		if d.Expenses != nil {
			return fmt.Sprintf("%s%% of door after %s expenses", formatPercent(d.Percent), formatMoney(*d.Expenses))
		}
		return formatPercent(d.Percent) + "% of door"
	case DealSplit:
		return fmt.Sprintf("%s/%s split", formatPercent(d.ArtistPercent), formatPercent(d.VenuePercent))
	case DealGuaranteeVsPercent:
		return fmt.Sprintf("%s vs %s%% of door", formatMoney(d.Guarantee), formatPercent(d.Percent))
	case DealGuaranteePlusSplit:
		return fmt.Sprintf("%s + %s%% over %s", formatMoney(d.Guarantee), formatPercent(d.ArtistPercent), formatMoney(d.Threshold))
	default:
		return d.Raw
	}
}

// ParseDeal is the inverse of Format. Strings that match none of the five
// structured renderings come back as a legacy deal, never an error.
func ParseDeal(s string) *Deal {
	s = strings.TrimSpace(s)

	if rest, ok := strings.CutSuffix(s, " guarantee"); ok {
		if amt, ok := parseMoney(rest); ok {
			return &Deal{Type: DealGuarantee, Amount: amt}
		}
	}

	if left, right, ok := strings.Cut(s, " vs "); ok {
		if g, okG := parseMoney(left); okG {
			if pct, okP := parsePercentClause(right); okP {
				return &Deal{Type: DealGuaranteeVsPercent, Guarantee: g, Percent: pct}
			}
		}
	}

	if left, right, ok := strings.Cut(s, " + "); ok {
		if g, okG := parseMoney(left); okG {
			if pctPart, threshPart, okOver := strings.Cut(right, "% over "); okOver {
				pct, errP := strconv.ParseFloat(pctPart, 64)
				thresh, okT := parseMoney(threshPart)
				if errP == nil && okT {
					return &Deal{Type: DealGuaranteePlusSplit, Guarantee: g, ArtistPercent: pct, Threshold: thresh}
				}
			}
		}
	}

	if rest, ok := strings.CutSuffix(s, " split"); ok {
		if ap, vp, okCut := strings.Cut(rest, "/"); okCut {
			a, errA := strconv.ParseFloat(ap, 64)
			v, errV := strconv.ParseFloat(vp, 64)
			if errA == nil && errV == nil {
				return &Deal{Type: DealSplit, ArtistPercent: a, VenuePercent: v}
			}
		}
	}

	if pctPart, rest, ok := strings.Cut(s, "% of door"); ok {
		if pct, err := strconv.ParseFloat(pctPart, 64); err == nil {
			d := &Deal{Type: DealDoor, Percent: pct}
			if expPart, okExp := strings.CutPrefix(rest, " after "); okExp {
				if expStr, okSuf := strings.CutSuffix(expPart, " expenses"); okSuf {
					if exp, okM := parseMoney(expStr); okM {
						d.Expenses = &exp
					}
				}
			}
			return d
		}
	}

	return &Deal{Type: DealLegacy, Raw: s}
}

// Payout evaluates the artist payout for an actual revenue figure. The
// second return is false when the variant cannot be evaluated (legacy deals).
func (d *Deal) Payout(revenue float64) (float64, bool) {
	if d == nil {
		return 0, false
	}
	switch d.Type {
	case DealGuarantee:
		return d.Amount, true
	case DealDoor:
		base := revenue
		if d.Expenses != nil {
			base -= *d.Expenses
		}
		return d.Percent / 100 * base, true
	case DealSplit:
		return d.ArtistPercent / 100 * revenue, true
	case DealGuaranteeVsPercent:
		pct := d.Percent / 100 * revenue
		if pct > d.Guarantee {
			return pct, true
		}
		return d.Guarantee, true
	case DealGuaranteePlusSplit:
		over := revenue - d.Threshold
		if over < 0 {
			over = 0
		}
		return d.Guarantee + d.ArtistPercent/100*over, true
	default:
		return 0, false
	}
}

// ComparableAmount is the figure used for ranking competing offers: the
// guaranteed money where one exists, a parsed number for numeric legacy
// deals, zero otherwise.
func (d *Deal) ComparableAmount() float64 {
	if d == nil {
		return 0
	}
	switch d.Type {
	case DealGuarantee:
		return d.Amount
	case DealGuaranteeVsPercent, DealGuaranteePlusSplit:
		return d.Guarantee
	case DealLegacy:
		if amt, ok := parseMoney(d.Raw); ok {
			return amt
		}
	}
	return 0
}

func formatMoney(v float64) string {
	if v == float64(int64(v)) {
		return "$" + strconv.FormatInt(int64(v), 10)
	}
	return "$" + strconv.FormatFloat(v, 'f', 2, 64)
}

func formatPercent(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func parseMoney(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "$")
	s = strings.ReplaceAll(s, ",", "")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

func parsePercentClause(s string) (float64, bool) {
	pctPart, ok := strings.CutSuffix(strings.TrimSpace(s), "% of door")
	if !ok {
		return 0, false
	}
	v, err := strconv.ParseFloat(pctPart, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
