package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDealFormatParseRoundTrip(t *testing.T) {
	expenses := 150.0

	cases := []struct {
		name string
		deal Deal
		text string
	}{
		{
			name: "guarantee",
			deal: Deal{Type: DealGuarantee, Amount: 500},
			text: "$500 guarantee",
		},
		{
			name: "door without expenses",
			deal: Deal{Type: DealDoor, Percent: 80},
			text: "80% of door",
		},
		{
			name: "door with expenses",
			deal: Deal{Type: DealDoor, Percent: 80, Expenses: &expenses},
			text: "80% of door after $150 expenses",
		},
		{
			name: "split",
			deal: Deal{Type: DealSplit, ArtistPercent: 70, VenuePercent: 30},
			text: "70/30 split",
		},
		{
			name: "guarantee vs percent",
			deal: Deal{Type: DealGuaranteeVsPercent, Guarantee: 500, Percent: 80},
			text: "$500 vs 80% of door",
		},
		{
			name: "guarantee plus split",
			deal: Deal{Type: DealGuaranteePlusSplit, Guarantee: 300, ArtistPercent: 70, Threshold: 500},
			text: "$300 + 70% over $500",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := tc.deal.Format()
			assert.Equal(t, tc.text, got)

			parsed := ParseDeal(got)
			require.NotNil(t, parsed)
			assert.Equal(t, tc.deal, *parsed)
		})
	}
}

func TestParseDealFallsBackToLegacy(t *testing.T) {
	d := ParseDeal("$300 plus a cut of the merch")
	require.NotNil(t, d)
	assert.Equal(t, DealLegacy, d.Type)
	assert.Equal(t, "$300 plus a cut of the merch", d.Raw)
	assert.Equal(t, "$300 plus a cut of the merch", d.Format())
}

func TestDealPayout(t *testing.T) {
	expenses := 200.0

	cases := []struct {
		name    string
		deal    Deal
		revenue float64
		want    float64
	}{
		{"guarantee ignores attendance", Deal{Type: DealGuarantee, Amount: 500}, 10000, 500},
		{"door gross", Deal{Type: DealDoor, Percent: 80}, 1000, 800},
		{"door after expenses", Deal{Type: DealDoor, Percent: 80, Expenses: &expenses}, 1000, 640},
		{"split", Deal{Type: DealSplit, ArtistPercent: 70, VenuePercent: 30}, 1000, 700},
		{"guarantee vs percent takes guarantee", Deal{Type: DealGuaranteeVsPercent, Guarantee: 500, Percent: 80}, 400, 500},
		{"guarantee vs percent takes percent", Deal{Type: DealGuaranteeVsPercent, Guarantee: 500, Percent: 80}, 1000, 800},
		{"guarantee plus split above threshold", Deal{Type: DealGuaranteePlusSplit, Guarantee: 300, ArtistPercent: 70, Threshold: 500}, 800, 510},
		{"guarantee plus split below threshold", Deal{Type: DealGuaranteePlusSplit, Guarantee: 300, ArtistPercent: 70, Threshold: 500}, 400, 300},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := tc.deal.Payout(tc.revenue)
			require.True(t, ok)
			assert.InDelta(t, tc.want, got, 0.001)
		})
	}
}

func TestLegacyDealNotEvaluable(t *testing.T) {
	d := Deal{Type: DealLegacy, Raw: "$400"}
	_, ok := d.Payout(1000)
	assert.False(t, ok)
	assert.Equal(t, 400.0, d.ComparableAmount())
}

func TestDealJSONTaggedShape(t *testing.T) {
	in := `{"type":"guarantee_plus_split","guarantee":300,"artist_percent":70,"threshold":500}`

	var d Deal
	require.NoError(t, json.Unmarshal([]byte(in), &d))
	assert.Equal(t, DealGuaranteePlusSplit, d.Type)
	assert.Equal(t, 300.0, d.Guarantee)

	out, err := json.Marshal(d)
	require.NoError(t, err)

	var back Deal
	require.NoError(t, json.Unmarshal(out, &back))
	assert.Equal(t, d, back)
}

func TestDealJSONLegacyShapesStayReadable(t *testing.T) {
	var fromString Deal
	require.NoError(t, json.Unmarshal([]byte(`"$300 plus merch"`), &fromString))
	assert.Equal(t, DealLegacy, fromString.Type)
	assert.Equal(t, "$300 plus merch", fromString.Raw)

	var fromNumber Deal
	require.NoError(t, json.Unmarshal([]byte(`400`), &fromNumber))
	assert.Equal(t, DealLegacy, fromNumber.Type)
	assert.Equal(t, "$400", fromNumber.Raw)
	assert.Equal(t, 400.0, fromNumber.ComparableAmount())

	// Legacy deals marshal back to the flat string form.
	out, err := json.Marshal(fromString)
	require.NoError(t, err)
	assert.Equal(t, `"$300 plus merch"`, string(out))
}

func TestDealJSONRejectsUnknownType(t *testing.T) {
	var d Deal
	err := json.Unmarshal([]byte(`{"type":"handshake","amount":100}`), &d)
	assert.ErrorIs(t, err, ErrUnknownDealType)
}
