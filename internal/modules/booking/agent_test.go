package booking

import (
	"context"
	"encoding/json"
	"testing"

	"gigboard/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAgentAddDate(t *testing.T) {
	repo := newFakeEntryRepo()
	agent := NewAgent(newTestService(repo, testNow))

	out, err := agent.HandleTool(context.Background(), Viewer{Role: domain.RoleVenue, PartyID: 7}, ToolAddDate,
		json.RawMessage(`{"date":"2025-07-04","artist_id":1,"deal":"$500 vs 80% of door"}`))
	require.NoError(t, err)

	resp, ok := out.(EntryResponse)
	require.True(t, ok)
	assert.Equal(t, domain.StatusInquiry, resp.Entry.Status)
	require.NotNil(t, resp.Entry.Deal)
	assert.Equal(t, domain.DealGuaranteeVsPercent, resp.Entry.Deal.Type)
	assert.Equal(t, "$500 vs 80% of door", resp.Entry.Deal.Format())
}

func TestAgentDealShapes(t *testing.T) {
	// Display string extracted from conversation.
	d, err := decodeAgentDeal(json.RawMessage(`"80% of door after $150 expenses"`))
	require.NoError(t, err)
	require.NotNil(t, d)
	assert.Equal(t, domain.DealDoor, d.Type)
	require.NotNil(t, d.Expenses)
	assert.InDelta(t, 150, *d.Expenses, 0.001)

	// Tagged object, same as the direct surface.
	d, err = decodeAgentDeal(json.RawMessage(`{"type":"guarantee","amount":500}`))
	require.NoError(t, err)
	assert.Equal(t, domain.DealGuarantee, d.Type)
	assert.InDelta(t, 500, d.Amount, 0.001)

	// Bare number means a flat guarantee-style legacy amount.
	d, err = decodeAgentDeal(json.RawMessage(`750`))
	require.NoError(t, err)
	require.NotNil(t, d)

	// Absent deal stays absent.
	d, err = decodeAgentDeal(nil)
	require.NoError(t, err)
	assert.Nil(t, d)
	d, err = decodeAgentDeal(json.RawMessage(`null`))
	require.NoError(t, err)
	assert.Nil(t, d)
}

func TestAgentActionRecordsDeal(t *testing.T) {
	inquiry := pendingEntry("e1", 7)
	inquiry.Status = domain.StatusInquiry
	repo := newFakeEntryRepo(inquiry)
	agent := NewAgent(newTestService(repo, testNow))

	out, err := agent.HandleTool(context.Background(), Viewer{Role: domain.RoleVenue, PartyID: 7}, ToolUpdateDate,
		json.RawMessage(`{"id":"e1","action":"propose","deal":"$500 guarantee"}`))
	require.NoError(t, err)

	resp := out.(EntryResponse)
	assert.Equal(t, domain.StatusPending, resp.Entry.Status)
	require.NotNil(t, resp.Entry.Deal)
	assert.Equal(t, "$500 guarantee", resp.Entry.Deal.Format())

	stored, err := repo.GetByID(context.Background(), "e1")
	require.NoError(t, err)
	require.NotNil(t, stored.Deal)
}

func TestAgentCannotBypassStateMachine(t *testing.T) {
	repo := newFakeEntryRepo(pendingEntry("e1", 7))
	agent := NewAgent(newTestService(repo, testNow))

	// A venue cannot accept its own offer, no matter who asks.
	_, err := agent.HandleTool(context.Background(), Viewer{Role: domain.RoleVenue, PartyID: 7}, ToolUpdateDate,
		json.RawMessage(`{"id":"e1","action":"accept"}`))
	assert.ErrorIs(t, err, ErrInvalidTransition)

	// Target statuses funnel through the same menu as actions.
	_, err = agent.HandleTool(context.Background(), Viewer{Role: domain.RoleVenue, PartyID: 7}, ToolUpdateDate,
		json.RawMessage(`{"id":"e1","status":"CONFIRMED"}`))
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestAgentUpdateAndDelete(t *testing.T) {
	repo := newFakeEntryRepo(pendingEntry("e1", 7))
	agent := NewAgent(newTestService(repo, testNow))
	venue := Viewer{Role: domain.RoleVenue, PartyID: 7}

	out, err := agent.HandleTool(context.Background(), venue, ToolUpdateDate,
		json.RawMessage(`{"id":"e1","deal":"$400 guarantee","note":"our best offer"}`))
	require.NoError(t, err)
	resp := out.(EntryResponse)
	assert.Equal(t, "$400 guarantee", resp.Entry.Deal.Format())
	assert.Equal(t, "our best offer", resp.Entry.Notes)

	_, err = agent.HandleTool(context.Background(), venue, ToolDeleteDate, json.RawMessage(`{"id":"e1"}`))
	require.NoError(t, err)
	_, err = repo.GetByID(context.Background(), "e1")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAgentGetDates(t *testing.T) {
	repo := newFakeEntryRepo(pendingEntry("e1", 7), pendingEntry("e2", 8))
	agent := NewAgent(newTestService(repo, testNow))

	out, err := agent.HandleTool(context.Background(), Viewer{Role: domain.RoleArtist, PartyID: 1}, ToolGetDates, nil)
	require.NoError(t, err)
	dates := out.(gin.H)["dates"].([]EntryResponse)
	assert.Len(t, dates, 2)
}

func TestAgentUnknownTool(t *testing.T) {
	agent := NewAgent(newTestService(newFakeEntryRepo(), testNow))

	_, err := agent.HandleTool(context.Background(), Viewer{Role: domain.RoleVenue, PartyID: 7}, "drop_table", nil)
	assert.ErrorIs(t, err, ErrValidation)
}
