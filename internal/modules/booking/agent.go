package booking

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"gigboard/internal/domain"
	"gigboard/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

// Agent adapts the conversational tool-call vocabulary onto the booking
// service. It is a thin shim: every write goes through the same validation
// path as the direct mutation surface, so agent-originated writes cannot
// bypass the state machine.
type Agent struct {
	service *Service
}

func NewAgent(service *Service) *Agent {
	return &Agent{service: service}
}

const (
	ToolAddDate    = "add_date"
	ToolUpdateDate = "update_date"
	ToolDeleteDate = "delete_date"
	ToolGetDates   = "get_dates"
)

type addDateArgs struct {
	Date      string          `json:"date"`
	ArtistID  int64           `json:"artist_id"`
	VenueID   int64           `json:"venue_id"`
	Billing   string          `json:"billing"`
	SetLength int             `json:"set_length"`
	Deal      json.RawMessage `json:"deal"`
	Details   json.RawMessage `json:"details"`
	Notes     string          `json:"notes"`
}

type updateDateArgs struct {
	ID         string          `json:"id"`
	Action     string          `json:"action"`
	Status     string          `json:"status"`
	Deal       json.RawMessage `json:"deal"`
	Billing    string          `json:"billing"`
	SetLength  *int            `json:"set_length"`
	Details    json.RawMessage `json:"details"`
	Note       string          `json:"note"`
	HoldReason string          `json:"hold_reason"`
	HoldDays   int             `json:"hold_days"`
}

type deleteDateArgs struct {
	ID string `json:"id"`
}

// HandleTool dispatches one tool call. Unknown tool names fail; every known
// tool maps 1:1 onto a service method.
func (a *Agent) HandleTool(ctx context.Context, viewer Viewer, name string, args json.RawMessage) (any, error) {
	switch name {
	case ToolAddDate:
		var in addDateArgs
		if err := json.Unmarshal(args, &in); err != nil {
			return nil, ErrValidation
		}
		deal, err := decodeAgentDeal(in.Deal)
		if err != nil {
			return nil, ErrValidation
		}
		e, err := a.service.CreateEntry(ctx, viewer, CreateEntryInput{
			Date:      in.Date,
			ArtistID:  in.ArtistID,
			VenueID:   in.VenueID,
			Billing:   in.Billing,
			SetLength: in.SetLength,
			Deal:      deal,
			Details:   in.Details,
			Notes:     in.Notes,
		})
		if err != nil {
			return nil, err
		}
		return toEntryResponse(e, viewer), nil

	case ToolUpdateDate:
		var in updateDateArgs
		if err := json.Unmarshal(args, &in); err != nil {
			return nil, ErrValidation
		}
		deal, err := decodeAgentDeal(in.Deal)
		if err != nil {
			return nil, ErrValidation
		}
		patch := EntryPatch{
			Deal:       deal,
			SetLength:  in.SetLength,
			Details:    in.Details,
			Note:       in.Note,
			HoldReason: in.HoldReason,
			HoldDays:   in.HoldDays,
		}
		if in.Billing != "" {
			patch.Billing = &in.Billing
		}

		var e *domain.DateEntry
		switch {
		case in.Action != "":
			e, err = a.service.ApplyAction(ctx, viewer, in.ID, Action(in.Action), patch)
		case in.Status != "":
			e, err = a.service.ApplyStatus(ctx, viewer, in.ID, domain.EntryStatus(in.Status), patch)
		default:
			e, err = a.service.UpdateEntry(ctx, viewer, in.ID, patch)
		}
		if err != nil {
			return nil, err
		}
		return toEntryResponse(e, viewer), nil

	case ToolDeleteDate:
		var in deleteDateArgs
		if err := json.Unmarshal(args, &in); err != nil {
			return nil, ErrValidation
		}
		if err := a.service.DeleteEntry(ctx, viewer, in.ID); err != nil {
			return nil, err
		}
		return gin.H{"deleted": true, "id": in.ID}, nil

	case ToolGetDates:
		list, err := a.service.ListEntries(ctx, viewer)
		if err != nil {
			return nil, err
		}
		out := make([]EntryResponse, 0, len(list))
		for i := range list {
			out = append(out, toEntryResponse(&list[i], viewer))
		}
		return gin.H{"dates": out}, nil

	default:
		return nil, fmt.Errorf("%w: unknown tool %q", ErrValidation, name)
	}
}

// decodeAgentDeal accepts the tagged wire shape, a display string the agent
// extracted from conversation ("$500 vs 80% of door"), or a bare number.
func decodeAgentDeal(raw json.RawMessage) (*domain.Deal, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}
	trimmed := strings.TrimSpace(string(raw))
	if strings.HasPrefix(trimmed, `"`) {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil, err
		}
		return domain.ParseDeal(s), nil
	}
	var d domain.Deal
	if err := json.Unmarshal(raw, &d); err != nil {
		return nil, err
	}
	return &d, nil
}

type toolCallRequest struct {
	Name      string          `json:"name" binding:"required"`
	Arguments json.RawMessage `json:"arguments"`
}

// RegisterRoutes exposes the tool surface to the agent runtime.
func (a *Agent) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/agent/tools", a.handleToolCall)
}

func (a *Agent) handleToolCall(c *gin.Context) {
	viewer, ok := ViewerFromContext(c)
	if !ok {
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "Viewer is not an artist or venue")
		return
	}

	var req toolCallRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid tool call")
		return
	}

	out, err := a.HandleTool(c.Request.Context(), viewer, req.Name, req.Arguments)
	if err != nil {
		writeEngineError(c, err)
		return
	}
	response.Success(c, http.StatusOK, out)
}
