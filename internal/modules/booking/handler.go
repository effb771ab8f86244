package booking

import (
	"errors"
	"net/http"

	"gigboard/internal/domain"
	"gigboard/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/dates", h.CreateDate)
	rg.GET("/dates", h.ListDates)
	rg.GET("/dates/:id", h.GetDate)
	rg.POST("/dates/:id/actions", h.ApplyAction)
	rg.PATCH("/dates/:id", h.UpdateDate)
	rg.DELETE("/dates/:id", h.DeleteDate)
	rg.POST("/dates/:id/payout", h.EvaluatePayout)
}

// ViewerFromContext builds the capability the engine consumes from claims
// the auth middleware put on the context.
func ViewerFromContext(c *gin.Context) (Viewer, bool) {
	role := domain.Role(c.GetString("role"))
	partyID := c.GetInt64("party_id")
	if (role != domain.RoleArtist && role != domain.RoleVenue) || partyID == 0 {
		return Viewer{}, false
	}
	return Viewer{Role: role, PartyID: partyID}, true
}

func (h *Handler) CreateDate(c *gin.Context) {
	viewer, ok := ViewerFromContext(c)
	if !ok {
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "Viewer is not an artist or venue")
		return
	}

	var req CreateDateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	e, err := h.service.CreateEntry(c.Request.Context(), viewer, CreateEntryInput{
		Date:      req.Date,
		ArtistID:  req.ArtistID,
		VenueID:   req.VenueID,
		Billing:   req.Billing,
		SetLength: req.SetLength,
		Deal:      req.Deal,
		Details:   req.Details,
		Notes:     req.Notes,
	})
	if err != nil {
		writeEngineError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, toEntryResponse(e, viewer))
}

func (h *Handler) ListDates(c *gin.Context) {
	viewer, ok := ViewerFromContext(c)
	if !ok {
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "Viewer is not an artist or venue")
		return
	}

	list, err := h.service.ListEntries(c.Request.Context(), viewer)
	if err != nil {
		writeEngineError(c, err)
		return
	}

	out := make([]EntryResponse, 0, len(list))
	for i := range list {
		out = append(out, toEntryResponse(&list[i], viewer))
	}
	response.Success(c, http.StatusOK, gin.H{"dates": out})
}

func (h *Handler) GetDate(c *gin.Context) {
	viewer, ok := ViewerFromContext(c)
	if !ok {
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "Viewer is not an artist or venue")
		return
	}

	e, err := h.service.GetEntry(c.Request.Context(), viewer, c.Param("id"))
	if err != nil {
		writeEngineError(c, err)
		return
	}
	response.Success(c, http.StatusOK, toEntryResponse(e, viewer))
}

func (h *Handler) ApplyAction(c *gin.Context) {
	viewer, ok := ViewerFromContext(c)
	if !ok {
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "Viewer is not an artist or venue")
		return
	}

	var req ActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	if (req.Action == "") == (req.Status == "") {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Provide exactly one of action or status")
		return
	}

	patch := EntryPatch{
		Deal:       req.Deal,
		Billing:    req.Billing,
		SetLength:  req.SetLength,
		Details:    req.Details,
		Note:       req.Note,
		HoldReason: req.HoldReason,
		HoldDays:   req.HoldDays,
	}

	var (
		e   *domain.DateEntry
		err error
	)
	if req.Action != "" {
		e, err = h.service.ApplyAction(c.Request.Context(), viewer, c.Param("id"), Action(req.Action), patch)
	} else {
		e, err = h.service.ApplyStatus(c.Request.Context(), viewer, c.Param("id"), domain.EntryStatus(req.Status), patch)
	}
	if err != nil {
		writeEngineError(c, err)
		return
	}
	response.Success(c, http.StatusOK, toEntryResponse(e, viewer))
}

func (h *Handler) UpdateDate(c *gin.Context) {
	viewer, ok := ViewerFromContext(c)
	if !ok {
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "Viewer is not an artist or venue")
		return
	}

	var req UpdateDateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	e, err := h.service.UpdateEntry(c.Request.Context(), viewer, c.Param("id"), EntryPatch{
		Deal:      req.Deal,
		Billing:   req.Billing,
		SetLength: req.SetLength,
		Details:   req.Details,
		Note:      req.Note,
	})
	if err != nil {
		writeEngineError(c, err)
		return
	}
	response.Success(c, http.StatusOK, toEntryResponse(e, viewer))
}

func (h *Handler) DeleteDate(c *gin.Context) {
	viewer, ok := ViewerFromContext(c)
	if !ok {
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "Viewer is not an artist or venue")
		return
	}

	if err := h.service.DeleteEntry(c.Request.Context(), viewer, c.Param("id")); err != nil {
		writeEngineError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}

func (h *Handler) EvaluatePayout(c *gin.Context) {
	viewer, ok := ViewerFromContext(c)
	if !ok {
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "Viewer is not an artist or venue")
		return
	}

	var req PayoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	e, err := h.service.GetEntry(c.Request.Context(), viewer, c.Param("id"))
	if err != nil {
		writeEngineError(c, err)
		return
	}
	payout, ok := e.Deal.Payout(req.Revenue)
	if !ok {
		response.Error(c, http.StatusUnprocessableEntity, "NOT_EVALUABLE", "Deal terms cannot be evaluated against revenue")
		return
	}
	response.Success(c, http.StatusOK, gin.H{
		"terms":   e.Deal.Format(),
		"revenue": req.Revenue,
		"payout":  payout,
	})
}

// writeEngineError maps engine sentinels onto the wire taxonomy. Recoverable
// failures ("you can't do that right now", "someone else took this date")
// get distinct codes from plain not-found.
func writeEngineError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrInvalidTransition):
		response.Error(c, http.StatusUnprocessableEntity, "INVALID_TRANSITION", "Action is not legal for the current status and role")
	case errors.Is(err, ErrAlreadyBooked):
		response.Error(c, http.StatusConflict, "CONFLICT_ALREADY_BOOKED", "Another entry is already confirmed for this artist and date")
	case errors.Is(err, ErrConfirmedDealLocked):
		response.Error(c, http.StatusUnprocessableEntity, "INVALID_TRANSITION", "Deal terms are locked after confirmation")
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Date entry not found")
	case errors.Is(err, ErrForbidden):
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "You are not a party to this negotiation")
	case errors.Is(err, ErrValidation):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid payload")
	case errors.Is(err, ErrInvariantViolation):
		response.Error(c, http.StatusInternalServerError, "INVARIANT_VIOLATION", "Negotiation state is corrupt; nothing was changed")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Unexpected failure")
	}
}
