package timeline

import (
	"net/http"
	"strings"

	"gigboard/internal/modules/booking"
	"gigboard/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	bookings *booking.Service
}

func NewHandler(bookings *booking.Service) *Handler {
	return &Handler{bookings: bookings}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/timeline", h.GetTimeline)
}

// GetTimeline returns the aggregated per-date view. Expansion state is
// owned by the caller, not the aggregator: multi-entry groups collapse to
// their summary row unless their date is listed in ?expanded=.
func (h *Handler) GetTimeline(c *gin.Context) {
	viewer, ok := booking.ViewerFromContext(c)
	if !ok {
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "Viewer is not an artist or venue")
		return
	}

	entries, err := h.bookings.ListEntries(c.Request.Context(), viewer)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load negotiation records")
		return
	}

	groups := Aggregate(entries, viewer.Role)

	expanded := map[string]bool{}
	if raw := c.Query("expanded"); raw != "" {
		for _, d := range strings.Split(raw, ",") {
			expanded[strings.TrimSpace(d)] = true
		}
	}
	for i := range groups {
		if groups[i].Count > 1 && !expanded[groups[i].Date] {
			groups[i].Siblings = nil
		}
	}

	response.Success(c, http.StatusOK, gin.H{"timeline": groups})
}
