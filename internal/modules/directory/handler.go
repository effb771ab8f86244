package directory

import (
	"net/http"
	"strconv"

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
	rg.GET("/artists", h.ListArtists)
	rg.GET("/artists/:id", h.GetArtist)
	rg.GET("/venues", h.ListVenues)
	rg.GET("/venues/:id", h.GetVenue)
}

func (h *Handler) ListArtists(c *gin.Context) {
	limit, offset := pagination(c)
	artists, err := h.service.ListArtists(c.Request.Context(), limit, offset)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list artists")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"artists": artists})
}

func (h *Handler) GetArtist(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid artist id")
		return
	}
	artist, err := h.service.GetArtist(c.Request.Context(), id)
	if err != nil {
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Artist not found")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"artist": artist})
}

func (h *Handler) ListVenues(c *gin.Context) {
	limit, offset := pagination(c)
	venues, err := h.service.ListVenues(c.Request.Context(), limit, offset)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list venues")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"venues": venues})
}

func (h *Handler) GetVenue(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid venue id")
		return
	}
	venue, err := h.service.GetVenue(c.Request.Context(), id)
	if err != nil {
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Venue not found")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"venue": venue})
}

func pagination(c *gin.Context) (int, int) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if limit < 0 {
		limit = 0
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
