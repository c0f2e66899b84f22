package prefs

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"remarkcrm/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/prefs/categories", h.GetCategories)
	rg.PUT("/prefs/categories", h.PutCategories)
	rg.GET("/prefs/grid", h.GetGrid)
	rg.PUT("/prefs/grid", h.PutGrid)
}

func (h *Handler) GetCategories(c *gin.Context) {
	cats, err := h.service.Categories(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load category preferences")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"categories": cats})
}

func (h *Handler) PutCategories(c *gin.Context) {
	var cats map[string][]string
	if err := c.ShouldBindJSON(&cats); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	if err := h.service.SaveCategories(cats); err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to save category preferences")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"categories": cats})
}

func (h *Handler) GetGrid(c *gin.Context) {
	response.Success(c, http.StatusOK, gin.H{"column_state": h.service.Grid()})
}

func (h *Handler) PutGrid(c *gin.Context) {
	var req struct {
		ColumnState []GridColumn `json:"column_state" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	if err := h.service.SaveGrid(req.ColumnState); err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to save grid preferences")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"column_state": req.ColumnState})
}
