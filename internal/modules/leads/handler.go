package leads

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"remarkcrm/internal/pkg/response"
	"remarkcrm/internal/pkg/validator"
	"remarkcrm/internal/repository"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/leads", h.List)
	rg.POST("/leads", h.Create)
	rg.DELETE("/leads", h.Reset)
	rg.POST("/leads/bulk", h.UpdateMany)
	rg.POST("/leads/deduplicate", h.RemoveDuplicates)
	rg.PATCH("/leads/:id", h.UpdateOne)
	rg.POST("/leads/:id/convert", h.Convert)
}

func (h *Handler) List(c *gin.Context) {
	filter := repository.LeadFilter{
		Statuses:     splitMulti(c.QueryArray("stav_leadu")),
		Priorities:   splitMulti(c.QueryArray("priorita")),
		InquiryTypes: splitMulti(c.QueryArray("typ_dopytu")),
		Cities:       splitMulti(c.QueryArray("mesto")),
		Query:        c.Query("q"),
	}

	leads, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list leads")
		return
	}
	response.Success(c, http.StatusOK, gin.H{
		"leads": leads,
		"total": len(leads),
	})
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateLeadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	if details := validator.Validate(req); details != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid lead payload", details)
		return
	}

	l, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		switch err {
		case ErrValidation:
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Customer name, a first contact date and phone or email are required")
		case ErrDuplicate:
			response.Error(c, http.StatusConflict, "DUPLICATE_LEAD", "A matching lead already exists")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to create lead")
		}
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"lead": l})
}

func (h *Handler) UpdateOne(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid lead id")
		return
	}

	var fields map[string]interface{}
	if err := c.ShouldBindJSON(&fields); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	delete(fields, "id")

	if err := h.service.UpdateOne(c.Request.Context(), id, fields); err != nil {
		switch err {
		case ErrNotFound:
			response.Error(c, http.StatusNotFound, "LEAD_NOT_FOUND", "Lead does not exist")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to update lead")
		}
		return
	}
	response.Success(c, http.StatusOK, gin.H{"id": id})
}

func (h *Handler) UpdateMany(c *gin.Context) {
	var req BulkUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	if details := validator.Validate(req); details != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid bulk update payload", details)
		return
	}

	updated, err := h.service.UpdateMany(c.Request.Context(), req.Updates)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to apply bulk update")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"updated": updated})
}

func (h *Handler) Convert(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid lead id")
		return
	}

	if err := h.service.Convert(c.Request.Context(), id); err != nil {
		switch err {
		case ErrNotFound:
			response.Error(c, http.StatusNotFound, "LEAD_NOT_FOUND", "Lead does not exist")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to convert lead")
		}
		return
	}
	response.Success(c, http.StatusOK, gin.H{"id": id})
}

func (h *Handler) RemoveDuplicates(c *gin.Context) {
	removed, err := h.service.RemoveDuplicates(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to remove duplicates")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"removed": removed})
}

func (h *Handler) Reset(c *gin.Context) {
	removed, err := h.service.Reset(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to reset leads")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"removed": removed})
}

// splitMulti accepts both repeated query params and comma-joined values
func splitMulti(values []string) []string {
	var out []string
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if s := strings.TrimSpace(part); s != "" {
				out = append(out, s)
			}
		}
	}
	return out
}
