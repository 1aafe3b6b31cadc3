package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rentledger/backend/internal/application/rental"
	domainrental "github.com/rentledger/backend/internal/domain/rental"
	"github.com/shopspring/decimal"
)

// ReadingHandler handles electricity reading HTTP requests
type ReadingHandler struct {
	BaseHandler
	readingService *rental.ReadingService
}

// NewReadingHandler creates a new reading handler
func NewReadingHandler(readingService *rental.ReadingService) *ReadingHandler {
	return &ReadingHandler{readingService: readingService}
}

// PreviousReadingQuery represents query parameters for the previous reading lookup
type PreviousReadingQuery struct {
	TenantID string `form:"tenant_id" binding:"required,uuid"`
	Month    int    `form:"month" binding:"required"`
	Year     int    `form:"year" binding:"required"`
}

// PreviousReadingResponse carries the resolved previous meter value
type PreviousReadingResponse struct {
	TenantID        uuid.UUID       `json:"tenant_id"`
	Month           int             `json:"month"`
	Year            int             `json:"year"`
	PreviousReading decimal.Decimal `json:"previous_reading"`
}

// ReadingListQuery represents optional list filters
type ReadingListQuery struct {
	TenantID string `form:"tenant_id" binding:"omitempty,uuid"`
	Month    *int   `form:"month"`
	Year     *int   `form:"year"`
}

// MissingReadingsQuery represents query parameters for the missing readings audit
type MissingReadingsQuery struct {
	Month int `form:"month" binding:"required"`
	Year  int `form:"year" binding:"required"`
}

// RegisterRoutes registers reading routes
func (h *ReadingHandler) RegisterRoutes(rg *gin.RouterGroup) {
	readings := rg.Group("/readings")
	readings.POST("", h.Create)
	readings.GET("", h.List)
	readings.GET("/previous", h.GetPrevious)
	readings.GET("/missing", h.GetMissing)
	readings.GET("/:id", h.GetByID)
	readings.PUT("/:id", h.Update)
	readings.DELETE("/:id", h.Delete)
}

// Create records a reading for a billing period
func (h *ReadingHandler) Create(c *gin.Context) {
	ownerID, err := getOwnerID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req rental.CreateReadingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	reading, err := h.readingService.CreateReading(c.Request.Context(), ownerID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, reading)
}

// List returns the owner's readings with optional tenant and period filters
func (h *ReadingHandler) List(c *gin.Context) {
	ownerID, err := getOwnerID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var query ReadingListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		h.BadRequest(c, "Invalid query parameters")
		return
	}

	filter := domainrental.ReadingFilter{
		Month: query.Month,
		Year:  query.Year,
	}
	if query.TenantID != "" {
		tenantID, err := uuid.Parse(query.TenantID)
		if err != nil {
			h.BadRequest(c, "Invalid tenant ID")
			return
		}
		filter.TenantID = &tenantID
	}

	readings, err := h.readingService.ListReadings(c.Request.Context(), ownerID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, readings)
}

// GetPrevious returns the meter value that would be auto-resolved for a
// new reading in the given period. Zero when no earlier reading exists.
func (h *ReadingHandler) GetPrevious(c *gin.Context) {
	ownerID, err := getOwnerID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var query PreviousReadingQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		h.BadRequest(c, "tenant_id, month and year are required")
		return
	}

	tenantID, err := uuid.Parse(query.TenantID)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	previous, err := h.readingService.GetPreviousReading(c.Request.Context(), ownerID, tenantID, query.Month, query.Year)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, PreviousReadingResponse{
		TenantID:        tenantID,
		Month:           query.Month,
		Year:            query.Year,
		PreviousReading: previous,
	})
}

// GetMissing lists the owner's tenants with no reading for a period
func (h *ReadingHandler) GetMissing(c *gin.Context) {
	ownerID, err := getOwnerID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var query MissingReadingsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		h.BadRequest(c, "month and year are required")
		return
	}

	result, err := h.readingService.FindMissingReadings(c.Request.Context(), ownerID, query.Month, query.Year)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// GetByID returns one reading
func (h *ReadingHandler) GetByID(c *gin.Context) {
	ownerID, err := getOwnerID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid reading ID")
		return
	}

	reading, err := h.readingService.GetReading(c.Request.Context(), ownerID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, reading)
}

// Update applies new meter values and recalculates the bill
func (h *ReadingHandler) Update(c *gin.Context) {
	ownerID, err := getOwnerID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid reading ID")
		return
	}

	var req rental.UpdateReadingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	reading, err := h.readingService.UpdateReading(c.Request.Context(), ownerID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, reading)
}

// Delete removes a reading
func (h *ReadingHandler) Delete(c *gin.Context) {
	ownerID, err := getOwnerID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid reading ID")
		return
	}

	if err := h.readingService.DeleteReading(c.Request.Context(), ownerID, id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
