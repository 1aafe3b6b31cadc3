package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rentledger/backend/internal/application/rental"
)

// SummaryHandler handles the monthly summary report endpoint
type SummaryHandler struct {
	BaseHandler
	summaryService *rental.SummaryService
}

// NewSummaryHandler creates a new summary handler
func NewSummaryHandler(summaryService *rental.SummaryService) *SummaryHandler {
	return &SummaryHandler{summaryService: summaryService}
}

// SummaryQuery represents the month/year query parameters
type SummaryQuery struct {
	Month int `form:"month" binding:"required"`
	Year  int `form:"year" binding:"required"`
}

// SummaryTenantLine presents one tenant's electricity line with
// monetary values fixed to two decimal places
type SummaryTenantLine struct {
	TenantID   uuid.UUID `json:"tenant_id"`
	Name       string    `json:"name"`
	RoomNo     string    `json:"room_no"`
	TotalUnits string    `json:"total_units"`
	Bill       string    `json:"bill"`
	IsPaid     bool      `json:"is_paid"`
}

// SummaryResponse presents the monthly report. Totals are rendered with
// two decimal places; rounding happens here, never in the domain.
type SummaryResponse struct {
	Month              string              `json:"month"`
	Year               int                 `json:"year"`
	Tenants            []SummaryTenantLine `json:"tenants"`
	TotalRent          string              `json:"total_rent"`
	TotalElectricity   string              `json:"total_electricity"`
	TotalOtherExpenses string              `json:"total_other_expenses"`
	NetBalance         string              `json:"net_balance"`
}

// RegisterRoutes registers the summary route
func (h *SummaryHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/summary", h.GetSummary)
}

// GetSummary builds the owner's financial report for one month
func (h *SummaryHandler) GetSummary(c *gin.Context) {
	ownerID, err := getOwnerID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var query SummaryQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		h.BadRequest(c, "month and year are required")
		return
	}

	report, err := h.summaryService.Summarize(c.Request.Context(), ownerID, query.Month, query.Year)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, toSummaryResponse(report))
}

func toSummaryResponse(report *rental.Report) SummaryResponse {
	lines := make([]SummaryTenantLine, len(report.Tenants))
	for i, line := range report.Tenants {
		lines[i] = SummaryTenantLine{
			TenantID:   line.TenantID,
			Name:       line.Name,
			RoomNo:     line.RoomNo,
			TotalUnits: line.TotalUnits.StringFixed(2),
			Bill:       line.Bill.StringFixed(2),
			IsPaid:     line.IsPaid,
		}
	}
	return SummaryResponse{
		Month:              report.Month,
		Year:               report.Year,
		Tenants:            lines,
		TotalRent:          report.TotalRent.StringFixed(2),
		TotalElectricity:   report.TotalElectricity.StringFixed(2),
		TotalOtherExpenses: report.TotalOtherExpenses.StringFixed(2),
		NetBalance:         report.NetBalance.StringFixed(2),
	}
}
