package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/lsestacionamento/parking-api/internal/application/service"
	"github.com/lsestacionamento/parking-api/internal/presentation/http/dto/response"
)

// ReportHandler serves tabular ticket reports.
type ReportHandler struct {
	reportService *service.ReportService
}

// NewReportHandler creates a new report handler
func NewReportHandler(reportService *service.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// TicketsPDF streams the PDF report for the requested date range. Both query
// parameters use the "2006-01-02" layout; fim defaults to inicio.
func (h *ReportHandler) TicketsPDF(c *gin.Context) {
	inicio := c.Query("inicio")
	fim := c.DefaultQuery("fim", inicio)
	if inicio == "" {
		response.BadRequest(c, "Query parameter 'inicio' is required")
		return
	}

	pdf, filename, err := h.reportService.TicketsPDF(c.Request.Context(), inicio, fim)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(200, "application/pdf", pdf)
}
