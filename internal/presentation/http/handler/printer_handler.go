package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/lsestacionamento/parking-api/internal/application/service"
	"github.com/lsestacionamento/parking-api/internal/presentation/http/dto/request"
	"github.com/lsestacionamento/parking-api/internal/presentation/http/dto/response"
)

// PrinterHandler handles printer-related HTTP requests.
type PrinterHandler struct {
	printerService *service.PrinterService
}

// NewPrinterHandler creates a new printer handler.
func NewPrinterHandler(printerService *service.PrinterService) *PrinterHandler {
	return &PrinterHandler{printerService: printerService}
}

// GetStatus returns the current printer connection status.
func (h *PrinterHandler) GetStatus(c *gin.Context) {
	status := h.printerService.GetStatus()
	response.OK(c, "Printer status retrieved", status)
}

// TestPrint sends a test page to the printer.
func (h *PrinterHandler) TestPrint(c *gin.Context) {
	receipt, err := h.printerService.TestPrint()
	if err != nil {
		// Return the receipt data anyway (useful when printer type is "none")
		response.OK(c, "Test print completed (printer may be disabled)", gin.H{
			"receipt": receipt,
			"warning": err.Error(),
		})
		return
	}

	response.OK(c, "Test page sent to printer", gin.H{
		"receipt": receipt,
	})
}

// GenerateEscpos encodes a ticket receipt as an ESC/POS byte stream and
// returns it base64-encoded for relaying to a printer app such as RawBT.
func (h *PrinterHandler) GenerateEscpos(c *gin.Context) {
	var req request.EscposTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request: "+err.Error())
		return
	}

	result, err := h.printerService.GenerateEscpos(c.Request.Context(), req.ID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Receipt encoded successfully", result)
}
