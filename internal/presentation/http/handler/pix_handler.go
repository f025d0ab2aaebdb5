package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/lsestacionamento/parking-api/internal/application/service"
	"github.com/lsestacionamento/parking-api/internal/presentation/http/dto/request"
	"github.com/lsestacionamento/parking-api/internal/presentation/http/dto/response"
)

// PixHandler handles PIX charge generation requests.
type PixHandler struct {
	pixService *service.PixService
}

// NewPixHandler creates a new PIX handler
func NewPixHandler(pixService *service.PixService) *PixHandler {
	return &PixHandler{pixService: pixService}
}

// GenerateCharge builds a PIX charge payload and QR code for an amount.
func (h *PixHandler) GenerateCharge(c *gin.Context) {
	var req request.PixChargeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request: "+err.Error())
		return
	}

	charge, err := h.pixService.GenerateCharge(toCents(req.Valor), req.Chave)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "PIX charge generated", charge)
}
