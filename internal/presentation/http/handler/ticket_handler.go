package handler

import (
	"math"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/lsestacionamento/parking-api/internal/application/service"
	"github.com/lsestacionamento/parking-api/internal/presentation/http/dto/request"
	"github.com/lsestacionamento/parking-api/internal/presentation/http/dto/response"
	"github.com/lsestacionamento/parking-api/pkg/pagination"
)

// TicketHandler handles parking ticket HTTP requests.
type TicketHandler struct {
	ticketService *service.TicketService
}

// NewTicketHandler creates a new ticket handler
func NewTicketHandler(ticketService *service.TicketService) *TicketHandler {
	return &TicketHandler{ticketService: ticketService}
}

// Create opens a new ticket.
func (h *TicketHandler) Create(c *gin.Context) {
	var req request.CreateTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request: "+err.Error())
		return
	}

	ticket, err := h.ticketService.CreateTicket(c.Request.Context(), &service.CreateTicketInput{
		Name:       req.Name,
		Phone:      req.Phone,
		MakeModel:  req.MakeModel,
		Plate:      req.Plate,
		Slot:       req.Slot,
		EntryTime:  req.EntryTime,
		HourlyRate: toCents(req.HourlyRate),
		DailyCap:   toCents(req.DailyCap),
		Note:       req.Note,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Ticket created successfully", ticket)
}

// ListActive lists the currently open tickets.
func (h *TicketHandler) ListActive(c *gin.Context) {
	tickets, err := h.ticketService.ListActive(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Active tickets retrieved", tickets)
}

// Finalize closes an active ticket and computes its charge.
func (h *TicketHandler) Finalize(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "Invalid ticket ID")
		return
	}

	var req request.FinalizeTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request: "+err.Error())
		return
	}

	ticket, err := h.ticketService.FinalizeTicket(c.Request.Context(), uint(id), &service.FinalizeTicketInput{
		ExitTime:   req.ExitTime,
		Payment:    req.Payment,
		Discount:   toCents(req.Discount),
		LostTicket: req.LostTicket,
		Note:       req.Note,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Ticket finalized successfully", ticket)
}

// History lists finalized tickets, paginated.
func (h *TicketHandler) History(c *gin.Context) {
	params := pagination.DefaultPagination()
	if page, err := strconv.Atoi(c.DefaultQuery("page", "1")); err == nil {
		params.Page = page
	}
	if perPage, err := strconv.Atoi(c.DefaultQuery("per_page", "50")); err == nil {
		params.PerPage = perPage
	}

	result, err := h.ticketService.ListHistory(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithPagination(c, 200, "Ticket history retrieved", result)
}

// PurgeHistory deletes every finalized ticket.
func (h *TicketHandler) PurgeHistory(c *gin.Context) {
	deleted, err := h.ticketService.PurgeHistory(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Ticket history cleared", gin.H{"deleted": deleted})
}

// toCents converts a decimal currency value from a request into cents.
func toCents(v float64) int64 {
	return int64(math.Round(v * 100))
}
