package service

import (
	"context"
	"time"

	"github.com/lsestacionamento/parking-api/internal/config"
	"github.com/lsestacionamento/parking-api/internal/domain/entity"
	"github.com/lsestacionamento/parking-api/internal/domain/enum"
	"github.com/lsestacionamento/parking-api/internal/domain/repository"
	"github.com/lsestacionamento/parking-api/pkg/apperror"
	"github.com/lsestacionamento/parking-api/pkg/pagination"
	"github.com/lsestacionamento/parking-api/pkg/tariff"
)

// Accepted exit time layouts, tried in order.
var exitTimeLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	time.RFC3339,
}

// TicketService handles the parking ticket lifecycle
type TicketService struct {
	ticketRepo repository.TicketRepository
	tariffCfg  config.TariffConfig
	loc        *time.Location
}

// NewTicketService creates a new ticket service
func NewTicketService(ticketRepo repository.TicketRepository, tariffCfg config.TariffConfig, loc *time.Location) *TicketService {
	return &TicketService{
		ticketRepo: ticketRepo,
		tariffCfg:  tariffCfg,
		loc:        loc,
	}
}

// CreateTicketInput represents the create ticket input. Money is in cents.
type CreateTicketInput struct {
	Name       string
	Phone      string
	MakeModel  string
	Plate      string
	Slot       *string
	EntryTime  *time.Time
	HourlyRate int64
	DailyCap   int64
	Note       *string
}

// CreateTicket opens a new active ticket. When no entry time is given the
// ticket starts now, in the lot's timezone.
func (s *TicketService) CreateTicket(ctx context.Context, input *CreateTicketInput) (*entity.Ticket, error) {
	entryTime := time.Now().In(s.loc)
	if input.EntryTime != nil {
		entryTime = input.EntryTime.In(s.loc)
	}

	ticket := &entity.Ticket{
		Name:       input.Name,
		Phone:      input.Phone,
		MakeModel:  input.MakeModel,
		Plate:      input.Plate,
		Slot:       input.Slot,
		EntryTime:  entryTime,
		Status:     enum.TicketStatusActive,
		HourlyRate: input.HourlyRate,
		DailyCap:   input.DailyCap,
		Note:       input.Note,
	}

	if err := s.ticketRepo.Create(ctx, ticket); err != nil {
		return nil, err
	}
	return ticket, nil
}

// ListActive returns the currently open tickets, oldest entry first.
func (s *TicketService) ListActive(ctx context.Context) ([]entity.Ticket, error) {
	return s.ticketRepo.ListActive(ctx)
}

// ListHistory returns finalized tickets, most recent entry first.
func (s *TicketService) ListHistory(ctx context.Context, params *pagination.PaginationParams) (*pagination.PaginatedResult[entity.Ticket], error) {
	params.Validate()
	tickets, total, err := s.ticketRepo.ListFinalized(ctx, params)
	if err != nil {
		return nil, err
	}
	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(tickets, pag), nil
}

// FinalizeTicketInput represents the finalize ticket input. Discount is in
// cents.
type FinalizeTicketInput struct {
	ExitTime   string
	Payment    string
	Discount   int64
	LostTicket bool
	Note       *string
}

// FinalizeTicket closes an active ticket: it resolves the exit time, computes
// the charge and persists the breakdown in a single guarded update so that a
// ticket can only be finalized once.
func (s *TicketService) FinalizeTicket(ctx context.Context, id uint, input *FinalizeTicketInput) (*entity.Ticket, error) {
	ticket, err := s.ticketRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if ticket == nil {
		return nil, apperror.NewNotFoundError("Ticket")
	}
	if !ticket.IsActive() {
		return nil, apperror.NewConflictError("Ticket is already finalized")
	}

	exitTime := time.Now().In(s.loc)
	if input.ExitTime != "" {
		parsed, err := s.parseExitTime(input.ExitTime)
		if err != nil {
			return nil, apperror.NewBadRequestError("Invalid exit time format")
		}
		exitTime = parsed
	}
	if exitTime.Before(ticket.EntryTime) {
		return nil, apperror.NewBadRequestError("Exit time cannot be before entry time")
	}

	payment, ok := enum.ParsePaymentMethod(input.Payment)
	if !ok {
		return nil, apperror.NewBadRequestError("Invalid payment method")
	}

	breakdown := tariff.ComputeCharge(ticket.EntryTime, exitTime, tariff.Params{
		HourlyRate:              ticket.HourlyRate,
		MinimumChargeMinutes:    s.tariffCfg.MinimumChargeMinutes,
		RoundingFractionMinutes: s.tariffCfg.RoundingFractionMinutes,
		LostTicketFee:           s.tariffCfg.LostTicketFee,
		Discount:                input.Discount,
		DailyCap:                ticket.DailyCap,
		LostTicket:              input.LostTicket,
	})

	changes := map[string]interface{}{
		"status":          enum.TicketStatusFinalized,
		"exit_time":       exitTime,
		"elapsed_minutes": breakdown.ElapsedMinutes,
		"charged_minutes": breakdown.ChargedMinutes,
		"sub_total":       breakdown.SubTotal,
		"discount":        breakdown.Discount,
		"extra":           breakdown.Extra,
		"total":           breakdown.Total,
		"payment":         payment,
		"updated_at":      time.Now().In(s.loc),
	}
	if input.Note != nil {
		changes["note"] = *input.Note
	}

	rows, err := s.ticketRepo.Finalize(ctx, id, changes)
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		// The guarded update lost a race: either the row is gone or another
		// request finalized it first.
		current, err := s.ticketRepo.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if current == nil {
			return nil, apperror.NewNotFoundError("Ticket")
		}
		return nil, apperror.NewConflictError("Ticket is already finalized")
	}

	return s.ticketRepo.GetByID(ctx, id)
}

// PurgeHistory deletes every finalized ticket and reports how many were
// removed. Active tickets are never touched.
func (s *TicketService) PurgeHistory(ctx context.Context) (int64, error) {
	return s.ticketRepo.PurgeFinalized(ctx)
}

// ListRange returns tickets whose entry falls on the given dates, inclusive.
// Dates use the "2006-01-02" layout and are widened to whole days in the
// lot's timezone.
func (s *TicketService) ListRange(ctx context.Context, inicio, fim string) ([]entity.Ticket, error) {
	start, end, err := ParseDayRange(inicio, fim, s.loc)
	if err != nil {
		return nil, err
	}
	return s.ticketRepo.ListByEntryRange(ctx, start, end)
}

// ParseDayRange parses a pair of dates and widens them to [00:00:00,
// 23:59:59] of their respective days in loc.
func ParseDayRange(inicio, fim string, loc *time.Location) (time.Time, time.Time, error) {
	startDay, err := time.ParseInLocation("2006-01-02", inicio, loc)
	if err != nil {
		return time.Time{}, time.Time{}, apperror.NewBadRequestError("Invalid start date, expected YYYY-MM-DD")
	}
	endDay, err := time.ParseInLocation("2006-01-02", fim, loc)
	if err != nil {
		return time.Time{}, time.Time{}, apperror.NewBadRequestError("Invalid end date, expected YYYY-MM-DD")
	}
	if endDay.Before(startDay) {
		return time.Time{}, time.Time{}, apperror.NewBadRequestError("End date cannot be before start date")
	}

	start := time.Date(startDay.Year(), startDay.Month(), startDay.Day(), 0, 0, 0, 0, loc)
	end := time.Date(endDay.Year(), endDay.Month(), endDay.Day(), 23, 59, 59, 0, loc)
	return start, end, nil
}

func (s *TicketService) parseExitTime(value string) (time.Time, error) {
	var lastErr error
	for _, layout := range exitTimeLayouts {
		t, err := time.ParseInLocation(layout, value, s.loc)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}
