package service

import (
	"context"
	"fmt"
	"time"

	"github.com/lsestacionamento/parking-api/internal/domain/repository"
	"github.com/lsestacionamento/parking-api/pkg/report"
)

// ReportService renders tabular ticket reports.
type ReportService struct {
	ticketRepo repository.TicketRepository
	loc        *time.Location
}

// NewReportService creates a new report service
func NewReportService(ticketRepo repository.TicketRepository, loc *time.Location) *ReportService {
	return &ReportService{ticketRepo: ticketRepo, loc: loc}
}

// TicketsPDF builds the PDF report of every ticket whose entry falls between
// inicio and fim (inclusive, "2006-01-02"). It returns the document and the
// filename to serve it under.
func (s *ReportService) TicketsPDF(ctx context.Context, inicio, fim string) ([]byte, string, error) {
	start, end, err := ParseDayRange(inicio, fim, s.loc)
	if err != nil {
		return nil, "", err
	}

	tickets, err := s.ticketRepo.ListByEntryRange(ctx, start, end)
	if err != nil {
		return nil, "", err
	}

	pdf, err := report.RenderTicketsPDF(tickets, inicio, s.loc)
	if err != nil {
		return nil, "", err
	}

	return pdf, fmt.Sprintf("relatorio-tickets-%s.pdf", inicio), nil
}
