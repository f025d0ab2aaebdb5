package service

import (
	"context"
	"encoding/base64"
	"fmt"
	"log"
	"time"

	"github.com/lsestacionamento/parking-api/internal/config"
	"github.com/lsestacionamento/parking-api/internal/domain/entity"
	"github.com/lsestacionamento/parking-api/internal/domain/enum"
	"github.com/lsestacionamento/parking-api/internal/domain/repository"
	"github.com/lsestacionamento/parking-api/pkg/apperror"
	"github.com/lsestacionamento/parking-api/pkg/printer"
)

// PrinterService handles receipt formatting and thermal printing.
type PrinterService struct {
	printer    printer.Printer
	ticketRepo repository.TicketRepository
	cfg        config.PrinterConfig
	pixKey     string
	loc        *time.Location
}

// NewPrinterService creates a new printer service.
func NewPrinterService(
	p printer.Printer,
	ticketRepo repository.TicketRepository,
	cfg config.PrinterConfig,
	pixKey string,
	loc *time.Location,
) *PrinterService {
	return &PrinterService{
		printer:    p,
		ticketRepo: ticketRepo,
		cfg:        cfg,
		pixKey:     pixKey,
		loc:        loc,
	}
}

// PrinterStatus returns the current printer status information.
type PrinterStatus struct {
	Configured bool   `json:"configured"`
	Connected  bool   `json:"connected"`
	Type       string `json:"type"`
}

// GetStatus returns printer connection status.
func (s *PrinterService) GetStatus() *PrinterStatus {
	return &PrinterStatus{
		Configured: s.cfg.Type != "none" && s.cfg.Type != "",
		Connected:  s.printer.IsConnected(),
		Type:       s.cfg.Type,
	}
}

// EscposResult carries an encoded receipt back to the caller. Data is the
// base64 of the raw ESC/POS byte stream.
type EscposResult struct {
	Data    string `json:"escpos_base64"`
	Length  int    `json:"length"`
	Printed bool   `json:"printed"`
}

// GenerateEscpos builds the ESC/POS receipt for a ticket and returns it
// base64-encoded. When a physical printer is configured the stream is also
// pushed to it; a push failure does not fail the request since the caller
// can still relay the bytes itself.
func (s *PrinterService) GenerateEscpos(ctx context.Context, ticketID uint) (*EscposResult, error) {
	ticket, err := s.ticketRepo.GetByID(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	if ticket == nil {
		return nil, apperror.NewNotFoundError("Ticket")
	}

	receipt := s.BuildReceipt(ticket)
	data := FormatReceipt(receipt, s.cfg.Width)

	printed := false
	if s.printer.IsConnected() {
		if err := s.printer.Print(data); err != nil {
			log.Printf("Printer error (ticket %d): %v", ticketID, err)
		} else {
			printed = true
		}
	}

	return &EscposResult{
		Data:    base64.StdEncoding.EncodeToString(data),
		Length:  len(data),
		Printed: printed,
	}, nil
}

// TestPrint sends a test page to the printer.
// Returns the receipt data so the handler can return it as JSON when printer is disabled.
func (s *PrinterService) TestPrint() (*entity.Receipt, error) {
	receipt := &entity.Receipt{
		Header: entity.ReceiptHeader{
			StoreName: s.cfg.StoreName,
			Address:   s.cfg.Address2,
			Phone:     s.cfg.Phone,
		},
		TicketID:  "TEST-001",
		Name:      "Teste",
		Phone:     "--",
		MakeModel: "--",
		Plate:     "TST0000",
		Slot:      "--",
		Note:      "--",
		EntryTime: time.Now().In(s.loc).Format("02/01/2006 15:04"),
		ExitTime:  "--",
		SubTotal:  "R$ 0.00",
		Discount:  "R$ 0.00",
		Extra:     "R$ 0.00",
		Total:     "R$ 0.00",
		Payment:   "--",
		Status:    enum.TicketStatusActive.String(),
	}

	data := FormatReceipt(receipt, s.cfg.Width)
	if err := s.printer.Print(data); err != nil {
		return receipt, fmt.Errorf("test print failed: %w", err)
	}

	return receipt, nil
}

// BuildReceipt composes the printable receipt for a ticket: timestamps in the
// lot's timezone, money as currency strings and absent fields shown as "--".
func (s *PrinterService) BuildReceipt(t *entity.Ticket) *entity.Receipt {
	receipt := &entity.Receipt{
		Header: entity.ReceiptHeader{
			StoreName: s.cfg.StoreName,
			Address:   s.cfg.Address2,
			Phone:     s.cfg.Phone,
		},
		TicketID:       fmt.Sprintf("%d", t.ID),
		Name:           orDash(t.Name),
		Phone:          orDash(t.Phone),
		MakeModel:      orDash(t.MakeModel),
		Plate:          orDash(t.Plate),
		Slot:           orDashPtr(t.Slot),
		Note:           orDashPtr(t.Note),
		EntryTime:      t.EntryTime.In(s.loc).Format("02/01/2006 15:04"),
		ExitTime:       "--",
		ElapsedMinutes: t.ElapsedMinutes,
		ChargedMinutes: t.ChargedMinutes,
		SubTotal:       formatMoney(t.SubTotal),
		Discount:       formatMoney(t.Discount),
		Extra:          formatMoney(t.Extra),
		Total:          formatMoney(t.Total),
		Payment:        t.Payment.Display(),
		Status:         t.Status.String(),
	}

	if t.ExitTime != nil {
		receipt.ExitTime = t.ExitTime.In(s.loc).Format("02/01/2006 15:04")
	}
	if t.Payment == enum.PaymentMethodPix && s.pixKey != "" {
		receipt.PixPayload = BuildPixPayload(s.pixKey, t.Total, time.Now())
	}

	return receipt
}

// FormatReceipt converts a Receipt into ESC/POS bytes.
func FormatReceipt(r *entity.Receipt, width int) []byte {
	doc := printer.NewDocument(width)

	// Header
	doc.SetAlign(printer.AlignCenter).
		SetBold(true).
		SetFontSize(printer.FontDouble).
		Text(r.Header.StoreName).
		SetFontSize(printer.FontNormal).
		SetBold(false)

	if r.Header.Address != "" {
		doc.Text(r.Header.Address)
	}
	if r.Header.Phone != "" {
		doc.Text(r.Header.Phone)
	}

	doc.LineFeed().
		SetBold(true).
		Text("COMPROVANTE DE ESTACIONAMENTO").
		SetBold(false)

	doc.SetAlign(printer.AlignLeft).
		Separator('-')

	// Ticket info
	doc.KeyValue("Ticket:", r.TicketID).
		KeyValue("Nome:", r.Name).
		KeyValue("Telefone:", r.Phone).
		KeyValue("Marca/Modelo:", r.MakeModel).
		KeyValue("Placa:", r.Plate).
		KeyValue("Vaga:", r.Slot)

	if r.Note != "--" {
		doc.KeyValue("Obs:", r.Note)
	}

	doc.Separator('-')

	doc.KeyValue("Entrada:", r.EntryTime).
		KeyValue("Saída:", r.ExitTime)

	if r.ChargedMinutes > 0 {
		doc.KeyValue("Permanência:", fmt.Sprintf("%d min", r.ElapsedMinutes)).
			KeyValue("Cobrado:", fmt.Sprintf("%d min", r.ChargedMinutes))
	}

	doc.Separator('-')

	// Totals
	doc.KeyValue("Subtotal:", r.SubTotal)
	if r.Discount != "R$ 0.00" {
		doc.KeyValue("Desconto:", r.Discount)
	}
	if r.Extra != "R$ 0.00" {
		doc.KeyValue("Acréscimo:", r.Extra)
	}
	doc.SetBold(true).
		KeyValue("TOTAL:", r.Total).
		SetBold(false).
		KeyValue("Pagamento:", r.Payment)

	doc.Separator('-')

	// Footer
	doc.SetAlign(printer.AlignCenter).
		LineFeed().
		Text("Obrigado pela preferência!").
		Text("Guarde este comprovante.")

	if r.PixPayload != "" {
		doc.LineFeed().
			Text("Pague com PIX:").
			QRCode(r.PixPayload, 4, printer.QRECLevelM)
	}

	doc.SetAlign(printer.AlignLeft).
		FeedLines(3).
		PartialCut()

	return doc.Bytes()
}

func formatMoney(cents int64) string {
	return fmt.Sprintf("R$ %.2f", float64(cents)/100)
}

func orDash(s string) string {
	if s == "" {
		return "--"
	}
	return s
}

func orDashPtr(s *string) string {
	if s == nil || *s == "" {
		return "--"
	}
	return *s
}
