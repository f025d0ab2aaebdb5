package service

import (
	"bytes"
	"context"
	"encoding/base64"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/lsestacionamento/parking-api/internal/config"
	"github.com/lsestacionamento/parking-api/internal/domain/entity"
	"github.com/lsestacionamento/parking-api/internal/domain/enum"
	infraRepo "github.com/lsestacionamento/parking-api/internal/infrastructure/repository"
	"github.com/lsestacionamento/parking-api/pkg/apperror"
	"github.com/lsestacionamento/parking-api/pkg/printer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var testPrinterCfg = config.PrinterConfig{
	Type:      "none",
	Width:     32,
	StoreName: "LS ESTACIONAMENTO",
}

func setupPrinterService(t *testing.T) (*PrinterService, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&entity.Ticket{}))

	repo := infraRepo.NewTicketRepository(db)
	svc := NewPrinterService(printer.NewNullPrinter(), repo, testPrinterCfg, "chave@pix.com", time.UTC)
	return svc, db
}

func finalizedTicket() *entity.Ticket {
	exit := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	slot := "A12"
	return &entity.Ticket{
		Name:           "Maria Silva",
		Phone:          "11988887777",
		MakeModel:      "Honda Civic",
		Plate:          "BRA2E19",
		Slot:           &slot,
		EntryTime:      time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC),
		ExitTime:       &exit,
		Status:         enum.TicketStatusFinalized,
		HourlyRate:     1200,
		ElapsedMinutes: 60,
		ChargedMinutes: 60,
		SubTotal:       1200,
		Total:          1200,
		Payment:        enum.PaymentMethodCash,
	}
}

func TestPrinterService_BuildReceipt(t *testing.T) {
	svc, _ := setupPrinterService(t)

	r := svc.BuildReceipt(finalizedTicket())
	assert.Equal(t, "LS ESTACIONAMENTO", r.Header.StoreName)
	assert.Equal(t, "Maria Silva", r.Name)
	assert.Equal(t, "A12", r.Slot)
	assert.Equal(t, "--", r.Note)
	assert.Equal(t, "10/03/2026 08:00", r.EntryTime)
	assert.Equal(t, "10/03/2026 09:00", r.ExitTime)
	assert.Equal(t, "R$ 12.00", r.SubTotal)
	assert.Equal(t, "R$ 12.00", r.Total)
	assert.Equal(t, "CASH", r.Payment)
	assert.Equal(t, "Finalizado", r.Status)
	assert.Empty(t, r.PixPayload)
}

func TestPrinterService_BuildReceiptActiveTicket(t *testing.T) {
	svc, _ := setupPrinterService(t)

	tk := finalizedTicket()
	tk.ExitTime = nil
	tk.Status = enum.TicketStatusActive
	tk.Payment = enum.PaymentMethodUnset

	r := svc.BuildReceipt(tk)
	assert.Equal(t, "--", r.ExitTime)
	assert.Equal(t, "--", r.Payment)
	assert.Equal(t, "Ativo", r.Status)
}

func TestPrinterService_BuildReceiptPixPayload(t *testing.T) {
	svc, _ := setupPrinterService(t)

	tk := finalizedTicket()
	tk.Payment = enum.PaymentMethodPix

	r := svc.BuildReceipt(tk)
	assert.Equal(t, "PIX", r.Payment)
	assert.Contains(t, r.PixPayload, "chave@pix.com|valor=12.00|pid=PIX-")
}

func TestFormatReceiptContent(t *testing.T) {
	svc, _ := setupPrinterService(t)

	r := svc.BuildReceipt(finalizedTicket())
	data := FormatReceipt(r, 32)

	assert.True(t, bytes.HasPrefix(data, []byte{0x1B, '@'}))
	assert.Contains(t, string(data), "LS ESTACIONAMENTO")
	assert.Contains(t, string(data), "COMPROVANTE DE ESTACIONAMENTO")
	assert.Contains(t, string(data), "Maria Silva")
	assert.Contains(t, string(data), "R$ 12.00")
	// Stream ends with a partial cut.
	assert.True(t, bytes.HasSuffix(data, []byte{0x1D, 'V', 1}))
	// No QR block for a cash payment.
	assert.NotContains(t, string(data), string([]byte{0x1D, '(', 'k', 0x04, 0x00, 0x31, 0x41}))
}

func TestFormatReceiptEmitsQRForPix(t *testing.T) {
	svc, _ := setupPrinterService(t)

	tk := finalizedTicket()
	tk.Payment = enum.PaymentMethodPix
	r := svc.BuildReceipt(tk)
	data := FormatReceipt(r, 32)

	// Model selection marks the start of the QR block.
	assert.Contains(t, string(data), string([]byte{0x1D, '(', 'k', 0x04, 0x00, 0x31, 0x41, 0x32, 0x00}))
	assert.Contains(t, string(data), r.PixPayload)
}

func TestPrinterService_GenerateEscpos(t *testing.T) {
	svc, db := setupPrinterService(t)

	tk := finalizedTicket()
	require.NoError(t, db.Create(tk).Error)

	result, err := svc.GenerateEscpos(context.Background(), tk.ID)
	require.NoError(t, err)
	assert.False(t, result.Printed)

	raw, err := base64.StdEncoding.DecodeString(result.Data)
	require.NoError(t, err)
	assert.Equal(t, result.Length, len(raw))
	assert.Contains(t, string(raw), "COMPROVANTE DE ESTACIONAMENTO")
}

func TestPrinterService_GenerateEscposNotFound(t *testing.T) {
	svc, _ := setupPrinterService(t)

	_, err := svc.GenerateEscpos(context.Background(), 99)
	require.Error(t, err)
	assert.Equal(t, 404, apperror.GetAppError(err).Code)
}

func TestPrinterService_GetStatus(t *testing.T) {
	svc, _ := setupPrinterService(t)

	status := svc.GetStatus()
	assert.False(t, status.Configured)
	assert.False(t, status.Connected)
	assert.Equal(t, "none", status.Type)
}
