package report

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/lsestacionamento/parking-api/internal/domain/entity"
)

type column struct {
	header string
	width  float64
}

var columns = []column{
	{"#", 30},
	{"Nome", 120},
	{"Telefone", 100},
	{"Modelo", 100},
	{"Placa", 70},
	{"Vaga", 60},
	{"Entrada", 80},
	{"Total", 70},
}

const rowHeight = 18

// Summarize returns the ticket count and the sum of totals in cents for the
// report footer.
func Summarize(tickets []entity.Ticket) (int, int64) {
	var sum int64
	for _, t := range tickets {
		sum += t.Total
	}
	return len(tickets), sum
}

// RenderTicketsPDF renders the daily ticket report as a PDF document.
// Timestamps are shown in loc; inicio labels the report in the title line.
func RenderTicketsPDF(tickets []entity.Ticket, inicio string, loc *time.Location) ([]byte, error) {
	pdf := gofpdf.New("L", "pt", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetMargins(40, 40, 40)
	pdf.SetAutoPageBreak(true, 60)
	pdf.AddPage()

	// Title
	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(0, 22, tr("Relatório de Tickets"), "", 1, "L", false, 0, "")
	pdf.SetFont("Arial", "", 11)
	pdf.CellFormat(0, 16, tr("Dia: "+inicio), "", 1, "L", false, 0, "")
	pdf.Ln(8)

	drawHeader := func() {
		pdf.SetFont("Arial", "B", 10)
		pdf.SetFillColor(230, 230, 230)
		for _, c := range columns {
			pdf.CellFormat(c.width, rowHeight, tr(c.header), "1", 0, "C", true, 0, "")
		}
		pdf.Ln(-1)
		pdf.SetFont("Arial", "", 10)
	}
	drawHeader()

	_, pageHeight := pdf.GetPageSize()
	for i, t := range tickets {
		if pdf.GetY()+rowHeight > pageHeight-60 {
			pdf.AddPage()
			drawHeader()
		}

		slot := "--"
		if t.Slot != nil && *t.Slot != "" {
			slot = *t.Slot
		}

		cells := []string{
			fmt.Sprintf("%d", i+1),
			t.Name,
			t.Phone,
			t.MakeModel,
			t.Plate,
			slot,
			t.EntryTime.In(loc).Format("15:04:05"),
			fmt.Sprintf("R$ %.2f", float64(t.Total)/100),
		}
		for j, c := range columns {
			align := "L"
			if j == 0 {
				align = "C"
			} else if j == len(columns)-1 {
				align = "R"
			}
			pdf.CellFormat(c.width, rowHeight, tr(cells[j]), "1", 0, align, false, 0, "")
		}
		pdf.Ln(-1)
	}

	// Summary
	count, sum := Summarize(tickets)
	pdf.Ln(12)
	pdf.SetFont("Arial", "B", 11)
	pdf.CellFormat(0, 16, tr(fmt.Sprintf("Total de Tickets: %d", count)), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 16, tr(fmt.Sprintf("Soma dos Valores: R$ %.2f", float64(sum)/100)), "", 1, "L", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render PDF: %w", err)
	}
	return buf.Bytes(), nil
}
