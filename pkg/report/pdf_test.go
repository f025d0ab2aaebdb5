package report

import (
	"testing"
	"time"

	"github.com/lsestacionamento/parking-api/internal/domain/entity"
	"github.com/lsestacionamento/parking-api/internal/domain/enum"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTickets() []entity.Ticket {
	base := time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC)
	tickets := make([]entity.Ticket, 0, 3)
	for i, total := range []int64{1000, 2000, 3000} {
		tickets = append(tickets, entity.Ticket{
			Name:      "Cliente",
			Phone:     "11999990000",
			MakeModel: "Fiat Uno",
			Plate:     "ABC1D23",
			EntryTime: base.Add(time.Duration(i) * time.Hour),
			Status:    enum.TicketStatusFinalized,
			Total:     total,
		})
	}
	return tickets
}

func TestSummarize(t *testing.T) {
	count, sum := Summarize(sampleTickets())
	assert.Equal(t, 3, count)
	assert.Equal(t, int64(6000), sum)

	count, sum = Summarize(nil)
	assert.Equal(t, 0, count)
	assert.Equal(t, int64(0), sum)
}

func TestRenderTicketsPDF(t *testing.T) {
	pdf, err := RenderTicketsPDF(sampleTickets(), "2026-03-10", time.UTC)
	require.NoError(t, err)
	require.NotEmpty(t, pdf)
	assert.Equal(t, "%PDF", string(pdf[:4]))
}

func TestRenderTicketsPDFEmptyRange(t *testing.T) {
	pdf, err := RenderTicketsPDF(nil, "2026-03-10", time.UTC)
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(pdf[:4]))
}

func TestRenderTicketsPDFManyRows(t *testing.T) {
	base := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	tickets := make([]entity.Ticket, 0, 120)
	for i := 0; i < 120; i++ {
		tickets = append(tickets, entity.Ticket{
			Name:      "Cliente",
			Phone:     "11999990000",
			MakeModel: "Fiat Uno",
			Plate:     "ABC1D23",
			EntryTime: base.Add(time.Duration(i) * time.Minute),
			Total:     100,
		})
	}

	// Enough rows to force a page break; rendering must still succeed.
	pdf, err := RenderTicketsPDF(tickets, "2026-03-10", time.UTC)
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(pdf[:4]))
}
