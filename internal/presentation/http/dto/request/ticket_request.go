package request

import "time"

// CreateTicketRequest opens a new parking ticket. Money fields are decimal
// currency values (reais).
type CreateTicketRequest struct {
	Name       string     `json:"name" binding:"required,min=2,max=100"`
	Phone      string     `json:"phone" binding:"required,max=20"`
	MakeModel  string     `json:"make_model" binding:"required,max=60"`
	Plate      string     `json:"plate" binding:"required,max=10"`
	Slot       *string    `json:"slot" binding:"omitempty,max=10"`
	EntryTime  *time.Time `json:"entry_time"`
	HourlyRate float64    `json:"hourly_rate" binding:"required,gt=0"`
	DailyCap   float64    `json:"daily_cap" binding:"omitempty,gte=0"`
	Note       *string    `json:"note" binding:"omitempty,max=120"`
}

// FinalizeTicketRequest closes an active ticket. ExitTime is optional and
// defaults to now; accepted layouts are "2006-01-02 15:04:05" and RFC 3339.
type FinalizeTicketRequest struct {
	ExitTime   string  `json:"exit_time"`
	Payment    string  `json:"payment" binding:"required,oneof=pix card cash"`
	Discount   float64 `json:"discount" binding:"omitempty,gte=0"`
	LostTicket bool    `json:"lost_ticket"`
	Note       *string `json:"note" binding:"omitempty,max=120"`
}

// EscposTicketRequest selects the ticket whose receipt should be encoded.
type EscposTicketRequest struct {
	ID uint `json:"id" binding:"required"`
}

// PixChargeRequest asks for a PIX charge. Valor is a decimal currency value;
// Chave overrides the configured PIX key when present.
type PixChargeRequest struct {
	Valor float64 `json:"valor" binding:"required,gt=0"`
	Chave string  `json:"chave"`
}
