package entity

import (
	"encoding/json"
	"time"

	"github.com/lsestacionamento/parking-api/internal/domain/enum"
)

// Ticket represents one parking stay, from vehicle entry to paid exit.
//
// A ticket is created Active with an entry time and no exit time; the
// finalize operation sets the exit time, copies the charge breakdown onto the
// row and transitions the status to Finalized exactly once. Money is stored
// in integer cents.
type Ticket struct {
	ID        uint              `gorm:"primaryKey" json:"id"`
	Name      string            `gorm:"size:100;not null" json:"name"`
	Phone     string            `gorm:"size:20;not null" json:"phone"`
	MakeModel string            `gorm:"size:60;not null" json:"make_model"`
	Plate     string            `gorm:"size:10;not null;index" json:"plate"`
	Slot      *string           `gorm:"size:10" json:"slot,omitempty"`
	EntryTime time.Time         `gorm:"not null;index" json:"entry_time"`
	ExitTime  *time.Time        `json:"exit_time,omitempty"`
	Status    enum.TicketStatus `gorm:"default:0;index" json:"status"`

	HourlyRate int64 `gorm:"not null" json:"-"` // cents per hour
	DailyCap   int64 `gorm:"default:0" json:"-"` // cents; 0 = no cap

	// Charge breakdown, set at finalize time.
	ElapsedMinutes int   `gorm:"default:0" json:"elapsed_minutes"`
	ChargedMinutes int   `gorm:"default:0" json:"charged_minutes"`
	SubTotal       int64 `gorm:"default:0" json:"-"`
	Discount       int64 `gorm:"default:0" json:"-"`
	Extra          int64 `gorm:"default:0" json:"-"`
	Total          int64 `gorm:"default:0" json:"-"`

	Payment enum.PaymentMethod `gorm:"size:20" json:"payment,omitempty"`
	Note    *string            `gorm:"size:120" json:"note,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// MarshalJSON converts the cent-denominated money fields to decimals for API
// responses.
func (t Ticket) MarshalJSON() ([]byte, error) {
	type Alias Ticket
	return json.Marshal(&struct {
		Alias
		HourlyRate float64 `json:"hourly_rate"`
		DailyCap   float64 `json:"daily_cap"`
		SubTotal   float64 `json:"sub_total"`
		Discount   float64 `json:"discount"`
		Extra      float64 `json:"extra"`
		Total      float64 `json:"total"`
	}{
		Alias:      Alias(t),
		HourlyRate: float64(t.HourlyRate) / 100,
		DailyCap:   float64(t.DailyCap) / 100,
		SubTotal:   float64(t.SubTotal) / 100,
		Discount:   float64(t.Discount) / 100,
		Extra:      float64(t.Extra) / 100,
		Total:      float64(t.Total) / 100,
	})
}

// IsActive reports whether the ticket has not been finalized yet.
func (t *Ticket) IsActive() bool {
	return t.Status == enum.TicketStatusActive
}

// TableName returns the table name for the Ticket model
func (Ticket) TableName() string {
	return "tickets"
}
