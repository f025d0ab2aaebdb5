package tariff

import (
	"math"
	"time"
)

// Params holds the pricing parameters applied when a parking stay is charged.
// All money values are in integer cents.
type Params struct {
	HourlyRate              int64 // cents per hour
	MinimumChargeMinutes    int   // stays shorter than this bill as this
	RoundingFractionMinutes int   // billing granularity; values < 1 are treated as 1
	LostTicketFee           int64 // flat surcharge when the ticket stub is lost
	Discount                int64 // subtracted from the subtotal, floored at zero
	DailyCap                int64 // maximum total; 0 means no cap
	LostTicket              bool
}

// Breakdown is the result of charging a parking stay. Its fields are copied
// onto the ticket row when the ticket is finalized.
type Breakdown struct {
	ElapsedMinutes int   `json:"elapsed_minutes"`
	ChargedMinutes int   `json:"charged_minutes"`
	SubTotal       int64 `json:"sub_total"`
	Discount       int64 `json:"discount"`
	Extra          int64 `json:"extra"`
	Total          int64 `json:"total"`
}

// ComputeCharge prices a stay between entry and exit.
//
// The elapsed duration is rounded to whole minutes, raised to the minimum
// charge, then rounded up to the next multiple of the rounding fraction
// ("round up to the next billing fraction": a 16-minute stay on a 15-minute
// fraction bills 30 minutes). The daily cap is applied to the final total,
// after the lost-ticket fee.
//
// ComputeCharge is pure and never fails: degenerate inputs (exit before
// entry, zero rate, zero duration) yield zero charges.
func ComputeCharge(entry, exit time.Time, p Params) Breakdown {
	elapsed := int(math.Round(exit.Sub(entry).Minutes()))
	if elapsed < 0 {
		elapsed = 0
	}

	billable := elapsed
	if billable < p.MinimumChargeMinutes {
		billable = p.MinimumChargeMinutes
	}

	fraction := p.RoundingFractionMinutes
	if fraction < 1 {
		fraction = 1
	}
	chunks := (billable + fraction - 1) / fraction
	charged := chunks * fraction

	subtotal := p.HourlyRate * int64(charged) / 60

	var extra int64
	if p.LostTicket {
		extra = p.LostTicketFee
	}

	total := subtotal - p.Discount
	if total < 0 {
		total = 0
	}
	total += extra

	if p.DailyCap > 0 && total > p.DailyCap {
		total = p.DailyCap
	}

	return Breakdown{
		ElapsedMinutes: elapsed,
		ChargedMinutes: charged,
		SubTotal:       subtotal,
		Discount:       p.Discount,
		Extra:          extra,
		Total:          total,
	}
}
