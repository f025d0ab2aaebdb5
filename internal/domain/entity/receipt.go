package entity

// ReceiptHeader holds the lot/business header printed at the top of a receipt.
type ReceiptHeader struct {
	StoreName string `json:"store_name"`
	Address   string `json:"address,omitempty"`
	Phone     string `json:"phone,omitempty"`
}

// Receipt is a value object representing a printable parking receipt.
// It is NOT a database entity — it is composed from a finalized ticket at
// print time, with every display field already resolved: timestamps formatted
// in the lot's timezone, money formatted as currency strings, and absent
// optional fields coalesced to "--".
type Receipt struct {
	Header ReceiptHeader `json:"header"`

	TicketID  string `json:"ticket_id"`
	Name      string `json:"name"`
	Phone     string `json:"phone"`
	MakeModel string `json:"make_model"`
	Plate     string `json:"plate"`
	Slot      string `json:"slot"`
	Note      string `json:"note"`

	EntryTime      string `json:"entry_time"`
	ExitTime       string `json:"exit_time"`
	ElapsedMinutes int    `json:"elapsed_minutes"`
	ChargedMinutes int    `json:"charged_minutes"`

	SubTotal string `json:"sub_total"`
	Discount string `json:"discount"`
	Extra    string `json:"extra"`
	Total    string `json:"total"`

	Payment string `json:"payment"`
	Status  string `json:"status"`

	// PixPayload is set only when the ticket was paid via PIX; it is the
	// opaque payment reference encoded in the receipt's QR block.
	PixPayload string `json:"pix_payload,omitempty"`
}
