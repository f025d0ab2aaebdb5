package enum

import "strings"

// PaymentMethod represents how a finalized ticket was paid
type PaymentMethod string

const (
	PaymentMethodUnset PaymentMethod = ""
	PaymentMethodPix   PaymentMethod = "pix"
	PaymentMethodCard  PaymentMethod = "card"
	PaymentMethodCash  PaymentMethod = "cash"
)

// ParsePaymentMethod normalizes a client-supplied payment method string.
// The second return value is false for anything other than pix/card/cash.
func ParsePaymentMethod(s string) (PaymentMethod, bool) {
	switch PaymentMethod(strings.ToLower(strings.TrimSpace(s))) {
	case PaymentMethodPix:
		return PaymentMethodPix, true
	case PaymentMethodCard:
		return PaymentMethodCard, true
	case PaymentMethodCash:
		return PaymentMethodCash, true
	}
	return PaymentMethodUnset, false
}

// Display returns the receipt label for the method ("PIX", "CARD", "CASH").
func (m PaymentMethod) Display() string {
	if m == PaymentMethodUnset {
		return "--"
	}
	return strings.ToUpper(string(m))
}
