package models

import "time"

// PaymentRecord stores masked card metadata captured on the payment screen.
// Nothing is charged; the record exists for the customer's reference.
type PaymentRecord struct {
	ID         string    `json:"id"`
	UserID     string    `json:"user_id"`
	CardHolder string    `json:"card_holder"`
	MaskedCard string    `json:"masked_card"`
	Expiry     string    `json:"expiry"`
	Amount     float64   `json:"amount"`
	CreatedAt  time.Time `json:"created_at"`
}
