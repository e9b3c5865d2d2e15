package services

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/Govind-619/ShopSphere/models"
	"github.com/Govind-619/ShopSphere/store"
	"github.com/Govind-619/ShopSphere/utils"
)

// CardInput is the payment screen form. The full number never leaves
// Record; only the masked form is stored.
type CardInput struct {
	CardHolder string  `json:"card_holder" binding:"required"`
	CardNumber string  `json:"card_number" binding:"required"`
	Expiry     string  `json:"expiry" binding:"required"`
	Amount     float64 `json:"amount"`
}

// PaymentRecorder keeps card metadata for reference. It does not charge
// anything.
type PaymentRecorder struct {
	store store.Store
	now   func() time.Time
}

func NewPaymentRecorder(st store.Store) *PaymentRecorder {
	return &PaymentRecorder{store: st, now: time.Now}
}

func (p *PaymentRecorder) Record(ctx context.Context, userID string, in CardInput) (*models.PaymentRecord, error) {
	if userID == "" {
		return nil, ErrUserRequired
	}
	holder := strings.TrimSpace(in.CardHolder)
	if holder == "" {
		return nil, utils.ValidationError("card holder name is required", ErrInvalidCard)
	}
	digits, err := utils.CardDigits(in.CardNumber)
	if err != nil {
		return nil, utils.ValidationError(err.Error(), ErrInvalidCard)
	}
	now := p.now()
	if err := utils.ValidateExpiry(in.Expiry, now); err != nil {
		return nil, utils.ValidationError(err.Error(), ErrInvalidCard)
	}
	if in.Amount < 0 {
		return nil, utils.ValidationError("amount cannot be negative", ErrInvalidCard)
	}

	record := models.PaymentRecord{
		UserID:     userID,
		CardHolder: holder,
		MaskedCard: utils.MaskCardNumber(digits),
		Expiry:     strings.TrimSpace(in.Expiry),
		Amount:     roundMoney(in.Amount),
		CreatedAt:  now,
	}
	fields, err := store.Encode(record)
	if err != nil {
		return nil, decodeError("payment", err)
	}
	doc, err := p.store.Create(ctx, models.CollectionPayments, userID, fields)
	if err != nil {
		return nil, remoteError("failed to save card details", err, nil)
	}
	record.ID = doc.ID
	utils.LogInfo("Card %s recorded for user ID: %s", record.MaskedCard, userID)
	return &record, nil
}

// List returns the user's recorded cards, newest first.
func (p *PaymentRecorder) List(ctx context.Context, userID string) ([]models.PaymentRecord, error) {
	if userID == "" {
		return nil, ErrUserRequired
	}
	docs, err := p.store.Find(ctx, models.CollectionPayments, userID)
	if err != nil {
		return nil, remoteError("failed to load card details", err, nil)
	}
	records, err := store.DecodeAll[models.PaymentRecord](docs)
	if err != nil {
		return nil, decodeError("payment", err)
	}
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].CreatedAt.After(records[j].CreatedAt)
	})
	return records, nil
}
