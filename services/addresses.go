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

// AddressInput is the address form. Line is sent as "address".
type AddressInput struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Line    string `json:"address"`
	City    string `json:"city"`
	State   string `json:"state"`
	Pincode string `json:"pincode"`
}

func (in AddressInput) address() models.Address {
	return models.Address{
		Name:    in.Name,
		Phone:   in.Phone,
		Line:    in.Line,
		City:    in.City,
		State:   in.State,
		Pincode: in.Pincode,
	}.Normalize()
}

// AddressBook keeps each user's saved delivery addresses.
type AddressBook struct {
	store store.Store
	now   func() time.Time
}

func NewAddressBook(st store.Store) *AddressBook {
	return &AddressBook{store: st, now: time.Now}
}

func validateAddress(a models.Address) error {
	if missing := a.MissingFields(); len(missing) > 0 {
		return utils.ValidationError("missing address fields: "+strings.Join(missing, ", "), ErrInvalidAddress)
	}
	if err := utils.ValidatePincode(a.Pincode); err != nil {
		return utils.ValidationError(err.Error(), ErrInvalidAddress)
	}
	for _, text := range []string{a.Name, a.Line, a.City, a.State} {
		if ok, msg := utils.ValidateXSS(text); !ok {
			return utils.ValidationError(msg, ErrInvalidAddress)
		}
	}
	return nil
}

func (b *AddressBook) Create(ctx context.Context, userID string, in AddressInput) (*models.Address, error) {
	if userID == "" {
		return nil, ErrUserRequired
	}
	addr := in.address()
	if err := validateAddress(addr); err != nil {
		return nil, err
	}
	now := b.now()
	addr.UserID = userID
	addr.CreatedAt = now
	addr.UpdatedAt = now
	fields, err := store.Encode(addr)
	if err != nil {
		return nil, decodeError("address", err)
	}
	doc, err := b.store.Create(ctx, models.CollectionAddresses, userID, fields)
	if err != nil {
		return nil, remoteError("failed to save address", err, nil)
	}
	addr.ID = doc.ID
	utils.LogInfo("Address %s added for user ID: %s", addr.ID, userID)
	return &addr, nil
}

// Update replaces the editable fields of one of the user's addresses.
func (b *AddressBook) Update(ctx context.Context, userID, id string, in AddressInput) (*models.Address, error) {
	if userID == "" {
		return nil, ErrUserRequired
	}
	addr := in.address()
	if err := validateAddress(addr); err != nil {
		return nil, err
	}
	existing, err := b.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	addr.ID = existing.ID
	addr.UserID = userID
	addr.CreatedAt = existing.CreatedAt
	addr.UpdatedAt = b.now()
	fields := store.Fields{
		"name":       addr.Name,
		"phone":      addr.Phone,
		"address":    addr.Line,
		"city":       addr.City,
		"state":      addr.State,
		"pincode":    addr.Pincode,
		"updated_at": addr.UpdatedAt,
	}
	if err := b.store.Update(ctx, models.CollectionAddresses, userID, id, fields); err != nil {
		return nil, remoteError("failed to update address", err, ErrAddressNotFound)
	}
	utils.LogInfo("Address %s updated for user ID: %s", id, userID)
	return &addr, nil
}

func (b *AddressBook) Delete(ctx context.Context, userID, id string) error {
	if userID == "" {
		return ErrUserRequired
	}
	if err := b.store.Delete(ctx, models.CollectionAddresses, userID, id); err != nil {
		return remoteError("failed to delete address", err, ErrAddressNotFound)
	}
	utils.LogInfo("Address %s deleted for user ID: %s", id, userID)
	return nil
}

func (b *AddressBook) Get(ctx context.Context, userID, id string) (*models.Address, error) {
	if userID == "" {
		return nil, ErrUserRequired
	}
	doc, err := b.store.Get(ctx, models.CollectionAddresses, userID, id)
	if err != nil {
		return nil, remoteError("failed to load address", err, ErrAddressNotFound)
	}
	var addr models.Address
	if err := store.Decode(*doc, &addr); err != nil {
		return nil, decodeError("address", err)
	}
	return &addr, nil
}

// List returns the user's addresses, newest first.
func (b *AddressBook) List(ctx context.Context, userID string) ([]models.Address, error) {
	if userID == "" {
		return nil, ErrUserRequired
	}
	docs, err := b.store.Find(ctx, models.CollectionAddresses, userID)
	if err != nil {
		return nil, remoteError("failed to load addresses", err, nil)
	}
	addrs, err := store.DecodeAll[models.Address](docs)
	if err != nil {
		return nil, decodeError("address", err)
	}
	return newestAddressesFirst(addrs), nil
}

func newestAddressesFirst(addrs []models.Address) []models.Address {
	sort.SliceStable(addrs, func(i, j int) bool {
		return addrs[i].CreatedAt.After(addrs[j].CreatedAt)
	})
	return addrs
}

// Billing resolves a saved address into the billing block of an order.
func (b *AddressBook) Billing(ctx context.Context, userID, id string) (models.BillingInfo, error) {
	addr, err := b.Get(ctx, userID, id)
	if err != nil {
		return models.BillingInfo{}, err
	}
	return addr.Billing(), nil
}

// Watch streams the address book, newest first, for the checkout screen.
func (b *AddressBook) Watch(ctx context.Context, userID string) (*Feed[models.Address], error) {
	if userID == "" {
		return nil, ErrUserRequired
	}
	sub, err := b.store.Subscribe(ctx, models.CollectionAddresses, userID)
	if err != nil {
		return nil, remoteError("failed to watch addresses", err, nil)
	}
	return newFeed[models.Address](sub, "address", newestAddressesFirst), nil
}
