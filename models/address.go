package models

import (
	"strings"
	"time"
)

// BillingInfo is the free-text contact block captured at checkout. It is not
// validated against any address schema.
type BillingInfo struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

// Normalize trims surrounding whitespace from every field.
func (b BillingInfo) Normalize() BillingInfo {
	return BillingInfo{
		Name:    strings.TrimSpace(b.Name),
		Phone:   strings.TrimSpace(b.Phone),
		Address: strings.TrimSpace(b.Address),
	}
}

// MissingFields lists the blank fields by their JSON names.
func (b BillingInfo) MissingFields() []string {
	var missing []string
	n := b.Normalize()
	if n.Name == "" {
		missing = append(missing, "name")
	}
	if n.Phone == "" {
		missing = append(missing, "phone")
	}
	if n.Address == "" {
		missing = append(missing, "address")
	}
	return missing
}

// Address is a saved delivery address in the user's address book. Checkout
// copies it into the order as a BillingInfo; later edits do not reach
// placed orders.
type Address struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	Line      string    `json:"address"`
	City      string    `json:"city"`
	State     string    `json:"state"`
	Pincode   string    `json:"pincode"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (a Address) Normalize() Address {
	a.Name = strings.TrimSpace(a.Name)
	a.Phone = strings.TrimSpace(a.Phone)
	a.Line = strings.TrimSpace(a.Line)
	a.City = strings.TrimSpace(a.City)
	a.State = strings.TrimSpace(a.State)
	a.Pincode = strings.TrimSpace(a.Pincode)
	return a
}

// MissingFields lists the blank fields by their JSON names.
func (a Address) MissingFields() []string {
	n := a.Normalize()
	var missing []string
	for _, f := range []struct{ name, value string }{
		{"name", n.Name},
		{"phone", n.Phone},
		{"address", n.Line},
		{"city", n.City},
		{"state", n.State},
		{"pincode", n.Pincode},
	} {
		if f.value == "" {
			missing = append(missing, f.name)
		}
	}
	return missing
}

// Billing flattens the address into the free-text block stored on orders,
// e.g. "12 Lake Road, Chennai, Tamil Nadu - 600028".
func (a Address) Billing() BillingInfo {
	n := a.Normalize()
	var parts []string
	for _, p := range []string{n.Line, n.City, n.State} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	line := strings.Join(parts, ", ")
	if n.Pincode != "" {
		line += " - " + n.Pincode
	}
	return BillingInfo{Name: n.Name, Phone: n.Phone, Address: line}
}
