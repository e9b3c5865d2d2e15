package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type codecItem struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	Quantity int       `json:"quantity"`
	Discount *float64  `json:"discount,omitempty"`
	AddedAt  time.Time `json:"added_at"`
}

func TestEncodeDropsID(t *testing.T) {
	fields, err := Encode(codecItem{ID: "x", Name: "Mug", Quantity: 2})
	require.NoError(t, err)
	assert.NotContains(t, fields, "id")
	assert.NotContains(t, fields, "discount")
	assert.Equal(t, "Mug", fields["name"])
}

func TestDecodeSetsIDFromDocument(t *testing.T) {
	added := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	fields, err := Encode(codecItem{ID: "ignored", Name: "Mug", Quantity: 2, AddedAt: added})
	require.NoError(t, err)

	var out codecItem
	require.NoError(t, Decode(Document{ID: "doc-1", Fields: fields}, &out))
	assert.Equal(t, "doc-1", out.ID)
	assert.Equal(t, 2, out.Quantity)
	assert.True(t, added.Equal(out.AddedAt))
}

func TestDecodeAll(t *testing.T) {
	docs := []Document{
		{ID: "a", Fields: Fields{"name": "A", "quantity": float64(1)}},
		{ID: "b", Fields: Fields{"name": "B", "quantity": float64(3)}},
	}
	items, err := DecodeAll[codecItem](docs)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "b", items[1].ID)
	assert.Equal(t, 3, items[1].Quantity)
}

func TestDecodeRejectsWrongShape(t *testing.T) {
	var out codecItem
	err := Decode(Document{ID: "a", Fields: Fields{"quantity": "three"}}, &out)
	assert.Error(t, err)
}
