package whatsapp

import (
	"net/url"
	"strings"
	"testing"

	"lumident/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testOrder = model.OrderDetails{
	Product: model.Product{
		Name:  "Vitamin C Brightening Serum",
		SKU:   "LUM-SC-02",
		Price: 15500,
	},
	SelectedVariant: &model.Variant{Name: "50ml", PriceModifier: 6500},
	Quantity:        2,
}

func TestComposer_OrderMessage(t *testing.T) {
	composer := NewComposer("+52 1 55 1234 5678")

	message := composer.OrderMessage(testOrder)
	assert.Contains(t, message, "Vitamin C Brightening Serum (50ml)")
	assert.Contains(t, message, "SKU: LUM-SC-02")
	assert.Contains(t, message, "Unit price: $22000")
	assert.Contains(t, message, "Quantity: 2")
	assert.Contains(t, message, "Total: $44000")
}

func TestComposer_OrderMessage_NoVariant(t *testing.T) {
	composer := NewComposer("5215512345678")

	order := testOrder
	order.SelectedVariant = nil
	order.Quantity = 1

	message := composer.OrderMessage(order)
	assert.Contains(t, message, "Vitamin C Brightening Serum\n")
	assert.NotContains(t, message, "(")
	assert.Contains(t, message, "Total: $15500")
}

func TestComposer_OrderLink(t *testing.T) {
	composer := NewComposer("+52 (155) 1234-5678")

	link := composer.OrderLink(testOrder)
	assert.True(t, strings.HasPrefix(link, "https://wa.me/5215512345678?text="), link)

	// The encoded message round-trips.
	parsed, err := url.Parse(link)
	require.NoError(t, err)
	text := parsed.Query().Get("text")
	assert.Equal(t, composer.OrderMessage(testOrder), text)
}
