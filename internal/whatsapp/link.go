package whatsapp

import (
	"fmt"
	"net/url"
	"strings"

	"lumident/internal/model"
)

const deepLinkBase = "https://wa.me/"

// Composer builds checkout messages and deep links for a WhatsApp recipient.
// Checkout is a hand-off: the composed link opens a chat with the clinic, no
// payment is processed here.
type Composer struct {
	number string
}

// NewComposer creates a composer for the given recipient number. The number
// is normalised to digits only, as required by the deep-link format.
func NewComposer(number string) *Composer {
	var digits strings.Builder
	for _, r := range number {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	return &Composer{number: digits.String()}
}

// OrderMessage renders the plain-text order summary sent as the chat opener.
func (c *Composer) OrderMessage(order model.OrderDetails) string {
	var b strings.Builder
	b.WriteString("Hello! I would like to order:\n\n")
	fmt.Fprintf(&b, "• %s", order.Product.Name)
	if order.SelectedVariant != nil {
		fmt.Fprintf(&b, " (%s)", order.SelectedVariant.Name)
	}
	b.WriteString("\n")
	fmt.Fprintf(&b, "• SKU: %s\n", order.Product.SKU)
	fmt.Fprintf(&b, "• Unit price: $%d\n", order.EffectiveUnitPrice())
	fmt.Fprintf(&b, "• Quantity: %d\n", order.Quantity)
	fmt.Fprintf(&b, "• Total: $%d", order.Total())
	return b.String()
}

// OrderLink composes the full deep link: the recipient as a path segment and
// the URL-encoded message as the text parameter.
func (c *Composer) OrderLink(order model.OrderDetails) string {
	return deepLinkBase + c.number + "?text=" + url.QueryEscape(c.OrderMessage(order))
}
