package model

// OrderDetails is the ephemeral input to the WhatsApp checkout link. It is
// assembled for a single interaction and never persisted.
type OrderDetails struct {
	Product         Product  `json:"product"`
	SelectedVariant *Variant `json:"selectedVariant,omitempty"`
	Quantity        int      `json:"quantity"`
}

// EffectiveUnitPrice returns the per-item price including the selected
// variant's modifier.
func (o OrderDetails) EffectiveUnitPrice() int {
	price := o.Product.Price
	if o.SelectedVariant != nil {
		price += o.SelectedVariant.PriceModifier
	}
	return price
}

// Total returns the order total for the selected quantity.
func (o OrderDetails) Total() int {
	return o.EffectiveUnitPrice() * o.Quantity
}

// OrderLinkRequest is the payload for composing a WhatsApp checkout link.
type OrderLinkRequest struct {
	ProductID string `json:"productId"`
	Variant   string `json:"variant,omitempty"`
	Quantity  int    `json:"quantity"`
}

// OrderLinkResponse carries the composed message and deep link back to the
// view layer, which opens the link in a new browsing context.
type OrderLinkResponse struct {
	Link    string `json:"link"`
	Message string `json:"message"`
	Total   int    `json:"total"`
}
