package models

// Cart types are JSON snapshots, not database rows: a line captures the
// product's name and price at the time it was added so a saved cart stays
// stable when the live menu changes.

// ProductSnapshot is the frozen view of a product inside a cart line
type ProductSnapshot struct {
	ProductID uint    `json:"product_id"`
	Name      string  `json:"name"`
	UnitPrice float64 `json:"unit_price"`
}

// AdditiveSnapshot is the frozen view of one selected additive
type AdditiveSnapshot struct {
	AdditiveID uint    `json:"additive_id"`
	Name       string  `json:"name"`
	Price      float64 `json:"price"`
}

// CartSelection holds the additives a customer picked for one group on one line
type CartSelection struct {
	GroupID   uint               `json:"group_id"`
	GroupName string             `json:"group_name"`
	Additives []AdditiveSnapshot `json:"additives"`
}

// CartLine is one product entry in a cart
type CartLine struct {
	ID         string          `json:"id"` // uuid assigned when the line is added
	Product    ProductSnapshot `json:"product"`
	Quantity   int             `json:"quantity"`
	Note       string          `json:"note,omitempty"`
	Selections []CartSelection `json:"selections"`
	LineTotal  float64         `json:"line_total"`
}

// UnitPrice returns the price of one unit of the line: product price plus the
// sum of selected additive prices. Additives are never multiplied on their
// own; only the line quantity multiplies the combined unit price.
func (l *CartLine) UnitPrice() float64 {
	price := l.Product.UnitPrice
	for _, sel := range l.Selections {
		for _, a := range sel.Additives {
			price += a.Price
		}
	}
	return price
}

// ComputeTotal recomputes and stores the line total
func (l *CartLine) ComputeTotal() {
	l.LineTotal = l.UnitPrice() * float64(l.Quantity)
}

// Cart is the full cart snapshot. Lines keep insertion order, which is also
// display order. Subtotal, Total and ItemCount are derived; Recalculate keeps
// them consistent after every mutation.
type Cart struct {
	Lines       []CartLine `json:"lines"`
	DeliveryFee float64    `json:"delivery_fee"`
	Subtotal    float64    `json:"subtotal"`
	Total       float64    `json:"total"`
	ItemCount   int        `json:"item_count"`
}

// NewCart returns an empty cart
func NewCart() Cart {
	return Cart{Lines: []CartLine{}}
}

// Recalculate recomputes every derived field from the lines and delivery fee
func (c *Cart) Recalculate() {
	subtotal := 0.0
	count := 0
	for i := range c.Lines {
		c.Lines[i].ComputeTotal()
		subtotal += c.Lines[i].LineTotal
		count += c.Lines[i].Quantity
	}
	c.Subtotal = subtotal
	c.Total = subtotal + c.DeliveryFee
	c.ItemCount = count
}

// Clone returns a deep copy so snapshots handed to subscribers or the store
// cannot alias the live cart
func (c *Cart) Clone() Cart {
	out := *c
	out.Lines = make([]CartLine, len(c.Lines))
	copy(out.Lines, c.Lines)
	for i := range out.Lines {
		sels := make([]CartSelection, len(out.Lines[i].Selections))
		copy(sels, out.Lines[i].Selections)
		for j := range sels {
			adds := make([]AdditiveSnapshot, len(sels[j].Additives))
			copy(adds, sels[j].Additives)
			sels[j].Additives = adds
		}
		out.Lines[i].Selections = sels
	}
	return out
}
