package services

import (
	"fmt"

	"github.com/climbsoft/climb-delivery-api/models"
)

// LineBuilder assembles the additive selections for one product line,
// enforcing each group's selection rules as choices are made. The public
// product page keeps one builder alive while the customer composes a line;
// the cart controller uses one per add-to-cart request.
type LineBuilder struct {
	product  models.Product
	quantity int
	note     string
	groups   []models.AdditiveGroup     // product's groups in display order
	selected map[uint][]models.Additive // group id -> current picks, in pick order
}

// NewLineBuilder creates a builder for the given product. The product must
// have its additive groups (and their additives) loaded.
func NewLineBuilder(product models.Product) *LineBuilder {
	groups := make([]models.AdditiveGroup, 0, len(product.AdditiveGroups))
	for _, pg := range product.AdditiveGroups {
		groups = append(groups, pg.AdditiveGroup)
	}
	return &LineBuilder{
		product:  product,
		quantity: 1,
		groups:   groups,
		selected: make(map[uint][]models.Additive),
	}
}

// SetQuantity sets the line quantity
func (b *LineBuilder) SetQuantity(quantity int) error {
	if quantity < 1 {
		return models.NewValidationError("quantity", "quantity must be at least 1")
	}
	b.quantity = quantity
	return nil
}

// SetNote sets the free-text note for the line
func (b *LineBuilder) SetNote(note string) {
	b.note = note
}

func (b *LineBuilder) group(groupID uint) (models.AdditiveGroup, bool) {
	for _, g := range b.groups {
		if g.ID == groupID {
			return g, true
		}
	}
	return models.AdditiveGroup{}, false
}

func (b *LineBuilder) additive(g models.AdditiveGroup, additiveID uint) (models.Additive, bool) {
	for _, a := range g.Additives {
		if a.ID == additiveID {
			return a, true
		}
	}
	return models.Additive{}, false
}

// Select applies one customer pick in the given group.
//
// Single-selection groups replace any prior pick, so at most one additive is
// ever active. Multiple-selection groups toggle membership: picking a selected
// additive removes it, and picking a new one past the group's maximum returns
// SelectionLimitError with the selection set unchanged.
func (b *LineBuilder) Select(groupID, additiveID uint) error {
	g, ok := b.group(groupID)
	if !ok {
		return models.NewNotFoundError("additive group", fmt.Sprint(groupID))
	}
	a, ok := b.additive(g, additiveID)
	if !ok {
		return models.NewNotFoundError("additive", fmt.Sprint(additiveID))
	}

	current := b.selected[groupID]

	if g.Mode == models.SelectionSingle {
		b.selected[groupID] = []models.Additive{a}
		return nil
	}

	// multiple: toggle off if already picked
	for i, picked := range current {
		if picked.ID == additiveID {
			b.selected[groupID] = append(current[:i:i], current[i+1:]...)
			return nil
		}
	}

	if len(current) >= g.MaxSelect {
		return &models.SelectionLimitError{GroupName: g.Name, Max: g.MaxSelect}
	}
	b.selected[groupID] = append(current, a)
	return nil
}

// Deselect removes a pick from a group. It always succeeds; removing an
// additive that is not selected is a no-op.
func (b *LineBuilder) Deselect(groupID, additiveID uint) {
	current := b.selected[groupID]
	for i, picked := range current {
		if picked.ID == additiveID {
			b.selected[groupID] = append(current[:i:i], current[i+1:]...)
			return
		}
	}
}

// SelectedCount returns how many additives are picked in the group
func (b *LineBuilder) SelectedCount(groupID uint) int {
	return len(b.selected[groupID])
}

// Validate checks that every group with a minimum (or marked required) has
// enough picks. It returns a ValidationError naming the first unsatisfied group.
func (b *LineBuilder) Validate() error {
	for _, g := range b.groups {
		min := g.MinSelect
		if g.Required && min == 0 {
			min = 1
		}
		if min > 0 && len(b.selected[g.ID]) < min {
			return models.NewValidationError(
				g.Name,
				fmt.Sprintf("group %q requires at least %d selection(s)", g.Name, min),
			)
		}
	}
	return nil
}

// Selections returns the current picks as cart selections, in the product's
// group display order. Groups with no picks are omitted.
func (b *LineBuilder) Selections() []models.CartSelection {
	out := make([]models.CartSelection, 0, len(b.groups))
	for _, g := range b.groups {
		picks := b.selected[g.ID]
		if len(picks) == 0 {
			continue
		}
		sel := models.CartSelection{
			GroupID:   g.ID,
			GroupName: g.Name,
			Additives: make([]models.AdditiveSnapshot, 0, len(picks)),
		}
		for _, a := range picks {
			sel.Additives = append(sel.Additives, models.AdditiveSnapshot{
				AdditiveID: a.ID,
				Name:       a.Name,
				Price:      a.Price,
			})
		}
		out = append(out, sel)
	}
	return out
}

// UnitPrice returns the current unit price preview: product price plus the
// picked additive prices. Only the line quantity multiplies this.
func (b *LineBuilder) UnitPrice() float64 {
	price := b.product.Price
	for _, picks := range b.selected {
		for _, a := range picks {
			price += a.Price
		}
	}
	return price
}

// Total returns the current line total preview
func (b *LineBuilder) Total() float64 {
	return b.UnitPrice() * float64(b.quantity)
}

// Quantity returns the current line quantity
func (b *LineBuilder) Quantity() int {
	return b.quantity
}

// Note returns the current line note
func (b *LineBuilder) Note() string {
	return b.note
}
