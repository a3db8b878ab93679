package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func burgerLine(quantity int, additives ...AdditiveSnapshot) CartLine {
	line := CartLine{
		ID:       "line-1",
		Product:  ProductSnapshot{ProductID: 1, Name: "Burger", UnitPrice: 20.0},
		Quantity: quantity,
	}
	if len(additives) > 0 {
		line.Selections = []CartSelection{
			{GroupID: 1, GroupName: "Extras", Additives: additives},
		}
	}
	return line
}

func TestCartLine_UnitPrice(t *testing.T) {
	line := burgerLine(1)
	assert.Equal(t, 20.0, line.UnitPrice())

	line = burgerLine(1,
		AdditiveSnapshot{AdditiveID: 10, Name: "Bacon", Price: 3.0},
		AdditiveSnapshot{AdditiveID: 11, Name: "Cheese", Price: 2.0},
	)
	assert.Equal(t, 25.0, line.UnitPrice())
}

func TestCartLine_ComputeTotal_AdditivesMultiplyWithQuantity(t *testing.T) {
	// 2 x (20 + 5) = 50: additives are part of the unit price, so the line
	// quantity multiplies them along with the product
	line := burgerLine(2, AdditiveSnapshot{AdditiveID: 10, Name: "Bacon", Price: 5.0})
	line.ComputeTotal()
	assert.Equal(t, 50.0, line.LineTotal)
}

func TestCart_Recalculate(t *testing.T) {
	cart := NewCart()
	cart.Lines = append(cart.Lines,
		burgerLine(2, AdditiveSnapshot{AdditiveID: 10, Name: "Bacon", Price: 5.0}),
		CartLine{
			ID:       "line-2",
			Product:  ProductSnapshot{ProductID: 2, Name: "Fries", UnitPrice: 8.0},
			Quantity: 1,
		},
	)
	cart.DeliveryFee = 5.0

	cart.Recalculate()

	assert.Equal(t, 58.0, cart.Subtotal) // 50 + 8
	assert.Equal(t, 63.0, cart.Total)    // subtotal + delivery fee
	assert.Equal(t, 3, cart.ItemCount)   // quantities, not lines
	assert.Equal(t, 50.0, cart.Lines[0].LineTotal)
	assert.Equal(t, 8.0, cart.Lines[1].LineTotal)
}

func TestCart_Recalculate_Empty(t *testing.T) {
	cart := NewCart()
	cart.DeliveryFee = 5.0
	cart.Recalculate()

	assert.Equal(t, 0.0, cart.Subtotal)
	assert.Equal(t, 5.0, cart.Total)
	assert.Equal(t, 0, cart.ItemCount)
}

func TestCart_Clone_IsDeep(t *testing.T) {
	cart := NewCart()
	cart.Lines = append(cart.Lines, burgerLine(1, AdditiveSnapshot{AdditiveID: 10, Name: "Bacon", Price: 5.0}))
	cart.Recalculate()

	clone := cart.Clone()
	clone.Lines[0].Quantity = 99
	clone.Lines[0].Selections[0].Additives[0].Price = 100.0
	clone.Lines[0].Selections[0].GroupName = "Changed"

	assert.Equal(t, 1, cart.Lines[0].Quantity)
	assert.Equal(t, 5.0, cart.Lines[0].Selections[0].Additives[0].Price)
	assert.Equal(t, "Extras", cart.Lines[0].Selections[0].GroupName)
}
