package dto

import (
	"github.com/issue-tracker/models"
)

// CartAddForm is the add-to-cart payload; a missing qty means one
type CartAddForm struct {
	Qty int `form:"qty" json:"qty" binding:"omitempty,min=1"`
}

// Quantity returns the requested quantity
func (f CartAddForm) Quantity() int {
	if f.Qty == 0 {
		return 1
	}
	return f.Qty
}

// CartResponse is the session's cart
type CartResponse struct {
	Lines     []models.Cart `json:"lines"`
	CartTotal float64       `json:"cartTotal"`
}

// OrderForm carries the buyer's contact details
type OrderForm struct {
	Name    string `form:"name" json:"name" binding:"required,max=100"`
	Phone   string `form:"phone" json:"phone" binding:"required,max=30"`
	Address string `form:"address" json:"address" binding:"max=300"`
}

// ProductForm stocks a new product
type ProductForm struct {
	Name        string  `form:"name" json:"name" binding:"required,max=100"`
	Description string  `form:"description" json:"description" binding:"max=2000"`
	Price       float64 `form:"price" json:"price" binding:"gte=0"`
	Amount      int     `form:"amount" json:"amount" binding:"gte=0"`
}
