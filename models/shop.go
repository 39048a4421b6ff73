package models

import (
	"time"
)

// Product is something the shop sells. Amount is the stock available.
type Product struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name" gorm:"size:100;not null"`
	Description string    `json:"description" gorm:"size:2000"`
	Price       float64   `json:"price" gorm:"not null;default:0"`
	Amount      int       `json:"amount" gorm:"not null;default:0"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Session is a browser session that owns cart lines
type Session struct {
	Key       string    `json:"key" gorm:"primaryKey;type:varchar(36)"`
	CreatedAt time.Time `json:"createdAt"`
}

// Cart is one line of a session's cart: a product and a quantity
type Cart struct {
	ID         uint   `json:"id" gorm:"primaryKey"`
	SessionKey string `json:"-" gorm:"type:varchar(36);not null;uniqueIndex:idx_cart_session_product"`
	ProductID  uint   `json:"productId" gorm:"not null;uniqueIndex:idx_cart_session_product"`
	Qty        int    `json:"qty" gorm:"not null"`

	Session Session `json:"-" gorm:"foreignKey:SessionKey;references:Key;constraint:OnDelete:CASCADE"`
	Product Product `json:"product" gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
}

// Order is placed from a session's cart
type Order struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	UserID    *string        `json:"userId" gorm:"type:varchar(36);index"`
	Name      string         `json:"name" gorm:"size:100;not null"`
	Phone     string         `json:"phone" gorm:"size:30;not null"`
	Address   string         `json:"address" gorm:"size:300"`
	CreatedAt time.Time      `json:"createdAt"`
	Products  []OrderProduct `json:"products" gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`

	User *User `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:SET NULL"`
}

// OrderProduct is one line item of an order
type OrderProduct struct {
	ID        uint    `json:"id" gorm:"primaryKey"`
	OrderID   uint    `json:"orderId" gorm:"not null;index"`
	ProductID uint    `json:"productId" gorm:"not null;index"`
	Qty       int     `json:"qty" gorm:"not null"`
	Product   Product `json:"product" gorm:"foreignKey:ProductID;constraint:OnDelete:RESTRICT"`
}
