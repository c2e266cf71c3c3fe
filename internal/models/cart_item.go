package models

import "time"

// CartItem is one product a user has added to the cart.
type CartItem struct {
	ID        uint      `json:"id" gorm:"column:carrito_id;primaryKey;autoIncrement"`
	UserID    uint      `json:"user_id" gorm:"column:usuario_id"`
	ProductID uint      `json:"product_id" gorm:"column:producto_id"`
	Quantity  int       `json:"quantity" gorm:"column:cantidad;not null"`
	AddedAt   time.Time `json:"added_at" gorm:"column:fecha_agregado;default:CURRENT_TIMESTAMP"`

	User    *User    `json:"-" gorm:"foreignKey:UserID;references:ID"`
	Product *Product `json:"product,omitempty" gorm:"foreignKey:ProductID;references:ID"`
}

func (CartItem) TableName() string { return "carrito" }
