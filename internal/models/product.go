package models

import "github.com/shopspring/decimal"

// Product represents a product in the store.
type Product struct {
	ID          uint            `json:"id" gorm:"column:producto_id;primaryKey;autoIncrement"`
	Name        string          `json:"name" gorm:"column:nombre;type:varchar(255);not null"`
	Description string          `json:"description" gorm:"column:descripcion;type:text"`
	Price       decimal.Decimal `json:"price" gorm:"column:precio;type:numeric(10,2);not null"`
	Stock       int             `json:"stock" gorm:"column:stock;not null"`
	CategoryID  uint            `json:"category_id" gorm:"column:categoria_id"`

	Category     *Category       `json:"category,omitempty" gorm:"foreignKey:CategoryID;references:ID"`
	OrderDetails []OrderDetail   `json:"-" gorm:"foreignKey:ProductID;references:ID"`
	CartItems    []CartItem      `json:"-" gorm:"foreignKey:ProductID;references:ID"`
	Reviews      []ProductReview `json:"reviews,omitempty" gorm:"foreignKey:ProductID;references:ID"`
}

func (Product) TableName() string { return "productos" }
