package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Default status for new orders.
const OrderStatusPending = "Pendiente"

// Order represents a customer order.
type Order struct {
	ID        uint            `json:"id" gorm:"column:orden_id;primaryKey;autoIncrement"`
	UserID    uint            `json:"user_id" gorm:"column:usuario_id"`
	OrderDate time.Time       `json:"order_date" gorm:"column:fecha_orden;default:CURRENT_TIMESTAMP"`
	Total     decimal.Decimal `json:"total" gorm:"column:total;type:numeric(10,2);not null"`
	Status    string          `json:"status" gorm:"column:estado;type:varchar(50);default:'Pendiente'"`

	User           *User            `json:"user,omitempty" gorm:"foreignKey:UserID;references:ID"`
	Details        []OrderDetail    `json:"details,omitempty" gorm:"foreignKey:OrderID;references:ID"`
	Payments       []OrderPayment   `json:"payments,omitempty" gorm:"foreignKey:OrderID;references:ID"`
	PaymentHistory []PaymentHistory `json:"payment_history,omitempty" gorm:"foreignKey:OrderID;references:ID"`
}

func (Order) TableName() string { return "ordenes" }

// OrderDetail is a single line within an order.
type OrderDetail struct {
	ID        uint            `json:"id" gorm:"column:detalle_id;primaryKey;autoIncrement"`
	OrderID   uint            `json:"order_id" gorm:"column:orden_id"`
	ProductID uint            `json:"product_id" gorm:"column:producto_id"`
	Quantity  int             `json:"quantity" gorm:"column:cantidad;not null"`
	UnitPrice decimal.Decimal `json:"unit_price" gorm:"column:precio_unitario;type:numeric(10,2);not null"` // Price at the time of order

	Order   *Order   `json:"-" gorm:"foreignKey:OrderID;references:ID"`
	Product *Product `json:"product,omitempty" gorm:"foreignKey:ProductID;references:ID"`
}

func (OrderDetail) TableName() string { return "detalle_ordenes" }
