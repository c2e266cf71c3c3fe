package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Default status for a recorded payment.
const PaymentStatusProcessing = "Procesando"

// PaymentMethod is a way to pay, e.g. card or bank transfer.
type PaymentMethod struct {
	ID          uint   `json:"id" gorm:"column:metodo_pago_id;primaryKey;autoIncrement"`
	Name        string `json:"name" gorm:"column:nombre;type:varchar(100);not null"`
	Description string `json:"description" gorm:"column:descripcion;type:varchar(255)"`

	OrderPayments  []OrderPayment   `json:"-" gorm:"foreignKey:PaymentMethodID;references:ID"`
	PaymentHistory []PaymentHistory `json:"-" gorm:"foreignKey:PaymentMethodID;references:ID"`
}

func (PaymentMethod) TableName() string { return "metodos_pago" }

// OrderPayment is the amount of an order settled with one payment method.
type OrderPayment struct {
	ID              uint            `json:"id" gorm:"column:orden_metodo_id;primaryKey;autoIncrement"`
	OrderID         uint            `json:"order_id" gorm:"column:orden_id"`
	PaymentMethodID uint            `json:"payment_method_id" gorm:"column:metodo_pago_id"`
	AmountPaid      decimal.Decimal `json:"amount_paid" gorm:"column:monto_pagado;type:numeric(10,2);not null"`

	Order         *Order         `json:"-" gorm:"foreignKey:OrderID;references:ID"`
	PaymentMethod *PaymentMethod `json:"payment_method,omitempty" gorm:"foreignKey:PaymentMethodID;references:ID"`
}

func (OrderPayment) TableName() string { return "ordenes_metodos_pago" }

// PaymentHistory records every payment attempt against an order.
type PaymentHistory struct {
	ID              uint            `json:"id" gorm:"column:pago_id;primaryKey;autoIncrement"`
	OrderID         uint            `json:"order_id" gorm:"column:orden_id"`
	PaymentMethodID uint            `json:"payment_method_id" gorm:"column:metodo_pago_id"`
	Amount          decimal.Decimal `json:"amount" gorm:"column:monto;type:numeric(10,2);not null"`
	PaidAt          time.Time       `json:"paid_at" gorm:"column:fecha_pago;default:CURRENT_TIMESTAMP"`
	Status          string          `json:"status" gorm:"column:estado_pago;type:varchar(50);default:'Procesando'"`

	Order         *Order         `json:"-" gorm:"foreignKey:OrderID;references:ID"`
	PaymentMethod *PaymentMethod `json:"payment_method,omitempty" gorm:"foreignKey:PaymentMethodID;references:ID"`
}

func (PaymentHistory) TableName() string { return "historial_pagos" }
