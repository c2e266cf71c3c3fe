package models

import "time"

// User is a registered customer.
type User struct {
	ID               uint      `json:"id" gorm:"column:usuario_id;primaryKey;autoIncrement"`
	FirstName        string    `json:"first_name" gorm:"column:nombre;type:varchar(100);not null"`
	LastName         string    `json:"last_name" gorm:"column:apellido;type:varchar(100);not null"`
	DNI              string    `json:"dni" gorm:"column:dni;type:varchar(20);not null;unique"`
	Email            string    `json:"email" gorm:"column:email;type:varchar(255);not null;unique"`
	Password         string    `json:"-" gorm:"column:contraseña;type:varchar(255);not null"` // No json tag for security
	RegistrationDate time.Time `json:"registration_date" gorm:"column:fecha_registro;default:CURRENT_TIMESTAMP"`

	Orders    []Order           `json:"orders,omitempty" gorm:"foreignKey:UserID;references:ID"`
	Addresses []ShippingAddress `json:"addresses,omitempty" gorm:"foreignKey:UserID;references:ID"`
	CartItems []CartItem        `json:"cart_items,omitempty" gorm:"foreignKey:UserID;references:ID"`
	Reviews   []ProductReview   `json:"reviews,omitempty" gorm:"foreignKey:UserID;references:ID"`
}

func (User) TableName() string { return "usuarios" }
