package models

// ShippingAddress is a delivery address owned by a user.
// Department, province and district are filled depending on the country.
type ShippingAddress struct {
	ID         uint   `json:"id" gorm:"column:direccion_id;primaryKey;autoIncrement"`
	UserID     uint   `json:"user_id" gorm:"column:usuario_id"`
	Street     string `json:"street" gorm:"column:calle;type:varchar(255);not null"`
	City       string `json:"city" gorm:"column:ciudad;type:varchar(100);not null"`
	Department string `json:"department" gorm:"column:departamento;type:varchar(100)"`
	Province   string `json:"province" gorm:"column:provincia;type:varchar(100)"`
	District   string `json:"district" gorm:"column:distrito;type:varchar(100)"`
	State      string `json:"state" gorm:"column:estado;type:varchar(100)"`
	PostalCode string `json:"postal_code" gorm:"column:codigo_postal;type:varchar(20)"`
	Country    string `json:"country" gorm:"column:pais;type:varchar(100);not null"`

	User *User `json:"-" gorm:"foreignKey:UserID;references:ID"`
}

func (ShippingAddress) TableName() string { return "direcciones_envio" }
