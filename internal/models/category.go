package models

// Category groups products.
type Category struct {
	ID          uint   `json:"id" gorm:"column:categoria_id;primaryKey;autoIncrement"`
	Name        string `json:"name" gorm:"column:nombre;type:varchar(100);not null;unique"`
	Description string `json:"description" gorm:"column:descripcion;type:varchar(255)"`

	Products []Product `json:"products,omitempty" gorm:"foreignKey:CategoryID;references:ID"`
}

func (Category) TableName() string { return "categorias" }
