package models

import "time"

// ProductReview is a user's rating of a product.
type ProductReview struct {
	ID        uint      `json:"id" gorm:"column:reseña_id;primaryKey;autoIncrement"`
	UserID    uint      `json:"user_id" gorm:"column:usuario_id"`
	ProductID uint      `json:"product_id" gorm:"column:producto_id"`
	Rating    int       `json:"rating" gorm:"column:calificacion;not null"`
	Comment   string    `json:"comment" gorm:"column:comentario;type:text"`
	Date      time.Time `json:"date" gorm:"column:fecha;default:CURRENT_TIMESTAMP"`

	User    *User    `json:"-" gorm:"foreignKey:UserID;references:ID"`
	Product *Product `json:"-" gorm:"foreignKey:ProductID;references:ID"`
}

func (ProductReview) TableName() string { return "reseñas_productos" }
