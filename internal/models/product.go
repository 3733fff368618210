package models

import "gorm.io/gorm"

// Product represents a product in the catalog. CategoryName is denormalized
// from the category at write time so listings do not need a join.
type Product struct {
	ID           string  `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Name         string  `json:"name" validate:"required,min=3,max=100"`
	Description  string  `json:"description" validate:"omitempty,max=500"`
	Price        float64 `json:"price" validate:"required,gt=0"`
	Stock        int     `json:"stock" validate:"gte=0"`
	ImageURL     string  `json:"image_url" validate:"omitempty,url"`
	CategoryID   string  `json:"category_id" gorm:"index;type:varchar(36)" validate:"required"`
	CategoryName string  `json:"category_name"`
	gorm.Model           // Embed gorm.Model for CreatedAt, UpdatedAt, DeletedAt
}
