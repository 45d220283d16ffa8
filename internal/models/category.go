package models

import "time"

type Category struct {
	ID        uint      `gorm:"primaryKey" json:"id" example:"1"`
	Name      string    `gorm:"not null;size:36;uniqueIndex" json:"name" example:"Canned Goods"`
	ItemCount int64     `gorm:"-" json:"item_count"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Category) TableName() string {
	return "categories"
}
