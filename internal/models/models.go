package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Admin struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"       json:"id"`
	Email        string    `gorm:"uniqueIndex;not null"       json:"email"`
	PasswordHash string    `gorm:"not null"                   json:"-"`
	Name         *string   `json:"name"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`

	Products []Product `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"       json:"id"`
	Email        string    `gorm:"uniqueIndex;not null"       json:"email"`
	PasswordHash string    `gorm:"not null"                   json:"-"`
	Name         *string   `json:"name"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

type Product struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"       json:"id"`
	Name        string    `gorm:"not null"                   json:"name"`
	Description *string   `json:"description"`
	Price       float64   `gorm:"not null"                   json:"price"`
	AdminID     uuid.UUID `gorm:"type:uuid;index;not null"   json:"adminId"`
	CreatedAt   time.Time `gorm:"index"                      json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`

	Images []Image `gorm:"constraint:OnDelete:CASCADE" json:"images"`
	Admin  *Admin  `json:"-"`
}

type Image struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"     json:"id"`
	URL       string    `gorm:"not null"                 json:"url"`
	PublicID  string    `gorm:"not null"                 json:"publicId"`
	ProductID uuid.UUID `gorm:"type:uuid;index;not null" json:"productId"`
	CreatedAt time.Time `json:"createdAt"`

	Product *Product `json:"-"`
}

func (a *Admin) BeforeCreate(*gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

func (u *User) BeforeCreate(*gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

func (p *Product) BeforeCreate(*gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

func (i *Image) BeforeCreate(*gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}
