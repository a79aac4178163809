package model

import "gorm.io/gorm"

// Register is a generic account created through the public /register endpoint.
type Register struct {
	gorm.Model
	Name     string `json:"name" gorm:"column:name;not null" example:"John Doe"`
	Gmail    string `json:"gmail" gorm:"column:gmail;type:varchar(191);uniqueIndex;not null" example:"john@gmail.com"`
	Password string `json:"-" gorm:"column:password;not null"`
}
