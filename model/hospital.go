package model

import "gorm.io/gorm"

// Account statuses shared by Hospital and Doctor.
const (
	StatusActive   = "Active"
	StatusInactive = "Inactive"
)

// ValidStatus reports whether s is one of the accepted account statuses.
func ValidStatus(s string) bool {
	return s == StatusActive || s == StatusInactive
}

// Hospital represents a registered hospital account.
// @Description Hospital account information
type Hospital struct {
	gorm.Model
	Name               string `json:"name" gorm:"column:name;type:varchar(191);uniqueIndex;not null" example:"City General Hospital"`
	Email              string `json:"email" gorm:"column:email;type:varchar(191);uniqueIndex;not null" example:"admin@citygeneral.lk"`
	Password           string `json:"-" gorm:"column:password;not null"`
	Address            string `json:"address" gorm:"column:address;not null" example:"123 Hospital Rd, Colombo"`
	ContactNumber      string `json:"contact_number" gorm:"column:contact_number;type:varchar(32);uniqueIndex;not null" example:"0112345678"`
	RegistrationNumber string `json:"registration_number" gorm:"column:registration_number;type:varchar(64);uniqueIndex;not null" example:"HOSP-2024-0012"`
	District           string `json:"district" gorm:"column:district;not null" example:"Colombo"`
	Status             string `json:"status" gorm:"column:status;type:varchar(16);default:Active" example:"Active"`
}
