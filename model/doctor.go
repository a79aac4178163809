package model

import "gorm.io/gorm"

// Doctor represents a doctor registered under a hospital.
// HospitalID is set on creation and never changes afterwards.
// @Description Doctor account information
type Doctor struct {
	gorm.Model
	Name           string `json:"name" gorm:"column:name;not null" example:"Dr. Jane Perera"`
	Email          string `json:"email" gorm:"column:email;type:varchar(191);uniqueIndex;not null" example:"jane.perera@citygeneral.lk"`
	Password       string `json:"-" gorm:"column:password;not null"`
	Specialization string `json:"specialization" gorm:"column:specialization;not null" example:"Cardiology"`
	Qualification  string `json:"qualification" gorm:"column:qualification;not null" example:"MBBS, MD"`
	Experience     int    `json:"experience" gorm:"column:experience;not null" example:"12"`
	Phone          string `json:"phone" gorm:"column:phone;not null" example:"0771234567"`
	HospitalID     uint   `json:"hospital_id" gorm:"column:hospital_id;index;not null" example:"1"`
	Status         string `json:"status" gorm:"column:status;type:varchar(16);default:Active" example:"Active"`
	Photo          string `json:"photo,omitempty" gorm:"column:photo" example:"/uploads/doctors/1712345678901234567.jpg"`
}
