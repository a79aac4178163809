package model

import (
	"time"

	"gorm.io/gorm"
)

// Government identification types accepted for patients.
const (
	IDTypeNIC            = "NIC"
	IDTypePassport       = "Passport"
	IDTypeDrivingLicense = "DrivingLicense"
)

// ValidGovernmentIDType reports whether t is an accepted government ID type.
func ValidGovernmentIDType(t string) bool {
	return t == IDTypeNIC || t == IDTypePassport || t == IDTypeDrivingLicense
}

// ValidGender reports whether g is an accepted gender value.
func ValidGender(g string) bool {
	return g == "Male" || g == "Female" || g == "Other"
}

// ValidBloodGroup reports whether b is an accepted blood group. Empty is allowed.
func ValidBloodGroup(b string) bool {
	switch b {
	case "", "A+", "A-", "B+", "B-", "AB+", "AB-", "O+", "O-":
		return true
	}
	return false
}

// ValidMaritalStatus reports whether m is an accepted marital status. Empty is allowed.
func ValidMaritalStatus(m string) bool {
	switch m {
	case "", "Single", "Married", "Divorced":
		return true
	}
	return false
}

// Patient represents a patient record. Email, phone number and the
// (government ID type, number) pair are unique across all patients.
// @Description Patient record
type Patient struct {
	gorm.Model
	Name             string    `json:"name" gorm:"column:name;not null" example:"John Silva"`
	DateOfBirth      time.Time `json:"date_of_birth" gorm:"column:date_of_birth;not null" example:"1990-04-12T00:00:00Z"`
	Gender           string    `json:"gender" gorm:"column:gender;type:varchar(16);not null" example:"Male"`
	PhoneNumber      string    `json:"phone_number" gorm:"column:phone_number;type:varchar(32);uniqueIndex;not null" example:"0712345678"`
	Email            string    `json:"email" gorm:"column:email;type:varchar(191);uniqueIndex;not null" example:"john.silva@example.com"`
	Password         string    `json:"-" gorm:"column:password;not null"`
	PermanentAddress string    `json:"permanent_address" gorm:"column:permanent_address;not null" example:"45 Lake Rd, Kandy"`
	TemporaryAddress string    `json:"temporary_address,omitempty" gorm:"column:temporary_address"`

	GovernmentIDType   string `json:"government_id_type" gorm:"column:government_id_type;type:varchar(32);uniqueIndex:idx_patients_government_id;not null" example:"NIC"`
	GovernmentIDNumber string `json:"government_id_number" gorm:"column:government_id_number;type:varchar(64);uniqueIndex:idx_patients_government_id;not null" example:"901231234V"`
	NationalHealthID   string `json:"national_health_id,omitempty" gorm:"column:national_health_id"`

	Allergies            string `json:"allergies,omitempty" gorm:"column:allergies;type:text"`
	ChronicConditions    string `json:"chronic_conditions,omitempty" gorm:"column:chronic_conditions;type:text"`
	PastSurgeries        string `json:"past_surgeries,omitempty" gorm:"column:past_surgeries;type:text"`
	CurrentMedications   string `json:"current_medications,omitempty" gorm:"column:current_medications;type:text"`
	FamilyMedicalHistory string `json:"family_medical_history,omitempty" gorm:"column:family_medical_history;type:text"`

	EmergencyContactName         string `json:"emergency_contact_name" gorm:"column:emergency_contact_name;not null" example:"Mary Silva"`
	EmergencyContactRelationship string `json:"emergency_contact_relationship" gorm:"column:emergency_contact_relationship;not null" example:"Spouse"`
	EmergencyContactPhone        string `json:"emergency_contact_phone" gorm:"column:emergency_contact_phone;not null" example:"0719876543"`

	InsuranceProvider string     `json:"insurance_provider,omitempty" gorm:"column:insurance_provider"`
	PolicyNumber      string     `json:"policy_number,omitempty" gorm:"column:policy_number"`
	ValidityDate      *time.Time `json:"validity_date,omitempty" gorm:"column:validity_date"`

	BloodGroup        string `json:"blood_group,omitempty" gorm:"column:blood_group;type:varchar(4)"`
	Occupation        string `json:"occupation,omitempty" gorm:"column:occupation"`
	MaritalStatus     string `json:"marital_status,omitempty" gorm:"column:marital_status;type:varchar(16)"`
	PreferredLanguage string `json:"preferred_language,omitempty" gorm:"column:preferred_language"`

	Photo string `json:"photo,omitempty" gorm:"column:photo"`
}
