package endpoint

import (
	"errors"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/mediconnect/mediconnect-api/model"
	"github.com/mediconnect/mediconnect-api/util"
)

type patientRequest struct {
	Name             string `json:"name" form:"name" example:"John Silva"`
	DateOfBirth      string `json:"date_of_birth" form:"date_of_birth" example:"1990-04-12"`
	Gender           string `json:"gender" form:"gender" example:"Male"`
	PhoneNumber      string `json:"phone_number" form:"phone_number" example:"0712345678"`
	Email            string `json:"email" form:"email" example:"john.silva@example.com"`
	Password         string `json:"password" form:"password" example:"Str0ng?Pass"`
	PermanentAddress string `json:"permanent_address" form:"permanent_address" example:"45 Lake Rd, Kandy"`
	TemporaryAddress string `json:"temporary_address" form:"temporary_address"`

	GovernmentIDType   string `json:"government_id_type" form:"government_id_type" example:"NIC"`
	GovernmentIDNumber string `json:"government_id_number" form:"government_id_number" example:"901231234V"`
	NationalHealthID   string `json:"national_health_id" form:"national_health_id"`

	Allergies            string `json:"allergies" form:"allergies"`
	ChronicConditions    string `json:"chronic_conditions" form:"chronic_conditions"`
	PastSurgeries        string `json:"past_surgeries" form:"past_surgeries"`
	CurrentMedications   string `json:"current_medications" form:"current_medications"`
	FamilyMedicalHistory string `json:"family_medical_history" form:"family_medical_history"`

	EmergencyContactName         string `json:"emergency_contact_name" form:"emergency_contact_name" example:"Mary Silva"`
	EmergencyContactRelationship string `json:"emergency_contact_relationship" form:"emergency_contact_relationship" example:"Spouse"`
	EmergencyContactPhone        string `json:"emergency_contact_phone" form:"emergency_contact_phone" example:"0719876543"`

	InsuranceProvider string  `json:"insurance_provider" form:"insurance_provider"`
	PolicyNumber      string  `json:"policy_number" form:"policy_number"`
	ValidityDate      *string `json:"validity_date" form:"validity_date" example:"2027-01-31"`

	BloodGroup        string `json:"blood_group" form:"blood_group" example:"O+"`
	Occupation        string `json:"occupation" form:"occupation"`
	MaritalStatus     string `json:"marital_status" form:"marital_status" example:"Single"`
	PreferredLanguage string `json:"preferred_language" form:"preferred_language"`
}

// patientUniqueFields builds the uniqueness checks for a patient payload. The
// government ID is checked as a (type, number) pair; the same number under a
// different ID type is a distinct identity and passes.
func patientUniqueFields(req patientRequest) []util.UniqueField {
	fields := []util.UniqueField{
		{Name: "email", Label: "email", Value: req.Email, Query: "email = ?", Args: []interface{}{req.Email}},
		{Name: "phone_number", Label: "phone number", Value: req.PhoneNumber, Query: "phone_number = ?", Args: []interface{}{req.PhoneNumber}},
	}
	if req.GovernmentIDType != "" && req.GovernmentIDNumber != "" {
		fields = append(fields, util.UniqueField{
			Name:  "government_id_number",
			Label: req.GovernmentIDType,
			Value: req.GovernmentIDNumber,
			Query: "government_id_type = ? AND government_id_number = ?",
			Args:  []interface{}{req.GovernmentIDType, req.GovernmentIDNumber},
		})
	}
	return fields
}

func validatePatientEnums(c *gin.Context, req patientRequest) bool {
	if req.Gender != "" && !model.ValidGender(req.Gender) {
		util.CallUserError(c, util.APIErrorParams{Msg: "Invalid gender value", Field: "gender"})
		return false
	}
	if req.GovernmentIDType != "" && !model.ValidGovernmentIDType(req.GovernmentIDType) {
		util.CallUserError(c, util.APIErrorParams{Msg: "Invalid government ID type", Field: "government_id_type"})
		return false
	}
	if !model.ValidBloodGroup(req.BloodGroup) {
		util.CallUserError(c, util.APIErrorParams{Msg: "Invalid blood group", Field: "blood_group"})
		return false
	}
	if !model.ValidMaritalStatus(req.MaritalStatus) {
		util.CallUserError(c, util.APIErrorParams{Msg: "Invalid marital status", Field: "marital_status"})
		return false
	}
	return true
}

// ListPatients godoc
// @Summary      List all patients
// @Tags         Patient
// @Produce      json
// @Success      200 {object} util.APIResponse "Patients retrieved"
// @Failure      500 {object} util.APIResponse "Server error"
// @Router       /users [get]
func ListPatients(c *gin.Context) {
	db, ok := getDBOrRespond(c)
	if !ok {
		return
	}

	var patients []model.Patient
	if err := db.Find(&patients).Error; err != nil {
		util.CallServerError(c, util.APIErrorParams{Msg: "Failed to fetch patients", Err: err})
		return
	}

	util.CallSuccessOK(c, util.APISuccessParams{
		Msg:  "Patients retrieved",
		Data: map[string]interface{}{"patients": patients},
	})
}

// CreatePatient godoc
// @Summary      Create a patient record
// @Description  Registers a patient with demographics, government ID, emergency contact and optional photo
// @Tags         Patient
// @Accept       mpfd
// @Produce      json
// @Param        photo formData file false "Photo (jpeg/jpg/png, max 5MB)"
// @Success      201 {object} util.APIResponse "Patient created"
// @Failure      400 {object} util.APIResponse "Validation failure"
// @Failure      500 {object} util.APIResponse "Server error"
// @Router       /users [post]
func CreatePatient(c *gin.Context) {
	var req patientRequest
	if !bindOrRespond(c, &req, "Invalid request body") {
		return
	}

	if missing := firstMissingField([]requiredField{
		{"name", req.Name},
		{"date_of_birth", req.DateOfBirth},
		{"gender", req.Gender},
		{"phone_number", req.PhoneNumber},
		{"email", req.Email},
		{"password", req.Password},
		{"permanent_address", req.PermanentAddress},
		{"government_id_type", req.GovernmentIDType},
		{"government_id_number", req.GovernmentIDNumber},
		{"emergency_contact_name", req.EmergencyContactName},
		{"emergency_contact_relationship", req.EmergencyContactRelationship},
		{"emergency_contact_phone", req.EmergencyContactPhone},
	}); missing != "" {
		respondMissingField(c, missing)
		return
	}

	if !validatePatientEnums(c, req) {
		return
	}

	dob, err := parseWireDate(req.DateOfBirth)
	if err != nil {
		util.CallUserError(c, util.APIErrorParams{Msg: "Invalid date of birth", Field: "date_of_birth"})
		return
	}

	db, ok := getDBOrRespond(c)
	if !ok {
		return
	}

	if violation, err := util.CheckUnique(db, &model.Patient{}, patientUniqueFields(req), 0); err != nil {
		util.CallServerError(c, util.APIErrorParams{Msg: "Failed to check existing patients", Err: err})
		return
	} else if violation != nil {
		util.CallUserError(c, util.APIErrorParams{Msg: violation.Message, Field: violation.Field})
		return
	}

	if err := util.ValidatePasswordPolicy(req.Password); err != nil {
		util.CallUserError(c, util.APIErrorParams{Msg: err.Error(), Field: "password"})
		return
	}

	hashedPassword, err := util.HashPassword(req.Password)
	if err != nil {
		util.CallServerError(c, util.APIErrorParams{Msg: "Failed to hash password", Err: err})
		return
	}

	photo, ok := savePhotoOrRespond(c)
	if !ok {
		return
	}

	patient := model.Patient{
		Name:             util.NormalizeName(req.Name),
		DateOfBirth:      dob,
		Gender:           req.Gender,
		PhoneNumber:      req.PhoneNumber,
		Email:            req.Email,
		Password:         hashedPassword,
		PermanentAddress: req.PermanentAddress,
		TemporaryAddress: req.TemporaryAddress,

		GovernmentIDType:   req.GovernmentIDType,
		GovernmentIDNumber: req.GovernmentIDNumber,
		NationalHealthID:   req.NationalHealthID,

		Allergies:            req.Allergies,
		ChronicConditions:    req.ChronicConditions,
		PastSurgeries:        req.PastSurgeries,
		CurrentMedications:   req.CurrentMedications,
		FamilyMedicalHistory: req.FamilyMedicalHistory,

		EmergencyContactName:         req.EmergencyContactName,
		EmergencyContactRelationship: req.EmergencyContactRelationship,
		EmergencyContactPhone:        req.EmergencyContactPhone,

		InsuranceProvider: req.InsuranceProvider,
		PolicyNumber:      req.PolicyNumber,

		BloodGroup:        req.BloodGroup,
		Occupation:        req.Occupation,
		MaritalStatus:     req.MaritalStatus,
		PreferredLanguage: req.PreferredLanguage,

		Photo: photo,
	}

	if req.ValidityDate != nil && *req.ValidityDate != "" && *req.ValidityDate != "null" {
		vd, err := parseWireDate(*req.ValidityDate)
		if err != nil {
			util.CallUserError(c, util.APIErrorParams{Msg: "Invalid validity date", Field: "validity_date"})
			return
		}
		patient.ValidityDate = &vd
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		violation, err := util.CheckUnique(tx, &model.Patient{}, patientUniqueFields(req), 0)
		if err != nil {
			return err
		}
		if violation != nil {
			return &util.ViolationError{Violation: *violation}
		}
		return tx.Create(&patient).Error
	})
	if err != nil {
		var ve *util.ViolationError
		if errors.As(err, &ve) {
			util.CallUserError(c, util.APIErrorParams{Msg: ve.Violation.Message, Field: ve.Violation.Field})
			return
		}
		util.LogStorageFailure("patient creation", err)
		util.CallServerError(c, util.APIErrorParams{Msg: "Failed to create patient", Err: err})
		return
	}

	util.CallSuccessCreated(c, util.APISuccessParams{
		Msg:  "Patient created successfully",
		Data: map[string]interface{}{"patient": patient},
	})
}

// GetPatient godoc
// @Summary      Get a patient by ID
// @Tags         Patient
// @Produce      json
// @Param        id path int true "Patient ID"
// @Success      200 {object} util.APIResponse "Patient retrieved"
// @Failure      404 {object} util.APIResponse "Patient not found"
// @Router       /users/{id} [get]
func GetPatient(c *gin.Context) {
	db, ok := getDBOrRespond(c)
	if !ok {
		return
	}

	var patient model.Patient
	if err := db.First(&patient, "id = ?", c.Param("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			util.CallErrorNotFound(c, util.APIErrorParams{Msg: "Patient not found"})
			return
		}
		util.CallServerError(c, util.APIErrorParams{Msg: "Error fetching patient", Err: err})
		return
	}

	util.CallSuccessOK(c, util.APISuccessParams{
		Msg:  "Patient retrieved",
		Data: map[string]interface{}{"patient": patient},
	})
}

// UpdatePatient godoc
// @Summary      Update a patient record
// @Description  Partial update; blank fields keep their current values, validity_date accepts "" or "null" to clear
// @Tags         Patient
// @Accept       mpfd
// @Produce      json
// @Param        id path int true "Patient ID"
// @Success      200 {object} util.APIResponse "Patient updated"
// @Failure      400 {object} util.APIResponse "Validation failure"
// @Failure      404 {object} util.APIResponse "Patient not found"
// @Failure      500 {object} util.APIResponse "Server error"
// @Router       /users/{id} [put]
func UpdatePatient(c *gin.Context) {
	var req patientRequest
	if !bindOrRespond(c, &req, "Invalid request body") {
		return
	}

	db, ok := getDBOrRespond(c)
	if !ok {
		return
	}

	var patient model.Patient
	if err := db.First(&patient, "id = ?", c.Param("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			util.CallErrorNotFound(c, util.APIErrorParams{Msg: "Patient not found"})
			return
		}
		util.CallServerError(c, util.APIErrorParams{Msg: "Error fetching patient", Err: err})
		return
	}

	if !validatePatientEnums(c, req) {
		return
	}

	// Re-checking identity fields only when they actually change keeps the
	// record's own values from tripping the uniqueness scan.
	checkReq := req
	if req.Email == patient.Email {
		checkReq.Email = ""
	}
	if req.PhoneNumber == patient.PhoneNumber {
		checkReq.PhoneNumber = ""
	}
	if req.GovernmentIDType == patient.GovernmentIDType && req.GovernmentIDNumber == patient.GovernmentIDNumber {
		checkReq.GovernmentIDType = ""
		checkReq.GovernmentIDNumber = ""
	}
	if violation, err := util.CheckUnique(db, &model.Patient{}, patientUniqueFields(checkReq), patient.ID); err != nil {
		util.CallServerError(c, util.APIErrorParams{Msg: "Failed to check existing patients", Err: err})
		return
	} else if violation != nil {
		util.CallUserError(c, util.APIErrorParams{Msg: violation.Message, Field: violation.Field})
		return
	}

	if req.Password != "" {
		if err := util.ValidatePasswordPolicy(req.Password); err != nil {
			util.CallUserError(c, util.APIErrorParams{Msg: err.Error(), Field: "password"})
			return
		}
		hashed, err := util.HashPassword(req.Password)
		if err != nil {
			util.CallServerError(c, util.APIErrorParams{Msg: "Failed to hash password", Err: err})
			return
		}
		patient.Password = hashed
	}

	if req.DateOfBirth != "" {
		dob, err := parseWireDate(req.DateOfBirth)
		if err != nil {
			util.CallUserError(c, util.APIErrorParams{Msg: "Invalid date of birth", Field: "date_of_birth"})
			return
		}
		patient.DateOfBirth = dob
	}

	if req.ValidityDate != nil {
		if *req.ValidityDate == "" || *req.ValidityDate == "null" {
			patient.ValidityDate = nil
		} else {
			vd, err := parseWireDate(*req.ValidityDate)
			if err != nil {
				util.CallUserError(c, util.APIErrorParams{Msg: "Invalid validity date", Field: "validity_date"})
				return
			}
			patient.ValidityDate = &vd
		}
	}

	if req.Name != "" {
		patient.Name = util.NormalizeName(req.Name)
	}
	if req.Gender != "" {
		patient.Gender = req.Gender
	}
	if req.PhoneNumber != "" {
		patient.PhoneNumber = req.PhoneNumber
	}
	if req.Email != "" {
		patient.Email = req.Email
	}
	if req.PermanentAddress != "" {
		patient.PermanentAddress = req.PermanentAddress
	}
	if req.TemporaryAddress != "" {
		patient.TemporaryAddress = req.TemporaryAddress
	}
	if req.GovernmentIDType != "" {
		patient.GovernmentIDType = req.GovernmentIDType
	}
	if req.GovernmentIDNumber != "" {
		patient.GovernmentIDNumber = req.GovernmentIDNumber
	}
	if req.NationalHealthID != "" {
		patient.NationalHealthID = req.NationalHealthID
	}
	if req.Allergies != "" {
		patient.Allergies = req.Allergies
	}
	if req.ChronicConditions != "" {
		patient.ChronicConditions = req.ChronicConditions
	}
	if req.PastSurgeries != "" {
		patient.PastSurgeries = req.PastSurgeries
	}
	if req.CurrentMedications != "" {
		patient.CurrentMedications = req.CurrentMedications
	}
	if req.FamilyMedicalHistory != "" {
		patient.FamilyMedicalHistory = req.FamilyMedicalHistory
	}
	if req.EmergencyContactName != "" {
		patient.EmergencyContactName = req.EmergencyContactName
	}
	if req.EmergencyContactRelationship != "" {
		patient.EmergencyContactRelationship = req.EmergencyContactRelationship
	}
	if req.EmergencyContactPhone != "" {
		patient.EmergencyContactPhone = req.EmergencyContactPhone
	}
	if req.InsuranceProvider != "" {
		patient.InsuranceProvider = req.InsuranceProvider
	}
	if req.PolicyNumber != "" {
		patient.PolicyNumber = req.PolicyNumber
	}
	if req.BloodGroup != "" {
		patient.BloodGroup = req.BloodGroup
	}
	if req.Occupation != "" {
		patient.Occupation = req.Occupation
	}
	if req.MaritalStatus != "" {
		patient.MaritalStatus = req.MaritalStatus
	}
	if req.PreferredLanguage != "" {
		patient.PreferredLanguage = req.PreferredLanguage
	}

	photo, ok := savePhotoOrRespond(c)
	if !ok {
		return
	}
	if photo != "" {
		patient.Photo = photo
	}

	if err := db.Save(&patient).Error; err != nil {
		util.LogStorageFailure("patient update", err)
		util.CallServerError(c, util.APIErrorParams{Msg: "Failed to update patient", Err: err})
		return
	}

	util.CallSuccessOK(c, util.APISuccessParams{
		Msg:  "Patient updated successfully",
		Data: map[string]interface{}{"patient": patient},
	})
}

// DeletePatient godoc
// @Summary      Delete a patient record
// @Description  Hard delete; the record is removed permanently and its identifiers become reusable
// @Tags         Patient
// @Produce      json
// @Param        id path int true "Patient ID"
// @Success      200 {object} util.APIResponse "Patient deleted"
// @Failure      404 {object} util.APIResponse "Patient not found"
// @Failure      500 {object} util.APIResponse "Server error"
// @Router       /users/{id} [delete]
func DeletePatient(c *gin.Context) {
	db, ok := getDBOrRespond(c)
	if !ok {
		return
	}

	var patient model.Patient
	if err := db.First(&patient, "id = ?", c.Param("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			util.CallErrorNotFound(c, util.APIErrorParams{Msg: "Patient not found"})
			return
		}
		util.CallServerError(c, util.APIErrorParams{Msg: "Error fetching patient", Err: err})
		return
	}

	if err := db.Unscoped().Delete(&patient).Error; err != nil {
		util.LogStorageFailure("patient deletion", err)
		util.CallServerError(c, util.APIErrorParams{Msg: "Failed to delete patient", Err: err})
		return
	}

	util.CallSuccessOK(c, util.APISuccessParams{
		Msg:  "Patient deleted successfully",
		Data: map[string]interface{}{"patient": map[string]interface{}{"id": patient.ID}},
	})
}
