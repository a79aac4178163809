package endpoint

import (
	"errors"
	"fmt"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/mediconnect/mediconnect-api/middleware"
	"github.com/mediconnect/mediconnect-api/model"
	"github.com/mediconnect/mediconnect-api/util"
)

type registerHospitalRequest struct {
	Name               string `json:"name" form:"name" example:"City General Hospital"`
	Email              string `json:"email" form:"email" example:"admin@citygeneral.lk"`
	Password           string `json:"password" form:"password" example:"Str0ng?Pass"`
	Address            string `json:"address" form:"address" example:"123 Hospital Rd, Colombo"`
	Phone              string `json:"phone" form:"phone" example:"0112345678"`
	RegistrationNumber string `json:"registration_number" form:"registration_number" example:"HOSP-2024-0012"`
	District           string `json:"district" form:"district" example:"Colombo"`
}

// hospitalUniqueFields builds the uniqueness checks for a hospital record.
// Blank values are skipped by the validator, so partial updates only check
// what they change.
func hospitalUniqueFields(name, email, phone, registrationNumber string) []util.UniqueField {
	return []util.UniqueField{
		{Name: "name", Label: "name", Value: name, Query: "name = ?", Args: []interface{}{name}},
		{Name: "email", Label: "email", Value: email, Query: "email = ?", Args: []interface{}{email}},
		{Name: "phone", Label: "phone", Value: phone, Query: "contact_number = ?", Args: []interface{}{phone}},
		{Name: "registration_number", Label: "registrationNumber", Value: registrationNumber, Query: "registration_number = ?", Args: []interface{}{registrationNumber}},
	}
}

// RegisterHospital godoc
// @Summary      Register a new hospital
// @Description  Self-service hospital registration (public endpoint)
// @Tags         Hospital
// @Accept       json
// @Produce      json
// @Param        request body registerHospitalRequest true "Hospital details"
// @Success      201 {object} util.APIResponse "Hospital registered"
// @Failure      400 {object} util.APIResponse "Validation failure"
// @Failure      500 {object} util.APIResponse "Server error"
// @Router       /hospitals/register [post]
func RegisterHospital(c *gin.Context) {
	var req registerHospitalRequest
	if !bindOrRespond(c, &req, "Invalid request body") {
		return
	}

	if missing := firstMissingField([]requiredField{
		{"name", req.Name},
		{"email", req.Email},
		{"password", req.Password},
		{"address", req.Address},
		{"phone", req.Phone},
		{"registration_number", req.RegistrationNumber},
	}); missing != "" {
		respondMissingField(c, missing)
		return
	}
	req.Name = util.NormalizeName(req.Name)
	if req.District == "" {
		req.District = "Default District"
	}

	db, ok := getDBOrRespond(c)
	if !ok {
		return
	}

	if violation, err := util.CheckUnique(db, &model.Hospital{},
		hospitalUniqueFields(req.Name, req.Email, req.Phone, req.RegistrationNumber), 0); err != nil {
		util.CallServerError(c, util.APIErrorParams{Msg: "Failed to check existing hospital", Err: err})
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

	hospital := model.Hospital{
		Name:               req.Name,
		Email:              req.Email,
		Password:           hashedPassword,
		Address:            req.Address,
		ContactNumber:      req.Phone,
		RegistrationNumber: req.RegistrationNumber,
		District:           req.District,
		Status:             model.StatusActive,
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		// Re-check inside the transaction; the unique indexes are the final
		// guard against a concurrent insert between check and write.
		violation, err := util.CheckUnique(tx, &model.Hospital{},
			hospitalUniqueFields(req.Name, req.Email, req.Phone, req.RegistrationNumber), 0)
		if err != nil {
			return err
		}
		if violation != nil {
			return &util.ViolationError{Violation: *violation}
		}
		return tx.Create(&hospital).Error
	})
	if err != nil {
		var ve *util.ViolationError
		if errors.As(err, &ve) {
			util.CallUserError(c, util.APIErrorParams{Msg: ve.Violation.Message, Field: ve.Violation.Field})
			return
		}
		util.LogStorageFailure("hospital registration", err)
		util.CallServerError(c, util.APIErrorParams{Msg: "Registration failed", Err: err})
		return
	}

	util.InvalidateHospitalDirectoryCache()
	util.LogSecurityEvent(util.SecurityEvent{
		EventType: util.EventRegistration,
		Principal: fmt.Sprintf("hospital:%d", hospital.ID),
		Email:     hospital.Email,
		IP:        c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
		Message:   "Hospital registered",
	})

	util.CallSuccessCreated(c, util.APISuccessParams{
		Msg: "Hospital registered successfully",
		Data: map[string]interface{}{
			"hospital": map[string]interface{}{
				"id":    hospital.ID,
				"name":  hospital.Name,
				"email": hospital.Email,
			},
		},
	})
}

type hospitalLoginRequest struct {
	Email    string `json:"email" binding:"required,email" example:"admin@citygeneral.lk"`
	Password string `json:"password" binding:"required" example:"Str0ng?Pass"`
}

// LoginHospital godoc
// @Summary      Hospital login
// @Description  Authenticate a hospital and issue a bearer token
// @Tags         Hospital
// @Accept       json
// @Produce      json
// @Param        request body hospitalLoginRequest true "Login credentials"
// @Success      200 {object} util.APIResponse "Login successful"
// @Failure      400 {object} util.APIResponse "Invalid credentials"
// @Failure      500 {object} util.APIResponse "Server error"
// @Router       /hospitals/login [post]
func LoginHospital(c *gin.Context) {
	var req hospitalLoginRequest
	if !bindOrRespond(c, &req, "Invalid request payload") {
		return
	}

	db, ok := getDBOrRespond(c)
	if !ok {
		return
	}

	var hospital model.Hospital
	if err := db.Where("email = ?", req.Email).First(&hospital).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			util.LogLoginFailure(req.Email, c.ClientIP(), c.Request.UserAgent(), "hospital not found")
			util.CallUserError(c, util.APIErrorParams{Msg: "Invalid credentials"})
			return
		}
		util.CallServerError(c, util.APIErrorParams{Msg: "Database error", Err: err})
		return
	}

	match, err := util.VerifyPassword(req.Password, hospital.Password)
	if err != nil {
		util.CallServerError(c, util.APIErrorParams{Msg: "Password verification failed", Err: err})
		return
	}
	if !match {
		util.LogLoginFailure(req.Email, c.ClientIP(), c.Request.UserAgent(), "invalid password")
		util.CallUserError(c, util.APIErrorParams{Msg: "Invalid credentials"})
		return
	}

	token, err := util.IssueHospitalToken(hospital.ID)
	if err != nil {
		util.CallServerError(c, util.APIErrorParams{Msg: "Could not generate token", Err: err})
		return
	}

	util.LogLoginSuccess(fmt.Sprintf("hospital:%d", hospital.ID), hospital.Email, c.ClientIP(), c.Request.UserAgent())
	util.CallSuccessOK(c, util.APISuccessParams{
		Msg: "Login successful",
		Data: map[string]interface{}{
			"token": token,
			"hospital": map[string]interface{}{
				"id":    hospital.ID,
				"name":  hospital.Name,
				"email": hospital.Email,
			},
		},
	})
}

// ListHospitals godoc
// @Summary      List all hospitals
// @Description  Public hospital directory, password-stripped and cached
// @Tags         Hospital
// @Produce      json
// @Success      200 {object} util.APIResponse "Hospitals retrieved"
// @Failure      500 {object} util.APIResponse "Server error"
// @Router       /hospitals [get]
func ListHospitals(c *gin.Context) {
	if hospitals, ok := util.HospitalDirectoryCacheGet(); ok {
		util.CallSuccessOK(c, util.APISuccessParams{
			Msg:  "Hospitals retrieved",
			Data: map[string]interface{}{"hospitals": hospitals},
		})
		return
	}

	db, ok := getDBOrRespond(c)
	if !ok {
		return
	}

	var hospitals []model.Hospital
	if err := db.Find(&hospitals).Error; err != nil {
		util.CallServerError(c, util.APIErrorParams{Msg: "Error fetching hospitals", Err: err})
		return
	}

	util.HospitalDirectoryCacheSet(hospitals)
	util.CallSuccessOK(c, util.APISuccessParams{
		Msg:  "Hospitals retrieved",
		Data: map[string]interface{}{"hospitals": hospitals},
	})
}

// GetHospitalProfile godoc
// @Summary      Get the authenticated hospital's profile
// @Tags         Hospital
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} util.APIResponse "Profile retrieved"
// @Failure      401 {object} util.APIResponse "Unauthorized"
// @Router       /hospitals/profile [get]
func GetHospitalProfile(c *gin.Context) {
	hospital, ok := middleware.GetHospital(c)
	if !ok {
		util.CallUserNotAuthorized(c, util.APIErrorParams{Msg: "Please authenticate"})
		return
	}

	util.CallSuccessOK(c, util.APISuccessParams{
		Msg:  "Profile retrieved",
		Data: map[string]interface{}{"hospital": hospital},
	})
}

type updateHospitalProfileRequest struct {
	Name               string `json:"name" form:"name"`
	Email              string `json:"email" form:"email"`
	Address            string `json:"address" form:"address"`
	Phone              string `json:"phone" form:"phone"`
	RegistrationNumber string `json:"registration_number" form:"registration_number"`
	District           string `json:"district" form:"district"`
	Status             string `json:"status" form:"status"`
}

// UpdateHospitalProfile godoc
// @Summary      Update the authenticated hospital's profile
// @Description  Partial update; the password cannot be changed through this route
// @Tags         Hospital
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body updateHospitalProfileRequest true "Fields to update"
// @Success      200 {object} util.APIResponse "Profile updated"
// @Failure      400 {object} util.APIResponse "Validation failure"
// @Failure      401 {object} util.APIResponse "Unauthorized"
// @Failure      500 {object} util.APIResponse "Server error"
// @Router       /hospitals/profile [put]
func UpdateHospitalProfile(c *gin.Context) {
	hospital, ok := middleware.GetHospital(c)
	if !ok {
		util.CallUserNotAuthorized(c, util.APIErrorParams{Msg: "Please authenticate"})
		return
	}

	var req updateHospitalProfileRequest
	if !bindOrRespond(c, &req, "Invalid request body") {
		return
	}

	if req.Status != "" && !model.ValidStatus(req.Status) {
		util.CallUserError(c, util.APIErrorParams{Msg: "Invalid status value", Field: "status"})
		return
	}

	db, ok := getDBOrRespond(c)
	if !ok {
		return
	}

	if req.Name != "" {
		req.Name = util.NormalizeName(req.Name)
	}
	if violation, err := util.CheckUnique(db, &model.Hospital{},
		hospitalUniqueFields(req.Name, req.Email, req.Phone, req.RegistrationNumber), hospital.ID); err != nil {
		util.CallServerError(c, util.APIErrorParams{Msg: "Failed to validate profile", Err: err})
		return
	} else if violation != nil {
		util.CallUserError(c, util.APIErrorParams{Msg: violation.Message, Field: violation.Field})
		return
	}

	if req.Name != "" {
		hospital.Name = req.Name
	}
	if req.Email != "" {
		hospital.Email = req.Email
	}
	if req.Address != "" {
		hospital.Address = req.Address
	}
	if req.Phone != "" {
		hospital.ContactNumber = req.Phone
	}
	if req.RegistrationNumber != "" {
		hospital.RegistrationNumber = req.RegistrationNumber
	}
	if req.District != "" {
		hospital.District = req.District
	}
	if req.Status != "" {
		hospital.Status = req.Status
	}

	if err := db.Save(&hospital).Error; err != nil {
		util.LogStorageFailure("hospital profile update", err)
		util.CallServerError(c, util.APIErrorParams{Msg: "Failed to update profile", Err: err})
		return
	}

	util.InvalidateHospitalDirectoryCache()
	util.CallSuccessOK(c, util.APISuccessParams{
		Msg:  "Profile updated",
		Data: map[string]interface{}{"hospital": hospital},
	})
}

type validateFieldRequest struct {
	Field string `json:"field" example:"email"`
	Value string `json:"value" example:"admin@citygeneral.lk"`
}

// ValidateHospitalField godoc
// @Summary      Validate a single hospital registration field
// @Description  Pre-submit uniqueness check; empty values and unknown fields report valid
// @Tags         Hospital
// @Accept       json
// @Produce      json
// @Param        request body validateFieldRequest true "Field to validate"
// @Success      200 {object} util.APIResponse "Validation result"
// @Failure      400 {object} util.APIResponse "Invalid request payload"
// @Router       /hospitals/validate [post]
func ValidateHospitalField(c *gin.Context) {
	var req validateFieldRequest
	if !bindOrRespond(c, &req, "Invalid request payload") {
		return
	}

	valid := map[string]interface{}{"is_valid": true}

	// Empty values are skip-checked so clients can validate one field at a time.
	if req.Value == "" {
		util.CallSuccessOK(c, util.APISuccessParams{Msg: "Field validated", Data: valid})
		return
	}

	var field util.UniqueField
	switch req.Field {
	case "name":
		field = util.UniqueField{Name: "name", Label: "name", Value: req.Value, Query: "name = ?", Args: []interface{}{req.Value}}
	case "email":
		field = util.UniqueField{Name: "email", Label: "email", Value: req.Value, Query: "email = ?", Args: []interface{}{req.Value}}
	case "phone":
		field = util.UniqueField{Name: "phone", Label: "phone", Value: req.Value, Query: "contact_number = ?", Args: []interface{}{req.Value}}
	case "registrationNumber":
		field = util.UniqueField{Name: "registration_number", Label: "registrationNumber", Value: req.Value, Query: "registration_number = ?", Args: []interface{}{req.Value}}
	default:
		util.CallSuccessOK(c, util.APISuccessParams{Msg: "Field validated", Data: valid})
		return
	}

	db, ok := getDBOrRespond(c)
	if !ok {
		return
	}

	violation, err := util.CheckUnique(db, &model.Hospital{}, []util.UniqueField{field}, 0)
	if err != nil {
		util.CallServerError(c, util.APIErrorParams{Msg: "Validation failed", Err: err})
		return
	}
	if violation != nil {
		util.CallSuccessOK(c, util.APISuccessParams{
			Msg: "Field validated",
			Data: map[string]interface{}{
				"is_valid": false,
				"field":    violation.Field,
				"reason":   violation.Message,
			},
		})
		return
	}

	util.CallSuccessOK(c, util.APISuccessParams{Msg: "Field validated", Data: valid})
}
