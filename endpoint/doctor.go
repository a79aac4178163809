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

type registerDoctorRequest struct {
	Name           string `json:"name" form:"name" example:"Dr. Jane Perera"`
	Email          string `json:"email" form:"email" example:"jane.perera@citygeneral.lk"`
	Password       string `json:"password" form:"password" example:"Str0ng?Pass"`
	Specialization string `json:"specialization" form:"specialization" example:"Cardiology"`
	Qualification  string `json:"qualification" form:"qualification" example:"MBBS, MD"`
	Experience     int    `json:"experience" form:"experience" example:"12"`
	Phone          string `json:"phone" form:"phone" example:"0771234567"`
}

func doctorEmailUniqueField(email string) []util.UniqueField {
	return []util.UniqueField{
		{Name: "email", Label: "email", Value: email, Query: "email = ?", Args: []interface{}{email}},
	}
}

// RegisterDoctor godoc
// @Summary      Register a new doctor
// @Description  Creates a doctor under the authenticated hospital, with an optional profile photo
// @Tags         Doctor
// @Accept       mpfd
// @Produce      json
// @Security     BearerAuth
// @Param        photo formData file false "Profile photo (jpeg/jpg/png, max 5MB)"
// @Success      201 {object} util.APIResponse "Doctor registered"
// @Failure      400 {object} util.APIResponse "Validation failure"
// @Failure      401 {object} util.APIResponse "Unauthorized"
// @Failure      500 {object} util.APIResponse "Server error"
// @Router       /doctors/register [post]
func RegisterDoctor(c *gin.Context) {
	hospital, ok := middleware.GetHospital(c)
	if !ok {
		util.CallUserNotAuthorized(c, util.APIErrorParams{Msg: "Please authenticate"})
		return
	}

	var req registerDoctorRequest
	if !bindOrRespond(c, &req, "Invalid request body") {
		return
	}

	if missing := firstMissingField([]requiredField{
		{"name", req.Name},
		{"email", req.Email},
		{"password", req.Password},
		{"specialization", req.Specialization},
		{"qualification", req.Qualification},
		{"phone", req.Phone},
	}); missing != "" {
		respondMissingField(c, missing)
		return
	}
	if req.Experience < 0 {
		util.CallUserError(c, util.APIErrorParams{Msg: "experience must be a non-negative integer", Field: "experience"})
		return
	}

	db, ok := getDBOrRespond(c)
	if !ok {
		return
	}

	if violation, err := util.CheckUnique(db, &model.Doctor{}, doctorEmailUniqueField(req.Email), 0); err != nil {
		util.CallServerError(c, util.APIErrorParams{Msg: "Failed to check existing doctor", Err: err})
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

	doctor := model.Doctor{
		Name:           util.NormalizeName(req.Name),
		Email:          req.Email,
		Password:       hashedPassword,
		Specialization: req.Specialization,
		Qualification:  req.Qualification,
		Experience:     req.Experience,
		Phone:          req.Phone,
		HospitalID:     hospital.ID,
		Status:         model.StatusActive,
		Photo:          photo,
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		violation, err := util.CheckUnique(tx, &model.Doctor{}, doctorEmailUniqueField(req.Email), 0)
		if err != nil {
			return err
		}
		if violation != nil {
			return &util.ViolationError{Violation: *violation}
		}
		return tx.Create(&doctor).Error
	})
	if err != nil {
		var ve *util.ViolationError
		if errors.As(err, &ve) {
			util.CallUserError(c, util.APIErrorParams{Msg: ve.Violation.Message, Field: ve.Violation.Field})
			return
		}
		util.LogStorageFailure("doctor registration", err)
		util.CallServerError(c, util.APIErrorParams{Msg: "Failed to register doctor", Err: err})
		return
	}

	util.LogSecurityEvent(util.SecurityEvent{
		EventType: util.EventRegistration,
		Principal: fmt.Sprintf("hospital:%d", hospital.ID),
		Email:     doctor.Email,
		IP:        c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
		Message:   fmt.Sprintf("Doctor %d registered", doctor.ID),
	})

	util.CallSuccessCreated(c, util.APISuccessParams{
		Msg: "Doctor registered successfully",
		Data: map[string]interface{}{
			"doctor": map[string]interface{}{
				"id":    doctor.ID,
				"name":  doctor.Name,
				"email": doctor.Email,
				"photo": doctor.Photo,
			},
		},
	})
}

type doctorLoginRequest struct {
	Email    string `json:"email" binding:"required,email" example:"jane.perera@citygeneral.lk"`
	Password string `json:"password" binding:"required" example:"Str0ng?Pass"`
}

// LoginDoctor godoc
// @Summary      Doctor login
// @Description  Authenticate a doctor and issue a bearer token; deactivated accounts are rejected
// @Tags         Doctor
// @Accept       json
// @Produce      json
// @Param        request body doctorLoginRequest true "Login credentials"
// @Success      200 {object} util.APIResponse "Login successful"
// @Failure      400 {object} util.APIResponse "Invalid credentials"
// @Failure      403 {object} util.APIResponse "Account deactivated"
// @Failure      500 {object} util.APIResponse "Server error"
// @Router       /doctors/login [post]
func LoginDoctor(c *gin.Context) {
	var req doctorLoginRequest
	if !bindOrRespond(c, &req, "Invalid request payload") {
		return
	}

	db, ok := getDBOrRespond(c)
	if !ok {
		return
	}

	var doctor model.Doctor
	if err := db.Where("email = ?", req.Email).First(&doctor).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			util.LogLoginFailure(req.Email, c.ClientIP(), c.Request.UserAgent(), "doctor not found")
			util.CallUserError(c, util.APIErrorParams{Msg: "Invalid credentials"})
			return
		}
		util.CallServerError(c, util.APIErrorParams{Msg: "Database error", Err: err})
		return
	}

	if doctor.Status == model.StatusInactive {
		util.LogDeactivatedAccess(fmt.Sprintf("doctor:%d", doctor.ID), c.ClientIP(), c.Request.URL.Path)
		util.CallUserForbidden(c, util.APIErrorParams{
			Msg: "Your account has been deactivated. Please contact your hospital administrator.",
		})
		return
	}

	match, err := util.VerifyPassword(req.Password, doctor.Password)
	if err != nil {
		util.CallServerError(c, util.APIErrorParams{Msg: "Password verification failed", Err: err})
		return
	}
	if !match {
		util.LogLoginFailure(req.Email, c.ClientIP(), c.Request.UserAgent(), "invalid password")
		util.CallUserError(c, util.APIErrorParams{Msg: "Invalid credentials"})
		return
	}

	token, err := util.IssueDoctorToken(doctor.ID)
	if err != nil {
		util.CallServerError(c, util.APIErrorParams{Msg: "Could not generate token", Err: err})
		return
	}

	// Embed the owning hospital's name for the doctor dashboard.
	var hospitalName string
	var hospital model.Hospital
	if err := db.First(&hospital, doctor.HospitalID).Error; err == nil {
		hospitalName = hospital.Name
	}

	util.LogLoginSuccess(fmt.Sprintf("doctor:%d", doctor.ID), doctor.Email, c.ClientIP(), c.Request.UserAgent())
	util.CallSuccessOK(c, util.APISuccessParams{
		Msg: "Login successful",
		Data: map[string]interface{}{
			"token": token,
			"doctor": map[string]interface{}{
				"id":             doctor.ID,
				"name":           doctor.Name,
				"email":          doctor.Email,
				"specialization": doctor.Specialization,
				"photo":          doctor.Photo,
				"hospital_name":  hospitalName,
				"status":         doctor.Status,
			},
		},
	})
}

// ListHospitalDoctors godoc
// @Summary      List the authenticated hospital's doctors
// @Description  Returns all doctors owned by the calling hospital, active and inactive
// @Tags         Doctor
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} util.APIResponse "Doctors retrieved"
// @Failure      401 {object} util.APIResponse "Unauthorized"
// @Failure      500 {object} util.APIResponse "Server error"
// @Router       /doctors/hospital-doctors [get]
func ListHospitalDoctors(c *gin.Context) {
	hospital, ok := middleware.GetHospital(c)
	if !ok {
		util.CallUserNotAuthorized(c, util.APIErrorParams{Msg: "Please authenticate"})
		return
	}

	db, ok := getDBOrRespond(c)
	if !ok {
		return
	}

	var doctors []model.Doctor
	if err := db.Where("hospital_id = ?", hospital.ID).Find(&doctors).Error; err != nil {
		util.CallServerError(c, util.APIErrorParams{Msg: "Failed to fetch doctors", Err: err})
		return
	}

	util.CallSuccessOK(c, util.APISuccessParams{
		Msg:  "Doctors retrieved",
		Data: map[string]interface{}{"doctors": doctors},
	})
}

// GetDoctorProfile godoc
// @Summary      Get the authenticated doctor's profile
// @Tags         Doctor
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} util.APIResponse "Profile retrieved"
// @Failure      401 {object} util.APIResponse "Unauthorized"
// @Router       /doctors/profile [get]
func GetDoctorProfile(c *gin.Context) {
	doctor, ok := middleware.GetDoctor(c)
	if !ok {
		util.CallUserNotAuthorized(c, util.APIErrorParams{Msg: "Please authenticate"})
		return
	}

	var hospitalName string
	if db := middleware.GetDB(c); db != nil {
		var hospital model.Hospital
		if err := db.First(&hospital, doctor.HospitalID).Error; err == nil {
			hospitalName = hospital.Name
		}
	}

	util.CallSuccessOK(c, util.APISuccessParams{
		Msg: "Profile retrieved",
		Data: map[string]interface{}{
			"doctor":        doctor,
			"hospital_name": hospitalName,
		},
	})
}

type updateDoctorRequest struct {
	Name           string `json:"name" form:"name"`
	Email          string `json:"email" form:"email"`
	Password       string `json:"password" form:"password"`
	Specialization string `json:"specialization" form:"specialization"`
	Qualification  string `json:"qualification" form:"qualification"`
	Experience     *int   `json:"experience" form:"experience"`
	Phone          string `json:"phone" form:"phone"`
}

// applyDoctorUpdate merges non-empty request fields into the doctor record.
// Experience is presence-checked so it can be set back to zero.
// Status and the owning hospital are never touched here; status has its own
// endpoint and the hospital binding is immutable after creation.
func applyDoctorUpdate(c *gin.Context, db *gorm.DB, doctor *model.Doctor, req updateDoctorRequest) bool {
	if req.Experience != nil && *req.Experience < 0 {
		util.CallUserError(c, util.APIErrorParams{Msg: "experience must be a non-negative integer", Field: "experience"})
		return false
	}

	if req.Email != "" && req.Email != doctor.Email {
		violation, err := util.CheckUnique(db, &model.Doctor{}, doctorEmailUniqueField(req.Email), doctor.ID)
		if err != nil {
			util.CallServerError(c, util.APIErrorParams{Msg: "Failed to validate email", Err: err})
			return false
		}
		if violation != nil {
			util.CallUserError(c, util.APIErrorParams{Msg: violation.Message, Field: violation.Field})
			return false
		}
		doctor.Email = req.Email
	}

	if req.Password != "" {
		if err := util.ValidatePasswordPolicy(req.Password); err != nil {
			util.CallUserError(c, util.APIErrorParams{Msg: err.Error(), Field: "password"})
			return false
		}
		hashed, err := util.HashPassword(req.Password)
		if err != nil {
			util.CallServerError(c, util.APIErrorParams{Msg: "Failed to hash password", Err: err})
			return false
		}
		doctor.Password = hashed
	}

	if req.Name != "" {
		doctor.Name = util.NormalizeName(req.Name)
	}
	if req.Specialization != "" {
		doctor.Specialization = req.Specialization
	}
	if req.Qualification != "" {
		doctor.Qualification = req.Qualification
	}
	if req.Experience != nil {
		doctor.Experience = *req.Experience
	}
	if req.Phone != "" {
		doctor.Phone = req.Phone
	}

	photo, ok := savePhotoOrRespond(c)
	if !ok {
		return false
	}
	if photo != "" {
		doctor.Photo = photo
	}
	return true
}

// UpdateDoctor godoc
// @Summary      Update a doctor
// @Description  Owning hospital updates a doctor's profile; status changes go through /doctors/{id}/status
// @Tags         Doctor
// @Accept       mpfd
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Doctor ID"
// @Success      200 {object} util.APIResponse "Doctor updated"
// @Failure      400 {object} util.APIResponse "Validation failure"
// @Failure      401 {object} util.APIResponse "Unauthorized"
// @Failure      404 {object} util.APIResponse "Doctor not found or not owned by the caller"
// @Failure      500 {object} util.APIResponse "Server error"
// @Router       /doctors/{id} [put]
func UpdateDoctor(c *gin.Context) {
	hospital, ok := middleware.GetHospital(c)
	if !ok {
		util.CallUserNotAuthorized(c, util.APIErrorParams{Msg: "Please authenticate"})
		return
	}

	id := c.Param("id")
	if id == "" {
		util.CallUserError(c, util.APIErrorParams{Msg: "Missing doctor ID", Field: "id"})
		return
	}

	var req updateDoctorRequest
	if !bindOrRespond(c, &req, "Invalid request body") {
		return
	}

	db, ok := getDBOrRespond(c)
	if !ok {
		return
	}

	// Tenant isolation: a hospital can only ever reach its own doctors.
	var doctor model.Doctor
	if err := db.Where("id = ? AND hospital_id = ?", id, hospital.ID).First(&doctor).Error; err != nil {
		util.CallErrorNotFound(c, util.APIErrorParams{Msg: "Doctor not found or not authorized"})
		return
	}

	if !applyDoctorUpdate(c, db, &doctor, req) {
		return
	}

	if err := db.Save(&doctor).Error; err != nil {
		util.LogStorageFailure("doctor update", err)
		util.CallServerError(c, util.APIErrorParams{Msg: "Failed to update doctor", Err: err})
		return
	}

	util.CallSuccessOK(c, util.APISuccessParams{
		Msg:  "Doctor updated successfully",
		Data: map[string]interface{}{"doctor": doctor},
	})
}

type updateDoctorStatusRequest struct {
	Status string `json:"status" example:"Inactive"`
}

// UpdateDoctorStatus godoc
// @Summary      Activate or deactivate a doctor
// @Description  Status must be Active or Inactive; anything else is rejected
// @Tags         Doctor
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Doctor ID"
// @Param        request body updateDoctorStatusRequest true "New status"
// @Success      200 {object} util.APIResponse "Status updated"
// @Failure      400 {object} util.APIResponse "Invalid status value"
// @Failure      401 {object} util.APIResponse "Unauthorized"
// @Failure      404 {object} util.APIResponse "Doctor not found or not owned by the caller"
// @Failure      500 {object} util.APIResponse "Server error"
// @Router       /doctors/{id}/status [patch]
func UpdateDoctorStatus(c *gin.Context) {
	hospital, ok := middleware.GetHospital(c)
	if !ok {
		util.CallUserNotAuthorized(c, util.APIErrorParams{Msg: "Please authenticate"})
		return
	}

	var req updateDoctorStatusRequest
	if !bindOrRespond(c, &req, "Invalid request body") {
		return
	}
	if !model.ValidStatus(req.Status) {
		util.CallUserError(c, util.APIErrorParams{Msg: "Invalid status value", Field: "status"})
		return
	}

	db, ok := getDBOrRespond(c)
	if !ok {
		return
	}

	var doctor model.Doctor
	if err := db.Where("id = ? AND hospital_id = ?", c.Param("id"), hospital.ID).First(&doctor).Error; err != nil {
		util.CallErrorNotFound(c, util.APIErrorParams{Msg: "Doctor not found or not authorized"})
		return
	}

	doctor.Status = req.Status
	if err := db.Save(&doctor).Error; err != nil {
		util.LogStorageFailure("doctor status update", err)
		util.CallServerError(c, util.APIErrorParams{Msg: "Failed to update status", Err: err})
		return
	}

	util.CallSuccessOK(c, util.APISuccessParams{
		Msg:  "Status updated successfully",
		Data: map[string]interface{}{"doctor": doctor},
	})
}

// UpdateDoctorProfile godoc
// @Summary      Update the authenticated doctor's own profile
// @Description  Self-service update; a doctor cannot change their own status
// @Tags         Doctor
// @Accept       mpfd
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} util.APIResponse "Profile updated"
// @Failure      400 {object} util.APIResponse "Validation failure"
// @Failure      401 {object} util.APIResponse "Unauthorized"
// @Failure      500 {object} util.APIResponse "Server error"
// @Router       /doctors/profile/update [put]
func UpdateDoctorProfile(c *gin.Context) {
	doctor, ok := middleware.GetDoctor(c)
	if !ok {
		util.CallUserNotAuthorized(c, util.APIErrorParams{Msg: "Please authenticate"})
		return
	}

	var req updateDoctorRequest
	if !bindOrRespond(c, &req, "Invalid request body") {
		return
	}

	db, ok := getDBOrRespond(c)
	if !ok {
		return
	}

	if !applyDoctorUpdate(c, db, &doctor, req) {
		return
	}

	if err := db.Save(&doctor).Error; err != nil {
		util.LogStorageFailure("doctor profile update", err)
		util.CallServerError(c, util.APIErrorParams{Msg: "Failed to update profile", Err: err})
		return
	}

	util.CallSuccessOK(c, util.APISuccessParams{
		Msg:  "Profile updated successfully",
		Data: map[string]interface{}{"doctor": doctor},
	})
}

// LookupPatient godoc
// @Summary      Look up a patient by government ID
// @Tags         Doctor
// @Produce      json
// @Security     BearerAuth
// @Param        idType path string true "Government ID type (NIC|Passport|DrivingLicense)"
// @Param        idNumber path string true "Government ID number"
// @Success      200 {object} util.APIResponse "Patient retrieved"
// @Failure      400 {object} util.APIResponse "Invalid ID type"
// @Failure      401 {object} util.APIResponse "Unauthorized"
// @Failure      404 {object} util.APIResponse "Patient not found"
// @Router       /doctors/patient-lookup/{idType}/{idNumber} [get]
func LookupPatient(c *gin.Context) {
	idType := c.Param("idType")
	idNumber := c.Param("idNumber")

	if !model.ValidGovernmentIDType(idType) {
		util.CallUserError(c, util.APIErrorParams{Msg: "Invalid ID type", Field: "government_id_type"})
		return
	}

	db, ok := getDBOrRespond(c)
	if !ok {
		return
	}

	var patient model.Patient
	err := db.Where("government_id_type = ? AND government_id_number = ?", idType, idNumber).First(&patient).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			util.CallErrorNotFound(c, util.APIErrorParams{Msg: "Patient not found"})
			return
		}
		util.CallServerError(c, util.APIErrorParams{Msg: "Error looking up patient", Err: err})
		return
	}

	util.CallSuccessOK(c, util.APISuccessParams{
		Msg:  "Patient retrieved",
		Data: map[string]interface{}{"patient": patient},
	})
}
