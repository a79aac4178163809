package endpoint

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/mediconnect/mediconnect-api/model"
	"github.com/mediconnect/mediconnect-api/util"
)

type registerRequest struct {
	Name     string `json:"name" form:"name" example:"Sam Fernando"`
	Gmail    string `json:"gmail" form:"gmail" example:"sam.fernando@gmail.com"`
	Password string `json:"password" form:"password" example:"Str0ng?Pass"`
}

// Register godoc
// @Summary      Create a basic account
// @Description  Simple signup endpoint; passwords are stored hashed, never in plaintext
// @Tags         Register
// @Accept       json
// @Produce      json
// @Param        request body registerRequest true "Signup payload"
// @Success      201 {object} util.APIResponse "Account created"
// @Failure      400 {object} util.APIResponse "Validation failure"
// @Failure      500 {object} util.APIResponse "Server error"
// @Router       /register [post]
func Register(c *gin.Context) {
	var req registerRequest
	if !bindOrRespond(c, &req, "Invalid request body") {
		return
	}

	if missing := firstMissingField([]requiredField{
		{"name", req.Name},
		{"gmail", req.Gmail},
		{"password", req.Password},
	}); missing != "" {
		respondMissingField(c, missing)
		return
	}

	db, ok := getDBOrRespond(c)
	if !ok {
		return
	}

	fields := []util.UniqueField{
		{Name: "gmail", Label: "email", Value: req.Gmail, Query: "gmail = ?", Args: []interface{}{req.Gmail}},
	}
	if violation, err := util.CheckUnique(db, &model.Register{}, fields, 0); err != nil {
		util.CallServerError(c, util.APIErrorParams{Msg: "Failed to check existing accounts", Err: err})
		return
	} else if violation != nil {
		util.CallUserError(c, util.APIErrorParams{Msg: violation.Message, Field: violation.Field})
		return
	}

	hashedPassword, err := util.HashPassword(req.Password)
	if err != nil {
		util.CallServerError(c, util.APIErrorParams{Msg: "Failed to hash password", Err: err})
		return
	}

	account := model.Register{
		Name:     util.NormalizeName(req.Name),
		Gmail:    req.Gmail,
		Password: hashedPassword,
	}
	if err := db.Create(&account).Error; err != nil {
		util.LogStorageFailure("account registration", err)
		util.CallServerError(c, util.APIErrorParams{Msg: "Failed to create account", Err: err})
		return
	}

	util.LogSecurityEvent(util.SecurityEvent{
		EventType: util.EventRegistration,
		Email:     account.Gmail,
		IP:        c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
		Message:   "Account registered",
	})

	util.CallSuccessCreated(c, util.APISuccessParams{
		Msg: "Account created successfully",
		Data: map[string]interface{}{
			"account": map[string]interface{}{
				"id":    account.ID,
				"name":  account.Name,
				"gmail": account.Gmail,
			},
		},
	})
}

type loginRegisterRequest struct {
	Gmail    string `json:"gmail" binding:"required,email" example:"sam.fernando@gmail.com"`
	Password string `json:"password" binding:"required" example:"Str0ng?Pass"`
}

// LoginRegister godoc
// @Summary      Basic account login
// @Tags         Register
// @Accept       json
// @Produce      json
// @Param        request body loginRegisterRequest true "Login credentials"
// @Success      200 {object} util.APIResponse "Login successful"
// @Failure      400 {object} util.APIResponse "Invalid credentials"
// @Failure      500 {object} util.APIResponse "Server error"
// @Router       /login [post]
func LoginRegister(c *gin.Context) {
	var req loginRegisterRequest
	if !bindOrRespond(c, &req, "Invalid request payload") {
		return
	}

	db, ok := getDBOrRespond(c)
	if !ok {
		return
	}

	var account model.Register
	if err := db.Where("gmail = ?", req.Gmail).First(&account).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			util.LogLoginFailure(req.Gmail, c.ClientIP(), c.Request.UserAgent(), "account not found")
			util.CallUserError(c, util.APIErrorParams{Msg: "Invalid credentials"})
			return
		}
		util.CallServerError(c, util.APIErrorParams{Msg: "Database error", Err: err})
		return
	}

	match, err := util.VerifyPassword(req.Password, account.Password)
	if err != nil {
		util.CallServerError(c, util.APIErrorParams{Msg: "Password verification failed", Err: err})
		return
	}
	if !match {
		util.LogLoginFailure(req.Gmail, c.ClientIP(), c.Request.UserAgent(), "invalid password")
		util.CallUserError(c, util.APIErrorParams{Msg: "Invalid credentials"})
		return
	}

	util.CallSuccessOK(c, util.APISuccessParams{
		Msg: "Login successful",
		Data: map[string]interface{}{
			"account": map[string]interface{}{
				"id":    account.ID,
				"name":  account.Name,
				"gmail": account.Gmail,
			},
		},
	})
}
