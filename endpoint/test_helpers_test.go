package endpoint_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/mediconnect/mediconnect-api/endpoint"
	"github.com/mediconnect/mediconnect-api/middleware"
	"github.com/mediconnect/mediconnect-api/model"
	"github.com/mediconnect/mediconnect-api/upload"
	"github.com/mediconnect/mediconnect-api/util"
)

// apiResp mirrors the flat response envelope every handler emits. Entity
// payloads land in Raw for per-test decoding.
type apiResp struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Field   string `json:"field"`
	Token   string `json:"token"`
	Raw     map[string]json.RawMessage
}

func decodeResp(t *testing.T, rr *httptest.ResponseRecorder) apiResp {
	t.Helper()
	var resp apiResp
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp), "body: %s", rr.Body.String())
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp.Raw))
	return resp
}

// newTestRouter builds a router with the production route table backed by an
// in-memory SQLite database and a memory upload store.
func newTestRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()

	dsn := fmt.Sprintf("file:endpoint_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&model.Hospital{}, &model.Doctor{}, &model.Patient{}, &model.Register{},
	))

	endpoint.SetUploadStore(upload.NewMemoryStore())

	r := gin.New()
	r.Use(middleware.CORSMiddleware())
	r.Use(middleware.DatabaseMiddleware(db))

	r.POST("/register", endpoint.Register)
	r.POST("/login", endpoint.LoginRegister)

	hospitals := r.Group("/hospitals")
	{
		hospitals.POST("/register", endpoint.RegisterHospital)
		hospitals.POST("/login", endpoint.LoginHospital)
		hospitals.GET("", endpoint.ListHospitals)
		hospitals.POST("/validate", endpoint.ValidateHospitalField)
		hospitals.GET("/profile", middleware.RequireAuth(util.PrincipalHospital), endpoint.GetHospitalProfile)
		hospitals.PUT("/profile", middleware.RequireAuth(util.PrincipalHospital), endpoint.UpdateHospitalProfile)
	}

	doctors := r.Group("/doctors")
	{
		doctors.POST("/register", middleware.RequireAuth(util.PrincipalHospital), endpoint.RegisterDoctor)
		doctors.POST("/login", endpoint.LoginDoctor)
		doctors.GET("/hospital-doctors", middleware.RequireAuth(util.PrincipalHospital), endpoint.ListHospitalDoctors)
		doctors.GET("/profile", middleware.RequireAuth(util.PrincipalDoctor), endpoint.GetDoctorProfile)
		doctors.PUT("/profile/update", middleware.RequireAuth(util.PrincipalDoctor), endpoint.UpdateDoctorProfile)
		doctors.PUT("/:id", middleware.RequireAuth(util.PrincipalHospital), endpoint.UpdateDoctor)
		doctors.PATCH("/:id/status", middleware.RequireAuth(util.PrincipalHospital), endpoint.UpdateDoctorStatus)
		doctors.GET("/patient-lookup/:idType/:idNumber", middleware.RequireAuth(util.PrincipalDoctor), endpoint.LookupPatient)
	}

	users := r.Group("/users")
	{
		users.GET("", endpoint.ListPatients)
		users.POST("", endpoint.CreatePatient)
		users.GET("/:id", endpoint.GetPatient)
		users.PUT("/:id", endpoint.UpdatePatient)
		users.DELETE("/:id", endpoint.DeletePatient)
	}

	return r, db
}

func doJSON(r http.Handler, method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	return rr
}

// registerTestHospital registers a hospital through the API and returns its
// login token and ID.
func registerTestHospital(t *testing.T, r http.Handler, suffix string) (string, uint) {
	t.Helper()
	body := map[string]string{
		"name":                "Hospital " + suffix,
		"email":               "admin-" + suffix + "@example.lk",
		"password":            "Str0ng?Pass1",
		"address":             "123 Hospital Rd",
		"phone":               "011" + suffix,
		"registration_number": "HOSP-" + suffix,
		"district":            "Colombo",
	}
	rr := doJSON(r, http.MethodPost, "/hospitals/register", body, "")
	require.Equal(t, http.StatusCreated, rr.Code, "register hospital: %s", rr.Body.String())

	rr = doJSON(r, http.MethodPost, "/hospitals/login", map[string]string{
		"email":    body["email"],
		"password": body["password"],
	}, "")
	require.Equal(t, http.StatusOK, rr.Code, "login hospital: %s", rr.Body.String())

	resp := decodeResp(t, rr)
	require.NotEmpty(t, resp.Token)

	var hospitalData struct {
		ID uint `json:"id"`
	}
	require.NoError(t, json.Unmarshal(resp.Raw["hospital"], &hospitalData))
	return resp.Token, hospitalData.ID
}

// registerTestDoctor registers a doctor under the given hospital token and
// returns the doctor's login token and ID.
func registerTestDoctor(t *testing.T, r http.Handler, hospitalToken, suffix string) (string, uint) {
	t.Helper()
	body := map[string]interface{}{
		"name":           "Dr. " + suffix,
		"email":          "doctor-" + suffix + "@example.lk",
		"password":       "Str0ng?Pass1",
		"specialization": "Cardiology",
		"qualification":  "MBBS",
		"experience":     5,
		"phone":          "077" + suffix,
	}
	rr := doJSON(r, http.MethodPost, "/doctors/register", body, hospitalToken)
	require.Equal(t, http.StatusCreated, rr.Code, "register doctor: %s", rr.Body.String())

	rr = doJSON(r, http.MethodPost, "/doctors/login", map[string]string{
		"email":    "doctor-" + suffix + "@example.lk",
		"password": "Str0ng?Pass1",
	}, "")
	require.Equal(t, http.StatusOK, rr.Code, "login doctor: %s", rr.Body.String())

	resp := decodeResp(t, rr)
	require.NotEmpty(t, resp.Token)

	var doctorData struct {
		ID uint `json:"id"`
	}
	require.NoError(t, json.Unmarshal(resp.Raw["doctor"], &doctorData))
	return resp.Token, doctorData.ID
}

// patientPayload builds a complete valid patient creation body.
func patientPayload(suffix string) map[string]interface{} {
	return map[string]interface{}{
		"name":                           "Patient " + suffix,
		"date_of_birth":                  "1990-04-12",
		"gender":                         "Male",
		"phone_number":                   "071" + suffix,
		"email":                          "patient-" + suffix + "@example.com",
		"password":                       "Str0ng?Pass1",
		"permanent_address":              "45 Lake Rd, Kandy",
		"government_id_type":             "NIC",
		"government_id_number":           "NIC-" + suffix,
		"emergency_contact_name":         "Mary Silva",
		"emergency_contact_relationship": "Spouse",
		"emergency_contact_phone":        "0719876543",
	}
}
