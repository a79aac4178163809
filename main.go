// main.go
package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/mediconnect/mediconnect-api/config"
	_ "github.com/mediconnect/mediconnect-api/docs"
	"github.com/mediconnect/mediconnect-api/endpoint"
	"github.com/mediconnect/mediconnect-api/middleware"
	"github.com/mediconnect/mediconnect-api/model"
	"github.com/mediconnect/mediconnect-api/upload"
	"github.com/mediconnect/mediconnect-api/util"
)

// @title           MediConnect API
// @version         1.0
// @description     Healthcare records backend: hospitals, doctors and patient records.
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// Load the configuration
	cfg := config.LoadConfig()

	if len(util.GetJWTSecretByte()) == 0 {
		log.Fatal("JWTSECRET must be set")
	}

	db, err := config.ConnectMySQL()
	if err != nil {
		log.Fatalf("Error connecting to MySQL: %v", err)
	}
	if err := db.AutoMigrate(
		&model.Hospital{},
		&model.Doctor{},
		&model.Patient{},
		&model.Register{},
		&model.SecurityLog{},
	); err != nil {
		log.Fatalf("Error migrating schema: %v", err)
	}

	util.SetSecurityLoggerDB(db)
	if err := util.InitGeoIP(""); err != nil {
		log.Printf("GeoIP disabled: %v", err)
	}
	defer util.CloseGeoIP()

	if _, err := config.ConnectRedis(); err != nil {
		log.Printf("Redis unavailable, hospital directory caching disabled: %v", err)
	}

	store, err := upload.New(cfg.UploadDriver, cfg.UploadDir)
	if err != nil {
		log.Fatalf("Error initializing upload store: %v", err)
	}
	endpoint.SetUploadStore(store)

	// Set Gin mode from config
	gin.SetMode(cfg.GinMode)

	// Create a Gin router with default middleware
	router := gin.Default()
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.DatabaseMiddleware(db))
	router.Use(middleware.EndpointCallLogger())

	// Basic HTTP handler for root path
	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": fmt.Sprintf("Welcome to %s!", cfg.AppName),
		})
	})

	router.POST("/register", endpoint.Register)
	router.POST("/login", endpoint.LoginRegister)

	hospitals := router.Group("/hospitals")
	{
		hospitals.POST("/register", endpoint.RegisterHospital)
		hospitals.POST("/login", endpoint.LoginHospital)
		hospitals.GET("", endpoint.ListHospitals)
		hospitals.POST("/validate", endpoint.ValidateHospitalField)
		hospitals.GET("/profile", middleware.RequireAuth(util.PrincipalHospital), endpoint.GetHospitalProfile)
		hospitals.PUT("/profile", middleware.RequireAuth(util.PrincipalHospital), endpoint.UpdateHospitalProfile)
	}

	doctors := router.Group("/doctors")
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

	// Patient registration is public; records carry no auth gate.
	users := router.Group("/users")
	{
		users.GET("", endpoint.ListPatients)
		users.POST("", endpoint.CreatePatient)
		users.GET("/:id", endpoint.GetPatient)
		users.PUT("/:id", endpoint.UpdatePatient)
		users.DELETE("/:id", endpoint.DeletePatient)
	}

	router.GET("/uploads/:filename", store.Serve)
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"message": "Route not found",
		})
	})

	// Start server on specified port
	address := fmt.Sprintf(":%d", cfg.AppPort)
	if err := router.Run(address); err != nil {
		log.Fatalf("error starting server: %v", err)
	}
}
