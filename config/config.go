package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"sync"

	"github.com/joho/godotenv"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// Config holds the application's configuration values.
type Config struct {
	AppName      string `json:"appname"`
	AppEnv       string `json:"appenv"`
	AppPort      uint16 `json:"appport"`
	GinMode      string `json:"ginmode"`
	DBHost       string `json:"dbhost"`
	DBPort       uint16 `json:"dbport"`
	DBName       string `json:"dbname"`
	DBUser       string `json:"dbuser"`
	DBPass       string `json:"dbpass"`
	UploadDriver string `json:"uploaddriver"`
	UploadDir    string `json:"uploaddir"`
	RedisAddr    string `json:"redisaddr"`
	RedisPass    string `json:"redispass"`
	RedisDB      int    `json:"redisdb"`
}

var config *Config
var once sync.Once

// LoadConfig loads the environment variables from a .env file, and returns a singleton Config instance.
func LoadConfig() *Config {
	once.Do(func() {
		// A .env file is optional; variables may come from the environment directly.
		if err := godotenv.Load(); err != nil {
			log.Printf("No .env file loaded: %v", err)
		}

		appPort, _ := strconv.ParseUint(os.Getenv("APPPORT"), 10, 16)
		dbPort, _ := strconv.ParseUint(os.Getenv("DBPORT"), 10, 16)

		uploadDriver := os.Getenv("UPLOAD_DRIVER")
		if uploadDriver == "" {
			uploadDriver = "disk"
		}
		uploadDir := os.Getenv("UPLOAD_DIR")
		if uploadDir == "" {
			uploadDir = "uploads"
		}

		redisAddr := os.Getenv("REDIS_ADDR")
		if redisAddr == "" {
			redisAddr = "localhost:6379"
		}
		redisDB, _ := strconv.Atoi(os.Getenv("REDIS_DB"))

		config = &Config{
			AppName:      os.Getenv("APPNAME"),
			AppEnv:       os.Getenv("APPENV"),
			AppPort:      uint16(appPort),
			GinMode:      os.Getenv("GINMODE"),
			DBHost:       os.Getenv("DBHOST"),
			DBPort:       uint16(dbPort),
			DBName:       os.Getenv("DBNAME"),
			DBUser:       os.Getenv("DBUSER"),
			DBPass:       os.Getenv("DBPASS"),
			UploadDriver: uploadDriver,
			UploadDir:    uploadDir,
			RedisAddr:    redisAddr,
			RedisPass:    os.Getenv("REDIS_PASS"),
			RedisDB:      redisDB,
		}
	})
	return config
}

// ConnectMySQL establishes a connection to a MySQL database using the configuration values.
func ConnectMySQL() (*gorm.DB, error) {
	cfg := LoadConfig()
	// Build the Data Source Name (DSN) using the configuration values.
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?parseTime=true", cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	return db, nil
}
