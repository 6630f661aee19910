package config

import (
	"os"
	"sync"
)

// AppConfig holds global application configuration
var AppConfig *Config
var once sync.Once

type Config struct {
	AppName string
	Port    string
	Env     string
	Debug   bool
	// DefaultWarehouse is the fulfillment location assumed for orders
	// without one.
	DefaultWarehouse string
}

// LoadAppConfig initializes the global AppConfig variable
func LoadAppConfig() {
	once.Do(func() {
		AppConfig = &Config{
			AppName:          os.Getenv("APP_NAME"),
			Port:             os.Getenv("PORT"),
			Env:              os.Getenv("APP_ENV"),
			Debug:            os.Getenv("DEBUG") == "true",
			DefaultWarehouse: GetEnv("DEFAULT_WAREHOUSE", "main"),
		}
	})
}
