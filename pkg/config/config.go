package config

import (
	"sync"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Planner  PlannerConfig
}

type AppConfig struct {
	Env      string // development -> readable console logs; production -> JSON
	LogLevel string
	DataDir  string // directory holding the CSV input files
}

type DatabaseConfig struct {
	// URL is the PostgreSQL DSN of the result store. Empty disables
	// persistence and the run output stays in memory.
	URL string
}

type PlannerConfig struct {
	Workers int // parallelism of the collection and projection phases; 0 = NumCPU
}

var (
	once     sync.Once
	instance *Config
)

// Load reads configuration from the environment, with an optional .env file.
func Load() *Config {
	once.Do(func() {
		_ = godotenv.Load()

		viper.SetDefault("APP_ENV", "development")
		viper.SetDefault("LOG_LEVEL", "info")
		viper.SetDefault("APP_DATA_DIR", "./data")
		viper.SetDefault("DATABASE_URL", "")
		viper.SetDefault("PLANNER_WORKERS", 0)

		viper.AutomaticEnv()

		instance = &Config{
			App: AppConfig{
				Env:      viper.GetString("APP_ENV"),
				LogLevel: viper.GetString("LOG_LEVEL"),
				DataDir:  viper.GetString("APP_DATA_DIR"),
			},
			Database: DatabaseConfig{
				URL: viper.GetString("DATABASE_URL"),
			},
			Planner: PlannerConfig{
				Workers: viper.GetInt("PLANNER_WORKERS"),
			},
		}
	})

	return instance
}
