package config

import (
	"flag"
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"
)

const (
	DriverPostgres = `postgres`
	DriverSQLite   = `sqlite`
)

type Config struct {
	NetAddr         string        `env:"RUN_ADDRESS"`
	DBConnect       string        `env:"DATABASE_URI"`
	StorageDriver   string        `env:"STORAGE_DRIVER"`
	LogLevel        string        `env:"LOG_LEVEL"`
	PromoteInterval time.Duration `env:"PROMOTE_INTERVAL"`
}

func InitConfig() (config Config) {
	flag.StringVar(&config.NetAddr, "a", "localhost:8080", "net address host:port")
	flag.StringVar(&config.DBConnect, "d", "", "database connection string")
	flag.StringVar(&config.StorageDriver, "s", DriverPostgres, "storage driver: postgres or sqlite")
	flag.StringVar(&config.LogLevel, "l", "info", "log level")
	flag.DurationVar(&config.PromoteInterval, "p", 5*time.Minute, "pending order promotion interval")
	flag.Parse()

	if err := env.Parse(&config); err != nil {
		panic(fmt.Errorf("error while parsing config: %w", err))
	}

	return
}
