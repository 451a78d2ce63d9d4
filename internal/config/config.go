package config

import (
	"log"
	"os"
)

type Config struct {
	Port          string
	StoreDSN      string
	LogFile       string
	SeedAdminMail string
	SeedAdminPass string
}

func Load() Config {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	dsn := os.Getenv("STORE_DSN")
	if dsn == "" {
		dsn = "stitchpos.db"
	} // sqlite file in project root
	logFile := os.Getenv("LOG_FILE")
	if logFile == "" {
		logFile = "./stitchpos.log"
	}
	adminMail := os.Getenv("SEED_ADMIN_EMAIL")
	if adminMail == "" {
		adminMail = "admin@stitchpos.test"
	}
	adminPass := os.Getenv("SEED_ADMIN_PASSWORD")
	if adminPass == "" {
		adminPass = "Stitch1ng!"
	}

	cfg := Config{Port: port, StoreDSN: dsn, LogFile: logFile, SeedAdminMail: adminMail, SeedAdminPass: adminPass}
	log.Printf("[config] PORT=%s STORE_DSN=%s LOG_FILE=%s", cfg.Port, cfg.StoreDSN, cfg.LogFile)
	return cfg
}
