package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	Port       string
	DBDSN      string
	MediaDir   string
	ReceiptDir string
	LogFile    string
}

func Load() Config {
	// .env is optional; real deployments use environment variables.
	if err := godotenv.Load(); err == nil {
		log.Println("[config] loaded .env")
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	dsn := os.Getenv("DB_DSN")
	if dsn == "" {
		dsn = "modahaus.db"
	} // sqlite file in project root
	media := os.Getenv("MEDIA_DIR")
	if media == "" {
		media = "./web/media"
	}
	receipts := os.Getenv("RECEIPT_DIR")
	if receipts == "" {
		receipts = "./web/media/receipts"
	}
	logFile := os.Getenv("LOG_FILE")
	if logFile == "" {
		logFile = "./modahaus.log"
	}

	cfg := Config{Port: port, DBDSN: dsn, MediaDir: media, ReceiptDir: receipts, LogFile: logFile}
	log.Printf("[config] PORT=%s DB_DSN=%s MEDIA_DIR=%s RECEIPT_DIR=%s LOG_FILE=%s",
		cfg.Port, cfg.DBDSN, cfg.MediaDir, cfg.ReceiptDir, cfg.LogFile)
	return cfg
}
