package config

import (
	"database/sql"
	"fmt"
	"os"

	_ "modernc.org/sqlite"
)

type Config struct {
	DB        *sql.DB
	AdminCode string
	SecretKey string
	Listen    string
	DBPath    string
	UploadDir string
	LogLevel  string
	Env       string // dev|prod
}

var AppConfig *Config

// Load reads the environment into a Config. The admin passphrase and the
// session-signing secret have development defaults so a fresh checkout
// runs; production sets both.
func Load() *Config {
	return &Config{
		AdminCode: getenv("ADMIN_CODE", "change-me-ostad-code"),
		SecretKey: getenv("SECRET_KEY", "change-me-secret-key"),
		Listen:    ":" + getenv("PORT", "5000"),
		DBPath:    getenv("DB_PATH", "./school.db"),
		UploadDir: getenv("UPLOAD_DIR", "./uploads"),
		LogLevel:  getenv("LOG_LEVEL", "info"),
		Env:       getenv("ENV", "dev"),
	}
}

// InitDB opens the sqlite database file at cfg.DBPath, verifies the
// connection and installs cfg as the process config.
func InitDB(cfg *Config) error {
	db, err := sql.Open("sqlite", cfg.DBPath)
	if err != nil {
		return fmt.Errorf("open database %s: %w", cfg.DBPath, err)
	}

	// sqlite serializes writers; a single connection avoids SQLITE_BUSY
	// races between concurrent request handlers.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		return fmt.Errorf("ping database %s: %w", cfg.DBPath, err)
	}

	cfg.DB = db
	AppConfig = cfg
	return nil
}

func GetDB() *sql.DB {
	return AppConfig.DB
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
