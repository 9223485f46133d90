package config

import (
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Storage drivers accepted in DB_DRIVER.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Config holds application configuration.
type Config struct {
	DBDriver           string
	DatabaseURL        string
	SQLiteDSN          string
	MigrationsPath     string
	DBConnectTimeout   time.Duration
	Port               string
	IsProduction       bool
	JWTSecret          string
	RateLimit          string // ulule formatted rate, e.g. "100-M"
	CORSAllowedOrigins []string

	// Chart codes used by the ledger account resolver.
	LedgerReceivableCode   string
	LedgerPayableCode      string
	LedgerIncomeCode       string
	LedgerTaxPayableCode   string
	LedgerCashAccountNames []string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("DB_DRIVER", DriverPostgres)
	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("SQLITE_DSN", "file:ledger?mode=memory&cache=shared")
	viper.SetDefault("MIGRATIONS_PATH", "file://migrations")
	viper.SetDefault("DB_CONNECT_TIMEOUT", "30s")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	viper.SetDefault("RATE_LIMIT", "300-M")
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	viper.SetDefault("LEDGER_RECEIVABLE_CODE", "1100")
	viper.SetDefault("LEDGER_PAYABLE_CODE", "2000")
	viper.SetDefault("LEDGER_INCOME_CODE", "4000")
	viper.SetDefault("LEDGER_TAX_PAYABLE_CODE", "2100")
	viper.SetDefault("LEDGER_CASH_ACCOUNT_NAMES", "Bank,Cash")

	// Environment variables override both defaults and .env values.
	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DBDriver = strings.ToLower(strings.TrimSpace(viper.GetString("DB_DRIVER")))
	if cfg.DBDriver != DriverPostgres && cfg.DBDriver != DriverSQLite {
		log.Printf("Warning: unknown DB_DRIVER %q. Defaulting to %s.\n", cfg.DBDriver, DriverPostgres)
		cfg.DBDriver = DriverPostgres
	}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DBDriver == DriverPostgres && cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}
	cfg.SQLiteDSN = viper.GetString("SQLITE_DSN")
	cfg.MigrationsPath = viper.GetString("MIGRATIONS_PATH")

	timeoutStr := viper.GetString("DB_CONNECT_TIMEOUT")
	timeout, err := time.ParseDuration(timeoutStr)
	if err != nil || timeout <= 0 {
		timeout = 30 * time.Second
		log.Printf("Warning: Invalid value for DB_CONNECT_TIMEOUT ('%s'). Defaulting to %s.\n", timeoutStr, timeout)
	}
	cfg.DBConnectTimeout = timeout

	cfg.Port = viper.GetString("PORT")
	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")

	cfg.JWTSecret = viper.GetString("JWT_SECRET")
	if cfg.JWTSecret == "" {
		cfg.JWTSecret = "a-very-secret-key-should-be-longer-and-random" // !! CHANGE IN PRODUCTION !!
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}

	cfg.RateLimit = viper.GetString("RATE_LIMIT")
	cfg.CORSAllowedOrigins = splitList(viper.GetString("CORS_ALLOWED_ORIGINS"))

	cfg.LedgerReceivableCode = viper.GetString("LEDGER_RECEIVABLE_CODE")
	cfg.LedgerPayableCode = viper.GetString("LEDGER_PAYABLE_CODE")
	cfg.LedgerIncomeCode = viper.GetString("LEDGER_INCOME_CODE")
	cfg.LedgerTaxPayableCode = viper.GetString("LEDGER_TAX_PAYABLE_CODE")
	cfg.LedgerCashAccountNames = splitList(viper.GetString("LEDGER_CASH_ACCOUNT_NAMES"))

	return cfg, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
