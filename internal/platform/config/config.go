package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	DriverCSV      = "csv"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

type Config struct {
	Environment       string
	DataDir           string
	StorageDriver     string
	StorageDSN        string
	Addr              string
	ReadTimeout       time.Duration
	WriteTimeout      time.Duration
	ShutdownTimeout   time.Duration
	CORSOrigins       []string
	JWTSecret         string
	TokenTTL          time.Duration
	DataEncryptionKey string
	PayDay            int
	ProgressionMonth  time.Month
	Realtime          bool
	SeedAdminUsername string
	SeedAdminPassword string
}

// File names inside DataDir.
const (
	EmployeesFile = "EmployeeInfo.csv"
	StatusFile    = "EmployeeStatus.csv"
	LoginsFile    = "ValidLogins.csv"
	ScalesFile    = "FulltimeSalaryScales.csv"
	ClaimsFile    = "PayClaims.csv"
	PayslipsFile  = "PaySlips.csv"
	CalendarFile  = "calendar.json"
	AuditFile     = "audit.log"
	PDFDir        = "payslips"
)

func SetDefaults(v *viper.Viper) {
	v.SetDefault("app.env", "development")
	v.SetDefault("data.dir", "data")
	v.SetDefault("storage.driver", DriverCSV)
	v.SetDefault("storage.dsn", "")
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.read_timeout", 10*time.Second)
	v.SetDefault("server.write_timeout", 15*time.Second)
	v.SetDefault("server.shutdown_timeout", 10*time.Second)
	v.SetDefault("server.cors_origins", []string{"*"})
	v.SetDefault("security.jwt_secret", "")
	v.SetDefault("security.token_ttl", 8*time.Hour)
	v.SetDefault("security.data_encryption_key", "")
	v.SetDefault("payroll.payday", 25)
	v.SetDefault("payroll.progression_month", int(time.October))
	v.SetDefault("scheduler.realtime", false)
	v.SetDefault("seed.admin_username", "admin")
	v.SetDefault("seed.admin_password", "")
}

// Load reads hrpay.yaml (when present), a .env file (when present) and
// HRPAY_* environment variables, in increasing order of precedence.
func Load(v *viper.Viper, configFile string) (Config, error) {
	_ = godotenv.Load()

	SetDefaults(v)
	v.SetEnvPrefix("HRPAY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("hrpay")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.hrpay")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("error reading config: %w", err)
		}
	}

	cfg := Config{
		Environment:       v.GetString("app.env"),
		DataDir:           v.GetString("data.dir"),
		StorageDriver:     strings.ToLower(strings.TrimSpace(v.GetString("storage.driver"))),
		StorageDSN:        v.GetString("storage.dsn"),
		Addr:              v.GetString("server.addr"),
		ReadTimeout:       v.GetDuration("server.read_timeout"),
		WriteTimeout:      v.GetDuration("server.write_timeout"),
		ShutdownTimeout:   v.GetDuration("server.shutdown_timeout"),
		CORSOrigins:       v.GetStringSlice("server.cors_origins"),
		JWTSecret:         v.GetString("security.jwt_secret"),
		TokenTTL:          v.GetDuration("security.token_ttl"),
		DataEncryptionKey: v.GetString("security.data_encryption_key"),
		PayDay:            v.GetInt("payroll.payday"),
		ProgressionMonth:  time.Month(v.GetInt("payroll.progression_month")),
		Realtime:          v.GetBool("scheduler.realtime"),
		SeedAdminUsername: v.GetString("seed.admin_username"),
		SeedAdminPassword: v.GetString("seed.admin_password"),
	}
	return cfg, nil
}

func (c Config) Path(name string) string {
	return filepath.Join(c.DataDir, name)
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.DataDir) == "" {
		return fmt.Errorf("data.dir is required")
	}
	switch c.StorageDriver {
	case DriverCSV, DriverSQLite:
	case DriverPostgres:
		if strings.TrimSpace(c.StorageDSN) == "" {
			return fmt.Errorf("storage.dsn is required for the postgres driver")
		}
	default:
		return fmt.Errorf("storage.driver must be one of csv, sqlite, postgres (got %q)", c.StorageDriver)
	}
	if c.PayDay < 1 || c.PayDay > 28 {
		return fmt.Errorf("payroll.payday must be between 1 and 28")
	}
	if c.ProgressionMonth < time.January || c.ProgressionMonth > time.December {
		return fmt.Errorf("payroll.progression_month must be between 1 and 12")
	}
	if c.TokenTTL <= 0 {
		return fmt.Errorf("security.token_ttl must be positive")
	}
	if c.Environment == "production" && strings.TrimSpace(c.JWTSecret) == "" {
		return fmt.Errorf("security.jwt_secret must be set in production")
	}
	return nil
}

// SQLitePath is the database file used when the sqlite driver has no DSN.
func (c Config) SQLitePath() string {
	if c.StorageDSN != "" {
		return c.StorageDSN
	}
	return c.Path("hrpay.db")
}
